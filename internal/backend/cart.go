package backend

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/boleteria/storefront/internal/core/domain"
	"github.com/boleteria/storefront/internal/core/ports"
)

// CartAdapter implements ports.CartBackend against the cart/checkout service.
type CartAdapter struct {
	client *Client
}

func NewCartAdapter(client *Client) *CartAdapter {
	return &CartAdapter{client: client}
}

type rawCartLine struct {
	TicketStockID flexString `json:"ticket_stock_id"`
	Quantity      int        `json:"quantity"`
	ExpiresAt     string     `json:"expires_at"`
}

// rawCartEnvelope covers the backend revision that wraps the lines in a
// data field instead of returning a bare array.
type rawCartEnvelope struct {
	Data      []rawCartLine `json:"data"`
	ExpiresAt string        `json:"expires_at"`
}

// GetCart fetches GET /cart/cart?user_id=. The backend returns either a bare
// array of lines or an envelope with a data field; both are accepted. The
// snapshot's ExpiresAt is the earliest expiry the backend communicated, or
// zero when it sent none.
func (a *CartAdapter) GetCart(ctx context.Context, userID string) (*ports.CartSnapshot, error) {
	path := "/cart/cart?user_id=" + url.QueryEscape(userID)
	res, err := a.client.do(ctx, http.MethodGet, "cart_get", path, nil)
	if err != nil {
		return nil, &domain.NetworkError{Message: "could not load cart", Cause: err}
	}
	if !res.ok() {
		return nil, &domain.CartError{Message: res.errorMessage()}
	}

	var lines []rawCartLine
	var envelopeExpiry string
	if err := res.decode(&lines); err != nil {
		var envelope rawCartEnvelope
		if err := res.decode(&envelope); err != nil {
			return nil, &domain.CartError{Message: "invalid cart response from backend", Cause: err}
		}
		lines = envelope.Data
		envelopeExpiry = envelope.ExpiresAt
	}

	snapshot := &ports.CartSnapshot{
		Lines:     make([]ports.CartLine, 0, len(lines)),
		ExpiresAt: parseExpiry(envelopeExpiry),
	}
	for _, line := range lines {
		snapshot.Lines = append(snapshot.Lines, ports.CartLine{
			TicketStockID: string(line.TicketStockID),
			Quantity:      line.Quantity,
		})
		if expiry := parseExpiry(line.ExpiresAt); !expiry.IsZero() {
			if snapshot.ExpiresAt.IsZero() || expiry.Before(snapshot.ExpiresAt) {
				snapshot.ExpiresAt = expiry
			}
		}
	}
	return snapshot, nil
}

// AddItem reserves quantity units of a ticket tier via POST /cart. On
// success the backend starts or extends the cart's reservation deadline.
func (a *CartAdapter) AddItem(ctx context.Context, userID, ticketStockID string, quantity int) error {
	payload := map[string]any{
		"user_id":         userID,
		"ticket_stock_id": ticketStockID,
		"quantity":        quantity,
	}

	res, err := a.client.do(ctx, http.MethodPost, "cart_add", "/cart", payload)
	if err != nil {
		return &domain.NetworkError{Message: "could not reach the cart service", Cause: err}
	}
	if !res.ok() {
		return &domain.CartError{Message: res.errorMessage()}
	}
	return nil
}

// RemoveItem deletes a line item via POST /cart/remove.
func (a *CartAdapter) RemoveItem(ctx context.Context, userID, ticketStockID string) error {
	payload := map[string]any{
		"user_id":         userID,
		"ticket_stock_id": ticketStockID,
	}

	res, err := a.client.do(ctx, http.MethodPost, "cart_remove", "/cart/remove", payload)
	if err != nil {
		return &domain.NetworkError{Message: "could not reach the cart service", Cause: err}
	}
	if !res.ok() {
		return &domain.CartError{Message: res.errorMessage()}
	}
	return nil
}

// Checkout converts the cart into purchases via POST /cart/checkout. The
// backend performs the conversion atomically; an expired cart is rejected
// with its own message.
func (a *CartAdapter) Checkout(ctx context.Context, userID, buyerFullname, buyerEmail string) error {
	payload := map[string]any{
		"user_id":        userID,
		"buyer_fullname": buyerFullname,
		"buyer_email":    buyerEmail,
	}

	res, err := a.client.do(ctx, http.MethodPost, "cart_checkout", "/cart/checkout", payload)
	if err != nil {
		return &domain.NetworkError{Message: "could not reach the checkout service", Cause: err}
	}
	if !res.ok() {
		return &domain.CartError{Message: res.errorMessage()}
	}
	return nil
}

func parseExpiry(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

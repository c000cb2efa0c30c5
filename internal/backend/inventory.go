package backend

import (
	"context"
	"net/http"

	"github.com/boleteria/storefront/internal/core/domain"
)

// InventoryAdapter implements ports.InventoryBackend against the ticket
// stock service.
type InventoryAdapter struct {
	client *Client
}

func NewInventoryAdapter(client *Client) *InventoryAdapter {
	return &InventoryAdapter{client: client}
}

type rawTicketStock struct {
	ID           flexString `json:"id"`
	Name         string     `json:"name"`
	Price        float64    `json:"price"`
	ActualStock  int        `json:"actual_stock"`
	InitialStock int        `json:"initial_stock"`
}

// ListTicketStocks fetches GET /tickets/{eventId}. Tiers come back in
// backend order; an empty list means nothing is purchasable and is not an
// error. Stock values are display-only: reservations are observed by
// re-fetching, never by local arithmetic.
func (a *InventoryAdapter) ListTicketStocks(ctx context.Context, eventID string) ([]domain.TicketStock, error) {
	res, err := a.client.do(ctx, http.MethodGet, "tickets_list", "/tickets/"+eventID, nil)
	if err != nil {
		return nil, &domain.InventoryError{Message: "could not load ticket availability", Cause: err}
	}
	if !res.ok() {
		return nil, &domain.InventoryError{Message: res.errorMessage()}
	}

	var raw []rawTicketStock
	if err := res.decode(&raw); err != nil {
		return nil, &domain.InventoryError{Message: "invalid ticket stock listing from backend", Cause: err}
	}

	stocks := make([]domain.TicketStock, 0, len(raw))
	for _, r := range raw {
		stocks = append(stocks, domain.TicketStock{
			ID:           string(r.ID),
			EventID:      eventID,
			Name:         r.Name,
			Price:        r.Price,
			ActualStock:  r.ActualStock,
			InitialStock: r.InitialStock,
		})
	}
	return stocks, nil
}

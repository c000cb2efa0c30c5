package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/boleteria/storefront/internal/api/metrics"
	"github.com/boleteria/storefront/internal/core/domain"
	"github.com/boleteria/storefront/internal/core/ports"
)

// CartService is the use-case layer over the backend cart. The backend is
// the sole arbiter of stock and deadlines: every mutation is followed by a
// re-fetch, and the local mirror is never trusted for quantities or prices.
type CartService struct {
	cart      ports.CartBackend
	catalog   ports.CatalogBackend
	inventory ports.InventoryBackend
	purchases ports.PurchaseRepository
	monitor   ports.CartMonitor
	log       zerolog.Logger
	now       func() time.Time
}

func NewCartService(
	cart ports.CartBackend,
	catalog ports.CatalogBackend,
	inventory ports.InventoryBackend,
	purchases ports.PurchaseRepository,
	monitor ports.CartMonitor,
	log zerolog.Logger,
) *CartService {
	return &CartService{
		cart:      cart,
		catalog:   catalog,
		inventory: inventory,
		purchases: purchases,
		monitor:   monitor,
		log:       log,
		now:       time.Now,
	}
}

// GetCart returns the user's cart mirror. Read failures degrade to an empty
// cart so the page stays usable; only mutations propagate errors. A locally
// expired cart is cleared without a backend call: the backend reclaims stock
// on its own schedule.
func (s *CartService) GetCart(ctx context.Context, userID string) ([]domain.CartItem, error) {
	if userID == "" {
		return []domain.CartItem{}, nil
	}

	if status := s.monitor.Status(userID); status.IsExpired {
		s.monitor.Observe(userID, 0, time.Time{})
		return []domain.CartItem{}, nil
	}

	snapshot, err := s.cart.GetCart(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("cart fetch failed, degrading to empty")
		return []domain.CartItem{}, nil
	}

	s.monitor.Observe(userID, len(snapshot.Lines), snapshot.ExpiresAt)

	items := make([]domain.CartItem, 0, len(snapshot.Lines))
	for _, line := range snapshot.Lines {
		items = append(items, domain.CartItem{
			TicketStockID: line.TicketStockID,
			Quantity:      line.Quantity,
		})
	}
	s.decorate(ctx, items)
	return items, nil
}

// AddItem reserves tickets. Not being logged in and non-positive quantities
// are rejected before any network call. The guard rails mirror the server's
// rules (per-user maximum, remaining stock) as defense in depth; the backend
// stays authoritative and its rejection message is surfaced verbatim.
func (s *CartService) AddItem(ctx context.Context, input ports.AddItemInput) error {
	if input.UserID == "" {
		return &domain.AuthError{Message: "login required to add tickets", Cause: domain.ErrNotAuthenticated}
	}
	if input.Quantity < 1 {
		return &domain.CartError{Message: "quantity must be at least 1"}
	}
	if input.TicketStockID == "" {
		return &domain.CartError{Message: "ticket type is required"}
	}

	if err := s.checkGuardRails(ctx, input); err != nil {
		return err
	}

	if err := s.cart.AddItem(ctx, input.UserID, input.TicketStockID, input.Quantity); err != nil {
		return err
	}

	metrics.CartItemsAddedTotal.WithLabelValues(input.EventID).Inc()
	s.log.Info().
		Str("user_id", input.UserID).
		Str("ticket_stock_id", input.TicketStockID).
		Int("quantity", input.Quantity).
		Msg("cart item added")

	s.refresh(ctx, input.UserID)
	return nil
}

// RemoveItem deletes one line. Removing the last line leaves no dangling
// deadline: the post-mutation re-fetch observes the empty cart and tears the
// watcher down.
func (s *CartService) RemoveItem(ctx context.Context, userID, ticketStockID string) error {
	if userID == "" {
		return &domain.AuthError{Message: "login required", Cause: domain.ErrNotAuthenticated}
	}

	if err := s.cart.RemoveItem(ctx, userID, ticketStockID); err != nil {
		return err
	}

	s.log.Info().Str("user_id", userID).Str("ticket_stock_id", ticketStockID).Msg("cart item removed")
	s.refresh(ctx, userID)
	return nil
}

// Checkout converts the cart into purchased tickets: one record per distinct
// ticket tier. The empty-cart, blank-buyer and locally-expired cases are
// rejected without calling the checkout endpoint.
func (s *CartService) Checkout(ctx context.Context, input ports.CheckoutInput) ([]domain.PurchasedTicket, error) {
	if input.UserID == "" {
		return nil, &domain.AuthError{Message: "login required to check out", Cause: domain.ErrNotAuthenticated}
	}
	if input.BuyerFullname == "" || input.BuyerEmail == "" {
		return nil, &domain.CartError{Message: "buyer name and email are required"}
	}

	if status := s.monitor.Status(input.UserID); status.IsExpired {
		metrics.CheckoutsTotal.WithLabelValues("rejected").Inc()
		return nil, &domain.CartError{Message: "your cart reservation has expired", Cause: domain.ErrCartExpired}
	}

	snapshot, err := s.cart.GetCart(ctx, input.UserID)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		return nil, &domain.CartError{Message: "could not verify cart contents", Cause: err}
	}
	if len(snapshot.Lines) == 0 {
		metrics.CheckoutsTotal.WithLabelValues("rejected").Inc()
		return nil, &domain.CartError{Message: "cart is empty", Cause: domain.ErrEmptyCart}
	}

	if err := s.cart.Checkout(ctx, input.UserID, input.BuyerFullname, input.BuyerEmail); err != nil {
		metrics.CheckoutsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	tickets := s.buildPurchases(ctx, snapshot.Lines)
	if err := s.purchases.Append(ctx, input.UserID, tickets); err != nil {
		// The purchase succeeded server-side; a history write failure must
		// not fail the checkout.
		s.log.Error().Err(err).Str("user_id", input.UserID).Msg("failed to record purchase history")
	}

	s.monitor.Observe(input.UserID, 0, time.Time{})
	metrics.CheckoutsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", input.UserID).Int("tiers", len(tickets)).Msg("checkout completed")
	return tickets, nil
}

// ListPurchases returns the user's purchase history.
func (s *CartService) ListPurchases(ctx context.Context, userID string) ([]domain.PurchasedTicket, error) {
	if userID == "" {
		return nil, &domain.AuthError{Message: "login required", Cause: domain.ErrNotAuthenticated}
	}
	return s.purchases.ListByUser(ctx, userID)
}

// checkGuardRails caps the requested quantity at min(perUserMax - already in
// cart, remaining stock) using last-fetched values. Lookup failures skip the
// guard rather than block the add: the rails are not authoritative.
func (s *CartService) checkGuardRails(ctx context.Context, input ports.AddItemInput) error {
	if input.EventID == "" {
		return nil
	}

	stocks, err := s.inventory.ListTicketStocks(ctx, input.EventID)
	if err != nil {
		s.log.Warn().Err(err).Str("event_id", input.EventID).Msg("guard rails skipped: inventory unavailable")
		return nil
	}

	var tier *domain.TicketStock
	for i := range stocks {
		if stocks[i].ID == input.TicketStockID {
			tier = &stocks[i]
			break
		}
	}
	if tier == nil {
		return &domain.CartError{Message: "unknown ticket type for this event"}
	}
	if input.Quantity > tier.ActualStock {
		return &domain.CartError{Message: fmt.Sprintf("only %d tickets left for %s", tier.ActualStock, tier.Name)}
	}

	event, err := s.catalog.GetEvent(ctx, input.EventID)
	if err != nil || event.MaxTicketsPerUser <= 0 {
		return nil
	}

	held := 0
	if snapshot, err := s.cart.GetCart(ctx, input.UserID); err == nil {
		for _, line := range snapshot.Lines {
			if line.TicketStockID == input.TicketStockID {
				held = line.Quantity
			}
		}
	}
	if held+input.Quantity > event.MaxTicketsPerUser {
		return &domain.CartError{Message: fmt.Sprintf("maximum %d tickets per user for this event", event.MaxTicketsPerUser)}
	}
	return nil
}

// refresh re-fetches the cart after a mutation and reports the result to the
// monitor. Failures are logged only; the mutation itself already succeeded.
func (s *CartService) refresh(ctx context.Context, userID string) {
	snapshot, err := s.cart.GetCart(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("post-mutation cart refresh failed")
		return
	}
	s.monitor.Observe(userID, len(snapshot.Lines), snapshot.ExpiresAt)
}

// decorate fills display data (tier name, unit price, event) on the mirror
// lines, best effort. The catalog is small; one listing pass plus one stock
// fetch per event covers every line.
func (s *CartService) decorate(ctx context.Context, items []domain.CartItem) {
	if len(items) == 0 {
		return
	}

	events, err := s.catalog.ListEvents(ctx)
	if err != nil {
		return
	}

	pending := len(items)
	for i := range events {
		if pending == 0 {
			return
		}
		stocks, err := s.inventory.ListTicketStocks(ctx, events[i].ID)
		if err != nil {
			continue
		}
		for _, stock := range stocks {
			for j := range items {
				if items[j].TicketStockID != stock.ID || items[j].Event != nil {
					continue
				}
				event := events[i]
				items[j].TicketName = stock.Name
				items[j].UnitPrice = stock.Price
				items[j].Event = &event
				pending--
			}
		}
	}
}

// buildPurchases turns cart lines into immutable purchase records. Ticket
// numbers follow the TKT-XXXXXXXX format.
func (s *CartService) buildPurchases(ctx context.Context, lines []ports.CartLine) []domain.PurchasedTicket {
	items := make([]domain.CartItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.CartItem{TicketStockID: line.TicketStockID, Quantity: line.Quantity})
	}
	s.decorate(ctx, items)

	now := s.now().UTC()
	tickets := make([]domain.PurchasedTicket, 0, len(items))
	for _, item := range items {
		ticket := domain.PurchasedTicket{
			ID:           uuid.NewString(),
			TicketNumber: generateTicketNumber(),
			Event:        item.Event,
			TicketName:   item.TicketName,
			Quantity:     item.Quantity,
			PurchaseDate: now,
			TotalPaid:    item.UnitPrice * float64(item.Quantity),
			Status:       domain.TicketActive,
		}
		tickets = append(tickets, ticket)
	}
	return tickets
}

// generateTicketNumber returns a unique ticket number in the format TKT-XXXXXXXX.
func generateTicketNumber() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("TKT-%08X", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return fmt.Sprintf("TKT-%08X", b)
}

package ports

import (
	"context"
	"time"

	"github.com/boleteria/storefront/internal/core/domain"
)

// AddItemInput carries a reservation request for one ticket tier. EventID
// names the event the tier belongs to and drives the client-side guard rails
// (per-user maximum, remaining stock).
type AddItemInput struct {
	UserID        string
	EventID       string
	TicketStockID string
	Quantity      int
}

// CheckoutInput carries the buyer details for converting a cart into
// purchased tickets.
type CheckoutInput struct {
	UserID        string
	BuyerFullname string
	BuyerEmail    string
}

// CartService is the use-case surface over the backend cart. Reads degrade to
// an empty cart on failure; mutations propagate typed errors.
type CartService interface {
	GetCart(ctx context.Context, userID string) ([]domain.CartItem, error)
	AddItem(ctx context.Context, input AddItemInput) error
	RemoveItem(ctx context.Context, userID, ticketStockID string) error
	Checkout(ctx context.Context, input CheckoutInput) ([]domain.PurchasedTicket, error)
	ListPurchases(ctx context.Context, userID string) ([]domain.PurchasedTicket, error)
}

// CartMonitor tracks the reservation deadline of each user's cart and owns
// the periodic refresh. Observe is called with the result of every cart
// fetch; Status evaluates expiry at query time, not only on refresh ticks.
type CartMonitor interface {
	Observe(userID string, lines int, serverExpiry time.Time)
	Status(userID string) domain.CartStatus
	// Stop cancels the user's watcher. Called on logout and user change so no
	// stale refresh acts on behalf of a gone session.
	Stop(userID string)
}

// PurchaseRepository persists the purchase history created by checkout.
type PurchaseRepository interface {
	Append(ctx context.Context, userID string, tickets []domain.PurchasedTicket) error
	ListByUser(ctx context.Context, userID string) ([]domain.PurchasedTicket, error)
}

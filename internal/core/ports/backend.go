package ports

import (
	"context"
	"time"

	"github.com/boleteria/storefront/internal/core/domain"
)

// LoginResult is the normalized shape of the auth backend's login response.
// Token may be empty: not every backend revision issues one.
type LoginResult struct {
	ID    string
	Name  string
	Email string
	Token string
}

// RegisterInput carries the fields for account creation.
type RegisterInput struct {
	Name       string
	SecondName string
	Email      string
	Password   string
}

// RegisterResult is the normalized registration response.
type RegisterResult struct {
	ID    string
	Name  string
	Email string
}

// AuthBackend is the REST contract of the external authentication service.
type AuthBackend interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, input RegisterInput) (*RegisterResult, error)
}

// CatalogBackend fetches and normalizes event records. Implementations own
// the parse-and-normalize boundary: ambiguous backend shapes never leak past
// them.
type CatalogBackend interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
}

// InventoryBackend fetches per-event ticket tiers. An empty slice is a valid
// result meaning nothing is purchasable.
type InventoryBackend interface {
	ListTicketStocks(ctx context.Context, eventID string) ([]domain.TicketStock, error)
}

// CartLine is one raw reservation line as held by the backend cart.
type CartLine struct {
	TicketStockID string
	Quantity      int
}

// CartSnapshot is the result of one cart fetch. ExpiresAt is zero when the
// backend does not communicate a reservation deadline.
type CartSnapshot struct {
	Lines     []CartLine
	ExpiresAt time.Time
}

// CartBackend is the REST contract of the external cart/checkout service.
// Mutations return typed errors carrying the backend's message; the caller
// must re-fetch afterwards rather than trust an optimistic local update.
type CartBackend interface {
	GetCart(ctx context.Context, userID string) (*CartSnapshot, error)
	AddItem(ctx context.Context, userID, ticketStockID string, quantity int) error
	RemoveItem(ctx context.Context, userID, ticketStockID string) error
	Checkout(ctx context.Context, userID, buyerFullname, buyerEmail string) error
}

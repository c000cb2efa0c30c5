package ports

import (
	"context"

	"github.com/boleteria/storefront/internal/core/domain"
)

// CatalogService lists and resolves events. No caching: every call re-fetches.
type CatalogService interface {
	ListEvents(ctx context.Context) ([]domain.Event, error)
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
}

// InventoryService lists the purchasable ticket tiers for an event, in
// backend order (the first tier is the default selection).
type InventoryService interface {
	ListTicketStocks(ctx context.Context, eventID string) ([]domain.TicketStock, error)
}

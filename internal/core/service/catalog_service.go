package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/boleteria/storefront/internal/core/domain"
	"github.com/boleteria/storefront/internal/core/ports"
)

// CatalogService lists and resolves events. Deliberately cache-free: every
// call re-fetches so the storefront never shows a stale listing.
type CatalogService struct {
	catalog ports.CatalogBackend
	log     zerolog.Logger
}

func NewCatalogService(catalog ports.CatalogBackend, log zerolog.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, log: log}
}

func (s *CatalogService) ListEvents(ctx context.Context) ([]domain.Event, error) {
	events, err := s.catalog.ListEvents(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list events")
		return nil, err
	}
	return events, nil
}

func (s *CatalogService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	if id == "" {
		return nil, &domain.CatalogError{Message: "event id is required"}
	}
	event, err := s.catalog.GetEvent(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("event_id", id).Msg("failed to load event")
		return nil, err
	}
	return event, nil
}

// InventoryService exposes per-event ticket tiers. Stock numbers are only
// ever the backend's last answer; callers re-fetch after cart mutations.
type InventoryService struct {
	inventory ports.InventoryBackend
	log       zerolog.Logger
}

func NewInventoryService(inventory ports.InventoryBackend, log zerolog.Logger) *InventoryService {
	return &InventoryService{inventory: inventory, log: log}
}

func (s *InventoryService) ListTicketStocks(ctx context.Context, eventID string) ([]domain.TicketStock, error) {
	if eventID == "" {
		return nil, &domain.InventoryError{Message: "event id is required"}
	}
	stocks, err := s.inventory.ListTicketStocks(ctx, eventID)
	if err != nil {
		s.log.Error().Err(err).Str("event_id", eventID).Msg("failed to load ticket stocks")
		return nil, err
	}
	return stocks, nil
}

package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/boleteria/storefront/internal/core/domain"
)

// EventDefaults is the placeholder rule for fields the catalog backend does
// not supply yet. One rule for every event: no per-ID specials.
type EventDefaults struct {
	Price    float64
	Category string
}

// CatalogAdapter implements ports.CatalogBackend against the events service.
type CatalogAdapter struct {
	client   *Client
	defaults EventDefaults
}

func NewCatalogAdapter(client *Client, defaults EventDefaults) *CatalogAdapter {
	return &CatalogAdapter{client: client, defaults: defaults}
}

// rawEvent mirrors the backend's event record field names.
type rawEvent struct {
	ID                flexString `json:"id"`
	Name              string     `json:"name"`
	Description       string     `json:"description"`
	Date              string     `json:"date"`
	LocationAddress   string     `json:"location_address"`
	LocationName      string     `json:"location_name"`
	ImageURL          string     `json:"image_url"`
	Duration          int        `json:"duration"`
	MaxTicketsPerUser int        `json:"max_tickets_quantity_per_user"`
}

// ListEvents fetches GET /events and normalizes every record.
func (a *CatalogAdapter) ListEvents(ctx context.Context) ([]domain.Event, error) {
	res, err := a.client.do(ctx, http.MethodGet, "events_list", "/events", nil)
	if err != nil {
		return nil, &domain.CatalogError{Message: "could not load events", Cause: err}
	}
	if !res.ok() {
		return nil, &domain.CatalogError{Message: res.errorMessage()}
	}

	var raw []rawEvent
	if err := res.decode(&raw); err != nil {
		return nil, &domain.CatalogError{Message: "invalid event listing from backend", Cause: err}
	}

	events := make([]domain.Event, 0, len(raw))
	for _, r := range raw {
		events = append(events, a.normalize(r))
	}
	return events, nil
}

// GetEvent fetches GET /events/{id}.
func (a *CatalogAdapter) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	res, err := a.client.do(ctx, http.MethodGet, "events_get", "/events/"+id, nil)
	if err != nil {
		return nil, &domain.CatalogError{Message: "could not load event", Cause: err}
	}
	if res.status == http.StatusNotFound {
		return nil, &domain.CatalogError{Message: "event not found", Cause: domain.ErrEventNotFound}
	}
	if !res.ok() {
		return nil, &domain.CatalogError{Message: res.errorMessage()}
	}

	var raw rawEvent
	if err := res.decode(&raw); err != nil {
		return nil, &domain.CatalogError{Message: "invalid event record from backend", Cause: err}
	}

	event := a.normalize(raw)
	return &event, nil
}

// normalize maps one raw record to the Event shape, deriving the calendar
// date and clock time from the raw timestamp and filling price, category and
// featured flag from the configured placeholder rule.
func (a *CatalogAdapter) normalize(raw rawEvent) domain.Event {
	event := domain.Event{
		ID:                string(raw.ID),
		Name:              raw.Name,
		Description:       raw.Description,
		Date:              raw.Date,
		Venue:             raw.LocationName,
		Location:          raw.LocationAddress,
		Image:             raw.ImageURL,
		DurationHours:     raw.Duration,
		MaxTicketsPerUser: raw.MaxTicketsPerUser,
		Price:             a.defaults.Price,
		Category:          a.defaults.Category,
		Featured:          false,
	}

	if ts, err := time.Parse(time.RFC3339, raw.Date); err == nil {
		event.Date = ts.Format("2006-01-02")
		event.Time = ts.Format("15:04")
	}
	return event
}

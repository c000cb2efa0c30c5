package domain

// Event is an immutable snapshot of one listed event as normalized from the
// catalog backend. The client never mutates it locally.
type Event struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	Date              string `json:"date"` // YYYY-MM-DD
	Time              string `json:"time"` // HH:MM, derived from the raw timestamp
	Venue             string `json:"venue"`
	Location          string `json:"location"`
	Image             string `json:"image"`
	DurationHours     int    `json:"duration_hours"`
	MaxTicketsPerUser int    `json:"max_tickets_per_user"`

	// The backend does not supply these yet; they are filled from the
	// configured placeholder rule until the catalog grows the fields.
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Featured bool    `json:"featured"`
}

// TicketStock is one purchasable ticket tier for an event. ActualStock is
// whatever the backend last reported; the client only displays it and must
// re-fetch after any cart mutation to observe reservations.
type TicketStock struct {
	ID           string  `json:"id"`
	EventID      string  `json:"event_id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ActualStock  int     `json:"actual_stock"`
	InitialStock int     `json:"initial_stock"`
}

package domain

import "time"

// TicketStatus represents the lifecycle state of a purchased ticket.
type TicketStatus string

const (
	TicketActive  TicketStatus = "active"
	TicketUsed    TicketStatus = "used"
	TicketExpired TicketStatus = "expired"
)

// PurchasedTicket is one confirmed purchase produced by checkout: one record
// per distinct ticket tier that was in the cart. Immutable from the client's
// perspective once created.
type PurchasedTicket struct {
	ID           string       `json:"id"`
	TicketNumber string       `json:"ticket_number"`
	Event        *Event       `json:"event,omitempty"`
	TicketName   string       `json:"ticket_name"`
	Quantity     int          `json:"quantity"`
	PurchaseDate time.Time    `json:"purchase_date"`
	TotalPaid    float64      `json:"total_paid"`
	Status       TicketStatus `json:"status"`
}

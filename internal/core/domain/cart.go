package domain

import "time"

// CartState represents the lifecycle state of one user's cart reservation.
type CartState string

const (
	CartEmpty   CartState = "empty"
	CartActive  CartState = "active"
	CartExpired CartState = "expired"
)

// validCartTransitions defines the allowed state machine transitions.
// Active → Empty covers checkout and removal of the last line item;
// Expired → Empty is the local clear once the deadline has passed.
var validCartTransitions = map[CartState][]CartState{
	CartEmpty:   {CartActive},
	CartActive:  {CartActive, CartExpired, CartEmpty},
	CartExpired: {CartEmpty},
}

// CanTransitionTo reports whether a transition from the current state to next is valid.
func (s CartState) CanTransitionTo(next CartState) bool {
	for _, allowed := range validCartTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CartItem is one reserved line in a user's cart as held by the backend,
// plus denormalized display data resolved best-effort from the catalog.
// Lines are unique per ticket tier; the backend merges repeated adds.
type CartItem struct {
	TicketStockID string  `json:"ticket_stock_id"`
	Quantity      int     `json:"quantity"`
	TicketName    string  `json:"ticket_name,omitempty"`
	UnitPrice     float64 `json:"unit_price,omitempty"`
	Event         *Event  `json:"event,omitempty"`
}

// CartStatus is the expiration view of one cart derived by the monitor.
// A cart with zero items has no meaningful deadline.
type CartStatus struct {
	State                CartState `json:"state"`
	Deadline             time.Time `json:"deadline,omitzero"`
	TimeRemainingMinutes int       `json:"time_remaining_minutes"`
	IsExpired            bool      `json:"is_expired"`
}

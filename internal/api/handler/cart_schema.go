package handler

import "github.com/boleteria/storefront/internal/core/domain"

type addItemRequest struct {
	EventID       string `json:"event_id"        validate:"required"`
	TicketStockID string `json:"ticket_stock_id" validate:"required"`
	Quantity      int    `json:"quantity"        validate:"required,min=1"`
}

type removeItemRequest struct {
	TicketStockID string `json:"ticket_stock_id" validate:"required"`
}

type checkoutRequest struct {
	BuyerFullname string `json:"buyer_fullname" validate:"required"`
	BuyerEmail    string `json:"buyer_email"    validate:"required,email"`
}

// cartResponse pairs the mirror lines with the expiration view so a single
// fetch renders both the cart and its countdown.
type cartResponse struct {
	Items  []domain.CartItem `json:"items"`
	Status domain.CartStatus `json:"status"`
}

type checkoutResponse struct {
	Tickets []domain.PurchasedTicket `json:"tickets"`
}

type purchasesResponse struct {
	Tickets []domain.PurchasedTicket `json:"tickets"`
}

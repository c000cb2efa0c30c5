package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boleteria/storefront/internal/core/ports"
)

// EventHandler serves the public catalog: event listing, event detail and
// per-event ticket availability.
type EventHandler struct {
	catalog   ports.CatalogService
	inventory ports.InventoryService
}

func NewEventHandler(catalog ports.CatalogService, inventory ports.InventoryService) *EventHandler {
	return &EventHandler{catalog: catalog, inventory: inventory}
}

// List handles GET /events. A failed fetch propagates so the client can show
// its retry affordance; there is no cached fallback.
//
// @Summary      List events
// @Tags         events
// @Produce      json
// @Success      200  {array}   domain.Event
// @Failure      502  {object}  errorResponse
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.catalog.ListEvents(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Get handles GET /events/:id.
//
// @Summary      Event detail
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  domain.Event
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	event, err := h.catalog.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// TicketStocks handles GET /events/:id/tickets. An empty array is a valid
// answer meaning nothing is purchasable.
//
// @Summary      Ticket tiers for an event
// @Tags         events
// @Produce      json
// @Param        id   path      string  true  "Event ID"
// @Success      200  {array}   domain.TicketStock
// @Failure      502  {object}  errorResponse
// @Router       /events/{id}/tickets [get]
func (h *EventHandler) TicketStocks(c echo.Context) error {
	stocks, err := h.inventory.ListTicketStocks(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stocks)
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boleteria/storefront/internal/core/ports"
)

// CartHandler serves the authenticated cart surface: mirror, expiration
// status, mutations, checkout and purchase history.
type CartHandler struct {
	carts   ports.CartService
	monitor ports.CartMonitor
}

func NewCartHandler(carts ports.CartService, monitor ports.CartMonitor) *CartHandler {
	return &CartHandler{carts: carts, monitor: monitor}
}

// Get handles GET /cart. Fetch failures degrade to an empty cart, so this
// only errors on a missing session.
//
// @Summary      Cart contents and expiration status
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cartResponse
// @Failure      401  {object}  errorResponse
// @Router       /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	items, err := h.carts.GetCart(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, cartResponse{
		Items:  items,
		Status: h.monitor.Status(user.ID),
	})
}

// Status handles GET /cart/status: the countdown poll, cheap enough for
// every render tick.
//
// @Summary      Cart expiration status
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.CartStatus
// @Router       /cart/status [get]
func (h *CartHandler) Status(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.monitor.Status(user.ID))
}

// AddItem handles POST /cart/items.
//
// @Summary      Reserve tickets
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addItemRequest  true  "Reservation"
// @Success      200   {object}  cartResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.carts.AddItem(ctx, ports.AddItemInput{
		UserID:        user.ID,
		EventID:       req.EventID,
		TicketStockID: req.TicketStockID,
		Quantity:      req.Quantity,
	}); err != nil {
		return err
	}

	items, err := h.carts.GetCart(ctx, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartResponse{Items: items, Status: h.monitor.Status(user.ID)})
}

// RemoveItem handles POST /cart/remove.
//
// @Summary      Remove a cart line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      removeItemRequest  true  "Line to remove"
// @Success      200   {object}  cartResponse
// @Failure      422   {object}  errorResponse
// @Router       /cart/remove [post]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req removeItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	if err := h.carts.RemoveItem(ctx, user.ID, req.TicketStockID); err != nil {
		return err
	}

	items, err := h.carts.GetCart(ctx, user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cartResponse{Items: items, Status: h.monitor.Status(user.ID)})
}

// Checkout handles POST /cart/checkout.
//
// @Summary      Convert the cart into purchased tickets
// @Tags         cart
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      checkoutRequest  true  "Buyer details"
// @Success      200   {object}  checkoutResponse
// @Failure      422   {object}  errorResponse
// @Router       /cart/checkout [post]
func (h *CartHandler) Checkout(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	tickets, err := h.carts.Checkout(c.Request().Context(), ports.CheckoutInput{
		UserID:        user.ID,
		BuyerFullname: req.BuyerFullname,
		BuyerEmail:    req.BuyerEmail,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checkoutResponse{Tickets: tickets})
}

// Purchases handles GET /purchases.
//
// @Summary      Purchase history
// @Tags         cart
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  purchasesResponse
// @Router       /purchases [get]
func (h *CartHandler) Purchases(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	tickets, err := h.carts.ListPurchases(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, purchasesResponse{Tickets: tickets})
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/boleteria/storefront/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps the domain error taxonomy to deterministic HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
//
// No failure is fatal: whatever the backend does, the storefront keeps
// answering.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Typed client errors carry a message meant for the user.
	var authErr *domain.AuthError
	if errors.As(err, &authErr) {
		return http.StatusUnauthorized, authErr.Message
	}
	var cartErr *domain.CartError
	if errors.As(err, &cartErr) {
		return http.StatusUnprocessableEntity, cartErr.Message
	}
	var catalogErr *domain.CatalogError
	if errors.As(err, &catalogErr) {
		if errors.Is(err, domain.ErrEventNotFound) {
			return http.StatusNotFound, catalogErr.Message
		}
		return http.StatusBadGateway, catalogErr.Message
	}
	var invErr *domain.InventoryError
	if errors.As(err, &invErr) {
		return http.StatusBadGateway, invErr.Message
	}
	var netErr *domain.NetworkError
	if errors.As(err, &netErr) {
		return http.StatusBadGateway, netErr.Message
	}

	switch {
	case errors.Is(err, domain.ErrNotAuthenticated), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, "not authenticated"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/boleteria/storefront/internal/api/middleware"
	"github.com/boleteria/storefront/internal/core/domain"
)

// ctxUser extracts the authenticated user injected by the Session middleware
// and fast-fails before any service call when it is missing: presence proves
// the middleware ran and resolved a live session.
func ctxUser(c echo.Context) (domain.User, error) {
	user, ok := middleware.UserFrom(c)
	if !ok || user.ID == "" {
		return domain.User{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	return user, nil
}

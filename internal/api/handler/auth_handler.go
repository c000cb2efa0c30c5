package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/boleteria/storefront/internal/api/middleware"
	"github.com/boleteria/storefront/internal/core/ports"
)

// AuthHandler exposes login, registration, logout and the current-user query.
type AuthHandler struct {
	sessions   ports.SessionService
	jwtSecret  string
	sessionTTL time.Duration
}

func NewAuthHandler(sessions ports.SessionService, jwtSecret string, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{sessions: sessions, jwtSecret: jwtSecret, sessionTTL: sessionTTL}
}

// Login authenticates against the ticketing backend and returns the signed
// session token the browser sends on subsequent requests.
//
// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	session, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	token, err := middleware.SignSession(h.jwtSecret, session.ID, h.sessionTTL)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, sessionResponse{
		Token:     token,
		User:      session.User,
		ExpiresAt: session.CreatedAt.Add(h.sessionTTL),
	})
}

// Register creates an account. The new user logs in separately.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		Name:       req.Name,
		SecondName: req.SecondName,
		Email:      req.Email,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, userResponse{User: *user})
}

// Logout clears the session. Always succeeds: logging out an already-gone
// session is a no-op.
//
// @Summary      Log out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.Logout(c.Request().Context(), middleware.SessionIDFrom(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "session closed"})
}

// Me returns the authenticated user for session hydration on page load.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

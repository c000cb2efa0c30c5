package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/boleteria/storefront/internal/backend"
	"github.com/boleteria/storefront/internal/core/domain"
	"github.com/boleteria/storefront/internal/core/ports"
)

// SignSession mints the HS256 token handed to the browser on login. It
// carries only the session ID; the backend bearer token never leaves the
// server.
func SignSession(jwtSecret, sessionID string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"exp": time.Now().Add(ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(jwtSecret))
}

// parseSessionID validates the token and extracts the session ID.
func parseSessionID(jwtSecret, token string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return "", jwt.ErrTokenUnverifiable
	}
	sid, _ := claims["sid"].(string)
	return sid, nil
}

// bearerToken extracts the raw token from the Authorization header. Empty
// when the header is missing or malformed.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// Session resolves the browser's session token into the stored session and
// injects identity into the request: the user and session ID on the echo
// context, the backend bearer token on the request context. Requests without
// a valid session are rejected with 401.
func Session(jwtSecret string, sessions ports.SessionRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			sid, err := parseSessionID(jwtSecret, token)
			if err != nil || sid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid session token")
			}

			session, err := sessions.Find(c.Request().Context(), sid)
			if err != nil || !session.Valid() {
				return echo.NewHTTPError(http.StatusUnauthorized, "session expired")
			}

			c.Set("session_id", session.ID)
			c.Set("user", session.User)

			req := c.Request()
			c.SetRequest(req.WithContext(backend.WithBearer(req.Context(), session.Token)))

			return next(c)
		}
	}
}

// OptionalSession is Session without the rejection: anonymous requests pass
// through with no identity set. Used by logout so it stays idempotent even
// with a stale or missing token.
func OptionalSession(jwtSecret string, sessions ports.SessionRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := bearerToken(c); token != "" {
				if sid, err := parseSessionID(jwtSecret, token); err == nil && sid != "" {
					c.Set("session_id", sid)
					if session, err := sessions.Find(c.Request().Context(), sid); err == nil && session.Valid() {
						c.Set("user", session.User)
					}
				}
			}
			return next(c)
		}
	}
}

// UserFrom returns the authenticated user injected by Session, if any.
func UserFrom(c echo.Context) (domain.User, bool) {
	user, ok := c.Get("user").(domain.User)
	return user, ok
}

// SessionIDFrom returns the session ID injected by Session or OptionalSession.
func SessionIDFrom(c echo.Context) string {
	sid, _ := c.Get("session_id").(string)
	return sid
}

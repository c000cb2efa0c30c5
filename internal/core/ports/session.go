package ports

import (
	"context"

	"github.com/boleteria/storefront/internal/core/domain"
)

// SessionService owns the authenticated user and the backend bearer token for
// the lifetime of a browser session.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	// Logout clears user and token unconditionally. Idempotent.
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, sessionID string) (*domain.User, error)
	// IsAuthenticated reports client-side authenticated state only; it does
	// not verify token validity against the backend.
	IsAuthenticated(ctx context.Context, sessionID string) bool
}

// SessionRepository persists sessions across requests (the durable storage
// mirror). A stored session always holds its user; tokens are never retained
// without one.
type SessionRepository interface {
	Save(ctx context.Context, session *domain.Session) error
	Find(ctx context.Context, sessionID string) (*domain.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

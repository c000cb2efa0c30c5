package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/boleteria/storefront/internal/api/metrics"
	"github.com/boleteria/storefront/internal/core/domain"
	"github.com/boleteria/storefront/internal/core/ports"
)

// SessionService owns login, logout and the authenticated-state queries.
// The backend bearer token lives and dies with its user record.
type SessionService struct {
	auth     ports.AuthBackend
	sessions ports.SessionRepository
	monitor  ports.CartMonitor
	log      zerolog.Logger
	now      func() time.Time
}

func NewSessionService(auth ports.AuthBackend, sessions ports.SessionRepository, monitor ports.CartMonitor, log zerolog.Logger) *SessionService {
	return &SessionService{
		auth:     auth,
		sessions: sessions,
		monitor:  monitor,
		log:      log,
		now:      time.Now,
	}
}

// Login authenticates against the backend and persists the resulting session.
// Input is validated before any network call; the backend remains the
// authority on whether the credentials are actually valid.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if email == "" || password == "" {
		return nil, &domain.AuthError{Message: "email and password are required"}
	}
	if !strings.Contains(email, "@") {
		return nil, &domain.AuthError{Message: "invalid email"}
	}

	result, err := s.auth.Login(ctx, email, password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, err
	}

	now := s.now().UTC()
	token := result.Token
	if token == "" {
		// Some backend revisions authenticate without issuing a token; a
		// generated one keeps the session shape uniform.
		token = fmt.Sprintf("token_%d", now.UnixMilli())
	}

	session := &domain.Session{
		ID: uuid.NewString(),
		User: domain.User{
			ID:        result.ID,
			Name:      result.Name,
			Email:     result.Email,
			LoginTime: now,
		},
		Token:     token,
		CreatedAt: now,
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		s.log.Error().Err(err).Msg("failed to persist session")
		return nil, &domain.AuthError{Message: "could not store session", Cause: err}
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("user_id", session.User.ID).Msg("user logged in")
	return session, nil
}

// Register creates an account via the auth backend. The new user still has
// to log in afterwards; registration issues no session.
func (s *SessionService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, &domain.AuthError{Message: "name, email and password are required"}
	}
	if !strings.Contains(input.Email, "@") {
		return nil, &domain.AuthError{Message: "invalid email"}
	}

	result, err := s.auth.Register(ctx, input)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", result.ID).Msg("user registered")
	return &domain.User{ID: result.ID, Name: result.Name, Email: result.Email}, nil
}

// Logout clears the session unconditionally and cancels the user's cart
// watcher so no stale refresh runs on behalf of a gone session. Idempotent:
// logging out an unknown session succeeds.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if session, err := s.sessions.Find(ctx, sessionID); err == nil && session.User.ID != "" {
		s.monitor.Stop(session.User.ID)
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.log.Warn().Err(err).Msg("failed to delete session")
		return err
	}
	return nil
}

// CurrentUser returns the session's user, or ErrNotAuthenticated when the
// session is absent or no longer identifies a user.
func (s *SessionService) CurrentUser(ctx context.Context, sessionID string) (*domain.User, error) {
	session, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		return nil, domain.ErrNotAuthenticated
	}
	if !session.Valid() {
		// A token without its user is never kept around.
		_ = s.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrNotAuthenticated
	}
	user := session.User
	return &user, nil
}

// IsAuthenticated reports whether the session holds a user or token. It does
// not verify the token against the backend: a stale token counts as
// authenticated until a protected call fails.
func (s *SessionService) IsAuthenticated(ctx context.Context, sessionID string) bool {
	session, err := s.sessions.Find(ctx, sessionID)
	return err == nil && session.Valid()
}

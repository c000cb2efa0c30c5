package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/boleteria/storefront/internal/core/domain"
	"github.com/boleteria/storefront/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubAuthBackend struct {
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	registerFn func(ctx context.Context, input ports.RegisterInput) (*ports.RegisterResult, error)
	loginCalls int
}

func (s *stubAuthBackend) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	s.loginCalls++
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthBackend) Register(ctx context.Context, input ports.RegisterInput) (*ports.RegisterResult, error) {
	return s.registerFn(ctx, input)
}

type stubSessionRepo struct {
	sessions map[string]*domain.Session
	saveErr  error
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *stubSessionRepo) Save(_ context.Context, session *domain.Session) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	clone := *session
	r.sessions[session.ID] = &clone
	return nil
}

func (r *stubSessionRepo) Find(_ context.Context, sessionID string) (*domain.Session, error) {
	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (r *stubSessionRepo) Delete(_ context.Context, sessionID string) error {
	delete(r.sessions, sessionID)
	return nil
}

type stubMonitor struct {
	stopped  []string
	observed map[string]int
}

func newStubMonitor() *stubMonitor {
	return &stubMonitor{observed: make(map[string]int)}
}

func (m *stubMonitor) Observe(userID string, lines int, _ time.Time) { m.observed[userID] = lines }
func (m *stubMonitor) Status(_ string) domain.CartStatus {
	return domain.CartStatus{State: domain.CartEmpty}
}
func (m *stubMonitor) Stop(userID string) { m.stopped = append(m.stopped, userID) }

func newSessionService(auth *stubAuthBackend, repo *stubSessionRepo, monitor *stubMonitor) *SessionService {
	return NewSessionService(auth, repo, monitor, zerolog.Nop())
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestSessionService_Login_Success(t *testing.T) {
	auth := &stubAuthBackend{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "a@b.com" || password != "pw" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return &ports.LoginResult{ID: "1", Name: "A", Email: "a@b.com"}, nil
		},
	}
	repo := newStubSessionRepo()
	svc := newSessionService(auth, repo, newStubMonitor())

	session, err := svc.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.User.ID != "1" || session.User.Name != "A" || session.User.Email != "a@b.com" {
		t.Fatalf("unexpected user: %+v", session.User)
	}
	if session.User.LoginTime.IsZero() {
		t.Fatalf("expected login time to be set")
	}
	if session.Token == "" {
		t.Fatalf("expected a fallback token when the backend issues none")
	}
	if !svc.IsAuthenticated(context.Background(), session.ID) {
		t.Fatalf("expected IsAuthenticated to be true after login")
	}
}

func TestSessionService_Login_KeepsBackendToken(t *testing.T) {
	auth := &stubAuthBackend{
		loginFn: func(_ context.Context, _, _ string) (*ports.LoginResult, error) {
			return &ports.LoginResult{ID: "7", Name: "Bea", Email: "bea@example.com", Token: "backend-token"}, nil
		},
	}
	svc := newSessionService(auth, newStubSessionRepo(), newStubMonitor())

	session, err := svc.Login(context.Background(), "bea@example.com", "secret")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if session.Token != "backend-token" {
		t.Fatalf("expected backend token to be kept, got %q", session.Token)
	}
}

func TestSessionService_Login_ValidatesBeforeNetwork(t *testing.T) {
	auth := &stubAuthBackend{
		loginFn: func(_ context.Context, _, _ string) (*ports.LoginResult, error) {
			t.Fatalf("backend must not be called for invalid input")
			return nil, nil
		},
	}
	svc := newSessionService(auth, newStubSessionRepo(), newStubMonitor())

	cases := []struct {
		name, email, password string
	}{
		{"missing email", "", "pw"},
		{"missing password", "a@b.com", ""},
		{"malformed email", "not-an-email", "pw"},
	}
	for _, tc := range cases {
		if _, err := svc.Login(context.Background(), tc.email, tc.password); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if auth.loginCalls != 0 {
			t.Fatalf("%s: backend was called", tc.name)
		}
	}
}

func TestSessionService_Login_BackendRejection(t *testing.T) {
	auth := &stubAuthBackend{
		loginFn: func(_ context.Context, _, _ string) (*ports.LoginResult, error) {
			return nil, &domain.AuthError{Message: "credentials rejected", Cause: domain.ErrInvalidCredentials}
		},
	}
	svc := newSessionService(auth, newStubSessionRepo(), newStubMonitor())

	_, err := svc.Login(context.Background(), "a@b.com", "wrong")
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
}

func TestSessionService_Logout_Idempotent(t *testing.T) {
	auth := &stubAuthBackend{
		loginFn: func(_ context.Context, _, _ string) (*ports.LoginResult, error) {
			return &ports.LoginResult{ID: "1", Name: "A", Email: "a@b.com"}, nil
		},
	}
	repo := newStubSessionRepo()
	monitor := newStubMonitor()
	svc := newSessionService(auth, repo, monitor)

	session, err := svc.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if err := svc.Logout(context.Background(), session.ID); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}
	if len(monitor.stopped) != 1 || monitor.stopped[0] != "1" {
		t.Fatalf("expected cart watcher stopped for user 1, got %v", monitor.stopped)
	}
	if svc.IsAuthenticated(context.Background(), session.ID) {
		t.Fatalf("expected IsAuthenticated false after logout")
	}
	if _, err := svc.CurrentUser(context.Background(), session.ID); err == nil {
		t.Fatalf("expected CurrentUser to fail after logout")
	}

	// Second logout of the same (now gone) session must also succeed.
	if err := svc.Logout(context.Background(), session.ID); err != nil {
		t.Fatalf("repeated Logout returned error: %v", err)
	}
	if err := svc.Logout(context.Background(), ""); err != nil {
		t.Fatalf("Logout with empty session returned error: %v", err)
	}
}

func TestSessionService_CurrentUser(t *testing.T) {
	auth := &stubAuthBackend{
		loginFn: func(_ context.Context, _, _ string) (*ports.LoginResult, error) {
			return &ports.LoginResult{ID: "9", Name: "Caro", Email: "caro@example.com"}, nil
		},
	}
	svc := newSessionService(auth, newStubSessionRepo(), newStubMonitor())

	session, err := svc.Login(context.Background(), "caro@example.com", "pw")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	user, err := svc.CurrentUser(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("CurrentUser returned error: %v", err)
	}
	if user.ID != "9" || user.Name != "Caro" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.CurrentUser(context.Background(), "unknown-session"); err == nil {
		t.Fatalf("expected error for unknown session")
	}
}

func TestSessionService_Register(t *testing.T) {
	auth := &stubAuthBackend{
		registerFn: func(_ context.Context, input ports.RegisterInput) (*ports.RegisterResult, error) {
			if input.SecondName != "García" {
				t.Fatalf("unexpected second name: %s", input.SecondName)
			}
			return &ports.RegisterResult{ID: "12", Name: input.Name, Email: input.Email}, nil
		},
	}
	svc := newSessionService(auth, newStubSessionRepo(), newStubMonitor())

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name:       "Ana",
		SecondName: "García",
		Email:      "ana@example.com",
		Password:   "secret",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID != "12" || user.Name != "Ana" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Ana"}); err == nil {
		t.Fatalf("expected validation error for incomplete input")
	}
}

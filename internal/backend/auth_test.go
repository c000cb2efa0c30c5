package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/boleteria/storefront/internal/core/domain"
	"github.com/boleteria/storefront/internal/core/ports"
)

func TestAuthAdapter_Login_Success(t *testing.T) {
	adapter := NewAuthAdapter(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("bad request body: %v", err)
		}
		if payload["email"] != "a@b.com" || payload["password"] != "pw" {
			t.Fatalf("unexpected credentials: %v", payload)
		}
		w.Write([]byte(`{"id":1,"name":"A","email":"a@b.com","token":"tok"}`))
	}))

	result, err := adapter.Login(context.Background(), "a@b.com", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID != "1" || result.Name != "A" || result.Token != "tok" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestAuthAdapter_Login_FieldNameDrift(t *testing.T) {
	adapter := NewAuthAdapter(newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"user_id":"7","username":"bee"}`))
	}))

	result, err := adapter.Login(context.Background(), "b@c.com", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID != "7" || result.Name != "bee" {
		t.Fatalf("drifted fields not normalized: %+v", result)
	}
	if result.Email != "b@c.com" {
		t.Fatalf("expected email fallback to the submitted one, got %q", result.Email)
	}
}

func TestAuthAdapter_Login_ErrorInsideOKBody(t *testing.T) {
	adapter := NewAuthAdapter(newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"error":"wrong password"}`))
	}))

	_, err := adapter.Login(context.Background(), "a@b.com", "bad")
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.Message != "wrong password" {
		t.Fatalf("backend message must surface, got %q", authErr.Message)
	}
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials in chain, got %v", err)
	}
}

func TestAuthAdapter_Login_NonOKStatus(t *testing.T) {
	adapter := NewAuthAdapter(newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte("Invalid credentials"))
	}))

	_, err := adapter.Login(context.Background(), "a@b.com", "bad")
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.Message != "Invalid credentials" {
		t.Fatalf("plain-text body must surface, got %q", authErr.Message)
	}
}

func TestAuthAdapter_Login_EmptyBody(t *testing.T) {
	adapter := NewAuthAdapter(newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	if _, err := adapter.Login(context.Background(), "a@b.com", "pw"); err == nil {
		t.Fatalf("a body with no identity fields must be rejected")
	}
}

func TestAuthAdapter_Register_Success(t *testing.T) {
	adapter := NewAuthAdapter(newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"9","name":"New","email":"n@x.com"}`))
	}))

	result, err := adapter.Register(context.Background(), ports.RegisterInput{
		Name: "New", Email: "n@x.com", Password: "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID != "9" || result.Name != "New" || result.Email != "n@x.com" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestAuthAdapter_Register_StatusError(t *testing.T) {
	adapter := NewAuthAdapter(newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"status":"error","message":"email already taken"}`))
	}))

	_, err := adapter.Register(context.Background(), ports.RegisterInput{
		Name: "New", Email: "n@x.com", Password: "secret",
	})
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected AuthError, got %v", err)
	}
	if authErr.Message != "email already taken" {
		t.Fatalf("unexpected message: %q", authErr.Message)
	}
}

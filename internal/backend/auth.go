package backend

import (
	"context"
	"net/http"

	"github.com/boleteria/storefront/internal/core/domain"
	"github.com/boleteria/storefront/internal/core/ports"
)

// AuthAdapter implements ports.AuthBackend against the auth service.
type AuthAdapter struct {
	client *Client
}

func NewAuthAdapter(client *Client) *AuthAdapter {
	return &AuthAdapter{client: client}
}

// rawAuthResponse covers the field-name drift between backend revisions:
// id vs user_id, name vs username, plus error reporting inside a 200 body.
type rawAuthResponse struct {
	ID       flexString `json:"id"`
	UserID   flexString `json:"user_id"`
	Name     string     `json:"name"`
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Token    string     `json:"token"`
	Message  string     `json:"message"`
	Error    string     `json:"error"`
	Status   string     `json:"status"`
}

// Login authenticates against POST /auth/login and normalizes the response.
func (a *AuthAdapter) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	payload := map[string]string{"email": email, "password": password}

	res, err := a.client.do(ctx, http.MethodPost, "auth_login", "/auth/login", payload)
	if err != nil {
		return nil, &domain.AuthError{Message: "auth backend unreachable", Cause: err}
	}
	if !res.ok() {
		return nil, &domain.AuthError{Message: res.errorMessage(), Cause: domain.ErrInvalidCredentials}
	}

	var raw rawAuthResponse
	if err := res.decode(&raw); err != nil {
		return nil, &domain.AuthError{Message: "invalid response from auth backend", Cause: err}
	}
	if raw.Error != "" || raw.Status == "error" {
		return nil, &domain.AuthError{Message: firstNonEmpty(raw.Message, raw.Error, "credentials rejected"), Cause: domain.ErrInvalidCredentials}
	}

	if raw.ID == "" && raw.UserID == "" && raw.Name == "" && raw.Username == "" && raw.Email == "" && raw.Token == "" {
		return nil, &domain.AuthError{Message: "invalid response from auth backend"}
	}

	return &ports.LoginResult{
		ID:    firstNonEmpty(string(raw.ID), string(raw.UserID)),
		Name:  firstNonEmpty(raw.Name, raw.Username),
		Email: firstNonEmpty(raw.Email, email),
		Token: raw.Token,
	}, nil
}

// Register creates an account via POST /users.
func (a *AuthAdapter) Register(ctx context.Context, input ports.RegisterInput) (*ports.RegisterResult, error) {
	payload := map[string]string{
		"name":        input.Name,
		"second_name": input.SecondName,
		"email":       input.Email,
		"password":    input.Password,
	}

	res, err := a.client.do(ctx, http.MethodPost, "auth_register", "/users", payload)
	if err != nil {
		return nil, &domain.AuthError{Message: "auth backend unreachable", Cause: err}
	}
	if !res.ok() {
		return nil, &domain.AuthError{Message: res.errorMessage()}
	}

	var raw rawAuthResponse
	if err := res.decode(&raw); err != nil {
		return nil, &domain.AuthError{Message: "invalid response from auth backend", Cause: err}
	}
	if raw.Error != "" || raw.Status == "error" {
		return nil, &domain.AuthError{Message: firstNonEmpty(raw.Message, raw.Error, "registration rejected")}
	}

	result := &ports.RegisterResult{
		ID:    string(raw.ID),
		Name:  firstNonEmpty(raw.Name, input.Name),
		Email: firstNonEmpty(raw.Email, input.Email),
	}
	if result.ID == "" && raw.Name == "" && raw.Email == "" {
		return nil, &domain.AuthError{Message: "invalid response from auth backend"}
	}
	return result, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

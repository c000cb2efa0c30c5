package handler

import (
	"time"

	"github.com/boleteria/storefront/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name       string `json:"name"        validate:"required"`
	SecondName string `json:"second_name"`
	Email      string `json:"email"       validate:"required,email"`
	Password   string `json:"password"    validate:"required,min=3"`
}

type sessionResponse struct {
	Token     string      `json:"token"`
	User      domain.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

type userResponse struct {
	User domain.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}

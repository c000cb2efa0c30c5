package domain

import "errors"

var ErrNotAuthenticated = errors.New("not authenticated")
var ErrSessionNotFound = errors.New("session not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrEmptyCart = errors.New("cart is empty")
var ErrCartExpired = errors.New("cart has expired")
var ErrEventNotFound = errors.New("event not found")

// AuthError covers rejected credentials, malformed login input and an
// unreachable auth backend.
type AuthError struct {
	Message string
	Cause   error
}

func (e *AuthError) Error() string { return "auth: " + e.Message }
func (e *AuthError) Unwrap() error { return e.Cause }

// CatalogError is returned when the event listing or detail fetch fails.
// Callers surface it and offer a retry, they never fall back to stale data.
type CatalogError struct {
	Message string
	Cause   error
}

func (e *CatalogError) Error() string { return "catalog: " + e.Message }
func (e *CatalogError) Unwrap() error { return e.Cause }

// InventoryError is returned when ticket stock levels cannot be fetched.
// An empty stock list is a valid result, not an InventoryError.
type InventoryError struct {
	Message string
	Cause   error
}

func (e *InventoryError) Error() string { return "inventory: " + e.Message }
func (e *InventoryError) Unwrap() error { return e.Cause }

// CartError carries the backend's human-readable message for rejected cart
// mutations (oversold quantity, per-user maximum, expired reservation) and
// for local validation failures before any network call is made.
type CartError struct {
	Message string
	Cause   error
}

func (e *CartError) Error() string { return "cart: " + e.Message }
func (e *CartError) Unwrap() error { return e.Cause }

// NetworkError wraps generic connectivity failures when no more specific
// backend message is available.
type NetworkError struct {
	Message string
	Cause   error
}

func (e *NetworkError) Error() string { return "network: " + e.Message }
func (e *NetworkError) Unwrap() error { return e.Cause }

package domain

import "time"

// User models the authenticated storefront visitor as normalized from the
// auth backend's login response.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	LoginTime time.Time `json:"login_time"`
}

// Session ties a User to the opaque bearer token issued by the auth backend.
// The two share a lifecycle: a token is never retained without its user, and
// logout removes both.
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

// Valid reports whether the session still identifies a user. A token or a
// user record alone is enough to count as authenticated client-side; token
// validity against the backend is only discovered when a protected call fails.
func (s *Session) Valid() bool {
	return s != nil && (s.Token != "" || s.User.ID != "")
}

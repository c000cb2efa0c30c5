package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/boleteria/storefront/internal/core/domain"
)

// SessionRepository persists sessions as JSON values with a TTL. It is the
// durable mirror of the browser session: a session survives process restarts
// until logout or expiry.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a SessionRepository. Sessions expire after ttl
// of inactivity; Save refreshes the TTL.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

// Save stores the session. Sessions without a user are rejected: a token is
// never retained without its user.
func (r *SessionRepository) Save(ctx context.Context, session *domain.Session) error {
	if session.User.ID == "" {
		return domain.ErrNotAuthenticated
	}
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.client.Set(ctx, r.key(session.ID), raw, r.ttl).Err()
}

// Find returns the stored session or domain.ErrSessionNotFound.
func (r *SessionRepository) Find(ctx context.Context, sessionID string) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, r.key(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session domain.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Delete removes the session. Deleting an absent session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, r.key(sessionID)).Err()
}

func (r *SessionRepository) key(sessionID string) string {
	return "session:" + sessionID
}

package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/boleteria/storefront/internal/api/metrics"
	"github.com/boleteria/storefront/internal/core/domain"
	"github.com/boleteria/storefront/internal/core/ports"
)

// CartMonitor tracks each user's reservation deadline and owns the periodic
// cart refresh. State machine per cart: Empty → Active(deadline) → Expired →
// Empty. Expiry is evaluated on every Status query, not only on refresh
// ticks; the Expired state is sticky until the next cart read clears it.
//
// Every watcher is a context-owned goroutine cancelled on logout, user
// change, and process shutdown, so no refresh ever acts on a gone session.
type CartMonitor struct {
	backend  ports.CartBackend
	ttl      time.Duration
	interval time.Duration
	log      zerolog.Logger
	now      func() time.Time

	mu      sync.Mutex
	watches map[string]*cartWatch
}

type cartWatch struct {
	state    domain.CartState
	deadline time.Time
	cancel   context.CancelFunc
}

// NewCartMonitor creates a monitor. ttl is the fallback reservation window
// applied only when the backend communicates no deadline; interval is the
// periodic refresh cadence.
func NewCartMonitor(backend ports.CartBackend, ttl, interval time.Duration, log zerolog.Logger) *CartMonitor {
	return &CartMonitor{
		backend:  backend,
		ttl:      ttl,
		interval: interval,
		log:      log,
		now:      time.Now,
		watches:  make(map[string]*cartWatch),
	}
}

// Observe records the result of a cart fetch and drives the state machine.
// A non-empty cart enters Active and starts the refresh watcher; an empty
// cart tears the watcher down. A refresh never resets the deadline unless
// the backend communicated a new expiry.
func (m *CartMonitor) Observe(userID string, lines int, serverExpiry time.Time) {
	if userID == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	watch := m.watches[userID]

	if lines == 0 {
		if watch != nil {
			m.teardownLocked(userID, watch)
		}
		return
	}

	if watch != nil && watch.state == domain.CartActive {
		if !serverExpiry.IsZero() && !serverExpiry.Equal(watch.deadline) {
			watch.deadline = serverExpiry
		}
		return
	}

	// New Active entry, either from Empty or after a locally expired cart
	// came back non-empty from the backend.
	if watch != nil {
		m.teardownLocked(userID, watch)
	}

	deadline := serverExpiry
	if deadline.IsZero() {
		deadline = m.now().Add(m.ttl)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.watches[userID] = &cartWatch{
		state:    domain.CartActive,
		deadline: deadline,
		cancel:   cancel,
	}

	metrics.CartWatchersActive.Inc()
	go m.runWatcher(ctx, userID)

	m.log.Debug().Str("user_id", userID).Time("deadline", deadline).Msg("cart reservation active")
}

// Status returns the expiration view of the user's cart, transitioning
// Active → Expired the instant the deadline has passed.
func (m *CartMonitor) Status(userID string) domain.CartStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	watch := m.watches[userID]
	if watch == nil {
		return domain.CartStatus{State: domain.CartEmpty}
	}

	now := m.now()
	if watch.state == domain.CartActive && !now.Before(watch.deadline) {
		m.expireLocked(userID, watch)
	}

	status := domain.CartStatus{
		State:     watch.state,
		Deadline:  watch.deadline,
		IsExpired: watch.state == domain.CartExpired,
	}
	if watch.state == domain.CartActive {
		status.TimeRemainingMinutes = int(watch.deadline.Sub(now).Minutes())
	}
	return status
}

// Stop cancels the user's watcher and forgets the cart state. Used on
// logout and user change.
func (m *CartMonitor) Stop(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if watch := m.watches[userID]; watch != nil {
		m.teardownLocked(userID, watch)
	}
}

// StopAll tears down every watcher. Used on process shutdown.
func (m *CartMonitor) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for userID, watch := range m.watches {
		m.teardownLocked(userID, watch)
	}
}

// expireLocked performs the Active → Expired transition. The watcher stops;
// the entry stays so Status keeps reporting IsExpired until a cart read
// observes the cleared mirror.
func (m *CartMonitor) expireLocked(userID string, watch *cartWatch) {
	if !watch.state.CanTransitionTo(domain.CartExpired) {
		return
	}
	watch.state = domain.CartExpired
	if watch.cancel != nil {
		watch.cancel()
		watch.cancel = nil
		metrics.CartWatchersActive.Dec()
	}
	metrics.CartsExpiredTotal.Inc()
	m.log.Info().Str("user_id", userID).Msg("cart reservation expired")
}

func (m *CartMonitor) teardownLocked(userID string, watch *cartWatch) {
	if watch.cancel != nil {
		watch.cancel()
		watch.cancel = nil
		metrics.CartWatchersActive.Dec()
	}
	delete(m.watches, userID)
}

// runWatcher periodically re-fetches the cart while it is Active. Fetch
// failures are ignored: the refresh is a read of an idempotent endpoint and
// the next tick tries again.
func (m *CartMonitor) runWatcher(ctx context.Context, userID string) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if status := m.Status(userID); status.State != domain.CartActive {
				return
			}

			fetchCtx, cancel := context.WithTimeout(ctx, m.interval)
			snapshot, err := m.backend.GetCart(fetchCtx, userID)
			cancel()
			if err != nil {
				m.log.Debug().Err(err).Str("user_id", userID).Msg("cart refresh failed")
				continue
			}
			m.Observe(userID, len(snapshot.Lines), snapshot.ExpiresAt)
		}
	}
}

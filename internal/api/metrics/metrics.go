// Package metrics defines and registers all custom Prometheus metrics for the
// storefront. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time;
// the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Backend client metrics ────────────────────────────────────────────────────

// BackendRequestsTotal counts requests to the ticketing backend.
// Labels:
//   - endpoint: logical operation name (e.g. "cart_add", "events_list")
//   - status: HTTP status code, or "unreachable" / "read_error" on transport failure
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests made to the ticketing backend.",
	},
	[]string{"endpoint", "status"},
)

// BackendRequestDuration measures backend request latency per endpoint.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the ticketing backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartItemsAddedTotal counts successful reservations, by event.
var CartItemsAddedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_items_added_total",
		Help:      "Total number of ticket reservations added to carts.",
	},
	[]string{"event_id"},
)

// CartsExpiredTotal counts carts cleared locally because their reservation
// deadline passed.
var CartsExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "carts_expired_total",
		Help:      "Total number of carts cleared after reservation expiry.",
	},
)

// CheckoutsTotal counts checkout attempts.
// Label:
//   - result: "success", "rejected", or "error"
var CheckoutsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Total number of checkout attempts, by result.",
	},
	[]string{"result"},
)

// CartWatchersActive tracks the number of cart expiration watchers currently
// running.
var CartWatchersActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cart_watchers_active",
		Help:      "Current number of running cart expiration watchers.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// Package metrics defines and registers the custom Prometheus metrics of the
// storefront. It is the single source of truth for metric names, labels and
// help strings. Metrics register with the default registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lumina"

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartAddsTotal counts add-to-cart operations.
// Label:
//   - category: product category slug (e.g. "clothing")
var CartAddsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_adds_total",
		Help:      "Total number of add-to-cart operations, by product category.",
	},
	[]string{"category"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Labels:
//   - mode: "sign-in" or "sign-up"
//   - result: "customer", "administrator" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by mode and outcome.",
	},
	[]string{"mode", "result"},
)

// ── Chat metrics ──────────────────────────────────────────────────────────────

// ChatSendsTotal counts chat sends.
// Label:
//   - result: "accepted", "busy" or "empty"
var ChatSendsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_sends_total",
		Help:      "Total number of chat messages submitted, by admission result.",
	},
	[]string{"result"},
)

// ChatFragmentsTotal counts fragments applied to assistant messages.
var ChatFragmentsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_fragments_total",
		Help:      "Total number of streamed reply fragments applied.",
	},
)

// ChatStreamsTotal counts finished reply streams.
// Label:
//   - outcome: "completed" or "failed"
var ChatStreamsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_streams_total",
		Help:      "Total number of reply streams that finished, by outcome.",
	},
	[]string{"outcome"},
)

// ChatStreamDuration measures a reply from send to final fragment or failure.
// Label:
//   - outcome: "completed" or "failed"
var ChatStreamDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "chat_stream_duration_seconds",
		Help:      "Duration of a streamed reply from send until it is final or failed.",
		Buckets:   []float64{.25, .5, 1, 2.5, 5, 10, 20, 40, 60},
	},
	[]string{"outcome"},
)

// ClientsEvictedTotal counts per-client state entries dropped by the janitor.
var ClientsEvictedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clients_evicted_total",
		Help:      "Total number of idle per-client state entries evicted.",
	},
)

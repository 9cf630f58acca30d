// Package metrics defines and registers all custom Prometheus metrics for the
// landed cost engine. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation via promauto; expose them through promhttp.Handler().
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "landed_cost"

// ── Calculation metrics ───────────────────────────────────────────────────────

// CalculationsTotal counts finished landed cost calculations.
// Label:
//   - result: "ok", "invalid_input" or "failed"
var CalculationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "calculations_total",
		Help:      "Total number of landed cost calculations, by result.",
	},
	[]string{"result"},
)

// CalculationDuration measures a full CalculateCosts call.
var CalculationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "calculation_duration_seconds",
		Help:      "Duration of a landed cost calculation from validation to breakdown.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Resolver metrics ──────────────────────────────────────────────────────────

// TierResolutionsTotal counts which tier produced each resolved value.
// Labels:
//   - resolver: "duty", "tax" or "shipping"
//   - source: the provenance tag (e.g. "API", "Database", "Model-based estimate")
var TierResolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tier_resolutions_total",
		Help:      "Total number of resolutions, labelled by resolver and winning source.",
	},
	[]string{"resolver", "source"},
)

// TierFailuresTotal counts tier attempts that fell through to the next tier.
// Labels:
//   - resolver: "duty", "tax" or "shipping"
//   - tier: "api", "database", "carrier", "aggregator", "estimate"
var TierFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tier_failures_total",
		Help:      "Total number of tier attempts that failed and fell through.",
	},
	[]string{"resolver", "tier"},
)

// CacheLookupsTotal counts duty cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of cache lookups, labelled by result (hit/miss/error).",
	},
	[]string{"result"},
)

// ── Batch metrics ─────────────────────────────────────────────────────────────

// BatchQueueDepth tracks items waiting in each batch worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var BatchQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "batch_queue_depth",
		Help:      "Current number of batch items pending in each worker channel.",
	},
	[]string{"worker_id"},
)

// metrics — Prometheus-коллекторы фрейма. Регистрируются в default registry
// и отдаются через promhttp на отдельном листенере.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "icebreaker_frame"

// Значения label result.
const (
	ResultFound    = "found"
	ResultNotFound = "not_found"
	ResultError    = "error"

	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

var (
	// Lookups — обращения к каталогу профилей; by: fname/fid/eth/ens.
	Lookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Directory lookups by identity kind and outcome",
		},
		[]string{"by", "result"},
	)

	LookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lookup_duration_seconds",
			Help:      "Directory lookup latency",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"by"},
	)

	// Interactions — обработанные действия фрейма по выбранному намерению.
	Interactions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interactions_total",
			Help:      "Frame interactions by decided intent",
		},
		[]string{"intent"},
	)

	StateDecodeFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_decode_failures_total",
			Help:      "State tokens that failed to decode and were treated as absent",
		},
	)

	AnalyticsFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analytics_failures_total",
			Help:      "Analytics events that could not be delivered",
		},
	)

	Cache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_total",
			Help:      "Directory cache lookups by result",
		},
		[]string{"result"},
	)
)

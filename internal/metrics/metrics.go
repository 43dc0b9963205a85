// Package metrics exposes Prometheus instrumentation for draws and link
// resolution.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PoolBuilds counts built pools by the cascade stage that produced them.
	PoolBuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dokoiko_pool_builds_total",
			Help: "Candidate pools built, by the cascade stage that produced them",
		},
		[]string{"stage"},
	)

	// PoolSize observes the number of candidates per built pool.
	PoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dokoiko_pool_size",
			Help:    "Number of candidates in built pools",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100},
		},
	)

	// LinksResolved counts transport links produced, by mode.
	LinksResolved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dokoiko_links_resolved_total",
			Help: "Transport links produced, by mode",
		},
		[]string{"mode"},
	)

	// ProviderResolutions counts rail provider lookups by resolved provider.
	ProviderResolutions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dokoiko_rail_provider_resolutions_total",
			Help: "Rail booking provider resolutions; provider is \"none\" for unmapped tags",
		},
		[]string{"provider"},
	)

	// SessionStoreErrors counts failed session store calls by operation.
	SessionStoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dokoiko_session_store_errors_total",
			Help: "Draw session store failures, by operation",
		},
		[]string{"operation"},
	)
)

// RecordPoolBuild records a built pool.
func RecordPoolBuild(stage string, size int) {
	PoolBuilds.WithLabelValues(stage).Inc()
	PoolSize.Observe(float64(size))
}

// RecordProvider records a rail provider resolution. An empty provider means
// no booking channel applied.
func RecordProvider(provider string) {
	if provider == "" {
		provider = "none"
	}
	ProviderResolutions.WithLabelValues(provider).Inc()
}

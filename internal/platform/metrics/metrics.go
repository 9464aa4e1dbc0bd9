package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	AccountsOpened       prometheus.Counter
	Deposits             prometheus.Counter
	Withdrawals          prometheus.Counter
	Transfers            prometheus.Counter
	RejectedOperations   *prometheus.CounterVec
	GeolocationLookups   prometheus.Counter
	GeolocationCacheHits prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		AccountsOpened: promauto.NewCounter(prometheus.CounterOpts{
			Name: "minibank_accounts_opened_total",
			Help: "Total number of accounts opened",
		}),
		Deposits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "minibank_deposits_total",
			Help: "Total number of successful deposits",
		}),
		Withdrawals: promauto.NewCounter(prometheus.CounterOpts{
			Name: "minibank_withdrawals_total",
			Help: "Total number of successful withdrawals",
		}),
		Transfers: promauto.NewCounter(prometheus.CounterOpts{
			Name: "minibank_transfers_total",
			Help: "Total number of successful transfers",
		}),
		RejectedOperations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "minibank_rejected_operations_total",
			Help: "Total number of operations rejected by business rules",
		}, []string{"operation"}),
		GeolocationLookups: promauto.NewCounter(prometheus.CounterOpts{
			Name: "minibank_geolocation_lookups_total",
			Help: "Total number of geolocation lookups served",
		}),
		GeolocationCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "minibank_geolocation_cache_hits_total",
			Help: "Total number of geolocation lookups answered from cache",
		}),
	}
}

// IncrementRejected records a rule rejection for the named operation.
// Nil-safe so services can run without metrics in tests.
func (m *Metrics) IncrementRejected(operation string) {
	if m == nil {
		return
	}
	m.RejectedOperations.WithLabelValues(operation).Inc()
}

package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"slbstore/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncOpsTotal(op string)
	IncPersistenceErrors()
	ObservePersistenceDuration(duration time.Duration)
	SetSubscriptionsTotal(count int)
}

type MetricsProvider struct {
	opsTotal            *prometheus.CounterVec
	persistenceErrors   prometheus.Counter
	persistenceDuration prometheus.Histogram
	subscriptionsTotal  prometheus.Gauge
}

func (m *MetricsProvider) IncOpsTotal(op string) {
	m.opsTotal.WithLabelValues(op).Inc()
}

func (m *MetricsProvider) IncPersistenceErrors() {
	m.persistenceErrors.Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) SetSubscriptionsTotal(count int) {
	m.subscriptionsTotal.Set(float64(count))
}

// NewMetricsProvider registers store collectors on the default registry.
// Exposition is left to the embedding process; this component has no HTTP
// surface of its own.
func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		opsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "slbstore_ops_total",
			Help: "Total number of mutating store operations",
		}, []string{"op"}),

		persistenceErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "slbstore_persistence_errors_total",
			Help: "Total number of failed persisted image writes",
		}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "slbstore_persistence_duration_seconds",
			Help:    "Duration of persisted image writes in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		subscriptionsTotal: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "slbstore_subscriptions_total",
			Help: "Current number of subscribed channels",
		}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncOpsTotal(_ string)                       {}
func (n *noopMetrics) IncPersistenceErrors()                      {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration) {}
func (n *noopMetrics) SetSubscriptionsTotal(_ int)                {}

package fiber

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the engine's Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "didact").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for commit duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures engine metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "didact",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the engine's Prometheus collectors. A nil *Metrics records
// nothing.
type Metrics struct {
	unitsProcessed  prometheus.Counter
	passesStarted   *prometheus.CounterVec
	passesDiscarded prometheus.Counter
	passesCommitted prometheus.Counter
	passErrors      *prometheus.CounterVec
	mutations       *prometheus.CounterVec
	effects         *prometheus.CounterVec
	commitDuration  prometheus.Histogram
}

// NewMetrics registers the engine collectors. Registering twice with the
// same registry panics, as with any promauto collector.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		unitsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "units_processed_total",
			Help:        "Total number of fiber work units processed",
			ConstLabels: config.ConstLabels,
		}),

		passesStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "passes_total",
			Help:        "Total number of render passes started, by trigger",
			ConstLabels: config.ConstLabels,
		}, []string{"trigger"}),

		passesDiscarded: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "passes_discarded_total",
			Help:        "Total number of in-flight passes replaced by a newer pass",
			ConstLabels: config.ConstLabels,
		}),

		passesCommitted: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "passes_committed_total",
			Help:        "Total number of passes committed to the host tree",
			ConstLabels: config.ConstLabels,
		}),

		passErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "pass_errors_total",
			Help:        "Total number of abandoned passes, by error code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mutations_total",
			Help:        "Total number of committed fiber intents, by intent",
			ConstLabels: config.ConstLabels,
		}, []string{"intent"}),

		effects: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "effects_total",
			Help:        "Total number of effects and cleanups run",
			ConstLabels: config.ConstLabels,
		}, []string{"kind"}),

		commitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "commit_duration_seconds",
			Help:        "Time spent applying a pass to the host tree",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

func (m *Metrics) unit() {
	if m != nil {
		m.unitsProcessed.Inc()
	}
}

func (m *Metrics) passStarted(trigger string) {
	if m != nil {
		m.passesStarted.WithLabelValues(trigger).Inc()
	}
}

func (m *Metrics) passDiscarded() {
	if m != nil {
		m.passesDiscarded.Inc()
	}
}

func (m *Metrics) passFailed(code string) {
	if m != nil {
		if code == "" {
			code = "unknown"
		}
		m.passErrors.WithLabelValues(code).Inc()
	}
}

func (m *Metrics) committed(stats CommitStats) {
	if m == nil {
		return
	}
	m.passesCommitted.Inc()
	m.mutations.WithLabelValues(Placement.String()).Add(float64(stats.Placements))
	m.mutations.WithLabelValues(Update.String()).Add(float64(stats.Updates))
	m.mutations.WithLabelValues(Deletion.String()).Add(float64(stats.Deletions))
	m.commitDuration.Observe(stats.Duration.Seconds())
}

func (m *Metrics) effectRun(kind string) {
	if m != nil {
		m.effects.WithLabelValues(kind).Inc()
	}
}

package host

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Update outcomes recorded in the status label.
const (
	StatusApplied   = "applied"
	StatusUnchanged = "unchanged"
	StatusFailed    = "failed"
	StatusUnmounted = "unmounted"
	StatusQueueFull = "queue_full"
)

// MetricsConfig configures the Prometheus metrics of component hosts.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "viewkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "host").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for update duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures MetricsConfig.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
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
		Namespace: "viewkit",
		Subsystem: "host",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors shared by components. A nil
// *Metrics records nothing.
type Metrics struct {
	updates        *prometheus.CounterVec
	updateDuration *prometheus.HistogramVec
	renders        *prometheus.CounterVec
	queueDepth     *prometheus.GaugeVec
	snapshotErrors *prometheus.CounterVec
}

// NewMetrics registers the host collectors. Register them once per registry
// and share the result between components.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		updates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "updates_total",
			Help:        "Total number of state updates by outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"component", "status"}),

		updateDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "update_duration_seconds",
			Help:        "Time from update submission to completion in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"component"}),

		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of re-renders triggered by state changes",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),

		queueDepth: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "queue_depth",
			Help:        "Number of queued updates and dispatched callbacks",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),

		snapshotErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "snapshot_errors_total",
			Help:        "Total number of failed snapshot saves and restores",
			ConstLabels: config.ConstLabels,
		}, []string{"component"}),
	}
}

func (m *Metrics) recordUpdate(component, status string, start time.Time) {
	if m == nil {
		return
	}
	m.updates.WithLabelValues(component, status).Inc()
	if !start.IsZero() {
		m.updateDuration.WithLabelValues(component).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) recordRender(component string) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(component).Inc()
}

func (m *Metrics) setQueueDepth(component string, depth int) {
	if m == nil {
		return
	}
	m.queueDepth.WithLabelValues(component).Set(float64(depth))
}

func (m *Metrics) recordSnapshotError(component string) {
	if m == nil {
		return
	}
	m.snapshotErrors.WithLabelValues(component).Inc()
}

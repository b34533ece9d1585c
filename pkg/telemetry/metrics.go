package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/retain/pkg/reconcile"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	Namespace   string
	Subsystem   string
	ConstLabels prometheus.Labels

	// Buckets are the pass duration histogram buckets.
	Buckets []float64

	// Registry defaults to prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures Metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) { c.Namespace = namespace }
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) { c.Subsystem = subsystem }
}

// WithConstLabels sets labels added to every metric.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) { c.ConstLabels = labels }
}

// WithBuckets sets the pass duration buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) { c.Buckets = buckets }
}

// WithRegistry sets the registerer the collectors are registered with.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) { c.Registry = registry }
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "retain",
		Buckets:   []float64{.0001, .0005, .001, .0025, .005, .01, .025, .05, .1, .25},
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the collectors. A Metrics is shared by every App in the
// process; register it once.
type Metrics struct {
	passes          *prometheus.CounterVec
	passDuration    prometheus.Histogram
	mutations       *prometheus.CounterVec
	failures        prometheus.Counter
	rendered        prometheus.Counter
	created         prometheus.Counter
	released        prometheus.Counter
	live            prometheus.Gauge
	handlers        prometheus.Gauge
	budgetExceeded  prometheus.Counter
	sessions        prometheus.Gauge
	events          *prometheus.CounterVec
	websocketErrors *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace, Subsystem: config.Subsystem,
			Name: name, Help: help, ConstLabels: config.ConstLabels,
		})
	}
	counterVec := func(name, help, label string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace, Subsystem: config.Subsystem,
			Name: name, Help: help, ConstLabels: config.ConstLabels,
		}, []string{label})
	}
	gauge := func(name, help string) prometheus.Gauge {
		return factory.NewGauge(prometheus.GaugeOpts{
			Namespace: config.Namespace, Subsystem: config.Subsystem,
			Name: name, Help: help, ConstLabels: config.ConstLabels,
		})
	}

	return &Metrics{
		passes: counterVec("passes_total", "Render passes by trigger", "kind"),
		passDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: config.Namespace, Subsystem: config.Subsystem,
			Name: "pass_duration_seconds", Help: "Render pass duration in seconds",
			ConstLabels: config.ConstLabels, Buckets: config.Buckets,
		}),
		mutations:       counterVec("mutations_total", "Live mutations issued by the reconciler", "op"),
		failures:        counter("mutation_failures_total", "Live mutations that returned an error"),
		rendered:        counter("components_rendered_total", "Component instances rendered"),
		created:         counter("components_created_total", "Component instances constructed"),
		released:        counter("components_released_total", "Component instances released"),
		live:            gauge("live_instances", "Component instances alive across all Apps"),
		handlers:        gauge("handlers", "Registered handler ids across all Apps"),
		budgetExceeded:  counter("follow_up_budget_exceeded_total", "Follow-up pass chains cut off"),
		sessions:        gauge("sessions_active", "Open live sessions"),
		events:          counterVec("events_received_total", "Client events received", "event"),
		websocketErrors: counterVec("websocket_errors_total", "WebSocket failures by type", "type"),
	}
}

func (m *Metrics) recordMutations(s reconcile.Stats) {
	for op, n := range map[string]int{
		"create":      s.Created,
		"replace":     s.Replaced,
		"append":      s.Appended,
		"insert":      s.Inserted,
		"remove":      s.Removed,
		"set_attr":    s.AttrsSet,
		"remove_attr": s.AttrsRemoved,
		"set_value":   s.ValuesSet,
		"listen":      s.Listeners,
	} {
		if n > 0 {
			m.mutations.WithLabelValues(op).Add(float64(n))
		}
	}
	m.failures.Add(float64(s.Failures))
}

// SessionOpened increments the active session gauge.
func (m *Metrics) SessionOpened() { m.sessions.Inc() }

// SessionClosed decrements the active session gauge.
func (m *Metrics) SessionClosed() { m.sessions.Dec() }

// EventReceived counts a client event by name.
func (m *Metrics) EventReceived(name string) { m.events.WithLabelValues(name).Inc() }

// WebSocketError counts a transport failure. kind is a short fixed label
// such as "read", "write" or "decode".
func (m *Metrics) WebSocketError(kind string) { m.websocketErrors.WithLabelValues(kind).Inc() }

// Package metrics holds the Prometheus collectors for the district map
// service on a private registry.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "districtmap"

// Registry holds all metrics for the application.
type Registry struct {
	// HTTP
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Relationship derivation
	DerivationsTotal   *prometheus.CounterVec
	DerivationDuration *prometheus.HistogramVec
	DerivedEdges       prometheus.Gauge
	DerivedSegments    prometheus.Gauge

	// AI collaborators
	AICallsTotal   *prometheus.CounterVec
	AICallDuration *prometheus.HistogramVec

	// Sessions and gestures
	SessionsActive prometheus.Gauge
	GesturesTotal  *prometheus.CounterVec

	// Host actions
	HostActionsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the process-wide registry.
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a registry with every collector initialised, plus the
// Go runtime and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{registry: reg}
	r.initHTTPMetrics()
	r.initDerivationMetrics()
	r.initAIMetrics()
	r.initSessionMetrics()
	return r
}

func (r *Registry) initHTTPMetrics() {
	f := promauto.With(r.registry)
	r.HTTPRequestsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)
	r.HTTPRequestDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	r.HTTPRequestsInFlight = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "http_requests_in_flight",
		Help:      "Current number of HTTP requests being processed",
	})
}

func (r *Registry) initDerivationMetrics() {
	f := promauto.With(r.registry)
	r.DerivationsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "derivations_total",
			Help:      "Relationship layer recomputations by map mode",
		},
		[]string{"mode"},
	)
	r.DerivationDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "derivation_duration_seconds",
			Help:      "Time spent deriving edges and corridor segments",
			Buckets:   []float64{.00001, .0001, .0005, .001, .005, .01, .05, .1},
		},
		[]string{"mode"},
	)
	r.DerivedEdges = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "derived_edges",
		Help:      "Edges produced by the most recent networking derivation",
	})
	r.DerivedSegments = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "derived_segments",
		Help:      "Corridor segments produced by the most recent traffic derivation",
	})
}

func (r *Registry) initAIMetrics() {
	f := promauto.With(r.registry)
	r.AICallsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ai_calls_total",
			Help:      "AI collaborator calls by operation and outcome",
		},
		[]string{"operation", "status"},
	)
	r.AICallDuration = f.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ai_call_duration_seconds",
			Help:      "AI collaborator latency in seconds",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"operation"},
	)
}

func (r *Registry) initSessionMetrics() {
	f := promauto.With(r.registry)
	r.SessionsActive = f.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Open map sessions",
	})
	r.GesturesTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gestures_total",
			Help:      "Input events by kind and whether they changed the camera",
		},
		[]string{"kind", "applied"},
	)
	r.HostActionsTotal = f.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "host_actions_total",
			Help:      "Rent, add, update and favorite actions by outcome",
		},
		[]string{"action", "status"},
	)
}

// GetPrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// RecordHTTPRequest records an HTTP request with its duration.
func (r *Registry) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordDerivation records one relationship recomputation.
func (r *Registry) RecordDerivation(mode string, edges, segments int, took time.Duration) {
	r.DerivationsTotal.WithLabelValues(mode).Inc()
	r.DerivationDuration.WithLabelValues(mode).Observe(took.Seconds())
	r.DerivedEdges.Set(float64(edges))
	r.DerivedSegments.Set(float64(segments))
}

// RecordAICall records an AI collaborator call. A nil err counts as success.
func (r *Registry) RecordAICall(operation string, err error, took time.Duration) {
	r.AICallsTotal.WithLabelValues(operation, outcome(err)).Inc()
	r.AICallDuration.WithLabelValues(operation).Observe(took.Seconds())
}

// RecordGesture counts an input event.
func (r *Registry) RecordGesture(kind string, applied bool) {
	r.GesturesTotal.WithLabelValues(kind, strconv.FormatBool(applied)).Inc()
}

// RecordHostAction counts a rent/add/update/favorite action.
func (r *Registry) RecordHostAction(action string, err error) {
	r.HostActionsTotal.WithLabelValues(action, outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Package metrics exposes service counters and histograms in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request outcomes recorded by ObserveRequest.
const (
	OutcomeSuccess   = "success"
	OutcomeInvalid   = "invalid"
	OutcomeLimited   = "rate_limited"
	OutcomeUpstream  = "upstream_error"
	OutcomeInternal  = "internal_error"
	OutcomeExhausted = "refinements_exhausted"
)

// System owns a private registry and the service's collectors.
type System struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	rejections  prometheus.Counter
	completions *prometheus.HistogramVec
}

// New creates a System with Go runtime and process collectors registered.
func New(namespace string) *System {
	reg := prometheus.NewRegistry()

	s := &System{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Prompt operations handled, by operation and outcome.",
		}, []string{"operation", "outcome"}),
		rejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_rejections_total",
			Help:      "Requests rejected by the rate limiter.",
		}),
		completions: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_duration_seconds",
			Help:      "Upstream completion call latency, by provider and outcome.",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60},
		}, []string{"provider", "outcome"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		s.requests,
		s.rejections,
		s.completions,
	)

	return s
}

// ObserveRequest counts one prompt operation.
func (s *System) ObserveRequest(operation, outcome string) {
	s.requests.WithLabelValues(operation, outcome).Inc()
}

// ObserveRejection counts one rate limit rejection.
func (s *System) ObserveRejection() {
	s.rejections.Inc()
}

// ObserveCompletion records one upstream call. Its signature matches
// completion.Observer.
func (s *System) ObserveCompletion(provider string, elapsed time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeUpstream
	}
	s.completions.WithLabelValues(provider, outcome).Observe(elapsed.Seconds())
}

// Registry returns the underlying registry.
func (s *System) Registry() *prometheus.Registry {
	return s.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (s *System) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{Registry: s.registry})
}

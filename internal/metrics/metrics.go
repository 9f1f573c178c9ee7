// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Plan mutation outcomes.
const (
	OutcomeOK       = "ok"
	OutcomeConflict = "conflict"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Recorder is what services and middleware report to.
type Recorder interface {
	RecordPlanMutation(op, outcome string)
	RecordRequest(method, route string, status int, elapsed time.Duration)
}

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	planMutations   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		planMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fittrack_plan_mutations_total",
			Help: "Workout plan writes by operation and outcome.",
		}, []string{"op", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fittrack_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	reg.MustRegister(c.planMutations, c.requestDuration)
	return c
}

func (c *Collector) RecordPlanMutation(op, outcome string) {
	c.planMutations.WithLabelValues(op, outcome).Inc()
}

func (c *Collector) RecordRequest(method, route string, status int, elapsed time.Duration) {
	c.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything. Used when metrics are not wired, e.g. in tests.
type Nop struct{}

func (Nop) RecordPlanMutation(string, string)                {}
func (Nop) RecordRequest(string, string, int, time.Duration) {}

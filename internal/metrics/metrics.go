// Package metrics exposes Prometheus collectors for ingestion, the ESPN client
// and the HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/picksleagues/picks-leagues/internal/domain/ingestionrun"
	"github.com/picksleagues/picks-leagues/internal/platform/resilience"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "picks"

type Metrics struct {
	registry *prometheus.Registry

	IngestionRuns     *prometheus.CounterVec
	IngestionDuration *prometheus.HistogramVec
	IngestionRecords  *prometheus.CounterVec
	LastSuccessfulRun *prometheus.GaugeVec

	ESPNRequests        *prometheus.CounterVec
	ESPNRequestDuration prometheus.Histogram
	BreakerState        *prometheus.GaugeVec

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers every collector on a fresh registry together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		IngestionRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ingestion_runs_total",
				Help:      "Total number of ingestion runs by entity and outcome",
			},
			[]string{"entity", "status"},
		),
		IngestionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ingestion_duration_seconds",
				Help:      "Duration of ingestion runs in seconds",
				Buckets:   []float64{.1, .5, 1, 5, 10, 30, 60, 120, 300},
			},
			[]string{"entity"},
		),
		IngestionRecords: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ingestion_records_total",
				Help:      "Records upserted or skipped by ingestion",
			},
			[]string{"entity", "outcome"},
		),
		LastSuccessfulRun: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "ingestion_last_success_timestamp_seconds",
				Help:      "Unix time of the last successful run per entity",
			},
			[]string{"entity"},
		),
		ESPNRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "espn_requests_total",
				Help:      "ESPN API attempts by response status",
			},
			[]string{"status"},
		),
		ESPNRequestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "espn_request_duration_seconds",
				Help:      "Latency of ESPN API attempts",
				Buckets:   prometheus.DefBuckets,
			},
		),
		BreakerState: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "circuit_breaker_state",
				Help:      "1 for the current state of each circuit breaker",
			},
			[]string{"breaker", "state"},
		),
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route and status code",
			},
			[]string{"method", "route", "code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"method", "route"},
		),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RunFinished implements usecase.IngestionObserver.
func (m *Metrics) RunFinished(entity ingestionrun.Entity, status ingestionrun.Status, elapsed time.Duration, upserted, skipped int) {
	e := string(entity)
	m.IngestionRuns.WithLabelValues(e, string(status)).Inc()
	m.IngestionDuration.WithLabelValues(e).Observe(elapsed.Seconds())
	m.IngestionRecords.WithLabelValues(e, "upserted").Add(float64(upserted))
	m.IngestionRecords.WithLabelValues(e, "skipped").Add(float64(skipped))
	if status == ingestionrun.StatusCompleted {
		m.LastSuccessfulRun.WithLabelValues(e).SetToCurrentTime()
	}
}

func (m *Metrics) ObserveESPNRequest(status string, elapsed time.Duration) {
	m.ESPNRequests.WithLabelValues(status).Inc()
	m.ESPNRequestDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) BreakerStateChanged(name string, from, to resilience.CircuitState) {
	m.BreakerState.WithLabelValues(name, string(from)).Set(0)
	m.BreakerState.WithLabelValues(name, string(to)).Set(1)
}

func (m *Metrics) ObserveHTTPRequest(method, route string, code int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

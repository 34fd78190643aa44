package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

const DefaultJob = "chatgpt_plugin"

type Metrics struct {
	registry *prometheus.Registry

	RunsTotal        *prometheus.CounterVec
	RunDuration      prometheus.Histogram
	RequestsInFlight prometheus.Gauge

	LLMRequestsTotal   *prometheus.CounterVec
	LLMRequestDuration *prometheus.HistogramVec
	LLMResponseBytes   *prometheus.HistogramVec
}

// New регистрирует метрики в собственном registry, а не в глобальном:
// CLI пушит их в Pushgateway целиком одним батчем.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatgpt_plugin_runs_total",
				Help: "Total number of prompt runs",
			},
			[]string{"status"},
		),
		RunDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "chatgpt_plugin_run_duration_seconds",
				Help:    "Run duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
		),
		RequestsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "chatgpt_plugin_requests_in_flight",
				Help: "Number of requests currently being processed",
			},
		),

		LLMRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chatgpt_plugin_llm_requests_total",
				Help: "Total number of LLM API requests",
			},
			[]string{"provider", "op", "status"},
		),
		LLMRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chatgpt_plugin_llm_request_duration_seconds",
				Help:    "LLM request duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
			},
			[]string{"provider", "op"},
		),
		LLMResponseBytes: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chatgpt_plugin_llm_response_bytes",
				Help:    "Size of raw LLM responses in bytes",
				Buckets: prometheus.ExponentialBuckets(64, 4, 8),
			},
			[]string{"provider"},
		),
	}
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) RecordRun(status string, duration time.Duration) {
	m.RunsTotal.WithLabelValues(status).Inc()
	m.RunDuration.Observe(duration.Seconds())
}

func (m *Metrics) RecordLLMRequest(provider, op, status string, duration time.Duration) {
	m.LLMRequestsTotal.WithLabelValues(provider, op, status).Inc()
	m.LLMRequestDuration.WithLabelValues(provider, op).Observe(duration.Seconds())
}

func (m *Metrics) RecordResponseSize(provider string, size int) {
	m.LLMResponseBytes.WithLabelValues(provider).Observe(float64(size))
}

func (m *Metrics) IncRequestsInFlight() {
	m.RequestsInFlight.Inc()
}

func (m *Metrics) DecRequestsInFlight() {
	m.RequestsInFlight.Dec()
}

// Push отправляет все метрики в Pushgateway. Процесс короткоживущий,
// поэтому scrape endpoint не поднимаем.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if job == "" {
		job = DefaultJob
	}
	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}

package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec

	// Blueprint metrics
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	InvalidBlueprints *prometheus.CounterVec
	BlueprintArea     prometheus.Histogram
	RenderZoom        prometheus.Histogram
	RendersInFlight   prometheus.Gauge

	// Attachment metrics
	AttachmentFetches *prometheus.CounterVec
}

// NewMetrics creates a metrics collector backed by its own registry, so
// several instances can coexist (one per server or test).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vcbot_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vcbot_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vcbot_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000, 10000000},
			},
			[]string{"method", "path"},
		),

		Operations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vcbot_operations_total",
				Help: "Blueprint operations by outcome",
			},
			[]string{"operation", "status"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vcbot_operation_duration_seconds",
				Help:    "Blueprint operation duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"operation"},
		),
		InvalidBlueprints: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vcbot_invalid_blueprints_total",
				Help: "Rejected blueprints by cause",
			},
			[]string{"operation", "cause"},
		),
		BlueprintArea: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vcbot_blueprint_area_pixels",
				Help:    "Pixel area of decoded blueprints",
				Buckets: prometheus.ExponentialBuckets(64, 4, 10),
			},
		),
		RenderZoom: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vcbot_render_zoom",
				Help:    "Zoom factor chosen for renders",
				Buckets: []float64{1, 2, 4, 6, 8, 12, 16, 24},
			},
		),
		RendersInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "vcbot_renders_in_flight",
				Help: "Renders currently running",
			},
		),

		AttachmentFetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vcbot_attachment_fetches_total",
				Help: "Attachment downloads by outcome",
			},
			[]string{"status"},
		),
	}
}

// Registry returns the registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
}

// RecordOperation records a finished stats or render call
func (m *Metrics) RecordOperation(operation, status string, duration time.Duration) {
	m.Operations.WithLabelValues(operation, status).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordInvalid records a rejected blueprint
func (m *Metrics) RecordInvalid(operation, cause string) {
	m.InvalidBlueprints.WithLabelValues(operation, cause).Inc()
}

// ObserveBlueprint records the size of a decoded blueprint
func (m *Metrics) ObserveBlueprint(area int) {
	m.BlueprintArea.Observe(float64(area))
}

// ObserveZoom records the zoom factor of a render
func (m *Metrics) ObserveZoom(zoom int) {
	m.RenderZoom.Observe(float64(zoom))
}

// RecordAttachmentFetch records an attachment download
func (m *Metrics) RecordAttachmentFetch(status string) {
	m.AttachmentFetches.WithLabelValues(status).Inc()
}

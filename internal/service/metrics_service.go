package service

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation behind a private
// registry.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	sessionsCreated prometheus.Counter
	submissions     prometheus.Counter
	exports         *prometheus.CounterVec
	resets          prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	sessionsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sessions_created_total",
		Help: "Total attendance sessions created",
	})

	submissions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attendance_submissions_total",
		Help: "Total accepted attendance submissions",
	})

	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "export_downloads_total",
		Help: "Total attendance exports by format",
	}, []string{"format"})

	resets := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "attendance_resets_total",
		Help: "Total attendance reset operations",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, sessionsCreated, submissions, exports, resets, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		sessionsCreated: sessionsCreated,
		submissions:     submissions,
		exports:         exports,
		resets:          resets,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labels := []string{method, path, strconv.Itoa(status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(labels...).Inc()
}

// IncSessionCreated counts a created session.
func (m *MetricsService) IncSessionCreated() {
	if m == nil {
		return
	}
	m.sessionsCreated.Inc()
}

// IncSubmission counts an accepted attendance submission.
func (m *MetricsService) IncSubmission() {
	if m == nil {
		return
	}
	m.submissions.Inc()
}

// IncExport counts a rendered export download.
func (m *MetricsService) IncExport(format string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format).Inc()
}

// IncReset counts a reset operation.
func (m *MetricsService) IncReset() {
	if m == nil {
		return
	}
	m.resets.Inc()
}

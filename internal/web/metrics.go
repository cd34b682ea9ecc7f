package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockview_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockview_http_request_duration_seconds",
			Help:    "Time taken to serve HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Upload metrics
	uploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockview_uploads_total",
			Help: "Total number of workbook uploads by outcome",
		},
		[]string{"outcome"},
	)

	uploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stockview_upload_size_bytes",
			Help:    "Size of accepted workbooks",
			Buckets: prometheus.ExponentialBuckets(4<<10, 4, 7), // 4 KiB .. 16 MiB
		},
	)

	uploadsStored = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stockview_uploads_stored",
			Help: "Number of uploads currently held in memory",
		},
	)

	// Report metrics
	reportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockview_reports_total",
			Help: "Total number of reports built, by format and error code",
		},
		[]string{"format", "code"},
	)

	reportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockview_report_duration_seconds",
			Help:    "Time taken to decode a workbook and build its report",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"format"},
	)

	reportRows = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stockview_report_rows",
			Help:    "Rows in the selected sheet before filtering",
			Buckets: prometheus.ExponentialBuckets(10, 4, 7),
		},
	)

	// Rate limiting
	rateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockview_rate_limited_total",
			Help: "Requests rejected by the per-IP rate limiter",
		},
		[]string{"limiter"},
	)
)

// observeRequest records an HTTP request. Requests that matched no route are
// grouped under "unmatched" to keep label cardinality bounded.
func observeRequest(r *http.Request, status int, duration time.Duration) {
	route := "unmatched"
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			route = pattern
		}
	}
	httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(r.Method, route).Observe(duration.Seconds())
}

// observeReport records one report build. code is "" on success.
func observeReport(format, code string, rows int, duration time.Duration) {
	if code == "" {
		code = "ok"
	}
	reportsTotal.WithLabelValues(format, code).Inc()
	reportDuration.WithLabelValues(format).Observe(duration.Seconds())
	if code == "ok" {
		reportRows.Observe(float64(rows))
	}
}

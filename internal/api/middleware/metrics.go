package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics records request counts and latency histograms per route.
type HTTPMetrics struct {
	requestDuration *prometheus.HistogramVec
	totalRequests   *prometheus.CounterVec
}

// NewHTTPMetrics registers the HTTP metrics. reg may be nil; a private
// registry is then used, keeping the middleware inert in tests.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &HTTPMetrics{
		requestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "labreserva_http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies.",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "route", "status"}),

		totalRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "labreserva_http_requests_total",
			Help: "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
	}
}

// Handler is the gin middleware recording the metrics. The route label
// uses the registered pattern (e.g. /api/reservas/:id), not the raw
// path, to keep cardinality bounded.
func (m *HTTPMetrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.totalRequests.WithLabelValues(c.Request.Method, route, status).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, route, status).
			Observe(time.Since(start).Seconds())
	}
}

package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dollarcard_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dollarcard_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
)

// Metrics returns a middleware that records request counts and latency.
// The route label uses the matched route pattern (not the raw path) so
// per-id requests collapse into one series.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		timer := prometheus.NewTimer(requestDuration.WithLabelValues(
			c.FullPath(), c.Request.Method,
		))
		c.Next()
		timer.ObserveDuration()

		requestsTotal.WithLabelValues(
			c.FullPath(), c.Request.Method, strconv.Itoa(c.Writer.Status()),
		).Inc()
	}
}

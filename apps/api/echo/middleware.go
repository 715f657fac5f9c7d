package echoapi

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mahudhurio_http_requests_total",
			Help: "Number of HTTP requests handled, by method, path and status code.",
		},
		[]string{"method", "path", "code"},
	)
	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mahudhurio_http_request_duration_seconds",
			Help:    "HTTP request latency, by method and path.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// requestMetricsMiddleware records a counter and latency histogram per route.
// The route template (not the raw URL) is used as the path label to keep
// cardinality bounded.
func requestMetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)

			path := ctx.Path()
			if path == "" {
				path = ctx.Request().URL.Path
			}
			requestDuration.WithLabelValues(ctx.Request().Method, path).Observe(time.Since(start).Seconds())
			requestCount.WithLabelValues(
				ctx.Request().Method, path, strconv.Itoa(ctx.Response().Status),
			).Inc()
			return err
		}
	}
}

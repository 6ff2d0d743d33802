package middleware

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path"},
	)

	KeysIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "keys_issued_total",
			Help: "Total access keys issued",
		},
	)

	KeyValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "key_validations_total",
			Help: "Key validation attempts by result",
		},
		[]string{"result"},
	)
)

func InitMetrics() {
	prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration, KeysIssuedTotal, KeyValidationsTotal)
}

func PrometheusMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			path := c.Path()
			if path == "" {
				path = "undefined"
			}

			// Echo writes handler errors after the chain returns, so the
			// response status is not final yet when one is returned.
			status := c.Response().Status
			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				status = httpErr.Code
			}

			HTTPRequestsTotal.WithLabelValues(c.Request().Method, path, strconv.Itoa(status)).Inc()
			HTTPRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
			return err
		}
	}
}

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vibast-solutions/ms-go-keys/app/middleware"
)

func TestPrometheusMiddlewareCountsRequests(t *testing.T) {
	e := echo.New()
	e.Use(middleware.PrometheusMiddleware())
	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})

	counter := middleware.HTTPRequestsTotal.WithLabelValues("GET", "/ping", "200")
	before := testutil.ToFloat64(counter)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Fatalf("expected counter to grow by 1, got %v", got)
	}
}

func TestPrometheusMiddlewareCountsHandlerErrors(t *testing.T) {
	e := echo.New()
	e.Use(middleware.PrometheusMiddleware())
	e.GET("/boom", func(echo.Context) error {
		return echo.NewHTTPError(http.StatusTeapot, "boom")
	})

	counter := middleware.HTTPRequestsTotal.WithLabelValues("GET", "/boom", "418")
	before := testutil.ToFloat64(counter)

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Fatalf("expected counter to grow by 1, got %v", got)
	}
}

package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/pmo/internal/service"
)

func TestMiddleware_CountsByRouteTemplate(t *testing.T) {
	m := New(prometheus.NewRegistry(), "test")
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/items/:id", func(c echo.Context) error {
		if c.Param("id") == "0" {
			return echo.NewHTTPError(http.StatusNotFound)
		}
		return c.NoContent(http.StatusOK)
	})

	for _, path := range []string{"/items/1", "/items/2", "/items/0"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/items/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/items/:id", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestObserveUseCase(t *testing.T) {
	m := New(prometheus.NewRegistry(), "test")
	ctx := context.Background()

	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "project.create", Success: true, Duration: 5 * time.Millisecond})
	m.ObserveUseCase(ctx, service.UseCaseEvent{Name: "project.create", Err: errors.New("x"), Duration: time.Millisecond})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.UseCasesTotal.WithLabelValues("project.create", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UseCasesTotal.WithLabelValues("project.create", "false")))
}

func TestHandler_ExposesRegistry(t *testing.T) {
	m := New(nil, "pmo")
	m.ObserveUseCase(context.Background(), service.UseCaseEvent{Name: "seed.create", Success: true})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `pmo_use_cases_total{success="true",use_case="seed.create"} 1`), body)
	assert.Contains(t, body, "go_goroutines")
}

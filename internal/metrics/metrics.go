// Package metrics holds the Prometheus collectors for HTTP traffic and
// service use cases.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexanderramin/pmo/internal/service"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	UseCasesTotal       *prometheus.CounterVec
	UseCaseDuration     *prometheus.HistogramVec
}

// New registers every collector on reg. A nil reg gets a fresh registry
// with the Go and process collectors attached.
func New(reg *prometheus.Registry, prefix string) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		UseCasesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: prefix + "_use_cases_total",
			Help: "Service use cases by name and outcome",
		}, []string{"use_case", "success"}),
		UseCaseDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    prefix + "_use_case_duration_seconds",
			Help:    "Service use case duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"use_case"}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records count and latency per route template, so /api/issues/1
// and /api/issues/2 share a series.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			labels := prometheus.Labels{
				"method": c.Request().Method,
				"path":   path,
				"status": strconv.Itoa(c.Response().Status),
			}
			m.HTTPRequestsTotal.With(labels).Inc()
			m.HTTPRequestDuration.With(labels).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

// ObserveUseCase makes Metrics a service.UseCaseObserver.
func (m *Metrics) ObserveUseCase(_ context.Context, e service.UseCaseEvent) {
	m.UseCasesTotal.WithLabelValues(e.Name, strconv.FormatBool(e.Success)).Inc()
	m.UseCaseDuration.WithLabelValues(e.Name).Observe(e.Duration.Seconds())
}

var _ service.UseCaseObserver = (*Metrics)(nil)

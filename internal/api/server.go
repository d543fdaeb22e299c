// Package api serves the PMO model over HTTP with echo.
package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/alexanderramin/pmo/internal/logging"
	"github.com/alexanderramin/pmo/internal/metrics"
	"github.com/alexanderramin/pmo/internal/repository"
	"github.com/alexanderramin/pmo/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Options struct {
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

type Server struct {
	echo     *echo.Echo
	services *service.Services
	admin    *repository.SQLiteAdminRepo
	logger   *zap.Logger
}

// NewServer builds the echo instance with middleware and routes. Metrics
// are optional; without them /metrics is not mounted.
func NewServer(database *sql.DB, services *service.Services, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(logging.Middleware(logger))
	if opts.Metrics != nil {
		e.Use(opts.Metrics.Middleware())
	}
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:     e,
		services: services,
		admin:    repository.NewSQLiteAdminRepo(database),
		logger:   logger,
	}
	s.routes(opts.Metrics)
	return s
}

// Handler exposes the router for httptest.
func (s *Server) Handler() http.Handler { return s.echo }

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", zap.String("addr", addr))
		if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-errCh
}

func (s *Server) routes(m *metrics.Metrics) {
	e := s.echo
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	g := e.Group("/api")
	g.GET("/business-units", s.listBusinessUnits)
	g.POST("/business-units", s.createBusinessUnit)
	g.GET("/business-units/:id", s.getBusinessUnit)
	g.PUT("/business-units/:id", s.updateBusinessUnit)
	g.DELETE("/business-units/:id", s.deleteBusinessUnit)
	g.GET("/business-units/:id/graph", s.businessUnitGraph)

	g.GET("/projects", s.listProjects)
	g.POST("/projects", s.createProject)
	g.GET("/projects/:id", s.getProject)
	g.PUT("/projects/:id", s.updateProject)
	g.DELETE("/projects/:id", s.deleteProject)
	g.POST("/projects/:id/issues", s.createIssue)
	g.POST("/projects/:id/change-requests", s.createChangeRequest)

	g.GET("/issues/:id", s.getIssue)
	g.PUT("/issues/:id", s.updateIssue)
	g.DELETE("/issues/:id", s.deleteIssue)

	g.GET("/change-requests/:id", s.getChangeRequest)
	g.PUT("/change-requests/:id", s.updateChangeRequest)
	g.DELETE("/change-requests/:id", s.deleteChangeRequest)

	g.POST("/sample-data", s.createSampleData)

	a := e.Group("/admin")
	a.GET("", s.adminIndex)
	a.GET("/:view", s.adminList)
	a.GET("/:view/export.xlsx", s.adminExport)
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be a positive integer", name))
	}
	return id, nil
}

func queryID(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s must be an integer", name))
	}
	return &id, nil
}

// bindJSON decodes the body into dst. An empty body leaves dst untouched.
func bindJSON(c echo.Context, dst any) error {
	dec := json.NewDecoder(c.Request().Body)
	if err := dec.Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", errBadPayload, err)
	}
	return nil
}

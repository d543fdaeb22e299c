package logging

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New(Options{Level: "debug", ServiceName: "pmo", Environment: "test"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.DebugLevel))

	l, err = New(Options{Level: "warn", Production: true})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))

	_, err = New(Options{Level: "loud"})
	assert.Error(t, err)
}

func TestFromContext_DefaultsToNop(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	core, logs := observer.New(zapcore.InfoLevel)
	ctx := WithContext(context.Background(), zap.New(core))
	FromContext(ctx).Info("hello")
	assert.Equal(t, 1, logs.Len())
}

func newEcho(base *zap.Logger, h echo.HandlerFunc) *echo.Echo {
	e := echo.New()
	e.Use(Middleware(base))
	e.GET("/ping", h)
	return e
}

func TestMiddleware_AssignsRequestID(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	var seen string
	var ctxLogger *zap.Logger
	e := newEcho(zap.New(core), func(c echo.Context) error {
		seen = RequestID(c)
		ctxLogger = FromContext(c.Request().Context())
		FromEcho(c).Debug("inside")
		return c.NoContent(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	assert.NotNil(t, ctxLogger)

	inside := logs.FilterMessage("inside").All()
	require.Len(t, inside, 1)
	assert.Equal(t, seen, inside[0].ContextMap()["request_id"])

	reqLogs := logs.FilterMessage("HTTP Request").All()
	require.Len(t, reqLogs, 1)
	assert.Equal(t, zapcore.InfoLevel, reqLogs[0].Level)
	assert.Equal(t, "/ping", reqLogs[0].ContextMap()["path"])
	assert.EqualValues(t, http.StatusNoContent, reqLogs[0].ContextMap()["status"])
}

func TestMiddleware_KeepsCallerRequestID(t *testing.T) {
	e := newEcho(zap.NewNop(), func(c echo.Context) error {
		return c.String(http.StatusOK, RequestID(c))
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Body.String())
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestMiddleware_LogsFailuresByStatus(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := newEcho(zap.New(core), func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "nope")
	})
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusInternalServerError, "boom")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

// Package logging builds the process zap logger and carries request-scoped
// children through echo and context.Context.
package logging

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	loggerKey       = "logger"
)

type Options struct {
	Level       string
	Production  bool
	ServiceName string
	Environment string
}

// New returns a JSON logger with ISO8601 timestamps in production and a
// colored console logger otherwise.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, fmt.Errorf("parsing log level %q: %w", opts.Level, err)
		}
	}

	var cfg zap.Config
	if opts.Production {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := cfg.Build(zap.Fields(
		zap.String("service", opts.ServiceName),
		zap.String("environment", opts.Environment),
	))
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

type ctxKey struct{}

func WithContext(ctx context.Context, l *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// FromContext returns the logger stored in ctx, or a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
		return l
	}
	return zap.NewNop()
}

// FromEcho returns the request logger installed by Middleware.
func FromEcho(c echo.Context) *zap.Logger {
	if l, ok := c.Get(loggerKey).(*zap.Logger); ok && l != nil {
		return l
	}
	return FromContext(c.Request().Context())
}

// RequestID returns the id Middleware assigned to the request.
func RequestID(c echo.Context) string {
	id, _ := c.Get(requestIDKey).(string)
	return id
}

// Middleware tags every request with an id, taken from X-Request-ID when
// the caller sent one, and logs one line per request once it completes.
func Middleware(base *zap.Logger) echo.MiddlewareFunc {
	if base == nil {
		base = zap.NewNop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := req.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.New().String()
				req.Header.Set(RequestIDHeader, id)
			}
			c.Response().Header().Set(RequestIDHeader, id)

			reqLogger := base.With(zap.String(requestIDKey, id))
			c.Set(requestIDKey, id)
			c.Set(loggerKey, reqLogger)
			c.SetRequest(req.WithContext(WithContext(req.Context(), reqLogger)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []zap.Field{
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", c.RealIP()),
			}
			switch status := c.Response().Status; {
			case status >= 500:
				reqLogger.Error("HTTP Request", append(fields, zap.Error(err))...)
			case status >= 400:
				reqLogger.Warn("HTTP Request", fields...)
			default:
				reqLogger.Info("HTTP Request", fields...)
			}
			return nil
		}
	}
}

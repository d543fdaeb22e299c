package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/logging"
)

// errBadPayload marks a body that is not valid JSON for the endpoint.
var errBadPayload = errors.New("invalid request body")

// statusFor maps an error to its HTTP status and the message the client
// sees. Unexpected failures get a generic message.
func statusFor(err error) (int, string) {
	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		return he.Code, fmt.Sprint(he.Message)
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalid), errors.Is(err, domain.ErrCycle), errors.Is(err, errBadPayload):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, "internal server error"
}

// errorHandler writes every handler error as {"error": "..."}.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		logging.FromEcho(c).Error("request failed", zap.Error(err))
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, echo.Map{"error": msg})
	}
	if err != nil {
		logging.FromEcho(c).Warn("writing error response", zap.Error(err))
	}
}

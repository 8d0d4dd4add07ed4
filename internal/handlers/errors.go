package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/anonto42/idea-board/backend/internal/common"
	"github.com/anonto42/idea-board/backend/internal/logging"
	"github.com/labstack/echo/v4"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Code      int       `json:"code"`
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Method    string    `json:"method"`
	Message   string    `json:"message"`
}

// statusOf maps an error onto an HTTP status and a client-safe message.
func statusOf(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message)
	}

	switch {
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, common.ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden, err.Error()
	case errors.Is(err, common.ErrConflict):
		return http.StatusConflict, err.Error()
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError)
}

// HTTPErrorHandler renders errors as ErrorResponse. Unexpected errors are
// logged with their cause and answered with a generic 500.
func HTTPErrorHandler(logger logging.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		req := c.Request()
		code, msg := statusOf(err)
		if code >= http.StatusInternalServerError {
			logger.Error(req.Context(), "request failed", "method", req.Method, "path", req.URL.Path, "error", err)
		} else {
			logger.Warn(req.Context(), "request rejected", "method", req.Method, "path", req.URL.Path, "status", code, "error", err)
		}

		body := ErrorResponse{
			Code:      code,
			Timestamp: time.Now().UTC(),
			Path:      req.URL.Path,
			Method:    req.Method,
			Message:   msg,
		}

		var writeErr error
		if req.Method == http.MethodHead {
			writeErr = c.NoContent(code)
		} else {
			writeErr = c.JSON(code, body)
		}
		if writeErr != nil {
			logger.Error(req.Context(), "write error response", "error", writeErr)
		}
	}
}

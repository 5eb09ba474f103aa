package response

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	srverr "github.com/judgebase/judgebase-api/cmd/server/internal/error"
	"github.com/judgebase/judgebase-api/internal/logger"
	"github.com/judgebase/judgebase-api/internal/types"
)

var (
	InternalServerError = echo.NewHTTPError(
		http.StatusInternalServerError,
		types.StringError("something went wrong"),
	)
	NotFoundError     = echo.NewHTTPError(http.StatusNotFound, types.StringError("not found"))
	UnauthorizedError = echo.NewHTTPError(http.StatusUnauthorized, types.StringError("Unauthorized"))
	ForbiddenError    = echo.NewHTTPError(http.StatusForbidden, types.StringError("Forbidden"))
)

// Maps the server error taxonomy onto HTTP errors. Messages of client errors
// are passed through, anything unexpected becomes a generic 500.
func FromError(err error) *echo.HTTPError {
	var status int
	switch {
	case errors.Is(err, srverr.ErrNotFound):
		return NotFoundError
	case errors.Is(err, srverr.ErrInvalidState), errors.Is(err, srverr.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, srverr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, srverr.ErrNotConfigured):
		status = http.StatusServiceUnavailable
	case errors.Is(err, srverr.ErrExternalService):
		status = http.StatusBadGateway
	default:
		return InternalServerError
	}

	return echo.NewHTTPError(status, types.StringError(err.Error()))
}

// Records err on span and maps it with FromError. Errors that end up as a 5xx
// are logged with msg.
func Fail(ctx context.Context, span trace.Span, err error, msg string) error {
	span.RecordError(err)

	he := FromError(err)
	if he.Code >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, msg)
		logger.Logger.ErrorContext(ctx, msg, "error", err)
	} else {
		span.SetStatus(codes.Ok, msg)
	}

	return he
}

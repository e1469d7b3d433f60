package http

import (
	"errors"
	"net/http"

	"ordering/internal/core/ports"
	"ordering/internal/generated/servers"
	"ordering/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var errMalformedBody = errors.New("request body is malformed")

func errInvalidBody(cause error) error {
	return errs.NewValueIsInvalidErrorWithCause("body", errors.Join(errMalformedBody, cause))
}

// statusFor maps an error onto a response code. Only the kind is consulted.
func statusFor(err error) int {
	if errors.Is(err, ports.ErrIdempotencyKeyInFlight) {
		return http.StatusConflict
	}

	switch errs.KindOf(err) {
	case errs.KindBadRequest:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(ctx echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	code := statusFor(err)

	message := err.Error()
	if code == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method,
			"path", ctx.Path(),
			"error", err,
		)
		message = http.StatusText(code)
	}

	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

// ErrorHandler renders errors returned by middleware and the router in the
// same {code, message} shape the handlers use.
func ErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else {
			message = http.StatusText(code)
		}
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(code)
		return
	}
	_ = ctx.JSON(code, servers.Error{Code: code, Message: message})
}

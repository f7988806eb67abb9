package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_frontdesk/internal/schedule"
	"github.com/Freeeeeet/clinic_frontdesk/internal/service"
)

var badInput = []error{
	schedule.ErrInvalidClock,
	schedule.ErrInvalidWorkingHours,
	schedule.ErrInvalidDuration,
	schedule.ErrInvalidCount,
	schedule.ErrInvalidInterval,
	service.ErrInvalidStatus,
}

// fail переводит ошибку сервиса в HTTP-ответ
func fail(err error) error {
	if conflict, ok := service.AsConflict(err); ok {
		return &conflictHTTPError{conflict: conflict}
	}

	if errors.Is(err, service.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}

	for _, target := range badInput {
		if errors.Is(err, target) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	return echo.NewHTTPError(http.StatusInternalServerError, "internal server error").SetInternal(err)
}

func badRequest(err error) error {
	return echo.NewHTTPError(http.StatusBadRequest, err.Error())
}

type conflictHTTPError struct {
	conflict *service.ConflictError
}

func (e *conflictHTTPError) Error() string {
	return e.conflict.Error()
}

// ErrorHandler отдаёт ошибки в виде {"error": "..."}; конфликты расписания
// приходят с кодом 409 и списком нарушений
func ErrorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		body := errorResponse{Error: "internal server error"}

		var conflictErr *conflictHTTPError
		var httpErr *echo.HTTPError

		switch {
		case errors.As(err, &conflictErr):
			code = http.StatusConflict
			body = errorResponse{Error: conflictErr.Error(), Conflicts: conflictErr.conflict.Conflicts}
		case errors.As(err, &httpErr):
			code = httpErr.Code
			if msg, ok := httpErr.Message.(string); ok {
				body.Error = msg
			} else {
				body.Error = http.StatusText(code)
			}
			if httpErr.Internal != nil {
				err = httpErr.Internal
			}
		}

		if code >= http.StatusInternalServerError {
			logger.Error("Request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		if writeErr := c.JSON(code, body); writeErr != nil {
			logger.Error("Failed to write error response", zap.Error(writeErr))
		}
	}
}

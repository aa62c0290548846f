// Package response writes the JSON envelopes of the HTTP API.
package response

import (
	"net/http"

	deliverycontext "crawl/internal/delivery/context"
	domainerrors "crawl/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, domainerrors.NewSuccessResponse(data, deliverycontext.GetRequestID(c)))
}

// Error returns an error response. Details are dropped for 5xx errors.
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	return c.JSON(statusCode, domainerrors.NewErrorResponse(statusCode, errorCode, message, details, deliverycontext.GetRequestID(c)))
}

// BadRequest returns a 400 error
func BadRequest(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusBadRequest, errorCode, message, nil)
}

// BadRequestWithDetails returns a 400 error with details
func BadRequestWithDetails(c echo.Context, errorCode string, message string, details any) error {
	return Error(c, http.StatusBadRequest, errorCode, message, details)
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}

// HandleAppError writes an AppError response. Other errors are returned for the error handler.
func HandleAppError(c echo.Context, err error) error {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		var details any
		if appErr.Details() != "" {
			details = appErr.Details()
		}

		return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message(), details)
	}

	return errors.WithStack(err)
}

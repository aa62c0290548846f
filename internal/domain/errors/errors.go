package errors

import (
	"net/http"

	"crawl/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches any BaseError with the same business code, so detailed copies still
// match their predefined error
func (e *BaseError) Is(target error) bool {
	other, ok := target.(*BaseError)

	return ok && other.errorCode == e.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Request-related errors
	ErrInvalidInput = NewBaseError(
		http.StatusBadRequest,
		"INVALID_INPUT",
		"Please provide latitude and longitude",
		"",
	)

	ErrInvalidSearchArea = NewBaseError(
		http.StatusBadRequest,
		"INVALID_SEARCH_AREA",
		"The search area is outside the valid range",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	// Crawl-related errors
	ErrNoItinerary = NewBaseError(
		http.StatusNotFound,
		"NO_ITINERARY",
		"No crawl could be planned for this area",
		"",
	)

	ErrUnreachableLocation = NewBaseError(
		http.StatusUnprocessableEntity,
		"UNREACHABLE_LOCATION",
		"A location could not be connected to the walking network",
		"",
	)

	ErrRoutingConfig = NewBaseError(
		http.StatusInternalServerError,
		"ROUTING_CONFIG_INVALID",
		"Routing configuration is invalid",
		"",
	)

	// Upstream collaborator errors
	ErrLocationSourceFailed = NewBaseError(
		http.StatusBadGateway,
		"LOCATION_SOURCE_FAILED",
		"Failed to fetch candidate locations",
		"",
	)

	ErrRequestTimeout = NewBaseError(
		http.StatusGatewayTimeout,
		"REQUEST_TIMEOUT",
		"The request took too long to complete",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)
)

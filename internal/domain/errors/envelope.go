package errors

import "net/http"

// ErrorInfo is the error half of an API envelope
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// MetaInfo carries per-request metadata
type MetaInfo struct {
	RequestID string `json:"request_id"`
}

// SuccessResponse wraps a successful payload
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse wraps a failed request
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// NewSuccessResponse builds the envelope of a successful request
func NewSuccessResponse(data any, requestID string) SuccessResponse {
	return SuccessResponse{
		Data: data,
		Meta: &MetaInfo{RequestID: requestID},
	}
}

// NewErrorResponse builds the envelope of a failed request. Details are never sent for
// server side failures and an empty message falls back to the status text.
func NewErrorResponse(statusCode int, code, message string, details any, requestID string) ErrorResponse {
	if statusCode >= http.StatusInternalServerError {
		details = nil
	}
	if message == "" {
		message = http.StatusText(statusCode)
	}

	return ErrorResponse{
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
		Meta: &MetaInfo{RequestID: requestID},
	}
}

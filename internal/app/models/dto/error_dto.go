package dto

import (
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

// Standard error codes for the application
const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_002"
	ErrorCodeExpiredToken       ErrorCode = "AUTH_003"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_004"
	ErrorCodeAccountDisabled    ErrorCode = "AUTH_005"
	ErrorCodeInvalidAdminKey    ErrorCode = "AUTH_006"

	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"

	// Validation / domain-rule errors
	ErrorCodeValidationFailed     ErrorCode = "VAL_001"
	ErrorCodeInvalidFile          ErrorCode = "VAL_002"
	ErrorCodeNotAccepting         ErrorCode = "VAL_003"
	ErrorCodeDeadlinePassed       ErrorCode = "VAL_004"
	ErrorCodeInvalidTransition    ErrorCode = "VAL_005"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
)

// ErrorResponse is the standard error body:
// {statusCode, timestamp, path, method, message, code?, details?, requestId?}
type ErrorResponse struct {
	StatusCode int         `json:"statusCode" example:"404"`
	Timestamp  time.Time   `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
	Path       string      `json:"path" example:"/api/v1/projects/123"`
	Method     string      `json:"method" example:"GET"`
	Message    string      `json:"message" example:"Resource not found"`
	Code       ErrorCode   `json:"code,omitempty" example:"RES_001"`
	Details    interface{} `json:"details,omitempty"`
	RequestID  string      `json:"requestId,omitempty"`
}

// NewErrorResponse creates a standard error response body.
func NewErrorResponse(statusCode int, path, method, message string, code ErrorCode) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: statusCode,
		Timestamp:  time.Now().UTC(),
		Path:       path,
		Method:     method,
		Message:    message,
		Code:       code,
	}
}

// WithDetails attaches additional detail to the error body.
func (e *ErrorResponse) WithDetails(details interface{}) *ErrorResponse {
	e.Details = details
	return e
}

// WithRequestID tags the response with the request identifier.
func (e *ErrorResponse) WithRequestID(id string) *ErrorResponse {
	e.RequestID = id
	return e
}

package apperrors

import "errors"

// Gateway failure kinds
var (
	// ErrTransport means the request never produced an HTTP response
	ErrTransport = errors.New("transport failure")
	// ErrTimeout means the request exceeded the gateway timeout
	ErrTimeout = errors.New("request timed out")
	// ErrApplication means the backend answered with a non-2xx status
	ErrApplication = errors.New("backend rejected the request")
	// ErrDecode means the backend answered 2xx with an unusable body
	ErrDecode = errors.New("unexpected response body")
)

// Session errors
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNoSignupPayload  = errors.New("no pending signup")
	ErrTokenExpired     = errors.New("token expired")
)

// Validation errors
var (
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Storage errors
var (
	ErrStorageUnavailable = errors.New("client storage unavailable")
	ErrUnknownDriver      = errors.New("unknown storage driver")
)

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewValidationError wraps per-field messages into a validation failure
func NewValidationError(message string, fields map[string]string) error {
	details := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		details[k] = v
	}
	return (&CustomError{Err: ErrValidationFailed, Message: message}).WithDetails(details)
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

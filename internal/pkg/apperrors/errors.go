package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrTooManyRequests  = errors.New("too many requests")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrUnknownField     = errors.New("unknown field")
)

// Submission errors
var (
	ErrCaptchaRequired      = errors.New("captcha verification required")
	ErrSubmissionInProgress = errors.New("submission already in progress")
	ErrRegistrationFailed   = errors.New("registration failed")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError wraps ErrValidationFailed with the failing fields.
func NewValidationError(fieldErrors map[string]string) *CustomError {
	details := make(map[string]interface{}, len(fieldErrors))
	for k, v := range fieldErrors {
		details[k] = v
	}
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: "Please correct the highlighted fields",
		Details: details,
	}
}

// NewRemoteError wraps ErrRegistrationFailed with what the registration
// endpoint answered. statusMsg is the server supplied message, possibly empty.
func NewRemoteError(statusCode int, statusMsg string) *CustomError {
	return &CustomError{
		Err:       ErrRegistrationFailed,
		StatusMsg: statusMsg,
		Details:   map[string]interface{}{"status": statusCode},
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.StatusMsg != "" {
		return e.StatusMsg
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

// StatusMessage returns the user-facing status message carried by err, if any.
func StatusMessage(err error) (string, bool) {
	var ce *CustomError
	if errors.As(err, &ce) && ce.StatusMsg != "" {
		return ce.StatusMsg, true
	}
	return "", false
}

// FieldErrors returns the field error map carried by a validation error.
func FieldErrors(err error) map[string]string {
	var ce *CustomError
	if !errors.As(err, &ce) || !errors.Is(ce.Err, ErrValidationFailed) {
		return nil
	}
	out := make(map[string]string, len(ce.Details))
	for k, v := range ce.Details {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}

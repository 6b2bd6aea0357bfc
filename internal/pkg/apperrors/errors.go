package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrMissingFields    = errors.New("missing required fields")

	// User errors
	ErrUserNotFound        = errors.New("user not found")
	ErrUsernameAlreadyUsed = errors.New("username already exists")
)

// Student errors
var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrUSNAlreadyExists = errors.New("student USN already exists")
)

// Event errors
var (
	ErrEventNotFound  = errors.New("event not found")
	ErrInvalidCutoff  = errors.New("invalid cutoff time format")
	ErrInvalidEventID = errors.New("invalid event ID")
)

// Attendance recording rejections. These are expected business conditions,
// never process faults.
var (
	ErrCutoffExceeded  = errors.New("attendance cutoff time reached, cannot time in")
	ErrDuplicateTimeIn = errors.New("already timed in today")
	ErrInvalidAction   = errors.New("invalid scan action")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel error
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

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError creates a new custom error for failed validation with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Internal errors
	ErrDatabaseOperation = errors.New("database operation failed")
)

// Ingestion pipeline errors
var (
	// ErrUpstream marks a transport failure or non-success status from the
	// remote bulletin service, on either the search or the details call.
	ErrUpstream = errors.New("upstream request failed")

	// ErrParse marks a malformed or structurally missing upstream document.
	ErrParse = errors.New("upstream response could not be parsed")

	// ErrTransaction marks a failure inside the atomic catalog replace; the
	// transaction has been rolled back and the prior snapshot is intact.
	ErrTransaction = errors.New("catalog replace transaction failed")

	// ErrRefreshInProgress is returned when a refresh cycle is requested
	// while another one is still running.
	ErrRefreshInProgress = errors.New("a catalog refresh is already in progress")
)

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewUpstreamError creates a new custom error for a failed upstream call
func NewUpstreamError(message string) error {
	return &CustomError{
		Err:     ErrUpstream,
		Message: message,
	}
}

// NewParseError creates a new custom error for an undecodable upstream document
func NewParseError(message string) error {
	return &CustomError{
		Err:     ErrParse,
		Message: message,
	}
}

// NewTransactionError creates a new custom error for a failed catalog replace
func NewTransactionError(message string) error {
	return &CustomError{
		Err:     ErrTransaction,
		Message: message,
	}
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

package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Student errors
var (
	ErrStudentNotFound            = errors.New("student not found")
	ErrAdmissionNumberExists      = errors.New("admission number already exists")
	ErrDuplicateAdmissionNumbers  = errors.New("duplicate admission numbers in batch")
	ErrConflictingAdmissionNumber = errors.New("admission number conflicts with existing records")
)

// Institution errors
var (
	ErrInstitutionNotFound    = errors.New("institution not found")
	ErrInstitutionEmailExists = errors.New("institution with this email already exists")
	ErrInstitutionHasStudents = errors.New("institution has enrolled students and cannot be deleted")
	ErrInvalidResetToken      = errors.New("invalid or expired password reset token")
)

// Import errors
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrNoDataRows          = errors.New("file contains no data rows")
	ErrImportValidation    = errors.New("import validation failed")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// NewErrorWithLines wraps sentinel with a message and the full list of
// human-readable problem lines in Details, so callers see every problem in
// one response instead of one per round-trip.
func NewErrorWithLines(sentinel error, message string, lines []string) error {
	return &CustomError{
		Err:     sentinel,
		Message: message,
		Details: map[string]interface{}{"errors": lines},
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
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

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// DetailLines extracts the "errors" detail list from err if it is a
// CustomError carrying one. Returns nil otherwise.
func DetailLines(err error) []string {
	var ce *CustomError
	if !errors.As(err, &ce) || ce.Details == nil {
		return nil
	}
	if lines, ok := ce.Details["errors"].([]string); ok {
		return lines
	}
	return nil
}

package dto

// ErrorCode defines standardized error codes for the API
type ErrorCode string

// Error code constants
const (
	// Authentication errors
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeTokenExpired       ErrorCode = "AUTH_002"
	ErrorCodeTokenInvalid       ErrorCode = "AUTH_003"
	ErrorCodeUnauthorized       ErrorCode = "AUTH_004"
	ErrorCodeForbidden          ErrorCode = "AUTH_005"

	// Resource errors
	ErrorCodeResourceNotFound      ErrorCode = "RES_001"
	ErrorCodeResourceAlreadyExists ErrorCode = "RES_002"
	ErrorCodeResourceConflict      ErrorCode = "RES_003"

	// Validation errors
	ErrorCodeValidationFailed ErrorCode = "VAL_001"
	ErrorCodeInvalidFormat    ErrorCode = "VAL_002"

	// Import errors
	ErrorCodeImportFailed        ErrorCode = "IMP_001"
	ErrorCodeUnsupportedFileType ErrorCode = "IMP_002"
	ErrorCodeEmptyImportFile     ErrorCode = "IMP_003"

	// Server errors
	ErrorCodeInternalServer ErrorCode = "SRV_001"
)

// ErrorDetail represents detailed information about an error
type ErrorDetail struct {
	Code    ErrorCode              `json:"code" example:"VAL_001"`
	Message string                 `json:"message" example:"Validation failed"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse represents the standardized error response body
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// NewErrorDetail creates a new ErrorDetail
func NewErrorDetail(code ErrorCode, message string) ErrorDetail {
	return ErrorDetail{
		Code:    code,
		Message: message,
	}
}

// WithDetails adds detail entries to an ErrorDetail
func (e ErrorDetail) WithDetails(details map[string]interface{}) ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse wraps an ErrorDetail in the response envelope
func NewErrorResponse(detail ErrorDetail) ErrorResponse {
	return ErrorResponse{Error: detail}
}

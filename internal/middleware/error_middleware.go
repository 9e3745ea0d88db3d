package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/apperrors"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Every error
// class except genuine infrastructure failures carries a human-readable
// message; infrastructure failures stay opaque.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classifyError(err)

	// Attach collected problem lines (import/validation reports) when present
	if lines := apperrors.DetailLines(err); len(lines) > 0 {
		detail = detail.WithDetails(map[string]interface{}{"errors": lines})
	}

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Internal server error")
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}

func classifyError(err error) (int, dto.ErrorDetail) {
	switch {
	// Validation failures
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrImportValidation):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
	case errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrInvalidFormat):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidFormat, err.Error())

	// Import file problems
	case errors.Is(err, apperrors.ErrUnsupportedFileType):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeUnsupportedFileType, err.Error())
	case errors.Is(err, apperrors.ErrNoDataRows):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeEmptyImportFile, err.Error())

	// Conflicts
	case errors.Is(err, apperrors.ErrAdmissionNumberExists),
		errors.Is(err, apperrors.ErrDuplicateAdmissionNumbers),
		errors.Is(err, apperrors.ErrConflictingAdmissionNumber),
		errors.Is(err, apperrors.ErrInstitutionEmailExists),
		errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())
	case errors.Is(err, apperrors.ErrInstitutionHasStudents),
		errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceConflict, err.Error())

	// Missing resources
	case errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrInstitutionNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())

	// Authentication
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, err.Error())
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeTokenExpired, err.Error())
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeTokenInvalid, err.Error())
	case errors.Is(err, apperrors.ErrInvalidResetToken):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeTokenInvalid, err.Error())

	default:
		return http.StatusInternalServerError,
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An internal server error occurred")
	}
}

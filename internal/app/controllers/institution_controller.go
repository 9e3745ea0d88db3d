package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/services"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/middleware"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/helpers"
)

// InstitutionController handles institution-related operations
type InstitutionController struct {
	institutionService services.InstitutionService
	exportService      services.ExportService
}

// NewInstitutionController creates a new InstitutionController
func NewInstitutionController(
	institutionService services.InstitutionService,
	exportService services.ExportService,
) *InstitutionController {
	return &InstitutionController{
		institutionService: institutionService,
		exportService:      exportService,
	}
}

// Register handles institution registration
// @Summary Register a new institution
// @Description Creates a pending institution account and sends a confirmation email
// @Tags institutions
// @Accept json
// @Produce json
// @Param request body dto.RegisterInstitutionRequest true "Institution information"
// @Success 201 {object} dto.APIResponse{data=dto.InstitutionResponse} "Institution registered"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions [post]
func (c *InstitutionController) Register(ctx *gin.Context) {
	var req dto.RegisterInstitutionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid institution data")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	institution, err := c.institutionService.Register(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.ToInstitutionResponse(institution)))
}

// Login handles institution authentication
// @Summary Institution login
// @Description Authenticates an institution and returns an access token
// @Tags institutions
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/login [post]
func (c *InstitutionController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid login data")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.institutionService.Login(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// GetInstitution retrieves an institution by ID
// @Summary Get institution by ID
// @Description Retrieves one institution with its current student count
// @Tags institutions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Success 200 {object} dto.APIResponse{data=dto.InstitutionResponse} "Institution retrieved"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id} [get]
func (c *InstitutionController) GetInstitution(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		return
	}

	institution, studentCount, err := c.institutionService.GetInstitution(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.ToInstitutionResponse(institution)
	response.StudentCount = studentCount
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// ListInstitutions retrieves institutions with filters and pagination
// @Summary List institutions
// @Description Retrieves institutions matching the given filters, newest first
// @Tags institutions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param status query string false "Filter by status (PENDING, APPROVED or TERMINATED)"
// @Param search query string false "Search by name or email"
// @Success 200 {object} dto.APIResponse{data=dto.InstitutionListResponse} "Institutions retrieved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions [get]
func (c *InstitutionController) ListInstitutions(ctx *gin.Context) {
	filter := institutionFilterFromQuery(ctx)

	institutions, total, err := c.institutionService.ListInstitutions(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.InstitutionResponse, 0, len(institutions))
	for _, inst := range institutions {
		responses = append(responses, dto.ToInstitutionResponse(inst))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.InstitutionListResponse{
		Institutions: responses,
		Pagination:   helpers.NewPaginationInfo(filter.Page, filter.PageSize, total),
	}))
}

// UpdateInstitution handles institution updates including approval
// @Summary Update an institution
// @Description Applies the provided fields. Flipping isApproved from false to true dispatches the approval email once.
// @Tags institutions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Param request body dto.UpdateInstitutionRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.InstitutionResponse} "Institution updated"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id} [put]
func (c *InstitutionController) UpdateInstitution(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		return
	}

	var req dto.UpdateInstitutionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid institution data")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	institution, err := c.institutionService.UpdateInstitution(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToInstitutionResponse(institution)))
}

// DeleteInstitution removes an institution without students
// @Summary Delete an institution
// @Description Deletes an institution. Rejected while the institution owns any students.
// @Tags institutions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Institution ID"
// @Success 200 {object} dto.APIResponse "Institution deleted"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 409 {object} dto.ErrorResponse "Institution still owns students"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/{id} [delete]
func (c *InstitutionController) DeleteInstitution(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		return
	}

	if err := c.institutionService.DeleteInstitution(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Institution deleted", nil))
}

// ForgotPassword starts the password reset flow
// @Summary Request a password reset
// @Description Emails a reset link when the address belongs to a registered institution
// @Tags institutions
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.APIResponse "Reset email dispatched if the account exists"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/forgot-password [post]
func (c *InstitutionController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A valid email is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.institutionService.ForgotPassword(ctx, req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse("If the account exists, a reset email has been sent", nil))
}

// ResetPassword completes the password reset flow
// @Summary Reset password
// @Description Sets a new password for the institution holding a valid reset token
// @Tags institutions
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.APIResponse "Password updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid or expired token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/reset-password [post]
func (c *InstitutionController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A token and new password are required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.institutionService.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Password updated", nil))
}

// ExportInstitutions serves the filtered institution set as a download
// @Summary Export institutions
// @Description Exports institutions matching the filters as csv or xlsx
// @Tags institutions
// @Produce json
// @Security BearerAuth
// @Param format query string false "Export format: csv or xlsx" default(csv)
// @Param status query string false "Filter by status"
// @Success 200 {file} binary "Export file"
// @Failure 400 {object} dto.ErrorResponse "Unsupported format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /institutions/export [get]
func (c *InstitutionController) ExportInstitutions(ctx *gin.Context) {
	filter := institutionFilterFromQuery(ctx)
	format := ctx.DefaultQuery("format", services.ExportFormatCSV)

	result, err := c.exportService.ExportInstitutions(ctx, filter, format)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	ctx.Data(http.StatusOK, result.ContentType, result.Data)
}

func institutionFilterFromQuery(ctx *gin.Context) dto.InstitutionFilter {
	filter := dto.InstitutionFilter{}
	filter.Page, filter.PageSize = helpers.ParsePaginationParams(ctx)

	if v := ctx.Query("status"); v != "" {
		status := models.InstitutionStatus(v)
		filter.Status = &status
	}
	if v := ctx.Query("search"); v != "" {
		filter.Search = &v
	}

	return filter
}

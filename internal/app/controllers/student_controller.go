package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/services"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/middleware"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/helpers"
)

// maxImportFileSize caps uploaded import files at 10 MB
const maxImportFileSize = 10 << 20

// StudentController handles student-related operations
type StudentController struct {
	studentService services.StudentService
	importService  services.ImportService
	exportService  services.ExportService
}

// NewStudentController creates a new StudentController
func NewStudentController(
	studentService services.StudentService,
	importService services.ImportService,
	exportService services.ExportService,
) *StudentController {
	return &StudentController{
		studentService: studentService,
		importService:  importService,
		exportService:  exportService,
	}
}

// CreateStudent handles single student creation
// @Summary Create a new student
// @Description Creates a single student record after validation and admission number uniqueness checks
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student created successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 409 {object} dto.ErrorResponse "Admission number already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.CreateStudent(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.ToStudentResponse(student)))
}

// GetStudent retrieves a student by ID
// @Summary Get student by ID
// @Description Retrieves one student with its institution joined
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		return
	}

	student, err := c.studentService.GetStudent(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToStudentResponse(student)))
}

// ListStudents retrieves students with filters and pagination
// @Summary List students
// @Description Retrieves students matching the given filters, newest first
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Param institutionId query int false "Filter by institution"
// @Param status query string false "Filter by status (ACTIVE or DEACTIVATED)"
// @Param department query string false "Filter by department"
// @Param course query string false "Filter by course"
// @Param semester query string false "Filter by semester"
// @Param state query string false "Filter by state"
// @Param search query string false "Search by name or admission number"
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse} "Students retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	filter := studentFilterFromQuery(ctx)

	students, total, err := c.studentService.ListStudents(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.StudentResponse, 0, len(students))
	for _, s := range students {
		responses = append(responses, dto.ToStudentResponse(s))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.StudentListResponse{
		Students:   responses,
		Pagination: helpers.NewPaginationInfo(filter.Page, filter.PageSize, total),
	}))
}

// UpdateStudent handles student updates
// @Summary Update a student
// @Description Applies the provided fields to an existing student
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid student data")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ToStudentResponse(student)))
}

// DeleteStudent soft-deletes a student
// @Summary Deactivate a student
// @Description Moves the student to DEACTIVATED status. Records are never physically deleted.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse "Student deactivated successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		return
	}

	if err := c.studentService.DeactivateStudent(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessMessageResponse("Student deactivated", nil))
}

// ImportStudents handles bulk student import from a spreadsheet or CSV file
// @Summary Bulk import students
// @Description Imports students from an uploaded .xlsx, .xls or .csv file. The whole batch is rejected if any row fails.
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Spreadsheet or CSV file"
// @Param institutionId formData int true "Owning institution ID"
// @Success 201 {object} dto.APIResponse{data=dto.ImportSummary} "All rows imported"
// @Failure 400 {object} dto.ErrorResponse "Validation failed or unsupported file"
// @Failure 404 {object} dto.ErrorResponse "Institution not found"
// @Failure 409 {object} dto.ErrorResponse "Duplicate admission numbers"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/import [post]
func (c *StudentController) ImportStudents(ctx *gin.Context) {
	institutionID, err := strconv.ParseInt(ctx.PostForm("institutionId"), 10, 64)
	if err != nil || institutionID <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A valid institutionId form field is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "An import file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if fileHeader.Size > maxImportFileSize {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Import file exceeds the 10 MB limit")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	summary, err := c.importService.ImportStudents(ctx, institutionID, data, fileHeader.Filename)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(summary))
}

// DownloadImportTemplate serves the xlsx import template
// @Summary Download the import template
// @Description Returns an xlsx workbook with the recognized header row and an instructions sheet
// @Tags students
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} binary "Template workbook"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/import/template [get]
func (c *StudentController) DownloadImportTemplate(ctx *gin.Context) {
	data, err := c.importService.BuildTemplate()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="student_import_template.xlsx"`)
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// UploadPassportPhoto attaches a passport photo to a student
// @Summary Upload passport photo
// @Description Stores the photo and links it to the student. Attachments are never part of bulk import.
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param file formData file true "Photo file"
// @Success 200 {object} dto.APIResponse "Photo attached"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/photo [post]
func (c *StudentController) UploadPassportPhoto(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A photo file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	url, err := c.studentService.AttachPassportPhoto(ctx, id, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"passportPhoto": url}))
}

// UploadMarksheet appends a marksheet to a student
// @Summary Upload marksheet
// @Description Stores the marksheet and appends it to the student's ordered list
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param file formData file true "Marksheet file"
// @Success 200 {object} dto.APIResponse "Marksheet attached"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/marksheets [post]
func (c *StudentController) UploadMarksheet(ctx *gin.Context) {
	id, err := parseIDParam(ctx)
	if err != nil {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "A marksheet file is required")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	url, err := c.studentService.AttachMarksheet(ctx, id, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"marksheet": url}))
}

// ExportStudents serves the filtered student set as a download or JSON rows
// @Summary Export students
// @Description Exports students matching the filters as csv, xlsx or a JSON row payload
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param format query string false "Export format: csv, xlsx or json" default(csv)
// @Param institutionId query int false "Filter by institution"
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.ExportPayload "Export payload (json format)"
// @Failure 400 {object} dto.ErrorResponse "Unsupported format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/export [get]
func (c *StudentController) ExportStudents(ctx *gin.Context) {
	filter := studentFilterFromQuery(ctx)
	format := ctx.DefaultQuery("format", services.ExportFormatCSV)

	if format == "json" {
		payload, err := c.exportService.ExportStudentsJSON(ctx, filter)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, payload)
		return
	}

	result, err := c.exportService.ExportStudents(ctx, filter, format)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	ctx.Data(http.StatusOK, result.ContentType, result.Data)
}

func parseIDParam(ctx *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid ID parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, fmt.Errorf("invalid id parameter")
	}
	return id, nil
}

func studentFilterFromQuery(ctx *gin.Context) dto.StudentFilter {
	filter := dto.StudentFilter{}
	filter.Page, filter.PageSize = helpers.ParsePaginationParams(ctx)

	if v := ctx.Query("institutionId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			filter.InstitutionID = &id
		}
	}
	if v := ctx.Query("status"); v != "" {
		status := models.StudentStatus(v)
		filter.Status = &status
	}
	if v := ctx.Query("department"); v != "" {
		filter.Department = &v
	}
	if v := ctx.Query("course"); v != "" {
		filter.Course = &v
	}
	if v := ctx.Query("semester"); v != "" {
		filter.Semester = &v
	}
	if v := ctx.Query("state"); v != "" {
		filter.State = &v
	}
	if v := ctx.Query("search"); v != "" {
		filter.Search = &v
	}

	return filter
}

package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/services"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/middleware"
)

// StatisticsController handles student statistics requests
type StatisticsController struct {
	statisticsService services.StatisticsService
}

// NewStatisticsController creates a new StatisticsController
func NewStatisticsController(statisticsService services.StatisticsService) *StatisticsController {
	return &StatisticsController{statisticsService: statisticsService}
}

// GetStudentStatistics computes the nested statistics payload
// @Summary Student statistics
// @Description Computes demographics, academic, geographic and trend aggregations over the filtered student set
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Param institutionId query int false "Scope to one institution"
// @Param from query string false "Registration date range start (YYYY-MM-DD)"
// @Param to query string false "Registration date range end (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.StudentStatistics} "Statistics computed"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /statistics/students [get]
func (c *StatisticsController) GetStudentStatistics(ctx *gin.Context) {
	filter := dto.StatisticsFilter{}

	if v := ctx.Query("institutionId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid institutionId filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.InstitutionID = &id
	}
	if v := ctx.Query("from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid from date, expected YYYY-MM-DD")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		filter.RegisteredFrom = &from
	}
	if v := ctx.Query("to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid to date, expected YYYY-MM-DD")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		// Inclusive end of day
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		filter.RegisteredTo = &endOfDay
	}

	statistics, err := c.statisticsService.GetStudentStatistics(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(statistics))
}

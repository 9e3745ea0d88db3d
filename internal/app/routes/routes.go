package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/controllers"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/middleware"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/auth"
)

// Controllers bundles everything the router needs
type Controllers struct {
	Student     *controllers.StudentController
	Institution *controllers.InstitutionController
	Statistics  *controllers.StatisticsController
}

// RegisterRoutes wires all API routes onto the engine
func RegisterRoutes(router *gin.Engine, c Controllers, jwtService *auth.JWTService) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// Public institution endpoints
	api.POST("/institutions", c.Institution.Register)
	api.POST("/institutions/login", c.Institution.Login)
	api.POST("/institutions/forgot-password", c.Institution.ForgotPassword)
	api.POST("/institutions/reset-password", c.Institution.ResetPassword)

	protected := api.Group("")
	protected.Use(middleware.JWTAuth(jwtService))

	// Institutions
	protected.GET("/institutions", c.Institution.ListInstitutions)
	protected.GET("/institutions/export", c.Institution.ExportInstitutions)
	protected.GET("/institutions/:id", c.Institution.GetInstitution)
	protected.PUT("/institutions/:id", c.Institution.UpdateInstitution)
	protected.DELETE("/institutions/:id", c.Institution.DeleteInstitution)

	// Students
	protected.POST("/students", c.Student.CreateStudent)
	protected.GET("/students", c.Student.ListStudents)
	protected.GET("/students/export", c.Student.ExportStudents)
	protected.POST("/students/import", c.Student.ImportStudents)
	protected.GET("/students/import/template", c.Student.DownloadImportTemplate)
	protected.GET("/students/:id", c.Student.GetStudent)
	protected.PUT("/students/:id", c.Student.UpdateStudent)
	protected.DELETE("/students/:id", c.Student.DeleteStudent)
	protected.POST("/students/:id/photo", c.Student.UploadPassportPhoto)
	protected.POST("/students/:id/marksheets", c.Student.UploadMarksheet)

	// Statistics
	protected.GET("/statistics/students", c.Statistics.GetStudentStatistics)
}

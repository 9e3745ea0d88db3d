package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/repositories"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/auth"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/email"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/filestorage"
)

// StudentStore is the persistence surface the student-facing services need
type StudentStore interface {
	Create(ctx context.Context, s *models.Student) (*models.Student, error)
	CreateBatch(ctx context.Context, students []*models.Student) ([]*models.Student, error)
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	ExistingAdmissionNumbers(ctx context.Context, numbers []string) ([]string, error)
	List(ctx context.Context, filter dto.StudentFilter, offset, limit int) ([]*models.Student, int64, error)
	ListForExport(ctx context.Context, filter dto.StudentFilter) ([]*models.Student, error)
	Update(ctx context.Context, s *models.Student) (*models.Student, error)
	UpdateStatus(ctx context.Context, id int64, status models.StudentStatus) error
	SetPassportPhoto(ctx context.Context, id int64, url string) error
	AddMarksheet(ctx context.Context, id int64, url string) error
	CountByInstitution(ctx context.Context, institutionID int64) (int64, error)
}

// InstitutionStore is the persistence surface the institution services need
type InstitutionStore interface {
	Create(ctx context.Context, i *models.Institution) (*models.Institution, error)
	GetByID(ctx context.Context, id int64) (*models.Institution, error)
	GetByEmail(ctx context.Context, email string) (*models.Institution, error)
	List(ctx context.Context, filter dto.InstitutionFilter, offset, limit int) ([]*models.Institution, int64, error)
	ListForExport(ctx context.Context, filter dto.InstitutionFilter) ([]*models.Institution, error)
	Update(ctx context.Context, i *models.Institution) (*models.Institution, error)
	Delete(ctx context.Context, id int64) error
	SetResetToken(ctx context.Context, id int64, token string, expires time.Time) error
	GetByResetToken(ctx context.Context, token string) (*models.Institution, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// StatisticsStore is the aggregate-query surface behind the statistics
// service
type StatisticsStore interface {
	Overview(ctx context.Context, filter dto.StatisticsFilter) (*repositories.OverviewCounts, error)
	GenderCounts(ctx context.Context, filter dto.StatisticsFilter) ([]dto.GenderCount, error)
	AgeBucketCounts(ctx context.Context, filter dto.StatisticsFilter) ([]dto.AgeBucketCount, error)
	DepartmentStats(ctx context.Context, filter dto.StatisticsFilter) ([]dto.DepartmentStats, error)
	CourseStats(ctx context.Context, filter dto.StatisticsFilter) ([]dto.CourseStats, error)
	SemesterStats(ctx context.Context, filter dto.StatisticsFilter) ([]dto.SemesterStats, error)
	StateStats(ctx context.Context, filter dto.StatisticsFilter) ([]dto.StateStats, error)
	InstitutionStats(ctx context.Context, filter dto.StatisticsFilter) ([]dto.InstitutionStats, error)
	MonthlyTrends(ctx context.Context, filter dto.StatisticsFilter) ([]dto.MonthlyTrend, error)
}

// StudentService manages the single-record student lifecycle
type StudentService interface {
	CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error)
	GetStudent(ctx context.Context, id int64) (*models.Student, error)
	ListStudents(ctx context.Context, filter dto.StudentFilter) ([]*models.Student, int64, error)
	UpdateStudent(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*models.Student, error)
	DeactivateStudent(ctx context.Context, id int64) error
	AttachPassportPhoto(ctx context.Context, id int64, file *multipart.FileHeader) (string, error)
	AttachMarksheet(ctx context.Context, id int64, file *multipart.FileHeader) (string, error)
}

// ImportService runs the bulk import pipeline
type ImportService interface {
	ImportStudents(ctx context.Context, institutionID int64, data []byte, filename string) (*dto.ImportSummary, error)
	BuildTemplate() ([]byte, error)
}

// InstitutionService manages the institution lifecycle
type InstitutionService interface {
	Register(ctx context.Context, req dto.RegisterInstitutionRequest) (*models.Institution, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	GetInstitution(ctx context.Context, id int64) (*models.Institution, int64, error)
	ListInstitutions(ctx context.Context, filter dto.InstitutionFilter) ([]*models.Institution, int64, error)
	UpdateInstitution(ctx context.Context, id int64, req dto.UpdateInstitutionRequest) (*models.Institution, error)
	DeleteInstitution(ctx context.Context, id int64) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// StatisticsService computes the nested student statistics payload
type StatisticsService interface {
	GetStudentStatistics(ctx context.Context, filter dto.StatisticsFilter) (*dto.StudentStatistics, error)
}

// ExportResult is a serialized export ready to be written to the response
type ExportResult struct {
	ContentType string
	Filename    string
	Data        []byte
}

// ExportService flattens record sets into downloadable tabular formats
type ExportService interface {
	ExportStudents(ctx context.Context, filter dto.StudentFilter, format string) (*ExportResult, error)
	ExportStudentsJSON(ctx context.Context, filter dto.StudentFilter) (*dto.ExportPayload, error)
	ExportInstitutions(ctx context.Context, filter dto.InstitutionFilter, format string) (*ExportResult, error)
}

// Services bundles every service for dependency injection
type Services struct {
	Student     StudentService
	Import      ImportService
	Institution InstitutionService
	Statistics  StatisticsService
	Export      ExportService
}

// NewServices wires all services onto the shared repositories and
// infrastructure
func NewServices(
	repos *repositories.Repositories,
	emailService email.EmailService,
	storage filestorage.FileStorage,
	jwtService *auth.JWTService,
) *Services {
	return &Services{
		Student:     NewStudentService(repos.Student, repos.Institution, storage),
		Import:      NewImportService(repos.Student, repos.Institution),
		Institution: NewInstitutionService(repos.Institution, repos.Student, emailService, jwtService),
		Statistics:  NewStatisticsService(repos.Statistics),
		Export:      NewExportService(repos.Student, repos.Institution),
	}
}

package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/hexendevelopers/cbpd-admin-sub000/docs" // swagger docs registration
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/controllers"
	appMigrations "github.com/hexendevelopers/cbpd-admin-sub000/internal/app/migrations"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/repositories"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/routes"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/services"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/config"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/db"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/auth"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/email"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/filestorage"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/logger"
)

// Dependencies holds the assembled application graph
type Dependencies struct {
	Repos       *repositories.Repositories
	Services    *services.Services
	Controllers routes.Controllers
	JWTService  *auth.JWTService
	FileStorage filestorage.FileStorage
	Email       email.EmailService
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the connection pool and runs migrations
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// BuildDependencies initializes repositories, services and controllers
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = repositories.NewRepositories(database)

	baseURL := cfg.Server.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}

	storage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath, baseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = storage

	deps.Email = email.NewSMTPEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		BaseURL:   baseURL,
	})

	tokenExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		tokenExp = 12 * time.Hour
	}
	deps.JWTService = auth.NewJWTService(cfg.JWT.Secret, tokenExp, cfg.JWT.Issuer)

	deps.Services = services.NewServices(deps.Repos, deps.Email, deps.FileStorage, deps.JWTService)

	deps.Controllers = routes.Controllers{
		Student: controllers.NewStudentController(
			deps.Services.Student, deps.Services.Import, deps.Services.Export),
		Institution: controllers.NewInstitutionController(
			deps.Services.Institution, deps.Services.Export),
		Statistics: controllers.NewStatisticsController(deps.Services.Statistics),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	routes.RegisterRoutes(router, deps.Controllers, deps.JWTService)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}

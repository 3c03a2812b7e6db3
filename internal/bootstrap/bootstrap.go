package bootstrap

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/AlexMorrow239/research-portal-backend-sub000/docs" // Generated swagger docs
	appControllers "github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/controllers"
	appRepos "github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/repositories"
	appRoutes "github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/routes"
	appServices "github.com/AlexMorrow239/research-portal-backend-sub000/internal/app/services"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/config"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/db"
	pkgAuth "github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/auth"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/email"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/filestorage"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/helpers"
	"github.com/AlexMorrow239/research-portal-backend-sub000/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService           appServices.AuthService
	ProfessorService      appServices.ProfessorService
	ProjectService        appServices.ProjectService
	ApplicationService    appServices.ApplicationService
	TrackingService       appServices.TrackingService
	AnalyticsService      appServices.AnalyticsService
	AuthController        *appControllers.AuthController
	ProfessorController   *appControllers.ProfessorController
	ProjectController     *appControllers.ProjectController
	ApplicationController *appControllers.ApplicationController
	AnalyticsController   *appControllers.AnalyticsController
	TrackingController    *appControllers.TrackingController
	Repos                 *appRepos.Repositories
	JWTService            *pkgAuth.JWTService
	DownloadTokenService  *pkgAuth.DownloadTokenService
	EmailService          *email.Service
	FileStorage           *filestorage.LocalStorage
	Logger                zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// A .env file in the working directory is applied before the config is read.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	_ = godotenv.Load()

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

// SetupDatabase connects to the document store and ensures indexes exist.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.Mongo, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewMongo(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.EnsureIndexes(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ensure indexes")
		_ = database.Close(context.Background())
		return nil, err
	}

	lgr.Info().Str("database", cfg.Database.Name).Msg("Database connection successfully established.")
	return database, nil
}

// BuildDependencies wires repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.Mongo, lgr zerolog.Logger) (*Dependencies, error) {
	repos := appRepos.NewRepositories(database.Database)

	fileStorage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		return nil, err
	}

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
	downloadTokens := pkgAuth.NewDownloadTokenService(
		cfg.JWT.DownloadSecret,
		helpers.ParseDuration(cfg.JWT.DownloadTokenExpiration, 7*24*time.Hour),
		cfg.Server.BaseURL,
	)

	smtpSender := email.NewSMTPSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
	}, lgr)
	emailService := email.NewService(smtpSender, lgr)

	authService := appServices.NewAuthService(repos.ProfessorRepository, jwtService, lgr)
	professorService := appServices.NewProfessorService(repos.ProfessorRepository, cfg.Admin.RegistrationPassword, lgr)
	projectService := appServices.NewProjectService(repos.ProjectRepository, fileStorage, lgr)
	trackingService := appServices.NewTrackingService(repos.TrackingRepository, lgr)
	analyticsService := appServices.NewAnalyticsService(repos.AnalyticsRepository, repos.TrackingRepository, repos.ProjectRepository, lgr)
	applicationService := appServices.NewApplicationService(
		repos.ApplicationRepository,
		repos.ProjectRepository,
		repos.ProfessorRepository,
		analyticsService,
		trackingService,
		emailService,
		downloadTokens,
		fileStorage,
		cfg.Server.BaseURL,
		lgr,
	)

	deps := &Dependencies{
		AuthService:           authService,
		ProfessorService:      professorService,
		ProjectService:        projectService,
		ApplicationService:    applicationService,
		TrackingService:       trackingService,
		AnalyticsService:      analyticsService,
		AuthController:        appControllers.NewAuthController(authService, lgr),
		ProfessorController:   appControllers.NewProfessorController(professorService, lgr),
		ProjectController:     appControllers.NewProjectController(projectService, lgr),
		ApplicationController: appControllers.NewApplicationController(applicationService, lgr),
		AnalyticsController:   appControllers.NewAnalyticsController(analyticsService, lgr),
		TrackingController:    appControllers.NewTrackingController(trackingService, cfg.Server.PortalURL, lgr),
		Repos:                 repos,
		JWTService:            jwtService,
		DownloadTokenService:  downloadTokens,
		EmailService:          emailService,
		FileStorage:           fileStorage,
		Logger:                lgr,
	}

	return deps, nil
}

// SetupRouter builds the gin engine with all routes and the swagger UI.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.ProfessorController,
		deps.ProjectController,
		deps.ApplicationController,
		deps.AnalyticsController,
		deps.TrackingController,
		deps.JWTService,
	)

	if !cfg.IsProduction() {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
		lgr.Info().Msg("Swagger UI available at /swagger/index.html")
	}

	return router
}

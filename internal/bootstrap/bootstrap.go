package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	appControllers "github.com/collegeconnect/collegeconnect/internal/app/controllers"
	appMigrations "github.com/collegeconnect/collegeconnect/internal/app/migrations"
	appRepos "github.com/collegeconnect/collegeconnect/internal/app/repositories"
	appRoutes "github.com/collegeconnect/collegeconnect/internal/app/routes"
	appServices "github.com/collegeconnect/collegeconnect/internal/app/services"
	"github.com/collegeconnect/collegeconnect/internal/config"
	"github.com/collegeconnect/collegeconnect/internal/db"
	appMiddleware "github.com/collegeconnect/collegeconnect/internal/middleware"
	pkgAuth "github.com/collegeconnect/collegeconnect/internal/pkg/auth"
	"github.com/collegeconnect/collegeconnect/internal/pkg/email"
	"github.com/collegeconnect/collegeconnect/internal/pkg/filestorage"
	"github.com/collegeconnect/collegeconnect/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                  *appRepos.Repositories
	JWTService             *pkgAuth.JWTService
	FileStorage            *filestorage.LocalStorage
	EmailSender            email.Sender
	AuthService            *appServices.AuthService
	CollegeService         *appServices.CollegeService
	EventService           *appServices.EventService
	ForumService           *appServices.ForumService
	ResourceService        *appServices.ResourceService
	NotificationService    *appServices.NotificationService
	AuthController         *appControllers.AuthController
	CollegeController      *appControllers.CollegeController
	EventController        *appControllers.EventController
	ForumController        *appControllers.ForumController
	ResourceController     *appControllers.ResourceController
	NotificationController *appControllers.NotificationController
	AuthMiddleware         *appMiddleware.AuthMiddleware
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
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

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	fileStorage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}
	deps.FileStorage = fileStorage

	tokenExp, err := time.ParseDuration(cfg.JWT.TokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT token expiration: %w", err)
	}
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExp:    tokenExp,
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.EmailSender = email.NewSMTPSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	// Services
	deps.NotificationService = appServices.NewNotificationService(
		deps.Repos.NotificationRepository, deps.Repos.CollegeRepository, lgr)
	deps.AuthService = appServices.NewAuthService(
		deps.Repos.CollegeRepository, deps.JWTService, deps.EmailSender,
		cfg.Server.FrontendBaseURL, lgr)
	deps.CollegeService = appServices.NewCollegeService(
		deps.Repos.CollegeRepository, deps.FileStorage, deps.JWTService, lgr)
	deps.EventService = appServices.NewEventService(
		deps.Repos.EventRepository, deps.NotificationService, lgr)
	deps.ForumService = appServices.NewForumService(
		deps.Repos.ForumPostRepository, deps.Repos.CollegeRepository,
		deps.NotificationService, lgr)
	deps.ResourceService = appServices.NewResourceService(
		deps.Repos.ResourceRepository, deps.FileStorage,
		deps.NotificationService, lgr)

	// Controllers
	deps.AuthController = appControllers.NewAuthController(deps.AuthService, deps.FileStorage)
	deps.CollegeController = appControllers.NewCollegeController(deps.CollegeService)
	deps.EventController = appControllers.NewEventController(deps.EventService)
	deps.ForumController = appControllers.NewForumController(deps.ForumService)
	deps.ResourceController = appControllers.NewResourceController(deps.ResourceService)
	deps.NotificationController = appControllers.NewNotificationController(deps.NotificationService)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.CollegeRepository)

	return deps, nil
}

// SetupRouter creates the gin engine with all middleware and routes mounted.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.EqualFold(cfg.Server.Mode, "production") {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.Metrics())

	// Auth endpoints share a per-IP budget of 5 requests burst, refilling one
	// per second.
	authRateLimiter := appMiddleware.NewRateLimiter(rate.Limit(1), 5)

	appRoutes.SetupRouter(
		router,
		deps.AuthController,
		deps.CollegeController,
		deps.EventController,
		deps.ForumController,
		deps.ResourceController,
		deps.NotificationController,
		deps.AuthMiddleware,
		authRateLimiter,
	)
	appRoutes.SetupSwagger(router)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	lgr.Info().Msg("Router configured")
	return router
}

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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/keiji0711/final-final/internal/app/controllers"
	appMigrations "github.com/keiji0711/final-final/internal/app/migrations"
	appRepos "github.com/keiji0711/final-final/internal/app/repositories"
	appRoutes "github.com/keiji0711/final-final/internal/app/routes"
	appServices "github.com/keiji0711/final-final/internal/app/services"
	"github.com/keiji0711/final-final/internal/config"
	"github.com/keiji0711/final-final/internal/db"
	appMiddleware "github.com/keiji0711/final-final/internal/middleware"
	pkgAuth "github.com/keiji0711/final-final/internal/pkg/auth"
	"github.com/keiji0711/final-final/internal/pkg/helpers"
	"github.com/keiji0711/final-final/internal/pkg/logger"
	"github.com/keiji0711/final-final/internal/pkg/websocket"
	"github.com/keiji0711/final-final/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	StudentService       *appServices.StudentService
	EventService         *appServices.EventService
	AttendanceService    *appServices.AttendanceService
	DashboardService     *appServices.DashboardService
	ExportService        *appServices.ExportService
	AuthController       *appControllers.AuthController
	StudentController    *appControllers.StudentController
	EventController      *appControllers.EventController
	AttendanceController *appControllers.AttendanceController
	DashboardController  *appControllers.DashboardController
	WSHub                *websocket.Hub
	WSHandler            *websocket.Handler
	AuthMiddleware       *appMiddleware.AuthMiddleware
	ScanLimiter          *appMiddleware.ScanRateLimiter
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	Logger               zerolog.Logger
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
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Seeding is convenience data; startup proceeds without it
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, services, controllers and the
// websocket hub. The hub's broadcast loop is started here.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 8*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.WSHub = websocket.NewHub(lgr)
	go deps.WSHub.Run()
	deps.WSHandler = websocket.NewHandler(deps.WSHub, lgr)

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository)
	deps.EventService = appServices.NewEventService(deps.Repos.EventRepository, deps.Repos.AttendanceRepository)
	deps.AttendanceService = appServices.NewAttendanceService(
		deps.Repos.StudentRepository,
		deps.Repos.EventRepository,
		deps.Repos.AttendanceRepository,
		deps.WSHub,
		lgr,
	)
	deps.DashboardService = appServices.NewDashboardService(
		deps.Repos.StudentRepository,
		deps.Repos.EventRepository,
		deps.Repos.AttendanceRepository,
	)
	deps.ExportService = appServices.NewExportService(
		deps.Repos.EventRepository,
		deps.Repos.AttendanceRepository,
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.ScanLimiter = appMiddleware.NewScanRateLimiter(cfg.Scan.RateLimitBurst, cfg.Scan.RateLimitPerMinute)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.EventController = appControllers.NewEventController(deps.EventService, deps.ExportService)
	deps.AttendanceController = appControllers.NewAttendanceController(deps.AttendanceService)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger("/health", "/metrics"))
	router.Use(appMiddleware.Metrics())

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.EventController,
		deps.AttendanceController,
		deps.DashboardController,
		deps.WSHandler,
		deps.AuthMiddleware,
		deps.ScanLimiter,
	)

	return router
}

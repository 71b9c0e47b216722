package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yigit/eduverse/internal/app/analytics"
	appAuth "github.com/yigit/eduverse/internal/app/auth"
	appControllers "github.com/yigit/eduverse/internal/app/controllers"
	appMigrations "github.com/yigit/eduverse/internal/app/migrations"
	appRepos "github.com/yigit/eduverse/internal/app/repositories"
	appRoutes "github.com/yigit/eduverse/internal/app/routes"
	appServices "github.com/yigit/eduverse/internal/app/services"
	"github.com/yigit/eduverse/internal/config"
	"github.com/yigit/eduverse/internal/db"
	"github.com/yigit/eduverse/internal/jobs"
	appMiddleware "github.com/yigit/eduverse/internal/middleware"
	pkgAuth "github.com/yigit/eduverse/internal/pkg/auth"
	"github.com/yigit/eduverse/internal/pkg/helpers"
	"github.com/yigit/eduverse/internal/pkg/logger"
	"github.com/yigit/eduverse/internal/seed"
)

// DefaultConfigPath is where the server looks for its YAML configuration
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	ReportService    appServices.ReportService
	ReportController *appControllers.ReportController
	ReportPolicy     *appAuth.ReportPolicy
	AuthMiddleware   *appMiddleware.AuthMiddleware
	RateLimiter      *appMiddleware.RateLimiter
	JWTService       *pkgAuth.JWTService
	Digest           *jobs.Digest
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL, applies pending migrations and seeds
// the demo data when enabled.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	if err := RunMigrations(ctx, cfg, database, lgr); err != nil {
		database.Close()
		return nil, err
	}

	if cfg.Seed.Enabled {
		store := seed.NewRepositoryStore(appRepos.NewRepositories(database.Pool))
		if _, err := seed.CreateDefaultData(ctx, store, lgr); err != nil {
			// Reports still work on whatever is already stored
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}
	return database, nil
}

// RunMigrations applies the SQL files of the configured migrations directory
func RunMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	dir := cfg.Database.MigrationsDir
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		lgr.Error().Str("path", dir).Msg("Migrations directory not found")
		return fmt.Errorf("migrations directory not found at %s: %w", dir, err)
	}

	lgr.Info().Str("path", dir).Msg("Running database migrations...")
	applied, err := appMigrations.NewMigrator(database, lgr).MigrateFromDirectory(ctx, dir)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations complete")
	return nil
}

// NewJWTService builds the token service from configuration
func NewJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})
}

// NewReportService builds the report service over source using the report settings
func NewReportService(cfg *config.Config, source analytics.FactSource, lgr zerolog.Logger) appServices.ReportService {
	return appServices.NewReportService(source, appServices.ReportOptions{
		DefaultLimit:  cfg.Reports.DefaultLimit,
		MaxLimit:      cfg.Reports.MaxLimit,
		WeightsPreset: cfg.Reports.ContributorWeights,
		QueryTimeout:  helpers.ParseDuration(cfg.Reports.QueryTimeout, 15*time.Second),
	}, lgr)
}

// BuildDependencies initializes services, middleware and controllers over source.
func BuildDependencies(cfg *config.Config, source analytics.FactSource, lgr zerolog.Logger) (*Dependencies, error) {
	if _, err := analytics.WeightsPreset(cfg.Reports.ContributorWeights); err != nil {
		return nil, fmt.Errorf("invalid contributor weights: %w", err)
	}

	deps := &Dependencies{Logger: lgr}
	deps.JWTService = NewJWTService(cfg)
	deps.ReportService = NewReportService(cfg, source, lgr)
	deps.ReportPolicy = appAuth.NewReportPolicy()

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, cfg.JWT.Required)
	deps.RateLimiter = appMiddleware.NewRateLimiter(cfg.Reports.RateLimitRPS, cfg.Reports.RateLimitBurst)

	deps.ReportController = appControllers.NewReportController(deps.ReportService, deps.ReportPolicy)
	deps.Digest = jobs.NewDigest(deps.ReportService, cfg.Reports.DigestSize, lgr)

	if !cfg.JWT.Required {
		lgr.Warn().Msg("JWT authentication is optional, anonymous requests are served")
	}
	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if cfg.Server.Mode == "test" {
		gin.SetMode(gin.TestMode)
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	return appRoutes.NewEngine(lgr, deps.ReportController, deps.AuthMiddleware, deps.RateLimiter)
}

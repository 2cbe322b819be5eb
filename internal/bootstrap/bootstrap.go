package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/coursescope/coursescope/internal/app/controllers"
	appRepos "github.com/coursescope/coursescope/internal/app/repositories"
	appRoutes "github.com/coursescope/coursescope/internal/app/routes"
	appServices "github.com/coursescope/coursescope/internal/app/services"
	"github.com/coursescope/coursescope/internal/bulletin"
	"github.com/coursescope/coursescope/internal/config"
	"github.com/coursescope/coursescope/internal/db"
	appMiddleware "github.com/coursescope/coursescope/internal/middleware"
	"github.com/coursescope/coursescope/internal/pkg/logger"
	"github.com/coursescope/coursescope/internal/pkg/snapshots"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	IngestService     *appServices.IngestService
	CatalogService    *appServices.CatalogService
	DetailService     *appServices.DetailService
	IngestController  *appControllers.IngestController
	CatalogController *appControllers.CatalogController
	DetailController  *appControllers.DetailController
	Repos             *appRepos.Repositories
	BulletinClient    *bulletin.Client
	Snapshots         *snapshots.Writer
	Database          *db.PostgresDB
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}
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

	lgr := log.Logger // Get the configured global logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and ensures the schema.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := appRepos.EnsureSchema(ctx, database.Pool); err != nil {
		lgr.Error().Err(err).Msg("Failed to ensure database schema")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database schema ensured.")

	return database, nil
}

// BuildDependencies initializes the snapshot writer, the bulletin client,
// repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Database: database,
		Logger:   lgr,
	}

	var err error
	deps.Snapshots, err = snapshots.NewWriter(cfg.Bulletin.SnapshotDir)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize snapshot writer")
		return nil, err
	}

	deps.BulletinClient = bulletin.NewClient(cfg, deps.Snapshots)
	deps.Repos = appRepos.NewRepositories(database)

	deps.IngestService = appServices.NewIngestService(deps.BulletinClient, deps.Repos.CatalogRepository, cfg)
	deps.CatalogService = appServices.NewCatalogService(deps.Repos.CatalogRepository, cfg)
	deps.DetailService = appServices.NewDetailService(deps.BulletinClient, deps.Repos.DetailCacheRepository, cfg)

	deps.IngestController = appControllers.NewIngestController(deps.IngestService)
	deps.CatalogController = appControllers.NewCatalogController(deps.CatalogService)
	deps.DetailController = appControllers.NewDetailController(deps.DetailService)

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
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(appMiddleware.NewCORS(cfg))

	// Profiling endpoints stay off in production
	if strings.ToLower(cfg.Server.Mode) != "production" {
		pprof.Register(router)
	}

	// Setup Swagger
	appRoutes.SetupSwagger(router)

	// Setup API routes using the dependencies
	appRoutes.SetupRouter(router,
		deps.IngestController,
		deps.CatalogController,
		deps.DetailController,
		deps.Database,
	)

	return router
}

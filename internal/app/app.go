package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/glovework/keeper-stats/internal/config"
	"github.com/glovework/keeper-stats/internal/domain/analysisjob"
	"github.com/glovework/keeper-stats/internal/domain/leaguetable"
	"github.com/glovework/keeper-stats/internal/domain/matchlog"
	"github.com/glovework/keeper-stats/internal/domain/performance"
	"github.com/glovework/keeper-stats/internal/domain/settings"
	"github.com/glovework/keeper-stats/internal/domain/videoanalysis"
	"github.com/glovework/keeper-stats/internal/infrastructure/blobstore"
	"github.com/glovework/keeper-stats/internal/infrastructure/repository/cache"
	"github.com/glovework/keeper-stats/internal/infrastructure/repository/memory"
	"github.com/glovework/keeper-stats/internal/infrastructure/repository/postgres"
	"github.com/glovework/keeper-stats/internal/infrastructure/vision"
	"github.com/glovework/keeper-stats/internal/interfaces/httpapi"
	basecache "github.com/glovework/keeper-stats/internal/platform/cache"
	idgen "github.com/glovework/keeper-stats/internal/platform/id"
	"github.com/glovework/keeper-stats/internal/platform/logging"
	"github.com/glovework/keeper-stats/internal/platform/resilience"
	"github.com/glovework/keeper-stats/internal/usecase"
	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

// App owns the wired HTTP server plus the background pieces that need an
// ordered shutdown: the ingestion worker pool drains before the DB closes.
type App struct {
	Server *http.Server

	db        *sqlx.DB
	ingestion *usecase.IngestionService
	logger    *logging.Logger
}

type repositories struct {
	matchLogs   matchlog.Repository
	analyses    videoanalysis.Repository
	jobs        analysisjob.Repository
	leagueTable leaguetable.Repository
	performance performance.Repository
	settings    settings.Repository
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg, logger)
	if err != nil {
		return nil, err
	}

	repos := buildRepositories(cfg, db, logger)

	performanceSvc := usecase.NewPerformanceService(
		repos.matchLogs,
		repos.settings,
		repos.performance,
		repos.leagueTable,
		logger,
	)
	recomputer := usecase.RecomputerFor(performanceSvc)

	matchLogSvc := usecase.NewMatchLogService(repos.matchLogs, idgen.NewRandomGenerator(), recomputer)
	leagueSvc := usecase.NewLeagueTableService(repos.leagueTable, recomputer)
	settingsSvc := usecase.NewSettingsService(repos.settings, recomputer)
	videoSvc := usecase.NewVideoAnalysisService(repos.analyses, nil)

	blobClient := blobstore.NewClient(blobstore.ClientConfig{
		BaseURL:       cfg.BlobstoreBaseURL,
		PublicBaseURL: cfg.BlobstorePublicBaseURL,
		Timeout:       cfg.BlobstoreTimeout,
		Logger:        logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.BlobstoreCircuitEnabled,
			FailureThreshold: cfg.BlobstoreCircuitFailureCount,
			OpenTimeout:      cfg.BlobstoreCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.BlobstoreCircuitHalfOpenMaxReq,
		},
	})

	visionClient := vision.NewClient(vision.ClientConfig{
		BaseURL:    cfg.VisionBaseURL,
		APIKey:     cfg.VisionAPIKey,
		Model:      cfg.VisionModel,
		Timeout:    cfg.VisionTimeout,
		MaxRetries: cfg.VisionMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.VisionCircuitEnabled,
			FailureThreshold: cfg.VisionCircuitFailureCount,
			OpenTimeout:      cfg.VisionCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.VisionCircuitHalfOpenMaxReq,
		},
	})

	ingestionSvc, err := usecase.NewIngestionService(
		blobClient,
		visionClient,
		repos.jobs,
		repos.analyses,
		recomputer,
		idgen.NewRandomGenerator(),
		usecase.IngestionConfig{
			MaxWorkers:  cfg.JobMaxWorkers,
			MaxLifetime: cfg.JobMaxLifetime,
		},
		logger,
	)
	if err != nil {
		closeDB(db, logger)
		return nil, fmt.Errorf("build ingestion service: %w", err)
	}

	handler := httpapi.NewHandler(
		ingestionSvc,
		videoSvc,
		matchLogSvc,
		performanceSvc,
		leagueSvc,
		settingsSvc,
		cfg.UploadMaxBytes,
		logger,
	)
	router := httpapi.NewRouter(handler, cfg.APIToken, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		closeDB(db, logger)
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:    server,
		db:        db,
		ingestion: ingestionSvc,
		logger:    logger,
	}, nil
}

// Shutdown stops the HTTP listener, drains in-flight analysis jobs, and
// closes the DB pool, in that order.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error

	if err := a.Server.Shutdown(ctx); err != nil {
		firstErr = fmt.Errorf("shutdown http server: %w", err)
	}

	if err := a.ingestion.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("drain ingestion jobs: %w", err)
	}

	closeDB(a.db, a.logger)

	return firstErr
}

// openDB connects when DB_URL is set; otherwise the app runs on the seeded
// in-memory repositories, which is the local-dev and test default.
func openDB(cfg config.Config, logger *logging.Logger) (*sqlx.DB, error) {
	if cfg.DBURL == "" {
		logger.Info("db disabled, using in-memory repositories", "reason", "DB_URL empty")
		return nil, nil
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	logger.Info("db connected", "database", dbNameFromURL(cfg.DBURL))

	return db, nil
}

func buildRepositories(cfg config.Config, db *sqlx.DB, logger *logging.Logger) repositories {
	repos := repositories{
		// Jobs are transient ingestion state and never survive a restart,
		// so they stay in memory even when Postgres is configured.
		jobs: memory.NewJobRepository(),
	}

	if db != nil {
		repos.matchLogs = postgres.NewMatchLogRepository(db)
		repos.analyses = postgres.NewVideoAnalysisRepository(db)
		repos.leagueTable = postgres.NewLeagueTableRepository(db)
		repos.performance = postgres.NewPerformanceRepository(db)
		repos.settings = postgres.NewSettingsRepository(db)
	} else {
		seededSettings := memory.SeedSettings()
		repos.matchLogs = memory.NewMatchLogRepository(memory.SeedMatchLogs())
		repos.analyses = memory.NewVideoAnalysisRepository(nil)
		repos.leagueTable = memory.NewLeagueTableRepository(memory.SeedLeagueTable())
		repos.performance = memory.NewPerformanceRepository()
		repos.settings = memory.NewSettingsRepository(&seededSettings)
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.leagueTable = cache.NewLeagueTableRepository(repos.leagueTable, store)
		repos.performance = cache.NewPerformanceRepository(repos.performance, store)
		logger.Info("read cache enabled", "ttl", cfg.CacheTTL.String())
	}

	return repos
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("close db", "error", err)
	}
}

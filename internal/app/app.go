package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	_ "github.com/lib/pq"

	"github.com/ChocooDEV/aurory-elite-hunter/external/aurory"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/config"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/badge"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/elite"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/hunter"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/domain/match"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/infrastructure/repository/memory"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/infrastructure/repository/postgres"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/interfaces/httpapi"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/platform/logging"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/platform/resilience"
	"github.com/ChocooDEV/aurory-elite-hunter/internal/usecase"
)

// App bundles the wired HTTP server and the job services the scheduler
// drives between requests.
type App struct {
	Server        *http.Server
	UpdateService *usecase.LeaderboardUpdateService
	BadgeService  *usecase.BadgeService
	Scheduler     *Scheduler

	db *sqlx.DB
}

type repositories struct {
	elites     elite.Repository
	hunters    hunter.Repository
	matches    match.Repository
	winRecords badge.WinRecordRepository
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger, appLogger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if appLogger == nil {
		appLogger = logging.Default()
	}

	repos, db, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	matchClient := aurory.NewClient(aurory.ClientConfig{
		BaseURL:    cfg.AuroryBaseURL,
		EventTag:   cfg.AuroryEventTag,
		Descending: cfg.AuroryDescending,
		PageDelay:  cfg.AuroryPageDelay,
		Timeout:    cfg.AuroryTimeout,
		MaxRetries: cfg.AuroryMaxRetries,
		Logger:     appLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.AuroryCircuitEnabled,
			FailureThreshold: cfg.AuroryCircuitFailureCount,
			OpenTimeout:      cfg.AuroryCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AuroryCircuitHalfOpenMax,
		},
	})
	profileClient := aurory.NewProfileClient(aurory.ProfileClientConfig{
		BaseURL:       cfg.AuroryBaseURL,
		DefaultAvatar: cfg.DefaultAvatarURL,
		Timeout:       cfg.ProfileTimeout,
		Logger:        appLogger,
	})

	badgeService := usecase.NewBadgeService(repos.hunters, repos.winRecords, cfg.BadgeWorkers, appLogger)
	updateService := usecase.NewLeaderboardUpdateService(
		repos.elites,
		repos.hunters,
		repos.matches,
		matchClient,
		profileClient,
		badgeService,
		usecase.UpdateServiceConfig{BonusWindows: cfg.BonusWindows},
		appLogger,
	)
	leaderboardService := usecase.NewLeaderboardService(repos.elites, repos.hunters)
	adminService := usecase.NewAdminService(repos.elites, cfg.AdminPassword, appLogger)

	handler := httpapi.NewHandler(leaderboardService, adminService, updateService, badgeService, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	scheduler := NewScheduler(updateService, badgeService, SchedulerConfig{
		Interval:   cfg.JobUpdateInterval,
		WindowLead: cfg.JobWindowLead,
		Windows:    cfg.BonusWindows,
	}, appLogger)

	return &App{
		Server:        server,
		UpdateService: updateService,
		BadgeService:  badgeService,
		Scheduler:     scheduler,
		db:            db,
	}, nil
}

// Close releases the database pool. Safe to call in memory mode.
func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// buildRepositories picks the storage backend: a traced Postgres pool when
// DB_URL is set, otherwise seeded in-memory stores for local runs.
func buildRepositories(ctx context.Context, cfg config.Config, logger *slog.Logger) (repositories, *sqlx.DB, error) {
	if cfg.DBURL == "" {
		logger.Info("storage mode", "backend", "memory")

		elites := memory.NewEliteRepository()
		hunters := memory.NewHunterRepository()
		if err := memory.Seed(ctx, elites, hunters); err != nil {
			return repositories{}, nil, fmt.Errorf("seed memory store: %w", err)
		}

		return repositories{
			elites:     elites,
			hunters:    hunters,
			matches:    memory.NewMatchRepository(),
			winRecords: memory.NewWinRecordRepository(),
		}, nil, nil
	}

	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return repositories{}, nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return repositories{}, nil, fmt.Errorf("ping database: %w", err)
	}

	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		_ = db.Close()
		return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
	}
	logger.Info("storage mode", "backend", "postgres", "db", dbNameFromURL(cfg.DBURL))

	return repositories{
		elites:     postgres.NewEliteRepository(db),
		hunters:    postgres.NewHunterRepository(db),
		matches:    postgres.NewMatchRepository(db),
		winRecords: postgres.NewWinRecordRepository(db),
	}, db, nil
}

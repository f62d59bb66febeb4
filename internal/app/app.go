package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/gridironhq/keeper-league/external/espn"
	"github.com/gridironhq/keeper-league/external/scoreboard"
	"github.com/gridironhq/keeper-league/external/sleeper"
	"github.com/gridironhq/keeper-league/internal/config"
	"github.com/gridironhq/keeper-league/internal/infrastructure/repository/postgres"
	"github.com/gridironhq/keeper-league/internal/interfaces/httpapi"
	"github.com/gridironhq/keeper-league/internal/platform/logging"
	"github.com/gridironhq/keeper-league/internal/platform/resilience"
	"github.com/gridironhq/keeper-league/internal/usecase"
)

// App holds the wired HTTP server plus the resources it owns. Close after
// the server has shut down.
type App struct {
	Server    *http.Server
	DB        *sqlx.DB
	refresher *httpapi.LiveRefresher
	logger    *logging.Logger
}

func New(cfg config.Config, slogger *slog.Logger, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	managerRepo := postgres.NewManagerRepository(db)
	sleeperIDRepo := postgres.NewSleeperIDRepository(db)
	seasonRepo := postgres.NewSeasonRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)
	keeperRepo := postgres.NewKeeperRepository(db)
	tradeRepo := postgres.NewTradeRepository(db)

	sleeperClient := sleeper.NewClient(sleeper.ClientConfig{
		BaseURL:    cfg.SleeperBaseURL,
		Timeout:    cfg.SleeperTimeout,
		MaxRetries: cfg.SleeperMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SleeperCircuitEnabled,
			FailureThreshold: cfg.SleeperCircuitFailureCount,
			OpenTimeout:      cfg.SleeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SleeperCircuitHalfOpenMaxReq,
		},
	})

	var boxScores usecase.BoxScoreSource
	if cfg.ESPNEnabled {
		boxScores = espn.NewClient(espn.ClientConfig{
			BaseURL:    cfg.ESPNBaseURL,
			Timeout:    cfg.ESPNTimeout,
			MaxRetries: cfg.ESPNMaxRetries,
			CacheTTL:   cfg.ESPNCacheTTL,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ESPNCircuitEnabled,
				FailureThreshold: cfg.ESPNCircuitFailureCount,
				OpenTimeout:      cfg.ESPNCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ESPNCircuitHalfOpenMaxReq,
			},
		})
	}

	var sb usecase.ScoreboardSource
	if cfg.GameStatusEnabled {
		sb = scoreboard.NewClient(scoreboard.ClientConfig{
			BaseURL:      cfg.GameStatusBaseURL,
			Path:         cfg.GameStatusPath,
			APIKey:       cfg.GameStatusAPIKey,
			APIKeyParam:  cfg.GameStatusAPIKeyParam,
			APIKeyHeader: cfg.GameStatusAPIKeyHeader,
			ExtraHeaders: cfg.GameStatusExtraHeaders,
			ExtraParams:  cfg.GameStatusExtraParams,
			Timeout:      cfg.GameStatusTimeout,
			MaxRetries:   cfg.GameStatusMaxRetries,
			CacheTTL:     cfg.GameStatusCacheTTL,
			Logger:       logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.GameStatusCircuitEnabled,
				FailureThreshold: cfg.GameStatusCircuitFailureCount,
				OpenTimeout:      cfg.GameStatusCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.GameStatusCircuitHalfOpenMaxRq,
			},
		})
	}

	liveHub := httpapi.NewLiveHub(cfg.CORSAllowedOrigins, logger)

	managerSvc := usecase.NewManagerService(managerRepo, sleeperIDRepo, logger)
	seasonSvc := usecase.NewSeasonService(seasonRepo, settingsRepo, managerRepo, logger)
	keeperSvc := usecase.NewKeeperService(keeperRepo, settingsRepo, sleeperClient, liveHub, logger)
	tradeSvc := usecase.NewTradeService(tradeRepo, logger)
	matchupSvc := usecase.NewMatchupService(sleeperClient, boxScores, sb, logger, nil)
	syncSvc := usecase.NewSyncService(sleeperClient, managerRepo, sleeperIDRepo, seasonRepo, settingsRepo, logger, nil)
	syncSvc.SetWorkers(cfg.SyncWorkerCount)

	handler := httpapi.NewHandler(managerSvc, seasonSvc, keeperSvc, tradeSvc, matchupSvc, syncSvc, liveHub, logger)
	router := httpapi.NewRouter(handler, slogger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	var refresher *httpapi.LiveRefresher
	if cfg.LiveRefreshEnabled {
		refresher = httpapi.NewLiveRefresher(liveHub, matchupSvc, seasonSvc, managerSvc, cfg.LiveRefreshInterval, nil, logger)
	}

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &App{
		Server:    server,
		DB:        db,
		refresher: refresher,
		logger:    logger,
	}, nil
}

// StartBackground launches the live matchup refresher when it is enabled.
func (a *App) StartBackground(ctx context.Context) {
	if a.refresher == nil {
		return
	}
	go a.refresher.Run(ctx)
}

func (a *App) Close() error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return db, nil
}

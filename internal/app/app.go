package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/prediction-league/internal/config"
	"github.com/riskibarqy/prediction-league/internal/domain/fixture"
	"github.com/riskibarqy/prediction-league/internal/domain/prediction"
	"github.com/riskibarqy/prediction-league/internal/infrastructure/account/anubis"
	cacherepo "github.com/riskibarqy/prediction-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/prediction-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/prediction-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/prediction-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/prediction-league/internal/observability"
	basecache "github.com/riskibarqy/prediction-league/internal/platform/cache"
	idgen "github.com/riskibarqy/prediction-league/internal/platform/id"
	"github.com/riskibarqy/prediction-league/internal/platform/logging"
	"github.com/riskibarqy/prediction-league/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const (
	maxOpenDBConns    = 20
	maxIdleDBConns    = 10
	dbConnMaxLifetime = 30 * time.Minute
)

type repositories struct {
	fixtures    fixture.Repository
	predictions prediction.Repository
	close       func() error
}

// NewHTTPServer builds the API server. The returned cleanup releases storage handles and must
// be called after the server has shut down.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	fixtureRepo := repos.fixtures
	if cfg.CacheEnabled {
		fixtureRepo = cacherepo.NewFixtureRepository(fixtureRepo, basecache.NewStore(cfg.CacheTTL))
		logger.Info("fixture cache enabled", "ttl", cfg.CacheTTL.String())
	}

	rules := cfg.ScoringRules()
	fixtureSvc := usecase.NewFixtureService(fixtureRepo, rules)
	predictionSvc := usecase.NewPredictionService(fixtureRepo, repos.predictions, idgen.NewRandomGenerator(), rules, cfg.PredictionLockBuffer)
	statsSvc := usecase.NewStatsService(fixtureRepo, repos.predictions, rules)

	var metricsHandler http.Handler
	if cfg.MetricsEnabled {
		metrics := observability.NewMetrics()
		predictionSvc.SetRecorder(metrics)
		statsSvc.SetRecorder(metrics)
		metricsHandler = metrics.Handler()
	}

	anubisClient := anubis.NewClient(
		&http.Client{
			Timeout:   cfg.AnubisTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cfg.AnubisBaseURL,
		cfg.AnubisIntrospectURL,
		cfg.AnubisAdminKey,
		anubis.CircuitBreakerConfig{
			Enabled:          cfg.AnubisCircuitEnabled,
			FailureThreshold: cfg.AnubisCircuitFailureCount,
			OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(fixtureSvc, predictionSvc, statsSvc, logger)
	router := httpapi.NewRouter(handler, anubisClient, metricsHandler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
	}

	logger.Info("http server configured",
		"storage_driver", cfg.StorageDriver,
		"metrics_enabled", cfg.MetricsEnabled,
		"required_per_week", rules.RequiredPerWeek,
		"quota_from_fixtures", rules.DeriveQuotaFromFixtures,
		"lock_buffer", cfg.PredictionLockBuffer.String(),
	)

	return server, repos.close, nil
}

func newRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		fixtures := memory.SeedFixtures(time.Now())
		logger.Info("using memory storage", "seeded_fixtures", len(fixtures))
		return repositories{
			fixtures:    memory.NewFixtureRepository(fixtures),
			predictions: memory.NewPredictionRepository(),
			close:       func() error { return nil },
		}, nil
	case config.StoragePostgres:
		db, err := openDB(ctx, cfg, logger)
		if err != nil {
			return repositories{}, err
		}
		if cfg.DBBootstrapSeed {
			inserted, err := postgres.BootstrapSeed(ctx, db, time.Now())
			if err != nil {
				return repositories{}, errors.Join(fmt.Errorf("bootstrap seed: %w", err), db.Close())
			}
			logger.Info("bootstrap seed finished", "inserted_fixtures", inserted)
		}
		logger.Info("using postgres storage", "db_name", dbNameFromURL(cfg.DBURL))
		return repositories{
			fixtures:    postgres.NewFixtureRepository(db),
			predictions: postgres.NewPredictionRepository(db),
			close:       db.Close,
		}, nil
	default:
		return repositories{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openDB(ctx context.Context, cfg config.Config, logger *logging.Logger) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(maxOpenDBConns)
	db.SetMaxIdleConns(maxIdleDBConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)
	logger.Debug("postgres pool configured",
		"max_open", maxOpenDBConns,
		"max_idle", maxIdleDBConns,
		"conn_max_lifetime", dbConnMaxLifetime.String(),
	)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, errors.Join(fmt.Errorf("ping postgres: %w", err), db.Close())
	}

	return db, nil
}

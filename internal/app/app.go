// Package app wires the repair use case and its adapters from configuration.
// Both the CLI and the admin server build on it.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	postgresRepo "github.com/iho/ledgerfix/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/ledgerfix/internal/adapter/repository/redis"
	"github.com/iho/ledgerfix/internal/infrastructure/config"
	"github.com/iho/ledgerfix/internal/infrastructure/metrics"
	"github.com/iho/ledgerfix/internal/infrastructure/policy"
	"github.com/iho/ledgerfix/internal/infrastructure/postgres"
	"github.com/iho/ledgerfix/internal/infrastructure/redis"
	"github.com/iho/ledgerfix/internal/usecase"
)

// App holds the live connections and the repair use case built on them.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	Pool    *pgxpool.Pool
	Redis   *goredis.Client // nil when REDIS_URL is empty
	Audit   *postgresRepo.AuditRepository
	Metrics *metrics.Metrics
	Repair  *usecase.RepairUseCase
	// RepairConfig is the resolved configuration Repair was built with.
	RepairConfig usecase.RepairConfig
}

// Options tune New.
type Options struct {
	// PolicyFile overrides REPAIR_POLICY_FILE when set.
	PolicyFile string
	// Registerer receives the repair metrics; nil uses a private registry.
	Registerer prometheus.Registerer
}

// RepairConfig resolves the repair settings from cfg. policyFile, when non-empty,
// takes precedence over REPAIR_POLICY_FILE.
func RepairConfig(cfg *config.Config, policyFile string) (usecase.RepairConfig, error) {
	strategy, err := cfg.ConflictStrategy()
	if err != nil {
		return usecase.RepairConfig{}, err
	}
	journalTypes, err := cfg.JournalTypes()
	if err != nil {
		return usecase.RepairConfig{}, err
	}

	if policyFile == "" {
		policyFile = cfg.RepairPolicyFile
	}
	p, err := policy.Load(policyFile, strategy)
	if err != nil {
		return usecase.RepairConfig{}, err
	}

	return usecase.RepairConfig{
		Policy:       p,
		JournalTypes: journalTypes,
		Timeout:      cfg.RepairTimeout,
		LockTTL:      cfg.LockTTL,
		ResultTTL:    cfg.ResultTTL,
	}, nil
}

// New connects to PostgreSQL and, when configured, Redis, and builds the repair use case.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger, opts Options) (*App, error) {
	repairCfg, err := RepairConfig(cfg, opts.PolicyFile)
	if err != nil {
		return nil, err
	}

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	logger.Info().Msg("connected to postgres")

	a := &App{
		Config:       cfg,
		Logger:       logger,
		Pool:         pool,
		Audit:        postgresRepo.NewAuditRepository(pool),
		RepairConfig: repairCfg,
	}

	if cfg.RedisURL != "" {
		a.Redis, err = redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		logger.Info().Msg("connected to redis")
	} else {
		logger.Warn().Msg("REDIS_URL is empty: running without the cross-process run lock")
	}

	reg := opts.Registerer
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	a.Metrics = metrics.New(reg)

	deps := usecase.RepairDeps{
		TxManager: postgresRepo.NewTxManager(pool),
		Ledger:    postgresRepo.NewLedgerRepository(),
		Catalog:   postgresRepo.NewCatalogRepository(),
		Refs:      postgresRepo.NewReferenceRepository(),
		AuditRepo: a.Audit,
		Retrier:   postgresRepo.NewRetrier(logger),
		IDGen:     postgresRepo.NewRunIDGenerator(),
		Metrics:   a.Metrics,
		Logger:    logger.With().Str("component", "repair").Logger(),
		Config:    repairCfg,
	}
	if a.Redis != nil {
		deps.Lock = redisRepo.NewRunLock(a.Redis)
		deps.Results = redisRepo.NewResultCache(a.Redis)
	}
	a.Repair = usecase.NewRepairUseCase(deps)

	return a, nil
}

// Close releases the connections.
func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	a.Pool.Close()
}

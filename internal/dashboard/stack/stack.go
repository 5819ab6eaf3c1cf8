// Package stack opens the stores and aggregation engine shared by the
// dashboard binaries.
package stack

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/aggregator"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/repository/postgres"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/metrics"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Config is embedded into each binary's flag struct.
type Config struct {
	PostgresDSN      string        `long:"postgres-dsn" env:"POSTGRES_DSN" description:"PostgreSQL DSN of the dashboard store"`
	PostgresMaxConns int32         `long:"postgres-max-conns" env:"POSTGRES_MAX_CONNS" description:"pgx pool size, 0 keeps the driver default"`
	ClickhouseDSN    string        `long:"clickhouse-dsn" env:"CLICKHOUSE_DSN" description:"ClickHouse DSN of the raw chain store"`
	Coin             model.Coin    `long:"coin" env:"COIN" description:"coin name" default:"BTC"`
	Network          model.Network `long:"network" env:"NETWORK" description:"network name" default:"mainnet"`
}

// Validate reports missing connection settings.
func (c Config) Validate() error {
	if c.PostgresDSN == "" {
		return errors.New("postgres dsn is required")
	}
	if c.ClickhouseDSN == "" {
		return errors.New("clickhouse dsn is required")
	}
	if c.Coin == "" || c.Network == "" {
		return errors.New("coin and network are required")
	}
	return nil
}

// Stack holds the opened stores and the engine reading from them.
type Stack struct {
	Stats  *postgres.Repository
	Raw    *clickhouse.Repository
	Engine *aggregator.Engine

	pool *pgxpool.Pool
}

// Open connects both stores and builds an engine with a cold cache.
func Open(ctx context.Context, cfg Config, logger *zap.Logger, opts ...aggregator.Option) (*Stack, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := postgres.NewPool(ctx, cfg.PostgresDSN, cfg.PostgresMaxConns)
	if err != nil {
		return nil, err
	}
	stats, err := postgres.NewRepository(pool, cfg.Coin, cfg.Network, metrics.NewPostgresRepository())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init postgres repository: %w", err)
	}
	raw, err := clickhouse.NewRepository(cfg.ClickhouseDSN, cfg.Coin, cfg.Network, metrics.NewClickhouseRepository())
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init clickhouse repository: %w", err)
	}

	engine, err := aggregator.New(
		stats, stats, raw, raw, raw, nil,
		metrics.NewAggregator(cfg.Coin, cfg.Network),
		logger,
		opts...,
	)
	if err != nil {
		_ = raw.Close()
		pool.Close()
		return nil, fmt.Errorf("init aggregator: %w", err)
	}

	return &Stack{Stats: stats, Raw: raw, Engine: engine, pool: pool}, nil
}

// Close releases both connections.
func (s *Stack) Close() {
	_ = s.Raw.Close()
	s.pool.Close()
}

// Package aggregator turns raw block facts into per-block, per-day and rolling
// dashboard statistics.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/clock"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/rolling"
	"go.uber.org/zap"
)

// Outcome is the result of incremental processing of one height.
type Outcome int

const (
	// OutcomeProcessed means this call inserted the block stat.
	OutcomeProcessed Outcome = iota
	// OutcomeAlreadyProcessed means the block stat already existed or another writer won the insert.
	OutcomeAlreadyProcessed
	// OutcomeNoData means the raw store has no facts for the height yet.
	OutcomeNoData
)

func (o Outcome) String() string {
	switch o {
	case OutcomeProcessed:
		return "processed"
	case OutcomeAlreadyProcessed:
		return "already_processed"
	case OutcomeNoData:
		return "no_data"
	default:
		return "unknown"
	}
}

// Done reports whether the height can be considered handled by a watermark.
func (o Outcome) Done() bool {
	return o == OutcomeProcessed || o == OutcomeAlreadyProcessed
}

// Engine is the aggregation engine. It is safe for concurrent use; every store
// write is either an idempotent insert or an additive upsert.
type Engine struct {
	logger     *zap.Logger
	metrics    Metrics
	clock      clock.Clock
	blocks     BlockStatStore
	daily      DailyStatStore
	facts      FactSource
	difficulty DifficultySource
	tip        ChainTipSource
	cache      *rolling.Cache
	days       int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock overrides the clock used to pick the dashboard days.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithDashboardDays overrides how many days of daily stats the dashboard returns.
func WithDashboardDays(days int) Option {
	return func(e *Engine) {
		if days > 0 {
			e.days = days
		}
	}
}

// New builds an Engine. The cache must be rebuilt with RebuildCache before
// incremental processing is expected to maintain it.
func New(
	blocks BlockStatStore,
	daily DailyStatStore,
	facts FactSource,
	difficulty DifficultySource,
	tip ChainTipSource,
	cache *rolling.Cache,
	metrics Metrics,
	logger *zap.Logger,
	opts ...Option,
) (*Engine, error) {
	if blocks == nil || daily == nil {
		return nil, errors.New("block and daily stat stores are required")
	}
	if facts == nil || difficulty == nil || tip == nil {
		return nil, errors.New("fact, difficulty and chain tip sources are required")
	}
	if metrics == nil {
		return nil, errors.New("aggregator metrics is required")
	}
	if cache == nil {
		cache = rolling.NewCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := &Engine{
		logger:     logger.Named("engine"),
		metrics:    metrics,
		clock:      clock.System{},
		blocks:     blocks,
		daily:      daily,
		facts:      facts,
		difficulty: difficulty,
		tip:        tip,
		cache:      cache,
		days:       dashboardDays,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Cache exposes the engine owned rolling cache.
func (e *Engine) Cache() *rolling.Cache {
	return e.cache
}

// RebuildCache reloads every rolling window from the block stat store.
func (e *Engine) RebuildCache(ctx context.Context, upto uint64) (err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveOperation(operationRebuildCache, err, started)
	}()

	n, err := e.cache.Rebuild(ctx, e.blocks, upto)
	if err != nil {
		return fmt.Errorf("rebuild rolling cache: %w", err)
	}
	e.logger.Info("rolling cache rebuilt",
		zap.Uint64("upto", upto),
		zap.Int("rows", n),
		zap.Duration("took", time.Since(started)),
	)
	return nil
}

func buildStat(raw model.RawBlock, hash string, blockTime, interval int64, difficulty float64) model.BlockStat {
	if hash == "" {
		hash = raw.Hash
	}
	if blockTime == 0 {
		blockTime = raw.Time
	}
	return model.BlockStat{
		Height:        raw.Height,
		Hash:          hash,
		Time:          blockTime,
		BlockInterval: interval,
		TxCount:       raw.TxCount,
		BlockSize:     raw.Size,
		Fees:          model.CoinAmount(raw.Fees),
		BlockReward:   model.CoinAmount(raw.BlockReward),
		TxValue:       model.CoinAmount(raw.TxValue),
		Difficulty:    difficulty,
	}
}

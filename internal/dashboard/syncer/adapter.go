// Package syncer feeds the aggregation engine from the block sync process and
// drives the backfill and incremental update runs.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/aggregator"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"go.uber.org/zap"
)

// ErrNotInitialized is returned by the Adapter before Initialize succeeded.
var ErrNotInitialized = errors.New("sync adapter is not initialized")

// Adapter owns the last processed height watermark and forwards block and
// reorg notifications to the engine. Calls are serialized.
type Adapter struct {
	mu          sync.Mutex
	logger      *zap.Logger
	engine      Engine
	metrics     Metrics
	initialized bool
	last        uint64
}

func NewAdapter(engine Engine, metrics Metrics, logger *zap.Logger) (*Adapter, error) {
	if engine == nil {
		return nil, errors.New("aggregation engine is required")
	}
	if metrics == nil {
		return nil, errors.New("syncer metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Adapter{
		logger:  logger.Named("adapter"),
		engine:  engine,
		metrics: metrics,
	}, nil
}

// Initialize warms the rolling cache at height and sets the watermark to it.
func (a *Adapter) Initialize(ctx context.Context, height uint64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.engine.RebuildCache(ctx, height); err != nil {
		return fmt.Errorf("initialize at %d: %w", height, err)
	}
	a.initialized = true
	a.last = height
	a.metrics.SetWatermark(height)
	a.logger.Info("dashboard sync initialized", zap.Uint64("height", height))
	return nil
}

// OnNewBlock processes a block above the watermark. Heights at or below the
// watermark are acknowledged without work.
func (a *Adapter) OnNewBlock(ctx context.Context, height uint64, hash string, blockTime int64) (aggregator.Outcome, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return aggregator.OutcomeNoData, ErrNotInitialized
	}
	if height <= a.last {
		return aggregator.OutcomeAlreadyProcessed, nil
	}

	outcome, err := a.engine.ProcessNewBlock(ctx, height, hash, blockTime)
	if err != nil {
		a.logger.Warn("process new block failed", zap.Uint64("height", height), zap.Error(err))
		return outcome, fmt.Errorf("process block %d: %w", height, err)
	}
	if !outcome.Done() {
		a.logger.Debug("block not ready", zap.Uint64("height", height), zap.Stringer("outcome", outcome))
		return outcome, nil
	}

	a.last = height
	a.metrics.SetWatermark(height)
	a.logger.Debug("block processed", zap.Uint64("height", height), zap.Stringer("outcome", outcome))
	return outcome, nil
}

// OnReorg rolls the dashboard back to newTip. The watermark moves only when
// the rollback succeeded.
func (a *Adapter) OnReorg(ctx context.Context, newTip uint64) (model.Rollback, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return model.Rollback{}, ErrNotInitialized
	}

	rb, err := a.engine.HandleReorg(ctx, newTip)
	if err != nil {
		a.logger.Error("reorg rollback failed", zap.Uint64("new_tip", newTip), zap.Error(err))
		return rb, fmt.Errorf("handle reorg to %d: %w", newTip, err)
	}

	var depth uint64
	if a.last > newTip {
		depth = a.last - newTip
	}
	a.last = newTip
	a.metrics.ObserveReorg(depth)
	a.metrics.SetWatermark(newTip)
	a.logger.Info("reorg handled",
		zap.Uint64("new_tip", newTip),
		zap.Uint64("depth", depth),
		zap.Int64("deleted_rows", rb.DeletedRows),
		zap.Strings("affected_days", rb.AffectedDays),
	)
	return rb, nil
}

// IsInitialized reports whether Initialize succeeded.
func (a *Adapter) IsInitialized() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.initialized
}

// LastProcessed returns the watermark.
func (a *Adapter) LastProcessed() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.last
}

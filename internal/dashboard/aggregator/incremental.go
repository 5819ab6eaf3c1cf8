package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"go.uber.org/zap"
)

// ProcessNewBlock aggregates a single height. Repeated calls for the same
// height are safe and report OutcomeAlreadyProcessed.
func (e *Engine) ProcessNewBlock(ctx context.Context, height uint64, hash string, blockTime int64) (outcome Outcome, err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveOperation(operationProcessNewBlock, err, started)
	}()

	existing, err := e.blocks.BlockStat(ctx, height)
	if err != nil {
		return 0, fmt.Errorf("lookup block stat %d: %w", height, err)
	}
	if existing != nil {
		return OutcomeAlreadyProcessed, nil
	}

	raw, err := e.facts.BlockFacts(ctx, height)
	if err != nil {
		return 0, fmt.Errorf("fetch block facts %d: %w", height, err)
	}
	if raw == nil {
		e.logger.Debug("no raw facts for height", zap.Uint64("height", height))
		return OutcomeNoData, nil
	}
	if blockTime == 0 {
		blockTime = raw.Time
	}

	interval, err := e.intervalFromStore(ctx, height, blockTime)
	if err != nil {
		return 0, err
	}

	difficulty, err := e.difficulty.NearestDifficulty(ctx, height)
	if err != nil {
		return 0, fmt.Errorf("nearest difficulty %d: %w", height, err)
	}

	row := buildStat(*raw, hash, blockTime, interval, difficulty)
	inserted, err := e.blocks.ApplyBlockStats(ctx, []model.BlockStat{row})
	if err != nil {
		return 0, fmt.Errorf("apply block stat %d: %w", height, err)
	}
	e.metrics.ObserveInserted(operationProcessNewBlock, len(inserted))
	if len(inserted) == 0 {
		e.logger.Debug("block stat inserted concurrently", zap.Uint64("height", height))
		return OutcomeAlreadyProcessed, nil
	}

	e.cache.Append(inserted...)
	e.logger.Debug("block processed",
		zap.Uint64("height", height),
		zap.Int64("interval", interval),
		zap.Uint64("tx_count", row.TxCount),
	)
	return OutcomeProcessed, nil
}

// intervalFromStore returns the seconds between blockTime and the stored
// predecessor of height, or 0 when there is none.
func (e *Engine) intervalFromStore(ctx context.Context, height uint64, blockTime int64) (int64, error) {
	if height == 0 {
		return 0, nil
	}
	prev, err := e.blocks.BlockStat(ctx, height-1)
	if err != nil {
		return 0, fmt.Errorf("lookup previous block stat %d: %w", height-1, err)
	}
	if prev == nil {
		return 0, nil
	}
	return blockTime - prev.Time, nil
}

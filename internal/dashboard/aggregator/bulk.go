package aggregator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"go.uber.org/zap"
)

// ProcessRange aggregates every height in [start, end] with one grouped read
// and returns the number of newly inserted block stats. Heights that are
// already stored are skipped and never folded into daily stats twice.
func (e *Engine) ProcessRange(ctx context.Context, start, end uint64) (inserted int, err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveOperation(operationProcessRange, err, started)
	}()

	if start > end {
		return 0, fmt.Errorf("invalid range [%d, %d]", start, end)
	}
	logger := e.logger.With(zap.Uint64("start", start), zap.Uint64("end", end))

	phase := time.Now()
	raws, err := e.facts.BlockFactsRange(ctx, start, end)
	if err != nil {
		return 0, fmt.Errorf("fetch block facts [%d, %d]: %w", start, end, err)
	}
	logger.Debug("bench: aggregate", zap.Int("blocks", len(raws)), zap.Duration("took", time.Since(phase)))
	if len(raws) == 0 {
		logger.Info("no raw facts in range")
		return 0, nil
	}
	sort.Slice(raws, func(i, j int) bool { return raws[i].Height < raws[j].Height })

	phase = time.Now()
	resolve, err := e.difficultyResolver(ctx, raws[0].Height, raws[len(raws)-1].Height)
	if err != nil {
		return 0, err
	}
	logger.Debug("bench: difficulty", zap.Duration("took", time.Since(phase)))

	rows := make([]model.BlockStat, 0, len(raws))
	for i, raw := range raws {
		var interval int64
		if i > 0 && raws[i-1].Height+1 == raw.Height {
			interval = raw.Time - raws[i-1].Time
		} else if interval, err = e.intervalFromStore(ctx, raw.Height, raw.Time); err != nil {
			return 0, err
		}
		rows = append(rows, buildStat(raw, raw.Hash, raw.Time, interval, resolve(raw.Height)))
	}

	phase = time.Now()
	applied, err := e.blocks.ApplyBlockStats(ctx, rows)
	if err != nil {
		return 0, fmt.Errorf("apply block stats [%d, %d]: %w", start, end, err)
	}
	logger.Debug("bench: insert",
		zap.Int("rows", len(rows)),
		zap.Int("inserted", len(applied)),
		zap.Duration("took", time.Since(phase)),
	)
	e.metrics.ObserveInserted(operationProcessRange, len(applied))

	e.cache.Append(applied...)
	logger.Info("range processed",
		zap.Int("blocks", len(rows)),
		zap.Int("inserted", len(applied)),
		zap.Int("days", len(model.DailyDeltas(applied))),
		zap.Duration("took", time.Since(started)),
	)
	return len(applied), nil
}

// difficultyResolver fetches the known difficulties for [start, end] once and
// returns a lookup of the latest one at or below a height.
func (e *Engine) difficultyResolver(ctx context.Context, start, end uint64) (func(uint64) float64, error) {
	seed, err := e.difficulty.NearestDifficulty(ctx, start)
	if err != nil {
		return nil, fmt.Errorf("nearest difficulty %d: %w", start, err)
	}
	points, err := e.difficulty.Difficulties(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("fetch difficulties [%d, %d]: %w", start, end, err)
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Height < points[j].Height })

	current := seed
	next := 0
	// heights are resolved in ascending order
	return func(height uint64) float64 {
		for next < len(points) && points[next].Height <= height {
			if points[next].Difficulty > 0 {
				current = points[next].Difficulty
			}
			next++
		}
		return current
	}, nil
}

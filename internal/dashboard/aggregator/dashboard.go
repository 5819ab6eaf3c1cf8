package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/pkg/workerpool"
)

// DashboardData composes the dashboard snapshot. It returns nil without error
// while the raw store has no chain tip.
func (e *Engine) DashboardData(ctx context.Context) (snapshot *model.DashboardSnapshot, err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveOperation(operationDashboardData, err, started)
	}()

	tip, err := e.tip.CurrentTip(ctx)
	if err != nil {
		return nil, fmt.Errorf("current tip: %w", err)
	}
	if tip == nil {
		return nil, nil
	}

	difficulty, err := e.difficulty.NearestDifficulty(ctx, tip.Height)
	if err != nil {
		return nil, fmt.Errorf("nearest difficulty %d: %w", tip.Height, err)
	}

	averages, err := e.rollingAverages(ctx)
	if err != nil {
		return nil, err
	}

	// the window reaches back e.days full days, so today plus e.days dates
	today := e.clock.Now().UTC()
	from := today.AddDate(0, 0, -e.days).Format(model.DateLayout)
	daily, err := e.daily.DailyStatsRange(ctx, from, today.Format(model.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("daily stats since %s: %w", from, err)
	}
	if daily == nil {
		daily = []model.DailyStat{}
	}

	snapshot = &model.DashboardSnapshot{
		Current: model.CurrentChain{
			LatestBlockHeight: tip.Height,
			LatestBlockHash:   tip.Hash,
			Difficulty:        difficulty,
			TotalSupply:       tip.TotalSupply,
			TotalTxCount:      tip.TotalTxCount,
		},
		Rolling: make(map[string]model.RollingAverage, len(averages)),
		Daily:   daily,
	}
	for _, avg := range averages {
		snapshot.Rolling[avg.Key()] = avg
	}
	return snapshot, nil
}

// RollingAverages returns one average per configured window, smallest first.
func (e *Engine) RollingAverages(ctx context.Context) ([]model.RollingAverage, error) {
	return e.rollingAverages(ctx)
}

func (e *Engine) rollingAverages(ctx context.Context) ([]model.RollingAverage, error) {
	if e.cache.Ready() {
		return e.cache.Averages(), nil
	}

	latest, err := e.blocks.LatestBlockStat(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest block stat: %w", err)
	}
	sizes := e.cache.Sizes()
	if latest == nil {
		out := make([]model.RollingAverage, len(sizes))
		for i, size := range sizes {
			out[i] = model.RollingAverage{Window: size}
		}
		return out, nil
	}

	averages, err := workerpool.Map(ctx, rollingWorkerCount, sizes, func(ctx context.Context, size int) (model.RollingAverage, error) {
		return e.blocks.RollingAverage(ctx, latest.Height, size)
	})
	if err != nil {
		return nil, fmt.Errorf("store rolling averages at %d: %w", latest.Height, err)
	}
	return averages, nil
}

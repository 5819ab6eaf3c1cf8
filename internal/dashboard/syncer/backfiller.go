package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// BackfillRequest selects the heights to backfill. Zero Start or End fall back
// to the defaults: the last 30 days (or the whole chain with Full) up to the raw tip.
type BackfillRequest struct {
	Start            uint64
	End              uint64
	Full             bool
	RecomputeDays    bool
	SkipCacheRebuild bool
}

// BackfillReport summarizes a backfill run.
type BackfillReport struct {
	Start      uint64
	End        uint64
	Inserted   int
	Recomputed []string
	Took       time.Duration
}

// Backfiller populates the stat stores for a historical range.
type Backfiller struct {
	logger *zap.Logger
	engine Engine
	blocks BlockStore
	chain  RawChain
	runner *chunkRunner
	span   uint64
}

// BackfillerOption customizes a Backfiller.
type BackfillerOption func(*Backfiller)

// WithBackfillChunkSize sets how many heights go into one bulk call.
func WithBackfillChunkSize(n uint64) BackfillerOption {
	return func(b *Backfiller) {
		if n > 0 {
			b.runner.chunkSize = n
		}
	}
}

// WithBackfillRate limits bulk calls per second. Zero means unlimited.
func WithBackfillRate(perSecond int) BackfillerOption {
	return func(b *Backfiller) {
		if perSecond > 0 {
			b.runner.limiter = ratelimit.New(perSecond)
		}
	}
}

// WithBackfillSpan overrides how many blocks the default range covers.
func WithBackfillSpan(blocks uint64) BackfillerOption {
	return func(b *Backfiller) {
		if blocks > 0 {
			b.span = blocks
		}
	}
}

func NewBackfiller(
	engine Engine,
	blocks BlockStore,
	chain RawChain,
	logger *zap.Logger,
	opts ...BackfillerOption,
) (*Backfiller, error) {
	if engine == nil || blocks == nil || chain == nil {
		return nil, errors.New("engine, block store and raw chain are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("backfiller")

	b := &Backfiller{
		logger: logger,
		engine: engine,
		blocks: blocks,
		chain:  chain,
		span:   defaultBackfillSpan,
		runner: &chunkRunner{
			logger:    logger,
			engine:    engine,
			limiter:   ratelimit.NewUnlimited(),
			chunkSize: defaultChunkSize,
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// Resolve turns a request into a concrete inclusive range. The default start
// is clamped at 1.
func (b *Backfiller) Resolve(ctx context.Context, req BackfillRequest) (start, end uint64, err error) {
	tip, ok, err := b.chain.MaxContiguousProcessedHeight(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("raw tip: %w", err)
	}
	if !ok {
		return 0, 0, ErrNoChainTip
	}

	end = req.End
	if end == 0 {
		end = tip
	}
	start = req.Start
	if start == 0 {
		start = 1
		if !req.Full && tip > b.span {
			start = tip - b.span
		}
	}
	if start > end {
		return 0, 0, fmt.Errorf("invalid range [%d, %d]", start, end)
	}
	if end > tip {
		b.logger.Warn("range ends above the processed raw tip", zap.Uint64("end", end), zap.Uint64("tip", tip))
	}
	return start, end, nil
}

// Backfill processes the requested range chunk by chunk and warms the rolling
// cache at the end. Chunks completed before a failure stay committed.
func (b *Backfiller) Backfill(ctx context.Context, req BackfillRequest) (report BackfillReport, err error) {
	started := time.Now()
	defer func() {
		report.Took = time.Since(started)
	}()

	report.Start, report.End, err = b.Resolve(ctx, req)
	if err != nil {
		return report, err
	}
	b.logger.Info("backfilling dashboard",
		zap.Uint64("start", report.Start),
		zap.Uint64("end", report.End),
		zap.Float64("days", float64(report.End-report.Start+1)/1440),
	)

	report.Inserted, err = b.runner.run(ctx, report.Start, report.End)
	if err != nil {
		return report, err
	}

	if req.RecomputeDays {
		report.Recomputed, err = b.recomputeDays(ctx, report.Start, report.End)
		if err != nil {
			return report, err
		}
	}

	if !req.SkipCacheRebuild {
		if err = b.engine.RebuildCache(ctx, report.End); err != nil {
			return report, fmt.Errorf("rebuild rolling cache: %w", err)
		}
	}

	b.logger.Info("dashboard backfill complete",
		zap.Int("inserted", report.Inserted),
		zap.Int("recomputed_days", len(report.Recomputed)),
		zap.Duration("took", time.Since(started)),
	)
	return report, nil
}

// recomputeDays rebuilds every daily stat touched by the stored block stats in
// [start, end]. The range is scanned chunk by chunk for its time bounds, so
// holes at the edges do not hide days.
func (b *Backfiller) recomputeDays(ctx context.Context, start, end uint64) ([]string, error) {
	var (
		found         bool
		first, latest int64
	)
	for from := start; from <= end; {
		to := from + b.runner.chunkSize - 1
		if to > end || to < from {
			to = end
		}
		stats, err := b.blocks.BlockStatsRange(ctx, from, to)
		if err != nil {
			return nil, fmt.Errorf("load block stats [%d, %d]: %w", from, to, err)
		}
		for _, stat := range stats {
			if !found || stat.Time < first {
				first = stat.Time
			}
			if !found || stat.Time > latest {
				latest = stat.Time
			}
			found = true
		}
		if to == end {
			break
		}
		from = to + 1
	}
	if !found {
		b.logger.Warn("no block stats stored in range, skipping day recomputation",
			zap.Uint64("start", start),
			zap.Uint64("end", end),
		)
		return nil, nil
	}

	dates := datesBetween(first, latest)
	if err := b.blocks.RecomputeDailyStats(ctx, dates); err != nil {
		return nil, fmt.Errorf("recompute daily stats: %w", err)
	}
	b.logger.Info("daily stats recomputed", zap.Strings("dates", dates))
	return dates, nil
}

// datesBetween lists the UTC dates from the day of from to the day of to.
func datesBetween(from, to int64) []string {
	if to < from {
		from, to = to, from
	}
	day := time.Unix(from, 0).UTC().Truncate(24 * time.Hour)
	last := model.DateOf(to)

	var dates []string
	for {
		date := day.Format(model.DateLayout)
		dates = append(dates, date)
		if date == last {
			return dates
		}
		day = day.AddDate(0, 0, 1)
	}
}

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

// ErrNoChainTip is returned when the raw store has no processed blocks yet.
var ErrNoChainTip = errors.New("raw store has no processed blocks, run the block sync first")

// UpdateResult summarizes one incremental update run.
type UpdateResult struct {
	Tip           uint64
	LastProcessed uint64
	Inserted      int
	UpToDate      bool
	Rollback      *model.Rollback
}

// Updater brings the dashboard from its last stored height to the raw tip.
// It is idempotent and meant to be run on an interval under a lock file.
type Updater struct {
	logger  *zap.Logger
	engine  Engine
	blocks  BlockStore
	chain   RawChain
	metrics Metrics
	fork    *forkDetector
	runner  *chunkRunner
}

// UpdaterOption customizes an Updater.
type UpdaterOption func(*Updater)

// WithUpdateChunkSize sets how many heights go into one bulk call.
func WithUpdateChunkSize(n uint64) UpdaterOption {
	return func(u *Updater) {
		if n > 0 {
			u.runner.chunkSize = n
		}
	}
}

// WithUpdateHashSource checks the stored tip against a node instead of the raw store.
func WithUpdateHashSource(hashes HashSource) UpdaterOption {
	return func(u *Updater) {
		u.fork.hashes = hashes
	}
}

// WithUpdateMaxReorgDepth bounds the fork point search.
func WithUpdateMaxReorgDepth(n uint64) UpdaterOption {
	return func(u *Updater) {
		u.fork.maxDepth = n
	}
}

func NewUpdater(
	engine Engine,
	blocks BlockStore,
	chain RawChain,
	metrics Metrics,
	logger *zap.Logger,
	opts ...UpdaterOption,
) (*Updater, error) {
	if engine == nil || blocks == nil || chain == nil {
		return nil, errors.New("engine, block store and raw chain are required")
	}
	if metrics == nil {
		return nil, errors.New("syncer metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("updater")

	u := &Updater{
		logger:  logger,
		engine:  engine,
		blocks:  blocks,
		chain:   chain,
		metrics: metrics,
		fork: &forkDetector{
			logger:   logger,
			blocks:   blocks,
			chain:    chain,
			maxDepth: defaultMaxReorgDepth,
		},
		runner: &chunkRunner{
			logger:    logger,
			engine:    engine,
			limiter:   ratelimit.NewUnlimited(),
			chunkSize: defaultChunkSize,
		},
	}
	for _, opt := range opts {
		opt(u)
	}
	return u, nil
}

// Update runs one incremental pass.
func (u *Updater) Update(ctx context.Context) (res UpdateResult, err error) {
	started := time.Now()
	defer func() {
		u.metrics.ObserveSync(err, res.Inserted, started)
	}()

	tip, ok, err := u.chain.MaxContiguousProcessedHeight(ctx)
	if err != nil {
		return res, fmt.Errorf("raw tip: %w", err)
	}
	if !ok {
		return res, ErrNoChainTip
	}
	res.Tip = tip

	latest, err := u.blocks.LatestBlockStat(ctx)
	if err != nil {
		return res, fmt.Errorf("latest block stat: %w", err)
	}
	if latest != nil {
		res.LastProcessed = latest.Height

		fork, reorged, err := u.fork.forkPoint(ctx, latest.Height)
		if err != nil {
			return res, fmt.Errorf("detect reorg: %w", err)
		}
		if reorged {
			rb, err := u.engine.HandleReorg(ctx, fork)
			if err != nil {
				return res, fmt.Errorf("handle reorg to %d: %w", fork, err)
			}
			u.metrics.ObserveReorg(latest.Height - fork)
			res.Rollback = &rb
			res.LastProcessed = fork
		}
	}

	if res.LastProcessed >= tip {
		res.UpToDate = true
		u.logger.Info("Dashboard is up to date", zap.Uint64("height", tip))
		u.metrics.SetWatermark(res.LastProcessed)
		return res, nil
	}

	start := res.LastProcessed + 1
	u.logger.Info("updating dashboard",
		zap.Uint64("tip", tip),
		zap.Uint64("last_processed", res.LastProcessed),
		zap.Uint64("from", start),
		zap.Uint64("blocks", tip-res.LastProcessed),
	)

	res.Inserted, err = u.runner.run(ctx, start, tip)
	if err != nil {
		return res, err
	}
	u.metrics.SetWatermark(tip)
	u.logger.Info("dashboard updated",
		zap.Int("inserted", res.Inserted),
		zap.Duration("took", time.Since(started)),
	)
	return res, nil
}

package syncer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/clock"
	"go.uber.org/zap"
)

// ErrEmptyStore is returned when the follower starts before any backfill.
var ErrEmptyStore = errors.New("dashboard store is empty, run the backfill first")

// Follower tails the raw store and delivers new blocks and reorgs to an Adapter.
type Follower struct {
	logger            *zap.Logger
	adapter           *Adapter
	blocks            BlockStore
	chain             RawChain
	metrics           Metrics
	fork              *forkDetector
	sleep             func(context.Context, time.Duration) error
	sleepDuration     time.Duration
	idleSleepDuration time.Duration
	batchSize         uint64
	blockSignal       <-chan struct{}
}

// FollowerOption customizes a Follower.
type FollowerOption func(*Follower)

// WithBlockSignal wakes the follower early whenever a value arrives.
func WithBlockSignal(signal <-chan struct{}) FollowerOption {
	return func(f *Follower) {
		f.blockSignal = signal
	}
}

// WithBatchSize caps how many new blocks one Sync delivers.
func WithBatchSize(n uint64) FollowerOption {
	return func(f *Follower) {
		if n > 0 {
			f.batchSize = n
		}
	}
}

// WithHashSource compares stored hashes against a node instead of the raw store.
func WithHashSource(hashes HashSource) FollowerOption {
	return func(f *Follower) {
		f.fork.hashes = hashes
	}
}

// WithMaxReorgDepth bounds the fork point search.
func WithMaxReorgDepth(n uint64) FollowerOption {
	return func(f *Follower) {
		f.fork.maxDepth = n
	}
}

// WithPollInterval overrides the sleep between iterations.
func WithPollInterval(busy, idle time.Duration) FollowerOption {
	return func(f *Follower) {
		if busy > 0 {
			f.sleepDuration = busy
		}
		if idle > 0 {
			f.idleSleepDuration = idle
		}
	}
}

func NewFollower(
	adapter *Adapter,
	blocks BlockStore,
	chain RawChain,
	metrics Metrics,
	logger *zap.Logger,
	opts ...FollowerOption,
) (*Follower, error) {
	if adapter == nil {
		return nil, errors.New("sync adapter is required")
	}
	if blocks == nil || chain == nil {
		return nil, errors.New("block store and raw chain are required")
	}
	if metrics == nil {
		return nil, errors.New("syncer metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("follower")

	f := &Follower{
		logger:            logger,
		adapter:           adapter,
		blocks:            blocks,
		chain:             chain,
		metrics:           metrics,
		sleep:             clock.System{}.Sleep,
		sleepDuration:     sleepDuration,
		idleSleepDuration: idleSleepDuration,
		batchSize:         defaultBatchSize,
		fork: &forkDetector{
			logger:   logger,
			blocks:   blocks,
			chain:    chain,
			maxDepth: defaultMaxReorgDepth,
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Start initializes the adapter at the highest stored block stat.
func (f *Follower) Start(ctx context.Context) error {
	latest, err := f.blocks.LatestBlockStat(ctx)
	if err != nil {
		return fmt.Errorf("latest block stat: %w", err)
	}
	if latest == nil {
		return ErrEmptyStore
	}
	return f.adapter.Initialize(ctx, latest.Height)
}

// Run initializes the adapter if needed and syncs until ctx is canceled.
func (f *Follower) Run(ctx context.Context) error {
	if !f.adapter.IsInitialized() {
		if err := f.Start(ctx); err != nil {
			return err
		}
	}
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		handled, err := f.Sync(ctx)
		switch {
		case err != nil:
			f.logger.Warn("sync iteration failed, backing off", zap.Error(err), zap.Duration("sleep", f.sleepDuration))
			err = f.sleep(ctx, f.sleepDuration)
		case handled == 0:
			err = f.wait(ctx, f.idleSleepDuration)
		case uint64(handled) < f.batchSize:
			err = f.wait(ctx, f.sleepDuration)
		}
		if err != nil {
			return err
		}
	}
}

// Sync runs one iteration: reorg check at the watermark, then up to batchSize
// new blocks in height order. It returns how many blocks advanced the watermark.
func (f *Follower) Sync(ctx context.Context) (handled int, err error) {
	started := time.Now()
	defer func() {
		f.metrics.ObserveSync(err, handled, started)
	}()

	last := f.adapter.LastProcessed()
	fork, reorged, err := f.fork.forkPoint(ctx, last)
	if err != nil {
		return 0, fmt.Errorf("detect reorg: %w", err)
	}
	if reorged {
		if _, err = f.adapter.OnReorg(ctx, fork); err != nil {
			return 0, err
		}
		last = fork
	}

	tip, ok, err := f.chain.MaxContiguousProcessedHeight(ctx)
	if err != nil {
		return 0, fmt.Errorf("raw tip: %w", err)
	}
	if !ok || tip <= last {
		f.logger.Debug("no new blocks", zap.Uint64("last", last), zap.Uint64("tip", tip))
		return 0, nil
	}

	end := tip
	if tip-last > f.batchSize {
		end = last + f.batchSize
	}
	headers, err := f.chain.BlockHeaders(ctx, last+1, end)
	if err != nil {
		return 0, fmt.Errorf("block headers [%d, %d]: %w", last+1, end, err)
	}

	for _, header := range headers {
		outcome, err := f.adapter.OnNewBlock(ctx, header.Height, header.Hash, header.Time)
		if err != nil {
			return handled, err
		}
		if !outcome.Done() {
			f.logger.Info("raw facts not ready, retrying later", zap.Uint64("height", header.Height))
			break
		}
		handled++
	}
	if handled > 0 {
		f.logger.Info("synced blocks",
			zap.Int("blocks", handled),
			zap.Uint64("watermark", f.adapter.LastProcessed()),
			zap.Uint64("tip", tip),
		)
	}
	return handled, nil
}

func (f *Follower) wait(ctx context.Context, d time.Duration) error {
	if f.blockSignal == nil {
		return f.sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-f.blockSignal:
		return nil
	case <-timer.C:
		return nil
	}
}

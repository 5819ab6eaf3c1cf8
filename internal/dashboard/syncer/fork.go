package syncer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// forkDetector finds the highest stored block that is still canonical.
type forkDetector struct {
	logger   *zap.Logger
	blocks   BlockStore
	chain    RawChain
	hashes   HashSource
	maxDepth uint64
}

func (d *forkDetector) canonicalHash(ctx context.Context, height uint64) (string, error) {
	if d.hashes != nil {
		return d.hashes.CanonicalHash(ctx, height)
	}
	return d.chain.BlockHash(ctx, height)
}

// forkPoint walks down from height and returns the first height whose stored
// hash equals the canonical one. reorged is false when height itself matches
// or the canonical hash at height is not known yet.
func (d *forkDetector) forkPoint(ctx context.Context, height uint64) (fork uint64, reorged bool, err error) {
	for depth := uint64(0); depth <= d.maxDepth && depth <= height; depth++ {
		h := height - depth

		stat, err := d.blocks.BlockStat(ctx, h)
		if err != nil {
			return 0, false, fmt.Errorf("lookup block stat %d: %w", h, err)
		}
		if stat == nil {
			continue
		}

		canonical, err := d.canonicalHash(ctx, h)
		if err != nil {
			return 0, false, fmt.Errorf("canonical hash %d: %w", h, err)
		}
		if canonical == "" && depth == 0 {
			d.logger.Debug("canonical hash unknown, skipping reorg check", zap.Uint64("height", h))
			return height, false, nil
		}
		if canonical == stat.Hash {
			if depth > 0 {
				d.logger.Warn("chain reorganization detected",
					zap.Uint64("stored_tip", height),
					zap.Uint64("fork_point", h),
				)
			}
			return h, depth > 0, nil
		}
	}
	return 0, false, fmt.Errorf("no common ancestor within %d blocks below %d", d.maxDepth, height)
}

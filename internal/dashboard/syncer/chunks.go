package syncer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

// chunkRunner bulk processes a height range in fixed size chunks, one chunk
// per limiter tick.
type chunkRunner struct {
	logger    *zap.Logger
	engine    Engine
	limiter   ratelimit.Limiter
	chunkSize uint64
}

// run returns the number of newly inserted rows. On error the count covers the
// chunks completed before the failing one.
func (c *chunkRunner) run(ctx context.Context, start, end uint64) (int, error) {
	if start > end {
		return 0, nil
	}
	started := time.Now()
	total := 0
	for from := start; from <= end; {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		to := end
		if end-from >= c.chunkSize {
			to = from + c.chunkSize - 1
		}

		c.limiter.Take()
		n, err := c.engine.ProcessRange(ctx, from, to)
		if err != nil {
			return total, fmt.Errorf("process range [%d, %d]: %w", from, to, err)
		}
		total += n
		c.logger.Info("processed chunk",
			zap.Uint64("from", from),
			zap.Uint64("to", to),
			zap.Uint64("end", end),
			zap.Int("inserted", n),
			zap.Float64("progress", float64(to-start+1)/float64(end-start+1)),
			zap.Duration("elapsed", time.Since(started)),
		)
		if to == end {
			break
		}
		from = to + 1
	}
	return total, nil
}

package aggregator

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"go.uber.org/zap"
)

// HandleReorg drops every block stat above newTip, recomputes the daily stats
// of the affected dates and rebuilds the rolling cache at newTip. Callers must
// not move their watermark unless it returns nil.
func (e *Engine) HandleReorg(ctx context.Context, newTip uint64) (rb model.Rollback, err error) {
	started := time.Now()
	defer func() {
		e.metrics.ObserveOperation(operationHandleReorg, err, started)
	}()

	e.cache.Invalidate()

	rb, err = e.blocks.RollbackAbove(ctx, newTip)
	if err != nil {
		return model.Rollback{}, fmt.Errorf("rollback above %d: %w", newTip, err)
	}

	if _, err = e.cache.Rebuild(ctx, e.blocks, newTip); err != nil {
		return rb, fmt.Errorf("rebuild rolling cache at %d: %w", newTip, err)
	}

	e.logger.Warn("reorg rolled back",
		zap.Uint64("new_tip", newTip),
		zap.Int64("deleted", rb.DeletedRows),
		zap.Strings("days", rb.AffectedDays),
		zap.Duration("took", time.Since(started)),
	)
	return rb, nil
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"github.com/shopspring/decimal"
)

// RollingAverage averages the window most recent block stats at or below upto.
// The arithmetic matches rolling.Window so both paths report the same numbers.
func (r *Repository) RollingAverage(ctx context.Context, upto uint64, window int) (_ model.RollingAverage, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("rolling_average", r.coin, r.network, err, start)
	}()

	const query = `
SELECT
	count(*),
	coalesce(sum(block_interval), 0)::bigint,
	coalesce(sum(tx_count), 0)::bigint,
	coalesce(sum(block_size), 0)::bigint,
	coalesce(sum(fees), 0)::text
FROM (
	SELECT block_interval, tx_count, block_size, fees
	FROM dashboard_block_stats
	WHERE coin = $1 AND network = $2 AND height <= $3
	ORDER BY height DESC
	LIMIT $4
) recent`

	var (
		blocks, intervals, txs, size int64
		fees                         string
	)
	if err = r.db.QueryRow(ctx, query, r.coin, r.network, upto, window).
		Scan(&blocks, &intervals, &txs, &size, &fees); err != nil {
		return model.RollingAverage{}, fmt.Errorf("query rolling average %d: %w", window, err)
	}

	avg := model.RollingAverage{Window: window, Blocks: int(blocks), Fees: decimal.Zero}
	if blocks == 0 {
		return avg, nil
	}

	feeSum, err := decimal.NewFromString(fees)
	if err != nil {
		return model.RollingAverage{}, fmt.Errorf("parse fee sum: %w", err)
	}
	n := float64(blocks)
	avg.BlockInterval = float64(intervals) / n
	avg.TxCount = float64(txs) / n
	avg.BlockSize = float64(size) / n
	avg.Fees = feeSum.Div(decimal.NewFromInt(blocks))
	return avg, nil
}

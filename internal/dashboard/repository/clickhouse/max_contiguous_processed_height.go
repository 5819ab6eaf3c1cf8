package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// MaxContiguousProcessedHeight returns the highest height h such that every
// block in [0, h] is processed. It returns ok=false when block 0 is missing.
func (r *Repository) MaxContiguousProcessedHeight(ctx context.Context) (_ uint64, ok bool, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("max_contiguous_processed_height", r.coin, r.network, err, start)
	}()

	const query = `
WITH data AS (
	SELECT
		height,
		row_number() OVER (ORDER BY height) - 1 AS rn
	FROM (
		SELECT height
		FROM utxo_blocks
		WHERE coin = ? AND network = ?
		GROUP BY height
		HAVING argMax(status, updated_at) = 'processed'
	)
)
SELECT count(), max(height)
FROM data
WHERE rn = height`

	rows, err := r.conn.Query(ctx, query, r.scopeArgs(1)...)
	if err != nil {
		return 0, false, fmt.Errorf("query max contiguous processed height: %w", err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		return 0, false, fmt.Errorf("not found max contiguous processed height")
	}

	var count, height uint64
	if err = rows.Scan(&count, &height); err != nil {
		return 0, false, fmt.Errorf("scan max contiguous processed height: %w", err)
	}
	if err = rows.Err(); err != nil {
		return 0, false, fmt.Errorf("iterate max contiguous processed height: %w", err)
	}
	return height, count > 0, nil
}

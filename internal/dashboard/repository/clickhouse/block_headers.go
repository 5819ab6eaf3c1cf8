package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
)

// BlockHeaders returns the processed blocks in [start, end], ascending.
func (r *Repository) BlockHeaders(ctx context.Context, start, end uint64) (_ []model.BlockHeader, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("block_headers", r.coin, r.network, err, started)
	}()

	const query = `
SELECT
	height,
	argMax(hash, updated_at),
	toInt64(toUnixTimestamp(argMax(timestamp, updated_at)))
FROM utxo_blocks
WHERE coin = ? AND network = ? AND height BETWEEN ? AND ?
GROUP BY height
HAVING argMax(status, updated_at) = 'processed'
ORDER BY height ASC`

	rows, err := r.conn.Query(ctx, query, r.scopeArgs(1, start, end)...)
	if err != nil {
		return nil, fmt.Errorf("query block headers: %w", err)
	}
	defer closeRows(rows, &err)

	headers := make([]model.BlockHeader, 0)
	for rows.Next() {
		var header model.BlockHeader
		if err = rows.Scan(&header.Height, &header.Hash, &header.Time); err != nil {
			return nil, fmt.Errorf("scan block header: %w", err)
		}
		headers = append(headers, header)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate block headers: %w", err)
	}
	return headers, nil
}

// BlockHash returns the latest known hash at height, empty when the height is unknown.
func (r *Repository) BlockHash(ctx context.Context, height uint64) (_ string, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_hash", r.coin, r.network, err, start)
	}()

	const query = `
SELECT argMax(hash, updated_at)
FROM utxo_blocks
WHERE coin = ? AND network = ? AND height = ?
GROUP BY height`

	rows, err := r.conn.Query(ctx, query, r.scopeArgs(1, height)...)
	if err != nil {
		return "", fmt.Errorf("query block hash %d: %w", height, err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return "", fmt.Errorf("iterate block hash %d: %w", height, err)
		}
		return "", nil
	}

	var hash string
	if err = rows.Scan(&hash); err != nil {
		return "", fmt.Errorf("scan block hash %d: %w", height, err)
	}
	return hash, nil
}

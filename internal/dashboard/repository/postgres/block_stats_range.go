package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"github.com/jackc/pgx/v5"
)

// BlockStatsRange returns the stored stats with start <= height <= end, ascending.
func (r *Repository) BlockStatsRange(ctx context.Context, start, end uint64) (_ []model.BlockStat, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("block_stats_range", r.coin, r.network, err, started)
	}()

	const query = `
SELECT` + blockStatColumns + `
FROM dashboard_block_stats
WHERE coin = $1 AND network = $2 AND height BETWEEN $3 AND $4
ORDER BY height ASC`

	rows, err := r.db.Query(ctx, query, r.coin, r.network, start, end)
	if err != nil {
		return nil, fmt.Errorf("query block stats range: %w", err)
	}
	return collectBlockStats(rows)
}

// RecentBlockStats returns the limit highest stats at or below upto, ascending.
func (r *Repository) RecentBlockStats(ctx context.Context, upto uint64, limit int) (_ []model.BlockStat, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("recent_block_stats", r.coin, r.network, err, started)
	}()

	const query = `
SELECT` + blockStatColumns + `
FROM (
	SELECT *
	FROM dashboard_block_stats
	WHERE coin = $1 AND network = $2 AND height <= $3
	ORDER BY height DESC
	LIMIT $4
) recent
ORDER BY height ASC`

	rows, err := r.db.Query(ctx, query, r.coin, r.network, upto, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent block stats: %w", err)
	}
	return collectBlockStats(rows)
}

func collectBlockStats(rows pgx.Rows) ([]model.BlockStat, error) {
	defer rows.Close()

	stats := make([]model.BlockStat, 0)
	for rows.Next() {
		stat, err := scanBlockStat(rows)
		if err != nil {
			return nil, fmt.Errorf("scan block stat: %w", err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate block stats: %w", err)
	}
	return stats, nil
}

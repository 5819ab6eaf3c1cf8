package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"github.com/jackc/pgx/v5"
)

// RollbackAbove deletes every block stat above height and recomputes the days
// those rows belonged to from what remains.
func (r *Repository) RollbackAbove(ctx context.Context, height uint64) (_ model.Rollback, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("rollback_above", r.coin, r.network, err, start)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Rollback{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	const query = `
DELETE FROM dashboard_block_stats
WHERE coin = $1 AND network = $2 AND height > $3
RETURNING day`

	rows, err := tx.Query(ctx, query, r.coin, r.network, height)
	if err != nil {
		return model.Rollback{}, fmt.Errorf("delete block stats above %d: %w", height, err)
	}

	var deleted int64
	seen := make(map[string]struct{})
	for rows.Next() {
		var day string
		if err = rows.Scan(&day); err != nil {
			rows.Close()
			return model.Rollback{}, fmt.Errorf("scan deleted day: %w", err)
		}
		deleted++
		seen[day] = struct{}{}
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return model.Rollback{}, fmt.Errorf("iterate deleted days: %w", err)
	}

	days := make([]string, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Strings(days)

	if err = r.recomputeDays(ctx, tx, days); err != nil {
		return model.Rollback{}, err
	}
	if err = tx.Commit(ctx); err != nil {
		return model.Rollback{}, fmt.Errorf("commit tx: %w", err)
	}

	return model.Rollback{NewTip: height, DeletedRows: deleted, AffectedDays: days}, nil
}

// RecomputeDailyStats rebuilds the given dates from the stored block stats.
// Dates without blocks are removed.
func (r *Repository) RecomputeDailyStats(ctx context.Context, dates []string) (err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("recompute_daily_stats", r.coin, r.network, err, start)
	}()

	if len(dates) == 0 {
		return nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err = r.recomputeDays(ctx, tx, dates); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *Repository) recomputeDays(ctx context.Context, tx pgx.Tx, days []string) error {
	if len(days) == 0 {
		return nil
	}

	const deleteQuery = `
DELETE FROM dashboard_daily_stats
WHERE coin = $1 AND network = $2 AND date = ANY($3)`

	if _, err := tx.Exec(ctx, deleteQuery, r.coin, r.network, days); err != nil {
		return fmt.Errorf("delete daily stats: %w", err)
	}

	const insertQuery = `
INSERT INTO dashboard_daily_stats (
	coin, network, date, blocks, tx_count_total,
	interval_sum, interval_count, size_sum,
	avg_block_time, avg_block_size,
	issuance, fees_total, block_reward_total, tx_value_total,
	updated_at
)
SELECT
	coin,
	network,
	day,
	count(*),
	sum(tx_count),
	coalesce(sum(block_interval) FILTER (WHERE block_interval > 0), 0),
	count(*) FILTER (WHERE block_interval > 0),
	sum(block_size),
	CASE
		WHEN count(*) FILTER (WHERE block_interval > 0) > 0
		THEN (sum(block_interval) FILTER (WHERE block_interval > 0))::double precision
			/ count(*) FILTER (WHERE block_interval > 0)
		ELSE 0
	END,
	sum(block_size)::double precision / count(*),
	sum(GREATEST(block_reward, 0)),
	sum(fees),
	sum(block_reward),
	sum(tx_value),
	now()
FROM dashboard_block_stats
WHERE coin = $1 AND network = $2 AND day = ANY($3)
GROUP BY coin, network, day`

	if _, err := tx.Exec(ctx, insertQuery, r.coin, r.network, days); err != nil {
		return fmt.Errorf("recompute daily stats: %w", err)
	}
	return nil
}

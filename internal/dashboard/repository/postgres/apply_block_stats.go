package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"github.com/jackc/pgx/v5"
)

// ApplyBlockStats inserts rows that are not stored yet and folds exactly those
// into the daily stats, in one transaction. Rows whose height already exists
// are skipped and left out of the result.
func (r *Repository) ApplyBlockStats(ctx context.Context, rows []model.BlockStat) (_ []model.BlockStat, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("apply_block_stats", r.coin, r.network, err, start)
	}()

	if len(rows) == 0 {
		return nil, nil
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	inserted, err := r.insertBlockStats(ctx, tx, rows)
	if err != nil {
		return nil, err
	}
	if err = r.upsertDailyDeltas(ctx, tx, model.DailyDeltas(inserted)); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	return inserted, nil
}

func (r *Repository) insertBlockStats(ctx context.Context, tx pgx.Tx, rows []model.BlockStat) ([]model.BlockStat, error) {
	const query = `
INSERT INTO dashboard_block_stats (
	coin, network, height, hash, time, day,
	block_interval, tx_count, block_size,
	fees, block_reward, tx_value, difficulty
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::numeric, $11::numeric, $12::numeric, $13)
ON CONFLICT (coin, network, height) DO NOTHING
RETURNING height`

	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(query,
			string(r.coin),
			string(r.network),
			row.Height,
			row.Hash,
			row.Time,
			row.Date(),
			row.BlockInterval,
			row.TxCount,
			row.BlockSize,
			row.Fees.String(),
			row.BlockReward.String(),
			row.TxValue.String(),
			row.Difficulty,
		)
	}

	results := tx.SendBatch(ctx, batch)
	inserted := make([]model.BlockStat, 0, len(rows))
	for _, row := range rows {
		var height uint64
		err := results.QueryRow().Scan(&height)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			_ = results.Close()
			return nil, fmt.Errorf("insert block stat %d: %w", row.Height, err)
		}
		inserted = append(inserted, row)
	}
	if err := results.Close(); err != nil {
		return nil, fmt.Errorf("close insert batch: %w", err)
	}
	return inserted, nil
}

func (r *Repository) upsertDailyDeltas(ctx context.Context, tx pgx.Tx, deltas []model.DailyDelta) error {
	if len(deltas) == 0 {
		return nil
	}

	const query = `
INSERT INTO dashboard_daily_stats AS d (
	coin, network, date, blocks, tx_count_total,
	interval_sum, interval_count, size_sum,
	avg_block_time, avg_block_size,
	issuance, fees_total, block_reward_total, tx_value_total,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11::numeric, $12::numeric, $13::numeric, $14::numeric, now())
ON CONFLICT (coin, network, date) DO UPDATE SET
	blocks             = d.blocks + EXCLUDED.blocks,
	tx_count_total     = d.tx_count_total + EXCLUDED.tx_count_total,
	interval_sum       = d.interval_sum + EXCLUDED.interval_sum,
	interval_count     = d.interval_count + EXCLUDED.interval_count,
	size_sum           = d.size_sum + EXCLUDED.size_sum,
	avg_block_time     = CASE
		WHEN d.interval_count + EXCLUDED.interval_count > 0
		THEN (d.interval_sum + EXCLUDED.interval_sum)::double precision / (d.interval_count + EXCLUDED.interval_count)
		ELSE 0
	END,
	avg_block_size     = CASE
		WHEN d.blocks + EXCLUDED.blocks > 0
		THEN (d.size_sum + EXCLUDED.size_sum)::double precision / (d.blocks + EXCLUDED.blocks)
		ELSE 0
	END,
	issuance           = d.issuance + EXCLUDED.issuance,
	fees_total         = d.fees_total + EXCLUDED.fees_total,
	block_reward_total = d.block_reward_total + EXCLUDED.block_reward_total,
	tx_value_total     = d.tx_value_total + EXCLUDED.tx_value_total,
	updated_at         = now()`

	batch := &pgx.Batch{}
	for _, delta := range deltas {
		var fresh model.DailyStat
		fresh.Add(delta)
		batch.Queue(query,
			string(r.coin),
			string(r.network),
			delta.Date,
			delta.Blocks,
			delta.TxCount,
			delta.IntervalSum,
			delta.IntervalCount,
			delta.SizeSum,
			fresh.AvgBlockTime,
			fresh.AvgBlockSize,
			delta.Issuance.String(),
			delta.Fees.String(),
			delta.BlockReward.String(),
			delta.TxValue.String(),
		)
	}

	results := tx.SendBatch(ctx, batch)
	for _, delta := range deltas {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("upsert daily stat %s: %w", delta.Date, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close daily batch: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const blockStatColumns = `
	height,
	hash,
	time,
	block_interval,
	tx_count,
	block_size,
	fees::text,
	block_reward::text,
	tx_value::text,
	difficulty`

type scanner interface {
	Scan(dest ...any) error
}

func scanBlockStat(row scanner) (model.BlockStat, error) {
	var (
		stat                  model.BlockStat
		fees, reward, txValue string
	)
	if err := row.Scan(
		&stat.Height,
		&stat.Hash,
		&stat.Time,
		&stat.BlockInterval,
		&stat.TxCount,
		&stat.BlockSize,
		&fees,
		&reward,
		&txValue,
		&stat.Difficulty,
	); err != nil {
		return model.BlockStat{}, err
	}

	var err error
	if stat.Fees, err = decimal.NewFromString(fees); err != nil {
		return model.BlockStat{}, fmt.Errorf("parse fees: %w", err)
	}
	if stat.BlockReward, err = decimal.NewFromString(reward); err != nil {
		return model.BlockStat{}, fmt.Errorf("parse block reward: %w", err)
	}
	if stat.TxValue, err = decimal.NewFromString(txValue); err != nil {
		return model.BlockStat{}, fmt.Errorf("parse tx value: %w", err)
	}
	return stat, nil
}

// BlockStat returns the stored stat of height, or nil when it was never processed.
func (r *Repository) BlockStat(ctx context.Context, height uint64) (_ *model.BlockStat, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_stat", r.coin, r.network, err, start)
	}()

	const query = `
SELECT` + blockStatColumns + `
FROM dashboard_block_stats
WHERE coin = $1 AND network = $2 AND height = $3`

	stat, err := scanBlockStat(r.db.QueryRow(ctx, query, r.coin, r.network, height))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query block stat %d: %w", height, err)
	}
	return &stat, nil
}

// LatestBlockStat returns the highest stored stat, or nil when the store is empty.
func (r *Repository) LatestBlockStat(ctx context.Context) (_ *model.BlockStat, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("latest_block_stat", r.coin, r.network, err, start)
	}()

	const query = `
SELECT` + blockStatColumns + `
FROM dashboard_block_stats
WHERE coin = $1 AND network = $2
ORDER BY height DESC
LIMIT 1`

	stat, err := scanBlockStat(r.db.QueryRow(ctx, query, r.coin, r.network))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest block stat: %w", err)
	}
	return &stat, nil
}

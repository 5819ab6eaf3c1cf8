package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"github.com/shopspring/decimal"
)

// DailyStatsRange returns the daily stats with from <= date <= to, ascending.
func (r *Repository) DailyStatsRange(ctx context.Context, from, to string) (_ []model.DailyStat, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("daily_stats_range", r.coin, r.network, err, start)
	}()

	const query = `
SELECT
	date,
	blocks,
	tx_count_total,
	interval_sum,
	interval_count,
	size_sum,
	avg_block_time,
	avg_block_size,
	issuance::text,
	fees_total::text,
	block_reward_total::text,
	tx_value_total::text
FROM dashboard_daily_stats
WHERE coin = $1 AND network = $2 AND date BETWEEN $3 AND $4
ORDER BY date ASC`

	rows, err := r.db.Query(ctx, query, r.coin, r.network, from, to)
	if err != nil {
		return nil, fmt.Errorf("query daily stats: %w", err)
	}
	defer rows.Close()

	stats := make([]model.DailyStat, 0)
	for rows.Next() {
		var (
			stat                            model.DailyStat
			issuance, fees, reward, txValue string
		)
		if err = rows.Scan(
			&stat.Date,
			&stat.Blocks,
			&stat.TxCountTotal,
			&stat.IntervalSum,
			&stat.IntervalCount,
			&stat.SizeSum,
			&stat.AvgBlockTime,
			&stat.AvgBlockSize,
			&issuance,
			&fees,
			&reward,
			&txValue,
		); err != nil {
			return nil, fmt.Errorf("scan daily stat: %w", err)
		}

		amounts := []struct {
			dst *decimal.Decimal
			src string
		}{
			{&stat.Issuance, issuance},
			{&stat.FeesTotal, fees},
			{&stat.BlockRewardTotal, reward},
			{&stat.TxValueTotal, txValue},
		}
		for _, a := range amounts {
			if *a.dst, err = decimal.NewFromString(a.src); err != nil {
				return nil, fmt.Errorf("parse daily amount %q: %w", a.src, err)
			}
		}
		stats = append(stats, stat)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily stats: %w", err)
	}
	return stats, nil
}

package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
)

// NearestDifficulty returns the latest positive difficulty at or below height, 0 when none is known.
func (r *Repository) NearestDifficulty(ctx context.Context, height uint64) (_ float64, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("nearest_difficulty", r.coin, r.network, err, start)
	}()

	const query = `
SELECT difficulty
FROM (
	SELECT height, argMax(difficulty, updated_at) AS difficulty
	FROM utxo_blocks
	WHERE coin = ? AND network = ? AND height <= ?
	GROUP BY height
)
WHERE difficulty > 0
ORDER BY height DESC
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, r.scopeArgs(1, height)...)
	if err != nil {
		return 0, fmt.Errorf("query nearest difficulty: %w", err)
	}
	defer closeRows(rows, &err)

	var difficulty float64
	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return 0, fmt.Errorf("iterate nearest difficulty: %w", err)
		}
		return 0, nil
	}
	if err = rows.Scan(&difficulty); err != nil {
		return 0, fmt.Errorf("scan nearest difficulty: %w", err)
	}
	return difficulty, nil
}

// Difficulties returns the known positive difficulties in [start, end], ascending.
func (r *Repository) Difficulties(ctx context.Context, start, end uint64) (_ []model.DifficultyPoint, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("difficulties", r.coin, r.network, err, started)
	}()

	const query = `
SELECT height, difficulty
FROM (
	SELECT height, argMax(difficulty, updated_at) AS difficulty
	FROM utxo_blocks
	WHERE coin = ? AND network = ? AND height BETWEEN ? AND ?
	GROUP BY height
)
WHERE difficulty > 0
ORDER BY height ASC`

	rows, err := r.conn.Query(ctx, query, r.scopeArgs(1, start, end)...)
	if err != nil {
		return nil, fmt.Errorf("query difficulties: %w", err)
	}
	defer closeRows(rows, &err)

	points := make([]model.DifficultyPoint, 0)
	for rows.Next() {
		var point model.DifficultyPoint
		if err = rows.Scan(&point.Height, &point.Difficulty); err != nil {
			return nil, fmt.Errorf("scan difficulty: %w", err)
		}
		points = append(points, point)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate difficulties: %w", err)
	}
	return points, nil
}

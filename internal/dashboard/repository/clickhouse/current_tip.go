package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
)

// CurrentTip describes the highest processed block together with chain wide
// totals. It returns nil when nothing is processed yet.
func (r *Repository) CurrentTip(ctx context.Context) (_ *model.ChainTip, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("current_tip", r.coin, r.network, err, start)
	}()

	const query = `
WITH tip AS (
	SELECT height, argMax(hash, updated_at) AS hash
	FROM utxo_blocks
	WHERE coin = ? AND network = ?
	GROUP BY height
	HAVING argMax(status, updated_at) = 'processed'
	ORDER BY height DESC
	LIMIT 1
)
SELECT
	tip.height,
	tip.hash,
	(
		SELECT toUInt64(coalesce(sum(value), 0))
		FROM utxo_transaction_outputs FINAL
		WHERE coin = ? AND network = ? AND (block_height, txid) IN (
			SELECT block_height, txid
			FROM utxo_transaction_inputs
			WHERE coin = ? AND network = ? AND is_coinbase
		)
	),
	(
		SELECT count()
		FROM utxo_transactions FINAL
		WHERE coin = ? AND network = ?
	)
FROM tip`

	rows, err := r.conn.Query(ctx, query, r.scopeArgs(4)...)
	if err != nil {
		return nil, fmt.Errorf("query current tip: %w", err)
	}
	defer closeRows(rows, &err)

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate current tip: %w", err)
		}
		return nil, nil
	}

	var (
		tip    model.ChainTip
		supply uint64
	)
	if err = rows.Scan(&tip.Height, &tip.Hash, &supply, &tip.TotalTxCount); err != nil {
		return nil, fmt.Errorf("scan current tip: %w", err)
	}
	tip.TotalSupply = model.CoinAmount(btcutil.Amount(supply))
	return &tip, nil
}

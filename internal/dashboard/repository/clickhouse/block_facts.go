package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
)

// blockFactsQuery aggregates processed blocks in [start, end]. Every CTE is
// scoped by coin, network and the height range.
const blockFactsQuery = `
WITH
blocks AS (
	SELECT
		height,
		argMax(hash, updated_at)      AS hash,
		argMax(timestamp, updated_at) AS ts,
		argMax(size, updated_at)      AS size
	FROM utxo_blocks
	WHERE coin = ? AND network = ? AND height BETWEEN ? AND ?
	GROUP BY height
	HAVING argMax(status, updated_at) = 'processed'
),
txs AS (
	SELECT block_height, count() AS tx_count
	FROM utxo_transactions FINAL
	WHERE coin = ? AND network = ? AND block_height BETWEEN ? AND ?
	GROUP BY block_height
),
coinbase AS (
	SELECT DISTINCT block_height, txid
	FROM utxo_transaction_inputs
	WHERE coin = ? AND network = ? AND block_height BETWEEN ? AND ? AND is_coinbase
),
inputs AS (
	SELECT block_height, sum(value) AS input_value
	FROM utxo_transaction_inputs FINAL
	WHERE coin = ? AND network = ? AND block_height BETWEEN ? AND ? AND NOT is_coinbase
	GROUP BY block_height
),
outputs AS (
	SELECT
		o.block_height               AS block_height,
		sumIf(o.value, c.txid = '')  AS spent_value,
		sumIf(o.value, c.txid != '') AS reward
	FROM utxo_transaction_outputs AS o FINAL
	LEFT JOIN coinbase AS c ON c.block_height = o.block_height AND c.txid = o.txid
	WHERE o.coin = ? AND o.network = ? AND o.block_height BETWEEN ? AND ?
	GROUP BY o.block_height
)
SELECT
	b.height,
	b.hash,
	toInt64(toUnixTimestamp(b.ts)),
	toUInt64(b.size),
	toUInt64(t.tx_count),
	toUInt64(i.input_value),
	toUInt64(o.spent_value),
	toUInt64(o.reward)
FROM blocks AS b
LEFT JOIN txs AS t ON t.block_height = b.height
LEFT JOIN inputs AS i ON i.block_height = b.height
LEFT JOIN outputs AS o ON o.block_height = b.height
ORDER BY b.height ASC`

// BlockFacts returns the aggregated facts of one block, or nil when the raw
// store has not processed it.
func (r *Repository) BlockFacts(ctx context.Context, height uint64) (_ *model.RawBlock, err error) {
	start := time.Now()
	defer func() {
		r.metrics.Observe("block_facts", r.coin, r.network, err, start)
	}()

	blocks, err := r.blockFacts(ctx, height, height)
	if err != nil {
		return nil, err
	}
	if len(blocks) == 0 {
		return nil, nil
	}
	return &blocks[0], nil
}

// BlockFactsRange returns the facts of every processed block in [start, end] in one grouped read.
func (r *Repository) BlockFactsRange(ctx context.Context, start, end uint64) (_ []model.RawBlock, err error) {
	started := time.Now()
	defer func() {
		r.metrics.Observe("block_facts_range", r.coin, r.network, err, started)
	}()

	return r.blockFacts(ctx, start, end)
}

func (r *Repository) blockFacts(ctx context.Context, start, end uint64) (_ []model.RawBlock, err error) {
	rows, err := r.conn.Query(ctx, blockFactsQuery, r.scopeArgs(5, start, end)...)
	if err != nil {
		return nil, fmt.Errorf("query block facts: %w", err)
	}
	defer closeRows(rows, &err)

	blocks := make([]model.RawBlock, 0)
	for rows.Next() {
		var (
			block                 model.RawBlock
			inputs, spent, reward uint64
		)
		if err = rows.Scan(
			&block.Height,
			&block.Hash,
			&block.Time,
			&block.Size,
			&block.TxCount,
			&inputs,
			&spent,
			&reward,
		); err != nil {
			return nil, fmt.Errorf("scan block facts: %w", err)
		}

		block.Fees = btcutil.Amount(spent)
		block.TxValue = btcutil.Amount(spent + reward)
		block.BlockReward = btcutil.Amount(subsidy(inputs, spent, reward))
		blocks = append(blocks, block)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate block facts: %w", err)
	}
	return blocks, nil
}

// subsidy is the minted part of the coinbase outputs: the coinbase minus the
// net fee (inputs - outputs of the other transactions), never negative.
// Unresolved input values make the net fee negative and count as zero.
func subsidy(inputs, spent, reward uint64) uint64 {
	var netFee uint64
	if inputs > spent {
		netFee = inputs - spent
	}
	if netFee > reward {
		return 0
	}
	return reward - netFee
}

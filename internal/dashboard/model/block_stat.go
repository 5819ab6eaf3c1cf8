// Package model defines the domain types of the dashboard aggregation engine.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the layout of per-day keys.
const DateLayout = "2006-01-02"

// BlockStat is the per-block aggregate persisted once per height.
type BlockStat struct {
	Height        uint64
	Time          int64
	BlockInterval int64
	TxCount       uint64
	BlockSize     uint64
	Fees          decimal.Decimal
	BlockReward   decimal.Decimal
	TxValue       decimal.Decimal
	Difficulty    float64
	Hash          string
}

// Date returns the UTC calendar date of the block.
func (b BlockStat) Date() string {
	return DateOf(b.Time)
}

// Issuance returns the newly minted amount of the block, never negative.
// BlockReward holds the subsidy only; Fees is the total moved by non-coinbase
// transactions and is not part of it.
func (b BlockStat) Issuance() decimal.Decimal {
	if b.BlockReward.IsNegative() {
		return decimal.Zero
	}
	return b.BlockReward
}

// DateOf formats unix seconds as a UTC date key.
func DateOf(unix int64) string {
	return time.Unix(unix, 0).UTC().Format(DateLayout)
}

// Rollback describes the effect of a reorg rollback on the stat stores.
type Rollback struct {
	NewTip       uint64
	DeletedRows  int64
	AffectedDays []string
}

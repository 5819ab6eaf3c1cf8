package model

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/shopspring/decimal"
)

// RawBlock holds the per-block transaction aggregates read from the raw store.
type RawBlock struct {
	Height      uint64
	Hash        string
	Time        int64
	Size        uint64
	TxCount     uint64
	Fees        btcutil.Amount
	TxValue     btcutil.Amount
	BlockReward btcutil.Amount
}

// BlockHeader identifies a block observed by the block sync process.
type BlockHeader struct {
	Height uint64
	Hash   string
	Time   int64
}

// DifficultyPoint is a known difficulty at a height.
type DifficultyPoint struct {
	Height     uint64
	Difficulty float64
}

// ChainTip describes the current canonical chain as seen by the raw store.
type ChainTip struct {
	Height       uint64
	Hash         string
	TotalSupply  decimal.Decimal
	TotalTxCount uint64
}

// CoinAmount converts base units to a coin denominated decimal.
func CoinAmount(a btcutil.Amount) decimal.Decimal {
	return decimal.New(int64(a), -8)
}

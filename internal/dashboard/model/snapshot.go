package model

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// RollingAverage is the mean of block facts over the most recent blocks.
type RollingAverage struct {
	Window        int             `json:"window"`
	Blocks        int             `json:"blocks"`
	BlockInterval float64         `json:"blockInterval"`
	TxCount       float64         `json:"txCount"`
	BlockSize     float64         `json:"blockSize"`
	Fees          decimal.Decimal `json:"fees"`
}

// Key returns the dashboard key of the window, e.g. "last50".
func (r RollingAverage) Key() string {
	return "last" + strconv.Itoa(r.Window)
}

// CurrentChain is the chain tip part of a dashboard snapshot.
type CurrentChain struct {
	LatestBlockHeight uint64          `json:"latestBlockHeight"`
	LatestBlockHash   string          `json:"latestBlockHash"`
	Difficulty        float64         `json:"difficulty"`
	TotalSupply       decimal.Decimal `json:"totalSupply"`
	TotalTxCount      uint64          `json:"totalTxCount"`
}

// DashboardSnapshot is the composed, non persisted dashboard view.
type DashboardSnapshot struct {
	Current CurrentChain              `json:"current"`
	Rolling map[string]RollingAverage `json:"rolling"`
	Daily   []DailyStat               `json:"daily"`
}

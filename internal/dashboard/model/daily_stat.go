package model

import (
	"sort"

	"github.com/shopspring/decimal"
)

// DailyStat aggregates every folded block of one UTC date.
//
// IntervalSum, IntervalCount and SizeSum are the exact accumulators the
// averages are derived from, so increments from separate runs combine
// without drift.
type DailyStat struct {
	Date             string          `json:"date"`
	Blocks           uint64          `json:"blocks"`
	TxCountTotal     uint64          `json:"tx_count_total"`
	AvgBlockTime     float64         `json:"avg_block_time"`
	AvgBlockSize     float64         `json:"avg_block_size"`
	Issuance         decimal.Decimal `json:"issuance"`
	FeesTotal        decimal.Decimal `json:"fees_total"`
	BlockRewardTotal decimal.Decimal `json:"block_reward_total"`
	TxValueTotal     decimal.Decimal `json:"tx_value_total"`

	IntervalSum   int64  `json:"-"`
	IntervalCount uint64 `json:"-"`
	SizeSum       uint64 `json:"-"`
}

// DailyDelta is the additive contribution of a set of blocks to one date.
type DailyDelta struct {
	Date          string
	Blocks        uint64
	TxCount       uint64
	IntervalSum   int64
	IntervalCount uint64
	SizeSum       uint64
	Issuance      decimal.Decimal
	Fees          decimal.Decimal
	BlockReward   decimal.Decimal
	TxValue       decimal.Decimal
}

// DailyDeltas folds blocks into per-date deltas ordered by date.
// Only positive block intervals contribute to the block time average.
func DailyDeltas(blocks []BlockStat) []DailyDelta {
	if len(blocks) == 0 {
		return nil
	}

	byDate := make(map[string]*DailyDelta)
	for _, b := range blocks {
		date := b.Date()
		d, ok := byDate[date]
		if !ok {
			d = &DailyDelta{Date: date}
			byDate[date] = d
		}
		d.Blocks++
		d.TxCount += b.TxCount
		d.SizeSum += b.BlockSize
		if b.BlockInterval > 0 {
			d.IntervalSum += b.BlockInterval
			d.IntervalCount++
		}
		d.Issuance = d.Issuance.Add(b.Issuance())
		d.Fees = d.Fees.Add(b.Fees)
		d.BlockReward = d.BlockReward.Add(b.BlockReward)
		d.TxValue = d.TxValue.Add(b.TxValue)
	}

	deltas := make([]DailyDelta, 0, len(byDate))
	for _, d := range byDate {
		deltas = append(deltas, *d)
	}
	sort.Slice(deltas, func(i, j int) bool { return deltas[i].Date < deltas[j].Date })
	return deltas
}

// Add applies a delta of the same date and recomputes the running means.
func (s *DailyStat) Add(d DailyDelta) {
	if s.Date == "" {
		s.Date = d.Date
	}
	s.Blocks += d.Blocks
	s.TxCountTotal += d.TxCount
	s.IntervalSum += d.IntervalSum
	s.IntervalCount += d.IntervalCount
	s.SizeSum += d.SizeSum
	s.Issuance = s.Issuance.Add(d.Issuance)
	s.FeesTotal = s.FeesTotal.Add(d.Fees)
	s.BlockRewardTotal = s.BlockRewardTotal.Add(d.BlockReward)
	s.TxValueTotal = s.TxValueTotal.Add(d.TxValue)
	s.recompute()
}

func (s *DailyStat) recompute() {
	s.AvgBlockTime = 0
	if s.IntervalCount > 0 {
		s.AvgBlockTime = float64(s.IntervalSum) / float64(s.IntervalCount)
	}
	s.AvgBlockSize = 0
	if s.Blocks > 0 {
		s.AvgBlockSize = float64(s.SizeSum) / float64(s.Blocks)
	}
}

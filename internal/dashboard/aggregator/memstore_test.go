package aggregator

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"github.com/shopspring/decimal"
)

// memStore mirrors the Postgres stat stores: unique heights, inserts that
// report only new rows, additive daily upserts and full day recomputation on
// rollback.
type memStore struct {
	mu     sync.Mutex
	blocks map[uint64]model.BlockStat
	daily  map[string]model.DailyStat
}

func newMemStore() *memStore {
	return &memStore{
		blocks: make(map[uint64]model.BlockStat),
		daily:  make(map[string]model.DailyStat),
	}
}

func (s *memStore) BlockStat(_ context.Context, height uint64) (*model.BlockStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.blocks[height]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (s *memStore) LatestBlockStat(_ context.Context) (*model.BlockStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *model.BlockStat
	for h := range s.blocks {
		if latest == nil || h > latest.Height {
			row := s.blocks[h]
			latest = &row
		}
	}
	return latest, nil
}

func (s *memStore) sorted() []model.BlockStat {
	rows := make([]model.BlockStat, 0, len(s.blocks))
	for _, row := range s.blocks {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Height < rows[j].Height })
	return rows
}

func (s *memStore) RecentBlockStats(_ context.Context, upto uint64, limit int) ([]model.BlockStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.BlockStat
	for _, row := range s.sorted() {
		if row.Height <= upto {
			out = append(out, row)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (s *memStore) ApplyBlockStats(_ context.Context, rows []model.BlockStat) ([]model.BlockStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var inserted []model.BlockStat
	for _, row := range rows {
		if _, ok := s.blocks[row.Height]; ok {
			continue
		}
		s.blocks[row.Height] = row
		inserted = append(inserted, row)
	}
	for _, delta := range model.DailyDeltas(inserted) {
		day := s.daily[delta.Date]
		day.Add(delta)
		s.daily[delta.Date] = day
	}
	return inserted, nil
}

func (s *memStore) RollbackAbove(_ context.Context, height uint64) (model.Rollback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rb := model.Rollback{NewTip: height}
	affected := map[string]struct{}{}
	for h, row := range s.blocks {
		if h > height {
			affected[row.Date()] = struct{}{}
			delete(s.blocks, h)
			rb.DeletedRows++
		}
	}
	for date := range affected {
		rb.AffectedDays = append(rb.AffectedDays, date)
		delete(s.daily, date)
	}
	sort.Strings(rb.AffectedDays)

	var remaining []model.BlockStat
	for _, row := range s.sorted() {
		if _, ok := affected[row.Date()]; ok {
			remaining = append(remaining, row)
		}
	}
	for _, delta := range model.DailyDeltas(remaining) {
		day := s.daily[delta.Date]
		day.Add(delta)
		s.daily[delta.Date] = day
	}
	return rb, nil
}

func (s *memStore) RollingAverage(_ context.Context, upto uint64, window int) (model.RollingAverage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var rows []model.BlockStat
	for _, row := range s.sorted() {
		if row.Height <= upto {
			rows = append(rows, row)
		}
	}
	if len(rows) > window {
		rows = rows[len(rows)-window:]
	}
	avg := model.RollingAverage{Window: window, Blocks: len(rows), Fees: decimal.Zero}
	if len(rows) == 0 {
		return avg, nil
	}
	var interval, txs, size int64
	fees := decimal.Zero
	for _, row := range rows {
		interval += row.BlockInterval
		txs += int64(row.TxCount)
		size += int64(row.BlockSize)
		fees = fees.Add(row.Fees)
	}
	n := float64(len(rows))
	avg.BlockInterval = float64(interval) / n
	avg.TxCount = float64(txs) / n
	avg.BlockSize = float64(size) / n
	avg.Fees = fees.Div(decimal.NewFromInt(int64(len(rows))))
	return avg, nil
}

func (s *memStore) DailyStatsRange(_ context.Context, from, to string) ([]model.DailyStat, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.DailyStat
	for date, day := range s.daily {
		if date >= from && date <= to {
			out = append(out, day)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (s *memStore) day(date string) (model.DailyStat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.daily[date]
	return d, ok
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blocks)
}

// memChain serves raw facts, difficulty and tip from fixed data.
type memChain struct {
	blocks     map[uint64]model.RawBlock
	difficulty []model.DifficultyPoint
}

func newMemChain(blocks []model.RawBlock, difficulty ...model.DifficultyPoint) *memChain {
	c := &memChain{blocks: make(map[uint64]model.RawBlock, len(blocks)), difficulty: difficulty}
	for _, b := range blocks {
		c.blocks[b.Height] = b
	}
	return c
}

func (c *memChain) BlockFacts(_ context.Context, height uint64) (*model.RawBlock, error) {
	b, ok := c.blocks[height]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (c *memChain) BlockFactsRange(_ context.Context, start, end uint64) ([]model.RawBlock, error) {
	var out []model.RawBlock
	for h := start; h <= end; h++ {
		if b, ok := c.blocks[h]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (c *memChain) NearestDifficulty(_ context.Context, height uint64) (float64, error) {
	var d float64
	for _, p := range c.difficulty {
		if p.Height <= height && p.Difficulty > 0 {
			d = p.Difficulty
		}
	}
	return d, nil
}

func (c *memChain) Difficulties(_ context.Context, start, end uint64) ([]model.DifficultyPoint, error) {
	var out []model.DifficultyPoint
	for _, p := range c.difficulty {
		if p.Height >= start && p.Height <= end {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *memChain) CurrentTip(_ context.Context) (*model.ChainTip, error) {
	var tip *model.ChainTip
	for h, b := range c.blocks {
		if tip == nil || h > tip.Height {
			tip = &model.ChainTip{Height: h, Hash: b.Hash}
		}
	}
	if tip != nil {
		tip.TotalTxCount = uint64(len(c.blocks))
	}
	return tip, nil
}

type nopMetrics struct{}

func (nopMetrics) ObserveOperation(string, error, time.Time) {}
func (nopMetrics) ObserveInserted(string, int)               {}

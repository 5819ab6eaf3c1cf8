// Package rolling maintains fixed-capacity windows over the most recent block stats.
package rolling

import (
	"sort"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"github.com/shopspring/decimal"
)

// Window holds the highest-height block stats seen so far, up to its capacity,
// ordered by height ascending. Sums are kept exact so averages never drift.
type Window struct {
	capacity int
	items    []model.BlockStat

	intervalSum int64
	txSum       uint64
	sizeSum     uint64
	feesSum     decimal.Decimal
}

// NewWindow creates an empty window; capacity below 1 is raised to 1.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}
	return &Window{
		capacity: capacity,
		items:    make([]model.BlockStat, 0, capacity),
	}
}

// Capacity returns the maximum number of rows the window keeps.
func (w *Window) Capacity() int {
	return w.capacity
}

// Len returns the number of rows currently held.
func (w *Window) Len() int {
	return len(w.items)
}

// Append adds a row. Ascending heights are pushed to the back in O(1);
// an existing height is replaced, and a height below the oldest row of a
// full window is ignored.
func (w *Window) Append(row model.BlockStat) {
	n := len(w.items)
	if n == 0 || row.Height > w.items[n-1].Height {
		w.items = append(w.items, row)
		w.add(row)
		w.evict()
		return
	}

	idx := sort.Search(n, func(i int) bool { return w.items[i].Height >= row.Height })
	if idx < n && w.items[idx].Height == row.Height {
		w.sub(w.items[idx])
		w.items[idx] = row
		w.add(row)
		return
	}
	if n >= w.capacity && idx == 0 {
		return
	}

	w.items = append(w.items, model.BlockStat{})
	copy(w.items[idx+1:], w.items[idx:])
	w.items[idx] = row
	w.add(row)
	w.evict()
}

// Reset drops every row.
func (w *Window) Reset() {
	w.items = w.items[:0]
	w.intervalSum = 0
	w.txSum = 0
	w.sizeSum = 0
	w.feesSum = decimal.Zero
}

// Rows returns a copy of the window contents.
func (w *Window) Rows() []model.BlockStat {
	out := make([]model.BlockStat, len(w.items))
	copy(out, w.items)
	return out
}

// Average returns the arithmetic mean of the window fields, zero when empty.
func (w *Window) Average() model.RollingAverage {
	avg := model.RollingAverage{Window: w.capacity, Blocks: len(w.items), Fees: decimal.Zero}
	if len(w.items) == 0 {
		return avg
	}
	n := float64(len(w.items))
	avg.BlockInterval = float64(w.intervalSum) / n
	avg.TxCount = float64(w.txSum) / n
	avg.BlockSize = float64(w.sizeSum) / n
	avg.Fees = w.feesSum.Div(decimal.NewFromInt(int64(len(w.items))))
	return avg
}

func (w *Window) evict() {
	for len(w.items) > w.capacity {
		w.sub(w.items[0])
		w.items[0] = model.BlockStat{}
		w.items = w.items[1:]
	}
}

func (w *Window) add(row model.BlockStat) {
	w.intervalSum += row.BlockInterval
	w.txSum += row.TxCount
	w.sizeSum += row.BlockSize
	w.feesSum = w.feesSum.Add(row.Fees)
}

func (w *Window) sub(row model.BlockStat) {
	w.intervalSum -= row.BlockInterval
	w.txSum -= row.TxCount
	w.sizeSum -= row.BlockSize
	w.feesSum = w.feesSum.Sub(row.Fees)
}

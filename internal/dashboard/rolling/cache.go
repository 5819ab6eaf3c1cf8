package rolling

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
)

// DefaultWindowSizes are the dashboard windows in blocks.
var DefaultWindowSizes = []int{50, 500, 1500}

// ErrRebuildSuperseded is returned when the cache was invalidated or rebuilt
// again while a rebuild was loading rows.
var ErrRebuildSuperseded = errors.New("rolling cache rebuild superseded")

// Loader reads persisted block stats to rebuild windows from.
type Loader interface {
	RecentBlockStats(ctx context.Context, upto uint64, limit int) ([]model.BlockStat, error)
}

// Cache owns one window per configured size. It is process local and must be
// rebuilt from the store before it reports averages. Rows appended while a
// rebuild is loading are buffered and replayed on top of the loaded rows.
type Cache struct {
	mu      sync.RWMutex
	windows []*Window
	ready   bool
	upto    uint64

	generation uint64
	loading    bool
	pending    []model.BlockStat
}

// NewCache builds a cache with the given window sizes, or DefaultWindowSizes.
func NewCache(sizes ...int) *Cache {
	if len(sizes) == 0 {
		sizes = DefaultWindowSizes
	}
	sorted := append([]int(nil), sizes...)
	sort.Ints(sorted)

	windows := make([]*Window, 0, len(sorted))
	for _, size := range sorted {
		windows = append(windows, NewWindow(size))
	}
	return &Cache{windows: windows}
}

// Sizes returns the window capacities in ascending order.
func (c *Cache) Sizes() []int {
	sizes := make([]int, len(c.windows))
	for i, w := range c.windows {
		sizes[i] = w.Capacity()
	}
	return sizes
}

// MaxSize returns the largest window capacity.
func (c *Cache) MaxSize() int {
	if len(c.windows) == 0 {
		return 0
	}
	return c.windows[len(c.windows)-1].Capacity()
}

// Rebuild discards every window and reloads the most recent rows at or below upto.
// The loader runs without the lock held. On error the cache is left invalidated.
func (c *Cache) Rebuild(ctx context.Context, loader Loader, upto uint64) (int, error) {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.loading = true
	c.pending = nil
	c.mu.Unlock()

	rows, err := loader.RecentBlockStats(ctx, upto, c.MaxSize())

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return 0, ErrRebuildSuperseded
	}
	pending := c.pending
	c.loading = false
	c.pending = nil

	c.reset()
	if err != nil {
		return 0, fmt.Errorf("load recent block stats: %w", err)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].Height < rows[j].Height })
	for _, row := range rows {
		c.append(row)
	}
	c.ready = true
	c.upto = upto
	for _, row := range pending {
		c.append(row)
	}
	return len(rows), nil
}

// Append folds new rows into every window. Rows are dropped while the cache
// is cold and buffered while a rebuild is loading.
func (c *Cache) Append(rows ...model.BlockStat) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loading {
		c.pending = append(c.pending, rows...)
		return
	}
	if !c.ready {
		return
	}
	for _, row := range rows {
		c.append(row)
	}
}

func (c *Cache) append(row model.BlockStat) {
	for _, w := range c.windows {
		w.Append(row)
	}
	if row.Height > c.upto {
		c.upto = row.Height
	}
}

func (c *Cache) reset() {
	for _, w := range c.windows {
		w.Reset()
	}
	c.ready = false
	c.upto = 0
}

// Invalidate marks the cache as cold.
// A rebuild still loading at that point returns ErrRebuildSuperseded.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	c.loading = false
	c.pending = nil
	c.reset()
}

// Ready reports whether the cache reflects the store.
func (c *Cache) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// Height returns the highest height the cache has seen.
func (c *Cache) Height() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.upto
}

// Averages returns one average per window, smallest window first.
func (c *Cache) Averages() []model.RollingAverage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]model.RollingAverage, 0, len(c.windows))
	for _, w := range c.windows {
		out = append(out, w.Average())
	}
	return out
}

// Rows returns the contents of the window with the given capacity.
func (c *Cache) Rows(size int) []model.BlockStat {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, w := range c.windows {
		if w.Capacity() == size {
			return w.Rows()
		}
	}
	return nil
}

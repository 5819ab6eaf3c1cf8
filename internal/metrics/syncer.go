package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncerSyncTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "dashboard_syncer",
		Name:      "sync_total",
		Help:      "Count of sync iterations.",
	}, []string{"coin", "network", "status"})

	syncerSyncDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "dashboard_syncer",
		Name:      "sync_duration_seconds",
		Help:      "Duration of a sync iteration.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"coin", "network", "status"})

	syncerSyncBlocks = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "dashboard_syncer",
		Name:      "sync_blocks",
		Help:      "Number of blocks handled per sync iteration.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12), // 1..2048
	}, []string{"coin", "network"})

	syncerReorgsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "dashboard_syncer",
		Name:      "reorgs_total",
		Help:      "Count of handled chain reorganizations.",
	}, []string{"coin", "network"})

	syncerReorgDepth = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "dashboard_syncer",
		Name:      "reorg_depth_blocks",
		Help:      "Number of blocks rolled back per reorganization.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
	}, []string{"coin", "network"})

	syncerWatermark = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "blockinsight7000",
		Subsystem: "dashboard_syncer",
		Name:      "watermark_height",
		Help:      "Last block height confirmed by the dashboard.",
	}, []string{"coin", "network"})
)

// Syncer tracks the dashboard drivers.
type Syncer struct {
	coin    model.Coin
	network model.Network
}

// NewSyncer constructs a Syncer collector with defaults.
func NewSyncer(coin model.Coin, network model.Network) *Syncer {
	coin, network = labelsOrUnknown(coin, network)
	return &Syncer{coin: coin, network: network}
}

// ObserveSync records one sync iteration that handled blocks.
func (m Syncer) ObserveSync(err error, blocks int, started time.Time) {
	s := status(err)
	syncerSyncTotal.WithLabelValues(string(m.coin), string(m.network), s).Inc()
	syncerSyncDuration.WithLabelValues(string(m.coin), string(m.network), s).
		Observe(time.Since(started).Seconds())
	if blocks > 0 {
		syncerSyncBlocks.WithLabelValues(string(m.coin), string(m.network)).Observe(float64(blocks))
	}
}

// ObserveReorg records a rollback of depth blocks.
func (m Syncer) ObserveReorg(depth uint64) {
	syncerReorgsTotal.WithLabelValues(string(m.coin), string(m.network)).Inc()
	syncerReorgDepth.WithLabelValues(string(m.coin), string(m.network)).Observe(float64(depth))
}

// SetWatermark publishes the confirmed height.
func (m Syncer) SetWatermark(height uint64) {
	syncerWatermark.WithLabelValues(string(m.coin), string(m.network)).Set(float64(height))
}

package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aggregatorOperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "aggregator",
		Name:      "operations_total",
		Help:      "Count of aggregation engine operations.",
	}, []string{"operation", "coin", "network", "status"})

	aggregatorOperationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "aggregator",
		Name:      "operation_duration_seconds",
		Help:      "Duration of aggregation engine operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "coin", "network", "status"})

	aggregatorInsertedRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "aggregator",
		Name:      "inserted_block_stats_total",
		Help:      "Count of block stat rows inserted by this process.",
	}, []string{"operation", "coin", "network"})
)

// Aggregator tracks the aggregation engine.
type Aggregator struct {
	coin    model.Coin
	network model.Network
}

// NewAggregator constructs an Aggregator collector with defaults.
func NewAggregator(coin model.Coin, network model.Network) *Aggregator {
	coin, network = labelsOrUnknown(coin, network)
	return &Aggregator{coin: coin, network: network}
}

// ObserveOperation records outcome and duration of an engine operation.
func (m Aggregator) ObserveOperation(operation string, err error, started time.Time) {
	labels := []string{operation, string(m.coin), string(m.network), status(err)}
	aggregatorOperationsTotal.WithLabelValues(labels...).Inc()
	aggregatorOperationDuration.WithLabelValues(labels...).Observe(time.Since(started).Seconds())
}

// ObserveInserted adds rows newly written by operation.
func (m Aggregator) ObserveInserted(operation string, rows int) {
	if rows <= 0 {
		return
	}
	aggregatorInsertedRows.WithLabelValues(operation, string(m.coin), string(m.network)).Add(float64(rows))
}

package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodeRPCRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "rpc_client",
		Name:      "operations_total",
		Help:      "Count of node RPC operations.",
	}, []string{"operation", "coin", "network", "status"})
	nodeRPCRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of node RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "coin", "network", "status"})
)

// NodeRPC tracks calls to the node used as the canonical hash source.
type NodeRPC struct {
	coin    model.Coin
	network model.Network
}

// NewNodeRPC constructs a metrics collector for node RPC calls.
func NewNodeRPC(coin model.Coin, network model.Network) *NodeRPC {
	coin, network = labelsOrUnknown(coin, network)
	return &NodeRPC{coin: coin, network: network}
}

// Observe records a single RPC call outcome and duration.
func (m NodeRPC) Observe(operation string, err error, started time.Time) {
	labels := []string{operation, string(m.coin), string(m.network), status(err)}
	nodeRPCRequestsTotal.WithLabelValues(labels...).Inc()
	nodeRPCRequestDuration.WithLabelValues(labels...).Observe(time.Since(started).Seconds())
}

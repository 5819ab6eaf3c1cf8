// Package metrics exposes application metrics collectors.
package metrics

import (
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var repositoryBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15, 20, 30}

var (
	clickhouseRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "clickhouse_repository",
		Name:      "operations_total",
		Help:      "Count of raw fact repository operations.",
	}, []string{"operation", "coin", "network", "status"})
	clickhouseRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "clickhouse_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of raw fact repository operations.",
		Buckets:   repositoryBuckets,
	}, []string{"operation", "coin", "network", "status"})

	postgresRepositoryRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "blockinsight7000",
		Subsystem: "postgres_repository",
		Name:      "operations_total",
		Help:      "Count of dashboard stat store operations.",
	}, []string{"operation", "coin", "network", "status"})
	postgresRepositoryRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "blockinsight7000",
		Subsystem: "postgres_repository",
		Name:      "operation_duration_seconds",
		Help:      "Duration of dashboard stat store operations.",
		Buckets:   repositoryBuckets,
	}, []string{"operation", "coin", "network", "status"})
)

// Repository tracks operations of one storage backend.
type Repository struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewClickhouseRepository creates a collector for the raw fact repository.
func NewClickhouseRepository() *Repository {
	return &Repository{total: clickhouseRepositoryRequestsTotal, duration: clickhouseRepositoryRequestDuration}
}

// NewPostgresRepository creates a collector for the dashboard stat store.
func NewPostgresRepository() *Repository {
	return &Repository{total: postgresRepositoryRequestsTotal, duration: postgresRepositoryRequestDuration}
}

// Observe records duration and status of a repository operation.
func (m Repository) Observe(operation string, coin model.Coin, network model.Network, err error, started time.Time) {
	coin, network = labelsOrUnknown(coin, network)
	labels := []string{operation, string(coin), string(network), status(err)}
	m.total.WithLabelValues(labels...).Inc()
	m.duration.WithLabelValues(labels...).Observe(time.Since(started).Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

func labelsOrUnknown(coin model.Coin, network model.Network) (model.Coin, model.Network) {
	if coin == "" {
		coin = "unknown"
	}
	if network == "" {
		network = "unknown"
	}
	return coin, network
}

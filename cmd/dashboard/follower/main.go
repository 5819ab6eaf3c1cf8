package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/stack"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/syncer"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/metrics"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	Store         stack.Config     `group:"Store Options" env-namespace:"DASHBOARD"`
	BatchSize     uint64           `long:"batch-size" env:"DASHBOARD_FOLLOWER_BATCH_SIZE" description:"headers handled per sync pass" default:"500"`
	MaxReorgDepth uint64           `long:"max-reorg-depth" env:"DASHBOARD_FOLLOWER_MAX_REORG_DEPTH" description:"how far below the stored tip to look for a common ancestor" default:"100"`
	PollInterval  time.Duration    `long:"poll-interval" env:"DASHBOARD_FOLLOWER_POLL_INTERVAL" description:"wait between passes while catching up" default:"5s"`
	IdleInterval  time.Duration    `long:"idle-interval" env:"DASHBOARD_FOLLOWER_IDLE_INTERVAL" description:"wait between passes at the tip" default:"30s"`
	ZMQAddr       string           `long:"zmq-addr" env:"DASHBOARD_FOLLOWER_ZMQ_ADDR" description:"node hashblock ZMQ endpoint, needs the zmq build tag"`
	Node          stack.NodeConfig `group:"Node Options" env-namespace:"DASHBOARD_FOLLOWER"`
	MetricsAddr   string           `long:"metrics-addr" env:"DASHBOARD_FOLLOWER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args[1:]); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("dashboard follower failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	st, err := stack.Open(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	syncMetrics := metrics.NewSyncer(cfg.Store.Coin, cfg.Store.Network)
	adapter, err := syncer.NewAdapter(st.Engine, syncMetrics, logger)
	if err != nil {
		return fmt.Errorf("init sync adapter: %w", err)
	}

	opts := []syncer.FollowerOption{
		syncer.WithBatchSize(cfg.BatchSize),
		syncer.WithMaxReorgDepth(cfg.MaxReorgDepth),
		syncer.WithPollInterval(cfg.PollInterval, cfg.IdleInterval),
	}

	blockSignal, err := startBlockSignal(ctx, cfg.ZMQAddr, logger)
	if err != nil {
		return err
	}
	if blockSignal != nil {
		opts = append(opts, syncer.WithBlockSignal(blockSignal))
	}

	hashes, closeNode, err := stack.OpenHashSource(ctx, cfg.Node, cfg.Store.Coin, cfg.Store.Network, logger)
	if err != nil {
		return err
	}
	defer closeNode()
	if hashes != nil {
		opts = append(opts, syncer.WithHashSource(hashes))
	}

	follower, err := syncer.NewFollower(adapter, st.Stats, st.Raw, syncMetrics, logger, opts...)
	if err != nil {
		return fmt.Errorf("init follower: %w", err)
	}

	err = follower.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

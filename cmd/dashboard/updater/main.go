package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/stack"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/syncer"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/lockfile"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/metrics"
	"github.com/jessevdk/go-flags"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type config struct {
	Store         stack.Config     `group:"Store Options" env-namespace:"DASHBOARD"`
	LockFile      string           `long:"lock-file" env:"DASHBOARD_UPDATE_LOCK_FILE" description:"pid lock file guarding concurrent runs" default:"tmp/update_dashboard.lock"`
	ChunkSize     uint64           `long:"chunk-size" env:"DASHBOARD_UPDATE_CHUNK_SIZE" description:"blocks per processRange call" default:"1000"`
	MaxReorgDepth uint64           `long:"max-reorg-depth" env:"DASHBOARD_UPDATE_MAX_REORG_DEPTH" description:"how far below the stored tip to look for a common ancestor" default:"100"`
	Schedule      string           `long:"schedule" env:"DASHBOARD_UPDATE_SCHEDULE" description:"cron expression, runs once and exits when empty"`
	MetricsAddr   string           `long:"metrics-addr" env:"DASHBOARD_UPDATE_METRICS_ADDR" description:"address for metrics server in scheduled mode" default:":2113"`
	Node          stack.NodeConfig `group:"Node Options" env-namespace:"DASHBOARD_UPDATE"`
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
		logger.Fatal("dashboard update failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	st, err := stack.Open(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := []syncer.UpdaterOption{
		syncer.WithUpdateChunkSize(cfg.ChunkSize),
		syncer.WithUpdateMaxReorgDepth(cfg.MaxReorgDepth),
	}

	hashes, closeNode, err := stack.OpenHashSource(ctx, cfg.Node, cfg.Store.Coin, cfg.Store.Network, logger)
	if err != nil {
		return err
	}
	defer closeNode()
	if hashes != nil {
		opts = append(opts, syncer.WithUpdateHashSource(hashes))
	}

	updater, err := syncer.NewUpdater(
		st.Engine,
		st.Stats,
		st.Raw,
		metrics.NewSyncer(cfg.Store.Coin, cfg.Store.Network),
		logger,
		opts...,
	)
	if err != nil {
		return fmt.Errorf("init updater: %w", err)
	}

	if cfg.Schedule == "" {
		return updateOnce(ctx, cfg.LockFile, updater, logger)
	}
	return runScheduled(ctx, cfg, updater, logger)
}

// updateOnce runs a single pass under the lock. Lock contention is not an
// error: another run is already doing the work.
func updateOnce(ctx context.Context, lockPath string, updater *syncer.Updater, logger *zap.Logger) error {
	lock, err := lockfile.Acquire(lockPath)
	if err != nil {
		if errors.Is(err, lockfile.ErrLocked) {
			logger.Info("Another dashboard update is running", zap.String("lock_file", lockPath))
			return nil
		}
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release lock failed", zap.Error(err))
		}
	}()

	res, err := updater.Update(ctx)
	if err != nil {
		return err
	}
	logUpdate(logger, res)
	return nil
}

func runScheduled(ctx context.Context, cfg config, updater *syncer.Updater, logger *zap.Logger) error {
	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := c.AddFunc(cfg.Schedule, func() {
		if err := updateOnce(ctx, cfg.LockFile, updater, logger); err != nil {
			logger.Error("scheduled dashboard update failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("parse schedule %q: %w", cfg.Schedule, err)
	}

	logger.Info("Starting scheduled dashboard updates", zap.String("schedule", cfg.Schedule))
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}

func logUpdate(logger *zap.Logger, res syncer.UpdateResult) {
	if res.Rollback == nil {
		return
	}
	logger.Info("Rolled back reorganized blocks",
		zap.Uint64("rolled_back_to", res.Rollback.NewTip),
		zap.Int64("deleted_rows", res.Rollback.DeletedRows),
		zap.Strings("affected_days", res.Rollback.AffectedDays),
	)
}

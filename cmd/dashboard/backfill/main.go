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
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
)

type config struct {
	Store         stack.Config `group:"Store Options" env-namespace:"DASHBOARD"`
	Full          bool         `long:"full" env:"DASHBOARD_BACKFILL_FULL" description:"process the whole history instead of the last 30 days"`
	RecomputeDays bool         `long:"recompute-days" env:"DASHBOARD_BACKFILL_RECOMPUTE_DAYS" description:"recompute daily stats of the range from block rows afterwards"`
	ChunkSize     uint64       `long:"chunk-size" env:"DASHBOARD_BACKFILL_CHUNK_SIZE" description:"blocks per processRange call" default:"1000"`
	Rate          int          `long:"rate" env:"DASHBOARD_BACKFILL_RATE" description:"max chunks per second, 0 disables pacing"`
	Span          uint64       `long:"span" env:"DASHBOARD_BACKFILL_SPAN" description:"default history span in blocks" default:"43200"`
	Args          struct {
		Start uint64 `positional-arg-name:"start"`
		End   uint64 `positional-arg-name:"end"`
	} `positional-args:"yes"`
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
		logger.Fatal("dashboard backfill failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	st, err := stack.Open(ctx, cfg.Store, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := []syncer.BackfillerOption{
		syncer.WithBackfillChunkSize(cfg.ChunkSize),
		syncer.WithBackfillSpan(cfg.Span),
	}
	if cfg.Rate > 0 {
		opts = append(opts, syncer.WithBackfillRate(cfg.Rate))
	}
	backfiller, err := syncer.NewBackfiller(st.Engine, st.Stats, st.Raw, logger, opts...)
	if err != nil {
		return fmt.Errorf("init backfiller: %w", err)
	}

	report, err := backfiller.Backfill(ctx, syncer.BackfillRequest{
		Start:         cfg.Args.Start,
		End:           cfg.Args.End,
		Full:          cfg.Full,
		RecomputeDays: cfg.RecomputeDays,
	})
	if err != nil {
		return err
	}

	logger.Info("Backfill finished",
		zap.Uint64("start", report.Start),
		zap.Uint64("end", report.End),
		zap.Int("inserted", report.Inserted),
		zap.Int("recomputed_days", len(report.Recomputed)),
		zap.Duration("took", report.Took),
	)
	return nil
}

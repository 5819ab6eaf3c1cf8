package aggregator

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	BlockStatStore interface {
		BlockStat(ctx context.Context, height uint64) (*model.BlockStat, error)
		LatestBlockStat(ctx context.Context) (*model.BlockStat, error)
		RecentBlockStats(ctx context.Context, upto uint64, limit int) ([]model.BlockStat, error)
		ApplyBlockStats(ctx context.Context, rows []model.BlockStat) ([]model.BlockStat, error)
		RollbackAbove(ctx context.Context, height uint64) (model.Rollback, error)
		RollingAverage(ctx context.Context, upto uint64, window int) (model.RollingAverage, error)
	}
	DailyStatStore interface {
		DailyStatsRange(ctx context.Context, from, to string) ([]model.DailyStat, error)
	}
	FactSource interface {
		BlockFacts(ctx context.Context, height uint64) (*model.RawBlock, error)
		BlockFactsRange(ctx context.Context, start, end uint64) ([]model.RawBlock, error)
	}
	DifficultySource interface {
		NearestDifficulty(ctx context.Context, height uint64) (float64, error)
		Difficulties(ctx context.Context, start, end uint64) ([]model.DifficultyPoint, error)
	}
	ChainTipSource interface {
		CurrentTip(ctx context.Context) (*model.ChainTip, error)
	}
	Metrics interface {
		ObserveOperation(operation string, err error, started time.Time)
		ObserveInserted(operation string, rows int)
	}
)

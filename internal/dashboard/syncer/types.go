package syncer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/aggregator"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Engine interface {
		RebuildCache(ctx context.Context, upto uint64) error
		ProcessNewBlock(ctx context.Context, height uint64, hash string, blockTime int64) (aggregator.Outcome, error)
		ProcessRange(ctx context.Context, start, end uint64) (int, error)
		HandleReorg(ctx context.Context, newTip uint64) (model.Rollback, error)
	}
	BlockStore interface {
		BlockStat(ctx context.Context, height uint64) (*model.BlockStat, error)
		LatestBlockStat(ctx context.Context) (*model.BlockStat, error)
		BlockStatsRange(ctx context.Context, start, end uint64) ([]model.BlockStat, error)
		RecomputeDailyStats(ctx context.Context, dates []string) error
	}
	RawChain interface {
		MaxContiguousProcessedHeight(ctx context.Context) (uint64, bool, error)
		BlockHeaders(ctx context.Context, start, end uint64) ([]model.BlockHeader, error)
		BlockHash(ctx context.Context, height uint64) (string, error)
	}
	// HashSource reports the canonical hash at a height, "" when unknown.
	HashSource interface {
		CanonicalHash(ctx context.Context, height uint64) (string, error)
	}
	Metrics interface {
		ObserveSync(err error, blocks int, started time.Time)
		ObserveReorg(depth uint64)
		SetWatermark(height uint64)
	}
)

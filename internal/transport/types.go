package transport

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Pinger interface {
		Ping(ctx context.Context) error
	}
	DashboardSource interface {
		DashboardData(ctx context.Context) (*model.DashboardSnapshot, error)
		RollingAverages(ctx context.Context) ([]model.RollingAverage, error)
	}
)

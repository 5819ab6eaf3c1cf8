// Package transport exposes gRPC/HTTP handlers.
package transport

import (
	"context"
	"time"

	blockinsight7000v1 "github.com/goodnatureofminers/blockinsight7000-proto/pkg/blockinsight7000/v1"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const healthTimeout = 3 * time.Second

// ExplorerHandler implements ExplorerServiceServer.
type ExplorerHandler struct {
	blockinsight7000v1.UnimplementedExplorerServiceServer
	logger  *zap.Logger
	pingers map[string]Pinger
}

// NewExplorerHandler returns an ExplorerHandler that is healthy only while
// every named dependency answers a ping.
func NewExplorerHandler(logger *zap.Logger, pingers map[string]Pinger) blockinsight7000v1.ExplorerServiceServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExplorerHandler{
		logger:  logger.Named("explorer"),
		pingers: pingers,
	}
}

// Health reports server health.
func (h *ExplorerHandler) Health(ctx context.Context, _ *blockinsight7000v1.HealthRequest) (*blockinsight7000v1.HealthResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	for name, p := range h.pingers {
		if err := p.Ping(ctx); err != nil {
			h.logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
			return nil, status.Errorf(codes.Unavailable, "%s unavailable", name)
		}
	}
	return &blockinsight7000v1.HealthResponse{
		Status:      blockinsight7000v1.HealthStatus_HEALTH_STATUS_HEALTHY,
		Description: "",
	}, nil
}

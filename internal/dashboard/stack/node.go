package stack

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/dashboard/model"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/internal/pkg/btcd/rpcclient"
	"go.uber.org/zap"
)

// NodeConfig is the optional node RPC used as the canonical hash source.
type NodeConfig struct {
	RPCURL      string `long:"rpc-url" env:"RPC_URL" description:"node RPC URL for canonical hashes, the raw store is used when empty"`
	RPCUser     string `long:"rpc-user" env:"RPC_USER" description:"node RPC username"`
	RPCPassword string `long:"rpc-password" env:"RPC_PASSWORD" description:"node RPC password"`
}

// OpenHashSource dials the node and checks it answers. It returns a nil
// source and a no-op close func when no RPC URL is configured.
func OpenHashSource(ctx context.Context, cfg NodeConfig, coin model.Coin, network model.Network, logger *zap.Logger) (*bitcoin.HashSource, func(), error) {
	noop := func() {}
	if cfg.RPCURL == "" {
		return nil, noop, nil
	}

	client, err := rpcclient.Dial(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		return nil, noop, fmt.Errorf("init node rpc client: %w", err)
	}
	closeClient := func() {
		client.Shutdown()
		client.WaitForShutdown()
	}

	node := rpcclient.NewObservedClient(client, metrics.NewNodeRPC(coin, network))
	hashes, err := bitcoin.NewHashSource(node)
	if err != nil {
		closeClient()
		return nil, noop, err
	}
	tip, err := hashes.TipHeight(ctx)
	if err != nil {
		closeClient()
		return nil, noop, fmt.Errorf("reach node rpc: %w", err)
	}
	logger.Info("using node for canonical hashes", zap.Uint64("node_tip", tip))
	return hashes, closeClient, nil
}

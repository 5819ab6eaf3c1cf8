// Package bitcoin resolves canonical block hashes from a bitcoind compatible node.
package bitcoin

import (
	"context"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-dashboard/pkg/safe"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type Node interface {
	GetBlockCount() (int64, error)
	GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
}

// HashSource answers which hash the node considers canonical at a height.
type HashSource struct {
	node Node
}

func NewHashSource(node Node) (*HashSource, error) {
	if node == nil {
		return nil, errors.New("node client is required")
	}
	return &HashSource{node: node}, nil
}

// CanonicalHash returns the node's hash at height, or "" when the node has not
// reached it yet.
func (s *HashSource) CanonicalHash(ctx context.Context, height uint64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	h, err := safe.Int64(height)
	if err != nil {
		return "", fmt.Errorf("convert height: %w", err)
	}
	count, err := s.node.GetBlockCount()
	if err != nil {
		return "", fmt.Errorf("get block count: %w", err)
	}
	if h > count {
		return "", nil
	}
	hash, err := s.node.GetBlockHash(h)
	if err != nil {
		return "", fmt.Errorf("get block hash %d: %w", height, err)
	}
	return hash.String(), nil
}

// TipHeight returns the node's best height.
func (s *HashSource) TipHeight(ctx context.Context) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	count, err := s.node.GetBlockCount()
	if err != nil {
		return 0, fmt.Errorf("get block count: %w", err)
	}
	return safe.Uint64(count)
}

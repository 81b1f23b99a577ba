package block

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/nitk/memory-vault/internal/logger"
)

// DefaultTimestampCacheSize is used when no cache size is configured
const DefaultTimestampCacheSize = 4096

// BlockProvider provides cached access to block timestamps.
// Logs of the same block share one RPC call; the timestamp of a mined block never changes.
//
//go:generate mockgen -source=block.go -destination=../mocks/block_provider.go -package=mocks -mock_names=BlockProvider=MockBlockProvider,BlockFetcher=MockBlockFetcher
type BlockProvider interface {
	// GetBlockTimestamp returns the timestamp for a given block number, potentially from cache
	GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// BlockFetcher is the interface for fetching block information from the blockchain
type BlockFetcher interface {
	// FetchBlockTimestamp fetches the timestamp for a given block number
	FetchBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error)
}

// Config holds configuration for the BlockProvider
type Config struct {
	// TimestampCacheSize is the number of block timestamps kept in memory
	TimestampCacheSize int
}

type blockProvider struct {
	fetcher    BlockFetcher
	timestamps *lru.Cache[uint64, time.Time]
}

// NewBlockProvider creates a new BlockProvider with an LRU timestamp cache
func NewBlockProvider(fetcher BlockFetcher, config Config) (BlockProvider, error) {
	size := config.TimestampCacheSize
	if size <= 0 {
		size = DefaultTimestampCacheSize
	}

	cache, err := lru.New[uint64, time.Time](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create timestamp cache: %w", err)
	}

	return &blockProvider{
		fetcher:    fetcher,
		timestamps: cache,
	}, nil
}

// GetBlockTimestamp returns the timestamp for a given block number, using the cache when possible
func (p *blockProvider) GetBlockTimestamp(ctx context.Context, blockNumber uint64) (time.Time, error) {
	if timestamp, ok := p.timestamps.Get(blockNumber); ok {
		logger.DebugCtx(ctx, "Using cached block timestamp",
			zap.Uint64("block_number", blockNumber),
			zap.Time("timestamp", timestamp))
		return timestamp, nil
	}

	logger.DebugCtx(ctx, "Fetching block timestamp from blockchain provider",
		zap.Uint64("block_number", blockNumber))
	timestamp, err := p.fetcher.FetchBlockTimestamp(ctx, blockNumber)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to fetch block timestamp for block %d: %w", blockNumber, err)
	}

	p.timestamps.Add(blockNumber, timestamp)

	return timestamp, nil
}

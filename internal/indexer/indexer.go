package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/nitk/memory-vault/internal/adapter"
	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/logger"
	"github.com/nitk/memory-vault/internal/messaging"
	"github.com/nitk/memory-vault/internal/normalizer"
	"github.com/nitk/memory-vault/internal/store"
)

// Config holds the configuration for the event indexer
type Config struct {
	ChainID         domain.Chain
	StartBlock      uint64
	CursorSaveFreq  uint64        // Save cursor every N blocks
	CursorSaveDelay time.Duration // Or save cursor every N seconds
	// RetryInitialInterval is the first delay before re-subscribing
	RetryInitialInterval time.Duration
	// MaxRetryElapsed stops re-subscribing once this much time passed without progress
	MaxRetryElapsed time.Duration
}

// Indexer defines the interface for the event indexer
//
//go:generate mockgen -source=indexer.go -destination=../mocks/indexer.go -package=mocks -mock_names=Indexer=MockIndexer
type Indexer interface {
	// Run follows the vault contract logs until ctx is done or re-subscribing gives up
	Run(ctx context.Context) error
	// Close closes the indexer and cleans up resources
	Close()
}

// indexer feeds vault contract logs through the normalizer and announces the stored records
type indexer struct {
	subscriber messaging.Subscriber
	normalizer normalizer.Normalizer
	publisher  messaging.Publisher
	store      store.Store
	config     Config
	clock      adapter.Clock

	// nextBlock is where a new subscription starts: the block of the last handled log
	nextBlock      uint64
	lastSavedBlock uint64
	lastSaveTime   time.Time
}

// NewIndexer creates a new event indexer
func NewIndexer(
	sub messaging.Subscriber,
	norm normalizer.Normalizer,
	pub messaging.Publisher,
	st store.Store,
	cfg Config,
	clock adapter.Clock,
) Indexer {
	return &indexer{
		subscriber: sub,
		normalizer: norm,
		publisher:  pub,
		store:      st,
		config:     cfg,
		clock:      clock,
	}
}

// Run follows the vault contract logs until ctx is done or re-subscribing gives up
func (i *indexer) Run(ctx context.Context) error {
	startBlock, err := i.resolveStartBlock(ctx)
	if err != nil {
		return err
	}

	i.nextBlock = startBlock
	i.lastSaveTime = i.clock.Now()

	b := backoff.NewExponentialBackOff()
	if i.config.RetryInitialInterval > 0 {
		b.InitialInterval = i.config.RetryInitialInterval
	}
	b.MaxElapsedTime = i.config.MaxRetryElapsed

	operation := func() error {
		logger.InfoCtx(ctx, "Starting log subscription",
			zap.String("chain", string(i.config.ChainID)),
			zap.Uint64("from_block", i.nextBlock))

		progressed := false
		err := i.subscriber.SubscribeLogs(ctx, i.nextBlock, i.handleLog(ctx, &progressed))
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		if err != nil && progressed {
			// The retry budget only covers time spent without making progress
			b.Reset()
		}
		return err
	}

	notify := func(err error, next time.Duration) {
		logger.WarnCtx(ctx, "Log subscription dropped, re-subscribing",
			zap.Error(err),
			zap.Duration("retry_in", next),
			zap.Uint64("from_block", i.nextBlock))
	}

	err = backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notify)
	i.flushCursor(ctx)

	return err
}

// resolveStartBlock picks the configured block, else the saved cursor, else the latest block
func (i *indexer) resolveStartBlock(ctx context.Context) (uint64, error) {
	chain := string(i.config.ChainID)

	if i.config.StartBlock > 0 {
		logger.InfoCtx(ctx, "Starting from configured block", zap.String("chain", chain), zap.Uint64("block", i.config.StartBlock))
		return i.config.StartBlock, nil
	}

	lastBlock, err := i.store.GetBlockCursor(ctx, chain)
	if err != nil {
		return 0, fmt.Errorf("failed to get block cursor: %w", err)
	}

	if lastBlock > 0 {
		// The cursor block is replayed; records are upserted so this is harmless
		logger.InfoCtx(ctx, "Resuming from last processed block", zap.String("chain", chain), zap.Uint64("block", lastBlock))
		i.lastSavedBlock = lastBlock
		return lastBlock, nil
	}

	latestBlock, err := i.subscriber.GetLatestBlock(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block number: %w", err)
	}
	logger.InfoCtx(ctx, "Starting from latest block", zap.String("chain", chain), zap.Uint64("block", latestBlock))

	return latestBlock, nil
}

// handleLog normalizes a log, publishes the indexed event and advances the cursor
func (i *indexer) handleLog(ctx context.Context, progressed *bool) messaging.LogHandler {
	return func(log types.Log, blockTimestamp time.Time) error {
		event, err := i.normalizer.HandleLog(ctx, log, blockTimestamp)
		if err != nil {
			return fmt.Errorf("failed to normalize log: %w", err)
		}

		if event != nil {
			if err := i.publisher.PublishEvent(ctx, event); err != nil {
				return fmt.Errorf("failed to publish event %s: %w", event.RecordID, err)
			}
		}

		*progressed = true
		i.nextBlock = log.BlockNumber

		// Save cursor periodically (every N blocks or N seconds)
		shouldSave := log.BlockNumber-i.lastSavedBlock >= i.config.CursorSaveFreq ||
			i.clock.Since(i.lastSaveTime) >= i.config.CursorSaveDelay
		if shouldSave {
			i.saveCursor(ctx, log.BlockNumber)
		}

		return nil
	}
}

// flushCursor saves the position reached when the indexer stops
func (i *indexer) flushCursor(ctx context.Context) {
	if i.nextBlock > i.lastSavedBlock {
		i.saveCursor(context.WithoutCancel(ctx), i.nextBlock)
	}
}

func (i *indexer) saveCursor(ctx context.Context, blockNumber uint64) {
	if err := i.store.SetBlockCursor(ctx, string(i.config.ChainID), blockNumber); err != nil {
		logger.WarnCtx(ctx, "Failed to save block cursor", zap.Error(err), zap.Uint64("block", blockNumber))
		return
	}

	i.lastSavedBlock = blockNumber
	i.lastSaveTime = i.clock.Now()
}

// Close closes the indexer and cleans up resources
func (i *indexer) Close() {
	i.subscriber.Close()
	i.publisher.Close()
}

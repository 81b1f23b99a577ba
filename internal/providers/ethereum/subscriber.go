package ethereum

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/nitk/memory-vault/internal/adapter"
	"github.com/nitk/memory-vault/internal/block"
	"github.com/nitk/memory-vault/internal/contract"
	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/logger"
	"github.com/nitk/memory-vault/internal/messaging"
)

// DefaultBackfillBatchSize is the block range of one eth_getLogs call when catching up
const DefaultBackfillBatchSize = 2000

// Config holds the configuration for Ethereum subscription
type Config struct {
	ChainID         domain.Chain // e.g., "eip155:11155111" for Sepolia
	ContractAddress common.Address
	// BackfillBatchSize bounds the block range of each historical log query
	BackfillBatchSize uint64
}

type ethSubscriber struct {
	client adapter.EthClient
	blocks block.BlockProvider
	config Config
}

// NewSubscriber creates a subscriber to the logs of the vault contract
func NewSubscriber(cfg Config, ethereumClient adapter.EthClient, blocks block.BlockProvider) messaging.Subscriber {
	if cfg.BackfillBatchSize == 0 {
		cfg.BackfillBatchSize = DefaultBackfillBatchSize
	}

	return &ethSubscriber{
		client: ethereumClient,
		blocks: blocks,
		config: cfg,
	}
}

// filterQuery selects the vault contract logs of every handled event
func (s *ethSubscriber) filterQuery() ethereum.FilterQuery {
	return ethereum.FilterQuery{
		Addresses: []common.Address{s.config.ContractAddress},
		Topics:    [][]common.Hash{contract.EventTopics()},
	}
}

// SubscribeLogs catches up on historical logs from fromBlock, then follows new logs.
// The live subscription is opened before catching up; live logs already covered by the
// catch-up are skipped. A handler error ends the subscription.
func (s *ethSubscriber) SubscribeLogs(ctx context.Context, fromBlock uint64, handler messaging.LogHandler) error {
	logs := make(chan types.Log)
	sub, err := s.client.SubscribeFilterLogs(ctx, s.filterQuery(), logs)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSubscriptionFailed, err)
	}
	defer func() {
		logger.InfoCtx(ctx, "Unsubscribing from vault contract logs")
		sub.Unsubscribe()
	}()

	latest, err := s.GetLatestBlock(ctx)
	if err != nil {
		return err
	}

	if fromBlock <= latest {
		if err := s.backfill(ctx, fromBlock, latest, handler); err != nil {
			return err
		}
	}

	logger.InfoCtx(ctx, "Following vault contract logs",
		zap.String("chain", string(s.config.ChainID)),
		zap.Uint64("after_block", latest))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-sub.Err():
			return fmt.Errorf("subscription error: %w", err)
		case vLog := <-logs:
			if vLog.BlockNumber <= latest || vLog.BlockNumber < fromBlock {
				continue
			}
			if err := s.deliver(ctx, vLog, handler); err != nil {
				return err
			}
		}
	}
}

// backfill delivers the logs of [from, to] in batches of BackfillBatchSize blocks
func (s *ethSubscriber) backfill(ctx context.Context, from, to uint64, handler messaging.LogHandler) error {
	logger.InfoCtx(ctx, "Catching up on vault contract logs",
		zap.Uint64("from_block", from),
		zap.Uint64("to_block", to))

	for start := from; start <= to; start += s.config.BackfillBatchSize {
		end := min(start+s.config.BackfillBatchSize-1, to)

		query := s.filterQuery()
		query.FromBlock = new(big.Int).SetUint64(start)
		query.ToBlock = new(big.Int).SetUint64(end)

		logs, err := s.client.FilterLogs(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to filter logs in blocks %d-%d: %w", start, end, err)
		}

		for _, vLog := range logs {
			if err := s.deliver(ctx, vLog, handler); err != nil {
				return err
			}
		}
	}

	return nil
}

// deliver resolves the block timestamp of a log and hands it to the handler
func (s *ethSubscriber) deliver(ctx context.Context, vLog types.Log, handler messaging.LogHandler) error {
	if vLog.Removed {
		logger.WarnCtx(ctx, "Skipping log removed by a reorg",
			zap.String("tx_hash", vLog.TxHash.Hex()),
			zap.Uint("log_index", vLog.Index))
		return nil
	}

	timestamp, err := s.blocks.GetBlockTimestamp(ctx, vLog.BlockNumber)
	if err != nil {
		return err
	}

	if err := handler(vLog, timestamp); err != nil {
		return fmt.Errorf("failed to handle log %s#%d: %w", vLog.TxHash.Hex(), vLog.Index, err)
	}

	return nil
}

// GetLatestBlock returns the latest block number
func (s *ethSubscriber) GetLatestBlock(ctx context.Context) (uint64, error) {
	header, err := s.client.HeaderByNumber(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return header.Number.Uint64(), nil
}

// Close closes the connection
func (s *ethSubscriber) Close() {
	if s.client == nil {
		return
	}

	s.client.Close()
	logger.Info("Ethereum WebSocket connection closed")
}

package messaging

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
)

// LogHandler is called for each vault contract log, in chain order, with the timestamp of its block
type LogHandler func(log types.Log, blockTimestamp time.Time) error

// Subscriber defines the interface for following the logs of the vault contract
//
//go:generate mockgen -source=subscriber.go -destination=../mocks/subscriber.go -package=mocks -mock_names=Subscriber=MockSubscriber
type Subscriber interface {
	// SubscribeLogs delivers logs from fromBlock onwards until ctx is done or the subscription drops
	SubscribeLogs(ctx context.Context, fromBlock uint64, handler LogHandler) error

	// GetLatestBlock returns the latest block number
	GetLatestBlock(ctx context.Context) (uint64, error)

	// Close closes the connection and cleans up resources
	Close()
}

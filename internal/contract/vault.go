package contract

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/nitk/memory-vault/internal/adapter"
	"github.com/nitk/memory-vault/internal/logger"
)

// ErrTransactionReverted is returned when a mined transaction has a failed status
var ErrTransactionReverted = errors.New("transaction reverted")

// DefaultReceiptPollInterval is used when no poll interval is configured
const DefaultReceiptPollInterval = 2 * time.Second

// MemoryVault is a handle on the deployed vault contract bound to a signer
//
//go:generate mockgen -source=vault.go -destination=../mocks/vault.go -package=mocks -mock_names=MemoryVault=MockMemoryVault,Transaction=MockTransaction,Transactor=MockTransactor,ReceiptReader=MockReceiptReader
type MemoryVault interface {
	// Address returns the contract address
	Address() common.Address
	// MintMemory submits a mintMemory transaction and returns it without waiting for it to be mined
	MintMemory(ctx context.Context, ipfsHash string, eventType string, date *big.Int, tags []string) (Transaction, error)
}

// Transaction is a submitted transaction that can be waited on
type Transaction interface {
	// Hash returns the transaction hash
	Hash() common.Hash
	// Wait blocks until the transaction is mined and fails if it reverted
	Wait(ctx context.Context) (*types.Receipt, error)
}

// Transactor submits contract calls. *bind.BoundContract implements it.
type Transactor interface {
	Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error)
}

// ReceiptReader reads transaction receipts
type ReceiptReader interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// VaultConfig holds the settings of a vault handle
type VaultConfig struct {
	Address             common.Address
	ReceiptPollInterval time.Duration
}

type memoryVault struct {
	config     VaultConfig
	transactor Transactor
	receipts   ReceiptReader
	opts       *bind.TransactOpts
	clock      adapter.Clock
}

// Bind binds the vault ABI at the configured address to a backend
func Bind(address common.Address, backend bind.ContractBackend) *bind.BoundContract {
	abi := ABI()
	return bind.NewBoundContract(address, abi, backend, backend, backend)
}

// NewMemoryVault creates a vault handle that signs with opts
func NewMemoryVault(cfg VaultConfig, transactor Transactor, receipts ReceiptReader, opts *bind.TransactOpts, clock adapter.Clock) MemoryVault {
	if cfg.ReceiptPollInterval <= 0 {
		cfg.ReceiptPollInterval = DefaultReceiptPollInterval
	}

	return &memoryVault{
		config:     cfg,
		transactor: transactor,
		receipts:   receipts,
		opts:       opts,
		clock:      clock,
	}
}

// Address returns the contract address
func (v *memoryVault) Address() common.Address {
	return v.config.Address
}

// MintMemory submits a mintMemory transaction
func (v *memoryVault) MintMemory(ctx context.Context, ipfsHash string, eventType string, date *big.Int, tags []string) (Transaction, error) {
	opts := *v.opts
	opts.Context = ctx

	tx, err := v.transactor.Transact(&opts, MethodMintMemory, ipfsHash, eventType, date, tags)
	if err != nil {
		return nil, fmt.Errorf("failed to submit %s: %w", MethodMintMemory, err)
	}

	logger.InfoCtx(ctx, "Submitted mint transaction",
		zap.String("txHash", tx.Hash().Hex()),
		zap.String("ipfsHash", ipfsHash))

	return &pendingTransaction{
		hash:     tx.Hash(),
		receipts: v.receipts,
		clock:    v.clock,
		interval: v.config.ReceiptPollInterval,
	}, nil
}

type pendingTransaction struct {
	hash     common.Hash
	receipts ReceiptReader
	clock    adapter.Clock
	interval time.Duration
}

// NewPendingTransaction wraps a submitted transaction hash
func NewPendingTransaction(hash common.Hash, receipts ReceiptReader, clock adapter.Clock, interval time.Duration) Transaction {
	return &pendingTransaction{hash: hash, receipts: receipts, clock: clock, interval: interval}
}

func (t *pendingTransaction) Hash() common.Hash {
	return t.hash
}

// Wait polls for the receipt until the transaction is mined or ctx is done
func (t *pendingTransaction) Wait(ctx context.Context) (*types.Receipt, error) {
	for {
		receipt, err := t.receipts.TransactionReceipt(ctx, t.hash)
		switch {
		case err == nil:
			if receipt.Status != types.ReceiptStatusSuccessful {
				return receipt, fmt.Errorf("%w: %s", ErrTransactionReverted, t.hash.Hex())
			}
			return receipt, nil
		case !errors.Is(err, ethereum.NotFound):
			return nil, fmt.Errorf("failed to get receipt: %w", err)
		}

		logger.DebugCtx(ctx, "Transaction not yet mined", zap.String("txHash", t.hash.Hex()))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.clock.After(t.interval):
		}
	}
}

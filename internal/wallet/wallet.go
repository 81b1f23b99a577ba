package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"

	"github.com/nitk/memory-vault/internal/adapter"
	"github.com/nitk/memory-vault/internal/contract"
	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/logger"
)

var (
	// ErrNotConnected is returned when disconnecting a wallet that is not connected
	ErrNotConnected = errors.New("wallet is not connected")
	// ErrNoSigningKey is returned when neither a private key nor a keystore is configured
	ErrNoSigningKey = errors.New("no signing key configured")
	// ErrChainMismatch is returned when the RPC endpoint serves a different chain than configured
	ErrChainMismatch = errors.New("connected chain does not match the configured chain")
)

// Config holds the wallet settings
type Config struct {
	RPCURL          string
	Chain           domain.Chain
	ContractAddress string
	// PrivateKey is a hex encoded secp256k1 key; it takes precedence over KeystorePath
	PrivateKey          string
	KeystorePath        string
	Passphrase          string
	ReceiptPollInterval time.Duration
}

// Connection is an account bound to the vault contract
type Connection struct {
	Account common.Address
	Vault   contract.MemoryVault
}

// Connector connects and disconnects the signing wallet
//
//go:generate mockgen -source=wallet.go -destination=../mocks/wallet.go -package=mocks -mock_names=Connector=MockConnector
type Connector interface {
	// Connect dials the chain, unlocks the signing key and binds the vault contract
	Connect(ctx context.Context) (*Connection, error)
	// Disconnect closes the chain connection
	Disconnect(ctx context.Context) error
}

type connector struct {
	config Config
	dialer adapter.EthClientDialer
	fs     adapter.FileSystem
	clock  adapter.Clock

	mu      sync.Mutex
	backend adapter.EthBackend
}

// NewConnector creates a wallet connector
func NewConnector(cfg Config, dialer adapter.EthClientDialer, fs adapter.FileSystem, clock adapter.Clock) Connector {
	return &connector{
		config: cfg,
		dialer: dialer,
		fs:     fs,
		clock:  clock,
	}
}

// Connect dials the chain, unlocks the signing key and binds the vault contract
func (c *connector) Connect(ctx context.Context) (*Connection, error) {
	if !common.IsHexAddress(c.config.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address: %q", c.config.ContractAddress)
	}
	expectedChainID, err := c.config.Chain.ChainID()
	if err != nil {
		return nil, err
	}

	key, err := c.loadKey()
	if err != nil {
		return nil, err
	}
	account := crypto.PubkeyToAddress(key.PublicKey)

	backend, err := c.dialer.DialBackend(ctx, c.config.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial RPC: %w", err)
	}

	chainID, err := backend.ChainID(ctx)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if chainID.Cmp(expectedChainID) != 0 {
		backend.Close()
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrChainMismatch, expectedChainID, chainID)
	}

	opts, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		backend.Close()
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}

	address := common.HexToAddress(c.config.ContractAddress)
	vault := contract.NewMemoryVault(
		contract.VaultConfig{
			Address:             address,
			ReceiptPollInterval: c.config.ReceiptPollInterval,
		},
		contract.Bind(address, backend),
		backend,
		opts,
		c.clock,
	)

	c.mu.Lock()
	previous := c.backend
	c.backend = backend
	c.mu.Unlock()
	if previous != nil {
		previous.Close()
	}

	logger.InfoCtx(ctx, "Wallet connected",
		zap.String("account", account.Hex()),
		zap.String("chain", string(c.config.Chain)),
		zap.String("contract", address.Hex()))

	return &Connection{
		Account: account,
		Vault:   vault,
	}, nil
}

// Disconnect closes the chain connection
func (c *connector) Disconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.backend == nil {
		return ErrNotConnected
	}

	c.backend.Close()
	c.backend = nil
	logger.InfoCtx(ctx, "Wallet disconnected")

	return nil
}

// loadKey reads the signing key from the configured hex key or keystore file
func (c *connector) loadKey() (*ecdsa.PrivateKey, error) {
	if c.config.PrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(c.config.PrivateKey), "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid private key: %w", err)
		}
		return key, nil
	}

	if c.config.KeystorePath == "" {
		return nil, ErrNoSigningKey
	}

	data, err := c.fs.ReadFile(c.config.KeystorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore: %w", err)
	}

	key, err := keystore.DecryptKey(data, c.config.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt keystore: %w", err)
	}

	return key.PrivateKey, nil
}

package vault

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/nitk/memory-vault/internal/contract"
	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/logger"
	"github.com/nitk/memory-vault/internal/providers/subgraph"
	"github.com/nitk/memory-vault/internal/storage"
	"github.com/nitk/memory-vault/internal/uri"
	"github.com/nitk/memory-vault/internal/wallet"
)

var (
	// ErrMissingFields is returned when a mint request lacks a field or no wallet is connected
	ErrMissingFields = errors.New("please fill in all fields")
	// ErrMintFailed is returned for any failure of the mint flow
	ErrMintFailed = errors.New("error minting memory, please try again")
)

// WalletState is the connection state of the signing wallet
type WalletState string

const (
	WalletDisconnected WalletState = "disconnected"
	WalletConnected    WalletState = "connected"
)

// QueryState is the state of the last index query
type QueryState string

const (
	QueryIdle    QueryState = "idle"
	QueryLoading QueryState = "loading"
	QueryLoaded  QueryState = "loaded"
	QueryError   QueryState = "error"
)

// Config holds the display settings of the shell
type Config struct {
	// PlaceholderPath is shown in place of unreachable content
	PlaceholderPath string
	// Concurrency bounds the number of gateway checks run at once
	Concurrency  int
	CheckTimeout time.Duration
}

// MintRequest is the content of the mint form
type MintRequest struct {
	File      *storage.File
	EventType string
	// Date is formatted as YYYY-MM-DD
	Date string
	Tags []string
}

// MintResult describes a confirmed mint
type MintResult struct {
	CID         string
	TxHash      string
	BlockNumber uint64
	// TokenID is empty when the receipt carries no MemoryMinted log
	TokenID string
}

// SearchParams filters the fetched memories
type SearchParams struct {
	EventType string
	// Date is formatted as YYYY-MM-DD; empty matches any date
	Date string
}

// View is what the shell displays
type View struct {
	Wallet   WalletState
	Account  string
	Loading  bool
	Error    string
	Memories []domain.MemorySummary
	// Empty is set once a query has completed and nothing is displayed
	Empty bool
}

// App is the application shell: wallet state, the mint flow and the gallery
type App struct {
	config    Config
	connector wallet.Connector
	uploader  storage.Uploader
	index     subgraph.IndexQuerier
	checker   uri.URLChecker
	resolver  uri.Resolver

	mu         sync.RWMutex
	connection *wallet.Connection
	queryState QueryState
	queryErr   error
	fetched    []domain.MemorySummary
	displayed  []domain.MemorySummary
}

// NewApp creates a disconnected shell with an idle query
func NewApp(
	cfg Config,
	connector wallet.Connector,
	uploader storage.Uploader,
	index subgraph.IndexQuerier,
	checker uri.URLChecker,
	resolver uri.Resolver,
) *App {
	if cfg.PlaceholderPath == "" {
		cfg.PlaceholderPath = domain.PLACEHOLDER_IMAGE_PATH
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 8
	}
	if cfg.CheckTimeout <= 0 {
		cfg.CheckTimeout = 10 * time.Second
	}

	return &App{
		config:     cfg,
		connector:  connector,
		uploader:   uploader,
		index:      index,
		checker:    checker,
		resolver:   resolver,
		queryState: QueryIdle,
	}
}

// WalletState returns the current wallet state
func (a *App) WalletState() WalletState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.connection == nil {
		return WalletDisconnected
	}
	return WalletConnected
}

// QueryState returns the state of the last index query
func (a *App) QueryState() QueryState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.queryState
}

// Connect connects the wallet and keeps the account and contract handle
func (a *App) Connect(ctx context.Context) error {
	conn, err := a.connector.Connect(ctx)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to connect wallet"))
		return err
	}

	a.mu.Lock()
	a.connection = conn
	a.mu.Unlock()

	logger.InfoCtx(ctx, "Wallet connected", zap.String("account", conn.Account.Hex()))
	return nil
}

// Disconnect disconnects the wallet. The account and contract handle are only
// cleared when the connector succeeds.
func (a *App) Disconnect(ctx context.Context) error {
	if err := a.connector.Disconnect(ctx); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to disconnect wallet"))
		return err
	}

	a.mu.Lock()
	a.connection = nil
	a.mu.Unlock()

	logger.InfoCtx(ctx, "Wallet disconnected")
	return nil
}

// Mint uploads the file, mints a memory referencing its CID, waits for the
// transaction and refreshes the index
func (a *App) Mint(ctx context.Context, req MintRequest) (*MintResult, error) {
	a.mu.RLock()
	conn := a.connection
	a.mu.RUnlock()

	if req.File == nil || strings.TrimSpace(req.EventType) == "" || strings.TrimSpace(req.Date) == "" ||
		len(req.Tags) == 0 || conn == nil || conn.Vault == nil {
		return nil, ErrMissingFields
	}

	result, err := a.mint(ctx, conn.Vault, req)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("message", "Error minting memory"))
		return nil, fmt.Errorf("%w: %w", ErrMintFailed, err)
	}

	logger.InfoCtx(ctx, "Memory minted successfully",
		zap.String("cid", result.CID),
		zap.String("txHash", result.TxHash),
		zap.String("tokenId", result.TokenID))

	// The mint is confirmed on chain; a failed refresh only shows in the view
	if err := a.Refresh(ctx); err != nil {
		logger.WarnCtx(ctx, "Failed to refresh memories after mint", zap.Error(err))
	}

	return result, nil
}

func (a *App) mint(ctx context.Context, vault contract.MemoryVault, req MintRequest) (*MintResult, error) {
	cid, err := a.uploader.Store(ctx, *req.File)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	date, err := domain.ParseInputDate(req.Date)
	if err != nil {
		return nil, err
	}

	tx, err := vault.MintMemory(ctx, cid, req.EventType, big.NewInt(date), req.Tags)
	if err != nil {
		return nil, err
	}

	receipt, err := tx.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to confirm transaction %s: %w", tx.Hash().Hex(), err)
	}

	result := &MintResult{
		CID:    cid,
		TxHash: tx.Hash().Hex(),
	}
	if receipt.BlockNumber != nil {
		result.BlockNumber = receipt.BlockNumber.Uint64()
	}
	if tokenID, ok := mintedTokenID(receipt, vault); ok {
		result.TokenID = tokenID
	}

	return result, nil
}

// mintedTokenID returns the token ID of the MemoryMinted log emitted by the vault in receipt
func mintedTokenID(receipt *types.Receipt, vault contract.MemoryVault) (string, bool) {
	for _, log := range receipt.Logs {
		if log == nil || log.Address != vault.Address() {
			continue
		}
		if name, ok := contract.EventName(*log); !ok || name != contract.EventMemoryMinted {
			continue
		}

		var event contract.MemoryMinted
		if err := contract.UnpackLog(&event, contract.EventMemoryMinted, *log); err != nil || event.TokenId == nil {
			continue
		}
		return event.TokenId.String(), true
	}
	return "", false
}

// Refresh queries every memory from the index and displays the full result
func (a *App) Refresh(ctx context.Context) error {
	a.mu.Lock()
	a.queryState = QueryLoading
	a.queryErr = nil
	a.mu.Unlock()

	memories, err := a.index.GetMemories(ctx, "", 0)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.queryState = QueryError
		a.queryErr = err
		logger.ErrorCtx(ctx, err, zap.String("message", "Failed to query memories"))
		return err
	}

	a.queryState = QueryLoaded
	a.fetched = memories
	a.displayed = memories
	logger.DebugCtx(ctx, "Fetched memories", zap.Int("count", len(memories)))

	return nil
}

// Search filters the fetched memories by event type and date and displays the matches.
// It never changes the fetched list.
func (a *App) Search(params SearchParams) []domain.MemorySummary {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.fetched == nil {
		return a.displayed
	}

	eventType := strings.ToLower(params.EventType)

	// an unparseable date matches nothing
	var date string
	validDate := true
	if params.Date != "" {
		unix, err := domain.ParseInputDate(params.Date)
		if err != nil {
			logger.Warn("Invalid search date", zap.String("date", params.Date), zap.Error(err))
			validDate = false
		} else {
			date = domain.FormatDate(unix)
		}
	}

	filtered := make([]domain.MemorySummary, 0, len(a.fetched))
	if validDate {
		for _, memory := range a.fetched {
			if eventType != "" && !strings.Contains(strings.ToLower(memory.EventType), eventType) {
				continue
			}
			if date != "" && memory.FormattedDate() != date {
				continue
			}
			filtered = append(filtered, memory)
		}
	}

	a.displayed = filtered
	return filtered
}

// View returns what the shell currently displays
func (a *App) View() View {
	a.mu.RLock()
	defer a.mu.RUnlock()

	view := View{
		Wallet:  WalletDisconnected,
		Loading: a.queryState == QueryLoading,
		Empty:   a.queryState == QueryLoaded && len(a.displayed) == 0,
	}
	if a.displayed != nil {
		view.Memories = make([]domain.MemorySummary, len(a.displayed))
		copy(view.Memories, a.displayed)
	}
	if a.connection != nil {
		view.Wallet = WalletConnected
		view.Account = a.connection.Account.Hex()
	}
	if a.queryState == QueryError && a.queryErr != nil {
		view.Error = a.queryErr.Error()
	}

	return view
}

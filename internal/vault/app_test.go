package vault_test

import (
	"context"
	"errors"
	"math/big"
	"os"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitk/memory-vault/internal/contract"
	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/logger"
	"github.com/nitk/memory-vault/internal/mocks"
	"github.com/nitk/memory-vault/internal/storage"
	"github.com/nitk/memory-vault/internal/uri"
	"github.com/nitk/memory-vault/internal/vault"
	"github.com/nitk/memory-vault/internal/wallet"
)

var (
	account      = common.HexToAddress("0x00000000000000000000000000000000000000A1")
	vaultAddress = common.HexToAddress("0x00000000000000000000000000000000000000F0")
	mintTxHash   = common.HexToHash("0xfeed")
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type testApp struct {
	ctrl      *gomock.Controller
	connector *mocks.MockConnector
	uploader  *mocks.MockUploader
	index     *mocks.MockIndexQuerier
	checker   *mocks.MockURLChecker
	resolver  *mocks.MockURIResolver
	vault     *mocks.MockMemoryVault
	app       *vault.App
}

func setupTestApp(t *testing.T) *testApp {
	ctrl := gomock.NewController(t)

	ta := &testApp{
		ctrl:      ctrl,
		connector: mocks.NewMockConnector(ctrl),
		uploader:  mocks.NewMockUploader(ctrl),
		index:     mocks.NewMockIndexQuerier(ctrl),
		checker:   mocks.NewMockURLChecker(ctrl),
		resolver:  mocks.NewMockURIResolver(ctrl),
		vault:     mocks.NewMockMemoryVault(ctrl),
	}
	ta.vault.EXPECT().Address().Return(vaultAddress).AnyTimes()
	ta.app = vault.NewApp(vault.Config{Concurrency: 2}, ta.connector, ta.uploader, ta.index, ta.checker, ta.resolver)

	return ta
}

func (ta *testApp) connect(t *testing.T) {
	ta.connector.EXPECT().Connect(gomock.Any()).Return(&wallet.Connection{Account: account, Vault: ta.vault}, nil)
	require.NoError(t, ta.app.Connect(t.Context()))
}

var memories = []domain.MemorySummary{
	{ID: "0x01", TokenID: "3", IPFSHash: "bafy3", EventType: "Convocation 2024", Date: 1704067200},
	{ID: "0x02", TokenID: "2", IPFSHash: "bafy2", EventType: "Sports Day", Date: 1700000000},
	{ID: "0x03", TokenID: "1", IPFSHash: "bafy1", EventType: "convocation 2023", Date: 1672531200},
}

func mintedReceipt(t *testing.T, tokenID int64) *types.Receipt {
	t.Helper()

	event := contract.ABI().Events[contract.EventMemoryMinted]
	data, err := event.Inputs.NonIndexed().Pack("bafyminted", "Convocation", big.NewInt(1704067200))
	require.NoError(t, err)

	return &types.Receipt{
		Status:      types.ReceiptStatusSuccessful,
		BlockNumber: big.NewInt(77),
		Logs: []*types.Log{
			{
				Address: common.HexToAddress("0x00000000000000000000000000000000000000EE"),
				Topics:  []common.Hash{event.ID, common.BigToHash(big.NewInt(999)), common.BytesToHash(account.Bytes())},
				Data:    data,
			},
			{
				Address: vaultAddress,
				Topics:  []common.Hash{event.ID, common.BigToHash(big.NewInt(tokenID)), common.BytesToHash(account.Bytes())},
				Data:    data,
			},
		},
	}
}

func TestApp_InitialState(t *testing.T) {
	ta := setupTestApp(t)

	assert.Equal(t, vault.WalletDisconnected, ta.app.WalletState())
	assert.Equal(t, vault.QueryIdle, ta.app.QueryState())

	view := ta.app.View()
	assert.Equal(t, vault.WalletDisconnected, view.Wallet)
	assert.False(t, view.Loading)
	assert.False(t, view.Empty)
	assert.Empty(t, view.Memories)
}

func TestApp_Connect(t *testing.T) {
	ta := setupTestApp(t)
	ta.connect(t)

	assert.Equal(t, vault.WalletConnected, ta.app.WalletState())
	assert.Equal(t, account.Hex(), ta.app.View().Account)
}

func TestApp_ConnectFailure(t *testing.T) {
	ta := setupTestApp(t)
	ta.connector.EXPECT().Connect(gomock.Any()).Return(nil, wallet.ErrNoSigningKey)

	err := ta.app.Connect(t.Context())
	assert.ErrorIs(t, err, wallet.ErrNoSigningKey)
	assert.Equal(t, vault.WalletDisconnected, ta.app.WalletState())
}

func TestApp_Disconnect(t *testing.T) {
	ta := setupTestApp(t)
	ta.connect(t)
	ta.connector.EXPECT().Disconnect(gomock.Any()).Return(nil)

	require.NoError(t, ta.app.Disconnect(t.Context()))
	assert.Equal(t, vault.WalletDisconnected, ta.app.WalletState())
	assert.Empty(t, ta.app.View().Account)
}

func TestApp_DisconnectFailureKeepsConnection(t *testing.T) {
	ta := setupTestApp(t)
	ta.connect(t)
	ta.connector.EXPECT().Disconnect(gomock.Any()).Return(errors.New("rpc close failed"))

	err := ta.app.Disconnect(t.Context())
	assert.EqualError(t, err, "rpc close failed")
	assert.Equal(t, vault.WalletConnected, ta.app.WalletState())
	assert.Equal(t, account.Hex(), ta.app.View().Account)
}

func TestApp_MintMissingFields(t *testing.T) {
	file := &storage.File{Name: "photo.png", Content: []byte("png")}
	valid := vault.MintRequest{File: file, EventType: "Convocation", Date: "2024-01-01", Tags: []string{"batch"}}

	tests := []struct {
		name    string
		connect bool
		modify  func(*vault.MintRequest)
	}{
		{name: "wallet not connected", connect: false, modify: func(r *vault.MintRequest) {}},
		{name: "missing file", connect: true, modify: func(r *vault.MintRequest) { r.File = nil }},
		{name: "missing event type", connect: true, modify: func(r *vault.MintRequest) { r.EventType = "  " }},
		{name: "missing date", connect: true, modify: func(r *vault.MintRequest) { r.Date = "" }},
		{name: "missing tags", connect: true, modify: func(r *vault.MintRequest) { r.Tags = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := setupTestApp(t)
			if tt.connect {
				ta.connect(t)
			}
			ta.uploader.EXPECT().Store(gomock.Any(), gomock.Any()).Times(0)
			ta.vault.EXPECT().MintMemory(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			req := valid
			tt.modify(&req)

			result, err := ta.app.Mint(t.Context(), req)
			assert.ErrorIs(t, err, vault.ErrMissingFields)
			assert.Nil(t, result)
		})
	}
}

func TestApp_Mint(t *testing.T) {
	ta := setupTestApp(t)
	ta.connect(t)

	file := storage.File{Name: "photo.png", Content: []byte("png")}
	tx := mocks.NewMockTransaction(ta.ctrl)
	tx.EXPECT().Hash().Return(mintTxHash).AnyTimes()

	gomock.InOrder(
		ta.uploader.EXPECT().Store(gomock.Any(), file).Return("bafyminted", nil),
		ta.vault.EXPECT().
			MintMemory(gomock.Any(), "bafyminted", "Convocation", big.NewInt(1704067200), []string{"batch", "2024"}).
			Return(tx, nil),
		tx.EXPECT().Wait(gomock.Any()).Return(mintedReceipt(t, 7), nil),
		ta.index.EXPECT().GetMemories(gomock.Any(), "", int64(0)).Return(memories, nil),
	)

	result, err := ta.app.Mint(t.Context(), vault.MintRequest{
		File:      &file,
		EventType: "Convocation",
		Date:      "2024-01-01",
		Tags:      []string{"batch", "2024"},
	})
	require.NoError(t, err)
	assert.Equal(t, "bafyminted", result.CID)
	assert.Equal(t, mintTxHash.Hex(), result.TxHash)
	assert.Equal(t, uint64(77), result.BlockNumber)
	assert.Equal(t, "7", result.TokenID)

	assert.Equal(t, vault.QueryLoaded, ta.app.QueryState())
	assert.Equal(t, memories, ta.app.View().Memories)
}

func TestApp_MintRefreshFailureIsNotFatal(t *testing.T) {
	ta := setupTestApp(t)
	ta.connect(t)

	tx := mocks.NewMockTransaction(ta.ctrl)
	tx.EXPECT().Hash().Return(mintTxHash).AnyTimes()
	ta.uploader.EXPECT().Store(gomock.Any(), gomock.Any()).Return("bafyminted", nil)
	ta.vault.EXPECT().MintMemory(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tx, nil)
	tx.EXPECT().Wait(gomock.Any()).Return(&types.Receipt{Status: types.ReceiptStatusSuccessful}, nil)
	ta.index.EXPECT().GetMemories(gomock.Any(), "", int64(0)).Return(nil, errors.New("index unavailable"))

	result, err := ta.app.Mint(t.Context(), vault.MintRequest{
		File:      &storage.File{Name: "photo.png"},
		EventType: "Convocation",
		Date:      "2024-01-01",
		Tags:      []string{"batch"},
	})
	require.NoError(t, err)
	assert.Empty(t, result.TokenID)
	assert.Equal(t, vault.QueryError, ta.app.QueryState())
	assert.Equal(t, "index unavailable", ta.app.View().Error)
}

func TestApp_MintFailures(t *testing.T) {
	tests := []struct {
		name       string
		date       string
		setupMocks func(ta *testApp, tx *mocks.MockTransaction)
		rootCause  error
	}{
		{
			name: "upload fails",
			date: "2024-01-01",
			setupMocks: func(ta *testApp, tx *mocks.MockTransaction) {
				ta.uploader.EXPECT().Store(gomock.Any(), gomock.Any()).Return("", storage.ErrNoSpaceAvailable)
			},
			rootCause: storage.ErrNoSpaceAvailable,
		},
		{
			name: "invalid date",
			date: "01/01/2024",
			setupMocks: func(ta *testApp, tx *mocks.MockTransaction) {
				ta.uploader.EXPECT().Store(gomock.Any(), gomock.Any()).Return("bafyminted", nil)
			},
		},
		{
			name: "mint rejected",
			date: "2024-01-01",
			setupMocks: func(ta *testApp, tx *mocks.MockTransaction) {
				ta.uploader.EXPECT().Store(gomock.Any(), gomock.Any()).Return("bafyminted", nil)
				ta.vault.EXPECT().MintMemory(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("user rejected"))
			},
		},
		{
			name: "transaction reverted",
			date: "2024-01-01",
			setupMocks: func(ta *testApp, tx *mocks.MockTransaction) {
				ta.uploader.EXPECT().Store(gomock.Any(), gomock.Any()).Return("bafyminted", nil)
				ta.vault.EXPECT().MintMemory(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(tx, nil)
				tx.EXPECT().Wait(gomock.Any()).
					Return(&types.Receipt{Status: types.ReceiptStatusFailed}, contract.ErrTransactionReverted)
			},
			rootCause: contract.ErrTransactionReverted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := setupTestApp(t)
			ta.connect(t)

			tx := mocks.NewMockTransaction(ta.ctrl)
			tx.EXPECT().Hash().Return(mintTxHash).AnyTimes()
			tt.setupMocks(ta, tx)
			ta.index.EXPECT().GetMemories(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

			result, err := ta.app.Mint(t.Context(), vault.MintRequest{
				File:      &storage.File{Name: "photo.png"},
				EventType: "Convocation",
				Date:      tt.date,
				Tags:      []string{"batch"},
			})
			assert.ErrorIs(t, err, vault.ErrMintFailed)
			if tt.rootCause != nil {
				assert.ErrorIs(t, err, tt.rootCause)
			}
			assert.Nil(t, result)
		})
	}
}

func TestApp_Refresh(t *testing.T) {
	ta := setupTestApp(t)
	ta.index.EXPECT().GetMemories(gomock.Any(), "", int64(0)).Return(memories, nil)

	require.NoError(t, ta.app.Refresh(t.Context()))

	view := ta.app.View()
	assert.Equal(t, vault.QueryLoaded, ta.app.QueryState())
	assert.False(t, view.Loading)
	assert.Empty(t, view.Error)
	assert.False(t, view.Empty)
	assert.Equal(t, memories, view.Memories)
}

func TestApp_RefreshEmpty(t *testing.T) {
	ta := setupTestApp(t)
	ta.index.EXPECT().GetMemories(gomock.Any(), "", int64(0)).Return([]domain.MemorySummary{}, nil)

	require.NoError(t, ta.app.Refresh(t.Context()))
	assert.True(t, ta.app.View().Empty)
}

func TestApp_RefreshLoadingState(t *testing.T) {
	ta := setupTestApp(t)

	ta.index.EXPECT().GetMemories(gomock.Any(), "", int64(0)).
		DoAndReturn(func(ctx context.Context, eventType string, dateGTE int64) ([]domain.MemorySummary, error) {
			assert.Equal(t, vault.QueryLoading, ta.app.QueryState())
			assert.True(t, ta.app.View().Loading)
			return memories, nil
		})

	require.NoError(t, ta.app.Refresh(t.Context()))
	assert.False(t, ta.app.View().Loading)
}

func TestApp_RefreshFailureKeepsPreviousList(t *testing.T) {
	ta := setupTestApp(t)
	gomock.InOrder(
		ta.index.EXPECT().GetMemories(gomock.Any(), "", int64(0)).Return(memories, nil),
		ta.index.EXPECT().GetMemories(gomock.Any(), "", int64(0)).Return(nil, errors.New("bad gateway")),
	)

	require.NoError(t, ta.app.Refresh(t.Context()))
	assert.EqualError(t, ta.app.Refresh(t.Context()), "bad gateway")

	view := ta.app.View()
	assert.Equal(t, vault.QueryError, ta.app.QueryState())
	assert.Equal(t, "bad gateway", view.Error)
	assert.Equal(t, memories, view.Memories)
}

func TestApp_Search(t *testing.T) {
	tests := []struct {
		name     string
		params   vault.SearchParams
		expected []string
	}{
		{name: "empty params return everything", params: vault.SearchParams{}, expected: []string{"0x01", "0x02", "0x03"}},
		{name: "event type is case-insensitive", params: vault.SearchParams{EventType: "CONVOCATION"}, expected: []string{"0x01", "0x03"}},
		{name: "event type substring", params: vault.SearchParams{EventType: "sport"}, expected: []string{"0x02"}},
		{name: "exact date", params: vault.SearchParams{Date: "2024-01-01"}, expected: []string{"0x01"}},
		{name: "event type and date", params: vault.SearchParams{EventType: "convocation", Date: "2023-01-01"}, expected: []string{"0x03"}},
		{name: "no match", params: vault.SearchParams{EventType: "hackathon"}, expected: []string{}},
		{name: "event type is not trimmed", params: vault.SearchParams{EventType: " sports"}, expected: []string{}},
		{name: "unparseable date matches nothing", params: vault.SearchParams{Date: "not-a-date"}, expected: []string{}},
		{name: "unparseable date with event type", params: vault.SearchParams{EventType: "convocation", Date: "31/31/2024"}, expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := setupTestApp(t)
			ta.index.EXPECT().GetMemories(gomock.Any(), "", int64(0)).Return(memories, nil)
			require.NoError(t, ta.app.Refresh(t.Context()))

			result := ta.app.Search(tt.params)

			ids := make([]string, 0, len(result))
			for _, m := range result {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.expected, ids)
			assert.Equal(t, result, ta.app.View().Memories)
			assert.Equal(t, len(tt.expected) == 0, ta.app.View().Empty)
		})
	}
}

func TestApp_SearchDoesNotNarrowFetchedList(t *testing.T) {
	ta := setupTestApp(t)
	ta.index.EXPECT().GetMemories(gomock.Any(), "", int64(0)).Return(memories, nil)
	require.NoError(t, ta.app.Refresh(t.Context()))

	assert.Len(t, ta.app.Search(vault.SearchParams{EventType: "sports"}), 1)
	assert.Len(t, ta.app.Search(vault.SearchParams{EventType: "convocation"}), 2)
	assert.Len(t, ta.app.Search(vault.SearchParams{}), 3)
}

func TestApp_SearchBeforeFetch(t *testing.T) {
	ta := setupTestApp(t)
	assert.Empty(t, ta.app.Search(vault.SearchParams{EventType: "convocation"}))
}

func TestApp_Gallery(t *testing.T) {
	ta := setupTestApp(t)
	ta.index.EXPECT().GetMemories(gomock.Any(), "", int64(0)).Return(memories, nil)
	require.NoError(t, ta.app.Refresh(t.Context()))

	broken := "HTTP 404"
	ta.resolver.EXPECT().Resolve("bafy3").Return("https://ipfs.io/ipfs/bafy3", nil)
	ta.resolver.EXPECT().Resolve("bafy2").Return("https://ipfs.io/ipfs/bafy2", nil)
	ta.resolver.EXPECT().Resolve("bafy1").Return("", uri.ErrInvalidCID)

	var mu sync.Mutex
	checked := map[string]bool{}
	ta.checker.EXPECT().Check(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, url string) uri.HealthCheckResult {
			mu.Lock()
			checked[url] = true
			mu.Unlock()
			if url == "https://ipfs.io/ipfs/bafy2" {
				return uri.HealthCheckResult{Status: uri.HealthStatusBroken, Error: &broken}
			}
			return uri.HealthCheckResult{Status: uri.HealthStatusHealthy}
		}).Times(2)

	items := ta.app.Gallery(t.Context())
	require.Len(t, items, 3)

	assert.Equal(t, "0x01", items[0].ID)
	assert.Equal(t, "https://ipfs.io/ipfs/bafy3", items[0].ImageURL)
	assert.False(t, items[0].Placeholder)
	assert.Equal(t, "01/01/2024", items[0].DisplayDate)

	assert.Equal(t, "0x02", items[1].ID)
	assert.Equal(t, domain.PLACEHOLDER_IMAGE_PATH, items[1].ImageURL)
	assert.True(t, items[1].Placeholder)

	assert.Equal(t, "0x03", items[2].ID)
	assert.Equal(t, domain.PLACEHOLDER_IMAGE_PATH, items[2].ImageURL)
	assert.True(t, items[2].Placeholder)

	assert.Len(t, checked, 2)
}

func TestApp_GalleryEmpty(t *testing.T) {
	ta := setupTestApp(t)
	assert.Empty(t, ta.app.Gallery(t.Context()))
}

package block_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitk/memory-vault/internal/block"
	"github.com/nitk/memory-vault/internal/logger"
	"github.com/nitk/memory-vault/internal/mocks"
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

// testBlockProviderMocks contains all the mocks needed for testing the block provider
type testBlockProviderMocks struct {
	ctrl     *gomock.Controller
	fetcher  *mocks.MockBlockFetcher
	provider block.BlockProvider
}

// setupTest creates all the mocks and the block provider for testing
func setupTest(t *testing.T, cacheSize int) *testBlockProviderMocks {
	ctrl := gomock.NewController(t)

	mockFetcher := mocks.NewMockBlockFetcher(ctrl)
	provider, err := block.NewBlockProvider(mockFetcher, block.Config{TimestampCacheSize: cacheSize})
	require.NoError(t, err)

	return &testBlockProviderMocks{
		ctrl:     ctrl,
		fetcher:  mockFetcher,
		provider: provider,
	}
}

func TestBlockProvider_GetBlockTimestamp_FirstFetch(t *testing.T) {
	tm := setupTest(t, 0)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	blockTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(1000)).Return(blockTime, nil)

	timestamp, err := tm.provider.GetBlockTimestamp(ctx, 1000)
	assert.NoError(t, err)
	assert.Equal(t, blockTime, timestamp)
}

func TestBlockProvider_GetBlockTimestamp_UsesCache(t *testing.T) {
	tm := setupTest(t, 0)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	blockTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(1000)).Return(blockTime, nil).Times(1)

	for range 3 {
		timestamp, err := tm.provider.GetBlockTimestamp(ctx, 1000)
		assert.NoError(t, err)
		assert.Equal(t, blockTime, timestamp)
	}
}

func TestBlockProvider_GetBlockTimestamp_EvictsLeastRecentlyUsed(t *testing.T) {
	tm := setupTest(t, 2)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	blockTime1 := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	blockTime2 := blockTime1.Add(12 * time.Second)
	blockTime3 := blockTime2.Add(12 * time.Second)

	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(1)).Return(blockTime1, nil).Times(2)
	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(2)).Return(blockTime2, nil).Times(1)
	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(3)).Return(blockTime3, nil).Times(1)

	for _, n := range []uint64{1, 2, 3, 2, 1} {
		_, err := tm.provider.GetBlockTimestamp(ctx, n)
		require.NoError(t, err)
	}
}

func TestBlockProvider_GetBlockTimestamp_ReturnsError_WhenFetchFails(t *testing.T) {
	tm := setupTest(t, 0)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	blockTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	gomock.InOrder(
		tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(1000)).Return(time.Time{}, errors.New("rpc error")),
		tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(1000)).Return(blockTime, nil),
	)

	_, err := tm.provider.GetBlockTimestamp(ctx, 1000)
	assert.ErrorContains(t, err, "block 1000")

	// Failures are not cached
	timestamp, err := tm.provider.GetBlockTimestamp(ctx, 1000)
	assert.NoError(t, err)
	assert.Equal(t, blockTime, timestamp)
}

func TestBlockProvider_GetBlockTimestamp_ConcurrentAccess(t *testing.T) {
	tm := setupTest(t, 0)
	defer tm.ctrl.Finish()

	ctx := context.Background()
	blockTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tm.fetcher.EXPECT().FetchBlockTimestamp(ctx, uint64(1000)).Return(blockTime, nil).AnyTimes()

	done := make(chan bool, 10)
	for range 10 {
		go func() {
			timestamp, err := tm.provider.GetBlockTimestamp(ctx, 1000)
			assert.NoError(t, err)
			assert.Equal(t, blockTime, timestamp)
			done <- true
		}()
	}

	for range 10 {
		<-done
	}
}

package executor_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/nitk/memory-vault/internal/api/shared/executor"
	apierrors "github.com/nitk/memory-vault/internal/api/shared/errors"
	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/mocks"
	"github.com/nitk/memory-vault/internal/storage"
	"github.com/nitk/memory-vault/internal/store"
	"github.com/nitk/memory-vault/internal/store/schema"
)

type testExecutor struct {
	executor executor.Executor
	store    *mocks.MockStore
	uploader *mocks.MockUploader
	resolver *mocks.MockURIResolver
}

func setupTestExecutor(t *testing.T) *testExecutor {
	ctrl := gomock.NewController(t)

	te := &testExecutor{
		store:    mocks.NewMockStore(ctrl),
		uploader: mocks.NewMockUploader(ctrl),
		resolver: mocks.NewMockURIResolver(ctrl),
	}
	te.executor = executor.NewExecutor(te.store, te.uploader, te.resolver)

	return te
}

func memories(n int) []schema.Memory {
	result := make([]schema.Memory, n)
	for i := range result {
		result[i] = schema.Memory{
			ID:             fmt.Sprintf("0xmemory%d", i),
			TokenID:        fmt.Sprintf("%d", i),
			EventType:      "Fest",
			Date:           "1704067200",
			BlockTimestamp: time.Unix(1704070000, 0).UTC(),
		}
	}
	return result
}

func assertAPIError(t *testing.T, err error, code apierrors.ErrorCode) {
	var apiErr *apierrors.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, code, apiErr.Code)
}

func TestGetMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		te := setupTestExecutor(t)
		te.store.EXPECT().GetMemoryByID(ctx, "0xabc").Return(&schema.Memory{
			ID:   "0xabc",
			Tags: datatypes.JSONSlice[string]{"graduation", "2024"},
		}, nil)

		memory, err := te.executor.GetMemory(ctx, "0xabc")

		require.NoError(t, err)
		require.NotNil(t, memory)
		assert.Equal(t, "0xabc", memory.ID)
		assert.Equal(t, []string{"graduation", "2024"}, memory.Tags)
	})

	t.Run("missing tags render as an empty list", func(t *testing.T) {
		te := setupTestExecutor(t)
		te.store.EXPECT().GetMemoryByID(ctx, "0xabc").Return(&schema.Memory{ID: "0xabc"}, nil)

		memory, err := te.executor.GetMemory(ctx, "0xabc")

		require.NoError(t, err)
		assert.NotNil(t, memory.Tags)
		assert.Empty(t, memory.Tags)
	})

	t.Run("not found", func(t *testing.T) {
		te := setupTestExecutor(t)
		te.store.EXPECT().GetMemoryByID(ctx, "0xmissing").Return(nil, domain.ErrMemoryNotFound)

		memory, err := te.executor.GetMemory(ctx, "0xmissing")

		require.NoError(t, err)
		assert.Nil(t, memory)
	})

	t.Run("store error", func(t *testing.T) {
		te := setupTestExecutor(t)
		te.store.EXPECT().GetMemoryByID(ctx, "0xabc").Return(nil, errors.New("connection refused"))

		_, err := te.executor.GetMemory(ctx, "0xabc")

		assertAPIError(t, err, apierrors.ErrCodeDatabaseError)
	})
}

func TestListMemories(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults", func(t *testing.T) {
		te := setupTestExecutor(t)
		te.store.EXPECT().ListMemories(ctx, store.MemoryQueryFilter{Limit: 100}).Return(memories(2), uint64(2), nil)

		result, err := te.executor.ListMemories(ctx, "", 0, "", false, nil, nil)

		require.NoError(t, err)
		assert.Len(t, result.Memories, 2)
		assert.Equal(t, uint64(2), result.Total)
		assert.Nil(t, result.Offset)
	})

	t.Run("filters and next offset", func(t *testing.T) {
		te := setupTestExecutor(t)
		limit := 2
		offset := uint64(4)
		te.store.EXPECT().ListMemories(ctx, store.MemoryQueryFilter{
			EventType: "fest",
			DateGTE:   1704067200,
			Creator:   "0xc1",
			OrderAsc:  true,
			Limit:     2,
			Offset:    4,
		}).Return(memories(2), uint64(10), nil)

		result, err := te.executor.ListMemories(ctx, "fest", 1704067200, "0xc1", true, &limit, &offset)

		require.NoError(t, err)
		require.NotNil(t, result.Offset)
		assert.Equal(t, uint64(6), *result.Offset)
	})

	t.Run("limit is capped", func(t *testing.T) {
		te := setupTestExecutor(t)
		limit := 10000
		te.store.EXPECT().ListMemories(ctx, store.MemoryQueryFilter{Limit: 255}).Return(nil, uint64(0), nil)

		result, err := te.executor.ListMemories(ctx, "", 0, "", false, &limit, nil)

		require.NoError(t, err)
		assert.NotNil(t, result.Memories)
		assert.Empty(t, result.Memories)
	})

	t.Run("store error", func(t *testing.T) {
		te := setupTestExecutor(t)
		te.store.EXPECT().ListMemories(ctx, gomock.Any()).Return(nil, uint64(0), errors.New("timeout"))

		_, err := te.executor.ListMemories(ctx, "", 0, "", false, nil, nil)

		assertAPIError(t, err, apierrors.ErrCodeDatabaseError)
	})
}

func TestGetTransfers(t *testing.T) {
	ctx := context.Background()

	t.Run("default limit", func(t *testing.T) {
		te := setupTestExecutor(t)
		te.store.EXPECT().GetTransfersByTokenID(ctx, "7", 50, uint64(0)).Return([]schema.Transfer{
			{ID: "0xt1", TokenID: "7", BlockNumber: 1},
		}, uint64(1), nil)

		result, err := te.executor.GetTransfers(ctx, "7", nil, nil)

		require.NoError(t, err)
		require.Len(t, result.Transfers, 1)
		assert.Equal(t, "0xt1", result.Transfers[0].ID)
		assert.Nil(t, result.Offset)
	})

	t.Run("store error", func(t *testing.T) {
		te := setupTestExecutor(t)
		te.store.EXPECT().GetTransfersByTokenID(ctx, "7", 50, uint64(0)).Return(nil, uint64(0), errors.New("timeout"))

		_, err := te.executor.GetTransfers(ctx, "7", nil, nil)

		assertAPIError(t, err, apierrors.ErrCodeDatabaseError)
	})
}

func TestUpload(t *testing.T) {
	ctx := context.Background()
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	t.Run("sniffs a generic content type", func(t *testing.T) {
		te := setupTestExecutor(t)
		te.uploader.EXPECT().Store(ctx, storage.File{Name: "photo.png", ContentType: "image/png", Content: png}).Return("bafy1", nil)
		te.resolver.EXPECT().Resolve("bafy1").Return("https://ipfs.io/ipfs/bafy1", nil)

		result, err := te.executor.Upload(ctx, storage.File{Name: "photo.png", ContentType: "application/octet-stream", Content: png})

		require.NoError(t, err)
		assert.Equal(t, "bafy1", result.CID)
		assert.Equal(t, "image/png", result.ContentType)
		assert.Equal(t, len(png), result.Size)
		assert.Equal(t, "https://ipfs.io/ipfs/bafy1", result.GatewayURL)
	})

	t.Run("keeps a declared content type", func(t *testing.T) {
		te := setupTestExecutor(t)
		te.uploader.EXPECT().Store(ctx, storage.File{Name: "note.txt", ContentType: "text/markdown", Content: []byte("# hi")}).Return("bafy2", nil)
		te.resolver.EXPECT().Resolve("bafy2").Return("https://ipfs.io/ipfs/bafy2", nil)

		result, err := te.executor.Upload(ctx, storage.File{Name: "note.txt", ContentType: "text/markdown", Content: []byte("# hi")})

		require.NoError(t, err)
		assert.Equal(t, "text/markdown", result.ContentType)
	})

	t.Run("gateway url is optional", func(t *testing.T) {
		te := setupTestExecutor(t)
		te.uploader.EXPECT().Store(ctx, gomock.Any()).Return("bafy3", nil)
		te.resolver.EXPECT().Resolve("bafy3").Return("", errors.New("invalid"))

		result, err := te.executor.Upload(ctx, storage.File{Name: "a", ContentType: "text/plain", Content: []byte("a")})

		require.NoError(t, err)
		assert.Equal(t, "bafy3", result.CID)
		assert.Empty(t, result.GatewayURL)
	})

	t.Run("no space available", func(t *testing.T) {
		te := setupTestExecutor(t)
		te.uploader.EXPECT().Store(ctx, gomock.Any()).Return("", storage.ErrNoSpaceAvailable)

		_, err := te.executor.Upload(ctx, storage.File{Name: "a", ContentType: "text/plain", Content: []byte("a")})

		assertAPIError(t, err, apierrors.ErrCodeStorageError)
	})
}

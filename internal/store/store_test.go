package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func buildMemory(id string, eventType string, date int64) *schema.Memory {
	return &schema.Memory{
		ID:              id,
		TokenID:         "1",
		Creator:         "0x00000000000000000000000000000000000000c1",
		IPFSHash:        "bafkreigh2akiscaildcqabsyg3dfr6chu3fgpregiymsck7e7aqa4s52zy",
		EventType:       eventType,
		Date:            fmt.Sprintf("%d", date),
		Tags:            datatypes.JSONSlice[string]{},
		BlockNumber:     100,
		BlockTimestamp:  time.Unix(1700000000, 0).UTC(),
		TransactionHash: "0x" + fmt.Sprintf("%064d", 1),
	}
}

func buildTransfer(id string, tokenID string, blockNumber uint64) *schema.Transfer {
	return &schema.Transfer{
		ID:              id,
		From:            "0x0000000000000000000000000000000000000000",
		To:              "0x00000000000000000000000000000000000000c1",
		TokenID:         tokenID,
		BlockNumber:     blockNumber,
		BlockTimestamp:  time.Unix(1700000000, 0).UTC(),
		TransactionHash: "0x" + fmt.Sprintf("%064d", blockNumber),
	}
}

// =============================================================================
// Tests
// =============================================================================

func testUpsertMemory(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("create and get memory", func(t *testing.T) {
		memory := buildMemory("0xmemory-create00000000", "Convocation", 1704067200)
		require.NoError(t, store.UpsertMemory(ctx, memory))

		got, err := store.GetMemoryByID(ctx, memory.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Convocation", got.EventType)
		assert.Equal(t, "1704067200", got.Date)
		assert.Equal(t, memory.Creator, got.Creator)
		assert.Empty(t, got.Tags)
	})

	t.Run("redelivery keeps one record", func(t *testing.T) {
		memory := buildMemory("0xmemory-redelivery0000", "Fest", 1704067200)
		require.NoError(t, store.UpsertMemory(ctx, memory))
		require.NoError(t, store.UpsertMemory(ctx, memory))

		memories, total, err := store.ListMemories(ctx, MemoryQueryFilter{EventType: "fest"})
		require.NoError(t, err)
		assert.Equal(t, uint64(1), total)
		require.Len(t, memories, 1)
		assert.Equal(t, memory.ID, memories[0].ID)
	})

	t.Run("get non-existent memory returns not found", func(t *testing.T) {
		got, err := store.GetMemoryByID(ctx, "0xmissing")
		require.ErrorIs(t, err, domain.ErrMemoryNotFound)
		assert.Nil(t, got)
	})
}

func testListMemories(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.UpsertMemory(ctx, buildMemory("0xlist-a", "Sports Day", 1700000000)))
	require.NoError(t, store.UpsertMemory(ctx, buildMemory("0xlist-b", "Tech Fest", 1710000000)))
	require.NoError(t, store.UpsertMemory(ctx, buildMemory("0xlist-c", "Cultural FEST", 1720000000)))
	require.NoError(t, store.UpsertMemory(ctx, buildMemory("0xlist-d", "100%_club", 1730000000)))

	t.Run("no filter orders by date descending", func(t *testing.T) {
		memories, total, err := store.ListMemories(ctx, MemoryQueryFilter{})
		require.NoError(t, err)
		assert.Equal(t, uint64(4), total)
		require.Len(t, memories, 4)
		assert.Equal(t, "0xlist-d", memories[0].ID)
		assert.Equal(t, "0xlist-c", memories[1].ID)
		assert.Equal(t, "0xlist-b", memories[2].ID)
		assert.Equal(t, "0xlist-a", memories[3].ID)
	})

	t.Run("ascending order", func(t *testing.T) {
		memories, _, err := store.ListMemories(ctx, MemoryQueryFilter{OrderAsc: true, Limit: 2})
		require.NoError(t, err)
		require.Len(t, memories, 2)
		assert.Equal(t, "0xlist-a", memories[0].ID)
		assert.Equal(t, "0xlist-b", memories[1].ID)
	})

	t.Run("event type contains case-insensitively", func(t *testing.T) {
		memories, total, err := store.ListMemories(ctx, MemoryQueryFilter{EventType: "fest"})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		require.Len(t, memories, 2)
		assert.Equal(t, "0xlist-c", memories[0].ID)
		assert.Equal(t, "0xlist-b", memories[1].ID)
	})

	t.Run("wildcards are matched literally", func(t *testing.T) {
		memories, _, err := store.ListMemories(ctx, MemoryQueryFilter{EventType: "%_"})
		require.NoError(t, err)
		require.Len(t, memories, 1)
		assert.Equal(t, "0xlist-d", memories[0].ID)
	})

	t.Run("date lower bound is inclusive", func(t *testing.T) {
		memories, total, err := store.ListMemories(ctx, MemoryQueryFilter{DateGTE: 1710000000})
		require.NoError(t, err)
		assert.Equal(t, uint64(3), total)
		assert.Len(t, memories, 3)
	})

	t.Run("pagination", func(t *testing.T) {
		memories, total, err := store.ListMemories(ctx, MemoryQueryFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		assert.Equal(t, uint64(4), total)
		require.Len(t, memories, 2)
		assert.Equal(t, "0xlist-c", memories[0].ID)
		assert.Equal(t, "0xlist-b", memories[1].ID)
	})

	t.Run("creator filter", func(t *testing.T) {
		memories, _, err := store.ListMemories(ctx, MemoryQueryFilter{Creator: "0x00000000000000000000000000000000000000C1"})
		require.NoError(t, err)
		assert.Len(t, memories, 4)

		memories, _, err = store.ListMemories(ctx, MemoryQueryFilter{Creator: "0x00000000000000000000000000000000000000c2"})
		require.NoError(t, err)
		assert.Empty(t, memories)
	})
}

func testTransfers(t *testing.T, store Store) {
	ctx := context.Background()

	require.NoError(t, store.UpsertTransfer(ctx, buildTransfer("0xtransfer-2", "7", 200)))
	require.NoError(t, store.UpsertTransfer(ctx, buildTransfer("0xtransfer-1", "7", 100)))
	require.NoError(t, store.UpsertTransfer(ctx, buildTransfer("0xtransfer-3", "8", 300)))

	t.Run("transfers of a token, oldest first", func(t *testing.T) {
		transfers, total, err := store.GetTransfersByTokenID(ctx, "7", 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(2), total)
		require.Len(t, transfers, 2)
		assert.Equal(t, "0xtransfer-1", transfers[0].ID)
		assert.Equal(t, "0xtransfer-2", transfers[1].ID)
	})

	t.Run("unknown token has no transfers", func(t *testing.T) {
		transfers, total, err := store.GetTransfersByTokenID(ctx, "999", 10, 0)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), total)
		assert.Empty(t, transfers)
	})
}

func testApprovalsAndOwnership(t *testing.T, store Store) {
	ctx := context.Background()
	ts := time.Unix(1700000000, 0).UTC()

	approval := &schema.Approval{
		ID:              "0xapproval",
		Owner:           "0x00000000000000000000000000000000000000c1",
		Approved:        "0x00000000000000000000000000000000000000c2",
		TokenID:         "115792089237316195423570985008687907853269984665640564039457584007913129639935",
		BlockNumber:     1,
		BlockTimestamp:  ts,
		TransactionHash: "0xtx",
	}
	require.NoError(t, store.UpsertApproval(ctx, approval))
	require.NoError(t, store.UpsertApproval(ctx, approval))

	require.NoError(t, store.UpsertApprovalForAll(ctx, &schema.ApprovalForAll{
		ID:              "0xapproval-for-all",
		Owner:           "0x00000000000000000000000000000000000000c1",
		Operator:        "0x00000000000000000000000000000000000000c3",
		Approved:        true,
		BlockNumber:     1,
		BlockTimestamp:  ts,
		TransactionHash: "0xtx",
	}))

	require.NoError(t, store.UpsertOwnershipTransferred(ctx, &schema.OwnershipTransferred{
		ID:              "0xownership",
		PreviousOwner:   "0x0000000000000000000000000000000000000000",
		NewOwner:        "0x00000000000000000000000000000000000000c1",
		BlockNumber:     1,
		BlockTimestamp:  ts,
		TransactionHash: "0xtx",
	}))
}

func testBlockCursor(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("get non-existent cursor returns 0", func(t *testing.T) {
		cursor, err := store.GetBlockCursor(ctx, "test_chain_nonexistent")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), cursor)
	})

	t.Run("set and update cursor", func(t *testing.T) {
		chain := "test_chain_cursor"

		require.NoError(t, store.SetBlockCursor(ctx, chain, 100))
		require.NoError(t, store.SetBlockCursor(ctx, chain, 200))

		cursor, err := store.GetBlockCursor(ctx, chain)
		require.NoError(t, err)
		assert.Equal(t, uint64(200), cursor)
	})
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "fest", escapeLike("fest"))
	assert.Equal(t, `100\%\_club`, escapeLike("100%_club"))
	assert.Equal(t, `a\\b`, escapeLike(`a\b`))
}

func TestNormalizeConnectionPoolSettings(t *testing.T) {
	maxOpen, maxIdle, lifetime, idleTime := NormalizeConnectionPoolSettings(0, 0, 0, 0)
	assert.Equal(t, 10, maxOpen)
	assert.Equal(t, 5, maxIdle)
	assert.Equal(t, 5*time.Minute, lifetime)
	assert.Equal(t, 10*time.Minute, idleTime)

	maxOpen, maxIdle, _, _ = NormalizeConnectionPoolSettings(3, 8, time.Minute, time.Minute)
	assert.Equal(t, 3, maxOpen)
	assert.Equal(t, 3, maxIdle)
}

// RunStoreTests runs all store tests against the given store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"UpsertMemory", testUpsertMemory},
		{"ListMemories", testListMemories},
		{"Transfers", testTransfers},
		{"ApprovalsAndOwnership", testApprovalsAndOwnership},
		{"BlockCursor", testBlockCursor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}

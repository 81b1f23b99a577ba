package store

import (
	"context"

	"github.com/nitk/memory-vault/internal/store/schema"
)

// MemoryQueryFilter holds the filters of a memory listing.
// Results are always ordered by date, newest first.
type MemoryQueryFilter struct {
	// EventType matches memories whose event type contains it, case-insensitively
	EventType string
	// DateGTE keeps memories dated at or after this unix timestamp
	DateGTE int64
	// Creator keeps memories minted by this lowercase address
	Creator string
	// OrderAsc lists the oldest date first instead of the newest
	OrderAsc bool
	Limit    int
	Offset   uint64
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// UpsertMemory creates or replaces a memory record
	UpsertMemory(ctx context.Context, memory *schema.Memory) error
	// UpsertApproval creates or replaces an approval record
	UpsertApproval(ctx context.Context, approval *schema.Approval) error
	// UpsertApprovalForAll creates or replaces an operator approval record
	UpsertApprovalForAll(ctx context.Context, approval *schema.ApprovalForAll) error
	// UpsertOwnershipTransferred creates or replaces a contract ownership transfer record
	UpsertOwnershipTransferred(ctx context.Context, transfer *schema.OwnershipTransferred) error
	// UpsertTransfer creates or replaces a token transfer record
	UpsertTransfer(ctx context.Context, transfer *schema.Transfer) error

	// GetMemoryByID retrieves a memory by its record ID, domain.ErrMemoryNotFound if it does not exist
	GetMemoryByID(ctx context.Context, id string) (*schema.Memory, error)
	// ListMemories retrieves memories matching the filter and the total count of matches
	ListMemories(ctx context.Context, filter MemoryQueryFilter) ([]schema.Memory, uint64, error)
	// GetTransfersByTokenID retrieves the transfers of a token, oldest first, and the total count
	GetTransfersByTokenID(ctx context.Context, tokenID string, limit int, offset uint64) ([]schema.Transfer, uint64, error)

	// GetBlockCursor retrieves the last processed block number for a chain
	GetBlockCursor(ctx context.Context, chain string) (uint64, error)
	// SetBlockCursor stores the last processed block number for a chain
	SetBlockCursor(ctx context.Context, chain string, blockNumber uint64) error
}

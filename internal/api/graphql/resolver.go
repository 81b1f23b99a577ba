package graphql

import (
	"context"

	"github.com/nitk/memory-vault/internal/api/shared/dto"
	apierrors "github.com/nitk/memory-vault/internal/api/shared/errors"
	"github.com/nitk/memory-vault/internal/api/shared/executor"
)

// Resolver is the root resolver that holds executor
type Resolver struct {
	executor executor.Executor
}

// NewResolver creates a new root resolver with executor
func NewResolver(exec executor.Executor) *Resolver {
	return &Resolver{
		executor: exec,
	}
}

// Query returns the query resolver
func (r *Resolver) Query() QueryResolver {
	return &queryResolver{r}
}

type queryResolver struct{ *Resolver }

// MemoryMinteds lists memories; BigInt filter values are decoded here so the
// executor only sees native integers
func (r *queryResolver) MemoryMinteds(ctx context.Context, where *MemoryMintedFilter, _ *MemoryMintedOrderBy, orderDirection *OrderDirection, first *int, skip *int) ([]*dto.MemoryResponse, error) {
	var eventType, creator string
	var dateGTE int64

	if where != nil {
		if where.EventTypeContainsNocase != nil {
			eventType = *where.EventTypeContainsNocase
		}
		if where.Creator != nil {
			creator = *where.Creator
		}
		if where.DateGte != nil {
			n, err := where.DateGte.Int64()
			if err != nil {
				return nil, apierrors.NewBadRequestError("invalid date_gte", err.Error())
			}
			dateGTE = n
		}
	}

	offset, err := pageOffset(first, skip)
	if err != nil {
		return nil, err
	}

	orderAsc := orderDirection != nil && *orderDirection == OrderDirectionAsc

	result, err := r.executor.ListMemories(ctx, eventType, dateGTE, creator, orderAsc, first, offset)
	if err != nil {
		return nil, err
	}

	memories := make([]*dto.MemoryResponse, len(result.Memories))
	for i := range result.Memories {
		memories[i] = &result.Memories[i]
	}
	return memories, nil
}

// Memory returns a single memory, nil when it does not exist
func (r *queryResolver) Memory(ctx context.Context, id string) (*dto.MemoryResponse, error) {
	return r.executor.GetMemory(ctx, id)
}

// Transfers lists the transfers of a token, oldest first
func (r *queryResolver) Transfers(ctx context.Context, tokenID BigInt, first *int, skip *int) ([]*dto.TransferResponse, error) {
	if tokenID.Negative() {
		return nil, apierrors.NewBadRequestError("invalid tokenId", "tokenId must not be negative")
	}

	offset, err := pageOffset(first, skip)
	if err != nil {
		return nil, err
	}

	result, err := r.executor.GetTransfers(ctx, string(tokenID), first, offset)
	if err != nil {
		return nil, err
	}

	transfers := make([]*dto.TransferResponse, len(result.Transfers))
	for i := range result.Transfers {
		transfers[i] = &result.Transfers[i]
	}
	return transfers, nil
}

// pageOffset validates first and skip and converts skip to an offset
func pageOffset(first, skip *int) (*uint64, error) {
	if first != nil && *first < 0 {
		return nil, apierrors.NewBadRequestError("invalid pagination", "first must not be negative")
	}
	if skip == nil {
		return nil, nil
	}
	if *skip < 0 {
		return nil, apierrors.NewBadRequestError("invalid pagination", "skip must not be negative")
	}

	offset := uint64(*skip) //nolint:gosec,G115 // validated non-negative
	return &offset, nil
}

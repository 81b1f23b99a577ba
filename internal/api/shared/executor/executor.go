package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/nitk/memory-vault/internal/api/shared/constants"
	"github.com/nitk/memory-vault/internal/api/shared/dto"
	apierrors "github.com/nitk/memory-vault/internal/api/shared/errors"
	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/logger"
	"github.com/nitk/memory-vault/internal/storage"
	"github.com/nitk/memory-vault/internal/store"
	"github.com/nitk/memory-vault/internal/uri"
)

// Executor is the business logic shared by the REST and GraphQL surfaces
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// GetMemory retrieves a memory by its record ID, nil if it does not exist
	GetMemory(ctx context.Context, id string) (*dto.MemoryResponse, error)

	// ListMemories retrieves memories whose event type contains eventType, dated on or after dateGTE, newest date first unless orderAsc
	ListMemories(ctx context.Context, eventType string, dateGTE int64, creator string, orderAsc bool, limit *int, offset *uint64) (*dto.MemoryListResponse, error)

	// GetTransfers retrieves the transfers of a token, oldest first
	GetTransfers(ctx context.Context, tokenID string, limit *int, offset *uint64) (*dto.TransferListResponse, error)

	// Upload stores a file on the storage network and returns its CID
	Upload(ctx context.Context, file storage.File) (*dto.UploadResponse, error)
}

type executor struct {
	store    store.Store
	uploader storage.Uploader
	resolver uri.Resolver
}

func NewExecutor(store store.Store, uploader storage.Uploader, resolver uri.Resolver) Executor {
	return &executor{store: store, uploader: uploader, resolver: resolver}
}

func (e *executor) GetMemory(ctx context.Context, id string) (*dto.MemoryResponse, error) {
	memory, err := e.store.GetMemoryByID(ctx, id)
	if errors.Is(err, domain.ErrMemoryNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get memory: %v", err))
	}

	memoryDTO := dto.MapMemoryToDTO(*memory)
	return &memoryDTO, nil
}

func (e *executor) ListMemories(ctx context.Context, eventType string, dateGTE int64, creator string, orderAsc bool, limit *int, offset *uint64) (*dto.MemoryListResponse, error) {
	limit, offset = pagination(limit, offset, constants.DEFAULT_MEMORIES_LIMIT)

	filter := store.MemoryQueryFilter{
		EventType: eventType,
		DateGTE:   dateGTE,
		Creator:   creator,
		OrderAsc:  orderAsc,
		Limit:     *limit,
		Offset:    *offset,
	}

	results, total, err := e.store.ListMemories(ctx, filter)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list memories: %v", err))
	}

	memories := make([]dto.MemoryResponse, len(results))
	for i, result := range results {
		memories[i] = dto.MapMemoryToDTO(result)
	}

	return &dto.MemoryListResponse{
		Memories: memories,
		Offset:   nextOffset(*offset, len(results), total),
		Total:    total,
	}, nil
}

func (e *executor) GetTransfers(ctx context.Context, tokenID string, limit *int, offset *uint64) (*dto.TransferListResponse, error) {
	limit, offset = pagination(limit, offset, constants.DEFAULT_TRANSFERS_LIMIT)

	results, total, err := e.store.GetTransfersByTokenID(ctx, tokenID, *limit, *offset)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get transfers: %v", err))
	}

	transfers := make([]dto.TransferResponse, len(results))
	for i, result := range results {
		transfers[i] = dto.MapTransferToDTO(result)
	}

	return &dto.TransferListResponse{
		Transfers: transfers,
		Offset:    nextOffset(*offset, len(results), total),
		Total:     total,
	}, nil
}

func (e *executor) Upload(ctx context.Context, file storage.File) (*dto.UploadResponse, error) {
	if file.ContentType == "" || file.ContentType == "application/octet-stream" {
		file.ContentType = mimetype.Detect(file.Content).String()
	}

	cid, err := e.uploader.Store(ctx, file)
	if err != nil {
		if errors.Is(err, storage.ErrNoSpaceAvailable) {
			return nil, apierrors.NewStorageError("No storage space available", err.Error())
		}
		return nil, apierrors.NewStorageError("Failed to store file", err.Error())
	}

	gatewayURL, err := e.resolver.Resolve(cid)
	if err != nil {
		// The file is stored; only the convenience link is missing
		logger.WarnCtx(ctx, "Failed to resolve gateway URL", zap.String("cid", cid), zap.Error(err))
	}

	return &dto.UploadResponse{
		CID:         cid,
		Filename:    file.Name,
		ContentType: file.ContentType,
		Size:        len(file.Content),
		GatewayURL:  gatewayURL,
	}, nil
}

// pagination applies the default limit and offset and caps the limit
func pagination(limit *int, offset *uint64, defaultLimit int) (*int, *uint64) {
	if limit == nil || *limit <= 0 {
		limit = &defaultLimit
	}
	if *limit > constants.MAX_PAGE_SIZE {
		maxLimit := constants.MAX_PAGE_SIZE
		limit = &maxLimit
	}
	if offset == nil {
		defaultOffset := constants.DEFAULT_OFFSET
		offset = &defaultOffset
	}
	return limit, offset
}

func nextOffset(offset uint64, count int, total uint64) *uint64 {
	if offset+uint64(count) < total { //nolint:gosec,G115
		next := offset + uint64(count) //nolint:gosec,G115
		return &next
	}
	return nil
}

package normalizer

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/nitk/memory-vault/internal/contract"
	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/logger"
	"github.com/nitk/memory-vault/internal/store"
)

// Normalizer turns raw vault logs into index records
//
//go:generate mockgen -source=normalizer.go -destination=../mocks/normalizer.go -package=mocks -mock_names=Normalizer=MockNormalizer
type Normalizer interface {
	// HandleLog decodes a vault log, stores its record and describes what was indexed.
	// Logs of unknown events are ignored and return a nil event.
	HandleLog(ctx context.Context, log types.Log, blockTimestamp time.Time) (*domain.IndexedEvent, error)
}

type normalizer struct {
	chain domain.Chain
	store store.Store
}

// NewNormalizer creates a normalizer that persists records through st
func NewNormalizer(chain domain.Chain, st store.Store) Normalizer {
	return &normalizer{
		chain: chain,
		store: st,
	}
}

// HandleLog decodes a vault log and dispatches it to the matching handler
func (n *normalizer) HandleLog(ctx context.Context, log types.Log, blockTimestamp time.Time) (*domain.IndexedEvent, error) {
	name, ok := contract.EventName(log)
	if !ok {
		logger.DebugCtx(ctx, "Ignoring log of unknown event",
			zap.String("txHash", log.TxHash.Hex()),
			zap.Uint("logIndex", log.Index))
		return nil, nil
	}

	switch name {
	case contract.EventMemoryMinted:
		return n.handleMemoryMinted(ctx, log, blockTimestamp)
	case contract.EventApproval:
		return n.handleApproval(ctx, log, blockTimestamp)
	case contract.EventApprovalForAll:
		return n.handleApprovalForAll(ctx, log, blockTimestamp)
	case contract.EventOwnershipTransferred:
		return n.handleOwnershipTransferred(ctx, log, blockTimestamp)
	case contract.EventTransfer:
		return n.handleTransfer(ctx, log, blockTimestamp)
	default:
		return nil, nil
	}
}

func (n *normalizer) handleMemoryMinted(ctx context.Context, log types.Log, blockTimestamp time.Time) (*domain.IndexedEvent, error) {
	event := contract.MemoryMinted{Raw: log}
	if err := contract.UnpackLog(&event, contract.EventMemoryMinted, log); err != nil {
		return nil, err
	}

	record := MapMemoryMinted(&event, blockTimestamp)
	if err := n.store.UpsertMemory(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store memory %s: %w", record.ID, err)
	}

	return n.indexedEvent(domain.EventKindMemoryMinted, record.ID, &record.TokenID, log, blockTimestamp), nil
}

func (n *normalizer) handleApproval(ctx context.Context, log types.Log, blockTimestamp time.Time) (*domain.IndexedEvent, error) {
	event := contract.Approval{Raw: log}
	if err := contract.UnpackLog(&event, contract.EventApproval, log); err != nil {
		return nil, err
	}

	record := MapApproval(&event, blockTimestamp)
	if err := n.store.UpsertApproval(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store approval %s: %w", record.ID, err)
	}

	return n.indexedEvent(domain.EventKindApproval, record.ID, &record.TokenID, log, blockTimestamp), nil
}

func (n *normalizer) handleApprovalForAll(ctx context.Context, log types.Log, blockTimestamp time.Time) (*domain.IndexedEvent, error) {
	event := contract.ApprovalForAll{Raw: log}
	if err := contract.UnpackLog(&event, contract.EventApprovalForAll, log); err != nil {
		return nil, err
	}

	record := MapApprovalForAll(&event, blockTimestamp)
	if err := n.store.UpsertApprovalForAll(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store approval for all %s: %w", record.ID, err)
	}

	return n.indexedEvent(domain.EventKindApprovalForAll, record.ID, nil, log, blockTimestamp), nil
}

func (n *normalizer) handleOwnershipTransferred(ctx context.Context, log types.Log, blockTimestamp time.Time) (*domain.IndexedEvent, error) {
	event := contract.OwnershipTransferred{Raw: log}
	if err := contract.UnpackLog(&event, contract.EventOwnershipTransferred, log); err != nil {
		return nil, err
	}

	record := MapOwnershipTransferred(&event, blockTimestamp)
	if err := n.store.UpsertOwnershipTransferred(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store ownership transferred %s: %w", record.ID, err)
	}

	return n.indexedEvent(domain.EventKindOwnershipTransferred, record.ID, nil, log, blockTimestamp), nil
}

func (n *normalizer) handleTransfer(ctx context.Context, log types.Log, blockTimestamp time.Time) (*domain.IndexedEvent, error) {
	event := contract.Transfer{Raw: log}
	if err := contract.UnpackLog(&event, contract.EventTransfer, log); err != nil {
		return nil, err
	}

	record := MapTransfer(&event, blockTimestamp)
	if err := n.store.UpsertTransfer(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to store transfer %s: %w", record.ID, err)
	}

	return n.indexedEvent(domain.EventKindTransfer, record.ID, &record.TokenID, log, blockTimestamp), nil
}

func (n *normalizer) indexedEvent(kind domain.EventKind, recordID string, tokenID *string, log types.Log, blockTimestamp time.Time) *domain.IndexedEvent {
	return &domain.IndexedEvent{
		Chain:          n.chain,
		Kind:           kind,
		RecordID:       recordID,
		TokenID:        tokenID,
		TxHash:         log.TxHash.Hex(),
		BlockNumber:    log.BlockNumber,
		BlockTimestamp: blockTimestamp.UTC(),
	}
}

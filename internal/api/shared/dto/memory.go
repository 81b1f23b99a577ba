package dto

import (
	"time"

	"github.com/nitk/memory-vault/internal/store/schema"
)

// MemoryResponse represents a minted memory
type MemoryResponse struct {
	ID              string    `json:"id"`
	TokenID         string    `json:"token_id"`
	Creator         string    `json:"creator"`
	IPFSHash        string    `json:"ipfs_hash"`
	EventType       string    `json:"event_type"`
	Date            string    `json:"date"`
	Tags            []string  `json:"tags"`
	BlockNumber     uint64    `json:"block_number"`
	BlockTimestamp  time.Time `json:"block_timestamp"`
	TransactionHash string    `json:"transaction_hash"`
}

// MemoryListResponse represents a page of memories
type MemoryListResponse struct {
	Memories []MemoryResponse `json:"memories"`
	Offset   *uint64          `json:"offset,omitempty"`
	Total    uint64           `json:"total"`
}

// TransferResponse represents a transfer of a memory token
type TransferResponse struct {
	ID              string    `json:"id"`
	From            string    `json:"from"`
	To              string    `json:"to"`
	TokenID         string    `json:"token_id"`
	BlockNumber     uint64    `json:"block_number"`
	BlockTimestamp  time.Time `json:"block_timestamp"`
	TransactionHash string    `json:"transaction_hash"`
}

// TransferListResponse represents a page of transfers
type TransferListResponse struct {
	Transfers []TransferResponse `json:"transfers"`
	Offset    *uint64            `json:"offset,omitempty"`
	Total     uint64             `json:"total"`
}

// MapMemoryToDTO maps a memory row to its response
func MapMemoryToDTO(memory schema.Memory) MemoryResponse {
	tags := []string(memory.Tags)
	if tags == nil {
		tags = []string{}
	}

	return MemoryResponse{
		ID:              memory.ID,
		TokenID:         memory.TokenID,
		Creator:         memory.Creator,
		IPFSHash:        memory.IPFSHash,
		EventType:       memory.EventType,
		Date:            memory.Date,
		Tags:            tags,
		BlockNumber:     memory.BlockNumber,
		BlockTimestamp:  memory.BlockTimestamp,
		TransactionHash: memory.TransactionHash,
	}
}

// MapTransferToDTO maps a transfer row to its response
func MapTransferToDTO(transfer schema.Transfer) TransferResponse {
	return TransferResponse{
		ID:              transfer.ID,
		From:            transfer.From,
		To:              transfer.To,
		TokenID:         transfer.TokenID,
		BlockNumber:     transfer.BlockNumber,
		BlockTimestamp:  transfer.BlockTimestamp,
		TransactionHash: transfer.TransactionHash,
	}
}

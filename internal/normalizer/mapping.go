package normalizer

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/core/types"
	"gorm.io/datatypes"

	"github.com/nitk/memory-vault/internal/contract"
	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/store/schema"
)

// MapMemoryMinted builds the memory record of a MemoryMinted log
func MapMemoryMinted(event *contract.MemoryMinted, blockTimestamp time.Time) *schema.Memory {
	return &schema.Memory{
		ID:              recordID(event.Raw),
		TokenID:         decimal(event.TokenId),
		Creator:         domain.NormalizeAddress(event.Creator),
		IPFSHash:        event.IpfsHash,
		EventType:       event.EventType,
		Date:            decimal(event.Date),
		Tags:            datatypes.JSONSlice[string]{},
		BlockNumber:     event.Raw.BlockNumber,
		BlockTimestamp:  blockTimestamp.UTC(),
		TransactionHash: event.Raw.TxHash.Hex(),
	}
}

// MapApproval builds the approval record of an Approval log
func MapApproval(event *contract.Approval, blockTimestamp time.Time) *schema.Approval {
	return &schema.Approval{
		ID:              recordID(event.Raw),
		Owner:           domain.NormalizeAddress(event.Owner),
		Approved:        domain.NormalizeAddress(event.Approved),
		TokenID:         decimal(event.TokenId),
		BlockNumber:     event.Raw.BlockNumber,
		BlockTimestamp:  blockTimestamp.UTC(),
		TransactionHash: event.Raw.TxHash.Hex(),
	}
}

// MapApprovalForAll builds the operator approval record of an ApprovalForAll log
func MapApprovalForAll(event *contract.ApprovalForAll, blockTimestamp time.Time) *schema.ApprovalForAll {
	return &schema.ApprovalForAll{
		ID:              recordID(event.Raw),
		Owner:           domain.NormalizeAddress(event.Owner),
		Operator:        domain.NormalizeAddress(event.Operator),
		Approved:        event.Approved,
		BlockNumber:     event.Raw.BlockNumber,
		BlockTimestamp:  blockTimestamp.UTC(),
		TransactionHash: event.Raw.TxHash.Hex(),
	}
}

// MapOwnershipTransferred builds the ownership record of an OwnershipTransferred log
func MapOwnershipTransferred(event *contract.OwnershipTransferred, blockTimestamp time.Time) *schema.OwnershipTransferred {
	return &schema.OwnershipTransferred{
		ID:              recordID(event.Raw),
		PreviousOwner:   domain.NormalizeAddress(event.PreviousOwner),
		NewOwner:        domain.NormalizeAddress(event.NewOwner),
		BlockNumber:     event.Raw.BlockNumber,
		BlockTimestamp:  blockTimestamp.UTC(),
		TransactionHash: event.Raw.TxHash.Hex(),
	}
}

// MapTransfer builds the transfer record of a Transfer log
func MapTransfer(event *contract.Transfer, blockTimestamp time.Time) *schema.Transfer {
	return &schema.Transfer{
		ID:              recordID(event.Raw),
		From:            domain.NormalizeAddress(event.From),
		To:              domain.NormalizeAddress(event.To),
		TokenID:         decimal(event.TokenId),
		BlockNumber:     event.Raw.BlockNumber,
		BlockTimestamp:  blockTimestamp.UTC(),
		TransactionHash: event.Raw.TxHash.Hex(),
	}
}

func recordID(log types.Log) string {
	return domain.RecordID(log.TxHash, log.Index)
}

// decimal renders a uint256 as a base-10 string, "0" for nil
func decimal(value *big.Int) string {
	if value == nil {
		return "0"
	}
	return value.String()
}

package contract

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// MemoryMinted is emitted once per minted memory
type MemoryMinted struct {
	TokenId   *big.Int //nolint:revive // field names follow the ABI argument names
	Creator   common.Address
	IpfsHash  string
	EventType string
	Date      *big.Int
	Raw       types.Log
}

// Approval is the ERC721 single-token approval event
type Approval struct {
	Owner    common.Address
	Approved common.Address
	TokenId  *big.Int //nolint:revive
	Raw      types.Log
}

// ApprovalForAll is the ERC721 operator approval event
type ApprovalForAll struct {
	Owner    common.Address
	Operator common.Address
	Approved bool
	Raw      types.Log
}

// OwnershipTransferred is emitted when the contract owner changes
type OwnershipTransferred struct {
	PreviousOwner common.Address
	NewOwner      common.Address
	Raw           types.Log
}

// Transfer is the ERC721 transfer event; mints come from the zero address
type Transfer struct {
	From    common.Address
	To      common.Address
	TokenId *big.Int //nolint:revive
	Raw     types.Log
}

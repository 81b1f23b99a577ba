package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Memory represents a minted memory token, one row per MemoryMinted log
type Memory struct {
	// ID is the transaction hash followed by the little-endian log index
	ID string `gorm:"column:id;primaryKey;type:text"`
	// TokenID is the uint256 token id as a decimal string
	TokenID string `gorm:"column:token_id;not null;type:numeric(78,0)"`
	// Creator is the lowercase hex address of the minter
	Creator   string `gorm:"column:creator;not null;type:text"`
	IPFSHash  string `gorm:"column:ipfs_hash;not null;type:text"`
	EventType string `gorm:"column:event_type;not null;type:text"`
	// Date is the memory date in unix seconds, kept verbatim as a uint256 decimal string
	Date string `gorm:"column:date;not null;type:numeric(78,0)"`
	// Tags is always empty: the event does not carry the tag list
	Tags            datatypes.JSONSlice[string] `gorm:"column:tags;not null;type:jsonb;default:'[]'"`
	BlockNumber     uint64                      `gorm:"column:block_number;not null"`
	BlockTimestamp  time.Time                   `gorm:"column:block_timestamp;not null"`
	TransactionHash string                      `gorm:"column:transaction_hash;not null;type:text"`
	CreatedAt       time.Time                   `gorm:"column:created_at;not null;default:now()"`
}

func (Memory) TableName() string {
	return "memories"
}

package schema

import "time"

// Transfer represents a Transfer log of the vault contract.
// Mints are transfers from the zero address.
type Transfer struct {
	ID              string    `gorm:"column:id;primaryKey;type:text"`
	From            string    `gorm:"column:from_address;not null;type:text"`
	To              string    `gorm:"column:to_address;not null;type:text"`
	TokenID         string    `gorm:"column:token_id;not null;type:numeric(78,0)"`
	BlockNumber     uint64    `gorm:"column:block_number;not null"`
	BlockTimestamp  time.Time `gorm:"column:block_timestamp;not null"`
	TransactionHash string    `gorm:"column:transaction_hash;not null;type:text"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;default:now()"`
}

func (Transfer) TableName() string {
	return "transfers"
}

// OwnershipTransferred represents an OwnershipTransferred log of the vault contract
type OwnershipTransferred struct {
	ID              string    `gorm:"column:id;primaryKey;type:text"`
	PreviousOwner   string    `gorm:"column:previous_owner;not null;type:text"`
	NewOwner        string    `gorm:"column:new_owner;not null;type:text"`
	BlockNumber     uint64    `gorm:"column:block_number;not null"`
	BlockTimestamp  time.Time `gorm:"column:block_timestamp;not null"`
	TransactionHash string    `gorm:"column:transaction_hash;not null;type:text"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;default:now()"`
}

func (OwnershipTransferred) TableName() string {
	return "ownership_transferreds"
}

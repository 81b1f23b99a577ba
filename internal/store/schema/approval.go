package schema

import "time"

// Approval represents an Approval log of the vault contract
type Approval struct {
	ID              string    `gorm:"column:id;primaryKey;type:text"`
	Owner           string    `gorm:"column:owner;not null;type:text"`
	Approved        string    `gorm:"column:approved;not null;type:text"`
	TokenID         string    `gorm:"column:token_id;not null;type:numeric(78,0)"`
	BlockNumber     uint64    `gorm:"column:block_number;not null"`
	BlockTimestamp  time.Time `gorm:"column:block_timestamp;not null"`
	TransactionHash string    `gorm:"column:transaction_hash;not null;type:text"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;default:now()"`
}

func (Approval) TableName() string {
	return "approvals"
}

// ApprovalForAll represents an ApprovalForAll log of the vault contract
type ApprovalForAll struct {
	ID              string    `gorm:"column:id;primaryKey;type:text"`
	Owner           string    `gorm:"column:owner;not null;type:text"`
	Operator        string    `gorm:"column:operator;not null;type:text"`
	Approved        bool      `gorm:"column:approved;not null"`
	BlockNumber     uint64    `gorm:"column:block_number;not null"`
	BlockTimestamp  time.Time `gorm:"column:block_timestamp;not null"`
	TransactionHash string    `gorm:"column:transaction_hash;not null;type:text"`
	CreatedAt       time.Time `gorm:"column:created_at;not null;default:now()"`
}

func (ApprovalForAll) TableName() string {
	return "approval_for_alls"
}

package schema

import "time"

const blockCursorKeyPrefix = "block_cursor:"

// KeyValueStore holds indexer state; the only entries today are block cursors
type KeyValueStore struct {
	Key       string    `gorm:"column:key;primaryKey;type:text"`
	Value     string    `gorm:"column:value;not null;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (KeyValueStore) TableName() string {
	return "key_value_store"
}

// BlockCursorKey is the key of the block cursor of a chain
func BlockCursorKey(chain string) string {
	return blockCursorKeyPrefix + chain
}

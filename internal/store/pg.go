package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nitk/memory-vault/internal/domain"
	"github.com/nitk/memory-vault/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// If any of the pool settings are 0, the defaults of NormalizeConnectionPoolSettings are used.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 10
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 10
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// upsert inserts the record or overwrites the row with the same id
func (s *pgStore) upsert(ctx context.Context, record any) error {
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(record).Error
}

// UpsertMemory creates or replaces a memory record
func (s *pgStore) UpsertMemory(ctx context.Context, memory *schema.Memory) error {
	if err := s.upsert(ctx, memory); err != nil {
		return fmt.Errorf("failed to upsert memory: %w", err)
	}
	return nil
}

// UpsertApproval creates or replaces an approval record
func (s *pgStore) UpsertApproval(ctx context.Context, approval *schema.Approval) error {
	if err := s.upsert(ctx, approval); err != nil {
		return fmt.Errorf("failed to upsert approval: %w", err)
	}
	return nil
}

// UpsertApprovalForAll creates or replaces an operator approval record
func (s *pgStore) UpsertApprovalForAll(ctx context.Context, approval *schema.ApprovalForAll) error {
	if err := s.upsert(ctx, approval); err != nil {
		return fmt.Errorf("failed to upsert approval for all: %w", err)
	}
	return nil
}

// UpsertOwnershipTransferred creates or replaces a contract ownership transfer record
func (s *pgStore) UpsertOwnershipTransferred(ctx context.Context, transfer *schema.OwnershipTransferred) error {
	if err := s.upsert(ctx, transfer); err != nil {
		return fmt.Errorf("failed to upsert ownership transferred: %w", err)
	}
	return nil
}

// UpsertTransfer creates or replaces a token transfer record
func (s *pgStore) UpsertTransfer(ctx context.Context, transfer *schema.Transfer) error {
	if err := s.upsert(ctx, transfer); err != nil {
		return fmt.Errorf("failed to upsert transfer: %w", err)
	}
	return nil
}

// GetMemoryByID retrieves a memory by its record ID
func (s *pgStore) GetMemoryByID(ctx context.Context, id string) (*schema.Memory, error) {
	var memory schema.Memory
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&memory).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemoryNotFound
		}
		return nil, fmt.Errorf("failed to get memory: %w", err)
	}

	return &memory, nil
}

// ListMemories retrieves memories matching the filter, newest first
func (s *pgStore) ListMemories(ctx context.Context, filter MemoryQueryFilter) ([]schema.Memory, uint64, error) {
	query := s.db.WithContext(ctx).Model(&schema.Memory{})

	if filter.EventType != "" {
		query = query.Where("event_type ILIKE ?", "%"+escapeLike(filter.EventType)+"%")
	}
	if filter.DateGTE > 0 {
		query = query.Where("date >= ?", filter.DateGTE)
	}
	if filter.Creator != "" {
		query = query.Where("creator = ?", strings.ToLower(filter.Creator))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count memories: %w", err)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(int(filter.Offset)) //nolint:gosec,G115
	}

	var memories []schema.Memory
	order := "DESC"
	if filter.OrderAsc {
		order = "ASC"
	}
	err := query.Order("date " + order).Order("id " + order).Find(&memories).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list memories: %w", err)
	}

	return memories, uint64(total), nil //nolint:gosec,G115
}

// GetTransfersByTokenID retrieves the transfers of a token, oldest first
func (s *pgStore) GetTransfersByTokenID(ctx context.Context, tokenID string, limit int, offset uint64) ([]schema.Transfer, uint64, error) {
	// Compare as text so the decimal string is not reinterpreted by the driver
	query := s.db.WithContext(ctx).Model(&schema.Transfer{}).Where("token_id::text = ?", tokenID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transfers: %w", err)
	}

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(int(offset)) //nolint:gosec,G115
	}

	var transfers []schema.Transfer
	err := query.Order("block_number ASC").Order("id ASC").Find(&transfers).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get transfers: %w", err)
	}

	return transfers, uint64(total), nil //nolint:gosec,G115
}

// GetBlockCursor retrieves the last processed block number for a chain
func (s *pgStore) GetBlockCursor(ctx context.Context, chain string) (uint64, error) {
	key := schema.BlockCursorKey(chain)

	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get block cursor: %w", err)
	}

	blockNumber, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse block cursor: %w", err)
	}

	return blockNumber, nil
}

// SetBlockCursor stores the last processed block number for a chain
func (s *pgStore) SetBlockCursor(ctx context.Context, chain string, blockNumber uint64) error {
	kv := schema.KeyValueStore{
		Key:   schema.BlockCursorKey(chain),
		Value: strconv.FormatUint(blockNumber, 10),
	}

	err := s.db.WithContext(ctx).Save(&kv).Error
	if err != nil {
		return fmt.Errorf("failed to set block cursor: %w", err)
	}

	return nil
}

// escapeLike escapes the LIKE wildcards of a user supplied pattern
func escapeLike(value string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(value)
}

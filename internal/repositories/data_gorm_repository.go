package repositories

import (
	"context"
	"errors"
	"fmt"

	"kvauth/internal/models"

	"gorm.io/gorm"
)

// GORMDataRepository is a GORM implementation of DataRepository.
type GORMDataRepository struct {
	db *gorm.DB
}

// NewGORMDataRepository creates a new instance of GORMDataRepository.
func NewGORMDataRepository(db *gorm.DB) *GORMDataRepository {
	return &GORMDataRepository{
		db: db,
	}
}

// byKey builds the key filter. A map condition makes GORM quote the column,
// which matters because KEY is an SQL keyword.
func byKey(key string) map[string]interface{} {
	return map[string]interface{}{"key": key}
}

// Create inserts a new record.
func (r *GORMDataRepository) Create(ctx context.Context, entry *models.DataEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("failed to create entry %s: %w", entry.Key, ErrDuplicate)
		}
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

// GetByKey retrieves the record stored under key.
func (r *GORMDataRepository) GetByKey(ctx context.Context, key string) (*models.DataEntry, error) {
	var entry models.DataEntry
	if err := r.db.WithContext(ctx).Where(byKey(key)).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("entry %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get entry %s: %w", key, err)
	}
	return &entry, nil
}

// UpdateValue replaces the value of every record matching key.
func (r *GORMDataRepository) UpdateValue(ctx context.Context, key, value string) error {
	res := r.db.WithContext(ctx).Model(&models.DataEntry{}).Where(byKey(key)).Update("value", value)
	if res.Error != nil {
		return fmt.Errorf("failed to update entry %s: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("entry %s not found for update: %w", key, ErrNotFound)
	}
	return nil
}

// DeleteByKey removes every record matching key.
func (r *GORMDataRepository) DeleteByKey(ctx context.Context, key string) error {
	res := r.db.WithContext(ctx).Where(byKey(key)).Delete(&models.DataEntry{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete entry %s: %w", key, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("entry %s not found for deletion: %w", key, ErrNotFound)
	}
	return nil
}

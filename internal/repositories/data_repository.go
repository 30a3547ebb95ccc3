package repositories

import (
	"context"

	"kvauth/internal/models"
)

// DataRepository defines the interface for key-value record access.
type DataRepository interface {
	Create(ctx context.Context, entry *models.DataEntry) error
	GetByKey(ctx context.Context, key string) (*models.DataEntry, error)
	UpdateValue(ctx context.Context, key, value string) error
	DeleteByKey(ctx context.Context, key string) error
}

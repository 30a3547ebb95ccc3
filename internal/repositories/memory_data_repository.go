package repositories

import (
	"context"
	"fmt"
	"sync"

	"kvauth/internal/models"
)

// MemoryDataRepository is an in-memory implementation of DataRepository.
type MemoryDataRepository struct {
	entries map[string]models.DataEntry
	nextID  uint
	mu      sync.RWMutex
}

// NewMemoryDataRepository creates a new instance of MemoryDataRepository.
func NewMemoryDataRepository() *MemoryDataRepository {
	return &MemoryDataRepository{
		entries: make(map[string]models.DataEntry),
	}
}

// Create adds a new record and assigns its DataID.
func (r *MemoryDataRepository) Create(_ context.Context, entry *models.DataEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[entry.Key]; ok {
		return fmt.Errorf("failed to create entry %s: %w", entry.Key, ErrDuplicate)
	}
	r.nextID++
	entry.DataID = r.nextID
	r.entries[entry.Key] = *entry
	return nil
}

// GetByKey returns the record stored under key.
func (r *MemoryDataRepository) GetByKey(_ context.Context, key string) (*models.DataEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[key]
	if !ok {
		return nil, fmt.Errorf("entry %s: %w", key, ErrNotFound)
	}
	return &entry, nil
}

// UpdateValue replaces the value stored under key.
func (r *MemoryDataRepository) UpdateValue(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok {
		return fmt.Errorf("entry %s not found for update: %w", key, ErrNotFound)
	}
	entry.Value = value
	r.entries[key] = entry
	return nil
}

// DeleteByKey removes the record stored under key.
func (r *MemoryDataRepository) DeleteByKey(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[key]; !ok {
		return fmt.Errorf("entry %s not found for deletion: %w", key, ErrNotFound)
	}
	delete(r.entries, key)
	return nil
}

package services

import (
	"context"
	"errors"

	"kvauth/internal/apperrors"
	"kvauth/internal/models"
	"kvauth/internal/repositories"
)

// DataService implements the key-value store operations.
type DataService struct {
	repo      repositories.DataRepository
	publisher EventPublisher
}

// NewDataService creates a new DataService. publisher may be nil.
func NewDataService(repo repositories.DataRepository, publisher EventPublisher) *DataService {
	return &DataService{
		repo:      repo,
		publisher: publisher,
	}
}

// Store creates a new record. A key may only be stored once.
func (s *DataService) Store(ctx context.Context, key, value string) error {
	if _, err := s.lookup(ctx, key); err == nil {
		return apperrors.ErrKeyExists
	} else if !errors.Is(err, apperrors.ErrKeyNotFound) {
		return err
	}

	if err := s.repo.Create(ctx, &models.DataEntry{Key: key, Value: value}); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return apperrors.ErrKeyExists
		}
		return apperrors.Internal(err)
	}

	publish(s.publisher, EventDataCreated, map[string]string{"key": key})
	return nil
}

// Retrieve returns the record stored under key.
func (s *DataService) Retrieve(ctx context.Context, key string) (*models.DataEntry, error) {
	return s.lookup(ctx, key)
}

// Update replaces the value stored under an existing key.
func (s *DataService) Update(ctx context.Context, key, value string) error {
	if _, err := s.lookup(ctx, key); err != nil {
		return err
	}
	if err := s.repo.UpdateValue(ctx, key, value); err != nil {
		return translateNotFound(err)
	}

	publish(s.publisher, EventDataUpdated, map[string]string{"key": key})
	return nil
}

// Delete removes an existing key.
func (s *DataService) Delete(ctx context.Context, key string) error {
	if _, err := s.lookup(ctx, key); err != nil {
		return err
	}
	if err := s.repo.DeleteByKey(ctx, key); err != nil {
		return translateNotFound(err)
	}

	publish(s.publisher, EventDataDeleted, map[string]string{"key": key})
	return nil
}

func (s *DataService) lookup(ctx context.Context, key string) (*models.DataEntry, error) {
	if key == "" {
		return nil, apperrors.ErrKeyNotFound
	}
	entry, err := s.repo.GetByKey(ctx, key)
	if err != nil {
		return nil, translateNotFound(err)
	}
	return entry, nil
}

func translateNotFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.ErrKeyNotFound
	}
	return apperrors.Internal(err)
}

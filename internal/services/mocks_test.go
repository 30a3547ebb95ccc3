package services_test

import (
	"context"

	"kvauth/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.UserID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockDataRepository is a mock implementation of repositories.DataRepository
type MockDataRepository struct {
	mock.Mock
}

func (m *MockDataRepository) Create(ctx context.Context, entry *models.DataEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockDataRepository) GetByKey(ctx context.Context, key string) (*models.DataEntry, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DataEntry), args.Error(1)
}

func (m *MockDataRepository) UpdateValue(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockDataRepository) DeleteByKey(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockPublisher is a mock implementation of services.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEvent(eventType string, payload interface{}) error {
	args := m.Called(eventType, payload)
	return args.Error(0)
}

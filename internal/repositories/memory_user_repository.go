package repositories

import (
	"context"
	"fmt"
	"sync"

	"kvauth/internal/models"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
// Users are indexed by username; the email index points at the username.
type MemoryUserRepository struct {
	users   map[string]models.User
	byEmail map[string]string
	nextID  uint
	mu      sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

// Create adds a new user and assigns its UserID.
func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return fmt.Errorf("failed to create user %s: %w", user.Username, ErrDuplicate)
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return fmt.Errorf("failed to create user %s: %w", user.Username, ErrDuplicate)
	}
	r.nextID++
	user.UserID = r.nextID
	r.users[user.Username] = *user
	r.byEmail[user.Email] = user.Username
	return nil
}

// GetByUsername returns a user by username.
func (r *MemoryUserRepository) GetByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", username, ErrNotFound)
	}
	return &user, nil
}

// GetByEmail returns a user by email.
func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	username, ok := r.byEmail[email]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	user := r.users[username]
	return &user, nil
}

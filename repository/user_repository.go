package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	apperrors "storefront-service/errors"
	"storefront-service/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// MemoryUserRepository implements UserRepository on a process-local
// collection with simulated backend latency.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	users   []*models.User
	latency time.Duration
}

func NewMemoryUserRepository(latency time.Duration) *MemoryUserRepository {
	return &MemoryUserRepository{latency: latency}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *models.User) error {
	if err := simulateLatency(ctx, r.latency); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperrors.ErrEmailExists
		}
	}

	cp := *user
	r.users = append(r.users, &cp)
	return nil
}

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := simulateLatency(ctx, r.latency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *MemoryUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	if err := simulateLatency(ctx, r.latency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

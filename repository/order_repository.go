package repository

import (
	"context"
	"sync"
	"time"

	apperrors "storefront-service/errors"
	"storefront-service/models"
)

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	FindByUserID(ctx context.Context, userID string) ([]models.Order, error)
	FindAll(ctx context.Context) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) error
}

// MemoryOrderRepository implements OrderRepository on a process-local
// collection with simulated backend latency. Orders are never deleted.
type MemoryOrderRepository struct {
	mu      sync.RWMutex
	orders  []*models.Order
	latency time.Duration
}

func NewMemoryOrderRepository(latency time.Duration) *MemoryOrderRepository {
	return &MemoryOrderRepository{latency: latency}
}

func (r *MemoryOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if err := simulateLatency(ctx, r.latency); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cp := copyOrder(order)
	r.orders = append(r.orders, &cp)
	return nil
}

func (r *MemoryOrderRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	if err := simulateLatency(ctx, r.latency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID == id {
			cp := copyOrder(o)
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *MemoryOrderRepository) FindByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	if err := simulateLatency(ctx, r.latency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Order{}
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, copyOrder(o))
		}
	}
	return out, nil
}

func (r *MemoryOrderRepository) FindAll(ctx context.Context) ([]models.Order, error) {
	if err := simulateLatency(ctx, r.latency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, copyOrder(o))
	}
	return out, nil
}

func (r *MemoryOrderRepository) Update(ctx context.Context, order *models.Order) error {
	if err := simulateLatency(ctx, r.latency); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.ID == order.ID {
			cp := copyOrder(order)
			r.orders[i] = &cp
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func copyOrder(o *models.Order) models.Order {
	cp := *o
	if len(o.OrderItems) > 0 {
		cp.OrderItems = append([]models.CartItem(nil), o.OrderItems...)
	}
	return cp
}

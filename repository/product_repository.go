package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	apperrors "storefront-service/errors"
	"storefront-service/models"
)

// ProductRepository defines the interface for catalog data access
type ProductRepository interface {
	FindAll(ctx context.Context, keyword string) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	AddReview(ctx context.Context, productID string, review models.Review) (*models.Product, error)
	DecrementStock(ctx context.Context, productID string, qty int) error
}

// MemoryProductRepository implements ProductRepository on a process-local
// collection with simulated backend latency. The collection is guarded by a
// mutex because handlers run concurrently.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products []*models.Product
	latency  time.Duration
}

// NewMemoryProductRepository creates a repository seeded with the demo catalog.
func NewMemoryProductRepository(latency time.Duration) *MemoryProductRepository {
	return &MemoryProductRepository{
		products: seedProducts(),
		latency:  latency,
	}
}

// FindAll returns products matching the keyword as a case-insensitive
// substring of name or description. An empty keyword returns everything.
func (r *MemoryProductRepository) FindAll(ctx context.Context, keyword string) ([]models.Product, error) {
	if err := simulateLatency(ctx, r.latency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	kw := strings.ToLower(strings.TrimSpace(keyword))
	out := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if kw == "" ||
			strings.Contains(strings.ToLower(p.Name), kw) ||
			strings.Contains(strings.ToLower(p.Description), kw) {
			out = append(out, copyProduct(p))
		}
	}
	return out, nil
}

func (r *MemoryProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	if err := simulateLatency(ctx, r.latency); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			cp := copyProduct(p)
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// AddReview appends a review and recomputes the aggregate rating as the mean
// of all review ratings.
func (r *MemoryProductRepository) AddReview(ctx context.Context, productID string, review models.Review) (*models.Product, error) {
	if err := simulateLatency(ctx, r.latency); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ID != productID {
			continue
		}

		p.Reviews = append(p.Reviews, review)

		sum := 0
		for _, rv := range p.Reviews {
			sum += rv.Rating
		}
		p.Rating = float64(sum) / float64(len(p.Reviews))
		p.NumReviews = len(p.Reviews)

		cp := copyProduct(p)
		return &cp, nil
	}
	return nil, apperrors.ErrNotFound
}

// DecrementStock reduces the stock count for a product. Stock never goes
// below zero.
func (r *MemoryProductRepository) DecrementStock(ctx context.Context, productID string, qty int) error {
	if err := simulateLatency(ctx, r.latency); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ID == productID {
			p.CountInStock -= qty
			if p.CountInStock < 0 {
				p.CountInStock = 0
			}
			return nil
		}
	}
	return apperrors.ErrNotFound
}

// copyProduct returns a value copy with its own reviews slice, so callers
// never hold references into the shared collection.
func copyProduct(p *models.Product) models.Product {
	cp := *p
	if len(p.Reviews) > 0 {
		cp.Reviews = append([]models.Review(nil), p.Reviews...)
	}
	return cp
}

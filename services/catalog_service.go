package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "storefront-service/errors"
	"storefront-service/models"
	"storefront-service/repository"
)

// CatalogService defines the business logic interface for the product catalog.
type CatalogService interface {
	ListProducts(ctx context.Context, keyword string) ([]models.Product, *ServiceError)
	GetProduct(ctx context.Context, id string) (*models.Product, *ServiceError)
	AddReview(ctx context.Context, productID string, rating int, comment string, reviewer models.User) (*models.Product, *ServiceError)
}

type catalogServiceImpl struct {
	products repository.ProductRepository
	logger   *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(products repository.ProductRepository, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{
		products: products,
		logger:   logger,
	}
}

func (s *catalogServiceImpl) ListProducts(ctx context.Context, keyword string) ([]models.Product, *ServiceError) {
	products, err := s.products.FindAll(ctx, keyword)
	if err != nil {
		s.logger.Error("ListProducts failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch products"}
	}
	return products, nil
}

func (s *catalogServiceImpl) GetProduct(ctx context.Context, id string) (*models.Product, *ServiceError) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("GetProduct failed", zap.String("product_id", id), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to fetch product"}
	}
	return product, nil
}

// AddReview appends a review authored by the given user. The repository
// recomputes the aggregate rating and review count.
func (s *catalogServiceImpl) AddReview(ctx context.Context, productID string, rating int, comment string, reviewer models.User) (*models.Product, *ServiceError) {
	if rating < 1 || rating > 5 {
		return nil, &ServiceError{StatusCode: 400, Message: "Rating must be between 1 and 5"}
	}
	if strings.TrimSpace(comment) == "" {
		return nil, &ServiceError{StatusCode: 400, Message: "Comment is required"}
	}

	review := models.Review{
		ID:        uuid.NewString(),
		Name:      reviewer.Name,
		Rating:    rating,
		Comment:   comment,
		UserID:    reviewer.ID,
		CreatedAt: time.Now().UTC(),
	}

	product, err := s.products.AddReview(ctx, productID, review)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "Product not found"}
		}
		s.logger.Error("AddReview failed", zap.String("product_id", productID), zap.Error(err))
		return nil, &ServiceError{StatusCode: 500, Message: "Failed to add review"}
	}

	s.logger.Info("Review added",
		zap.String("product_id", productID),
		zap.String("user_id", reviewer.ID),
		zap.Int("rating", rating),
	)
	return product, nil
}

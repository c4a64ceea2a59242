package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "storefront-service/errors"
	"storefront-service/models"
	"storefront-service/repository"
)

func TestFindAll_KeywordFiltersNameAndDescription(t *testing.T) {
	repo := repository.NewMemoryProductRepository(0)

	products, err := repo.FindAll(context.Background(), "headphones")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Wireless Bluetooth Headphones", products[0].Name)

	// matches description text, not just names
	products, err = repo.FindAll(context.Background(), "lumbar")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "Ergonomic Office Chair", products[0].Name)

	// case-insensitive
	products, err = repo.FindAll(context.Background(), "SMARTPHONE")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestFindAll_EmptyKeywordReturnsEverything(t *testing.T) {
	repo := repository.NewMemoryProductRepository(0)

	products, err := repo.FindAll(context.Background(), "")
	assert.NoError(t, err)
	assert.Len(t, products, 6)
}

func TestFindByID(t *testing.T) {
	repo := repository.NewMemoryProductRepository(0)

	product, err := repo.FindByID(context.Background(), "1")
	assert.NoError(t, err)
	assert.Equal(t, 89.99, product.Price)

	_, err = repo.FindByID(context.Background(), "does-not-exist")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestAddReview_RecomputesMeanRating(t *testing.T) {
	repo := repository.NewMemoryProductRepository(0)

	// product 1 boots with a single review rated 4
	_, err := repo.AddReview(context.Background(), "1", models.Review{ID: "r2", Rating: 5})
	assert.NoError(t, err)

	product, err := repo.AddReview(context.Background(), "1", models.Review{ID: "r3", Rating: 3})
	assert.NoError(t, err)

	// reviews [4, 5, 3] -> mean 4.0
	assert.Equal(t, 4.0, product.Rating)
	assert.Equal(t, 3, product.NumReviews)
	assert.Len(t, product.Reviews, 3)
}

func TestAddReview_UnknownProduct(t *testing.T) {
	repo := repository.NewMemoryProductRepository(0)

	_, err := repo.AddReview(context.Background(), "nope", models.Review{Rating: 5})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestDecrementStock(t *testing.T) {
	repo := repository.NewMemoryProductRepository(0)

	assert.NoError(t, repo.DecrementStock(context.Background(), "2", 3))

	product, err := repo.FindByID(context.Background(), "2")
	assert.NoError(t, err)
	assert.Equal(t, 4, product.CountInStock)

	// stock bottoms out at zero
	assert.NoError(t, repo.DecrementStock(context.Background(), "2", 100))
	product, _ = repo.FindByID(context.Background(), "2")
	assert.Equal(t, 0, product.CountInStock)

	err = repo.DecrementStock(context.Background(), "nope", 1)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestFindByID_ReturnsCopies(t *testing.T) {
	repo := repository.NewMemoryProductRepository(0)

	product, _ := repo.FindByID(context.Background(), "1")
	product.Price = 1.0
	product.Reviews[0].Rating = 1

	fresh, _ := repo.FindByID(context.Background(), "1")
	assert.Equal(t, 89.99, fresh.Price)
	assert.Equal(t, 4, fresh.Reviews[0].Rating)
}

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"storefront-service/models"
	"storefront-service/repository"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestCartGet_MissingKeyYieldsNilCart(t *testing.T) {
	_, client := newTestRedis(t)
	repo := repository.NewRedisCartRepository(client, time.Hour, zap.NewNop())

	cart, err := repo.Get(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Nil(t, cart)
}

func TestCartSaveGet_RoundTrip(t *testing.T) {
	mr, client := newTestRedis(t)
	repo := repository.NewRedisCartRepository(client, time.Hour, zap.NewNop())

	item := models.CartItem{Qty: 2}
	item.ID = "p1"
	item.Name = "Wireless Bluetooth Headphones"
	item.Price = 89.99

	ctx := context.Background()
	err := repo.Save(ctx, &models.Cart{UserID: "u1", Items: []models.CartItem{item}})
	assert.NoError(t, err)

	cart, err := repo.Get(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "u1", cart.UserID)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "p1", cart.Items[0].ID)
	assert.Equal(t, 2, cart.Items[0].Qty)
	assert.False(t, cart.UpdatedAt.IsZero())

	// the record expires with the configured ttl
	assert.Equal(t, time.Hour, mr.TTL("cart:user:u1"))
}

func TestCartGet_CorruptRecordIsDiscarded(t *testing.T) {
	mr, client := newTestRedis(t)
	repo := repository.NewRedisCartRepository(client, time.Hour, zap.NewNop())

	assert.NoError(t, mr.Set("cart:user:u1", "{not valid json"))

	cart, err := repo.Get(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Nil(t, cart)

	// the bad value is gone, the next write starts fresh
	assert.False(t, mr.Exists("cart:user:u1"))
}

func TestCartDelete_RemovesKey(t *testing.T) {
	mr, client := newTestRedis(t)
	repo := repository.NewRedisCartRepository(client, time.Hour, zap.NewNop())

	ctx := context.Background()
	assert.NoError(t, repo.Save(ctx, &models.Cart{UserID: "u1"}))
	assert.True(t, mr.Exists("cart:user:u1"))

	assert.NoError(t, repo.Delete(ctx, "u1"))
	assert.False(t, mr.Exists("cart:user:u1"))
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront-service/models"
)

// CartRepository persists the cart collection per user.
type CartRepository interface {
	Get(ctx context.Context, userID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, userID string) error
}

// RedisCartRepository stores carts as JSON blobs keyed by user.
type RedisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCartRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCartRepository {
	return &RedisCartRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *RedisCartRepository) getKey(userID string) string {
	return fmt.Sprintf("cart:user:%s", userID)
}

// Get hydrates a cart from storage. A missing key yields a nil cart; a
// corrupt value is discarded and the key deleted, so the caller starts over
// with an empty cart instead of seeing the parse failure.
func (r *RedisCartRepository) Get(ctx context.Context, userID string) (*models.Cart, error) {
	key := r.getKey(userID)
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		r.logger.Warn("Discarding corrupt cart record",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		_ = r.client.Del(ctx, key).Err()
		return nil, nil
	}
	return &cart, nil
}

func (r *RedisCartRepository) Save(ctx context.Context, cart *models.Cart) error {
	key := r.getKey(cart.UserID)
	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, key, data, r.ttl).Err()
}

func (r *RedisCartRepository) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.getKey(userID)).Err()
}

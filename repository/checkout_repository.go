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

// CheckoutRepository persists the per-user checkout flow state: the current
// step, the shipping address, the selected payment method, and the in-flight
// submission lock.
type CheckoutRepository interface {
	GetStep(ctx context.Context, userID string) (string, error)
	SaveStep(ctx context.Context, userID, step string) error
	GetAddress(ctx context.Context, userID string) (*models.ShippingAddress, error)
	SaveAddress(ctx context.Context, userID string, addr models.ShippingAddress) error
	GetPaymentMethod(ctx context.Context, userID string) (string, error)
	SavePaymentMethod(ctx context.Context, userID, method string) error
	Clear(ctx context.Context, userID string) error
	AcquireSubmitLock(ctx context.Context, userID string, ttl time.Duration) (bool, error)
	ReleaseSubmitLock(ctx context.Context, userID string) error
}

type RedisCheckoutRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisCheckoutRepository(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisCheckoutRepository {
	return &RedisCheckoutRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (r *RedisCheckoutRepository) stepKey(userID string) string {
	return fmt.Sprintf("checkout:step:user:%s", userID)
}

func (r *RedisCheckoutRepository) addressKey(userID string) string {
	return fmt.Sprintf("shipping:user:%s", userID)
}

func (r *RedisCheckoutRepository) paymentKey(userID string) string {
	return fmt.Sprintf("payment:user:%s", userID)
}

func (r *RedisCheckoutRepository) lockKey(userID string) string {
	return fmt.Sprintf("checkout:submit:user:%s", userID)
}

func (r *RedisCheckoutRepository) GetStep(ctx context.Context, userID string) (string, error) {
	step, err := r.client.Get(ctx, r.stepKey(userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return step, nil
}

func (r *RedisCheckoutRepository) SaveStep(ctx context.Context, userID, step string) error {
	return r.client.Set(ctx, r.stepKey(userID), step, r.ttl).Err()
}

// GetAddress returns the stored shipping address, or nil when none is
// recorded. A corrupt value is discarded along with its key.
func (r *RedisCheckoutRepository) GetAddress(ctx context.Context, userID string) (*models.ShippingAddress, error) {
	key := r.addressKey(userID)
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var addr models.ShippingAddress
	if err := json.Unmarshal([]byte(data), &addr); err != nil {
		r.logger.Warn("Discarding corrupt shipping address record",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		_ = r.client.Del(ctx, key).Err()
		return nil, nil
	}
	return &addr, nil
}

func (r *RedisCheckoutRepository) SaveAddress(ctx context.Context, userID string, addr models.ShippingAddress) error {
	data, err := json.Marshal(addr)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.addressKey(userID), data, r.ttl).Err()
}

func (r *RedisCheckoutRepository) GetPaymentMethod(ctx context.Context, userID string) (string, error) {
	method, err := r.client.Get(ctx, r.paymentKey(userID)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return method, nil
}

func (r *RedisCheckoutRepository) SavePaymentMethod(ctx context.Context, userID, method string) error {
	return r.client.Set(ctx, r.paymentKey(userID), method, r.ttl).Err()
}

// Clear removes the whole checkout state after an order is placed.
func (r *RedisCheckoutRepository) Clear(ctx context.Context, userID string) error {
	return r.client.Del(ctx,
		r.stepKey(userID),
		r.addressKey(userID),
		r.paymentKey(userID),
	).Err()
}

// AcquireSubmitLock guards against duplicate concurrent submissions from
// repeated user action. The TTL bounds how long a crashed submission can
// hold the flow.
func (r *RedisCheckoutRepository) AcquireSubmitLock(ctx context.Context, userID string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, r.lockKey(userID), "1", ttl).Result()
}

func (r *RedisCheckoutRepository) ReleaseSubmitLock(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.lockKey(userID)).Err()
}

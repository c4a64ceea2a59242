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

// SessionRepository persists the user session record.
type SessionRepository interface {
	Save(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, userID string) (*models.Session, error)
	Delete(ctx context.Context, userID string) error
}

type RedisSessionRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisSessionRepository(client *redis.Client, logger *zap.Logger) *RedisSessionRepository {
	return &RedisSessionRepository{
		client: client,
		logger: logger,
	}
}

func (r *RedisSessionRepository) getKey(userID string) string {
	return fmt.Sprintf("session:user:%s", userID)
}

// Save stores the session until the token expires.
func (r *RedisSessionRepository) Save(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, r.getKey(session.UserID), data, ttl).Err()
}

func (r *RedisSessionRepository) Get(ctx context.Context, userID string) (*models.Session, error) {
	key := r.getKey(userID)
	data, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		r.logger.Warn("Discarding corrupt session record",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		_ = r.client.Del(ctx, key).Err()
		return nil, nil
	}
	return &session, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.getKey(userID)).Err()
}

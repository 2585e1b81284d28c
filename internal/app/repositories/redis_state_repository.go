package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/yigit/uniconnect/internal/pkg/apperrors"
)

// RedisStateRepository keeps client state in one hash per profile
type RedisStateRepository struct {
	client *redis.Client
	hash   string
}

// NewRedisStateRepository creates a repository using the hash uniconnect:state:<profile>
func NewRedisStateRepository(client *redis.Client, profile string) *RedisStateRepository {
	return &RedisStateRepository{
		client: client,
		hash:   "uniconnect:state:" + profile,
	}
}

// Get returns the value stored under key
func (r *RedisStateRepository) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.HGet(ctx, r.hash, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: hget %s: %v", apperrors.ErrStorageUnavailable, key, err)
	}
	return value, true, nil
}

// Set stores value under key
func (r *RedisStateRepository) Set(ctx context.Context, key, value string) error {
	if err := r.client.HSet(ctx, r.hash, key, value).Err(); err != nil {
		return fmt.Errorf("%w: hset %s: %v", apperrors.ErrStorageUnavailable, key, err)
	}
	return nil
}

// Remove deletes key
func (r *RedisStateRepository) Remove(ctx context.Context, key string) error {
	if err := r.client.HDel(ctx, r.hash, key).Err(); err != nil {
		return fmt.Errorf("%w: hdel %s: %v", apperrors.ErrStorageUnavailable, key, err)
	}
	return nil
}

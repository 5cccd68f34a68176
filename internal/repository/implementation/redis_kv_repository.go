package implementation

import (
	"context"
	"errors"
	"fmt"

	"rfp-console/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "rfp-console:"

type redisKVRepository struct {
	client *redis.Client
}

func NewRedisKVRepository(client *redis.Client) contract.KVRepository {
	return &redisKVRepository{client: client}
}

func (r *redisKVRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (r *redisKVRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, redisKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *redisKVRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

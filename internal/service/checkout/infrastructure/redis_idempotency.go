// internal/service/checkout/infrastructure/redis_idempotency.go
package infrastructure

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyKeyPrefix = "checkout:idem:"
	idempotencyKeyTTL    = 24 * time.Hour
)

// RedisIdempotencyStore 用 Redis SETNX 做跨实例的幂等键登记。
type RedisIdempotencyStore struct {
	client *redis.Client
}

func NewRedisIdempotencyStore(addr string) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// PutIfAbsent 首次写入返回空串；key 已存在时返回第一次登记的 checkout ID。
func (s *RedisIdempotencyStore) PutIfAbsent(ctx context.Context, key, checkoutID string) (string, error) {
	redisKey := fmt.Sprintf("%s%s", idempotencyKeyPrefix, key)

	ok, err := s.client.SetNX(ctx, redisKey, checkoutID, idempotencyKeyTTL).Result()
	if err != nil {
		return "", errors.Wrap(err, "idempotency setnx")
	}
	if ok {
		return "", nil
	}

	existing, err := s.client.Get(ctx, redisKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// key 恰好在 SETNX 和 GET 之间过期，当作首次写入处理
			return "", nil
		}
		return "", errors.Wrap(err, "idempotency get")
	}
	return existing, nil
}

func (s *RedisIdempotencyStore) Close() error {
	return s.client.Close()
}

// Package store provides the durable backends for onboarding
// navigation state.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	redis "github.com/redis/go-redis/v9"

	"github.com/eventcrew/stagecrew/internal/onboarding/domain"
)

// RedisStore keeps wizard keys in redis with a retention TTL so
// abandoned flows age out on their own.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

var _ domain.Store = (*RedisStore)(nil)

func (s *RedisStore) Get(ctx context.Context, userID snowflake.ID, key string) (string, error) {
	val, err := s.client.Get(ctx, storeKey(userID, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, userID snowflake.ID, key, value string) error {
	return s.client.Set(ctx, storeKey(userID, key), value, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, userID snowflake.ID, key string) error {
	return s.client.Del(ctx, storeKey(userID, key)).Err()
}

func storeKey(userID snowflake.ID, key string) string {
	return "onboarding:" + userID.String() + ":" + key
}

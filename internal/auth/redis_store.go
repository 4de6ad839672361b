package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisFailureStore implements FailureStore on Redis, sharing lockout state
// across replicas.
type RedisFailureStore struct {
	client *redis.Client
	prefix string
}

func NewRedisFailureStore(client *redis.Client, prefix string) *RedisFailureStore {
	if prefix == "" {
		prefix = "inkwell:lockout:"
	}
	return &RedisFailureStore{client: client, prefix: prefix}
}

func (s *RedisFailureStore) failureKey(identifier string) string {
	return s.prefix + "failures:" + identifier
}

func (s *RedisFailureStore) lockKey(identifier string) string {
	return s.prefix + "locked:" + identifier
}

var recordFailureScript = redis.NewScript(`
	local count = redis.call('INCR', KEYS[1])
	if count == 1 then
		redis.call('PEXPIRE', KEYS[1], ARGV[1])
	end
	return count
`)

func (s *RedisFailureStore) RecordFailure(ctx context.Context, identifier string, ttl time.Duration) (int, error) {
	result, err := recordFailureScript.Run(ctx, s.client,
		[]string{s.failureKey(identifier)}, ttl.Milliseconds()).Result()
	if err != nil {
		return 0, fmt.Errorf("redis lockout: record failure: %w", err)
	}
	count, ok := result.(int64)
	if !ok {
		return 0, errors.New("redis lockout: unexpected result type")
	}
	return int(count), nil
}

func (s *RedisFailureStore) ClearFailures(ctx context.Context, identifier string) error {
	if err := s.client.Del(ctx, s.failureKey(identifier)).Err(); err != nil {
		return fmt.Errorf("redis lockout: clear failures: %w", err)
	}
	return nil
}

func (s *RedisFailureStore) Lock(ctx context.Context, identifier string, duration time.Duration) error {
	if err := s.client.Set(ctx, s.lockKey(identifier), time.Now().Add(duration).Unix(), duration).Err(); err != nil {
		return fmt.Errorf("redis lockout: lock: %w", err)
	}
	return s.ClearFailures(ctx, identifier)
}

func (s *RedisFailureStore) IsLocked(ctx context.Context, identifier string) (bool, error) {
	err := s.client.Get(ctx, s.lockKey(identifier)).Err()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("redis lockout: is locked: %w", err)
	}
	return true, nil
}

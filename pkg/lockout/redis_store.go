package lockout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	failKeyPrefix = "lockout:fail:"
	lockKeyPrefix = "lockout:lock:"
)

// RedisStore implements Store on Redis so counters are shared across
// instances. Failure counting relies on INCR being atomic; the counting
// window is the TTL set when the counter is created.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a store on top of an existing Redis client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Fail(ctx context.Context, key string, window time.Duration) (int, error) {
	failKey := failKeyPrefix + key

	count, err := s.client.Incr(ctx, failKey).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	// First failure in the window owns the expiry; later ones keep it.
	if count == 1 {
		if err := s.client.Expire(ctx, failKey, window).Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
	}

	return int(count), nil
}

func (s *RedisStore) Lock(ctx context.Context, key string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}

	if err := s.client.Set(ctx, lockKeyPrefix+key, until.UTC().Format(time.RFC3339Nano), ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) LockedUntil(ctx context.Context, key string) (time.Time, error) {
	val, err := s.client.Get(ctx, lockKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	until, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		// A corrupt lock value must not permanently block the identity; the
		// key expires with the lock TTL anyway.
		return time.Time{}, nil
	}
	return until, nil
}

func (s *RedisStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, failKeyPrefix+key, lockKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

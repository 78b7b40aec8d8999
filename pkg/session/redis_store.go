package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix  = "session:"
	identityKeyPrefix = "session:identity:"
)

// RedisStore implements Store on Redis, sharing sessions across instances.
// Records expire with a TTL matching their remaining lifetime, so Redis does
// the sweeping. A per-identity set tracks tokens for bulk invalidation.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore creates a store on top of an existing Redis client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return ErrInvalidSession
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrSessionExpired
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	identityKey := identityKeyPrefix + sess.IdentityID.String()
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+sess.Token, data, ttl)
	pipe.SAdd(ctx, identityKey, sess.Token)
	pipe.Expire(ctx, identityKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	return &sess, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	sess, err := s.Get(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+token)
	pipe.SRem(ctx, identityKeyPrefix+sess.IdentityID.String(), token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	return nil
}

func (s *RedisStore) DeleteByIdentityID(ctx context.Context, identityID uuid.UUID) error {
	identityKey := identityKeyPrefix + identityID.String()

	tokens, err := s.client.SMembers(ctx, identityKey).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}

	keys := make([]string, 0, len(tokens)+1)
	for _, token := range tokens {
		keys = append(keys, sessionKeyPrefix+token)
	}
	keys = append(keys, identityKey)

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreFailure, err)
	}
	return nil
}

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/layer-3/walletgate/core"
)

// RedisStore keeps the record under one Redis key that expires with the session
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore creates a store on key; an empty key uses DefaultKey
func NewRedisStore(client *redis.Client, key string, ttl time.Duration) *RedisStore {
	if key == "" {
		key = DefaultKey
	}
	if ttl <= 0 {
		ttl = core.DefaultSessionTTL
	}
	return &RedisStore{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (s *RedisStore) Load(ctx context.Context) (core.SessionRecord, error) {
	return loadRecord(ctx, s)
}

// Save writes record with a key expiry at the end of the record's lifetime
func (s *RedisStore) Save(ctx context.Context, record core.SessionRecord) error {
	data, err := core.EncodeSessionRecord(record)
	if err != nil {
		return err
	}
	return s.SaveRawFor(ctx, data, remaining(record, s.ttl, time.Now()))
}

func (s *RedisStore) LoadRaw(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return data, nil
}

func (s *RedisStore) SaveRaw(ctx context.Context, data []byte) error {
	return s.SaveRawFor(ctx, data, s.ttl)
}

func (s *RedisStore) SaveRawFor(ctx context.Context, data []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

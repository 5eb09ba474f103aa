package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/codes"

	"github.com/judgebase/judgebase-api/internal/hash"
)

const defaultRedisPrefix = "judgebase-session-"

// Sessions as redis keys expiring with the session
type RedisStore struct {
	client *redis.Client
	prefix string
}

type RedisStoreConfig struct {
	RedisClient *redis.Client
	// Defaults to "judgebase-session-"
	KeyPrefix string
}

func NewRedisStore(config RedisStoreConfig) *RedisStore {
	prefix := config.KeyPrefix
	if prefix == "" {
		prefix = defaultRedisPrefix
	}

	return &RedisStore{client: config.RedisClient, prefix: prefix}
}

func (s *RedisStore) key(token string) string {
	return s.prefix + hash.String(token)
}

func (s *RedisStore) Create(ctx context.Context, ttl time.Duration) (string, error) {
	ctx, span := tracer.Start(ctx, "RedisStore.Create")
	defer span.End()

	token := newToken()
	if err := s.client.Set(ctx, s.key(token), 1, ttl).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to store session")
		return "", err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "created session")
	return token, nil
}

func (s *RedisStore) Valid(ctx context.Context, token string) (bool, error) {
	ctx, span := tracer.Start(ctx, "RedisStore.Valid")
	defer span.End()

	if token == "" {
		return false, nil
	}

	n, err := s.client.Exists(ctx, s.key(token)).Result()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to check session")
		return false, err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "checked session")
	return n == 1, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	ctx, span := tracer.Start(ctx, "RedisStore.Delete")
	defer span.End()

	if token == "" {
		return ErrEmptyToken
	}

	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete session")
		return err
	}

	span.RecordError(nil)
	span.SetStatus(codes.Ok, "deleted session")
	return nil
}

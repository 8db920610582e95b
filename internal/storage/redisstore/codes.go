package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	domainErrors "github.com/threadcart/backend/internal/domain/errors"
)

// CodeKind separates independent code namespaces in the store.
type CodeKind string

const (
	CodeKindVerification  CodeKind = "verify"
	CodeKindPasswordReset CodeKind = "reset"
)

// PendingCode is a bcrypt-hashed one-time code awaiting confirmation.
type PendingCode struct {
	CodeHash string    `json:"code_hash"`
	IssuedAt time.Time `json:"issued_at"`
}

// CodeStore keeps pending verification codes with a TTL. Unlike an
// in-process map it survives restarts and is shared between instances.
type CodeStore interface {
	Put(ctx context.Context, kind CodeKind, email string, code PendingCode, ttl time.Duration) error
	Get(ctx context.Context, kind CodeKind, email string) (*PendingCode, error)
	Delete(ctx context.Context, kind CodeKind, email string) error
}

// RedisCodeStore implements CodeStore on top of redis key expiry.
type RedisCodeStore struct {
	client *redis.Client
}

// NewCodeStore builds the store around an existing redis client.
func NewCodeStore(client *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{client: client}
}

// NewClient dials redis at the given address.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func key(kind CodeKind, email string) string {
	return fmt.Sprintf("codes:%s:%s", kind, email)
}

func (s *RedisCodeStore) Put(ctx context.Context, kind CodeKind, email string, code PendingCode, ttl time.Duration) error {
	data, err := json.Marshal(code)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key(kind, email), data, ttl).Err()
}

func (s *RedisCodeStore) Get(ctx context.Context, kind CodeKind, email string) (*PendingCode, error) {
	data, err := s.client.Get(ctx, key(kind, email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	var code PendingCode
	if err := json.Unmarshal([]byte(data), &code); err != nil {
		return nil, err
	}
	return &code, nil
}

func (s *RedisCodeStore) Delete(ctx context.Context, kind CodeKind, email string) error {
	return s.client.Del(ctx, key(kind, email)).Err()
}

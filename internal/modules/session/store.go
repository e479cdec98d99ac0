// Package session keeps admin panel sessions server-side. The browser cookie
// carries only an opaque random id; the identity record lives in Redis with a
// TTL, so a tampered cookie can never mint an identity.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/datanest-io/datanest/internal/pkg/utils"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "admin_session:"

// Record is what a valid admin session resolves to.
type Record struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Store interface {
	// Create stores the record under a fresh opaque id and returns the id.
	Create(ctx context.Context, rec Record) (string, error)
	// Get returns (nil, nil) for unknown or expired ids.
	Get(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error
	TTL() time.Duration
}

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) Store {
	return &redisStore{rdb: rdb, ttl: ttl}
}

func (s *redisStore) Create(ctx context.Context, rec Record) (string, error) {
	id, err := utils.GenerateKey("", 48)
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, keyPrefix+id, payload, s.ttl).Err(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *redisStore) Get(ctx context.Context, id string) (*Record, error) {
	if id == "" {
		return nil, nil
	}
	payload, err := s.rdb.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		// A corrupt record is no session, not a server error.
		return nil, nil
	}
	return &rec, nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	return s.rdb.Del(ctx, keyPrefix+id).Err()
}

func (s *redisStore) TTL() time.Duration { return s.ttl }

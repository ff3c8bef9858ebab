package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"homesale_backend/internal/lead/domain"
)

const redisKeyPrefix = "wizard:session:"

// RedisStore keeps session state in Redis so multiple API instances can
// serve one wizard flow. Entries carry the same TTL semantics as the memory
// store; nothing is durable and expiry discards the lead.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) Create(ctx context.Context, initialStep string) (*State, error) {
	now := time.Now()
	state := State{
		ID:        uuid.NewString(),
		Step:      initialStep,
		SyncState: domain.SyncNoRecord,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.write(ctx, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*State, error) {
	payload, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var state State
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &state, nil
}

// Update is read-modify-write without a transaction. The flow guarantees a
// single sequential writer per session, so lost updates are not a concern.
func (s *RedisStore) Update(ctx context.Context, id string, mutate func(*State) error) (*State, error) {
	state, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := mutate(state); err != nil {
		return nil, err
	}
	state.UpdatedAt = time.Now()

	if err := s.write(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *RedisStore) write(ctx context.Context, state *State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	if err := s.client.Set(ctx, redisKeyPrefix+state.ID, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("session set: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)

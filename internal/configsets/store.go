package configsets

import (
	"context"
	"errors"
	"sync"

	"github.com/giftloom/configurator-backend/pkg/redis"
)

// stateName is the fixed key every snapshot is written under.
const stateName = "configurator"

// Store is the opaque persistence boundary for configurator state. Load
// returns (nil, nil) when no snapshot exists yet.
type Store interface {
	Save(ctx context.Context, payload []byte) error
	Load(ctx context.Context) ([]byte, error)
}

// RedisStore persists snapshots in Redis under the fixed state key.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps the shared Redis client as a state store.
func NewRedisStore(client *redis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client required")
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Save(ctx context.Context, payload []byte) error {
	return s.client.Set(ctx, s.client.StateKey(stateName), string(payload), 0)
}

func (s *RedisStore) Load(ctx context.Context) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.client.StateKey(stateName))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(raw), nil
}

// MemoryStore keeps the latest snapshot in process memory. Used in tests and
// when no Redis endpoint is configured.
type MemoryStore struct {
	mu      sync.Mutex
	payload []byte
	saveErr error
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.payload = append([]byte(nil), payload...)
	return nil
}

func (s *MemoryStore) Load(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.payload == nil {
		return nil, nil
	}
	return append([]byte(nil), s.payload...), nil
}

// FailWrites makes every subsequent Save return the given error.
func (s *MemoryStore) FailWrites(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
}

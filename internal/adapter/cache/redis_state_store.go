package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/smallbiznis/answer-bridge/internal/domain/oauth"
	"github.com/smallbiznis/answer-bridge/internal/repository"
)

const stateKeyPrefix = "answer-bridge:oauth:state:"

// RedisStateStore implements OAuthStateStore backed by Redis.
type RedisStateStore struct {
	client redis.UniversalClient
}

var _ repository.OAuthStateStore = (*RedisStateStore)(nil)

// NewRedisStateStore constructs a Redis-backed state store.
func NewRedisStateStore(client redis.UniversalClient) *RedisStateStore {
	return &RedisStateStore{client: client}
}

// SaveState stores the consent state with a TTL.
func (s *RedisStateStore) SaveState(ctx context.Context, data oauth.State, ttl time.Duration) error {
	if strings.TrimSpace(data.State) == "" {
		return fmt.Errorf("persist state: %w", oauth.ErrInvalidState)
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := s.client.Set(ctx, stateKey(data.State), payload, ttl).Err(); err != nil {
		return fmt.Errorf("persist state: %w", err)
	}
	return nil
}

// ConsumeState atomically reads and removes the state key.
func (s *RedisStateStore) ConsumeState(ctx context.Context, state string) (*oauth.State, error) {
	raw, err := s.client.GetDel(ctx, stateKey(state)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("consume state: %w", err)
	}
	var decoded oauth.State
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decode state: %w", err)
	}
	return &decoded, nil
}

func stateKey(state string) string {
	return stateKeyPrefix + strings.TrimSpace(state)
}

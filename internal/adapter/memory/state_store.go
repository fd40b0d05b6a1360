package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/smallbiznis/answer-bridge/internal/domain/oauth"
	"github.com/smallbiznis/answer-bridge/internal/repository"
)

// StateStore keeps OAuth state in process memory. Used when Redis is not configured.
type StateStore struct {
	mu   sync.Mutex
	now  func() time.Time
	data map[string]stateEntry
}

type stateEntry struct {
	state     oauth.State
	expiresAt time.Time
}

var _ repository.OAuthStateStore = (*StateStore)(nil)

// NewStateStore constructs an empty in-memory state store.
func NewStateStore() *StateStore {
	return &StateStore{now: time.Now, data: map[string]stateEntry{}}
}

// SaveState stores data until ttl elapses.
func (s *StateStore) SaveState(_ context.Context, data oauth.State, ttl time.Duration) error {
	key := strings.TrimSpace(data.State)
	if key == "" {
		return fmt.Errorf("persist state: %w", oauth.ErrInvalidState)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	s.cleanupLocked(now)
	s.data[key] = stateEntry{state: data, expiresAt: now.Add(ttl)}
	return nil
}

// ConsumeState removes and returns the state if it is still live.
func (s *StateStore) ConsumeState(_ context.Context, state string) (*oauth.State, error) {
	key := strings.TrimSpace(state)
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	delete(s.data, key)
	if !s.now().Before(entry.expiresAt) {
		return nil, nil
	}
	out := entry.state
	return &out, nil
}

func (s *StateStore) cleanupLocked(now time.Time) {
	for key, entry := range s.data {
		if !now.Before(entry.expiresAt) {
			delete(s.data, key)
		}
	}
}

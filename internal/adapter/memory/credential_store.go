package memory

import (
	"sync"

	"github.com/smallbiznis/answer-bridge/internal/domain/oauth"
	"github.com/smallbiznis/answer-bridge/internal/repository"
)

// CredentialStore is a single-slot, process-lifetime credential holder.
// It does not check expiry; an expired token is handed out as-is.
type CredentialStore struct {
	mu     sync.RWMutex
	config *oauth.ClientConfig
	tokens *oauth.TokenSet
}

var _ repository.CredentialStore = (*CredentialStore)(nil)

// NewCredentialStore returns an empty store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{}
}

// SetConfig stores cfg unless a config is already present.
func (s *CredentialStore) SetConfig(cfg oauth.ClientConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config != nil {
		return
	}
	cfg.Scopes = append([]string(nil), cfg.Scopes...)
	s.config = &cfg
}

// Config returns the stored client config.
func (s *CredentialStore) Config() (oauth.ClientConfig, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.config == nil {
		return oauth.ClientConfig{}, false
	}
	cfg := *s.config
	cfg.Scopes = append([]string(nil), s.config.Scopes...)
	return cfg, true
}

// HasToken reports whether a token set has been obtained.
func (s *CredentialStore) HasToken() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tokens != nil
}

// SetToken overwrites the current token set.
func (s *CredentialStore) SetToken(tokens oauth.TokenSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = &tokens
}

// Token returns the current token set.
func (s *CredentialStore) Token() (oauth.TokenSet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.tokens == nil {
		return oauth.TokenSet{}, false
	}
	return *s.tokens, true
}

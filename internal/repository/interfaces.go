package repository

import (
	"context"
	"time"

	"github.com/smallbiznis/answer-bridge/internal/domain/oauth"
)

// CredentialStore holds the single OAuth client config and the single token
// set for the lifetime of the process.
type CredentialStore interface {
	// SetConfig stores the client config. Only the first call takes effect.
	SetConfig(cfg oauth.ClientConfig)
	Config() (oauth.ClientConfig, bool)
	HasToken() bool
	// SetToken replaces any previously stored token set.
	SetToken(tokens oauth.TokenSet)
	Token() (oauth.TokenSet, bool)
}

// OAuthStateStore persists consent state between /auth and the callback.
// A state value is single use: ConsumeState returns it at most once.
type OAuthStateStore interface {
	SaveState(ctx context.Context, data oauth.State, ttl time.Duration) error
	// ConsumeState returns nil, nil when the state is unknown, expired or already used.
	ConsumeState(ctx context.Context, state string) (*oauth.State, error)
}

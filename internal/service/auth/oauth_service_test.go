package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smallbiznis/answer-bridge/internal/adapter/memory"
	"github.com/smallbiznis/answer-bridge/internal/config"
	domainoauth "github.com/smallbiznis/answer-bridge/internal/domain/oauth"
)

func TestOAuthService_BeginAuthorizationUnconfigured(t *testing.T) {
	h := newOAuthTestHarness(false, false)
	_, err := h.service.BeginAuthorization(context.Background())
	require.ErrorIs(t, err, domainoauth.ErrClientNotConfigured)
	require.Empty(t, h.providerClient.authURLCalls())
}

func TestOAuthService_BeginAuthorization(t *testing.T) {
	h := newOAuthTestHarness(true, false)
	out, err := h.service.BeginAuthorization(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, out.AuthorizationURL)
	require.Empty(t, out.State)
	require.Equal(t, []string{""}, h.providerClient.authURLCalls())
}

func TestOAuthService_CompleteAuthorizationUnconfigured(t *testing.T) {
	h := newOAuthTestHarness(false, false)
	err := h.service.CompleteAuthorization(context.Background(), CompleteAuthorizationInput{Code: "code"})
	require.ErrorIs(t, err, domainoauth.ErrClientNotConfigured)
	require.False(t, h.creds.HasToken())
}

func TestOAuthService_CompleteAuthorizationMissingCode(t *testing.T) {
	h := newOAuthTestHarness(true, false)
	err := h.service.CompleteAuthorization(context.Background(), CompleteAuthorizationInput{})
	require.ErrorIs(t, err, domainoauth.ErrInvalidRequest)
	require.False(t, h.creds.HasToken())
}

func TestOAuthService_CompleteAuthorizationStoresToken(t *testing.T) {
	h := newOAuthTestHarness(true, false)
	h.providerClient.token = &domainoauth.TokenSet{AccessToken: "access-1", RefreshToken: "refresh-1"}

	require.NoError(t, h.service.CompleteAuthorization(context.Background(), CompleteAuthorizationInput{Code: "code-1"}))

	tokens, ok := h.creds.Token()
	require.True(t, ok)
	require.Equal(t, "access-1", tokens.AccessToken)
	require.Equal(t, []string{"code-1"}, h.providerClient.exchangedCodes())
}

func TestOAuthService_CompleteAuthorizationLastWriteWins(t *testing.T) {
	h := newOAuthTestHarness(true, false)
	ctx := context.Background()

	h.providerClient.token = &domainoauth.TokenSet{AccessToken: "access-1", RefreshToken: "refresh-1"}
	require.NoError(t, h.service.CompleteAuthorization(ctx, CompleteAuthorizationInput{Code: "a"}))
	h.providerClient.token = &domainoauth.TokenSet{AccessToken: "access-2"}
	require.NoError(t, h.service.CompleteAuthorization(ctx, CompleteAuthorizationInput{Code: "b"}))

	tokens, ok := h.creds.Token()
	require.True(t, ok)
	require.Equal(t, "access-2", tokens.AccessToken)
	require.Empty(t, tokens.RefreshToken)
}

func TestOAuthService_CompleteAuthorizationExchangeFailure(t *testing.T) {
	h := newOAuthTestHarness(true, false)
	h.providerClient.token = &domainoauth.TokenSet{AccessToken: "keep"}
	require.NoError(t, h.service.CompleteAuthorization(context.Background(), CompleteAuthorizationInput{Code: "ok"}))

	h.providerClient.err = errors.New("invalid_grant")
	err := h.service.CompleteAuthorization(context.Background(), CompleteAuthorizationInput{Code: "bad"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid_grant")

	tokens, _ := h.creds.Token()
	require.Equal(t, "keep", tokens.AccessToken)
}

func TestOAuthService_CompleteAuthorizationEmptyAccessToken(t *testing.T) {
	h := newOAuthTestHarness(true, false)
	h.providerClient.token = &domainoauth.TokenSet{}
	err := h.service.CompleteAuthorization(context.Background(), CompleteAuthorizationInput{Code: "c"})
	require.ErrorIs(t, err, domainoauth.ErrTokenInvalid)
	require.False(t, h.creds.HasToken())
}

func TestOAuthService_StateCheck(t *testing.T) {
	h := newOAuthTestHarness(true, true)
	ctx := context.Background()
	h.providerClient.token = &domainoauth.TokenSet{AccessToken: "access"}

	out, err := h.service.BeginAuthorization(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, out.State)

	err = h.service.CompleteAuthorization(ctx, CompleteAuthorizationInput{Code: "c"})
	require.ErrorIs(t, err, domainoauth.ErrInvalidState)
	err = h.service.CompleteAuthorization(ctx, CompleteAuthorizationInput{Code: "c", State: "forged"})
	require.ErrorIs(t, err, domainoauth.ErrInvalidState)
	require.Empty(t, h.providerClient.exchangedCodes())

	require.NoError(t, h.service.CompleteAuthorization(ctx, CompleteAuthorizationInput{Code: "c", State: out.State}))
	require.True(t, h.creds.HasToken())

	err = h.service.CompleteAuthorization(ctx, CompleteAuthorizationInput{Code: "c", State: out.State})
	require.ErrorIs(t, err, domainoauth.ErrInvalidState, "state is single use")
}

// ---- Test harness and fakes ----

type oauthTestHarness struct {
	service        OAuthService
	creds          *memory.CredentialStore
	providerClient *fakeProviderClient
}

func newOAuthTestHarness(configured, stateCheck bool) *oauthTestHarness {
	creds := memory.NewCredentialStore()
	if configured {
		creds.SetConfig(domainoauth.ClientConfig{
			ClientID:     "client",
			ClientSecret: "secret",
			RedirectURL:  "http://localhost:3000/oauth2callback",
		})
	}
	providerClient := &fakeProviderClient{}
	cfg := config.Config{OAuthStateCheck: stateCheck}
	svc := NewOAuthService(creds, memory.NewStateStore(), providerClient, cfg, zap.NewNop())
	return &oauthTestHarness{
		service:        svc,
		creds:          creds,
		providerClient: providerClient,
	}
}

type fakeProviderClient struct {
	mu     sync.Mutex
	token  *domainoauth.TokenSet
	err    error
	states []string
	codes  []string
}

func (f *fakeProviderClient) AuthCodeURL(cfg domainoauth.ClientConfig, state string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.states = append(f.states, state)
	q := url.Values{}
	q.Set("client_id", cfg.ClientID)
	q.Set("access_type", "offline")
	if state != "" {
		q.Set("state", state)
	}
	return "https://accounts.example.com/auth?" + q.Encode()
}

func (f *fakeProviderClient) ExchangeCode(_ context.Context, _ domainoauth.ClientConfig, code string) (*domainoauth.TokenSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.codes = append(f.codes, code)
	if f.err != nil {
		return nil, f.err
	}
	if f.token == nil {
		return nil, fmt.Errorf("token not configured")
	}
	copyToken := *f.token
	return &copyToken, nil
}

func (f *fakeProviderClient) authURLCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.states...)
}

func (f *fakeProviderClient) exchangedCodes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.codes...)
}

package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	oauthadapter "github.com/smallbiznis/answer-bridge/internal/adapter/oauth"
	"github.com/smallbiznis/answer-bridge/internal/config"
	domainoauth "github.com/smallbiznis/answer-bridge/internal/domain/oauth"
	"github.com/smallbiznis/answer-bridge/internal/repository"
)

// OAuthService drives the Google consent flow that populates the credential store.
type OAuthService interface {
	BeginAuthorization(ctx context.Context) (*BeginAuthorizationOutput, error)
	CompleteAuthorization(ctx context.Context, in CompleteAuthorizationInput) error
}

// BeginAuthorizationOutput carries the consent redirect.
type BeginAuthorizationOutput struct {
	AuthorizationURL string
	// State is empty unless state checking is enabled.
	State string
}

// CompleteAuthorizationInput captures callback query parameters.
type CompleteAuthorizationInput struct {
	Code  string
	State string
}

type oauthService struct {
	creds          repository.CredentialStore
	stateStore     repository.OAuthStateStore
	providerClient oauthadapter.ProviderClient
	stateCheck     bool
	logger         *zap.Logger
}

// NewOAuthService wires the OAuth service implementation. stateStore is only
// used when cfg.OAuthStateCheck is set.
func NewOAuthService(
	creds repository.CredentialStore,
	stateStore repository.OAuthStateStore,
	providerClient oauthadapter.ProviderClient,
	cfg config.Config,
	logger *zap.Logger,
) OAuthService {
	return &oauthService{
		creds:          creds,
		stateStore:     stateStore,
		providerClient: providerClient,
		stateCheck:     cfg.OAuthStateCheck && stateStore != nil,
		logger:         logger,
	}
}

const stateTTL = 5 * time.Minute

func (s *oauthService) BeginAuthorization(ctx context.Context) (*BeginAuthorizationOutput, error) {
	cfg, ok := s.creds.Config()
	if !ok {
		return nil, domainoauth.ErrClientNotConfigured
	}

	var state string
	if s.stateCheck {
		generated, err := secureRandomString(32)
		if err != nil {
			return nil, fmt.Errorf("generate state: %w", err)
		}
		payload := domainoauth.State{State: generated, CreatedAt: time.Now().UTC()}
		if err := s.stateStore.SaveState(ctx, payload, stateTTL); err != nil {
			return nil, fmt.Errorf("persist state: %w", err)
		}
		state = generated
	}

	return &BeginAuthorizationOutput{
		AuthorizationURL: s.providerClient.AuthCodeURL(cfg, state),
		State:            state,
	}, nil
}

func (s *oauthService) CompleteAuthorization(ctx context.Context, in CompleteAuthorizationInput) error {
	cfg, ok := s.creds.Config()
	if !ok {
		return domainoauth.ErrClientNotConfigured
	}

	code := strings.TrimSpace(in.Code)
	if code == "" {
		return domainoauth.ErrInvalidRequest
	}

	if s.stateCheck {
		if err := s.consumeState(ctx, in.State); err != nil {
			return err
		}
	}

	tokens, err := s.providerClient.ExchangeCode(ctx, cfg, code)
	if err != nil {
		return fmt.Errorf("exchange code: %w", err)
	}
	if strings.TrimSpace(tokens.AccessToken) == "" {
		return domainoauth.ErrTokenInvalid
	}

	s.creds.SetToken(*tokens)
	s.log().Info("google oauth completed",
		zap.Bool("refresh_token", tokens.RefreshToken != ""),
		zap.Time("expiry", tokens.Expiry),
	)
	return nil
}

func (s *oauthService) consumeState(ctx context.Context, state string) error {
	state = strings.TrimSpace(state)
	if state == "" {
		return domainoauth.ErrInvalidState
	}
	stored, err := s.stateStore.ConsumeState(ctx, state)
	if err != nil {
		return fmt.Errorf("load state: %w", err)
	}
	if stored == nil {
		return domainoauth.ErrInvalidState
	}
	return nil
}

func (s *oauthService) log() *zap.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return zap.L()
}

func secureRandomString(size int) (string, error) {
	if size <= 0 {
		size = 32
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

package oauth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	domainoauth "github.com/smallbiznis/answer-bridge/internal/domain/oauth"
)

// ProviderClient encapsulates calls to the Google identity provider.
type ProviderClient interface {
	AuthCodeURL(cfg domainoauth.ClientConfig, state string) string
	ExchangeCode(ctx context.Context, cfg domainoauth.ClientConfig, code string) (*domainoauth.TokenSet, error)
}

// GoogleProviderClient is the default implementation on top of golang.org/x/oauth2.
type GoogleProviderClient struct {
	httpClient *http.Client
}

// NewGoogleProviderClient constructs the default ProviderClient.
func NewGoogleProviderClient(client *http.Client) *GoogleProviderClient {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &GoogleProviderClient{httpClient: client}
}

// AuthCodeURL builds the consent URL. It always asks for offline access so a
// refresh token is issued; an empty state is left out of the URL.
func (c *GoogleProviderClient) AuthCodeURL(cfg domainoauth.ClientConfig, state string) string {
	return oauth2Config(cfg).AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ExchangeCode performs the authorization code exchange.
func (c *GoogleProviderClient) ExchangeCode(ctx context.Context, cfg domainoauth.ClientConfig, code string) (*domainoauth.TokenSet, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := oauth2Config(cfg).Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("token exchange: %w", err)
	}
	return &domainoauth.TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
		Expiry:       tok.Expiry,
	}, nil
}

func oauth2Config(cfg domainoauth.ClientConfig) *oauth2.Config {
	endpoint := google.Endpoint
	if u := strings.TrimSpace(cfg.AuthURL); u != "" {
		endpoint.AuthURL = u
	}
	if u := strings.TrimSpace(cfg.TokenURL); u != "" {
		endpoint.TokenURL = u
		endpoint.AuthStyle = oauth2.AuthStyleInParams
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{domainoauth.SpreadsheetsScope}
	}
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       scopes,
		Endpoint:     endpoint,
	}
}

package oauth

import (
	"strings"
	"time"
)

// SpreadsheetsScope grants read/write access to the operator's spreadsheets.
const SpreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"

// ClientConfig identifies this service to the identity provider. It is
// loaded once at startup and never changes afterwards.
type ClientConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// AuthURL and TokenURL default to Google's endpoints when empty.
	AuthURL  string
	TokenURL string
	Scopes   []string
}

// Valid reports whether the config carries the minimum needed for a code exchange.
func (c ClientConfig) Valid() bool {
	return strings.TrimSpace(c.ClientID) != "" && strings.TrimSpace(c.ClientSecret) != ""
}

// TokenSet is the credential bundle returned by a code exchange.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	Expiry       time.Time
}

// State binds a consent redirect to the callback that completes it.
type State struct {
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

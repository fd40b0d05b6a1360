package oauth

import "errors"

var (
	// ErrClientNotConfigured signals that no Google OAuth client has been set.
	ErrClientNotConfigured = errors.New("oauth: client not configured")
	// ErrInvalidRequest indicates caller input validation errors.
	ErrInvalidRequest = errors.New("oauth: invalid request")
	// ErrInvalidState indicates the callback state is missing, unknown or expired.
	ErrInvalidState = errors.New("oauth: invalid state")
	// ErrTokenInvalid indicates the provider returned an unusable token.
	ErrTokenInvalid = errors.New("oauth: token invalid")
	// ErrNoToken signals that no token set has been obtained yet.
	ErrNoToken = errors.New("oauth: no token")
)

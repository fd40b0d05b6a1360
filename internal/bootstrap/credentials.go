package bootstrap

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/answer-bridge/internal/config"
	domainoauth "github.com/smallbiznis/answer-bridge/internal/domain/oauth"
	"github.com/smallbiznis/answer-bridge/internal/repository"
)

// LoadOAuthClient seeds the credential store with the Google client config at startup.
func LoadOAuthClient(lc fx.Lifecycle, cfg config.Config, creds repository.CredentialStore, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			loadOAuthClient(cfg, creds, logger)
			return nil
		},
	})
}

func loadOAuthClient(cfg config.Config, creds repository.CredentialStore, logger *zap.Logger) {
	client := domainoauth.ClientConfig{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURI,
		AuthURL:      cfg.GoogleAuthURL,
		TokenURL:     cfg.GoogleTokenURL,
		Scopes:       []string{domainoauth.SpreadsheetsScope},
	}
	if !client.Valid() {
		if logger != nil {
			logger.Warn("google oauth client not configured; /auth will report it")
		}
		return
	}
	creds.SetConfig(client)
	if logger != nil {
		logger.Info("google oauth client loaded",
			zap.String("client_id", client.ClientID),
			zap.String("redirect_uri", client.RedirectURL),
		)
	}
}

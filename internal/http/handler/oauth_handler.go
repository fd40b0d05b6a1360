package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainoauth "github.com/smallbiznis/answer-bridge/internal/domain/oauth"
	authsvc "github.com/smallbiznis/answer-bridge/internal/service/auth"
)

// Plain-text responses shown in the operator's browser.
const (
	MessageNotConfigured = "Google OAuth クライアント情報がまだ設定されていません"
	MessageAuthCompleted = "Google OAuth 完了! これでスプレッドシートに書き込めます"
)

// OAuthHandler serves the Google consent redirect and callback.
type OAuthHandler struct {
	OAuth  authsvc.OAuthService
	Logger *zap.Logger
}

// NewOAuthHandler creates the handler set.
func NewOAuthHandler(oauth authsvc.OAuthService, logger *zap.Logger) *OAuthHandler {
	if logger == nil {
		logger = zap.L()
	}
	return &OAuthHandler{OAuth: oauth, Logger: logger}
}

// Start redirects to the consent screen.
func (h *OAuthHandler) Start(c *gin.Context) {
	out, err := h.OAuth.BeginAuthorization(c.Request.Context())
	if err != nil {
		if errors.Is(err, domainoauth.ErrClientNotConfigured) {
			c.String(http.StatusOK, MessageNotConfigured)
			return
		}
		h.Logger.Error("oauth start failed", zap.Error(err))
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "failed to start authorization")
		return
	}
	c.Redirect(http.StatusFound, out.AuthorizationURL)
}

// Callback exchanges the authorization code and stores the token set.
func (h *OAuthHandler) Callback(c *gin.Context) {
	err := h.OAuth.CompleteAuthorization(c.Request.Context(), authsvc.CompleteAuthorizationInput{
		Code:  c.Query("code"),
		State: c.Query("state"),
	})
	if err != nil {
		_ = c.Error(err)
		switch {
		case errors.Is(err, domainoauth.ErrClientNotConfigured):
			c.String(http.StatusOK, MessageNotConfigured)
		case errors.Is(err, domainoauth.ErrInvalidRequest):
			c.String(http.StatusBadRequest, "authorization code is missing")
		case errors.Is(err, domainoauth.ErrInvalidState):
			c.String(http.StatusBadRequest, "authorization state is invalid or expired")
		default:
			h.Logger.Error("oauth callback failed", zap.Error(err))
			c.String(http.StatusInternalServerError, "token exchange failed")
		}
		return
	}
	c.String(http.StatusOK, MessageAuthCompleted)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/smallbiznis/answer-bridge/internal/repository"
)

// HealthHandler reports liveness and credential readiness.
type HealthHandler struct {
	Creds repository.CredentialStore
}

// NewHealthHandler creates the health handler.
func NewHealthHandler(creds repository.CredentialStore) *HealthHandler {
	return &HealthHandler{Creds: creds}
}

// Health responds with the current credential state.
func (h *HealthHandler) Health(c *gin.Context) {
	_, configured := h.Creds.Config()
	c.JSON(http.StatusOK, gin.H{
		"status":           "ok",
		"oauth_configured": configured,
		"token_present":    h.Creds.HasToken(),
	})
}

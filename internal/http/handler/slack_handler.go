package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"go.uber.org/zap"

	"github.com/smallbiznis/answer-bridge/internal/http/middleware"
	"github.com/smallbiznis/answer-bridge/internal/interaction"
)

// InteractionRouter dispatches decoded interaction payloads.
type InteractionRouter interface {
	Route(cb slack.InteractionCallback) interaction.Kind
}

// SlackHandler receives signed Slack requests.
type SlackHandler struct {
	Router InteractionRouter
	Logger *zap.Logger
}

// NewSlackHandler creates the Slack webhook handler.
func NewSlackHandler(router *interaction.Router, logger *zap.Logger) *SlackHandler {
	if logger == nil {
		logger = zap.L()
	}
	return &SlackHandler{Router: router, Logger: logger}
}

// Events handles interactivity payloads and Events API URL verification.
// Interactions are acknowledged with an empty 200 before any work is scheduled.
func (h *SlackHandler) Events(c *gin.Context) {
	body, err := requestBody(c)
	if err != nil {
		c.String(http.StatusBadRequest, "unreadable body")
		return
	}

	if c.ContentType() == gin.MIMEJSON {
		h.eventsAPI(c, body)
		return
	}

	form, err := url.ParseQuery(string(body))
	if err != nil || form.Get("payload") == "" {
		c.String(http.StatusBadRequest, "missing payload")
		return
	}
	var cb slack.InteractionCallback
	if err := json.Unmarshal([]byte(form.Get("payload")), &cb); err != nil {
		h.Logger.Warn("decode interaction payload", zap.Error(err))
		c.String(http.StatusBadRequest, "invalid payload")
		return
	}

	c.Status(http.StatusOK)
	c.Writer.WriteHeaderNow()

	kind := h.Router.Route(cb)
	h.Logger.Debug("interaction routed",
		zap.String("type", string(cb.Type)),
		zap.String("kind", string(kind)),
		zap.String("user_id", cb.User.ID),
	)
}

func (h *SlackHandler) eventsAPI(c *gin.Context, body []byte) {
	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		h.Logger.Warn("decode events api payload", zap.Error(err))
		c.Status(http.StatusOK)
		return
	}
	if event.Type == slackevents.URLVerification {
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			c.String(http.StatusBadRequest, "invalid challenge")
			return
		}
		c.String(http.StatusOK, challenge.Challenge)
		return
	}
	c.Status(http.StatusOK)
}

func requestBody(c *gin.Context) ([]byte, error) {
	if raw, ok := c.Get(middleware.RawBodyKey); ok {
		if body, ok := raw.([]byte); ok {
			return body, nil
		}
	}
	return io.ReadAll(io.LimitReader(c.Request.Body, middleware.MaxSlackBody))
}

package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/smallbiznis/answer-bridge/internal/config"
	"github.com/smallbiznis/answer-bridge/internal/http/handler"
	httpmiddleware "github.com/smallbiznis/answer-bridge/internal/http/middleware"
)

// SlackEventsPath is the Request URL configured in the Slack app for
// interactivity and event subscriptions.
const SlackEventsPath = "/slack/events"

// NewRouter wires Gin routes and middleware.
func NewRouter(
	cfg config.Config,
	oauthHandler *handler.OAuthHandler,
	slackHandler *handler.SlackHandler,
	healthHandler *handler.HealthHandler,
	rateLimiter *httpmiddleware.RateLimiter,
	logger *zap.Logger,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpmiddleware.RequestLogger(logger))
	r.Use(otelgin.Middleware(cfg.ServiceName))

	r.GET("/healthz", healthHandler.Health)

	oauth := r.Group("/", rateLimiter.Handler())
	{
		oauth.GET("/auth", oauthHandler.Start)
		oauth.GET("/oauth2callback", oauthHandler.Callback)
	}

	r.POST(SlackEventsPath, httpmiddleware.SlackSignature(cfg.SlackSigningSecret, logger), slackHandler.Events)

	return r
}

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	cacheadapter "github.com/smallbiznis/answer-bridge/internal/adapter/cache"
	"github.com/smallbiznis/answer-bridge/internal/adapter/memory"
	oauthadapter "github.com/smallbiznis/answer-bridge/internal/adapter/oauth"
	sheetsadapter "github.com/smallbiznis/answer-bridge/internal/adapter/sheets"
	slackadapter "github.com/smallbiznis/answer-bridge/internal/adapter/slack"
	"github.com/smallbiznis/answer-bridge/internal/bootstrap"
	"github.com/smallbiznis/answer-bridge/internal/config"
	"github.com/smallbiznis/answer-bridge/internal/domain/submission"
	httptransport "github.com/smallbiznis/answer-bridge/internal/http"
	"github.com/smallbiznis/answer-bridge/internal/http/handler"
	httpmiddleware "github.com/smallbiznis/answer-bridge/internal/http/middleware"
	"github.com/smallbiznis/answer-bridge/internal/interaction"
	"github.com/smallbiznis/answer-bridge/internal/repository"
	"github.com/smallbiznis/answer-bridge/internal/server"
	authservice "github.com/smallbiznis/answer-bridge/internal/service/auth"
	"github.com/smallbiznis/answer-bridge/internal/task"
	"github.com/smallbiznis/answer-bridge/internal/telemetry"
)

func main() {
	app := fx.New(
		fx.Provide(
			newConfig,
			newLogger,
			newTelemetry,
			newCredentialStore,
			newOAuthStateStore,
			newOAuthProviderClient,
			newSlackClient,
			newSheetsAppender,
			newTaskGroup,
			newRateLimiter,
			authservice.NewOAuthService,
			newFormOrchestrator,
			newSubmissionProcessor,
			newInteractionRouter,
			handler.NewOAuthHandler,
			handler.NewSlackHandler,
			handler.NewHealthHandler,
			newRouter,
			server.NewHTTPServer,
		),
		fx.Invoke(useTelemetry, bootstrap.LoadOAuthClient, startHTTPServer),
	)

	app.Run()
}

func newConfig() (config.Config, error) {
	return config.Load()
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.Environment == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(logger)
	return logger, nil
}

func newTelemetry(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (*telemetry.Provider, error) {
	provider, err := telemetry.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("telemetry init: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(stopCtx)
		},
	})

	return provider, nil
}

func newCredentialStore() repository.CredentialStore {
	return memory.NewCredentialStore()
}

// newOAuthStateStore uses Redis when configured so state survives across
// replicas behind a load balancer; otherwise state lives in memory.
func newOAuthStateStore(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (repository.OAuthStateStore, error) {
	if !cfg.OAuthStateCheck || cfg.RedisAddr == "" {
		return memory.NewStateStore(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	logger.Info("oauth state stored in redis", zap.String("addr", cfg.RedisAddr))
	return cacheadapter.NewRedisStateStore(client), nil
}

func newOAuthProviderClient() oauthadapter.ProviderClient {
	return oauthadapter.NewGoogleProviderClient(nil)
}

func newSlackClient(cfg config.Config) slackadapter.Client {
	return slackadapter.NewWebClient(cfg.SlackBotToken, cfg.SlackAPIURL, nil)
}

func newSheetsAppender(cfg config.Config) sheetsadapter.Appender {
	return sheetsadapter.NewSheetsAppender(cfg.SpreadsheetID, cfg.SheetRange, nil)
}

func newTaskGroup(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) *task.Group {
	group := task.NewGroup(cfg.TaskTimeout, logger)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return group.Wait(ctx)
		},
	})
	return group
}

func newRateLimiter(cfg config.Config) *httpmiddleware.RateLimiter {
	return httpmiddleware.NewRateLimiter(cfg.RateLimitRPM)
}

func newFormOrchestrator(client slackadapter.Client) *interaction.FormOrchestrator {
	return interaction.NewFormOrchestrator(client)
}

func newSubmissionProcessor(creds repository.CredentialStore, appender sheetsadapter.Appender, client slackadapter.Client, logger *zap.Logger) *interaction.SubmissionProcessor {
	return interaction.NewSubmissionProcessor(creds, appender, client, submission.DefaultTemplate, logger)
}

func newInteractionRouter(forms *interaction.FormOrchestrator, submissions *interaction.SubmissionProcessor, tasks *task.Group, logger *zap.Logger) *interaction.Router {
	return interaction.NewRouter(forms, submissions, tasks, logger)
}

func newRouter(
	cfg config.Config,
	oauthHandler *handler.OAuthHandler,
	slackHandler *handler.SlackHandler,
	healthHandler *handler.HealthHandler,
	rateLimiter *httpmiddleware.RateLimiter,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	return httptransport.NewRouter(cfg, oauthHandler, slackHandler, healthHandler, rateLimiter, logger)
}

func startHTTPServer(lc fx.Lifecycle, srv *server.HTTPServer, logger *zap.Logger) {
	var (
		cancel context.CancelFunc
		done   chan struct{}
	)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			runCtx, stop := context.WithCancel(context.Background())
			cancel = stop
			done = make(chan struct{})

			go func() {
				if err := srv.Run(runCtx); err != nil {
					logger.Error("http server stopped", zap.Error(err))
				}
				close(done)
			}()

			logger.Info("answer bridge listening", zap.String("addr", srv.Addr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if cancel != nil {
				cancel()
			}
			if done == nil {
				return nil
			}
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})
}

func useTelemetry(*telemetry.Provider) {}

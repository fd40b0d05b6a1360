package slack

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/slack-go/slack"
)

// Client is the subset of the Slack Web API used by the interaction handlers.
type Client interface {
	OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error
	PostMessage(ctx context.Context, channelID, text string) error
}

// WebClient calls the Slack Web API with the bot token.
type WebClient struct {
	api *slack.Client
}

var _ Client = (*WebClient)(nil)

// NewWebClient constructs a WebClient. apiURL overrides the Slack API base
// (it must end with a slash); an empty value uses the public endpoint.
func NewWebClient(botToken, apiURL string, httpClient *http.Client) *WebClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	opts := []slack.Option{slack.OptionHTTPClient(httpClient)}
	if u := strings.TrimSpace(apiURL); u != "" {
		if !strings.HasSuffix(u, "/") {
			u += "/"
		}
		opts = append(opts, slack.OptionAPIURL(u))
	}
	return &WebClient{api: slack.New(botToken, opts...)}
}

// OpenView calls views.open.
func (c *WebClient) OpenView(ctx context.Context, triggerID string, view slack.ModalViewRequest) error {
	if _, err := c.api.OpenViewContext(ctx, triggerID, view); err != nil {
		return fmt.Errorf("views.open: %w", err)
	}
	return nil
}

// PostMessage sends plain text to a channel or user id. A user id opens the
// bot's direct message channel with that user.
func (c *WebClient) PostMessage(ctx context.Context, channelID, text string) error {
	if _, _, err := c.api.PostMessageContext(ctx, channelID, slack.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("chat.postMessage: %w", err)
	}
	return nil
}

package interaction

import (
	"context"
	"sync"

	"github.com/slack-go/slack"

	"github.com/smallbiznis/answer-bridge/internal/domain/oauth"
	"github.com/smallbiznis/answer-bridge/internal/domain/submission"
)

type openedView struct {
	triggerID string
	view      slack.ModalViewRequest
}

type sentMessage struct {
	channel string
	text    string
}

type fakeSlack struct {
	mu       sync.Mutex
	views    []openedView
	messages []sentMessage
	openErr  error
	postErr  error
}

func (f *fakeSlack) OpenView(_ context.Context, triggerID string, view slack.ModalViewRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.views = append(f.views, openedView{triggerID: triggerID, view: view})
	return f.openErr
}

func (f *fakeSlack) PostMessage(_ context.Context, channel, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, sentMessage{channel: channel, text: text})
	return f.postErr
}

func (f *fakeSlack) openedViews() []openedView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]openedView(nil), f.views...)
}

func (f *fakeSlack) sentMessages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMessage(nil), f.messages...)
}

type appendedRow struct {
	tokens oauth.TokenSet
	record submission.Record
}

type fakeAppender struct {
	mu   sync.Mutex
	rows []appendedRow
	err  error
}

func (f *fakeAppender) Append(_ context.Context, tokens oauth.TokenSet, record submission.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, appendedRow{tokens: tokens, record: record})
	return f.err
}

func (f *fakeAppender) appended() []appendedRow {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]appendedRow(nil), f.rows...)
}

package interaction

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	sheetsadapter "github.com/smallbiznis/answer-bridge/internal/adapter/sheets"
	slackadapter "github.com/smallbiznis/answer-bridge/internal/adapter/slack"
	"github.com/smallbiznis/answer-bridge/internal/domain/submission"
	"github.com/smallbiznis/answer-bridge/internal/repository"
)

// ConfirmationText is sent to the submitting user once the row is written.
const ConfirmationText = "✅ 回答をスプレッドシートに保存しました！"

// SubmissionProcessor writes submitted answers to the spreadsheet.
type SubmissionProcessor struct {
	creds    repository.CredentialStore
	appender sheetsadapter.Appender
	slack    slackadapter.Client
	template submission.Template
	logger   *zap.Logger
}

// NewSubmissionProcessor wires the processor.
func NewSubmissionProcessor(
	creds repository.CredentialStore,
	appender sheetsadapter.Appender,
	client slackadapter.Client,
	tpl submission.Template,
	logger *zap.Logger,
) *SubmissionProcessor {
	if logger == nil {
		logger = zap.L()
	}
	return &SubmissionProcessor{
		creds:    creds,
		appender: appender,
		slack:    client,
		template: tpl,
		logger:   logger,
	}
}

// Process appends exactly one row and then confirms to the user.
//
// Without a token it returns ErrNoCredential before touching the sheet or
// Slack. An append failure skips the confirmation. None of these failures is
// reported to the user.
func (p *SubmissionProcessor) Process(ctx context.Context, sub Submission) error {
	tokens, ok := p.creds.Token()
	if !ok {
		return ErrNoCredential
	}

	record := submission.NewRecord(p.template, sub.Answer)
	if err := p.appender.Append(ctx, tokens, record); err != nil {
		return fmt.Errorf("%w: %w", ErrAppendFailed, err)
	}

	if err := p.slack.PostMessage(ctx, sub.UserID, ConfirmationText); err != nil {
		return fmt.Errorf("%w: %w", ErrNotifyFailed, err)
	}

	p.logger.Info("answer saved",
		zap.String("user_id", sub.UserID),
		zap.String("correlation_token", sub.CorrelationToken),
	)
	return nil
}

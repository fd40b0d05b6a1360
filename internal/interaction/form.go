package interaction

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	slackadapter "github.com/smallbiznis/answer-bridge/internal/adapter/slack"
)

const (
	modalTitle  = "回答入力"
	modalSubmit = "送信"
	modalClose  = "キャンセル"
	answerLabel = "回答を入力してください"
)

// FormOrchestrator opens the answer modal for a button press.
type FormOrchestrator struct {
	slack slackadapter.Client
}

// NewFormOrchestrator wires the orchestrator to a Slack client.
func NewFormOrchestrator(client slackadapter.Client) *FormOrchestrator {
	return &FormOrchestrator{slack: client}
}

// Open displays the modal. A failure is returned once; there is no retry and
// the user is not told.
func (o *FormOrchestrator) Open(ctx context.Context, trig ActionTrigger) error {
	if err := o.slack.OpenView(ctx, trig.TriggerID, AnswerModal(trig.CorrelationToken)); err != nil {
		return fmt.Errorf("%w: %w", ErrDisplayFailed, err)
	}
	return nil
}

// AnswerModal builds the modal with a single multi-line answer input.
// correlationToken is stored as private_metadata verbatim.
func AnswerModal(correlationToken string) slack.ModalViewRequest {
	input := slack.NewPlainTextInputBlockElement(nil, ActionAnswerInput)
	input.Multiline = true

	block := slack.NewInputBlock(BlockAnswer, plainText(answerLabel), nil, input)

	return slack.ModalViewRequest{
		Type:            slack.VTModal,
		CallbackID:      CallbackAnswerModal,
		Title:           plainText(modalTitle),
		Submit:          plainText(modalSubmit),
		Close:           plainText(modalClose),
		PrivateMetadata: correlationToken,
		Blocks:          slack.Blocks{BlockSet: []slack.Block{block}},
	}
}

func plainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, false, false)
}

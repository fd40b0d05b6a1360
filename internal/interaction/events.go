package interaction

import (
	"errors"

	"github.com/slack-go/slack"
)

// Identifiers shared between the modal definition and the submission payload.
const (
	ActionOpenAnswerModal = "open_answer_modal"
	CallbackAnswerModal   = "answer_modal"
	BlockAnswer           = "answer_block"
	ActionAnswerInput     = "answer_input"
)

var (
	// ErrNoCredential means the Google consent flow has not been completed yet.
	ErrNoCredential = errors.New("interaction: google oauth not completed, cannot write")
	// ErrDisplayFailed wraps views.open failures such as an expired trigger.
	ErrDisplayFailed = errors.New("interaction: open modal failed")
	// ErrAppendFailed wraps spreadsheet write failures.
	ErrAppendFailed = errors.New("interaction: sheets append failed")
	// ErrNotifyFailed wraps confirmation message failures.
	ErrNotifyFailed = errors.New("interaction: confirmation message failed")
)

// ActionTrigger is a button press that should open the answer modal.
type ActionTrigger struct {
	ActionID  string
	TriggerID string
	UserID    string
	// CorrelationToken is the button value, passed through untouched.
	CorrelationToken string
}

// Submission is a submitted answer modal.
type Submission struct {
	CallbackID       string
	UserID           string
	Answer           string
	CorrelationToken string
}

// ActionTriggerFrom extracts the first block action of a block_actions payload.
func ActionTriggerFrom(cb slack.InteractionCallback) (ActionTrigger, bool) {
	if cb.Type != slack.InteractionTypeBlockActions {
		return ActionTrigger{}, false
	}
	actions := cb.ActionCallback.BlockActions
	if len(actions) == 0 || actions[0] == nil {
		return ActionTrigger{}, false
	}
	return ActionTrigger{
		ActionID:         actions[0].ActionID,
		TriggerID:        cb.TriggerID,
		UserID:           cb.User.ID,
		CorrelationToken: actions[0].Value,
	}, true
}

// SubmissionFrom extracts the answer and metadata of a view_submission payload.
func SubmissionFrom(cb slack.InteractionCallback) (Submission, bool) {
	if cb.Type != slack.InteractionTypeViewSubmission {
		return Submission{}, false
	}
	sub := Submission{
		CallbackID:       cb.View.CallbackID,
		UserID:           cb.User.ID,
		CorrelationToken: cb.View.PrivateMetadata,
	}
	if cb.View.State != nil {
		if block, ok := cb.View.State.Values[BlockAnswer]; ok {
			sub.Answer = block[ActionAnswerInput].Value
		}
	}
	return sub, true
}

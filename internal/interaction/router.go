package interaction

import (
	"context"

	"github.com/slack-go/slack"
	"go.uber.org/zap"

	"github.com/smallbiznis/answer-bridge/internal/task"
)

// Scheduler runs work after the Slack request has been acknowledged.
type Scheduler interface {
	Go(name string, fn task.Func) bool
}

// Kind names the handler an interaction was routed to.
type Kind string

const (
	KindIgnored   Kind = "ignored"
	KindOpenModal Kind = ActionOpenAnswerModal
	KindSubmit    Kind = CallbackAnswerModal
)

// Router dispatches acknowledged Slack interactions to their handlers.
type Router struct {
	forms       *FormOrchestrator
	submissions *SubmissionProcessor
	tasks       Scheduler
	logger      *zap.Logger
}

// NewRouter wires the router.
func NewRouter(forms *FormOrchestrator, submissions *SubmissionProcessor, tasks Scheduler, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.L()
	}
	return &Router{forms: forms, submissions: submissions, tasks: tasks, logger: logger}
}

// Route schedules the handler for cb and returns immediately. The caller must
// have acknowledged the request already.
func (r *Router) Route(cb slack.InteractionCallback) Kind {
	if trig, ok := ActionTriggerFrom(cb); ok && trig.ActionID == ActionOpenAnswerModal {
		r.tasks.Go(string(KindOpenModal), func(ctx context.Context) error {
			return r.forms.Open(ctx, trig)
		})
		return KindOpenModal
	}

	if sub, ok := SubmissionFrom(cb); ok && sub.CallbackID == CallbackAnswerModal {
		r.tasks.Go(string(KindSubmit), func(ctx context.Context) error {
			return r.submissions.Process(ctx, sub)
		})
		return KindSubmit
	}

	r.logger.Debug("interaction ignored",
		zap.String("type", string(cb.Type)),
		zap.String("callback_id", cb.View.CallbackID),
	)
	return KindIgnored
}

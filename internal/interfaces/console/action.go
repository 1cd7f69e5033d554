package console

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/sooquk/dashboard/internal/application/query"
	"github.com/sooquk/dashboard/internal/domain/shared"
)

// Action describes a write triggered from a page
type Action struct {
	Name string
	// Subject names the record in toasts, e.g. "District"
	Subject string
	// Success is the message key shown on success, formatted with Subject
	Success string
	// Confirm is asked before running. Destructive actions always set it.
	Confirm string
}

// ActionError is a failed action whose message was already shown
type ActionError struct {
	Action string
	Err    error
}

func (e *ActionError) Error() string {
	return e.Action + ": " + e.Err.Error()
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// Run executes fn for a and reports the outcome as a toast. An action with a
// Confirm prompt that is declined returns ErrNotConfirmed without calling fn.
func Run[Out any](ctx context.Context, deps Deps, a Action, fn func(context.Context) query.MutationResult[Out]) (Out, error) {
	deps = deps.withDefaults()
	log := deps.Logger.With(zap.String("action", a.Name))
	var zero Out

	if a.Confirm != "" {
		ok, err := deps.Confirmer.Confirm(ctx, a.Confirm)
		if err != nil {
			return zero, err
		}
		if !ok {
			log.Info("Action not confirmed")
			return zero, shared.ErrNotConfirmed
		}
	}

	res := fn(ctx)
	if !res.OK() {
		if errors.Is(res.Err, shared.ErrMutationPending) {
			log.Debug("Action already in flight")
		} else {
			log.Warn("Action failed", zap.Error(res.Err))
		}
		deps.Notifier.Error(ErrorMessage(res.Err, deps.Translator))
		return zero, &ActionError{Action: a.Name, Err: res.Err}
	}

	log.Info("Action succeeded", zap.Int("invalidated", len(res.Invalidated)))
	if a.Success != "" {
		deps.Notifier.Success(deps.Translator.T(a.Success, a.Subject))
	}
	return res.Data, nil
}

// Package task runs one cancellable action at a time.
//
// A Runner is the command-side counterpart of a trigger: instead of firing
// on value changes, it starts work on demand, guarantees at most one action
// is in flight, and lets the owner cancel or replace it. Both paths end in
// the same place, an Effect performing under a context.
package task

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/on-the-ground/react_ive_go/feedback"
)

// Action defines an asynchronous operation driven by a Runner. It should
// return promptly once its context is cancelled.
type Action func(context.Context)

// ActionOf adapts an effect into an Action, so on-demand work and triggered
// feedback run through the same Perform contract.
func ActionOf(e feedback.Effect) Action {
	eff := feedback.Wrap(e)
	return func(ctx context.Context) {
		eff.Perform(ctx)
	}
}

// Runner executes at most one action at a time. Start reports whether the
// action was accepted, Cancel asks a running action to stop, and the runner
// returns to idle on its own once the action exits.
//
// Unlike triggers, a Runner is safe for concurrent use: Start, Cancel and
// Running may be called from any goroutine. Close still belongs to the
// owner that created the runner.
type Runner struct {
	RunnerID string

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	closed bool

	logger *zap.Logger
}

// NewRunner returns an idle runner.
func NewRunner() *Runner {
	logger, _ := zap.NewProduction()
	r := &Runner{
		RunnerID: uuid.New().String(),
		logger:   logger,
	}
	r.logger.Sugar().Debugf("action runner open: runnerId: %v", r.RunnerID)
	return r
}

// Start launches the action under a context derived from ctx and reports
// whether it was accepted. Start refuses, returning false, while another
// action is still running or after Close. A nil action panics.
func (r *Runner) Start(ctx context.Context, action Action) bool {
	if action == nil {
		panic("task: nil action")
	}
	r.mu.Lock()
	if r.closed || r.cancel != nil {
		r.mu.Unlock()
		return false
	}
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	r.mu.Unlock()

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				r.logger.Error("panic in action",
					zap.String("runnerId", r.RunnerID),
					zap.Any("error", rec),
				)
			}
			cancel()
			r.mu.Lock()
			r.cancel = nil
			r.done = nil
			r.mu.Unlock()
			close(done)
		}()
		action(runCtx)
	}()
	return true
}

// Cancel requests cancellation of the running action, if any. It does not
// wait for the action to exit. Cancelling an idle runner is a no-op, and
// repeated calls are harmless.
func (r *Runner) Cancel() {
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Running reports whether an action is currently in flight.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

// Close cancels any in-flight action, waits for it to exit, and refuses
// every Start from then on. Calling Close twice is a no-op.
func (r *Runner) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	cancel, done := r.cancel, r.done
	r.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}
	r.logger.Sugar().Debugf("action runner closed: runnerId: %v", r.RunnerID)
}

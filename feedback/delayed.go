package feedback

import (
	"context"
	"time"
)

// Delayed performs one owned effect after a fixed wait. It is a decorator,
// not a scheduler: no repetition, no catch-up, one wait then one perform.
type Delayed struct {
	inner Effect
	wait  time.Duration
}

// Delay postpones e by wait, erased.
//
//   - wait <= 0 performs immediately.
//   - Cancelling the outer ctx during the wait abandons the effect: the
//     inner effect never starts. After the wait it cancels the inner
//     effect's own suspensions instead.
//
// Delay panics on a nil effect.
func Delay(e Effect, wait time.Duration) AnyEffect {
	if e == nil {
		panic("feedback.Delay: nil effect")
	}
	return Wrap(Delayed{inner: e, wait: wait})
}

// Perform waits out the delay, then performs the inner effect and waits for
// it to complete.
func (d Delayed) Perform(ctx context.Context) {
	if d.wait > 0 {
		timer := time.NewTimer(d.wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
	d.inner.Perform(ctx)
}

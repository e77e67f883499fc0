package feedback

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Combined performs two owned effects concurrently and completes when both
// have completed. There is no ordering between the children and no timeout;
// callers wanting a bound wrap the combination in their own context deadline.
type Combined struct {
	first  Effect
	second Effect
}

// Combine builds the parallel composition of a and b, erased.
//
// Perform on the result is a structured join, not a race: it returns only
// once both children have returned. Cancelling the outer ctx cancels both
// children's suspensions. Combine panics on nil children.
func Combine(a, b Effect) AnyEffect {
	if a == nil || b == nil {
		panic("feedback.Combine: nil effect")
	}
	return Wrap(Combined{first: a, second: b})
}

// Perform starts both children on their own goroutines and waits for both.
// A panicking child is recovered and logged so its sibling still runs to
// completion and the join still returns.
func (c Combined) Perform(ctx context.Context) {
	var wg sync.WaitGroup
	for _, eff := range []Effect{c.first, c.second} {
		wg.Add(1)
		go func(e Effect) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					logger, _ := zap.NewProduction()
					logger.Error("panic in combined feedback child", zap.Any("error", r))
				}
			}()
			e.Perform(ctx)
		}(eff)
	}
	wg.Wait()
}

package dispatch_test

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/on-the-ground/react_ive_go/feedback"
	"github.com/on-the-ground/react_ive_go/feedback/internal/dispatch"
)

func TestPool_PerformsDispatchedEffects(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := dispatch.NewPool(ctx, 2, 4, nil)
	defer pool.Close()

	done := make(chan struct{})
	ok := pool.Dispatch(ctx, dispatch.Message{
		Key:    "k",
		Effect: feedback.Func(func(context.Context) { close(done) }),
	})
	if !ok {
		t.Fatal("dispatch refused on an open pool")
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("effect never performed")
	}
}

// Test that every key lands on a worker: distinct keys spread across queues,
// and all of them get performed.
func TestPool_ServesManyKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := dispatch.NewPool(ctx, 4, 8, nil)
	defer pool.Close()

	var wg sync.WaitGroup
	wg.Add(20)
	for i := 0; i < 20; i++ {
		ok := pool.Dispatch(ctx, dispatch.Message{
			Key:    fmt.Sprintf("key-%d", i),
			Effect: feedback.Func(func(context.Context) { wg.Done() }),
		})
		if !ok {
			t.Fatalf("dispatch %d refused", i)
		}
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("not all effects performed")
	}
}

// Test that a panicking effect is contained by the fire supervisor and the
// worker keeps serving its queue.
func TestPool_KeepsServingAfterEffectPanic(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := dispatch.NewPool(ctx, 1, 4, nil)
	defer pool.Close()

	pool.Dispatch(ctx, dispatch.Message{
		Key:    "same",
		Effect: feedback.Func(func(context.Context) { panic("boom") }),
	})

	done := make(chan struct{})
	pool.Dispatch(ctx, dispatch.Message{
		Key:    "same",
		Effect: feedback.Func(func(context.Context) { close(done) }),
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker died with the panicking effect")
	}
}

func TestPool_CloseJoinsSpawnedFires(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := dispatch.NewPool(ctx, 1, 4, nil)

	entered := make(chan struct{})
	var finished atomic.Bool
	pool.Dispatch(ctx, dispatch.Message{
		Key: "k",
		Effect: feedback.Func(func(context.Context) {
			close(entered)
			time.Sleep(100 * time.Millisecond)
			finished.Store(true)
		}),
	})

	select {
	case <-entered:
	case <-time.After(time.Second):
		t.Fatal("fire never started")
	}

	pool.Close()

	if !finished.Load() {
		t.Fatal("Close returned before the in-flight fire finished")
	}
}

func TestPool_DispatchAfterCloseIsRefused(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := dispatch.NewPool(ctx, 1, 4, nil)
	pool.Close()

	ok := pool.Dispatch(ctx, dispatch.Message{Key: "k", Effect: feedback.Noop()})
	if ok {
		t.Fatal("dispatch accepted on a closed pool")
	}
}

func TestPool_ObserverSeesCompletedSpans(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type observed struct {
		key        string
		start, end time.Time
	}
	seen := make(chan observed, 1)

	pool := dispatch.NewPool(ctx, 1, 4, func(key string, start, end time.Time) {
		seen <- observed{key: key, start: start, end: end}
	})
	defer pool.Close()

	pool.Dispatch(ctx, dispatch.Message{
		Key:    "observed",
		Effect: feedback.Func(func(context.Context) { time.Sleep(20 * time.Millisecond) }),
	})

	select {
	case o := <-seen:
		if o.key != "observed" {
			t.Errorf("observer got key %q, want %q", o.key, "observed")
		}
		if got := o.end.Sub(o.start); got < 20*time.Millisecond {
			t.Errorf("observed span too short: %v", got)
		}
	case <-time.After(time.Second):
		t.Fatal("observer never called")
	}
}

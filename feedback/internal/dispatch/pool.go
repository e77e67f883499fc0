package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/on-the-ground/react_ive_go/feedback"
)

// Message is one requested fire: which effect to perform, on behalf of which
// key. Messages with the same key land on the same queue, so their spawn
// order follows their enqueue order.
type Message struct {
	Key    string
	Effect feedback.Effect
}

// Observer receives the wall-clock window of each fire that ran to
// completion. It is called on the fire's own goroutine and must not block.
type Observer func(key string, start, end time.Time)

// Pool is a bounded fire-and-forget executor. Dispatch hands a message to
// one of the worker queues by key hash; the worker spawns one supervised
// child goroutine per fire, so fires are independent units of work that may
// overlap while intake never blocks the caller.
//
// IMPORTANT: Close is owned by the pool's creator and must be called exactly
// once, from a single goroutine. Dispatch, by contrast, is safe from any
// goroutine; a dispatch racing Close is dropped, never stuck.
type Pool struct {
	PoolID   string
	queues   []chan Message
	cancel   context.CancelFunc
	workers  *sync.WaitGroup
	children *sync.WaitGroup
	observe  Observer
	logger   *zap.Logger
	closed   bool
}

// NewPool starts numWorkers queue consumers with the given per-queue buffer.
// observe may be nil. The pool lives until Close; the supplied ctx bounds it
// from above (cancelling ctx also winds the pool down).
func NewPool(ctx context.Context, numWorkers, bufferSize int, observe Observer) *Pool {
	logger, _ := zap.NewProduction()
	ctx, cancelFn := context.WithCancel(ctx)

	p := &Pool{
		PoolID:   uuid.New().String(),
		queues:   make([]chan Message, numWorkers),
		cancel:   cancelFn,
		workers:  &sync.WaitGroup{},
		children: &sync.WaitGroup{},
		observe:  observe,
		logger:   logger,
	}

	ready := sync.WaitGroup{}
	for i := 0; i < numWorkers; i++ {
		ch := make(chan Message, bufferSize)
		p.queues[i] = ch
		p.workers.Add(1)
		ready.Add(1)
		go func(ch chan Message) {
			defer p.workers.Done()
			defer close(ch)
			ready.Done()
			for {
				select {
				case msg := <-ch:
					p.spawnFire(ctx, msg)
				case <-ctx.Done():
					return
				}
			}
		}(ch)
	}
	// all workers consuming before the first dispatch can race them
	ready.Wait()

	logger.Sugar().Debugf("feedback pool open: poolId: %v, workers: %v, buffer: %v",
		p.PoolID, numWorkers, bufferSize)
	return p
}

// Dispatch enqueues one fire without ever blocking the caller: the send
// either lands in the key's queue, or the message is dropped (queue full,
// ctx done, or pool already closed) and Dispatch reports false.
func (p *Pool) Dispatch(ctx context.Context, msg Message) (accepted bool) {
	defer func() {
		if r := recover(); r != nil {
			// send raced Close: the queue is gone, the fire is dropped
			p.logger.Warn("dispatch to closed feedback pool",
				zap.String("poolId", p.PoolID),
				zap.String("key", msg.Key),
			)
			accepted = false
		}
	}()

	ch := p.queues[indexByHash(msg.Key, len(p.queues))]
	select {
	case <-ctx.Done():
		return false
	case ch <- msg:
		return true
	default:
		p.logger.Warn("feedback dropped, queue full",
			zap.String("poolId", p.PoolID),
			zap.String("key", msg.Key),
		)
		return false
	}
}

// spawnFire runs one fire on its own goroutine under the pool's lifetime
// context. Panics in leaf effects are recovered and logged so one bad leaf
// cannot take the worker, or the process, down.
func (p *Pool) spawnFire(ctx context.Context, msg Message) {
	p.children.Add(1)
	go func() {
		defer p.children.Done()
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("panic in feedback fire",
					zap.String("poolId", p.PoolID),
					zap.String("key", msg.Key),
					zap.Any("error", r),
				)
			}
		}()

		start := time.Now()
		msg.Effect.Perform(ctx)
		if p.observe != nil {
			p.observe(msg.Key, start, time.Now())
		}
	}()
}

// Close cancels the workers and every in-flight fire, then joins them all.
// After Close returns no goroutine of the pool is left running. Idempotent.
func (p *Pool) Close() {
	if p.closed {
		return
	}
	p.closed = true

	p.cancel()
	p.workers.Wait()
	p.children.Wait()
	p.logger.Sugar().Debugf("feedback pool closed: poolId: %v", p.PoolID)
}

package trigger

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/on-the-ground/react_ive_go/feedback"
	"github.com/on-the-ground/react_ive_go/feedback/internal/dispatch"
)

// FireRecord describes one completed fire: which trigger fired and the
// time span its effect ran over.
type FireRecord struct {
	TriggerID string
	Span      feedback.Span
}

// TimeSpan implements feedback.TimeBounded.
func (fr FireRecord) TimeSpan() feedback.Span { return fr.Span }

// Group owns the dispatch pool shared by a set of triggers. Triggers
// attached to the same group fire on the same workers and report to the
// same Source channel.
//
// IMPORTANT: Group is intentionally NOT thread-safe for lifecycle control.
// Close must be called exactly once, by the same owner that created the
// group. Notify, by contrast, may be called from any goroutine as long as
// each trigger keeps a single writer.
type Group struct {
	pool   *dispatch.Pool
	source chan FireRecord
	closed bool
}

// NewGroup creates a group sized from the environment
// (REACT_IVE_GO_TRIGGER_BUFFER_SIZE, REACT_IVE_GO_TRIGGER_NUM_WORKERS).
// A malformed environment logs a warning and falls back to defaults.
func NewGroup(ctx context.Context) *Group {
	cfg, err := ConfigFromEnv()
	if err != nil {
		logger, _ := zap.NewProduction()
		logger.Warn("failed to load trigger config from env, using defaults",
			zap.Error(err),
		)
		cfg = Config{}
	}
	return NewGroupWith(ctx, cfg)
}

// NewGroupWith creates a group with an explicit configuration. The given
// context bounds the lifetime of every fire the group runs: cancel it (or
// call Close) and in-flight effects see ctx.Done.
func NewGroupWith(ctx context.Context, cfg Config) *Group {
	cfg = cfg.normalize()
	source := make(chan FireRecord, 2*cfg.NumWorkers)
	pool := dispatch.NewPool(ctx, cfg.NumWorkers, cfg.BufferSize,
		func(key string, start, end time.Time) {
			select {
			case source <- FireRecord{TriggerID: key, Span: feedback.NewSpan(start, end)}:
			default:
				// nobody is draining the tap, records are droppable
			}
		},
	)
	return &Group{
		pool:   pool,
		source: source,
	}
}

// Source exposes the group's fire records. Reading it is optional: when no
// one drains the channel, records are dropped, never buffered unboundedly.
// The channel is closed by Close after the last in-flight fire finishes.
func (g *Group) Source() <-chan FireRecord {
	return g.source
}

func (g *Group) dispatch(ctx context.Context, msg dispatch.Message) bool {
	return g.pool.Dispatch(ctx, msg)
}

// Close shuts the pool down, waits for in-flight fires to finish, then
// closes the Source channel.
func (g *Group) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.pool.Close()
	close(g.source)
}

package trigger

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/on-the-ground/react_ive_go/feedback"
	"github.com/on-the-ground/react_ive_go/feedback/internal/dispatch"
	"github.com/on-the-ground/react_ive_go/pure"
)

// ErrNonPositiveStep is the panic cause when OnStep is given a step <= 0.
var ErrNonPositiveStep = errors.New("trigger: step must be positive")

// Slot is a settable view over a piece of state. A trigger writes every
// notified value through Set; Get is read once at attach time to seed the
// baseline.
type Slot[V any] struct {
	Get func() V
	Set func(v V)
}

// SlotOf adapts a plain pointer into a Slot.
func SlotOf[V any](p *V) Slot[V] {
	if p == nil {
		panic("trigger.SlotOf: nil pointer")
	}
	return Slot[V]{
		Get: func() V { return *p },
		Set: func(v V) { *p = v },
	}
}

// Trigger watches a stream of values for one slot and fires its effect on
// the group's pool whenever two consecutive values differ under the
// trigger's comparison. Attaching never fires: the slot's current value is
// the baseline, and only a later Notify can cross it.
//
// IMPORTANT: a trigger is intentionally NOT thread-safe. Notify and Close
// belong to a single owner goroutine. Concurrent owners must each attach
// their own trigger.
type Trigger[V comparable] struct {
	// TriggerID keys FireRecords and pins the trigger to one pool queue,
	// so fires of the same trigger are spawned in notify order.
	TriggerID string
	slot      Slot[V]
	effect    feedback.AnyEffect
	group     *Group
	last      V
	fireIf    func(old, new V) bool
	closed    bool
}

// OnChange attaches a trigger that fires whenever the notified value is
// not equal to the previous one.
func OnChange[V comparable](g *Group, slot Slot[V], eff feedback.Effect) *Trigger[V] {
	return attach(g, slot, eff, func(old, new V) bool {
		return old != new
	})
}

// OnStep attaches a trigger that quantizes values to multiples of step and
// fires only when the quantized value moves to a different multiple. The
// slot and the baseline still carry raw values: quantization happens at
// comparison time, never at storage time, so no precision is lost and a
// later change of step sees the exact history.
//
// Panics with ErrNonPositiveStep if step <= 0.
func OnStep[V pure.Real](g *Group, slot Slot[V], step V, eff feedback.Effect) *Trigger[V] {
	if step <= 0 {
		panic(fmt.Errorf("%w: got %v", ErrNonPositiveStep, step))
	}
	return attach(g, slot, eff, func(old, new V) bool {
		return pure.Quantize(old, step) != pure.Quantize(new, step)
	})
}

func attach[V comparable](g *Group, slot Slot[V], eff feedback.Effect, fireIf func(old, new V) bool) *Trigger[V] {
	if g == nil {
		panic("trigger: nil group")
	}
	if slot.Get == nil || slot.Set == nil {
		panic("trigger: slot must have both Get and Set")
	}
	return &Trigger[V]{
		TriggerID: uuid.New().String(),
		slot:      slot,
		effect:    feedback.Wrap(eff),
		group:     g,
		last:      slot.Get(),
		fireIf:    fireIf,
	}
}

// Notify feeds the trigger a new value. The value is always written to the
// slot, raw, whether or not the trigger fires. The write is synchronous and
// never waits on the effect: a fire is enqueued on the group's pool after
// the write and runs concurrently. When the pool's queue is full the fire
// is dropped, not the write.
func (t *Trigger[V]) Notify(ctx context.Context, v V) {
	fire := !t.closed && t.fireIf(t.last, v)
	t.last = v
	t.slot.Set(v)
	if fire {
		t.group.dispatch(ctx, dispatch.Message{Key: t.TriggerID, Effect: t.effect})
	}
}

// Close detaches the trigger from its effect. Further Notify calls keep
// updating the slot but never fire. Close does not touch the group.
func (t *Trigger[V]) Close() {
	t.closed = true
}

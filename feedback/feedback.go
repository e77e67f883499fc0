package feedback

import (
	"context"
)

// Effect is the capability shared by every feedback value: perform the side
// effect, block until it is done, produce nothing.
//
//   - Cancellation arrives through ctx; an effect that stops early because of
//     it has still "performed". There is no failure channel.
//   - Leaf implementations absorb their own errors. A leaf that cannot reach
//     its hardware behaves as "did nothing".
type Effect interface {
	Perform(ctx context.Context)
}

// Func adapts a plain function to the Effect capability. It is the usual way
// platform leaves (haptics, flashes, bells) enter the algebra.
type Func func(context.Context)

// Perform calls the function itself.
func (f Func) Perform(ctx context.Context) { f(ctx) }

// AnyEffect is an owning, type-erased box around exactly one effect.
//
// It exists so concrete effects of unrelated types can be stored in the same
// field, passed through the same APIs, and re-combined freely: AnyEffect is
// itself an Effect. Obtain one from Wrap, Combine, Delay or Noop; the zero
// value holds no effect and must not be performed.
type AnyEffect struct {
	inner Effect
}

// Wrap erases a concrete effect.
//
// Wrapping is idempotent: an AnyEffect comes back unchanged, so double
// wrapping never stacks boxes. Wrap panics on a nil effect and on a zero
// AnyEffect, so a box returned by Wrap always owns a performable value.
func Wrap(e Effect) AnyEffect {
	if e == nil {
		panic("feedback.Wrap: nil effect")
	}
	if erased, ok := e.(AnyEffect); ok {
		if erased.inner == nil {
			panic("feedback.Wrap: zero AnyEffect")
		}
		return erased
	}
	return AnyEffect{inner: e}
}

// Perform forwards to the wrapped effect. The box adds no behavior of its own.
func (ae AnyEffect) Perform(ctx context.Context) {
	ae.inner.Perform(ctx)
}

// Noop returns the identity effect: performs nothing, completes immediately.
func Noop() AnyEffect {
	return Wrap(Func(func(context.Context) {}))
}

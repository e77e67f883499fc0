// Package feedback provides a small, closed algebra of fire-and-forget
// side effects for Go.
//
// React-ive Go grew out of the same itch as Effect-ive Go: side effects want
// to be values. A haptic pulse, a screen flash, a bell, a notification sound:
// each is "perform this asynchronously, produce nothing, report nothing".
// Once that capability is a value, it can be stored, passed around, combined
// and attached to the places that should cause it.
//
// # What is a feedback effect?
//
// Anything implementing
//
//	Perform(ctx context.Context)
//
// Perform blocks its caller until the effect is done, honors ctx for
// cooperative cancellation, and never returns a value or an error. A leaf
// that fails (unavailable hardware, closed terminal) absorbs the failure and
// behaves as "did nothing". A cancelled effect is an outcome, not an error.
//
// # The algebra
//
//   - Wrap erases any concrete effect into an AnyEffect box.
//   - Combine runs two effects concurrently and waits for both.
//   - Delay waits, cancellably, then runs its inner effect.
//   - Func adapts a plain function; Noop is the identity.
//
// Every combinator accepts any Effect and returns an AnyEffect, so composed
// effects compose again: Delay(Combine(pulse, flash), 50*time.Millisecond).
//
// # Triggering
//
// Two subpackages turn values and commands into fires:
//
//   - trigger attaches an effect to an externally owned value slot and fires
//     it on observed change, optionally quantized by a step so sub-threshold
//     wiggle stays silent.
//   - task owns at most one in-flight cancellable action, for button-press
//     style effects.
//
// Both paths end at the same Perform contract.
//
// # Design Philosophy
//
// Like Effect-ive Go, this package leans on goroutines, channels and context
// instead of magic: explicit scoping, explicit teardown, panic-safe
// supervision, and no hidden global state beyond what zap logging needs.
package feedback

package pure

import "math"

// Integer is the set of integer domains usable with Quantize.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Float is the set of floating-point domains usable with Quantize.
type Float interface {
	~float32 | ~float64
}

// Real is an ordered numeric domain with division: the domains a
// quantization step makes sense for.
type Real interface {
	Integer | Float
}

// Quantize maps v onto the lattice of multiples of step: round(v/step)*step.
//
// Floating-point domains round to the nearest multiple; integer domains keep
// their own division semantics and truncate toward zero. step must be
// positive; callers validate at their boundary (see trigger.OnStep).
func Quantize[N Real](v, step N) N {
	if isFloatDomain[N]() {
		return N(math.Round(float64(v)/float64(step)) * float64(step))
	}
	return v / step * step
}

// isFloatDomain reports whether N keeps fractions: N(1)/N(2) is 0 in every
// integer domain and 0.5 in every float domain.
func isFloatDomain[N Real]() bool {
	return N(1)/N(2) != N(0)
}

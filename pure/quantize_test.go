package pure_test

import (
	"testing"

	"github.com/on-the-ground/react_ive_go/pure"

	"github.com/stretchr/testify/assert"
)

func TestQuantize_Float64RoundsToNearestMultiple(t *testing.T) {
	cases := []struct {
		v, step, want float64
	}{
		{0.0, 1.0, 0.0},
		{0.4, 1.0, 0.0},
		{0.6, 1.0, 1.0},
		{1.4, 1.0, 1.0},
		{-0.6, 1.0, -1.0},
		{0.5, 1.0, 1.0}, // halves round away from zero
		{-0.5, 1.0, -1.0},
		{7.3, 2.5, 7.5},
		{0.07, 0.05, 0.05},
	}
	for _, c := range cases {
		assert.InDelta(t, c.want, pure.Quantize(c.v, c.step), 1e-9,
			"Quantize(%v, %v)", c.v, c.step)
	}
}

func TestQuantize_Float32RoundsToNearestMultiple(t *testing.T) {
	assert.InDelta(t, float32(1.0), pure.Quantize(float32(0.6), float32(1.0)), 1e-6)
	assert.InDelta(t, float32(0.0), pure.Quantize(float32(0.4), float32(1.0)), 1e-6)
}

func TestQuantize_IntTruncatesTowardZero(t *testing.T) {
	cases := []struct {
		v, step, want int
	}{
		{0, 3, 0},
		{2, 3, 0},
		{3, 3, 3},
		{7, 3, 6},
		{9, 3, 9},
		{-7, 3, -6},
		{-2, 3, 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, pure.Quantize(c.v, c.step),
			"Quantize(%v, %v)", c.v, c.step)
	}
}

func TestQuantize_UnsignedAndNarrowIntegers(t *testing.T) {
	assert.Equal(t, uint(6), pure.Quantize(uint(7), uint(3)))
	assert.Equal(t, int8(-6), pure.Quantize(int8(-7), int8(3)))
	assert.Equal(t, uint16(0), pure.Quantize(uint16(2), uint16(5)))
}

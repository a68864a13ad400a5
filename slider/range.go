package slider

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRange is returned for ranges with min > max or non-finite bounds.
var ErrInvalidRange = errors.New("slider: invalid range")

// Range is the closed interval [min, max] a slider's value lives in.
// Build it with NewRange; the zero Range is the degenerate interval [0, 0].
type Range struct {
	min, max float64
}

// NewRange validates and returns the range [min, max].
func NewRange(min, max float64) (Range, error) {
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return Range{}, fmt.Errorf("%w: bounds must be finite, got [%v, %v]", ErrInvalidRange, min, max)
	}
	if min > max {
		return Range{}, fmt.Errorf("%w: min %v > max %v", ErrInvalidRange, min, max)
	}
	return Range{min: min, max: max}, nil
}

// MustRange is like NewRange but panics on an invalid range.
func MustRange(min, max float64) Range {
	r, err := NewRange(min, max)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Range) Min() float64  { return r.min }
func (r Range) Max() float64  { return r.max }
func (r Range) Span() float64 { return r.max - r.min }

func (r Range) String() string { return fmt.Sprintf("[%g, %g]", r.min, r.max) }

// Clamp limits v to the range. NaN clamps to min.
func (r Range) Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < r.min:
		return r.min
	case v > r.max:
		return r.max
	}
	return v
}

// Ratio returns where v sits in the range as a fraction in [0, 1], which is
// the thumb position a styled slider draws. A degenerate range returns 0.
func (r Range) Ratio(v float64) float64 {
	span := r.Span()
	if span <= 0 {
		return 0
	}
	return (r.Clamp(v) - r.min) / span
}

// stepEpsilon absorbs float error when counting whole steps in a span.
const stepEpsilon = 1e-9

// effectiveStep returns step, or 0 (continuous) when step is not a usable size.
func effectiveStep(step float64) float64 {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return 0
	}
	return step
}

// Quantize clamps v into r and, when step > 0, snaps it to the nearest value
// min + k*step. Ties round half up. k is capped so the result never exceeds
// max; a step of zero, a negative step or a non-finite step means continuous.
func Quantize(r Range, step, v float64) float64 {
	v = r.Clamp(v)
	step = effectiveStep(step)
	if step == 0 {
		return v
	}
	kmax := math.Floor(r.Span()/step + stepEpsilon)
	k := math.Floor((v-r.min)/step + 0.5)
	if k > kmax {
		k = kmax
	}
	if k < 0 {
		k = 0
	}
	out := r.min + k*step
	if out > r.max {
		out = r.max
	}
	return out
}

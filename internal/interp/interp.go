package interp

import (
	"fmt"
	"math"
)

// Extrapolation controls behavior outside the input range, independently
// per side.
type Extrapolation int

const (
	// Clamp pins the output at the boundary value.
	Clamp Extrapolation = iota
	// Extend continues the linear mapping beyond the range.
	Extend
)

// Mapping linearly maps an input range onto an output range. Construct via
// NewMapping so a zero-width input range is rejected before any frame is
// computed.
type Mapping struct {
	InMin, InMax   float64
	OutMin, OutMax float64
	Left, Right    Extrapolation
}

// NewMapping validates the ranges eagerly. A zero-width input range would
// divide by zero mid-frame, so it is a configuration error here.
func NewMapping(in, out [2]float64, left, right Extrapolation) (Mapping, error) {
	for _, v := range []float64{in[0], in[1], out[0], out[1]} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Mapping{}, fmt.Errorf("interp: range bound %g is not finite", v)
		}
	}
	if in[0] == in[1] {
		return Mapping{}, fmt.Errorf("interp: input range [%g,%g] has zero width", in[0], in[1])
	}
	return Mapping{
		InMin: in[0], InMax: in[1],
		OutMin: out[0], OutMax: out[1],
		Left: left, Right: right,
	}, nil
}

// Map converts x through the mapping, applying each side's extrapolation
// policy.
func (m Mapping) Map(x float64) float64 {
	t := (x - m.InMin) / (m.InMax - m.InMin)
	if t < 0 && m.Left == Clamp {
		t = 0
	}
	if t > 1 && m.Right == Clamp {
		t = 1
	}
	return m.OutMin + t*(m.OutMax-m.OutMin)
}

// Interpolate is the one-shot form with both sides clamped, used for simple
// fades directly off the frame counter. A zero-width input range returns the
// boundary value instead of dividing by zero.
func Interpolate(x float64, in, out [2]float64) float64 {
	if in[0] == in[1] {
		if x < in[0] {
			return out[0]
		}
		return out[1]
	}
	m := Mapping{
		InMin: in[0], InMax: in[1],
		OutMin: out[0], OutMax: out[1],
		Left: Clamp, Right: Clamp,
	}
	return m.Map(x)
}

// Lerp performs plain linear interpolation between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

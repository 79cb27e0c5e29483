package transform

import "fmt"

// CounterRotate returns the rotation ops canceling each rotation in s, in
// reverse order, so that an element inside a rotated parent stays upright:
// composing s with CounterRotate(s) nets zero rotation while the parent's
// translation is still inherited. Non-rotation ops are ignored.
func CounterRotate(s Stack) Stack {
	out := make(Stack, 0, len(s))
	for i := len(s) - 1; i >= 0; i-- {
		switch v := s[i].(type) {
		case RotateX:
			out = append(out, RotateX{Radians: -v.Radians})
		case RotateY:
			out = append(out, RotateY{Radians: -v.Radians})
		case RotateZ:
			out = append(out, RotateZ{Radians: -v.Radians})
		}
	}
	return out
}

// OpposingConfig drives the frame/content transform pair behind the
// object-behind-glass depth illusion. As the blend progress goes 0→1 the
// frame's tilt goes 0→−MaxTilt while the content's goes MaxTilt→0, and the
// frame's scale is the reciprocal of the content's shrink factor times
// Padding, so the two layers stay visually aligned at both extremes.
type OpposingConfig struct {
	MaxTilt   float64 // radians, applied with opposite signs on each layer
	MaxSkew   float64 // radians
	RestScale float64 // content scale at progress 0, in (0, 1]
	Padding   float64 // how far the frame outgrows the content
}

// Validate rejects non-finite or degenerate magnitudes at configuration
// time.
func (c OpposingConfig) Validate() error {
	if err := finite("opposing", c.MaxTilt, c.MaxSkew, c.RestScale, c.Padding); err != nil {
		return err
	}
	if c.RestScale <= 0 || c.RestScale > 1 {
		return fmt.Errorf("transform: opposing rest scale %g must be in (0, 1]", c.RestScale)
	}
	if c.Padding <= 0 {
		return fmt.Errorf("transform: opposing padding %g must be positive", c.Padding)
	}
	return nil
}

// Opposing produces the frame and content stacks at the given progress.
// Invariant: frameScale·contentScale == Padding at every progress, which
// pins both layers to their designed rest size at 0 and has the content
// fill the viewport (scale 1) at 1 with the frame grown to match.
func (c OpposingConfig) Opposing(progress float64) (frame, content Stack) {
	contentScale := c.RestScale + (1-c.RestScale)*progress
	frameScale := c.Padding / contentScale

	frame = Stack{
		RotateY{Radians: -c.MaxTilt * progress},
		SkewY{Radians: -c.MaxSkew * progress},
		Scale3{X: frameScale, Y: frameScale, Z: 1},
	}
	content = Stack{
		RotateY{Radians: c.MaxTilt * (1 - progress)},
		SkewY{Radians: c.MaxSkew * (1 - progress)},
		Scale3{X: contentScale, Y: contentScale, Z: 1},
	}
	return frame, content
}

// Package transform composes ordered lists of typed transform operations
// into 4×4 matrices. Ordering is significant and checked by the type
// system, replacing string-templated transform assembly.
package transform

import (
	"fmt"
	"math"
)

// Op is a single operation in an ordered transform list.
type Op interface {
	// Matrix returns the op's 4×4 matrix.
	Matrix() Mat4
	// Validate rejects non-finite magnitudes at configuration time.
	Validate() error
}

// Translate3 moves by (X, Y, Z).
type Translate3 struct {
	X, Y, Z float64
}

// RotateX rotates about the X axis.
type RotateX struct {
	Radians float64
}

// RotateY rotates about the Y axis.
type RotateY struct {
	Radians float64
}

// RotateZ rotates in the screen plane.
type RotateZ struct {
	Radians float64
}

// Scale3 scales each axis independently.
type Scale3 struct {
	X, Y, Z float64
}

// SkewX shears X by Y.
type SkewX struct {
	Radians float64
}

// SkewY shears Y by X.
type SkewY struct {
	Radians float64
}

// Perspective sets the viewing distance for a depth illusion. Must come
// before (to the left of) the ops it should apply to.
type Perspective struct {
	Distance float64
}

func (t Translate3) Matrix() Mat4 {
	m := Identity()
	m[0][3] = t.X
	m[1][3] = t.Y
	m[2][3] = t.Z
	return m
}

func (r RotateX) Matrix() Mat4 {
	sin, cos := math.Sincos(r.Radians)
	m := Identity()
	m[1][1], m[1][2] = cos, -sin
	m[2][1], m[2][2] = sin, cos
	return m
}

func (r RotateY) Matrix() Mat4 {
	sin, cos := math.Sincos(r.Radians)
	m := Identity()
	m[0][0], m[0][2] = cos, sin
	m[2][0], m[2][2] = -sin, cos
	return m
}

func (r RotateZ) Matrix() Mat4 {
	sin, cos := math.Sincos(r.Radians)
	m := Identity()
	m[0][0], m[0][1] = cos, -sin
	m[1][0], m[1][1] = sin, cos
	return m
}

func (s Scale3) Matrix() Mat4 {
	m := Identity()
	m[0][0] = s.X
	m[1][1] = s.Y
	m[2][2] = s.Z
	return m
}

func (s SkewX) Matrix() Mat4 {
	m := Identity()
	m[0][1] = math.Tan(s.Radians)
	return m
}

func (s SkewY) Matrix() Mat4 {
	m := Identity()
	m[1][0] = math.Tan(s.Radians)
	return m
}

func (p Perspective) Matrix() Mat4 {
	m := Identity()
	m[3][2] = -1 / p.Distance
	return m
}

func (t Translate3) Validate() error { return finite("translate3", t.X, t.Y, t.Z) }
func (r RotateX) Validate() error    { return finite("rotateX", r.Radians) }
func (r RotateY) Validate() error    { return finite("rotateY", r.Radians) }
func (r RotateZ) Validate() error    { return finite("rotateZ", r.Radians) }
func (s Scale3) Validate() error     { return finite("scale3", s.X, s.Y, s.Z) }
func (s SkewX) Validate() error      { return finite("skewX", s.Radians) }
func (s SkewY) Validate() error      { return finite("skewY", s.Radians) }

func (p Perspective) Validate() error {
	if err := finite("perspective", p.Distance); err != nil {
		return err
	}
	if p.Distance <= 0 {
		return fmt.Errorf("transform: perspective distance %g must be positive", p.Distance)
	}
	return nil
}

func finite(name string, vs ...float64) error {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("transform: %s magnitude %g is not finite", name, v)
		}
	}
	return nil
}

// Stack is the ordered transform list for one element. The rightmost
// (last) op is applied to the element's local frame first, matching the
// order the ops are written in.
type Stack []Op

// Validate checks every op in the stack.
func (s Stack) Validate() error {
	for i, op := range s {
		if err := op.Validate(); err != nil {
			return fmt.Errorf("op %d: %w", i, err)
		}
	}
	return nil
}

// Compose multiplies the stack into a single matrix.
func (s Stack) Compose() Mat4 {
	m := Identity()
	for _, op := range s {
		m = m.Mul(op.Matrix())
	}
	return m
}

// OpDesc is a serializable description of one op, for state dumps and
// external surfaces that rebuild transforms themselves.
type OpDesc struct {
	Name string    `json:"op" yaml:"op"`
	Args []float64 `json:"args" yaml:"args"`
}

// Describe converts the stack into its serializable form, preserving
// order.
func (s Stack) Describe() []OpDesc {
	out := make([]OpDesc, 0, len(s))
	for _, op := range s {
		switch v := op.(type) {
		case Translate3:
			out = append(out, OpDesc{Name: "translate3", Args: []float64{v.X, v.Y, v.Z}})
		case RotateX:
			out = append(out, OpDesc{Name: "rotateX", Args: []float64{v.Radians}})
		case RotateY:
			out = append(out, OpDesc{Name: "rotateY", Args: []float64{v.Radians}})
		case RotateZ:
			out = append(out, OpDesc{Name: "rotateZ", Args: []float64{v.Radians}})
		case Scale3:
			out = append(out, OpDesc{Name: "scale3", Args: []float64{v.X, v.Y, v.Z}})
		case SkewX:
			out = append(out, OpDesc{Name: "skewX", Args: []float64{v.Radians}})
		case SkewY:
			out = append(out, OpDesc{Name: "skewY", Args: []float64{v.Radians}})
		case Perspective:
			out = append(out, OpDesc{Name: "perspective", Args: []float64{v.Distance}})
		default:
			// An op from outside the built-in set still shows up in dumps,
			// named after its type, rather than vanishing silently.
			out = append(out, OpDesc{Name: fmt.Sprintf("unknown(%T)", op)})
		}
	}
	return out
}

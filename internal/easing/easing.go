package easing

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
)

// Curve reshapes linear progress into non-linear motion. Curves are pure
// functions defined over all reals; callers clamp the input first when
// clamping is wanted (overshoot curves deliberately leave [0,1]).
type Curve func(t float64) float64

// Linear returns t unchanged.
func Linear(t float64) float64 { return t }

// InQuad accelerates from a standstill.
func InQuad(t float64) float64 { return t * t }

// OutQuad decelerates to a stop.
func OutQuad(t float64) float64 { return t * (2 - t) }

// InCubic accelerates harder than InQuad.
func InCubic(t float64) float64 { return t * t * t }

// OutCubic starts fast and settles slowly, the workhorse curve for
// natural-feeling motion.
func OutCubic(t float64) float64 {
	u := t - 1
	return u*u*u + 1
}

// InOutCubic accelerates through the first half and decelerates through
// the second.
func InOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// OutQuint decelerates more sharply than OutCubic.
func OutQuint(t float64) float64 {
	u := t - 1
	return u*u*u*u*u + 1
}

// OutExpo decelerates exponentially, never quite reaching 1 for t < 1.
func OutExpo(t float64) float64 {
	return 1 - math.Pow(2, -10*t)
}

// OutBack overshoots its target slightly before settling back.
func OutBack(t float64) float64 {
	const s = 1.70158
	u := t - 1
	return u*u*((s+1)*u+s) + 1
}

// FromTween adapts a gween easing function to a Curve by normalizing it to
// the unit interval. Any curve from the gween library can be substituted
// wherever a Curve is expected.
func FromTween(fn ease.TweenFunc) Curve {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// curves maps storyboard curve names to implementations. Part of the set
// comes straight from the gween easing library through FromTween.
var curves = map[string]Curve{
	"linear":       Linear,
	"in-quad":      InQuad,
	"out-quad":     OutQuad,
	"in-cubic":     InCubic,
	"out-cubic":    OutCubic,
	"in-out-cubic": InOutCubic,
	"out-quint":    OutQuint,
	"out-expo":     OutExpo,
	"out-back":     OutBack,
	"in-out-quad":  FromTween(ease.InOutQuad),
	"in-out-sine":  FromTween(ease.InOutSine),
	"out-bounce":   FromTween(ease.OutBounce),
	"out-elastic":  FromTween(ease.OutElastic),
}

// ByName resolves a storyboard curve name. The empty name resolves to nil,
// letting callers fall back to their own default.
func ByName(name string) (Curve, error) {
	if name == "" {
		return nil, nil
	}
	c, ok := curves[name]
	if !ok {
		return nil, fmt.Errorf("easing: unknown curve %q (known: %s)", name, knownNames())
	}
	return c, nil
}

func knownNames() string {
	names := make([]string, 0, len(curves))
	for name := range curves {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// Clamp01 clamps t to [0,1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

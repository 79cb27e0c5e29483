package spring

import (
	"fmt"
	"math"

	"github.com/charmbracelet/harmonica"
)

// Config parameterizes a damped oscillator driven by the frame counter.
// Progress starts at 0, is exactly 0 for every frame before Delay, and
// asymptotically settles at 1. Heavier Mass or lower Stiffness slows the
// approach.
type Config struct {
	Mass      float64 `yaml:"mass"`
	Damping   float64 `yaml:"damping"`
	Stiffness float64 `yaml:"stiffness"`
	Delay     int     `yaml:"delay"` // frames
	Backend   string  `yaml:"backend,omitempty"`
}

// Spring backends. The empty string means analytic.
const (
	BackendAnalytic   = "analytic"
	BackendIntegrator = "integrator"
)

// Validate rejects degenerate configurations before any frame is computed.
func (c Config) Validate() error {
	if c.Mass <= 0 || math.IsNaN(c.Mass) || math.IsInf(c.Mass, 0) {
		return fmt.Errorf("spring: mass must be positive and finite, got %g", c.Mass)
	}
	if c.Stiffness <= 0 || math.IsNaN(c.Stiffness) || math.IsInf(c.Stiffness, 0) {
		return fmt.Errorf("spring: stiffness must be positive and finite, got %g", c.Stiffness)
	}
	if c.Damping < 0 || math.IsNaN(c.Damping) || math.IsInf(c.Damping, 0) {
		return fmt.Errorf("spring: damping must be non-negative and finite, got %g", c.Damping)
	}
	if c.Delay < 0 {
		return fmt.Errorf("spring: delay must be non-negative, got %d", c.Delay)
	}
	switch c.Backend {
	case "", BackendAnalytic, BackendIntegrator:
	default:
		return fmt.Errorf("spring: unknown backend %q (%s, %s)", c.Backend, BackendAnalytic, BackendIntegrator)
	}
	return nil
}

// Strategy produces a progress value from a frame counter. Implementations
// must be pure: identical (frame, fps) always yields the identical value.
type Strategy interface {
	Progress(frame, fps int) float64
}

// Progress evaluates the oscillator at the given frame using the
// configured backend. Frames before Delay return exactly 0, never a
// negative extrapolation.
func (c Config) Progress(frame, fps int) float64 {
	if frame < c.Delay {
		return 0
	}
	if c.Backend == BackendIntegrator {
		return Integrator{Config: c}.Progress(frame, fps)
	}
	t := float64(frame-c.Delay) / float64(fps)
	return c.at(t)
}

// at solves x'' + (c/m)x' + (k/m)(x-1) = 0 with x(0)=0, x'(0)=0 for the
// under-, critically- and over-damped regimes.
func (c Config) at(t float64) float64 {
	w0 := math.Sqrt(c.Stiffness / c.Mass)
	zeta := c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))

	switch {
	case zeta < 1:
		wd := w0 * math.Sqrt(1-zeta*zeta)
		e := math.Exp(-zeta * w0 * t)
		return 1 - e*(math.Cos(wd*t)+zeta*w0/wd*math.Sin(wd*t))
	case zeta == 1:
		return 1 - math.Exp(-w0*t)*(1+w0*t)
	default:
		wd := w0 * math.Sqrt(zeta*zeta-1)
		e := math.Exp(-zeta * w0 * t)
		return 1 - e*(math.Cosh(wd*t)+zeta*w0/wd*math.Sinh(wd*t))
	}
}

// InitialVelocity samples the one-frame progress delta at the delay
// boundary, the smallest offset the frame-quantized timeline can express.
// Dependent mappings extend their input range by this amount so motion does
// not visibly jump on the first animated frame.
func (c Config) InitialVelocity(fps int) float64 {
	return c.Progress(c.Delay+1, fps) - c.Progress(c.Delay, fps)
}

// Integrator is the "integrator" backend, built on harmonica's
// pre-integrated spring. It advances one step per frame from rest, which
// keeps it a pure function of (frame, fps) at the cost of O(frame) work
// per call; callers that evaluate many frames memoize outside the engine
// contract.
type Integrator struct {
	Config Config
}

// Progress integrates the spring from the delay boundary up to frame.
func (ig Integrator) Progress(frame, fps int) float64 {
	c := ig.Config
	if frame < c.Delay {
		return 0
	}
	w0 := math.Sqrt(c.Stiffness / c.Mass)
	zeta := c.Damping / (2 * math.Sqrt(c.Stiffness*c.Mass))
	s := harmonica.NewSpring(harmonica.FPS(fps), w0, zeta)

	var pos, vel float64
	for f := c.Delay; f < frame; f++ {
		pos, vel = s.Update(pos, vel, 1)
	}
	return pos
}

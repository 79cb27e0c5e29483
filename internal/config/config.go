// Package config defines the static storyboard tree a production is
// rendered from. The tree is fixed before rendering begins and validated
// eagerly: an invalid element is never scheduled, rather than rendering a
// corrupted frame.
package config

import (
	"fmt"
	"math"

	"github.com/dpetrovsky/kinoscope/internal/interp"
	"github.com/dpetrovsky/kinoscope/internal/spring"
	"github.com/dpetrovsky/kinoscope/internal/timeline"
)

// Element kinds.
const (
	KindPanel = "panel"
	KindGlass = "glass"
	KindWheel = "wheel"
)

// Storyboard is the full configuration for one production.
type Storyboard struct {
	Version string  `yaml:"version"`
	FPS     int     `yaml:"fps"`
	Scenes  []Scene `yaml:"scenes"`
}

// Scene is one sub-timeline with its own entry and exit springs. Scene
// windows must tile the storyboard's frame range: no overlaps, no gaps, so
// exactly one scene is active at any frame.
type Scene struct {
	ID       string          `yaml:"id"`
	Window   timeline.Window `yaml:"window"`
	Entry    spring.Config   `yaml:"entry"`
	Exit     spring.Config   `yaml:"exit"`
	Elements []Element       `yaml:"elements"`
}

// Element is one animated element inside a scene. Asset is an opaque
// identifier resolved by an external collaborator; the engine never loads
// bytes.
type Element struct {
	ID    string       `yaml:"id"`
	Asset string       `yaml:"asset,omitempty"`
	Kind  string       `yaml:"kind"`
	Panel *PanelParams `yaml:"panel,omitempty"`
	Glass *GlassParams `yaml:"glass,omitempty"`
	Wheel *WheelParams `yaml:"wheel,omitempty"`
}

// PanelParams animates a flat card that rises into place, untilting as it
// lands. Spring delays and drift keyframes are scene-local frames.
type PanelParams struct {
	Spring   spring.Config `yaml:"spring"`
	RiseFrom float64       `yaml:"rise_from"` // Y offset at progress 0
	TiltDeg  float64       `yaml:"tilt_deg"`  // tilt at progress 0, unwinds to 0
	FadeOver float64       `yaml:"fade_over"` // portion of progress spent fading in

	// Drift layers a keyframed X offset on top of the spring motion.
	Drift      []interp.Keyframe `yaml:"drift,omitempty"`
	DriftCurve string            `yaml:"drift_curve,omitempty"` // segment easing name
}

// GlassParams drives the opposing frame/content pair for the
// object-behind-glass depth illusion.
type GlassParams struct {
	MaxTiltDeg  float64 `yaml:"max_tilt_deg"`
	MaxSkewDeg  float64 `yaml:"max_skew_deg"`
	RestScale   float64 `yaml:"rest_scale"`
	Padding     float64 `yaml:"padding"`
	Perspective float64 `yaml:"perspective"`
}

// WheelParams configures a rotating selector wheel. SettleFrames is how
// many frames past the spring delay the spin counts as visibly stopped.
type WheelParams struct {
	Spring       spring.Config `yaml:"spring"`
	TotalItems   int           `yaml:"total_items"`
	Selected     int           `yaml:"selected"`
	Radius       float64       `yaml:"radius"`
	SpinTurns    float64       `yaml:"spin_turns,omitempty"`
	SettleFrames int           `yaml:"settle_frames"`
	Curve        string        `yaml:"curve,omitempty"` // spin deceleration easing name
}

// ValidationError reports an invalid configuration value and where in the
// storyboard it was found.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Invalid wraps err with the storyboard path it was found at.
func Invalid(path string, err error) error {
	return &ValidationError{Path: path, Err: err}
}

func invalidf(path, format string, args ...any) error {
	return Invalid(path, fmt.Errorf(format, args...))
}

// Validate checks the structural invariants of the storyboard. Per-element
// numeric construction (wheel layouts, interpolation mappings) is
// additionally validated when the scene tree is assembled.
func (sb *Storyboard) Validate() error {
	if sb.FPS <= 0 {
		return invalidf("fps", "fps %d must be positive", sb.FPS)
	}
	if len(sb.Scenes) == 0 {
		return invalidf("scenes", "storyboard has no scenes")
	}

	seen := map[string]bool{}
	for i, sc := range sb.Scenes {
		path := fmt.Sprintf("scenes[%d](%s)", i, sc.ID)
		if sc.ID == "" {
			return invalidf(path, "scene id is empty")
		}
		if seen[sc.ID] {
			return invalidf(path, "duplicate scene id %q", sc.ID)
		}
		seen[sc.ID] = true

		if err := sc.Window.Validate(); err != nil {
			return Invalid(path+".window", err)
		}
		if err := sc.Entry.Validate(); err != nil {
			return Invalid(path+".entry", err)
		}
		if err := sc.Exit.Validate(); err != nil {
			return Invalid(path+".exit", err)
		}

		// Scenes tile the timeline: each window starts where the previous
		// one ended, so no frame is left unassigned and none is contested.
		if i > 0 {
			prev := sb.Scenes[i-1].Window
			if sc.Window.Start != prev.End() {
				return invalidf(path+".window",
					"window starts at %d, want %d (end of previous scene)", sc.Window.Start, prev.End())
			}
		} else if sc.Window.Start != 0 {
			return invalidf(path+".window", "first scene must start at frame 0, got %d", sc.Window.Start)
		}

		elemIDs := map[string]bool{}
		for j, el := range sc.Elements {
			epath := fmt.Sprintf("%s.elements[%d](%s)", path, j, el.ID)
			if el.ID == "" {
				return invalidf(epath, "element id is empty")
			}
			if elemIDs[el.ID] {
				return invalidf(epath, "duplicate element id %q", el.ID)
			}
			elemIDs[el.ID] = true
			if err := el.validate(epath); err != nil {
				return err
			}
		}
	}
	return nil
}

func (el *Element) validate(path string) error {
	switch el.Kind {
	case KindPanel:
		if el.Panel == nil {
			return invalidf(path, "panel element has no panel params")
		}
		if err := el.Panel.Spring.Validate(); err != nil {
			return Invalid(path+".panel.spring", err)
		}
		if !isFinite(el.Panel.RiseFrom) || !isFinite(el.Panel.TiltDeg) {
			return invalidf(path+".panel", "rise_from/tilt_deg must be finite")
		}
		if el.Panel.FadeOver < 0 || el.Panel.FadeOver > 1 {
			return invalidf(path+".panel", "fade_over %g must be in [0, 1]", el.Panel.FadeOver)
		}
		for k, kf := range el.Panel.Drift {
			if !isFinite(kf.Value) {
				return invalidf(path+".panel.drift", "keyframe %d value %g is not finite", k, kf.Value)
			}
			if k > 0 && kf.Frame <= el.Panel.Drift[k-1].Frame {
				return invalidf(path+".panel.drift",
					"keyframe %d at frame %d does not advance past frame %d", k, kf.Frame, el.Panel.Drift[k-1].Frame)
			}
		}
	case KindGlass:
		if el.Glass == nil {
			return invalidf(path, "glass element has no glass params")
		}
		if el.Glass.Perspective <= 0 || !isFinite(el.Glass.Perspective) {
			return invalidf(path+".glass", "perspective %g must be positive and finite", el.Glass.Perspective)
		}
	case KindWheel:
		if el.Wheel == nil {
			return invalidf(path, "wheel element has no wheel params")
		}
		if err := el.Wheel.Spring.Validate(); err != nil {
			return Invalid(path+".wheel.spring", err)
		}
		if el.Wheel.SettleFrames < 0 {
			return invalidf(path+".wheel", "settle_frames %d is negative", el.Wheel.SettleFrames)
		}
	default:
		return invalidf(path, "unknown element kind %q", el.Kind)
	}
	return nil
}

// TotalFrames returns the first frame past the last scene window.
func (sb *Storyboard) TotalFrames() int {
	if len(sb.Scenes) == 0 {
		return 0
	}
	return sb.Scenes[len(sb.Scenes)-1].Window.End()
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Package storyboard generates storyboard templates: scene windows laid
// out over a total frame count, populated with a standard set of elements
// ready for hand-tuning.
package storyboard

import (
	"fmt"

	"github.com/dpetrovsky/kinoscope/internal/config"
	"github.com/dpetrovsky/kinoscope/internal/interp"
	"github.com/dpetrovsky/kinoscope/internal/spring"
	"github.com/dpetrovsky/kinoscope/internal/timeline"
)

// Planner distributes scene windows across a production.
type Planner struct {
	MinSceneFrames int // floor for any single scene
}

// NewPlanner returns a planner with the default scene floor of one second
// at the given fps.
func NewPlanner(fps int) *Planner {
	return &Planner{MinSceneFrames: fps}
}

// Plan tiles totalFrames into len(weights) contiguous windows sized
// proportionally to their weights. The windows tile exactly: the first
// starts at 0, each starts where the previous ended, and the last ends at
// totalFrames.
func (p *Planner) Plan(weights []float64, totalFrames int) ([]timeline.Window, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("storyboard: no scenes to plan")
	}
	if totalFrames < p.MinSceneFrames*len(weights) {
		return nil, fmt.Errorf("storyboard: %d frames cannot hold %d scenes of at least %d frames",
			totalFrames, len(weights), p.MinSceneFrames)
	}

	var sum float64
	for i, w := range weights {
		if w <= 0 {
			return nil, fmt.Errorf("storyboard: weight %d is %g, must be positive", i, w)
		}
		sum += w
	}

	windows := make([]timeline.Window, len(weights))
	start := 0
	for i, w := range weights {
		dur := int(float64(totalFrames) * w / sum)
		if dur < p.MinSceneFrames {
			dur = p.MinSceneFrames
		}
		windows[i] = timeline.Window{Start: start, Duration: dur}
		start += dur
	}

	// Absorb rounding drift into the last scene so the plan ends exactly at
	// totalFrames.
	last := &windows[len(windows)-1]
	last.Duration += totalFrames - (last.Start + last.Duration)
	if last.Duration < p.MinSceneFrames {
		return nil, fmt.Errorf("storyboard: rounding left the last scene %d frames, need %d",
			last.Duration, p.MinSceneFrames)
	}
	return windows, nil
}

// Template builds the standard demo production: a title panel, a wheel
// selector with a glass card, and an outro panel, laid out over
// totalFrames. The result validates cleanly and is meant to be written out
// and edited.
func Template(totalFrames, fps int) (*config.Storyboard, error) {
	planner := NewPlanner(fps)
	windows, err := planner.Plan([]float64{1, 2, 1}, totalFrames)
	if err != nil {
		return nil, err
	}

	soft := spring.Config{Mass: 1, Damping: 20, Stiffness: 100}
	heavy := spring.Config{Mass: 1, Damping: 26, Stiffness: 100, Backend: spring.BackendIntegrator}

	exitFor := func(w timeline.Window) spring.Config {
		c := soft
		// Leave about half a second for the exit leg.
		c.Delay = w.Duration - fps/2
		if c.Delay < 0 {
			c.Delay = 0
		}
		return c
	}

	sb := &config.Storyboard{
		Version: "1.0",
		FPS:     fps,
		Scenes: []config.Scene{
			{
				ID:     "intro",
				Window: windows[0],
				Entry:  soft,
				Exit:   exitFor(windows[0]),
				Elements: []config.Element{
					{
						ID:    "title",
						Asset: "title-card",
						Kind:  config.KindPanel,
						Panel: &config.PanelParams{
							Spring:   spring.Config{Mass: 1, Damping: 20, Stiffness: 100, Delay: fps / 6},
							RiseFrom: 120,
							TiltDeg:  8,
							FadeOver: 0.6,
							Drift: []interp.Keyframe{
								{Frame: 0, Value: 0},
								{Frame: windows[0].Duration / 3, Value: 18},
								{Frame: 2 * windows[0].Duration / 3, Value: -12},
								{Frame: windows[0].Duration - 1, Value: 0},
							},
							DriftCurve: "in-out-sine",
						},
					},
				},
			},
			{
				ID:     "picker",
				Window: windows[1],
				Entry:  soft,
				Exit:   exitFor(windows[1]),
				Elements: []config.Element{
					{
						ID:   "numbers",
						Kind: config.KindWheel,
						Wheel: &config.WheelParams{
							Spring:       spring.Config{Mass: 1, Damping: 26, Stiffness: 100, Delay: fps / 3},
							TotalItems:   7,
							Selected:     3,
							Radius:       130,
							SettleFrames: fps + fps/2,
							Curve:        "out-quint",
						},
					},
					{
						ID:    "card",
						Asset: "card-face",
						Kind:  config.KindGlass,
						Glass: &config.GlassParams{
							MaxTiltDeg:  30,
							MaxSkewDeg:  5,
							RestScale:   0.6,
							Padding:     1.1,
							Perspective: 800,
						},
					},
				},
			},
			{
				ID:     "outro",
				Window: windows[2],
				Entry:  heavy,
				Exit:   exitFor(windows[2]),
				Elements: []config.Element{
					{
						ID:    "endcard",
						Asset: "end-card",
						Kind:  config.KindPanel,
						Panel: &config.PanelParams{
							Spring:   heavy,
							RiseFrom: -90,
							TiltDeg:  -5,
							FadeOver: 0.5,
						},
					},
				},
			},
		},
	}

	if err := sb.Validate(); err != nil {
		return nil, fmt.Errorf("storyboard: template does not validate: %w", err)
	}
	return sb, nil
}

package scene

import (
	"fmt"
	"math"

	"github.com/dpetrovsky/kinoscope/internal/config"
	"github.com/dpetrovsky/kinoscope/internal/easing"
	"github.com/dpetrovsky/kinoscope/internal/interp"
	"github.com/dpetrovsky/kinoscope/internal/spring"
	"github.com/dpetrovsky/kinoscope/internal/timeline"
	"github.com/dpetrovsky/kinoscope/internal/transform"
	"github.com/dpetrovsky/kinoscope/internal/wheel"
)

func buildElement(ec config.Element, fps int) (element, error) {
	switch ec.Kind {
	case config.KindPanel:
		return newPanel(ec, fps)
	case config.KindGlass:
		return newGlass(ec)
	case config.KindWheel:
		return newWheel(ec)
	}
	return nil, fmt.Errorf("unknown element kind %q", ec.Kind)
}

// panel rises into place along Y while untilting, with a counter-rotated
// label child that stays upright throughout. An optional keyframe track
// layers an X drift on top of the spring motion.
type panel struct {
	id    string
	asset string
	spr   spring.Config
	rise  interp.Mapping
	tilt  float64 // radians at progress 0
	fade  interp.Mapping
	drift *interp.Track // nil when the panel has no drift keyframes
}

func newPanel(ec config.Element, fps int) (*panel, error) {
	pc := ec.Panel

	// Extend the input range below zero by the spring's initial velocity so
	// the panel does not visibly jump on its first animated frame.
	v0 := pc.Spring.InitialVelocity(fps)
	rise, err := interp.NewMapping(
		[2]float64{-v0, 1},
		[2]float64{pc.RiseFrom, 0},
		interp.Clamp, interp.Clamp,
	)
	if err != nil {
		return nil, fmt.Errorf("rise mapping: %w", err)
	}

	fadeOver := pc.FadeOver
	if fadeOver == 0 {
		fadeOver = 1
	}
	fade, err := interp.NewMapping(
		[2]float64{0, fadeOver},
		[2]float64{0, 1},
		interp.Clamp, interp.Clamp,
	)
	if err != nil {
		return nil, fmt.Errorf("fade mapping: %w", err)
	}

	curve, err := easing.ByName(pc.DriftCurve)
	if err != nil {
		return nil, fmt.Errorf("drift curve: %w", err)
	}
	var drift *interp.Track
	if len(pc.Drift) > 0 {
		drift, err = interp.NewTrack(pc.Drift, curve)
		if err != nil {
			return nil, fmt.Errorf("drift track: %w", err)
		}
	}

	return &panel{
		id:    ec.ID,
		asset: ec.Asset,
		spr:   pc.Spring,
		rise:  rise,
		tilt:  pc.TiltDeg * math.Pi / 180,
		fade:  fade,
		drift: drift,
	}, nil
}

func (p *panel) evaluate(local, fps int, tv float64) ElementState {
	prog := p.spr.Progress(local, fps)

	var driftX float64
	if p.drift != nil {
		driftX = p.drift.At(local)
	}

	ops := transform.Stack{
		transform.Translate3{X: driftX, Y: p.rise.Map(prog)},
		transform.RotateZ{Radians: p.tilt * (1 - prog)},
	}

	return ElementState{
		ID:      p.id,
		AssetID: p.asset,
		Ops:     ops,
		Opacity: p.fade.Map(prog) * visible(tv),
		Children: []ElementState{
			{
				ID:      p.id + ".label",
				Ops:     transform.CounterRotate(ops),
				Opacity: 1,
			},
		},
	}
}

func (p *panel) cues(window timeline.Window) []timeline.Cue {
	return []timeline.Cue{
		{Frame: window.Start + p.spr.Delay, ID: p.id + ".enter"},
	}
}

// glass is the object-behind-glass pair: a frame layer and a content layer
// receiving opposing transforms from the scene's transition value.
type glass struct {
	id    string
	asset string
	opp   transform.OpposingConfig
	persp transform.Perspective
}

func newGlass(ec config.Element) (*glass, error) {
	gc := ec.Glass
	opp := transform.OpposingConfig{
		MaxTilt:   gc.MaxTiltDeg * math.Pi / 180,
		MaxSkew:   gc.MaxSkewDeg * math.Pi / 180,
		RestScale: gc.RestScale,
		Padding:   gc.Padding,
	}
	if err := opp.Validate(); err != nil {
		return nil, err
	}
	persp := transform.Perspective{Distance: gc.Perspective}
	if err := persp.Validate(); err != nil {
		return nil, err
	}
	return &glass{id: ec.ID, asset: ec.Asset, opp: opp, persp: persp}, nil
}

func (g *glass) evaluate(local, fps int, tv float64) ElementState {
	prog := visible(tv)
	frameOps, contentOps := g.opp.Opposing(prog)

	return ElementState{
		ID:      g.id,
		Opacity: prog,
		Children: []ElementState{
			{
				ID:      g.id + ".frame",
				Ops:     append(transform.Stack{g.persp}, frameOps...),
				Opacity: 1,
			},
			{
				ID:      g.id + ".content",
				AssetID: g.asset,
				Ops:     append(transform.Stack{g.persp}, contentOps...),
				Opacity: 1,
			},
		},
	}
}

func (g *glass) cues(timeline.Window) []timeline.Cue { return nil }

// wheelElement spins a selector wheel with its own spring and reports the
// settle moment as an audio cue.
type wheelElement struct {
	id           string
	asset        string
	spr          spring.Config
	layout       *wheel.Layout
	settleFrames int
}

func newWheel(ec config.Element) (*wheelElement, error) {
	wc := ec.Wheel
	layout, err := wheel.NewLayout(wc.TotalItems, wc.Selected, wc.Radius)
	if err != nil {
		return nil, err
	}
	if wc.SpinTurns > 0 {
		layout.SpinTurns = wc.SpinTurns
	}
	curve, err := easing.ByName(wc.Curve)
	if err != nil {
		return nil, fmt.Errorf("spin curve: %w", err)
	}
	if curve != nil {
		layout.Curve = curve
	}
	return &wheelElement{
		id:           ec.ID,
		asset:        ec.Asset,
		spr:          wc.Spring,
		layout:       layout,
		settleFrames: wc.SettleFrames,
	}, nil
}

func (w *wheelElement) evaluate(local, fps int, tv float64) ElementState {
	prog := w.spr.Progress(local, fps)
	settled := local >= w.spr.Delay+w.settleFrames

	items := w.layout.Items(prog, settled)
	children := make([]ElementState, 0, len(items))
	for _, it := range items {
		children = append(children, ElementState{
			ID:      fmt.Sprintf("%s.item%d", w.id, it.Index),
			Ops:     it.Ops(),
			Opacity: it.Opacity,
			Children: []ElementState{
				{
					ID:      fmt.Sprintf("%s.item%d.label", w.id, it.Index),
					Ops:     it.LabelOps(),
					Opacity: 1,
				},
			},
		})
	}

	return ElementState{
		ID:       w.id,
		AssetID:  w.asset,
		Opacity:  visible(tv),
		Children: children,
	}
}

func (w *wheelElement) cues(window timeline.Window) []timeline.Cue {
	return []timeline.Cue{
		{Frame: window.Start + w.spr.Delay + w.settleFrames, ID: w.id + ".settle"},
	}
}

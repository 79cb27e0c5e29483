// Package scene assembles a storyboard into an evaluatable production.
// Everything here is a pure function of (frame, fps, configuration): frames
// may be computed out of order, in parallel, or repeatedly, and always
// yield identical output.
package scene

import (
	"fmt"
	"sort"

	"github.com/dpetrovsky/kinoscope/internal/config"
	"github.com/dpetrovsky/kinoscope/internal/easing"
	"github.com/dpetrovsky/kinoscope/internal/spring"
	"github.com/dpetrovsky/kinoscope/internal/timeline"
	"github.com/dpetrovsky/kinoscope/internal/transform"
)

// ElementState is the engine's output for one element at one frame,
// consumed by an external rendering surface.
type ElementState struct {
	ID       string
	AssetID  string
	Ops      transform.Stack
	Opacity  float64
	Children []ElementState
}

// FrameState is the full visual state at one frame.
type FrameState struct {
	Frame      int
	SceneID    string
	Transition float64
	Elements   []ElementState
}

// element evaluates one animated element at a scene-local frame.
type element interface {
	// evaluate must be pure; tv is the scene's transition value.
	evaluate(local, fps int, tv float64) ElementState
	// cues reports the element's audio cue frames on the parent timeline.
	cues(window timeline.Window) []timeline.Cue
}

type sceneState struct {
	id       string
	window   timeline.Window
	entry    spring.Config
	exit     spring.Config
	elements []element
}

// transition blends the entry and exit springs at a scene-local frame.
func (s *sceneState) transition(local, fps int) float64 {
	return TransitionValue(local, fps, s.entry, s.exit)
}

// TransitionValue blends two one-directional springs into the
// appear/hold/disappear shape: it traces 0→1 during entry, holds near 1,
// then traces 1→0 during exit.
func TransitionValue(frame, fps int, entry, exit spring.Config) float64 {
	return entry.Progress(frame, fps) - exit.Progress(frame, fps)
}

// Phase is the lifecycle of a transitioning element. It is derived from
// the frame alone, never from history.
type Phase int

const (
	PhaseHidden Phase = iota
	PhaseEntering
	PhaseVisible
	PhaseExiting
)

func (p Phase) String() string {
	switch p {
	case PhaseHidden:
		return "hidden"
	case PhaseEntering:
		return "entering"
	case PhaseVisible:
		return "visible"
	case PhaseExiting:
		return "exiting"
	}
	return "unknown"
}

// settleEpsilon is how close a transition value must be to its target to
// count as settled.
const settleEpsilon = 0.01

// PhaseOf classifies the transition at a frame: Hidden → Entering →
// Visible → Exiting → Hidden.
func PhaseOf(frame, fps int, entry, exit spring.Config) Phase {
	if frame < entry.Delay {
		return PhaseHidden
	}
	tv := TransitionValue(frame, fps, entry, exit)
	if frame >= exit.Delay {
		if tv <= settleEpsilon {
			return PhaseHidden
		}
		return PhaseExiting
	}
	if tv >= 1-settleEpsilon {
		return PhaseVisible
	}
	return PhaseEntering
}

// Production is an assembled, validated storyboard ready for evaluation.
type Production struct {
	fps    int
	scenes []sceneState
	cues   *timeline.CueSheet
}

// NewProduction assembles the scene tree, constructing and validating
// every element up front. A storyboard that fails here is never scheduled.
func NewProduction(sb *config.Storyboard) (*Production, error) {
	if err := sb.Validate(); err != nil {
		return nil, err
	}

	p := &Production{fps: sb.FPS}
	var cues []timeline.Cue

	for i, sc := range sb.Scenes {
		st := sceneState{
			id:     sc.ID,
			window: sc.Window,
			entry:  sc.Entry,
			exit:   sc.Exit,
		}
		cues = append(cues,
			timeline.Cue{Frame: sc.Window.Start + sc.Entry.Delay, ID: sc.ID + ".enter"},
			timeline.Cue{Frame: sc.Window.Start + sc.Exit.Delay, ID: sc.ID + ".exit"},
		)

		for j, ec := range sc.Elements {
			path := fmt.Sprintf("scenes[%d](%s).elements[%d](%s)", i, sc.ID, j, ec.ID)
			el, err := buildElement(ec, sb.FPS)
			if err != nil {
				return nil, config.Invalid(path, err)
			}
			st.elements = append(st.elements, el)
			cues = append(cues, el.cues(sc.Window)...)
		}
		p.scenes = append(p.scenes, st)
	}

	p.cues = timeline.NewCueSheet(cues)
	return p, nil
}

// FPS returns the production's frame rate.
func (p *Production) FPS() int { return p.fps }

// TotalFrames returns the first frame past the last scene window.
func (p *Production) TotalFrames() int {
	return p.scenes[len(p.scenes)-1].window.End()
}

// Cues returns the derived audio cue sheet for the external mixer.
func (p *Production) Cues() *timeline.CueSheet { return p.cues }

// ActiveScene reports which scene's window contains the frame. Windows
// tile the timeline, so at most one scene matches.
func (p *Production) ActiveScene(frame int) (string, bool) {
	idx := p.activeIndex(frame)
	if idx < 0 {
		return "", false
	}
	return p.scenes[idx].id, true
}

// activeIndex binary-searches the sorted, contiguous windows.
func (p *Production) activeIndex(frame int) int {
	i := sort.Search(len(p.scenes), func(i int) bool { return p.scenes[i].window.Start > frame })
	if i == 0 {
		return -1
	}
	if !p.scenes[i-1].window.Contains(frame) {
		return -1
	}
	return i - 1
}

// Evaluate computes the full visual state at a global frame. ok is false
// when no scene window contains the frame: everything is unmounted and
// nothing may be rendered or triggered.
func (p *Production) Evaluate(frame int) (FrameState, bool) {
	idx := p.activeIndex(frame)
	if idx < 0 {
		return FrameState{}, false
	}
	sc := &p.scenes[idx]

	local, ok := sc.window.LocalFrame(frame)
	if !ok {
		return FrameState{}, false
	}

	tv := sc.transition(local, p.fps)
	st := FrameState{
		Frame:      frame,
		SceneID:    sc.id,
		Transition: tv,
		Elements:   make([]ElementState, 0, len(sc.elements)),
	}
	for _, el := range sc.elements {
		st.Elements = append(st.Elements, el.evaluate(local, p.fps, tv))
	}
	return st, true
}

// visible clamps a transition value into a legal opacity.
func visible(tv float64) float64 {
	return easing.Clamp01(tv)
}

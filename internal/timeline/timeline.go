package timeline

import "fmt"

// Window is the frame range in which a sub-timeline is active:
// [Start, Start+Duration). While a window is inactive its content is
// unmounted — nothing inside it is evaluated, rendered, or allowed to
// trigger cues, and no state survives across mounts.
type Window struct {
	Start    int `yaml:"start"`
	Duration int `yaml:"duration"`
}

// Validate rejects degenerate windows at configuration time.
func (w Window) Validate() error {
	if w.Start < 0 {
		return fmt.Errorf("timeline: window start %d is negative", w.Start)
	}
	if w.Duration <= 0 {
		return fmt.Errorf("timeline: window duration %d must be positive", w.Duration)
	}
	return nil
}

// End returns the first frame at which the window is no longer active.
func (w Window) End() int {
	return w.Start + w.Duration
}

// Contains reports whether the window is active at the given frame.
func (w Window) Contains(frame int) bool {
	return frame >= w.Start && frame < w.End()
}

// LocalFrame converts a parent frame into the window's own frame counter,
// so nested content gets its own frame 0 without knowing its absolute
// position. ok is false when the window is unmounted at that frame.
func (w Window) LocalFrame(frame int) (int, bool) {
	if !w.Contains(frame) {
		return 0, false
	}
	return frame - w.Start, true
}

// Shift nests a child window inside this one, producing the equivalent
// window on the parent's timeline. Shifting is associative: nesting N
// windows equals one window with the cumulative offset.
func (w Window) Shift(child Window) Window {
	return Window{Start: w.Start + child.Start, Duration: child.Duration}
}

package interp

import (
	"fmt"
	"sort"

	"github.com/dpetrovsky/kinoscope/internal/easing"
)

// Keyframe pins a value at a frame.
type Keyframe struct {
	Frame int     `yaml:"frame"`
	Value float64 `yaml:"value"`
}

// Track interpolates between keyframes, reshaping each segment with an
// easing curve. The keyframe list is static once constructed, so segment
// lookup is a binary search rather than a per-frame scan.
type Track struct {
	keys  []Keyframe
	curve easing.Curve
}

// NewTrack builds a track from keyframes with strictly increasing frames.
// A nil curve means linear segments.
func NewTrack(keys []Keyframe, curve easing.Curve) (*Track, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("interp: track needs at least one keyframe")
	}
	for i := 1; i < len(keys); i++ {
		if keys[i].Frame <= keys[i-1].Frame {
			return nil, fmt.Errorf("interp: keyframe %d at frame %d does not advance past frame %d",
				i, keys[i].Frame, keys[i-1].Frame)
		}
	}
	cp := make([]Keyframe, len(keys))
	copy(cp, keys)
	return &Track{keys: cp, curve: curve}, nil
}

// At returns the track value at the given frame. Frames outside the
// keyframe span hold the boundary value.
func (tr *Track) At(frame int) float64 {
	k := tr.keys
	if frame <= k[0].Frame {
		return k[0].Value
	}
	if frame >= k[len(k)-1].Frame {
		return k[len(k)-1].Value
	}

	// First keyframe strictly after frame; the segment is [i-1, i].
	i := sort.Search(len(k), func(i int) bool { return k[i].Frame > frame })
	a, b := k[i-1], k[i]

	t := float64(frame-a.Frame) / float64(b.Frame-a.Frame)
	if tr.curve != nil {
		t = tr.curve(t)
	}
	return Lerp(a.Value, b.Value, t)
}

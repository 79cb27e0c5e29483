package timeline

import "sort"

// Cue marks a frame at which an external collaborator (typically the audio
// mixer) should fire a sound. The engine only derives cue frames from its
// deterministic timelines; it never plays anything.
type Cue struct {
	Frame int    `yaml:"frame"`
	ID    string `yaml:"id"`
}

// CueSheet is a frame-ordered set of cues. The sheet is static once built,
// so lookups are binary searches rather than per-frame scans.
type CueSheet struct {
	cues []Cue
}

// NewCueSheet copies and sorts the cues by frame. Cues sharing a frame keep
// their given order.
func NewCueSheet(cues []Cue) *CueSheet {
	cp := make([]Cue, len(cues))
	copy(cp, cues)
	sort.SliceStable(cp, func(i, j int) bool { return cp[i].Frame < cp[j].Frame })
	return &CueSheet{cues: cp}
}

// Cues returns the sorted cues.
func (s *CueSheet) Cues() []Cue {
	out := make([]Cue, len(s.cues))
	copy(out, s.cues)
	return out
}

// LatestAt returns the most recent cue at or before the given frame.
func (s *CueSheet) LatestAt(frame int) (Cue, bool) {
	i := sort.Search(len(s.cues), func(i int) bool { return s.cues[i].Frame > frame })
	if i == 0 {
		return Cue{}, false
	}
	return s.cues[i-1], true
}

// FiresAt returns every cue scheduled exactly at the given frame.
func (s *CueSheet) FiresAt(frame int) []Cue {
	lo := sort.Search(len(s.cues), func(i int) bool { return s.cues[i].Frame >= frame })
	hi := sort.Search(len(s.cues), func(i int) bool { return s.cues[i].Frame > frame })
	if lo == hi {
		return nil
	}
	out := make([]Cue, hi-lo)
	copy(out, s.cues[lo:hi])
	return out
}

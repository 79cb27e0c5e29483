package timeline

import "testing"

func TestWindowBoundaries(t *testing.T) {
	w := Window{Start: 30, Duration: 16}

	tests := []struct {
		frame int
		local int
		ok    bool
	}{
		{29, 0, false},
		{30, 0, true},
		{45, 15, true},
		{46, 0, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		local, ok := w.LocalFrame(tt.frame)
		if local != tt.local || ok != tt.ok {
			t.Errorf("LocalFrame(%d) = (%d, %v), want (%d, %v)", tt.frame, local, ok, tt.local, tt.ok)
		}
	}
}

func TestShiftAssociativity(t *testing.T) {
	a := Window{Start: 10, Duration: 200}
	b := Window{Start: 25, Duration: 100}
	c := Window{Start: 5, Duration: 40}

	nested := a.Shift(b).Shift(c)
	flat := Window{Start: 10 + 25 + 5, Duration: 40}
	if nested != flat {
		t.Fatalf("nested shift %+v != cumulative %+v", nested, flat)
	}

	for _, frame := range []int{39, 40, 55, 79, 80} {
		nl, nok := nested.LocalFrame(frame)
		fl, fok := flat.LocalFrame(frame)
		if nl != fl || nok != fok {
			t.Errorf("frame %d: nested (%d,%v) != flat (%d,%v)", frame, nl, nok, fl, fok)
		}
	}
}

func TestWindowValidate(t *testing.T) {
	bad := []Window{
		{Start: 0, Duration: 0},
		{Start: 0, Duration: -5},
		{Start: -1, Duration: 10},
	}
	for _, w := range bad {
		if err := w.Validate(); err == nil {
			t.Errorf("Validate() accepted %+v", w)
		}
	}
	if err := (Window{Start: 0, Duration: 1}).Validate(); err != nil {
		t.Errorf("Validate() rejected a valid window: %v", err)
	}
}

func TestCueSheetLookups(t *testing.T) {
	sheet := NewCueSheet([]Cue{
		{Frame: 90, ID: "wheel.settle"},
		{Frame: 10, ID: "panel.enter"},
		{Frame: 45, ID: "glass.flip"},
		{Frame: 45, ID: "glass.chime"},
	})

	if _, ok := sheet.LatestAt(9); ok {
		t.Error("LatestAt(9) found a cue before any exists")
	}
	if cue, ok := sheet.LatestAt(10); !ok || cue.ID != "panel.enter" {
		t.Errorf("LatestAt(10) = (%+v, %v)", cue, ok)
	}
	if cue, ok := sheet.LatestAt(89); !ok || cue.ID != "glass.chime" {
		t.Errorf("LatestAt(89) = (%+v, %v), want the last frame-45 cue", cue, ok)
	}
	if cue, ok := sheet.LatestAt(1000); !ok || cue.ID != "wheel.settle" {
		t.Errorf("LatestAt(1000) = (%+v, %v)", cue, ok)
	}

	fires := sheet.FiresAt(45)
	if len(fires) != 2 || fires[0].ID != "glass.flip" || fires[1].ID != "glass.chime" {
		t.Errorf("FiresAt(45) = %+v", fires)
	}
	if fires := sheet.FiresAt(44); fires != nil {
		t.Errorf("FiresAt(44) = %+v, want none", fires)
	}
}

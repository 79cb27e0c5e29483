package interp

import (
	"testing"

	"github.com/dpetrovsky/kinoscope/internal/easing"
)

func TestInterpolateClamping(t *testing.T) {
	tests := []struct {
		x    float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{5, 0.5},
		{10, 1},
		{15, 1},
	}
	for _, tt := range tests {
		got := Interpolate(tt.x, [2]float64{0, 10}, [2]float64{0, 1})
		if abs(got-tt.want) > 1e-9 {
			t.Errorf("Interpolate(%g) = %g, want %g", tt.x, got, tt.want)
		}
	}
}

func TestMappingExtendPolicy(t *testing.T) {
	m, err := NewMapping([2]float64{0, 10}, [2]float64{0, 1}, Clamp, Extend)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Map(-5); got != 0 {
		t.Errorf("clamped left: Map(-5) = %g, want 0", got)
	}
	if got := m.Map(15); abs(got-1.5) > 1e-9 {
		t.Errorf("extended right: Map(15) = %g, want 1.5", got)
	}
}

func TestMappingDescendingOutput(t *testing.T) {
	m, err := NewMapping([2]float64{0, 1}, [2]float64{100, 0}, Clamp, Clamp)
	if err != nil {
		t.Fatal(err)
	}
	if got := m.Map(0.25); abs(got-75) > 1e-9 {
		t.Errorf("Map(0.25) = %g, want 75", got)
	}
}

func TestNewMappingRejectsZeroWidth(t *testing.T) {
	if _, err := NewMapping([2]float64{3, 3}, [2]float64{0, 1}, Clamp, Clamp); err == nil {
		t.Error("zero-width input range accepted")
	}
}

func TestInterpolateZeroWidthBoundary(t *testing.T) {
	if got := Interpolate(2, [2]float64{5, 5}, [2]float64{10, 20}); got != 10 {
		t.Errorf("before zero-width range: got %g, want 10", got)
	}
	if got := Interpolate(7, [2]float64{5, 5}, [2]float64{10, 20}); got != 20 {
		t.Errorf("past zero-width range: got %g, want 20", got)
	}
}

func TestTrackSegments(t *testing.T) {
	tr, err := NewTrack([]Keyframe{
		{Frame: 0, Value: 0},
		{Frame: 60, Value: 1.5},
		{Frame: 120, Value: 2.0},
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		frame int
		want  float64
	}{
		{-10, 0},
		{0, 0},
		{30, 0.75},
		{60, 1.5},
		{90, 1.75},
		{120, 2.0},
		{500, 2.0},
	}
	for _, tt := range tests {
		if got := tr.At(tt.frame); abs(got-tt.want) > 1e-9 {
			t.Errorf("At(%d) = %g, want %g", tt.frame, got, tt.want)
		}
	}
}

func TestTrackEasedSegment(t *testing.T) {
	tr, err := NewTrack([]Keyframe{
		{Frame: 0, Value: 0},
		{Frame: 100, Value: 1},
	}, easing.OutCubic)
	if err != nil {
		t.Fatal(err)
	}
	// Decelerating curve runs ahead of linear mid-segment.
	if got := tr.At(50); got <= 0.5 {
		t.Errorf("eased At(50) = %g, want > 0.5", got)
	}
	if got := tr.At(100); abs(got-1) > 1e-9 {
		t.Errorf("eased At(100) = %g, want 1", got)
	}
}

func TestTrackRejectsBadKeyframes(t *testing.T) {
	if _, err := NewTrack(nil, nil); err == nil {
		t.Error("empty keyframe list accepted")
	}
	if _, err := NewTrack([]Keyframe{{Frame: 10}, {Frame: 10}}, nil); err == nil {
		t.Error("non-advancing keyframes accepted")
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

package easing

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCurveEndpoints(t *testing.T) {
	curves := map[string]Curve{
		"Linear":     Linear,
		"InQuad":     InQuad,
		"OutQuad":    OutQuad,
		"InCubic":    InCubic,
		"OutCubic":   OutCubic,
		"InOutCubic": InOutCubic,
		"OutQuint":   OutQuint,
		"OutBack":    OutBack,
	}

	for name, c := range curves {
		if v := c(0); abs(v) > 1e-9 {
			t.Errorf("%s(0) = %g, want 0", name, v)
		}
		if v := c(1); abs(v-1) > 1e-9 {
			t.Errorf("%s(1) = %g, want 1", name, v)
		}
	}
}

func TestOutCubicDecelerates(t *testing.T) {
	// Step deltas must shrink as t grows: fast start, slow settle.
	prev := OutCubic(0.1) - OutCubic(0.0)
	for x := 0.1; x < 0.95; x += 0.1 {
		d := OutCubic(x+0.1) - OutCubic(x)
		if d > prev+1e-9 {
			t.Fatalf("OutCubic accelerating at t=%.1f: delta %g > %g", x, d, prev)
		}
		prev = d
	}
}

func TestOutBackOvershoots(t *testing.T) {
	over := false
	for x := 0.0; x <= 1.0; x += 0.01 {
		if OutBack(x) > 1 {
			over = true
			break
		}
	}
	if !over {
		t.Error("OutBack never exceeds 1")
	}
}

func TestFromTween(t *testing.T) {
	c := FromTween(ease.OutCubic)
	for x := 0.0; x <= 1.0; x += 0.125 {
		got := c(x)
		want := OutCubic(x)
		// float32 precision inside gween
		if abs(got-want) > 1e-4 {
			t.Errorf("FromTween(ease.OutCubic)(%g) = %g, want ~%g", x, got, want)
		}
	}
}

func TestByName(t *testing.T) {
	for _, name := range []string{
		"linear", "out-cubic", "out-back",
		"in-out-quad", "in-out-sine", "out-bounce", "out-elastic",
	} {
		c, err := ByName(name)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		if c == nil {
			t.Fatalf("ByName(%q) returned nil curve", name)
		}
	}

	c, err := ByName("")
	if err != nil || c != nil {
		t.Errorf("ByName(\"\") = (%v, %v), want (nil, nil)", c, err)
	}
	if _, err := ByName("warp"); err == nil {
		t.Error("unknown curve name accepted")
	}
}

func TestByNameGweenEndpoints(t *testing.T) {
	// Curves backed by the gween library still start at 0 and end at 1.
	for _, name := range []string{"in-out-quad", "in-out-sine", "out-bounce", "out-elastic"} {
		c, err := ByName(name)
		if err != nil {
			t.Fatal(err)
		}
		if v := c(0); abs(v) > 1e-3 {
			t.Errorf("%s(0) = %g, want ~0", name, v)
		}
		if v := c(1); abs(v-1) > 1e-3 {
			t.Errorf("%s(1) = %g, want ~1", name, v)
		}
	}
}

func TestClamp01(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.5, 0.5}, {1, 1}, {2, 1},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

package storyboard

import (
	"math"
	"testing"

	"github.com/dpetrovsky/kinoscope/internal/scene"
	"github.com/dpetrovsky/kinoscope/internal/spring"
	"github.com/dpetrovsky/kinoscope/internal/transform"
)

func TestPlanTilesExactly(t *testing.T) {
	p := NewPlanner(30)
	windows, err := p.Plan([]float64{1, 2, 1}, 600)
	if err != nil {
		t.Fatal(err)
	}
	if len(windows) != 3 {
		t.Fatalf("planned %d windows, want 3", len(windows))
	}
	if windows[0].Start != 0 {
		t.Errorf("first window starts at %d", windows[0].Start)
	}
	for i := 1; i < len(windows); i++ {
		if windows[i].Start != windows[i-1].End() {
			t.Errorf("window %d starts at %d, previous ends at %d", i, windows[i].Start, windows[i-1].End())
		}
	}
	if got := windows[len(windows)-1].End(); got != 600 {
		t.Errorf("plan ends at %d, want 600", got)
	}
	// Weight 2 gets roughly twice the frames of weight 1.
	if windows[1].Duration < windows[0].Duration*3/2 {
		t.Errorf("weighted window %d frames vs %d", windows[1].Duration, windows[0].Duration)
	}
}

func TestPlanRejections(t *testing.T) {
	p := NewPlanner(30)
	if _, err := p.Plan(nil, 600); err == nil {
		t.Error("empty plan accepted")
	}
	if _, err := p.Plan([]float64{1, 0}, 600); err == nil {
		t.Error("zero weight accepted")
	}
	if _, err := p.Plan([]float64{1, 1, 1}, 60); err == nil {
		t.Error("plan shorter than scene floors accepted")
	}
}

func TestTemplateValidates(t *testing.T) {
	sb, err := Template(600, 30)
	if err != nil {
		t.Fatal(err)
	}
	if err := sb.Validate(); err != nil {
		t.Fatalf("template storyboard invalid: %v", err)
	}
	if sb.TotalFrames() != 600 {
		t.Errorf("template spans %d frames, want 600", sb.TotalFrames())
	}
	if len(sb.Scenes) != 3 {
		t.Errorf("template has %d scenes, want 3", len(sb.Scenes))
	}
}

func TestTemplateTooShort(t *testing.T) {
	if _, err := Template(45, 30); err == nil {
		t.Error("Template accepted a span too short for its scenes")
	}
}

func TestTemplateAssemblesWithMotionExtras(t *testing.T) {
	sb, err := Template(600, 30)
	if err != nil {
		t.Fatal(err)
	}

	// The template leans on the optional machinery: a drift track on the
	// title, a named spin curve on the wheel, and the integrator spring
	// backend on the outro.
	if len(sb.Scenes[0].Elements[0].Panel.Drift) == 0 {
		t.Error("template title has no drift keyframes")
	}
	if sb.Scenes[1].Elements[0].Wheel.Curve == "" {
		t.Error("template wheel has no named spin curve")
	}
	if sb.Scenes[2].Entry.Backend != spring.BackendIntegrator {
		t.Error("template outro entry does not use the integrator backend")
	}

	p, err := scene.NewProduction(sb)
	if err != nil {
		t.Fatalf("template does not assemble: %v", err)
	}

	// Drift keyframe {50, 18} lands exactly on the sampled frame.
	st, ok := p.Evaluate(50)
	if !ok {
		t.Fatal("frame 50 unmounted")
	}
	tr, ok := st.Elements[0].Ops[0].(transform.Translate3)
	if !ok {
		t.Fatalf("first op is %T, want Translate3", st.Elements[0].Ops[0])
	}
	if math.Abs(tr.X-18) > 1e-9 {
		t.Errorf("title drift X = %g at frame 50, want 18", tr.X)
	}
}

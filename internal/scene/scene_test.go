package scene

import (
	"math"
	"reflect"
	"testing"

	"github.com/dpetrovsky/kinoscope/internal/config"
	"github.com/dpetrovsky/kinoscope/internal/interp"
	"github.com/dpetrovsky/kinoscope/internal/spring"
	"github.com/dpetrovsky/kinoscope/internal/timeline"
	"github.com/dpetrovsky/kinoscope/internal/transform"
)

func testStoryboard() *config.Storyboard {
	entry := spring.Config{Mass: 1, Damping: 20, Stiffness: 100, Delay: 0}
	return &config.Storyboard{
		Version: "1.0",
		FPS:     30,
		Scenes: []config.Scene{
			{
				ID:     "intro",
				Window: timeline.Window{Start: 0, Duration: 90},
				Entry:  entry,
				Exit:   spring.Config{Mass: 1, Damping: 20, Stiffness: 100, Delay: 60},
				Elements: []config.Element{
					{
						ID:    "title",
						Asset: "title-card",
						Kind:  config.KindPanel,
						Panel: &config.PanelParams{
							Spring:   spring.Config{Mass: 1, Damping: 20, Stiffness: 100, Delay: 5},
							RiseFrom: 120,
							TiltDeg:  8,
							FadeOver: 0.6,
						},
					},
				},
			},
			{
				ID:     "picker",
				Window: timeline.Window{Start: 90, Duration: 150},
				Entry:  entry,
				Exit:   spring.Config{Mass: 1, Damping: 20, Stiffness: 100, Delay: 110},
				Elements: []config.Element{
					{
						ID:   "numbers",
						Kind: config.KindWheel,
						Wheel: &config.WheelParams{
							Spring:       spring.Config{Mass: 1, Damping: 26, Stiffness: 100, Delay: 10},
							TotalItems:   7,
							Selected:     3,
							Radius:       130,
							SettleFrames: 45,
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
		},
	}
}

func TestTransitionShape(t *testing.T) {
	entry := spring.Config{Mass: 1, Damping: 20, Stiffness: 100, Delay: 150}
	exit := spring.Config{Mass: 1, Damping: 20, Stiffness: 100, Delay: 300}

	tests := []struct {
		frame int
		want  float64
	}{
		{150, 0}, // entry begins
		{195, 1}, // entry settled after its 45-frame run
		{300, 1}, // exit begins
		{345, 0}, // exit settled
	}
	for _, tt := range tests {
		got := TransitionValue(tt.frame, 30, entry, exit)
		if math.Abs(got-tt.want) > 0.01 {
			t.Errorf("TransitionValue(%d) = %g, want ~%g", tt.frame, got, tt.want)
		}
	}

	// Rise, hold, fall: strictly inside each leg.
	if mid := TransitionValue(160, 30, entry, exit); mid <= 0.05 || mid >= 0.95 {
		t.Errorf("mid-entry value %g not strictly rising", mid)
	}
	if mid := TransitionValue(310, 30, entry, exit); mid <= 0.05 || mid >= 0.95 {
		t.Errorf("mid-exit value %g not strictly falling", mid)
	}
}

func TestPhaseLifecycle(t *testing.T) {
	entry := spring.Config{Mass: 1, Damping: 20, Stiffness: 100, Delay: 150}
	exit := spring.Config{Mass: 1, Damping: 20, Stiffness: 100, Delay: 300}

	tests := []struct {
		frame int
		want  Phase
	}{
		{0, PhaseHidden},
		{149, PhaseHidden},
		{160, PhaseEntering},
		{250, PhaseVisible},
		{310, PhaseExiting},
		{400, PhaseHidden},
	}
	for _, tt := range tests {
		if got := PhaseOf(tt.frame, 30, entry, exit); got != tt.want {
			t.Errorf("PhaseOf(%d) = %v, want %v", tt.frame, got, tt.want)
		}
	}
}

func TestActiveSceneBoundaries(t *testing.T) {
	p, err := NewProduction(testStoryboard())
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		frame int
		id    string
		ok    bool
	}{
		{0, "intro", true},
		{89, "intro", true},
		{90, "picker", true},
		{239, "picker", true},
		{240, "", false},
		{-1, "", false},
	}
	for _, tt := range tests {
		id, ok := p.ActiveScene(tt.frame)
		if id != tt.id || ok != tt.ok {
			t.Errorf("ActiveScene(%d) = (%q, %v), want (%q, %v)", tt.frame, id, ok, tt.id, tt.ok)
		}
	}
}

func TestEvaluateDeterminism(t *testing.T) {
	p, err := NewProduction(testStoryboard())
	if err != nil {
		t.Fatal(err)
	}

	// Frames evaluated out of order, twice, must agree exactly.
	for _, frame := range []int{120, 0, 239, 45, 91, 120} {
		a, aok := p.Evaluate(frame)
		b, bok := p.Evaluate(frame)
		if aok != bok || !reflect.DeepEqual(a, b) {
			t.Fatalf("Evaluate(%d) is not deterministic", frame)
		}
	}
}

func TestEvaluateUnmountedOutsideWindows(t *testing.T) {
	p, err := NewProduction(testStoryboard())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.Evaluate(240); ok {
		t.Error("Evaluate past the last window returned a mounted state")
	}
}

func TestPanelElementState(t *testing.T) {
	p, err := NewProduction(testStoryboard())
	if err != nil {
		t.Fatal(err)
	}

	// Before the panel spring's delay the panel sits at its rest offset,
	// fully transparent.
	st, ok := p.Evaluate(3)
	if !ok {
		t.Fatal("frame 3 unmounted")
	}
	title := st.Elements[0]
	if title.ID != "title" || title.AssetID != "title-card" {
		t.Fatalf("unexpected element %+v", title)
	}
	if title.Opacity != 0 {
		t.Errorf("panel opacity before delay = %g, want 0", title.Opacity)
	}

	// Once settled the panel has risen to 0 and is fully opaque (the scene
	// exit spring has not started by frame 50).
	st, _ = p.Evaluate(50)
	title = st.Elements[0]
	m := title.Ops.Compose()
	_, y, _ := m.Apply(0, 0, 0)
	if math.Abs(y) > 1 {
		t.Errorf("settled panel Y = %g, want ~0", y)
	}
	if title.Opacity < 0.99 {
		t.Errorf("settled panel opacity = %g, want ~1", title.Opacity)
	}

	// Mid-flight the panel is tilted, and the label child cancels that
	// rotation exactly: parent ops followed by label ops keep a unit X
	// vector pointing along X.
	st, _ = p.Evaluate(8)
	title = st.Elements[0]
	if len(title.Children) != 1 {
		t.Fatalf("panel has %d children, want 1 label", len(title.Children))
	}
	label := title.Children[0]
	full := make(transform.Stack, 0, len(title.Ops)+len(label.Ops))
	full = append(full, title.Ops...)
	full = append(full, label.Ops...)
	fm := full.Compose()
	ox, oy, _ := fm.Apply(0, 0, 0)
	x, y, _ := fm.Apply(1, 0, 0)
	if math.Abs(x-ox-1) > 1e-9 || math.Abs(y-oy) > 1e-9 {
		t.Errorf("label content rotated: unit X maps to (%g, %g)", x-ox, y-oy)
	}
}

func TestGlassElementExtremes(t *testing.T) {
	p, err := NewProduction(testStoryboard())
	if err != nil {
		t.Fatal(err)
	}

	// Early in the picker scene the transition is near 0; late before exit
	// it is near 1.
	early, _ := p.Evaluate(90)
	late, _ := p.Evaluate(180)

	card := early.Elements[1]
	if card.ID != "card" || len(card.Children) != 2 {
		t.Fatalf("unexpected glass element %+v", card)
	}
	if card.Opacity > 0.01 {
		t.Errorf("glass opacity at transition start = %g, want ~0", card.Opacity)
	}

	card = late.Elements[1]
	if card.Opacity < 0.99 {
		t.Errorf("glass opacity when held = %g, want ~1", card.Opacity)
	}
	frameLayer, contentLayer := card.Children[0], card.Children[1]
	if frameLayer.ID != "card.frame" || contentLayer.ID != "card.content" {
		t.Fatalf("glass children %q, %q", frameLayer.ID, contentLayer.ID)
	}
	if contentLayer.AssetID != "card-face" {
		t.Errorf("content asset = %q", contentLayer.AssetID)
	}
}

func TestWheelElementSettles(t *testing.T) {
	p, err := NewProduction(testStoryboard())
	if err != nil {
		t.Fatal(err)
	}

	// Wheel delay 10 + settle 45, scene starts at 90: settled from global
	// frame 145.
	st, _ := p.Evaluate(144)
	for _, it := range st.Elements[0].Children {
		// Opacity never reaches 1 while spinning: nothing is selected.
		if it.Opacity == 1 {
			t.Fatalf("wheel slot %s selected before settle frame", it.ID)
		}
	}

	st, _ = p.Evaluate(145)
	selected := 0
	for _, it := range st.Elements[0].Children {
		if it.Opacity == 1 {
			selected++
			if it.ID != "numbers.item0" {
				t.Errorf("selected slot %s, want numbers.item0", it.ID)
			}
		}
	}
	if selected != 1 {
		t.Errorf("%d slots selected after settle, want 1", selected)
	}
}

func TestProductionCues(t *testing.T) {
	p, err := NewProduction(testStoryboard())
	if err != nil {
		t.Fatal(err)
	}

	cues := p.Cues()
	fires := cues.FiresAt(145)
	found := false
	for _, c := range fires {
		if c.ID == "numbers.settle" {
			found = true
		}
	}
	if !found {
		t.Errorf("no numbers.settle cue at frame 145; cues: %+v", cues.Cues())
	}

	if cue, ok := cues.LatestAt(4); !ok || cue.ID != "intro.enter" {
		t.Errorf("LatestAt(4) = (%+v, %v), want intro.enter", cue, ok)
	}
}

func TestNewProductionRejectsBadElement(t *testing.T) {
	sb := testStoryboard()
	sb.Scenes[1].Elements[0].Wheel.Selected = 9 // out of [0, 7)
	if _, err := NewProduction(sb); err == nil {
		t.Error("NewProduction accepted an out-of-range wheel selection")
	}
}

func TestPanelDriftTrack(t *testing.T) {
	sb := testStoryboard()
	sb.Scenes[0].Elements[0].Panel.Drift = []interp.Keyframe{
		{Frame: 0, Value: 0},
		{Frame: 40, Value: 80},
	}
	sb.Scenes[0].Elements[0].Panel.DriftCurve = "linear"

	p, err := NewProduction(sb)
	if err != nil {
		t.Fatal(err)
	}

	// Linear segments, held at the boundary past the last keyframe.
	for frame, wantX := range map[int]float64{0: 0, 20: 40, 40: 80, 60: 80} {
		st, ok := p.Evaluate(frame)
		if !ok {
			t.Fatalf("frame %d unmounted", frame)
		}
		tr, ok := st.Elements[0].Ops[0].(transform.Translate3)
		if !ok {
			t.Fatalf("frame %d: first op is %T, want Translate3", frame, st.Elements[0].Ops[0])
		}
		if math.Abs(tr.X-wantX) > 1e-9 {
			t.Errorf("frame %d: drift X = %g, want %g", frame, tr.X, wantX)
		}
	}
}

func TestWheelSpinCurveChangesPath(t *testing.T) {
	base := testStoryboard()
	named := testStoryboard()
	named.Scenes[1].Elements[0].Wheel.Curve = "linear"

	pa, err := NewProduction(base)
	if err != nil {
		t.Fatal(err)
	}
	pb, err := NewProduction(named)
	if err != nil {
		t.Fatal(err)
	}

	// Mid-spin (global 110, wheel delay 10) the deceleration shape must
	// show up in the item geometry.
	sa, _ := pa.Evaluate(110)
	sb, _ := pb.Evaluate(110)
	if reflect.DeepEqual(sa.Elements[0].Children, sb.Elements[0].Children) {
		t.Error("spin curve name had no effect mid-spin")
	}
}

func TestNewProductionRejectsUnknownCurves(t *testing.T) {
	sb := testStoryboard()
	sb.Scenes[0].Elements[0].Panel.DriftCurve = "warp"
	if _, err := NewProduction(sb); err == nil {
		t.Error("unknown panel drift curve accepted")
	}

	sb = testStoryboard()
	sb.Scenes[1].Elements[0].Wheel.Curve = "warp"
	if _, err := NewProduction(sb); err == nil {
		t.Error("unknown wheel spin curve accepted")
	}
}

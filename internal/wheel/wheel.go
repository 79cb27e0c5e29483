// Package wheel places N discrete values around a circle and spins the
// circle so that the selected value lands in the front slot.
package wheel

import (
	"fmt"
	"math"

	"github.com/dpetrovsky/kinoscope/internal/easing"
	"github.com/dpetrovsky/kinoscope/internal/transform"
)

// Default presentation constants.
const (
	defaultDimmedOpacity = 0.35
	defaultSpinTurns     = 1.0
)

// Layout is a validated wheel configuration. Slot 0 sits at the front of
// the circle (maximum depth toward the viewer, zero vertical offset), and
// slot 0 always displays the selected value, so a fully settled wheel has
// stopped precisely on the selection.
type Layout struct {
	TotalItems    int
	Radius        float64
	Selected      int
	SpinTurns     float64
	DimmedOpacity float64
	Curve         easing.Curve
}

// NewLayout validates the wheel configuration eagerly. A negative selected
// value is rejected, never silently wrapped.
func NewLayout(totalItems, selected int, radius float64) (*Layout, error) {
	if totalItems <= 0 {
		return nil, fmt.Errorf("wheel: total items %d must be positive", totalItems)
	}
	if selected < 0 {
		return nil, fmt.Errorf("wheel: selected value %d is negative", selected)
	}
	if selected >= totalItems {
		return nil, fmt.Errorf("wheel: selected value %d out of range [0, %d)", selected, totalItems)
	}
	if radius <= 0 || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return nil, fmt.Errorf("wheel: radius %g must be positive and finite", radius)
	}
	return &Layout{
		TotalItems:    totalItems,
		Radius:        radius,
		Selected:      selected,
		SpinTurns:     defaultSpinTurns,
		DimmedOpacity: defaultDimmedOpacity,
		Curve:         easing.OutCubic,
	}, nil
}

// Item is the per-frame state of one wheel slot.
type Item struct {
	Index         int
	AngularOffset float64 // radians
	DepthZ        float64
	VerticalY     float64
	ResolvedValue int
	IsSelected    bool
	Opacity       float64
	Rotation      float64 // the slot's own rotation, for legibility
	LabelRotation float64 // counter-rotation keeping the label upright
}

// Item computes one slot's state from the spin progress. settled marks the
// moment the spin has visibly stopped; only then may a slot claim
// selection.
func (l *Layout) Item(index int, rotationProgress float64, settled bool) (Item, error) {
	if index < 0 || index >= l.TotalItems {
		return Item{}, fmt.Errorf("wheel: index %d out of range [0, %d)", index, l.TotalItems)
	}

	// The spin offset is measured in turns and decays to exactly 0 as the
	// decelerating curve reaches 1, so the wheel stops dead on slot 0.
	eased := l.Curve(easing.Clamp01(rotationProgress))
	offset := l.SpinTurns * (1 - eased)

	normalized := float64(index)/float64(l.TotalItems) + offset
	angle := normalized * -2 * math.Pi

	it := Item{
		Index:         index,
		AngularOffset: angle,
		DepthZ:        math.Cos(angle) * l.Radius,
		VerticalY:     math.Sin(angle) * l.Radius,
		ResolvedValue: (index + l.Selected) % l.TotalItems,
		Rotation:      angle,
		LabelRotation: -angle,
	}
	it.IsSelected = settled && it.ResolvedValue == l.Selected
	if it.IsSelected {
		it.Opacity = 1
	} else {
		it.Opacity = l.DimmedOpacity
	}
	return it, nil
}

// Items evaluates every slot at the given spin progress.
func (l *Layout) Items(rotationProgress float64, settled bool) []Item {
	out := make([]Item, l.TotalItems)
	for i := range out {
		// index is in range by construction
		out[i], _ = l.Item(i, rotationProgress, settled)
	}
	return out
}

// Ops returns the slot's transform: positioned on the circle and rotated
// with it for legibility.
func (it Item) Ops() transform.Stack {
	return transform.Stack{
		transform.Translate3{Y: it.VerticalY, Z: it.DepthZ},
		transform.RotateX{Radians: it.Rotation},
	}
}

// LabelOps returns the counter-rotation keeping the slot's label upright
// inside the rotated slot.
func (it Item) LabelOps() transform.Stack {
	return transform.Stack{
		transform.RotateX{Radians: it.LabelRotation},
	}
}

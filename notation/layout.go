package notation

import (
	"fmt"

	"drumdrill/pattern"
)

// Staff geometry, in viewBox units. Lines run top to bottom.
var StaffLines = [5]float64{20, 28, 36, 44, 52}

const (
	Height      = 72
	MinWidth    = 180
	StepSpacing = 30
	FirstStepX  = 20
	Margin      = 8
	DotRadius   = 6
	CrossHalfW  = 6
	CrossHalfH  = 4
)

// Shape is the glyph drawn for a step.
type Shape int

const (
	ShapeDot Shape = iota
	ShapeCross
)

func (s Shape) String() string {
	if s == ShapeCross {
		return "cross"
	}
	return "dot"
}

// Band is the vertical slot a glyph sits in.
type Band int

const (
	BandTop Band = iota // fifth line
	BandMid             // third space
	BandLow             // first space
)

// Y returns the vertical centre of the band.
func (b Band) Y() float64 {
	switch b {
	case BandTop:
		return StaffLines[0]
	case BandMid:
		return (StaffLines[1] + StaffLines[2]) / 2
	default:
		return (StaffLines[3] + StaffLines[4]) / 2
	}
}

// Address identifies step Step of the layout rendered under ID.
type Address struct {
	ID   string
	Step int
}

func (a Address) String() string {
	return fmt.Sprintf("note-%s-%d", a.ID, a.Step)
}

// Glyph is one positioned note head.
type Glyph struct {
	Address Address
	Symbol  pattern.Symbol
	Shape   Shape
	Band    Band
	X, Y    float64
}

// Layout is the full rendering of one sequence under one address id.
type Layout struct {
	ID     string
	Width  float64
	Height float64
	Glyphs []Glyph
}

// Placement maps a symbol to its glyph shape and band.
func Placement(sym pattern.Symbol) (Shape, Band) {
	switch sym {
	case pattern.HiHat:
		return ShapeCross, BandTop
	case pattern.Snare:
		return ShapeDot, BandMid
	default:
		return ShapeDot, BandLow
	}
}

// Width returns the layout width for n steps.
func Width(n int) float64 {
	return max(MinWidth, float64(StepSpacing*n+FirstStepX))
}

// Render lays seq out left to right, one glyph per step, each addressable as
// (addressID, step).
func Render(seq pattern.Sequence, addressID string) Layout {
	l := Layout{
		ID:     addressID,
		Width:  Width(len(seq)),
		Height: Height,
		Glyphs: make([]Glyph, len(seq)),
	}
	for i, sym := range seq {
		shape, band := Placement(sym)
		l.Glyphs[i] = Glyph{
			Address: Address{ID: addressID, Step: i},
			Symbol:  sym,
			Shape:   shape,
			Band:    band,
			X:       float64(FirstStepX + i*StepSpacing),
			Y:       band.Y(),
		}
	}
	return l
}

// Glyph returns the glyph at step, if any.
func (l Layout) Glyph(step int) (Glyph, bool) {
	if step < 0 || step >= len(l.Glyphs) {
		return Glyph{}, false
	}
	return l.Glyphs[step], true
}

package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"drumdrill/notation"
	"drumdrill/pattern"
)

// DefaultPalette is the embedded palette used when none is configured.
const DefaultPalette = "ember"

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Kit indicators
	PadOn  rune // ■ pulsing
	PadOff rune // □ idle

	// Notation
	Cross rune // x hi-hat
	Dot   rune // ● bass / snare
	Staff rune // ─ staff line

	// Rows
	Practiced rune // ✔
	Cursor    rune // ▶
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			PadOn:  '■',
			PadOff: '□',

			Cross: 'x',
			Dot:   '●',
			Staff: '─',

			Practiced: '✔',
			Cursor:    '▶',
		},
	}
}

// Default builds a theme from the embedded default palette.
func Default() *Theme {
	p, err := Builtin(DefaultPalette)
	if err != nil {
		panic(fmt.Sprintf("failed to load builtin palette %s: %v", DefaultPalette, err))
	}
	return New(p)
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0  // night
	RoleSurface = 0.11 // dark surface
	RoleMuted   = 0.22 // muted purple
	RoleFG      = 0.44 // readable fg
	RoleAccent  = 0.55 // ember
	RoleCursor  = 0.66 // sand
	RoleActive  = 0.77 // red
	RoleWarning = 0.88 // orange
	RoleSuccess = 1.0  // green
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Cursor() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleCursor))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// Instrument returns the indicator colour for a symbol.
func (t *Theme) Instrument(sym pattern.Symbol) RGB {
	switch sym {
	case pattern.Bass:
		return t.Palette.Lookup(RoleActive)
	case pattern.Snare:
		return t.Palette.Lookup(RoleWarning)
	default:
		return t.Palette.Lookup(RoleSuccess)
	}
}

// Notation returns the style used to draw staves.
func (t *Theme) Notation() notation.Style {
	return notation.Style{
		Staff:  lipgloss.NewStyle().Foreground(t.Muted()),
		Note:   lipgloss.NewStyle().Foreground(t.FG()),
		Active: lipgloss.NewStyle().Foreground(t.BG()).Background(t.Accent()).Bold(true),
		Cross:  t.Symbols.Cross,
		Dot:    t.Symbols.Dot,
		Line:   t.Symbols.Staff,
	}
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}

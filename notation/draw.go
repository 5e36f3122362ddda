package notation

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style controls terminal drawing of a layout.
type Style struct {
	Staff  lipgloss.Style
	Note   lipgloss.Style
	Active lipgloss.Style
	Cross  rune
	Dot    rune
	Line   rune
}

// DefaultStyle draws without colour.
func DefaultStyle() Style {
	return Style{
		Staff:  lipgloss.NewStyle(),
		Note:   lipgloss.NewStyle(),
		Active: lipgloss.NewStyle().Reverse(true),
		Cross:  'x',
		Dot:    '●',
		Line:   '─',
	}
}

// cellWidth is the number of terminal columns per step.
const cellWidth = 3

// Draw renders l as three text rows, one per band, top band first. The glyph
// at step active (or none when active < 0) uses the Active style.
func Draw(l Layout, active int, st Style) string {
	rows := make([]strings.Builder, 3)
	line := string(st.Line)

	for i := range rows {
		rows[i].WriteString(st.Staff.Render(line))
	}
	for _, g := range l.Glyphs {
		for band := range rows {
			if Band(band) != g.Band {
				rows[band].WriteString(st.Staff.Render(strings.Repeat(line, cellWidth)))
				continue
			}
			r := st.Dot
			if g.Shape == ShapeCross {
				r = st.Cross
			}
			head := st.Note
			if g.Address.Step == active {
				head = st.Active
			}
			rows[band].WriteString(st.Staff.Render(line))
			rows[band].WriteString(head.Render(string(r)))
			rows[band].WriteString(st.Staff.Render(line))
		}
	}

	out := make([]string, len(rows))
	for i := range rows {
		out[i] = rows[i].String()
	}
	return strings.Join(out, "\n")
}

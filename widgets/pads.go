package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderPad renders a single colored pad
func RenderPad(color [3]uint8, r rune) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(color)))
	return style.Render(string(r))
}

// Indicator is one instrument light of the kit strip.
type Indicator struct {
	Label string
	Color [3]uint8
	Lit   bool
}

// RenderIndicators renders the kit strip: lit pads use on, idle pads use
// off and a dimmed label.
func RenderIndicators(items []Indicator, on, off rune) string {
	dim := lipgloss.NewStyle().Faint(true)
	parts := make([]string, len(items))
	for i, it := range items {
		if it.Lit {
			bright := lipgloss.NewStyle().Foreground(lipgloss.Color(rgbToHex(it.Color))).Bold(true)
			parts[i] = RenderPad(it.Color, on) + " " + bright.Render(it.Label)
		} else {
			parts[i] = RenderPad(it.Color, off) + " " + dim.Render(it.Label)
		}
	}
	return strings.Join(parts, "   ")
}

// RenderTabs renders a tab bar with the active tab highlighted.
func RenderTabs(titles []string, active int, activeStyle, idleStyle lipgloss.Style) string {
	var out strings.Builder
	for i, title := range titles {
		if i > 0 {
			out.WriteString(" ")
		}
		label := fmt.Sprintf(" %s ", title)
		if i == active {
			out.WriteString(activeStyle.Render(label))
		} else {
			out.WriteString(idleStyle.Render(label))
		}
	}
	return out.String()
}

func rgbToHex(c [3]uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

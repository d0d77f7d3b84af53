// Package theme centralizes Lip Gloss styles for the timeline UI.
package theme

import (
	"image/color"

	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Theme groups the styles used across the viewer.
type Theme struct {
	Ruler      lipgloss.Style
	LayerLabel lipgloss.Style
	RowEven    lipgloss.Style
	RowOdd     lipgloss.Style
	Playhead   lipgloss.Style
	PastObject lipgloss.Style
	Status     lipgloss.Style
	StatusErr  lipgloss.Style
	Hover      lipgloss.Style
	Help       lipgloss.Style

	dark bool
}

// Default returns the built-in theme, adapted to the terminal background.
func Default() Theme {
	dark := termenv.HasDarkBackground()
	return Theme{
		Ruler:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		LayerLabel: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		RowEven:    lipgloss.NewStyle(),
		RowOdd:     lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Playhead:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		PastObject: lipgloss.NewStyle().Faint(true),
		Status:     lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		StatusErr:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Hover:      lipgloss.NewStyle().Reverse(true),
		Help:       lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
		dark:       dark,
	}
}

// LayerColors assigns each of n layers a distinct color, evenly spaced around
// the hue wheel. Lightness tracks the terminal background so rectangles stay
// readable on both.
func (t Theme) LayerColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}
	lightness := 0.35
	if t.dark {
		lightness = 0.6
	}
	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) * 360.0 / float64(n)
		c := colorful.Hsl(hue, 0.55, lightness)
		colors[i] = lipgloss.Color(c.Hex())
	}
	return colors
}

package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/timescope/pkg/timeutil"
)

const helpText = "Keys: h/l pan, H/L page, +/- zoom, 0 jump to start, wheel pan, " +
	"ctrl+wheel zoom about cursor, drag pan, space play/pause, f follow, " +
	"r re-resolve, : commands (goto <time>, zoom <pct>, speed <x>, play, pause, follow, q), " +
	"? close help, q quit"

// View renders the ruler, one row per layer, the playhead, and the status
// line. Geometry mirrors the draw state exactly: one terminal cell per pixel.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}
	band := m.width - m.gutter
	if band < 10 {
		return "terminal too narrow for the timeline"
	}

	var b strings.Builder
	b.WriteString(m.renderRuler(band))
	b.WriteString("\n")

	for _, layer := range m.rows.Names() {
		b.WriteString(m.renderRow(layer, band))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	switch m.mode {
	case modeCommand:
		b.WriteString("\n:")
		b.WriteString(m.input.View())
	case modeHelp:
		b.WriteString("\n\n")
		b.WriteString(m.th.Help.Render(wordwrap.String(helpText, m.width)))
	}

	return b.String()
}

// playheadCol returns the band-relative playhead column, or -1 when the
// marker is not drawable.
func (m *Model) playheadCol(band int) int {
	if !m.cfg.DrawPlayhead {
		return -1
	}
	if m.playheadX < float64(m.gutter) {
		return -1
	}
	col := int(math.Round(m.playheadX)) - m.gutter
	if col < 0 || col >= band {
		return -1
	}
	return col
}

func (m *Model) renderRuler(band int) string {
	cells := make([]rune, band)
	for i := range cells {
		cells[i] = ' '
	}

	vp := m.ctl.Viewport
	step := niceStep(vp.Range() / 6)
	lastEnd := -2
	for t := math.Ceil(vp.DrawTimeStart/step) * step; t <= vp.DrawTimeEnd; t += step {
		col := int(math.Round(vp.TimeToX(t))) - m.gutter
		if col < 0 || col >= band {
			continue
		}
		if col <= lastEnd+1 {
			continue
		}
		label := timeutil.FormatTime(t)
		cells[col] = '·'
		for i, r := range label {
			if col+1+i >= band {
				break
			}
			cells[col+1+i] = r
		}
		lastEnd = col + len(label)
	}

	ruler := string(cells)
	gutter := strings.Repeat(" ", m.gutter)

	if col := m.playheadCol(band); col >= 0 {
		runes := []rune(ruler)
		return gutter + m.th.Ruler.Render(string(runes[:col])) +
			m.th.Playhead.Render("▼") +
			m.th.Ruler.Render(string(runes[col+1:]))
	}
	return gutter + m.th.Ruler.Render(ruler)
}

// niceStep picks a 1/2/5×10^k step no smaller than raw.
func niceStep(raw float64) float64 {
	if raw <= 0 {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, mult := range []float64{1, 2, 5, 10} {
		if mag*mult >= raw {
			return mag * mult
		}
	}
	return mag * 10
}

// renderRow paints one layer: the label gutter, then the band walked in runs
// of identical ownership so each rectangle gets one styled segment. The
// playhead glyph punches through whatever occupies its column.
func (m *Model) renderRow(layer string, band int) string {
	// Truncate by runes so a multibyte layer name cannot be split mid-rune,
	// and pad by rune count so the band stays aligned.
	runes := []rune(layer)
	if len(runes) > m.gutter-1 {
		runes = runes[:m.gutter-1]
	}
	label := string(runes) + strings.Repeat(" ", m.gutter-len(runes))

	cells := make([]rune, band)
	owner := make([]int, band)
	for i := range cells {
		cells[i] = ' '
		owner[i] = -1
	}

	// Later entries win overlapping cells; the present snapshot comes after
	// the retained past in state order, which is the precedence we want.
	for idx, e := range m.state.Entries {
		if e.Layer != layer || !e.Rect.Visible {
			continue
		}
		start := int(math.Round(e.Rect.Left)) - m.gutter
		end := int(math.Round(e.Rect.Left+e.Rect.Width)) - m.gutter
		if end <= start {
			end = start + 1
		}
		if start < 0 {
			start = 0
		}
		if end > band {
			end = band
		}
		for col := start; col < end; col++ {
			cells[col] = ' '
			owner[col] = idx
		}
		for i, r := range e.Key.ObjectID {
			col := start + 1 + i
			if col >= end-1 {
				break
			}
			cells[col] = r
		}
	}

	playhead := m.playheadCol(band)
	hoverKey, hovering := m.tracker.Current()

	rowStyle := m.th.RowEven
	if m.rows[layer]%2 == 1 {
		rowStyle = m.th.RowOdd
	}

	var b strings.Builder
	b.WriteString(m.th.LayerLabel.Render(label))

	col := 0
	for col < band {
		if col == playhead {
			b.WriteString(m.th.Playhead.Render("┃"))
			col++
			continue
		}
		end := col
		for end < band && end != playhead && owner[end] == owner[col] {
			end++
		}
		text := string(cells[col:end])
		if idx := owner[col]; idx < 0 {
			b.WriteString(rowStyle.Render(text))
		} else {
			e := m.state.Entries[idx]
			style := lipgloss.NewStyle().
				Background(m.colors[e.Layer]).
				Foreground(lipgloss.Color("232"))
			if m.past != nil && e.Key.Generation == 0 {
				style = style.Inherit(m.th.PastObject)
			}
			if hovering && e.Key == hoverKey {
				style = style.Inherit(m.th.Hover)
			}
			b.WriteString(style.Render(text))
		}
		col = end
	}

	return b.String()
}

func (m *Model) renderStatus() string {
	vp := m.ctl.Viewport
	modeStr := map[mode]string{modeNormal: "NORMAL", modeCommand: "CMD", modeHelp: "HELP"}[m.mode]

	parts := []string{
		fmt.Sprintf("[%s]", modeStr),
		fmt.Sprintf("%s–%s", timeutil.FormatTime(vp.DrawTimeStart), timeutil.FormatTime(vp.DrawTimeEnd)),
		fmt.Sprintf("zoom %.0f%%", vp.Zoom),
	}
	if m.cfg.DrawPlayhead {
		marker := "⏸"
		if m.ctl.Playhead.Playing {
			marker = "▶"
		}
		parts = append(parts, fmt.Sprintf("%s %s ×%g", marker, timeutil.FormatTime(m.ctl.Playhead.Time), m.ctl.Playhead.Speed))
	}
	if m.ctl.Playhead.ViewportFollow {
		parts = append(parts, "follow")
	}
	if m.hoverNote != "" {
		parts = append(parts, "hover: "+m.hoverNote)
	}
	if len(m.diags) > 0 {
		parts = append(parts, fmt.Sprintf("%d unstitched", len(m.diags)))
	}

	line := strings.Join(parts, " · ")
	style := m.th.Status
	if m.statusErr {
		style = m.th.StatusErr
	}
	return style.Render(line + " — " + m.status)
}

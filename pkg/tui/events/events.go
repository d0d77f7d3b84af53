// Package events defines the typed messages the timeline view emits toward
// its host program.
package events

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/timescope/pkg/timeline"
)

// HoverMsg is emitted when the pointer enters a drawn instance rectangle.
type HoverMsg struct {
	Object   timeline.ResolvedObject
	Instance timeline.Instance
	X        int
	Y        int
}

// Describe renders the hover in a human-friendly format for logs.
func (m HoverMsg) Describe() string {
	return fmt.Sprintf(`object:%q instance:%s at:(%d,%d)`, m.Object.ID, m.Instance, m.X, m.Y)
}

// HoverClearedMsg is emitted when the pointer leaves all instance rectangles.
type HoverClearedMsg struct{}

// Describe implements the logging helper.
func (m HoverClearedMsg) Describe() string { return "hover cleared" }

// ViewportChangedMsg announces a new visible window after a pan, zoom, or
// absolute jump.
type ViewportChangedMsg struct {
	Start timeline.Time
	End   timeline.Time
	Zoom  float64
}

// Describe implements the logging helper.
func (m ViewportChangedMsg) Describe() string {
	return fmt.Sprintf(`window:[%v,%v) zoom:%v%%`, m.Start, m.End, m.Zoom)
}

// MergeSkippedMsg surfaces the non-fatal diagnostics produced while stitching
// two resolutions together.
type MergeSkippedMsg struct {
	Diagnostics []timeline.MergeDiagnostic
}

// Describe implements the logging helper.
func (m MergeSkippedMsg) Describe() string {
	return fmt.Sprintf("merge skipped %d object(s)", len(m.Diagnostics))
}

// HoverCmd wraps a hover transition into a tea.Cmd for callers that want to
// emit it as part of an Update result.
func HoverCmd(obj timeline.ResolvedObject, in timeline.Instance, x, y int) tea.Cmd {
	return func() tea.Msg {
		return HoverMsg{Object: obj, Instance: in, X: x, Y: y}
	}
}

// HoverClearedCmd wraps HoverClearedMsg into a tea.Cmd.
func HoverClearedCmd() tea.Cmd {
	return func() tea.Msg { return HoverClearedMsg{} }
}

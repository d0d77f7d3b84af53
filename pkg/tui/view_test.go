package tui

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/muesli/reflow/ansi"

	"tableflip.dev/timescope/pkg/resolver"
	"tableflip.dev/timescope/pkg/timeline"
)

func newTestModel(t *testing.T, objects []timeline.Object, cfg Config) *Model {
	t.Helper()
	if cfg.BaseRange == 0 {
		cfg.BaseRange = 20
	}
	m, err := New(resolver.Basic{}, nil, objects, cfg)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	return m
}

func testObjects() []timeline.Object {
	return []timeline.Object{
		{ID: "intro", Layer: "video", Enable: []timeline.Enable{{Start: 5, End: timeline.EndAt(15)}}},
		{ID: "bed", Layer: "audio", Enable: []timeline.Enable{{Start: 0}}},
	}
}

func TestViewRendersLayersAndInstances(t *testing.T) {
	m := newTestModel(t, testObjects(), Config{})

	view := stripANSI(m.View())
	for _, want := range []string{"audio", "video", "intro", "bed", "[NORMAL]", "zoom 100%"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q; view=%q", want, view)
		}
	}
}

func TestViewOmitsInstancesOutsideWindow(t *testing.T) {
	objects := []timeline.Object{
		{ID: "late", Layer: "video", Enable: []timeline.Enable{{Start: 30, End: timeline.EndAt(40)}}},
	}
	m := newTestModel(t, objects, Config{})

	if view := stripANSI(m.View()); strings.Contains(view, "late") {
		t.Fatalf("instance outside the window should not be drawn; view=%q", view)
	}

	m.runCommand("goto 30")
	view := stripANSI(m.View())
	if !strings.Contains(view, "late") {
		t.Fatalf("expected instance to appear after goto; view=%q", view)
	}
	if !strings.Contains(view, "jumped to 30s") {
		t.Fatalf("expected jump confirmation in status; view=%q", view)
	}
}

func TestViewShowsPlayheadWhenEnabled(t *testing.T) {
	m := newTestModel(t, testObjects(), Config{DrawPlayhead: true})

	view := stripANSI(m.View())
	if !strings.Contains(view, "▼") {
		t.Fatalf("expected playhead marker in ruler; view=%q", view)
	}
	if !strings.Contains(view, "⏸ 0s ×1") {
		t.Fatalf("expected paused playhead in status; view=%q", view)
	}

	without := newTestModel(t, testObjects(), Config{})
	if view := stripANSI(without.View()); strings.Contains(view, "▼") {
		t.Fatalf("playhead marker should not render when the feature is off; view=%q", view)
	}
}

func TestViewCommandAndHelpModes(t *testing.T) {
	m := newTestModel(t, testObjects(), Config{})

	m.Update(tea.KeyPressMsg{Text: ":", Code: ':'})
	if view := stripANSI(m.View()); !strings.Contains(view, "[CMD]") {
		t.Fatalf("expected command mode indicator; view=%q", view)
	}

	m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	m.Update(tea.KeyPressMsg{Text: "?", Code: '?'})
	view := stripANSI(m.View())
	if !strings.Contains(view, "[HELP]") || !strings.Contains(view, "Keys:") {
		t.Fatalf("expected help text; view=%q", view)
	}
}

func TestViewTruncatesWideLayerLabelsByRunes(t *testing.T) {
	wide := strings.Repeat("é", 28)
	objects := []timeline.Object{
		{ID: "x", Layer: wide, Enable: []timeline.Enable{{Start: 0, End: timeline.EndAt(10)}}},
	}
	m := newTestModel(t, objects, Config{})

	view := stripANSI(m.View())
	if !utf8.ValidString(view) {
		t.Fatalf("view contains a split rune")
	}
	if !strings.Contains(view, strings.Repeat("é", 23)) {
		t.Fatalf("expected the truncated label in the gutter; view=%q", view)
	}
	if strings.Contains(view, strings.Repeat("é", 24)) {
		t.Fatalf("label should stop one cell short of the gutter; view=%q", view)
	}
}

func TestViewBeforeFirstResize(t *testing.T) {
	m, err := New(resolver.Basic{}, nil, testObjects(), Config{BaseRange: 20})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if view := m.View(); view != "loading..." {
		t.Fatalf("expected loading placeholder before the first resize, got %q", view)
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	ansiSeq := false
	for _, r := range s {
		if r == ansi.Marker {
			ansiSeq = true
			continue
		}
		if ansiSeq {
			if ansi.IsTerminator(r) {
				ansiSeq = false
			}
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

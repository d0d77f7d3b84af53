// Package tui hosts the Bubble Tea program that renders the timeline view:
// layer rows, instance rectangles, the playhead, and the pointer-driven
// hover/pan/zoom handling on top of the viewport engine.
package tui

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/timescope/pkg/drawstate"
	"tableflip.dev/timescope/pkg/resolver"
	"tableflip.dev/timescope/pkg/store"
	"tableflip.dev/timescope/pkg/timeline"
	"tableflip.dev/timescope/pkg/tui/events"
	"tableflip.dev/timescope/pkg/tui/theme"
	"tableflip.dev/timescope/pkg/viewport"
)

type mode int

const (
	modeNormal mode = iota
	modeCommand
	modeHelp
)

const (
	frameInterval = 33 * time.Millisecond

	// rulerLines is the number of lines above the first layer row.
	rulerLines = 1

	minGutter = 10
	maxGutter = 24
)

// Config configures the viewer at construction.
type Config struct {
	// DrawPlayhead enables playhead tracking, auto-play and playback speed.
	// Without it any playhead-related viewport change is a usage error.
	DrawPlayhead bool

	// BaseRange is the window width in time units at 100% zoom.
	BaseRange timeline.Time

	// PlaySpeed is the initial playback speed in time units per second.
	PlaySpeed float64

	// Follow starts the view with the window scrolling alongside playback.
	Follow bool
}

type frameMsg struct {
	at time.Time
}

type storeChangedMsg struct{}

type watchClosedMsg struct{}

// Model contains the full UI state for one timeline view.
type Model struct {
	cfg     Config
	th      theme.Theme
	res     resolver.Resolver
	persist store.Persistence

	ctx     context.Context
	objects []timeline.Object
	watch   <-chan store.Event

	ctl     *viewport.Controller
	past    *timeline.Resolved
	present *timeline.Resolved
	rows    timeline.Rows
	colors  map[string]color.Color
	diags   []timeline.MergeDiagnostic

	state   drawstate.State
	index   *drawstate.Index
	tracker drawstate.Tracker

	mode  mode
	input textinput.Model

	status    string
	statusErr bool
	hoverNote string

	width  int
	height int
	gutter int

	lastFrame time.Time
	playheadX float64

	dragging bool
	dragX    int
}

// New constructs a view over the given objects. persist may be nil; when set,
// the store is watched and changes re-resolve the schedule incrementally.
func New(res resolver.Resolver, persist store.Persistence, objects []timeline.Object, cfg Config) (*Model, error) {
	if res == nil {
		return nil, errors.New("tui: resolver is required")
	}
	if cfg.BaseRange <= 0 {
		return nil, fmt.Errorf("tui: base range must be positive, got %v", cfg.BaseRange)
	}
	if cfg.PlaySpeed == 0 {
		cfg.PlaySpeed = 1
	}

	ti := textinput.New()
	ti.Placeholder = "command"
	ti.CharLimit = 128
	ti.Prompt = ""

	m := &Model{
		cfg:     cfg,
		th:      theme.Default(),
		res:     res,
		persist: persist,
		ctx:     context.Background(),
		objects: objects,
		ctl:     viewport.NewController(cfg.BaseRange, 0, 1, cfg.DrawPlayhead),
		input:   ti,
		status:  "NORMAL: h/l pan, +/- zoom, wheel pan, ctrl+wheel zoom, space play, f follow, : commands, ? help",
		gutter:  minGutter,
	}
	m.ctl.Playhead.Speed = cfg.PlaySpeed
	m.ctl.Playhead.ViewportFollow = cfg.Follow

	if err := m.resolveInitial(); err != nil {
		return nil, err
	}
	return m, nil
}

// Init starts the frame loop and, when a store is attached, the watcher.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.tick()}
	if m.persist != nil {
		if ch, err := m.persist.Watch(m.ctx); err == nil {
			m.watch = ch
			cmds = append(cmds, m.awaitStoreChange())
		} else {
			m.setError(fmt.Sprintf("watch: %v", err))
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg{at: t}
	})
}

func (m *Model) awaitStoreChange() tea.Cmd {
	ch := m.watch
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return watchClosedMsg{}
		}
		return storeChangedMsg{}
	}
}

func (m *Model) setError(s string) {
	m.status = "ERR: " + s
	m.statusErr = true
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

// resolveInitial performs the first, non-incremental resolution.
func (m *Model) resolveInitial() error {
	r, err := m.res.Resolve(m.objects, resolver.Options{Time: 0})
	if err != nil {
		return err
	}
	m.present = r
	m.past = nil
	m.diags = nil
	m.refreshRows()
	m.rederive()
	return nil
}

// reresolve runs the incremental update path: resolve from the playhead
// forward, trim the retained schedule to end at the seam, and stitch the two
// so nothing visibly jumps at the boundary.
func (m *Model) reresolve() tea.Cmd {
	seam := timeline.Time(0)
	if m.cfg.DrawPlayhead {
		seam = m.ctl.Playhead.Time
	}

	fresh, err := m.res.Resolve(m.objects, resolver.Options{Time: seam})
	if err != nil {
		m.setError(fmt.Sprintf("resolve: %v", err))
		return nil
	}

	if seam == 0 || m.present == nil {
		// Nothing precedes the seam; replace wholesale.
		m.present = fresh
		m.past = nil
		m.diags = nil
	} else {
		retained := timeline.Trim(m.present, timeline.BoundsUntil(seam))
		merged, remaining, diags := timeline.Merge(retained, fresh)

		// Discard history that has scrolled a full window behind the seam.
		horizon := seam - m.ctl.Viewport.ScaledRange()
		if horizon > 0 {
			remaining = timeline.Trim(remaining, timeline.BoundsFrom(horizon))
		}

		m.present = merged
		m.past = remaining
		m.diags = diags
	}

	m.refreshRows()
	m.rederive()

	if len(m.diags) > 0 {
		diags := m.diags
		m.setStatus(fmt.Sprintf("schedule updated, %d object(s) not stitched", len(diags)))
		return func() tea.Msg { return events.MergeSkippedMsg{Diagnostics: diags} }
	}
	m.setStatus("schedule updated")
	return nil
}

// refreshRows rebuilds the layer rows and their colors, but only when the
// layer set actually changed.
func (m *Model) refreshRows() {
	rows := timeline.BuildRows(m.past, m.present)
	if rows.Equal(m.rows) {
		return
	}
	m.rows = rows
	names := rows.Names()
	palette := m.th.LayerColors(len(names))
	m.colors = make(map[string]color.Color, len(names))
	for i, name := range names {
		m.colors[name] = palette[i]
	}
	m.applySizes()
}

// applySizes recalculates the pixel geometry from the terminal size and the
// widest layer label.
func (m *Model) applySizes() {
	if m.width == 0 {
		return
	}
	gutter := minGutter
	for name := range m.rows {
		if len(name)+2 > gutter {
			gutter = len(name) + 2
		}
	}
	if gutter > maxGutter {
		gutter = maxGutter
	}
	m.gutter = gutter
	band := m.width - gutter
	if band < 1 {
		band = 1
	}
	m.ctl.Viewport.Resize(float64(gutter), float64(band))
}

func (m *Model) geometry() drawstate.Geometry {
	return drawstate.Geometry{
		CanvasWidth:          float64(m.width),
		RowHeight:            1,
		ObjectHeightFraction: 1,
	}
}

// rederive recomputes draw state and the hover index under the current
// viewport. Called whenever the window, zoom, schedule, or layout changed.
func (m *Model) rederive() {
	m.state = drawstate.Derive(m.rows, m.ctl.Viewport, m.geometry(), m.past, m.present)
	m.index = drawstate.BuildIndex(m.state, m.rows, 1)
	m.playheadX = m.ctl.PlayheadX()
}

func (m *Model) viewportChanged() tea.Cmd {
	m.rederive()
	vp := m.ctl.Viewport
	return func() tea.Msg {
		return events.ViewportChangedMsg{Start: vp.DrawTimeStart, End: vp.DrawTimeEnd, Zoom: vp.Zoom}
	}
}

// Update handles messages and keybindings.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applySizes()
		m.rederive()

	case frameMsg:
		cmds = append(cmds, m.onFrame(msg.at))

	case storeChangedMsg:
		m.objects = m.persist.List(m.ctx)
		if cmd := m.reresolve(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, m.awaitStoreChange())

	case watchClosedMsg:
		m.setStatus("store watcher stopped")

	case tea.MouseWheelMsg:
		if cmd := m.onWheel(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.MouseClickMsg:
		if msg.Button == tea.MouseLeft {
			m.dragging = true
			m.dragX = msg.X
		}

	case tea.MouseReleaseMsg:
		m.dragging = false

	case tea.MouseMotionMsg:
		if cmd := m.onMotion(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.KeyPressMsg:
		cmd, quit := m.onKey(msg)
		if quit {
			return m, tea.Quit
		}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// onFrame is the per-frame stepper: advance the playhead and, when following,
// the window; redraw only what the step demands. Reschedules unconditionally.
func (m *Model) onFrame(at time.Time) tea.Cmd {
	dt := frameInterval.Seconds()
	if !m.lastFrame.IsZero() {
		dt = at.Sub(m.lastFrame).Seconds()
	}
	m.lastFrame = at

	switch m.ctl.Step(dt) {
	case viewport.StepViewport:
		m.rederive()
	case viewport.StepPlayhead:
		// Only the marker moved; skip the full derivation unless the pixel
		// position actually changed.
		if x := m.ctl.PlayheadX(); math.Round(x) != math.Round(m.playheadX) {
			m.playheadX = x
		}
	}

	return m.tick()
}

func (m *Model) onWheel(msg tea.MouseWheelMsg) tea.Cmd {
	switch {
	case msg.Mod&tea.ModCtrl != 0:
		delta := 1.0
		if msg.Button == tea.MouseWheelUp {
			delta = -1.0
		}
		if m.ctl.Viewport.ZoomAt(float64(msg.X), delta) {
			return m.viewportChanged()
		}
	default:
		// Plain and alt wheel pan horizontally; a terminal has no second
		// scroll axis to give away.
		step := m.panStep()
		if msg.Button == tea.MouseWheelUp {
			step = -step
		}
		if m.ctl.Viewport.PanBy(step) {
			return m.viewportChanged()
		}
	}
	return nil
}

func (m *Model) onMotion(msg tea.MouseMotionMsg) tea.Cmd {
	if m.dragging {
		dx := float64(m.dragX - msg.X)
		m.dragX = msg.X
		if dx != 0 && m.ctl.Viewport.PanBy(dx) {
			return m.viewportChanged()
		}
		return nil
	}

	if m.index == nil {
		return nil
	}
	rowY := float64(msg.Y - rulerLines)
	transition, entry := m.tracker.Move(m.index, float64(msg.X), rowY)
	switch transition {
	case drawstate.TransitionEnter:
		obj := m.lookupObject(entry.Key)
		m.hoverNote = fmt.Sprintf("%s %s on %s", entry.Key.ObjectID, entry.Instance, entry.Layer)
		return events.HoverCmd(obj, entry.Instance, msg.X, msg.Y)
	case drawstate.TransitionLeave:
		m.hoverNote = ""
		return events.HoverClearedCmd()
	}
	return nil
}

// lookupObject resolves a draw key back to the object it was derived from.
// The generation picks the snapshot, which matters after a merge skip: both
// sides then hold the same object id with different definitions.
func (m *Model) lookupObject(key timeline.Key) timeline.ResolvedObject {
	snaps := make([]*timeline.Resolved, 0, 2)
	for _, r := range []*timeline.Resolved{m.past, m.present} {
		if r != nil {
			snaps = append(snaps, r)
		}
	}
	if key.Generation >= 0 && key.Generation < len(snaps) {
		if obj, ok := snaps[key.Generation].Objects[key.ObjectID]; ok {
			return obj
		}
	}
	for _, r := range snaps {
		if obj, ok := r.Objects[key.ObjectID]; ok {
			return obj
		}
	}
	return timeline.ResolvedObject{ID: key.ObjectID}
}

// panStep is the pan distance, in pixels, for one key press or wheel notch.
func (m *Model) panStep() float64 {
	step := m.ctl.Viewport.TimelineWidth / 10
	if step < 1 {
		step = 1
	}
	return step
}

func (m *Model) onKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	if m.mode == modeCommand {
		return m.onCommandKey(msg), false
	}
	if m.mode == modeHelp {
		switch msg.String() {
		case "q", "esc", "?":
			m.mode = modeNormal
		}
		return nil, false
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return nil, true

	case ":":
		return m.enterCommand(), false

	case "?":
		m.mode = modeHelp

	case "h", "left":
		if m.ctl.Viewport.PanBy(-m.panStep()) {
			return m.viewportChanged(), false
		}
	case "l", "right":
		if m.ctl.Viewport.PanBy(m.panStep()) {
			return m.viewportChanged(), false
		}
	case "H", "shift+left":
		if m.ctl.Viewport.PanBy(-m.ctl.Viewport.TimelineWidth) {
			return m.viewportChanged(), false
		}
	case "L", "shift+right":
		if m.ctl.Viewport.PanBy(m.ctl.Viewport.TimelineWidth) {
			return m.viewportChanged(), false
		}

	case "+", "=":
		if m.zoomAtCenter(-1) {
			return m.viewportChanged(), false
		}
	case "-", "_":
		if m.zoomAtCenter(1) {
			return m.viewportChanged(), false
		}

	case "0", "g":
		m.applyChange(viewport.Change{Timestamp: zero()})
		return m.viewportChanged(), false

	case "space":
		playing := !m.ctl.Playhead.Playing
		if err := m.ctl.Apply(viewport.Change{PlayPlayhead: &playing}); err != nil {
			m.setError(err.Error())
		} else if playing {
			m.setStatus("playing")
		} else {
			m.setStatus("paused")
		}

	case "f":
		follow := !m.ctl.Playhead.ViewportFollow
		m.applyChange(viewport.Change{PlayViewport: &follow})
		if follow {
			m.setStatus("viewport follows playback")
		} else {
			m.setStatus("viewport pinned")
		}

	case "r":
		if m.persist != nil {
			m.objects = m.persist.List(m.ctx)
		}
		return m.reresolve(), false
	}
	return nil, false
}

func (m *Model) zoomAtCenter(delta float64) bool {
	center := m.ctl.Viewport.TimelineStart + m.ctl.Viewport.TimelineWidth/2
	return m.ctl.Viewport.ZoomAt(center, delta)
}

// applyChange funnels absolute viewport mutations through the controller and
// surfaces usage errors in the status bar.
func (m *Model) applyChange(change viewport.Change) {
	if err := m.ctl.Apply(change); err != nil {
		m.setError(err.Error())
		return
	}
	m.rederive()
}

func zero() *timeline.Time {
	t := timeline.Time(0)
	return &t
}

package viewport

import "tableflip.dev/timescope/pkg/timeline"

// Playhead tracks the "current time" marker. Speed is time units per
// wall-clock second. ViewportFollow scrolls the window itself, independently
// of whether the marker is advancing.
type Playhead struct {
	Time           timeline.Time
	Playing        bool
	Speed          float64
	ViewportFollow bool
}

// StepResult describes what a frame step changed, so the caller redraws only
// what it has to.
type StepResult int

const (
	// StepNone means nothing moved this frame.
	StepNone StepResult = iota
	// StepPlayhead means only the playhead time changed; the caller should
	// recompute the marker position and redraw only if the pixel moved.
	StepPlayhead
	// StepViewport means the window itself scrolled and a full redraw is
	// needed.
	StepViewport
)

// Step advances the playhead and, when following, the window, by dt seconds
// of wall clock. The window follows only while the playhead is disabled or
// still inside [DrawTimeStart, DrawTimeEnd]; once the marker escapes the
// window the scroll stops rather than chase it forever.
func (p *Playhead) Step(v *Viewport, playheadEnabled bool, dt float64) StepResult {
	moved := StepNone

	if playheadEnabled && p.Playing {
		p.Time += timeline.Time(p.Speed * dt)
		moved = StepPlayhead
	}

	if p.ViewportFollow {
		inWindow := p.Time >= v.DrawTimeStart && p.Time <= v.DrawTimeEnd
		if !playheadEnabled || inWindow {
			delta := timeline.Time(p.Speed * dt)
			v.DrawTimeStart += delta
			v.DrawTimeEnd += delta
			return StepViewport
		}
	}

	return moved
}

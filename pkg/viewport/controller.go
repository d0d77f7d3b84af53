package viewport

import (
	"errors"

	"tableflip.dev/timescope/pkg/timeline"
)

// ErrPlayheadDisabled is returned when a Change touches playhead fields but
// the controller was built without the playhead feature.
var ErrPlayheadDisabled = errors.New("viewport: playhead feature is disabled")

// Change is an absolute viewport mutation. Every field is optional; nil
// fields leave their target untouched.
type Change struct {
	Timestamp    *timeline.Time
	Zoom         *float64
	PlayheadTime *timeline.Time
	PlayPlayhead *bool
	PlayViewport *bool
	PlaySpeed    *float64
}

func (c Change) touchesPlayhead() bool {
	return c.PlayheadTime != nil || c.PlayPlayhead != nil || c.PlaySpeed != nil
}

// Controller owns the viewport window and playhead for one view.
type Controller struct {
	Viewport Viewport
	Playhead Playhead

	playheadEnabled bool
}

// NewController builds a controller for a window of baseRange time units.
// drawPlayhead enables the playhead feature; without it any Change touching
// playhead fields is rejected.
func NewController(baseRange timeline.Time, timelineStart, timelineWidth float64, drawPlayhead bool) *Controller {
	return &Controller{
		Viewport:        New(baseRange, timelineStart, timelineWidth),
		Playhead:        Playhead{Speed: 1},
		playheadEnabled: drawPlayhead,
	}
}

// PlayheadEnabled reports whether the playhead feature was enabled at
// construction.
func (c *Controller) PlayheadEnabled() bool { return c.playheadEnabled }

// Apply applies every present field of the change. Playhead fields require
// the playhead feature; the check happens before any field is applied so a
// rejected change leaves no partial state behind.
func (c *Controller) Apply(change Change) error {
	if change.touchesPlayhead() && !c.playheadEnabled {
		return ErrPlayheadDisabled
	}

	if change.Timestamp != nil {
		c.Viewport.JumpTo(*change.Timestamp)
	}
	if change.Zoom != nil {
		c.Viewport.SetZoom(*change.Zoom)
	}
	if change.PlayheadTime != nil {
		t := *change.PlayheadTime
		if t < 0 {
			t = 0
		}
		c.Playhead.Time = t
	}
	if change.PlayPlayhead != nil {
		c.Playhead.Playing = *change.PlayPlayhead
	}
	if change.PlayViewport != nil {
		c.Playhead.ViewportFollow = *change.PlayViewport
	}
	if change.PlaySpeed != nil {
		c.Playhead.Speed = *change.PlaySpeed
	}
	return nil
}

// Step advances one frame. See Playhead.Step.
func (c *Controller) Step(dt float64) StepResult {
	return c.Playhead.Step(&c.Viewport, c.playheadEnabled, dt)
}

// PlayheadX returns the playhead's pixel position under the current window.
func (c *Controller) PlayheadX() float64 {
	return c.Viewport.TimeToX(c.Playhead.Time)
}

package viewport

import (
	"errors"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func TestApplyRejectsPlayheadFieldsWhenDisabled(t *testing.T) {
	c := NewController(20, 250, 750, false)

	err := c.Apply(Change{Timestamp: ptr(5.0), PlaySpeed: ptr(2.0)})
	if !errors.Is(err, ErrPlayheadDisabled) {
		t.Fatalf("expected ErrPlayheadDisabled, got %v", err)
	}
	// The rejected change must not have applied its viewport half either.
	if c.Viewport.DrawTimeStart != 0 {
		t.Fatalf("rejected change leaked partial state: start=%v", c.Viewport.DrawTimeStart)
	}

	if err := c.Apply(Change{Timestamp: ptr(5.0), Zoom: ptr(200.0)}); err != nil {
		t.Fatalf("viewport-only change should apply: %v", err)
	}
	if c.Viewport.DrawTimeStart != 5 {
		t.Fatalf("expected start 5, got %v", c.Viewport.DrawTimeStart)
	}
	if c.Viewport.Range() != 40 {
		t.Fatalf("zoom 200%% of base 20 should give range 40, got %v", c.Viewport.Range())
	}
}

func TestApplyPlayheadFields(t *testing.T) {
	c := NewController(20, 250, 750, true)

	err := c.Apply(Change{
		PlayheadTime: ptr(7.5),
		PlayPlayhead: ptr(true),
		PlayViewport: ptr(true),
		PlaySpeed:    ptr(2.0),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Playhead.Time != 7.5 || !c.Playhead.Playing || !c.Playhead.ViewportFollow || c.Playhead.Speed != 2 {
		t.Fatalf("playhead fields not applied: %+v", c.Playhead)
	}
}

func TestStepAdvancesPlayhead(t *testing.T) {
	c := NewController(20, 250, 750, true)
	c.Playhead.Playing = true
	c.Playhead.Speed = 2

	if got := c.Step(0.5); got != StepPlayhead {
		t.Fatalf("expected StepPlayhead, got %v", got)
	}
	if c.Playhead.Time != 1 {
		t.Fatalf("expected playhead at 1, got %v", c.Playhead.Time)
	}
	if c.Viewport.DrawTimeStart != 0 {
		t.Fatalf("window must not move without follow, start=%v", c.Viewport.DrawTimeStart)
	}
}

func TestStepFollowScrollsWindowWhilePlayheadVisible(t *testing.T) {
	c := NewController(20, 250, 750, true)
	c.Playhead.Playing = true
	c.Playhead.Speed = 4
	c.Playhead.ViewportFollow = true

	if got := c.Step(0.25); got != StepViewport {
		t.Fatalf("expected StepViewport, got %v", got)
	}
	if c.Viewport.DrawTimeStart != 1 || c.Viewport.DrawTimeEnd != 21 {
		t.Fatalf("expected window [1,21), got [%v,%v)", c.Viewport.DrawTimeStart, c.Viewport.DrawTimeEnd)
	}
}

func TestStepFollowStopsOncePlayheadLeavesWindow(t *testing.T) {
	c := NewController(20, 250, 750, true)
	c.Playhead.Playing = true
	c.Playhead.Speed = 1
	c.Playhead.ViewportFollow = true
	c.Playhead.Time = 100 // far past the window

	if got := c.Step(0.1); got != StepPlayhead {
		t.Fatalf("follow should yield to the escaped playhead, got %v", got)
	}
	if c.Viewport.DrawTimeStart != 0 {
		t.Fatalf("window must not scroll, start=%v", c.Viewport.DrawTimeStart)
	}
}

func TestStepFollowWithoutPlayheadFeature(t *testing.T) {
	c := NewController(20, 250, 750, false)
	c.Playhead.Speed = 2
	c.Playhead.ViewportFollow = true

	if got := c.Step(0.5); got != StepViewport {
		t.Fatalf("follow alone should still scroll, got %v", got)
	}
	if c.Playhead.Time != 0 {
		t.Fatalf("playhead must not advance when the feature is off, got %v", c.Playhead.Time)
	}
	if c.Viewport.DrawTimeStart != 1 {
		t.Fatalf("expected window start 1, got %v", c.Viewport.DrawTimeStart)
	}
}

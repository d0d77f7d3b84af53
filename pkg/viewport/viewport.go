// Package viewport owns the visible time window: the time-to-pixel mapping,
// pan and zoom gestures, and the playhead stepper that drives per-frame
// updates. Everything here is pure state; rendering sits on top.
package viewport

import (
	"math"

	"tableflip.dev/timescope/pkg/timeline"
)

const (
	// OffscreenLeft is returned by TimeToX for times before the visible
	// window. It is below any drawable x, including the label gutter.
	OffscreenLeft = -1.0

	// NotOverTimeline is returned by XToTime and XRatio for x positions
	// outside the drawable band.
	NotOverTimeline = -1.0

	// DefaultZoom is the zoom percentage at which the window shows exactly
	// its base range.
	DefaultZoom = 100.0

	// wheelZoomFactor is the multiplicative zoom change per wheel step.
	// Terminal wheels deliver one step per notch, so this is coarser than a
	// pixel-delta wheel would want.
	wheelZoomFactor = 1.15
)

// Viewport is the visible window [DrawTimeStart, DrawTimeEnd) mapped onto the
// drawable pixel band [TimelineStart, TimelineStart+TimelineWidth).
type Viewport struct {
	DrawTimeStart timeline.Time
	DrawTimeEnd   timeline.Time

	// Zoom is a percentage; 100 means the window spans BaseRange.
	Zoom      float64
	BaseRange timeline.Time

	// TimelineStart is the left edge of the drawable band (the label gutter
	// sits to its left); TimelineWidth is the band's width. Both in pixels.
	TimelineStart float64
	TimelineWidth float64
}

// New returns a viewport showing [0, baseRange) at default zoom.
func New(baseRange timeline.Time, timelineStart, timelineWidth float64) Viewport {
	return Viewport{
		DrawTimeStart: 0,
		DrawTimeEnd:   baseRange,
		Zoom:          DefaultZoom,
		BaseRange:     baseRange,
		TimelineStart: timelineStart,
		TimelineWidth: timelineWidth,
	}
}

// Range returns the width of the visible window in time units.
func (v Viewport) Range() timeline.Time {
	return v.DrawTimeEnd - v.DrawTimeStart
}

// ScaledRange is the window width implied by the current zoom.
func (v Viewport) ScaledRange() timeline.Time {
	return v.BaseRange * v.Zoom / DefaultZoom
}

// PixelsPerUnit is the horizontal scale of the current window.
func (v Viewport) PixelsPerUnit() float64 {
	return v.TimelineWidth / float64(v.Range())
}

// TimeToX maps a time to a pixel x position. Times before the window map to
// OffscreenLeft; times after it clamp to the right edge of the band.
func (v Viewport) TimeToX(t timeline.Time) float64 {
	if t < v.DrawTimeStart {
		return OffscreenLeft
	}
	if t > v.DrawTimeEnd {
		return v.TimelineStart + v.TimelineWidth
	}
	return v.TimelineStart + float64(t-v.DrawTimeStart)/float64(v.Range())*v.TimelineWidth
}

// XToTime maps a pixel x position back to a time, or NotOverTimeline when x
// is outside the drawable band.
func (v Viewport) XToTime(x float64) timeline.Time {
	if x < v.TimelineStart || x >= v.TimelineStart+v.TimelineWidth {
		return NotOverTimeline
	}
	return v.DrawTimeStart + timeline.Time((x-v.TimelineStart)/v.TimelineWidth)*v.Range()
}

// XRatio returns the fraction in [0,1) of x across the drawable band, or
// NotOverTimeline when x is outside it.
func (v Viewport) XRatio(x float64) float64 {
	if x < v.TimelineStart || x >= v.TimelineStart+v.TimelineWidth {
		return NotOverTimeline
	}
	return (x - v.TimelineStart) / v.TimelineWidth
}

// PanBy shifts the window by dx pixels worth of time, clamping the start at
// zero. It reports whether the window actually moved; a pan already pinned at
// zero and pushing further left is a no-op.
func (v *Viewport) PanBy(dx float64) bool {
	delta := timeline.Time(dx / v.PixelsPerUnit())
	target := v.DrawTimeStart + delta
	if target < 0 {
		target = 0
	}
	if target == v.DrawTimeStart {
		return false
	}
	width := v.Range()
	v.DrawTimeStart = target
	v.DrawTimeEnd = target + width
	return true
}

// ZoomAt applies wheelDelta zoom steps about the cursor at pixel x. Positive
// delta zooms out, negative zooms in. The time under the cursor stays fixed
// unless the window would start before zero, in which case the whole window
// shifts right to start at zero.
func (v *Viewport) ZoomAt(x float64, wheelDelta float64) bool {
	if wheelDelta == 0 {
		return false
	}
	under := v.XToTime(x)
	ratio := v.XRatio(x)
	if under == NotOverTimeline || ratio == NotOverTimeline {
		return false
	}

	factor := math.Pow(wheelZoomFactor, math.Abs(wheelDelta))
	if wheelDelta > 0 {
		v.Zoom *= factor
	} else {
		v.Zoom /= factor
	}

	scaled := v.ScaledRange()
	start := under - timeline.Time(ratio)*scaled
	if start < 0 {
		start = 0
	}
	v.DrawTimeStart = start
	v.DrawTimeEnd = start + scaled
	return true
}

// JumpTo sets the window start to ts, preserving the current width.
func (v *Viewport) JumpTo(ts timeline.Time) {
	if ts < 0 {
		ts = 0
	}
	width := v.Range()
	v.DrawTimeStart = ts
	v.DrawTimeEnd = ts + width
}

// SetZoom sets an absolute zoom percentage, keeping the window start fixed.
func (v *Viewport) SetZoom(zoom float64) {
	if zoom <= 0 {
		return
	}
	v.Zoom = zoom
	v.DrawTimeEnd = v.DrawTimeStart + v.ScaledRange()
}

// Resize updates the pixel geometry, leaving the time window alone.
func (v *Viewport) Resize(timelineStart, timelineWidth float64) {
	v.TimelineStart = timelineStart
	v.TimelineWidth = timelineWidth
}

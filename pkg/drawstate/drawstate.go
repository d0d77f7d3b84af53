// Package drawstate turns resolved schedules into per-frame screen
// rectangles and the hover index used for pointer hit testing. Derivation is
// stateless per call: object counts are small against the frame budget, so
// recomputing beats carrying a cache between frames.
package drawstate

import (
	"tableflip.dev/timescope/pkg/timeline"
	"tableflip.dev/timescope/pkg/viewport"
)

// Geometry is the vertical and canvas geometry rectangles are derived under.
type Geometry struct {
	// CanvasWidth is the full surface width, used for open-ended instances.
	CanvasWidth float64
	// RowHeight is the height of one layer row.
	RowHeight float64
	// ObjectHeightFraction is the fraction (≤ 1) of the row an object fills.
	ObjectHeightFraction float64
}

// Rect is a derived screen rectangle. Hidden instances carry a degenerate
// zero rect with Visible false.
type Rect struct {
	Left    float64
	Top     float64
	Width   float64
	Height  float64
	Visible bool
}

// Entry is one instance's draw state for the current frame.
type Entry struct {
	Key      timeline.Key
	Layer    string
	Instance timeline.Instance
	Rect     Rect
}

// State is the full draw state for one frame, in deterministic order
// (snapshot generation, then object id, then instance order).
type State struct {
	Entries []Entry
}

// Derive computes draw state for every instance of every object across the
// given snapshots. Generations count non-nil snapshots in order, so the same
// object occurring in a retained past snapshot and the present one yields
// distinct keys, while a lone snapshot always produces generation 0. Nil
// snapshots are skipped.
func Derive(rows timeline.Rows, vp viewport.Viewport, geom Geometry, snapshots ...*timeline.Resolved) State {
	var st State
	gen := -1
	for _, r := range snapshots {
		if r == nil {
			continue
		}
		gen++
		for _, id := range r.ObjectIDs() {
			obj := r.Objects[id]
			row, ok := rows[obj.Layer]
			if !ok {
				continue
			}
			for _, in := range obj.Instances {
				st.Entries = append(st.Entries, Entry{
					Key: timeline.Key{
						ObjectID:   obj.ID,
						InstanceID: in.ID,
						Generation: gen,
					},
					Layer:    obj.Layer,
					Instance: in,
					Rect:     deriveRect(in, row, vp, geom),
				})
			}
		}
	}
	return st
}

func deriveRect(in timeline.Instance, row int, vp viewport.Viewport, geom Geometry) Rect {
	if !showOnTimeline(in, vp) {
		return Rect{}
	}

	px := vp.PixelsPerUnit()

	var width float64
	if !in.Bounded() {
		// Open-ended: full canvas width signals "extends indefinitely".
		width = geom.CanvasWidth
	} else {
		visibleStart := in.Start
		if visibleStart < vp.DrawTimeStart {
			visibleStart = vp.DrawTimeStart
		}
		width = float64(*in.End-visibleStart) * px
		if width < 1 {
			// Presentation floor only; stored instance bounds are untouched.
			width = 1
		}
	}

	left := float64(in.Start-vp.DrawTimeStart) * px
	if left < 0 {
		left = 0
	}
	left += vp.TimelineStart

	return Rect{
		Left:    left,
		Top:     float64(row) * geom.RowHeight,
		Width:   width,
		Height:  geom.RowHeight * geom.ObjectHeightFraction,
		Visible: true,
	}
}

func showOnTimeline(in timeline.Instance, vp viewport.Viewport) bool {
	if in.Start >= vp.DrawTimeEnd {
		return false
	}
	if in.EndOr(timeline.Unbounded) <= vp.DrawTimeStart {
		return false
	}
	return true
}

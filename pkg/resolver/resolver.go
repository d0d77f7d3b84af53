// Package resolver defines the schedule-resolution collaborator. The viewer
// only depends on the interface; the built-in resolver exists so the demo and
// watch paths have something real to call.
package resolver

import (
	"fmt"
	"sort"

	"tableflip.dev/timescope/pkg/timeline"
)

// Options configures one resolution call.
type Options struct {
	// Time is the reference time to resolve from. Instances entirely before
	// it are not part of the result; instances spanning it are clamped so the
	// result starts exactly at the reference, which is what lets the caller
	// stitch it against a retained schedule trimmed to the same seam.
	Time timeline.Time

	// Horizon bounds how far past Time repeating enables are expanded.
	// Zero means DefaultHorizon.
	Horizon timeline.Time
}

// DefaultHorizon is the repeat-expansion window when none is given.
const DefaultHorizon timeline.Time = 1000

// Resolver turns declarative objects into a resolved schedule. Failures
// propagate to the caller unmodified; the viewer adds nothing to them.
type Resolver interface {
	Resolve(objects []timeline.Object, opts Options) (*timeline.Resolved, error)
}

// Basic is the built-in resolver: every enable condition becomes a concrete
// window, repeating enables are expanded up to the horizon.
type Basic struct{}

var _ Resolver = Basic{}

// Resolve implements Resolver.
func (Basic) Resolve(objects []timeline.Object, opts Options) (*timeline.Resolved, error) {
	horizon := opts.Horizon
	if horizon == 0 {
		horizon = DefaultHorizon
	}
	limit := opts.Time + horizon

	out := &timeline.Resolved{
		Objects: make(map[string]timeline.ResolvedObject, len(objects)),
		Layers:  map[string]any{},
	}

	for _, obj := range objects {
		if obj.ID == "" {
			return nil, fmt.Errorf("resolver: object without id on layer %q", obj.Layer)
		}
		if _, dup := out.Objects[obj.ID]; dup {
			return nil, fmt.Errorf("resolver: duplicate object id %q", obj.ID)
		}

		var instances []timeline.Instance
		for _, en := range obj.Enable {
			instances = append(instances, expand(en, limit)...)
		}
		sort.Slice(instances, func(a, b int) bool {
			return instances[a].Start < instances[b].Start
		})
		for i := range instances {
			instances[i].ID = fmt.Sprintf("%d", i)
		}

		ro := timeline.ResolvedObject{
			ID:        obj.ID,
			Layer:     obj.Layer,
			Enable:    obj.Enable,
			Content:   obj.Content,
			Instances: instances,
		}
		out.Objects[obj.ID] = ro
		if obj.Layer != "" {
			out.Layers[obj.Layer] = nil
		}
	}

	trimmed := timeline.Trim(out, timeline.BoundsFrom(opts.Time))
	return trimmed, nil
}

// expand turns one enable condition into concrete windows up to limit.
func expand(en timeline.Enable, limit timeline.Time) []timeline.Instance {
	end := func(start timeline.Time) *timeline.Time {
		switch {
		case en.End != nil:
			offset := *en.End - en.Start
			return timeline.EndAt(start + offset)
		case en.Duration != nil:
			return timeline.EndAt(start + *en.Duration)
		default:
			return nil
		}
	}

	if en.Repeat <= 0 {
		return []timeline.Instance{{Start: en.Start, End: end(en.Start)}}
	}

	var out []timeline.Instance
	for start := en.Start; start < limit; start += en.Repeat {
		e := end(start)
		if e != nil && *e > start+en.Repeat {
			// Overlapping repeats collapse to the repeat interval.
			e = timeline.EndAt(start + en.Repeat)
		}
		out = append(out, timeline.Instance{Start: start, End: e})
		if e == nil {
			break
		}
	}
	return out
}

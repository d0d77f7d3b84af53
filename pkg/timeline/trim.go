package timeline

// Bounds limits a snapshot to a sub-range of the time axis. A nil field means
// that side is unbounded.
type Bounds struct {
	Start *Time
	End   *Time
}

// BoundsFrom returns bounds that clip everything before t.
func BoundsFrom(t Time) Bounds { return Bounds{Start: EndAt(t)} }

// BoundsUntil returns bounds that clip everything at or after t.
func BoundsUntil(t Time) Bounds { return Bounds{End: EndAt(t)} }

// Trim returns a new snapshot containing only the portions of r's instances
// that fall inside bounds. Instances are clamped to the bounds; anything left
// with a non-positive duration is dropped. Objects that end up with no
// instances are kept so merge can still match their definitions, but their
// instance list is empty. The input snapshot is never modified.
func Trim(r *Resolved, bounds Bounds) *Resolved {
	out := &Resolved{
		Objects:    make(map[string]ResolvedObject, len(r.Objects)),
		Layers:     r.Layers,
		Classes:    r.Classes,
		Statistics: r.Statistics,
		Options:    r.Options,
	}

	for id, obj := range r.Objects {
		kept := make([]Instance, 0, len(obj.Instances))
		for _, in := range obj.Instances {
			clamped, ok := clamp(in, bounds)
			if !ok {
				continue
			}
			kept = append(kept, clamped)
		}
		obj.Instances = kept
		out.Objects[id] = obj
	}
	return out
}

func clamp(in Instance, bounds Bounds) (Instance, bool) {
	if bounds.Start != nil {
		if in.EndOr(Unbounded) <= *bounds.Start {
			return Instance{}, false
		}
		if in.Start < *bounds.Start {
			in.Start = *bounds.Start
		}
	}
	if bounds.End != nil {
		if in.Start >= *bounds.End {
			return Instance{}, false
		}
		if in.End == nil || *in.End > *bounds.End {
			in.End = EndAt(*bounds.End)
		}
	}
	if in.End != nil && in.Start >= *in.End {
		// Degenerate after clamping, silently dropped.
		return Instance{}, false
	}
	return in, true
}

package timeline

import (
	"reflect"
	"sort"
)

// MergeDiagnostic reports an object that could not be stitched across the
// seam because its definition changed between resolutions. This is
// best-effort stitching, not an error: both sides keep their instances.
type MergeDiagnostic struct {
	ObjectID string
	Reason   string
}

func (d MergeDiagnostic) String() string {
	return "merge skipped " + d.ObjectID + ": " + d.Reason
}

// Merge stitches a retained past snapshot with a freshly resolved present
// one. For every object id present in both, and whose definitions (with the
// resolved instances stripped out) are structurally equal, a past instance
// that ends exactly where a present instance starts is the same occurrence
// split by the resolution boundary: the present instance is widened to the
// past start and the past instance is dropped.
//
// The returned snapshot is the stitched present; the second return value is
// the past snapshot with all stitched-away instances removed, so the caller
// can keep displaying what precedes the seam. Neither input is modified.
func Merge(past, present *Resolved) (*Resolved, *Resolved, []MergeDiagnostic) {
	var diags []MergeDiagnostic

	mergedPresent := cloneObjects(present)
	remainingPast := cloneObjects(past)

	for _, id := range past.ObjectIDs() {
		pastObj := remainingPast.Objects[id]
		presObj, ok := mergedPresent.Objects[id]
		if !ok {
			continue
		}
		if !sameDefinition(pastObj, presObj) {
			diags = append(diags, MergeDiagnostic{
				ObjectID: id,
				Reason:   "definition changed across the seam",
			})
			continue
		}

		keptPast := make([]Instance, 0, len(pastObj.Instances))
		for _, pi := range pastObj.Instances {
			stitched := false
			if pi.End != nil {
				for j, ci := range presObj.Instances {
					if *pi.End == ci.Start {
						ci.Start = pi.Start
						presObj.Instances[j] = ci
						stitched = true
						break
					}
				}
			}
			if !stitched {
				keptPast = append(keptPast, pi)
			}
		}
		pastObj.Instances = keptPast

		sort.Slice(presObj.Instances, func(a, b int) bool {
			return presObj.Instances[a].Start < presObj.Instances[b].Start
		})

		remainingPast.Objects[id] = pastObj
		mergedPresent.Objects[id] = presObj
	}

	return mergedPresent, remainingPast, diags
}

// sameDefinition compares two resolved objects ignoring their instances.
func sameDefinition(a, b ResolvedObject) bool {
	a.Instances = nil
	b.Instances = nil
	return reflect.DeepEqual(a, b)
}

func cloneObjects(r *Resolved) *Resolved {
	out := &Resolved{
		Objects:    make(map[string]ResolvedObject, len(r.Objects)),
		Layers:     r.Layers,
		Classes:    r.Classes,
		Statistics: r.Statistics,
		Options:    r.Options,
	}
	for id, obj := range r.Objects {
		obj.Instances = append([]Instance(nil), obj.Instances...)
		out.Objects[id] = obj
	}
	return out
}

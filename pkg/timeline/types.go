// Package timeline holds the resolved-schedule data model and the
// trim/merge algebra used to stitch successive resolutions together.
package timeline

import (
	"fmt"
	"math"
	"sort"
)

// Time is a position on the abstract timeline axis. The unit is whatever the
// resolver hands us; the viewer never assumes wall-clock semantics.
type Time = float64

// Unbounded marks the end of an open-ended instance when a concrete value is
// needed for comparisons.
const Unbounded = math.MaxFloat64

// Instance is one concrete occurrence of an object: start inclusive, end
// exclusive. A nil End means the instance never ends.
type Instance struct {
	ID    string `json:"id"`
	Start Time   `json:"start"`
	End   *Time  `json:"end"`
}

// EndOr returns the instance end, or fallback when the instance is open-ended.
func (i Instance) EndOr(fallback Time) Time {
	if i.End == nil {
		return fallback
	}
	return *i.End
}

// Bounded reports whether the instance has a concrete end.
func (i Instance) Bounded() bool { return i.End != nil }

func (i Instance) String() string {
	if i.End == nil {
		return fmt.Sprintf("[%v, ...)", i.Start)
	}
	return fmt.Sprintf("[%v, %v)", i.Start, *i.End)
}

// EndAt returns a pointer suitable for Instance.End.
func EndAt(t Time) *Time {
	return &t
}

// Object is the declarative input handed to the resolver: where the object
// wants to live and under which conditions it is enabled. Content is opaque
// to the viewer.
type Object struct {
	ID      string         `json:"id"`
	Layer   string         `json:"layer"`
	Enable  []Enable       `json:"enable"`
	Content map[string]any `json:"content,omitempty"`
}

// Enable is a single enable condition. Exactly one of End or Duration is
// normally set; both absent means open-ended. Repeat > 0 repeats the window
// every Repeat time units.
type Enable struct {
	Start    Time  `json:"start"`
	End      *Time `json:"end,omitempty"`
	Duration *Time `json:"duration,omitempty"`
	Repeat   Time  `json:"repeat,omitempty"`
}

// ResolvedObject pairs an object with the concrete instances the resolver
// produced for it.
type ResolvedObject struct {
	ID        string         `json:"id"`
	Layer     string         `json:"layer"`
	Enable    []Enable       `json:"enable,omitempty"`
	Content   map[string]any `json:"content,omitempty"`
	Instances []Instance     `json:"instances"`
}

// Resolved is one resolution snapshot. It is treated as immutable once
// produced; Trim and Merge build new snapshots rather than editing in place.
type Resolved struct {
	Objects    map[string]ResolvedObject `json:"objects"`
	Layers     map[string]any            `json:"layers"`
	Classes    map[string]any            `json:"classes,omitempty"`
	Statistics map[string]any            `json:"statistics,omitempty"`
	Options    map[string]any            `json:"options,omitempty"`
}

// Key identifies a drawn instance without the delimited-string encoding the
// draw state would otherwise have to parse back apart. Generation
// distinguishes instances that came from different retained snapshots.
type Key struct {
	ObjectID   string
	InstanceID string
	Generation int
}

func (k Key) String() string {
	if k.Generation == 0 {
		return fmt.Sprintf("timelineObject:%s:%s", k.ObjectID, k.InstanceID)
	}
	return fmt.Sprintf("timelineObject:%d:%s:%s", k.Generation, k.ObjectID, k.InstanceID)
}

// ObjectIDs returns the snapshot's object ids in sorted order. Iteration over
// the Objects map is randomized; every derivation that feeds the screen goes
// through this instead.
func (r *Resolved) ObjectIDs() []string {
	ids := make([]string, 0, len(r.Objects))
	for id := range r.Objects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

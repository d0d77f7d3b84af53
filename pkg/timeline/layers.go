package timeline

import "sort"

// Rows maps layer names to their row index on screen. Indices are assigned in
// lexicographic layer order and are stable only within one rebuild.
type Rows map[string]int

// BuildRows collects the distinct layer names referenced by the given
// snapshots and assigns row indices in sorted order. Both the Layers mapping
// keys and the layers named by objects count; snapshots may be nil.
func BuildRows(snapshots ...*Resolved) Rows {
	set := map[string]struct{}{}
	for _, r := range snapshots {
		if r == nil {
			continue
		}
		for name := range r.Layers {
			set[name] = struct{}{}
		}
		for _, obj := range r.Objects {
			if obj.Layer != "" {
				set[obj.Layer] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make(Rows, len(names))
	for i, name := range names {
		rows[name] = i
	}
	return rows
}

// Names returns the layer names in row order.
func (r Rows) Names() []string {
	names := make([]string, len(r))
	for name, i := range r {
		names[i] = name
	}
	return names
}

// Equal reports whether two row mappings are structurally identical. The TUI
// uses this to decide whether row geometry has to be recomputed; comparing
// beats rebuilding every frame.
func (r Rows) Equal(other Rows) bool {
	if len(r) != len(other) {
		return false
	}
	for name, i := range r {
		if j, ok := other[name]; !ok || i != j {
			return false
		}
	}
	return true
}

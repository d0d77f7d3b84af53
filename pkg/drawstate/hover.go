package drawstate

import (
	"sort"

	"tableflip.dev/timescope/pkg/timeline"
)

// Span is one visible rectangle's horizontal extent on its row.
type Span struct {
	StartX float64
	EndX   float64
	Entry  Entry
}

// Index is the per-layer hover index, rebuilt with every derivation.
type Index struct {
	rows      timeline.Rows
	rowHeight float64
	buckets   map[int][]Span
}

// BuildIndex collects every visible entry of st into its layer's bucket,
// ordered by start position.
func BuildIndex(st State, rows timeline.Rows, rowHeight float64) *Index {
	idx := &Index{
		rows:      rows,
		rowHeight: rowHeight,
		buckets:   map[int][]Span{},
	}
	for _, e := range st.Entries {
		if !e.Rect.Visible {
			continue
		}
		row, ok := rows[e.Layer]
		if !ok {
			continue
		}
		idx.buckets[row] = append(idx.buckets[row], Span{
			StartX: e.Rect.Left,
			EndX:   e.Rect.Left + e.Rect.Width,
			Entry:  e,
		})
	}
	for row := range idx.buckets {
		bucket := idx.buckets[row]
		sort.Slice(bucket, func(a, b int) bool { return bucket[a].StartX < bucket[b].StartX })
	}
	return idx
}

// Hit returns the entry under the pointer, if any. The row comes from the
// vertical position; the row's bucket is scanned linearly.
func (idx *Index) Hit(x, y float64) (Entry, bool) {
	if idx.rowHeight <= 0 || y < 0 {
		return Entry{}, false
	}
	row := int(y / idx.rowHeight)
	if row >= len(idx.rows) {
		return Entry{}, false
	}
	for _, span := range idx.buckets[row] {
		if span.StartX <= x && x <= span.EndX {
			return span.Entry, true
		}
	}
	return Entry{}, false
}

// Transition describes a hover state change.
type Transition int

const (
	// TransitionNone means the hover target did not change.
	TransitionNone Transition = iota
	// TransitionEnter means the pointer entered a rectangle.
	TransitionEnter
	// TransitionLeave means the pointer left all rectangles.
	TransitionLeave
)

// Tracker debounces hover transitions: staying inside the same rectangle
// never re-signals, and only leaving all rectangles signals a clear.
type Tracker struct {
	last *timeline.Key
}

// Move feeds a pointer position to the tracker and reports the transition.
// The returned entry is meaningful only for TransitionEnter.
func (t *Tracker) Move(idx *Index, x, y float64) (Transition, Entry) {
	entry, ok := idx.Hit(x, y)
	if !ok {
		if t.last != nil {
			t.last = nil
			return TransitionLeave, Entry{}
		}
		return TransitionNone, Entry{}
	}
	if t.last != nil && *t.last == entry.Key {
		return TransitionNone, entry
	}
	key := entry.Key
	t.last = &key
	return TransitionEnter, entry
}

// Clear forgets the current hover target without signaling.
func (t *Tracker) Clear() { t.last = nil }

// Current returns the key of the rectangle the pointer is in, if any.
func (t *Tracker) Current() (timeline.Key, bool) {
	if t.last == nil {
		return timeline.Key{}, false
	}
	return *t.last, true
}

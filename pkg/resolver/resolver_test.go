package resolver

import (
	"testing"

	"tableflip.dev/timescope/pkg/timeline"
)

func TestResolveSimpleWindow(t *testing.T) {
	objs := []timeline.Object{{
		ID:    "a",
		Layer: "L1",
		Enable: []timeline.Enable{
			{Start: 5, Duration: timeline.EndAt(10)},
		},
	}}

	r, err := Basic{}.Resolve(objs, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := r.Objects["a"].Instances
	if len(got) != 1 {
		t.Fatalf("expected one instance, got %v", got)
	}
	if got[0].Start != 5 || *got[0].End != 15 {
		t.Fatalf("expected [5,15), got %v", got[0])
	}
	if _, ok := r.Layers["L1"]; !ok {
		t.Fatalf("layer L1 missing from snapshot")
	}
}

func TestResolveClampsAtReferenceTime(t *testing.T) {
	objs := []timeline.Object{{
		ID:    "a",
		Layer: "L1",
		Enable: []timeline.Enable{
			{Start: 0, End: timeline.EndAt(10)},  // spans the reference
			{Start: 20, End: timeline.EndAt(30)}, // after it
		},
	}}

	r, err := Basic{}.Resolve(objs, Options{Time: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := r.Objects["a"].Instances
	if len(got) != 2 {
		t.Fatalf("expected two instances, got %v", got)
	}
	if got[0].Start != 5 {
		t.Fatalf("spanning instance should clamp to the reference, got %v", got[0])
	}
	if got[1].Start != 20 {
		t.Fatalf("later instance should be untouched, got %v", got[1])
	}
}

func TestResolveExpandsRepeats(t *testing.T) {
	objs := []timeline.Object{{
		ID:    "tick",
		Layer: "L1",
		Enable: []timeline.Enable{
			{Start: 0, Duration: timeline.EndAt(1), Repeat: 10},
		},
	}}

	r, err := Basic{}.Resolve(objs, Options{Horizon: 35})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := r.Objects["tick"].Instances
	if len(got) != 4 {
		t.Fatalf("expected 4 repetitions inside the horizon, got %v", got)
	}
	for i, in := range got {
		if in.Start != timeline.Time(i*10) {
			t.Fatalf("repetition %d should start at %d, got %v", i, i*10, in)
		}
	}
}

func TestResolveOpenEnded(t *testing.T) {
	objs := []timeline.Object{{
		ID:     "bg",
		Layer:  "L0",
		Enable: []timeline.Enable{{Start: 2}},
	}}

	r, err := Basic{}.Resolve(objs, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := r.Objects["bg"].Instances
	if len(got) != 1 || got[0].End != nil {
		t.Fatalf("expected one open-ended instance, got %v", got)
	}
}

func TestResolveRejectsDuplicateIDs(t *testing.T) {
	objs := []timeline.Object{
		{ID: "a", Layer: "L1"},
		{ID: "a", Layer: "L2"},
	}
	if _, err := (Basic{}).Resolve(objs, Options{}); err == nil {
		t.Fatalf("expected an error for duplicate object ids")
	}
}

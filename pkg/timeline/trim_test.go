package timeline

import "testing"

func snapshot(objs ...ResolvedObject) *Resolved {
	r := &Resolved{
		Objects: map[string]ResolvedObject{},
		Layers:  map[string]any{},
	}
	for _, o := range objs {
		r.Objects[o.ID] = o
		if o.Layer != "" {
			r.Layers[o.Layer] = nil
		}
	}
	return r
}

func obj(id, layer string, instances ...Instance) ResolvedObject {
	return ResolvedObject{ID: id, Layer: layer, Instances: instances}
}

func inst(id string, start Time, end *Time) Instance {
	return Instance{ID: id, Start: start, End: end}
}

func TestTrimDropsInstancesBeforeStart(t *testing.T) {
	r := snapshot(obj("a", "L1",
		inst("i0", 0, EndAt(5)),
		inst("i1", 5, EndAt(10)),
		inst("i2", 12, EndAt(20)),
	))

	got := Trim(r, BoundsFrom(10))

	kept := got.Objects["a"].Instances
	if len(kept) != 1 {
		t.Fatalf("expected 1 surviving instance, got %d: %v", len(kept), kept)
	}
	if kept[0].ID != "i2" || kept[0].Start != 12 {
		t.Fatalf("unexpected survivor %v", kept[0])
	}
	for _, in := range kept {
		if in.EndOr(Unbounded) <= 10 {
			t.Fatalf("instance %v ends at or before the trim start", in)
		}
		if in.Start < 10 {
			t.Fatalf("instance %v starts before the trim start", in)
		}
	}
}

func TestTrimClampsSpanningInstance(t *testing.T) {
	r := snapshot(obj("a", "L1", inst("i0", 0, EndAt(20))))

	got := Trim(r, BoundsFrom(10))

	kept := got.Objects["a"].Instances
	if len(kept) != 1 {
		t.Fatalf("expected the spanning instance to survive, got %v", kept)
	}
	if kept[0].Start != 10 || *kept[0].End != 20 {
		t.Fatalf("expected clamp to [10,20), got %v", kept[0])
	}
	// The input snapshot must be untouched.
	if r.Objects["a"].Instances[0].Start != 0 {
		t.Fatalf("trim mutated its input")
	}
}

func TestTrimEndBoundClampsOpenEnded(t *testing.T) {
	r := snapshot(obj("a", "L1", inst("i0", 5, nil)))

	got := Trim(r, BoundsUntil(15))

	kept := got.Objects["a"].Instances
	if len(kept) != 1 {
		t.Fatalf("expected open-ended instance to survive, got %v", kept)
	}
	if kept[0].End == nil || *kept[0].End != 15 {
		t.Fatalf("expected end clamp to 15, got %v", kept[0])
	}
}

func TestTrimDropsDegenerateResult(t *testing.T) {
	r := snapshot(obj("a", "L1",
		inst("i0", 5, EndAt(10)),
		inst("i1", 15, nil),
	))

	got := Trim(r, Bounds{Start: EndAt(10), End: EndAt(15)})

	if kept := got.Objects["a"].Instances; len(kept) != 0 {
		t.Fatalf("expected everything dropped, got %v", kept)
	}
	// Object survives with an empty instance list so merge can still see it.
	if _, ok := got.Objects["a"]; !ok {
		t.Fatalf("expected the object itself to be retained")
	}
}

func TestBuildRowsSortsLayerNames(t *testing.T) {
	r := snapshot(
		obj("a", "video"),
		obj("b", "audio"),
		obj("c", "graphics"),
	)

	rows := BuildRows(r)

	want := []string{"audio", "graphics", "video"}
	names := rows.Names()
	if len(names) != len(want) {
		t.Fatalf("expected %d layers, got %v", len(want), names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("expected row %d to be %q, got %q", i, name, names[i])
		}
		if rows[name] != i {
			t.Fatalf("expected %q at row %d, got %d", name, i, rows[name])
		}
	}
}

func TestRowsEqualDetectsChange(t *testing.T) {
	a := BuildRows(snapshot(obj("a", "L1"), obj("b", "L2")))
	b := BuildRows(snapshot(obj("a", "L1"), obj("b", "L2")))
	c := BuildRows(snapshot(obj("a", "L1"), obj("b", "L3")))

	if !a.Equal(b) {
		t.Fatalf("identical layer sets should compare equal")
	}
	if a.Equal(c) {
		t.Fatalf("different layer sets should not compare equal")
	}
}

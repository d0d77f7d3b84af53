package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/timescope/pkg/timeline"
)

func TestWatchEmitsOnStoreAndClosesOnCancel(t *testing.T) {
	p := tempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	obj := &timeline.Object{
		ID:     "clock",
		Layer:  "graphics",
		Enable: []timeline.Enable{{Start: 0}},
	}
	if err := p.Store(obj); err != nil {
		t.Fatalf("store: %v", err)
	}

	select {
	case _, ok := <-ch:
		if !ok {
			t.Fatalf("watch channel closed before cancellation")
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("expected a change event after storing an object")
	}

	cancel()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("watch channel should close once the context is cancelled")
		}
	}
}

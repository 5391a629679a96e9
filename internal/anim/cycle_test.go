package anim

import (
	"context"
	"errors"
	"math/rand"
	"testing"
)

func TestRenderCycle_MatchesFrames(t *testing.T) {
	d, err := New(testSettings(5, 5), rand.New(rand.NewSource(7)), quietLogger())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	canvases, err := d.RenderCycle(context.Background(), func() Canvas { return &fakeCanvas{} })
	if err != nil {
		t.Fatalf("render cycle failed: %v", err)
	}
	if len(canvases) != d.Cycle() {
		t.Fatalf("expected %d frames, got %d", d.Cycle(), len(canvases))
	}
	if d.Cursor() != 0 {
		t.Errorf("render cycle moved the cursor to %d", d.Cursor())
	}

	for i, c := range canvases {
		want := &fakeCanvas{}
		d.Frame(want)
		got := c.(*fakeCanvas)
		if got.lines != want.lines || len(got.rects) != len(want.rects) {
			t.Errorf("frame %d: got %d lines %d rects, want %d lines %d rects",
				i, got.lines, len(got.rects), want.lines, len(want.rects))
		}
		if got.clears != 1 {
			t.Errorf("frame %d: expected one clear, got %d", i, got.clears)
		}
	}
}

func TestRenderCycle_Cancelled(t *testing.T) {
	d, err := New(testSettings(3, 3), rand.New(rand.NewSource(1)), quietLogger())
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = d.RenderCycle(ctx, func() Canvas { return &fakeCanvas{} })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

package calib

import (
	"testing"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

func TestIndexSweep(t *testing.T) {
	strip := model.NewFrame(5)
	c := New(IndexSweep, 0.5)

	c.Apply(strip, 0.25)
	if strip.At(0) != model.White {
		t.Fatalf("expected white at 0, got %06x", uint32(strip.At(0)))
	}
	c.Apply(strip, 0.25)
	if c.Step() != 1 {
		t.Fatalf("expected sweep to move after hold, step=%d", c.Step())
	}
	c.Apply(strip, 0.25)
	if strip.At(0) != model.Black || strip.At(1) != model.White {
		t.Fatalf("expected only pixel 1 lit, got %v", strip)
	}
}

func TestIndexSweepHintWaitsForFullPass(t *testing.T) {
	strip := model.NewFrame(3)
	c := New(IndexSweep, 0)
	c.Apply(strip, 0.1)
	if c.CanTransition() {
		t.Fatalf("sweep reported ready after one step")
	}
	c.Apply(strip, 0.1)
	c.Apply(strip, 0.1)
	if !c.CanTransition() {
		t.Fatalf("sweep not ready after a full pass, step=%d", c.Step())
	}
}

func TestRGBChannels(t *testing.T) {
	strip := model.NewFrame(4)
	c := New(RGBTest, 0)
	want := []model.Color{
		model.NewColor(255, 0, 0),
		model.NewColor(0, 255, 0),
		model.NewColor(0, 0, 255),
		model.NewColor(255, 0, 0),
	}
	for i, w := range want {
		c.Apply(strip, 0.05)
		for p := 0; p < strip.Len(); p++ {
			if strip.At(p) != w {
				t.Fatalf("phase %d pixel %d: want %06x got %06x", i, p, uint32(w), uint32(strip.At(p)))
			}
		}
	}
}

func TestChanSweepFadesAlongSegment(t *testing.T) {
	fx, err := Build(15, effect.Params{"kind": "chan_sweep", "segment": 5, "hold_s": 1.0})
	if err != nil {
		t.Fatal(err)
	}
	strip := model.NewFrame(15)
	fx.Apply(strip, 0.1)

	if strip.At(0) != model.NewColor(255, 0, 0) {
		t.Fatalf("expected full red at segment 0 start, got %06x", uint32(strip.At(0)))
	}
	if strip.At(5) != model.NewColor(0, 255, 0) {
		t.Fatalf("expected full green at segment 1 start, got %06x", uint32(strip.At(5)))
	}
	if strip.At(10) != model.NewColor(0, 0, 255) {
		t.Fatalf("expected full blue at segment 2 start, got %06x", uint32(strip.At(10)))
	}

	prev := uint8(255)
	for i := 0; i < 5; i++ {
		r := strip.At(i).R()
		t.Logf("segment 0 x=%d red=%d", i, r)
		if r > prev {
			t.Fatalf("segment not monotonic at %d: %d -> %d", i, prev, r)
		}
		prev = r
	}
	if strip.At(4) != model.Black {
		t.Fatalf("expected black at segment end, got %06x", uint32(strip.At(4)))
	}
}

func TestBuildRejectsNegativeHold(t *testing.T) {
	if _, err := Build(3, effect.Params{"hold_s": -1.0}); err == nil {
		t.Fatalf("expected error for negative hold")
	}
}

package layout

import (
	"errors"
	"fmt"
)

var ErrSegment = errors.New("segment count must be positive")

// Segment is a run of LEDs wired in one direction. Reverse segments are fed
// from their far end.
type Segment struct {
	Count   int  `yaml:"count"`
	Reverse bool `yaml:"reverse"`
}

// Layout maps logical strip positions to positions on the wire. Logical index
// 0 is the first pixel of the first segment as seen by a viewer.
type Layout struct {
	Segments []Segment
}

// Linear is a single forward run of n LEDs.
func Linear(n int) Layout {
	return Layout{Segments: []Segment{{Count: n}}}
}

func (l Layout) Validate() error {
	for i, s := range l.Segments {
		if s.Count <= 0 {
			return fmt.Errorf("segment %d: %w (got %d)", i, ErrSegment, s.Count)
		}
	}
	return nil
}

func (l Layout) Count() int {
	n := 0
	for _, s := range l.Segments {
		n += s.Count
	}
	return n
}

// Index maps logical i -> wire index (0..Count-1). i outside that range panics.
func (l Layout) Index(i int) int {
	base := 0
	for _, s := range l.Segments {
		if i < base+s.Count {
			if s.Reverse {
				return base + s.Count - 1 - (i - base)
			}
			return i
		}
		base += s.Count
	}
	panic(fmt.Sprintf("layout: index %d out of range [0,%d)", i, base))
}

// Table precomputes Index for every logical position.
func (l Layout) Table() []int {
	out := make([]int, l.Count())
	for i := range out {
		out[i] = l.Index(i)
	}
	return out
}

package calib

import (
	"errors"
	"math"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/internal/sequence"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

type Kind string

const (
	IndexSweep Kind = "index_sweep"
	RGBTest    Kind = "rgb_channels"
	ChanSweep  Kind = "chan_sweep"
)

// Calib is a wiring check. IndexSweep lights one pixel at a time, RGBTest
// shows each channel on the whole strip in turn, and ChanSweep gives every
// segment of Segment pixels its own channel, darkening towards its far end.
type Calib struct {
	kind    Kind
	Segment int
	LRGamma float64

	hold *sequence.Timer
	step int
	n    int
}

// New creates a calibration pattern that moves on every hold seconds.
func New(kind Kind, hold float64) *Calib {
	return &Calib{kind: kind, Segment: 10, LRGamma: 1.2, hold: sequence.NewTimer(hold)}
}

func (c *Calib) Kind() Kind { return c.kind }

// Step is the number of times the pattern has moved on.
func (c *Calib) Step() int { return c.step }

func (c *Calib) Reset(model.Strip) {
	c.step = 0
	c.hold.Reset()
}

func (c *Calib) Apply(s model.Strip, dt float64) {
	n := s.Len()
	c.n = n
	s.Fill(model.Black)
	if n == 0 {
		return
	}

	switch c.kind {
	case IndexSweep:
		s.Set(c.step%n, model.White)
	case RGBTest:
		s.Fill(channel(c.step%3, 1))
	case ChanSweep:
		seg := max(c.Segment, 1)
		for i := 0; i < n; i++ {
			panel := i / seg
			lr := 1.0 - math.Pow(norm(i%seg, seg), c.LRGamma)
			s.Set(i, channel(panel%3, lr))
		}
	}

	c.hold.Advance(dt)
	if c.hold.Expired(true) {
		c.step++
	}
}

// CanTransition lets a sweep finish its pass before the program moves on.
func (c *Calib) CanTransition() bool {
	if c.kind != IndexSweep || c.n == 0 {
		return true
	}
	return c.step > 0 && c.step%c.n == 0
}

func channel(ch int, v float64) model.Color {
	b := uint8(math.Round(255 * v))
	switch ch {
	case 0:
		return model.NewColor(b, 0, 0)
	case 1:
		return model.NewColor(0, b, 0)
	default:
		return model.NewColor(0, 0, b)
	}
}

func norm(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// Build reads "kind", "hold_s", "segment" and "lr_gamma".
func Build(_ int, p effect.Params) (effect.Effect, error) {
	hold := p.Float("hold_s", 0.1)
	if hold < 0 {
		return nil, errors.New("hold_s must not be negative")
	}
	c := New(Kind(p.String("kind", string(IndexSweep))), hold)
	c.Segment = p.Int("segment", c.Segment)
	c.LRGamma = p.Float("lr_gamma", c.LRGamma)
	return c, nil
}

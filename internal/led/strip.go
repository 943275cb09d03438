package led

import (
	"fmt"

	"github.com/coreman2200/funtimes-holidaylights/internal/layout"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

// Options shape how the live buffer is encoded for the wire.
type Options struct {
	Layout     layout.Layout
	Brightness float64
	Power      Power
}

// Strip is the live pixel buffer. Effects draw into it in logical order; Show
// remaps, dims and limits a copy of it and hands that to the driver. The
// buffer itself is never altered by Show.
type Strip struct {
	px     model.Frame
	wire   []int
	out    []byte
	opts   Options
	drv    Driver
	frames uint64
}

// NewStrip sizes the buffer from opts.Layout. A brightness outside (0,1] is
// treated as full.
func NewStrip(drv Driver, opts Options) *Strip {
	if opts.Brightness <= 0 || opts.Brightness > 1 {
		opts.Brightness = 1
	}
	n := opts.Layout.Count()
	return &Strip{
		px:   model.NewFrame(n),
		wire: opts.Layout.Table(),
		out:  make([]byte, n*3),
		opts: opts,
		drv:  drv,
	}
}

func (s *Strip) Len() int                 { return len(s.px) }
func (s *Strip) At(i int) model.Color     { return s.px[i] }
func (s *Strip) Set(i int, c model.Color) { s.px[i] = c }
func (s *Strip) Fill(c model.Color)       { s.px.Fill(c) }

// Frames counts successful Show calls.
func (s *Strip) Frames() uint64 { return s.frames }

// Show encodes the buffer and writes it to the driver.
func (s *Strip) Show() error {
	for i, c := range s.px {
		if s.opts.Brightness < 1 {
			c = c.Scale(s.opts.Brightness)
		}
		p := s.wire[i] * 3
		s.out[p], s.out[p+1], s.out[p+2] = c.R(), c.G(), c.B()
	}
	s.opts.Power.Limit(s.out)
	if s.drv == nil {
		return nil
	}
	if err := s.drv.Write(s.out); err != nil {
		return fmt.Errorf("show frame %d: %w", s.frames, err)
	}
	s.frames++
	return nil
}

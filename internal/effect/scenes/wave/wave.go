package wave

import (
	"errors"
	"math"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

// Wave runs a sine brightness envelope along the strip. Brightness swings
// between lo and hi; period is the wavelength in pixels and speed is in waves
// per second. Each time the phase completes a turn the next color takes over.
type Wave struct {
	period, lo, hi, speed float64
	colors                []model.Color

	phase float64
	idx   int
}

func New(period, lo, hi, speed float64, colors []model.Color) *Wave {
	if len(colors) == 0 {
		colors = []model.Color{model.White}
	}
	if period <= 0 {
		period = 1
	}
	return &Wave{
		period: period,
		lo:     lo,
		hi:     hi,
		speed:  speed,
		colors: append([]model.Color(nil), colors...),
	}
}

// Phase is the wave position in turns, in [0,1).
func (w *Wave) Phase() float64 { return w.phase }

func (w *Wave) Color() model.Color { return w.colors[w.idx] }

func (w *Wave) Reset(model.Strip) { w.phase, w.idx = 0, 0 }

// Intensity at pixel i for the current phase.
func (w *Wave) Intensity(i int) float64 {
	x := 2 * math.Pi * (float64(i)/w.period - w.phase)
	return w.lo + (w.hi-w.lo)*(1+math.Sin(x))/2
}

func (w *Wave) Apply(s model.Strip, dt float64) {
	w.phase += w.speed * dt
	turns := math.Floor(w.phase)
	if turns != 0 {
		w.phase -= turns
		w.idx = ((w.idx+int(turns))%len(w.colors) + len(w.colors)) % len(w.colors)
	}
	c := w.colors[w.idx]
	for i := 0; i < s.Len(); i++ {
		s.Set(i, model.Blend(model.Black, c, w.Intensity(i), nil))
	}
}

// Build reads "period", "lo", "hi", "speed" and "colors".
func Build(_ int, p effect.Params) (effect.Effect, error) {
	colors, err := p.Colors("colors", []model.Color{model.NewColor(0x66, 0x11, 0xcc)})
	if err != nil {
		return nil, err
	}
	period := p.Float("period", 12)
	lo, hi := p.Float("lo", 0.5), p.Float("hi", 1)
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	if lo < 0 || hi > 1 || lo > hi {
		return nil, errors.New("need 0 <= lo <= hi <= 1")
	}
	return New(period, lo, hi, p.Float("speed", 0.7), colors), nil
}

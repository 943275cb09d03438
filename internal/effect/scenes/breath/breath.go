package breath

import (
	"errors"
	"math"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/internal/sequence"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

// dim is the brightness under which cutting away is invisible.
const dim = 0.05

// Breath pulses through a list of colors, one breath per color. Each breath
// rises to full brightness and falls back along the same eased ramp.
type Breath struct {
	colors  []model.Color
	env     sequence.Envelope
	period  float64
	radiate bool

	t   float64
	idx int
	lvl float64
}

// New builds a breath of the given period in seconds. With radiate set the
// pulse starts at the centre of the strip and spreads to both ends.
func New(colors []model.Color, period float64, ease string, radiate bool) *Breath {
	if len(colors) == 0 {
		colors = []model.Color{model.White}
	}
	if period <= 0 {
		period = 1
	}
	return &Breath{
		colors:  append([]model.Color(nil), colors...),
		env:     sequence.Ramp(period, 1, ease),
		period:  period,
		radiate: radiate,
	}
}

// Color is the color currently breathing.
func (b *Breath) Color() model.Color { return b.colors[b.idx] }

// Level is the brightness at the centre of the strip.
func (b *Breath) Level() float64 { return b.lvl }

func (b *Breath) Reset(model.Strip) {
	b.t, b.idx, b.lvl = 0, 0, 0
}

func (b *Breath) CanTransition() bool { return b.lvl <= dim }

func (b *Breath) Apply(s model.Strip, dt float64) {
	b.t += dt
	for b.t >= b.period {
		b.t -= b.period
		b.idx = (b.idx + 1) % len(b.colors)
	}
	b.lvl = b.env.Eval(b.t)
	c := b.colors[b.idx]

	if !b.radiate {
		s.Fill(model.Blend(model.Black, c, b.lvl, nil))
		return
	}

	n := s.Len()
	half := float64(n-1) / 2
	for i := 0; i < n; i++ {
		d := 0.0
		if half > 0 {
			d = math.Abs(float64(i)-half) / half
		}
		// outer pixels lag the centre by up to a quarter breath
		t := b.t - d*b.period/4
		if t < 0 {
			t += b.period
		}
		s.Set(i, model.Blend(model.Black, c, b.env.Eval(t), nil))
	}
}

// Build reads "colors", "period_s", "ease" and "radiate".
func Build(_ int, p effect.Params) (effect.Effect, error) {
	colors, err := p.Colors("colors", []model.Color{model.NewColor(255, 0, 0), model.NewColor(0, 255, 0)})
	if err != nil {
		return nil, err
	}
	period := p.Float("period_s", 4)
	if period <= 0 {
		return nil, errors.New("period_s must be positive")
	}
	return New(colors, period, p.String("ease", "smooth"), p.Bool("radiate", false)), nil
}

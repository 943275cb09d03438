package grad

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

// Grad renders a hue gradient along the strip with optional time animation.
// Params:
//   - "speed" (turns per second, default 0): rotates the hue over time
//   - "spread" (turns across the strip, default 1)
//   - "value" (HSV value, default 1)
type Grad struct {
	speed  float64
	spread float64
	value  float64
	t      float64
}

func New(speed, spread, value float64) *Grad {
	return &Grad{speed: speed, spread: spread, value: value}
}

func (g *Grad) Presets() []string { return []string{"Rainbow", "Static", "Narrow"} }

func (g *Grad) ApplyPreset(name string) {
	switch name {
	case "Rainbow":
		g.speed, g.spread = 0.1, 1
	case "Static":
		g.speed = 0
	case "Narrow":
		g.spread = 0.25
	}
}

func (g *Grad) Reset(model.Strip) { g.t = 0 }

func (g *Grad) Apply(s model.Strip, dt float64) {
	g.t += dt
	n := s.Len()
	for i := 0; i < n; i++ {
		turn := float64(i)/float64(n)*g.spread + g.t*g.speed
		hue := math.Mod(turn, 1)
		if hue < 0 {
			hue++
		}
		r, gg, b := colorful.Hsv(hue*360, 1, g.value).Clamped().RGB255()
		s.Set(i, model.NewColor(r, gg, b))
	}
}

func Build(_ int, p effect.Params) (effect.Effect, error) {
	g := New(p.Float("speed", 0), p.Float("spread", 1), p.Float("value", 1))
	if preset := p.String("preset", ""); preset != "" {
		g.ApplyPreset(preset)
	}
	return g, nil
}

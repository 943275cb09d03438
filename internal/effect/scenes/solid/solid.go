package solid

import (
	"math"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

// Solid fills the strip with a single color.
// It supports presets and an optional pulse that modulates brightness.
type Solid struct {
	c       model.Color
	pulseHz float64
	t       float64
}

func New(c model.Color) *Solid { return &Solid{c: c} }

// Pulse makes the brightness swing between half and full at hz cycles per second.
func (s *Solid) Pulse(hz float64) *Solid {
	s.pulseHz = hz
	return s
}

func (s *Solid) Presets() []string { return []string{"Red", "Green", "Blue", "White", "Black"} }

func (s *Solid) ApplyPreset(name string) {
	switch name {
	case "Red":
		s.c = model.NewColor(255, 0, 0)
	case "Green":
		s.c = model.NewColor(0, 255, 0)
	case "Blue":
		s.c = model.NewColor(0, 0, 255)
	case "White":
		s.c = model.White
	case "Black":
		s.c = model.Black
	}
}

func (s *Solid) Reset(model.Strip) { s.t = 0 }

func (s *Solid) Apply(strip model.Strip, dt float64) {
	s.t += dt
	c := s.c
	if s.pulseHz > 0 {
		c = c.Scale(0.5 + 0.5*math.Cos(2*math.Pi*s.pulseHz*s.t))
	}
	strip.Fill(c)
}

// Build reads "color" (or "preset") and "pulse_hz".
func Build(_ int, p effect.Params) (effect.Effect, error) {
	c, err := p.Color("color", model.White)
	if err != nil {
		return nil, err
	}
	s := New(c).Pulse(p.Float("pulse_hz", 0))
	if preset := p.String("preset", ""); preset != "" {
		s.ApplyPreset(preset)
	}
	return s, nil
}

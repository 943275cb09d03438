// Package train has the two moving-segment effects: colored trains of carts
// that run off the end of the strip, and a chase of lit pixels repeated along it.
package train

import (
	"errors"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/internal/sequence"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

// Colors moves count carts of length pixels, gap pixels apart, one pixel per
// step. Once the last cart has left the strip every cart is relaunched from
// the start with a fresh color from the palette.
type Colors struct {
	length, gap, count int
	palette            model.Palette
	step               *sequence.Timer

	carts  []int // head position of each cart; the cart covers [head-length, head)
	colors []model.Color
}

// NewColors moves the carts on every step seconds; a zero step moves them
// once per frame.
func NewColors(length, gap, count int, palette model.Palette, step float64) *Colors {
	return &Colors{
		length:  max(length, 1),
		gap:     max(gap, 0),
		count:   max(count, 1),
		palette: palette,
		step:    sequence.NewTimer(step),
	}
}

func (c *Colors) Reset(model.Strip) {
	c.carts = nil
	c.step.Reset()
}

func (c *Colors) launch() {
	size := c.length + c.gap
	c.carts = make([]int, c.count)
	c.colors = make([]model.Color, c.count)
	for k := range c.carts {
		c.carts[k] = -k * size
		c.colors[k] = c.palette.Next()
	}
}

func (c *Colors) Apply(s model.Strip, dt float64) {
	if c.carts == nil {
		c.launch()
	}
	n := s.Len()
	s.Fill(model.Black)
	for k, head := range c.carts {
		for i := max(0, head-c.length); i < min(head, n); i++ {
			s.Set(i, c.colors[k])
		}
	}

	c.step.Advance(dt)
	if !c.step.Expired(true) {
		return
	}
	for k := range c.carts {
		c.carts[k]++
	}
	if c.carts[len(c.carts)-1] > n+c.length {
		c.launch()
	}
}

// CanTransition is true while no cart is on the strip.
func (c *Colors) CanTransition() bool {
	if c.carts == nil {
		return true
	}
	return c.carts[0] <= 0
}

// Chase lights lit out of every repeat pixels and shifts the pattern by one
// pixel per step.
type Chase struct {
	on   []model.Color
	off  model.Color
	step *sequence.Timer

	cart []bool
}

func NewChase(lit, repeat int, on []model.Color, off model.Color, step float64) (*Chase, error) {
	if repeat <= 0 {
		return nil, errors.New("repeat must be positive")
	}
	if len(on) == 0 {
		on = []model.Color{model.NewColor(255, 0, 0)}
	}
	c := &Chase{on: append([]model.Color(nil), on...), off: off, step: sequence.NewTimer(step)}
	c.cart = make([]bool, repeat)
	for i := range c.cart {
		c.cart[i] = i < lit
	}
	return c, nil
}

func (c *Chase) Apply(s model.Strip, dt float64) {
	repeat := len(c.cart)
	for i := 0; i < s.Len(); i++ {
		if c.cart[i%repeat] {
			s.Set(i, c.on[i%len(c.on)])
		} else {
			s.Set(i, c.off)
		}
	}

	c.step.Advance(dt)
	if c.step.Expired(true) {
		last := c.cart[repeat-1]
		copy(c.cart[1:], c.cart[:repeat-1])
		c.cart[0] = last
	}
}

// BuildColors reads "length", "gap", "count", "colors" (or a rainbow when
// absent) and "step_s".
func BuildColors(n int, p effect.Params) (effect.Effect, error) {
	count := p.Int("count", max(n/10, 1))
	step := p.Float("step_s", 0)
	if step < 0 {
		return nil, errors.New("step_s must not be negative")
	}
	var palette model.Palette = model.NewRainbow(count, p.Int("modulus", 20))
	if _, ok := p["colors"]; ok {
		colors, err := p.Colors("colors", nil)
		if err != nil {
			return nil, err
		}
		palette = model.Cycle(colors...)
	}
	return NewColors(p.Int("length", 3), p.Int("gap", 2), count, palette, step), nil
}

// BuildChase reads "lit", "repeat", "colors", "off" and "step_s".
func BuildChase(_ int, p effect.Params) (effect.Effect, error) {
	on, err := p.Colors("colors", nil)
	if err != nil {
		return nil, err
	}
	off, err := p.Color("off", model.Black)
	if err != nil {
		return nil, err
	}
	step := p.Float("step_s", 0.25)
	if step < 0 {
		return nil, errors.New("step_s must not be negative")
	}
	return NewChase(p.Int("lit", 1), p.Int("repeat", 2), on, off, step)
}

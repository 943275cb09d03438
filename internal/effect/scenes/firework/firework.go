// Package firework animates rockets that climb the strip and burst into
// particles. Rocket and Explosion work on their own; Firework chains them.
package firework

import (
	"errors"
	"math"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/internal/sequence"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

// canvas keeps the last frame and dims it over time so moving lights leave a
// trail. Lights are merged with BlendMax.
type canvas struct {
	f    model.Frame
	keep float64 // share of brightness left after one second
}

func (c *canvas) ensure(n int) {
	if len(c.f) != n {
		c.f = model.NewFrame(n)
	}
}

func (c *canvas) fade(dt float64) {
	k := math.Pow(c.keep, dt)
	for i, col := range c.f {
		c.f[i] = model.NewColor(uint8(float64(col.R())*k), uint8(float64(col.G())*k), uint8(float64(col.B())*k))
	}
}

func (c *canvas) plot(pos float64, col model.Color) {
	i := int(math.Round(pos))
	if i >= 0 && i < len(c.f) {
		c.f[i] = model.BlendMax(c.f[i], col)
	}
}

func (c *canvas) dark() bool {
	for _, col := range c.f {
		if col != model.Black {
			return false
		}
	}
	return true
}

func (c *canvas) flush(s model.Strip) {
	for i := range c.f {
		s.Set(i, c.f[i])
	}
}

func (c *canvas) clear() { c.f.Fill(model.Black) }

// Rocket climbs from pixel 0 to Height (a share of the strip) in Rise seconds,
// slowing down under constant gravity.
type Rocket struct {
	Color  model.Color
	Height float64
	Rise   float64

	pos, vel, g float64
	launched    bool
	done        bool

	cv canvas
}

func NewRocket(c model.Color, height, rise float64) *Rocket {
	if rise <= 0 {
		rise = 1
	}
	return &Rocket{Color: c, Height: height, Rise: rise, cv: canvas{keep: 0.05}}
}

func (r *Rocket) launch(n int) {
	h := r.Height * float64(max(n-1, 0))
	r.g = 2 * h / (r.Rise * r.Rise)
	r.vel = 2 * h / r.Rise
	r.pos = 0
	r.launched, r.done = true, false
}

func (r *Rocket) advance(dt float64) {
	r.pos += r.vel*dt - r.g*dt*dt/2
	r.vel -= r.g * dt
	if r.vel <= 0 {
		r.done = true
	}
}

// Pos is the rocket head position in pixels.
func (r *Rocket) Pos() float64 { return r.pos }

func (r *Rocket) Reset(model.Strip) {
	r.launched, r.done = false, false
	r.cv.clear()
}

func (r *Rocket) Apply(s model.Strip, dt float64) {
	r.cv.ensure(s.Len())
	if !r.launched {
		r.launch(s.Len())
	}
	r.cv.fade(dt)
	r.advance(dt)
	r.cv.plot(r.pos, r.Color)
	r.cv.flush(s)
	if r.done {
		r.launched = false
	}
}

type particle struct {
	pos, vel float64
	color    model.Color
}

// Explosion throws Count particles both ways from a centre. Particle speed
// decays by Drag per second and the burst fades out over Life seconds.
type Explosion struct {
	Colors []model.Color
	Count  int
	Speed  float64
	Drag   float64
	Life   float64

	center float64
	parts  []particle
	age    float64

	cv canvas
}

func NewExplosion(colors []model.Color, count int, speed float64) *Explosion {
	if len(colors) == 0 {
		colors = []model.Color{model.White}
	}
	return &Explosion{
		Colors: append([]model.Color(nil), colors...),
		Count:  max(count, 1),
		Speed:  speed,
		Drag:   1.5,
		Life:   1.5,
		center: -1,
		cv:     canvas{keep: 0.02},
	}
}

// At places the next burst at pos instead of the middle of the strip.
func (e *Explosion) At(pos float64) { e.center = pos }

func (e *Explosion) explode() {
	half := (e.Count + 1) / 2
	e.parts = make([]particle, e.Count)
	for k := range e.parts {
		dir := 1.0
		if k%2 == 1 {
			dir = -1
		}
		e.parts[k] = particle{
			pos:   e.center,
			vel:   dir * e.Speed * float64(k/2+1) / float64(half),
			color: e.Colors[k%len(e.Colors)],
		}
	}
	e.age = 0
}

func (e *Explosion) advance(dt float64) {
	e.age += dt
	damp := math.Exp(-e.Drag * dt)
	for k := range e.parts {
		e.parts[k].pos += e.parts[k].vel * dt
		e.parts[k].vel *= damp
	}
}

func (e *Explosion) draw(cv *canvas) {
	b := 1 - model.Cubic(min(e.age/e.Life, 1))
	for _, p := range e.parts {
		cv.plot(p.pos, model.Blend(model.Black, p.color, b, nil))
	}
}

func (e *Explosion) done() bool { return e.age >= e.Life }

func (e *Explosion) Reset(model.Strip) {
	e.parts = nil
	e.cv.clear()
}

func (e *Explosion) Apply(s model.Strip, dt float64) {
	e.cv.ensure(s.Len())
	if e.parts == nil {
		if e.center < 0 {
			e.center = float64(s.Len()-1) / 2
		}
		e.explode()
	}
	e.cv.fade(dt)
	e.advance(dt)
	e.draw(&e.cv)
	e.cv.flush(s)
	if e.done() {
		e.parts = nil
	}
}

type Phase int

const (
	Ascend Phase = iota
	Burst
	Decay
)

func (p Phase) String() string {
	switch p {
	case Ascend:
		return "ascend"
	case Burst:
		return "burst"
	default:
		return "decay"
	}
}

// Firework launches a rocket, bursts it at the apex in the rocket's color and
// waits for the sky to go dark (or Wait seconds) before the next launch.
type Firework struct {
	palette model.Palette
	rocket  *Rocket
	burst   *Explosion
	wait    *sequence.Timer

	phase Phase
	cv    canvas
}

func New(colors []model.Color, count int) *Firework {
	if len(colors) == 0 {
		colors = []model.Color{model.White}
	}
	return &Firework{
		palette: model.Cycle(colors...),
		rocket:  NewRocket(colors[0], 0.7, 1),
		burst:   NewExplosion(colors[:1], count, 8),
		wait:    sequence.NewTimer(1),
		cv:      canvas{keep: 0.05},
	}
}

func (f *Firework) Phase() Phase { return f.phase }

func (f *Firework) Reset(model.Strip) {
	f.phase = Ascend
	f.rocket.launched = false
	f.cv.clear()
}

// CanTransition is true while waiting for the next launch.
func (f *Firework) CanTransition() bool { return f.phase == Decay }

func (f *Firework) Apply(s model.Strip, dt float64) {
	f.cv.ensure(s.Len())
	f.cv.fade(dt)

	switch f.phase {
	case Ascend:
		if !f.rocket.launched {
			f.rocket.Color = f.palette.Next()
			f.rocket.launch(s.Len())
		}
		f.rocket.advance(dt)
		f.cv.plot(f.rocket.pos, f.rocket.Color)
		if f.rocket.done {
			f.rocket.launched = false
			f.burst.Colors = []model.Color{f.rocket.Color}
			f.burst.At(f.rocket.pos)
			f.burst.explode()
			f.phase = Burst
		}
	case Burst:
		f.burst.advance(dt)
		f.burst.draw(&f.cv)
		if f.burst.done() {
			f.wait.Reset()
			f.phase = Decay
		}
	case Decay:
		f.wait.Advance(dt)
		if f.wait.Expired(false) || f.cv.dark() {
			f.phase = Ascend
		}
	}
	f.cv.flush(s)
}

// Build reads "colors", "count", "height", "rise_s" and "wait_s".
func Build(_ int, p effect.Params) (effect.Effect, error) {
	colors, err := p.Colors("colors", []model.Color{model.NewColor(0x12, 0x34, 0xff)})
	if err != nil {
		return nil, err
	}
	f := New(colors, p.Int("count", 5))
	f.rocket.Height = p.Float("height", f.rocket.Height)
	f.rocket.Rise = p.Float("rise_s", f.rocket.Rise)
	wait := p.Float("wait_s", 1)
	if f.rocket.Rise <= 0 || wait < 0 {
		return nil, errors.New("rise_s must be positive and wait_s not negative")
	}
	f.wait.ResetTo(wait)
	return f, nil
}

// BuildRocket reads "color", "height" and "rise_s".
func BuildRocket(_ int, p effect.Params) (effect.Effect, error) {
	c, err := p.Color("color", model.White)
	if err != nil {
		return nil, err
	}
	rise := p.Float("rise_s", 1)
	if rise <= 0 {
		return nil, errors.New("rise_s must be positive")
	}
	return NewRocket(c, p.Float("height", 0.7), rise), nil
}

// BuildExplosion reads "colors", "count", "speed", "drag" and "life_s".
func BuildExplosion(_ int, p effect.Params) (effect.Effect, error) {
	colors, err := p.Colors("colors", nil)
	if err != nil {
		return nil, err
	}
	e := NewExplosion(colors, p.Int("count", 6), p.Float("speed", 8))
	e.Drag = p.Float("drag", e.Drag)
	e.Life = p.Float("life_s", e.Life)
	if e.Life <= 0 {
		return nil, errors.New("life_s must be positive")
	}
	return e, nil
}

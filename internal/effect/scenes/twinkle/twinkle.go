package twinkle

import (
	"errors"
	"math/rand"
	"time"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

type spark struct {
	color model.Color
	age   float64
}

// Twinkle holds a background color and lights short-lived sparks at random
// free pixels. A spark brightens and fades back over its lifetime.
type Twinkle struct {
	bg     model.Color
	colors []model.Color
	rng    *rand.Rand

	// Life is a spark's lifetime in seconds.
	Life float64
	// Rate is the chance of a new spark per frame.
	Rate float64
	// MaxRatio caps the share of pixels sparking at once.
	MaxRatio float64
	// ReadyLevel is the mean spark level, in [0,1], at or below which the
	// effect reports it can hand over.
	ReadyLevel float64

	sparks map[int]*spark
	next   int
}

// New uses rng for every random choice; pass a seeded source for repeatable
// output.
func New(bg model.Color, colors []model.Color, rng *rand.Rand) *Twinkle {
	if len(colors) == 0 {
		colors = []model.Color{model.White}
	}
	return &Twinkle{
		bg:         bg,
		colors:     append([]model.Color(nil), colors...),
		rng:        rng,
		Life:       1,
		Rate:       0.3,
		MaxRatio:   0.2,
		ReadyLevel: 0.5,
		sparks:     map[int]*spark{},
	}
}

// Active is the number of live sparks.
func (tw *Twinkle) Active() int { return len(tw.sparks) }

func (tw *Twinkle) Reset(model.Strip) {
	clear(tw.sparks)
	tw.next = 0
}

// CanTransition is true while the live sparks are, on average, no brighter
// than ReadyLevel. Sparks overlap, so a fully dark strip is rare.
func (tw *Twinkle) CanTransition() bool {
	if len(tw.sparks) == 0 {
		return true
	}
	var sum float64
	for _, sp := range tw.sparks {
		sum += tw.level(sp)
	}
	return sum/float64(len(tw.sparks)) <= tw.ReadyLevel
}

// level rises over the first half of a spark's life and falls over the second.
func (tw *Twinkle) level(sp *spark) float64 {
	return 1 - abs(2*sp.age/tw.Life-1)
}

func (tw *Twinkle) Apply(s model.Strip, dt float64) {
	n := s.Len()
	for i, sp := range tw.sparks {
		sp.age += dt
		if sp.age >= tw.Life || i >= n {
			delete(tw.sparks, i)
		}
	}

	if n > 0 && float64(len(tw.sparks))/float64(n) < tw.MaxRatio && tw.rng.Float64() < tw.Rate {
		free := make([]int, 0, n-len(tw.sparks))
		for i := 0; i < n; i++ {
			if _, taken := tw.sparks[i]; !taken {
				free = append(free, i)
			}
		}
		if len(free) > 0 {
			tw.sparks[free[tw.rng.Intn(len(free))]] = &spark{color: tw.colors[tw.next]}
			tw.next = (tw.next + 1) % len(tw.colors)
		}
	}

	s.Fill(tw.bg)
	for i, sp := range tw.sparks {
		s.Set(i, model.Blend(tw.bg, sp.color, tw.level(sp), model.Smooth))
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// Build reads "background", "colors", "life_s", "rate", "max_ratio",
// "ready_level" and "seed".
func Build(_ int, p effect.Params) (effect.Effect, error) {
	bg, err := p.Color("background", model.NewColor(0x90, 0x90, 0x90))
	if err != nil {
		return nil, err
	}
	colors, err := p.Colors("colors", []model.Color{model.White})
	if err != nil {
		return nil, err
	}
	seed := int64(p.Int("seed", 0))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	tw := New(bg, colors, rand.New(rand.NewSource(seed)))
	tw.Life = p.Float("life_s", tw.Life)
	tw.Rate = p.Float("rate", tw.Rate)
	tw.MaxRatio = p.Float("max_ratio", tw.MaxRatio)
	tw.ReadyLevel = p.Float("ready_level", tw.ReadyLevel)
	if tw.Life <= 0 {
		return nil, errors.New("life_s must be positive")
	}
	return tw, nil
}

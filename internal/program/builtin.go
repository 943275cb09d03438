package program

import (
	"math/rand"
	"time"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes/breath"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes/calib"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes/firework"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes/rotate"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes/train"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes/twinkle"
	"github.com/coreman2200/funtimes-holidaylights/internal/sequence"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

const (
	NameDefault   = "everyday"
	NameXMas      = "xmas"
	NameHalloween = "halloween"
	NameSelftest  = "selftest"
)

var (
	XMasDays      = DateRange{From: MonthDay{time.December, 1}, To: MonthDay{time.December, 28}}
	HalloweenDays = DateRange{From: MonthDay{time.October, 1}, To: MonthDay{time.November, 1}}
)

func newRand() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) }

// Default is a warm twinkle with no transitions.
func Default(opts sequence.Options) Variant {
	return Variant{Name: NameDefault, New: func() Program {
		return NewLoop(NameDefault, opts, Effects(func(int) []effect.Effect {
			return []effect.Effect{
				twinkle.New(model.NewColor(0x60, 0x38, 0x10), []model.Color{model.NewColor(0xff, 0xd0, 0x90)}, newRand()),
			}
		}))
	}}
}

func XMas(opts sequence.Options) Variant {
	return Variant{Name: NameXMas, New: func() Program {
		return NewLoop(NameXMas, opts, Effects(func(n int) []effect.Effect {
			count := max(n/10, 1)
			return []effect.Effect{
				breath.New([]model.Color{model.NewColor(0xff, 0, 0), model.NewColor(0, 0xff, 0)}, 4, "smooth", false),
				train.NewColors(3, 2, count, model.NewRainbow(count, 20), 0),
				twinkle.New(model.NewColor(0x90, 0x90, 0x90), []model.Color{model.White}, newRand()),
			}
		}))
	}}
}

func Halloween(opts sequence.Options) Variant {
	return Variant{Name: NameHalloween, New: func() Program {
		return NewLoop(NameHalloween, opts, Effects(func(int) []effect.Effect {
			return []effect.Effect{
				breath.New([]model.Color{model.NewColor(0xdf, 0x15, 0x00)}, 4, "smooth", true),
				rotate.New([]model.Color{
					model.NewColor(0x30, 0xaa, 0x00), model.NewColor(0xbf, 0x15, 0x00),
					model.NewColor(0x4b, 0x0f, 0x6e), model.Black,
				}, 3, 3),
				firework.New([]model.Color{model.NewColor(0xff, 0x60, 0x00), model.NewColor(0x80, 0x20, 0xc0)}, 5),
			}
		}))
	}}
}

// Selftest sweeps every pixel and then cycles the channels.
func Selftest() Variant {
	return Variant{Name: NameSelftest, New: func() Program {
		opts := sequence.Options{Dwell: 6, Fade: -1, Policy: sequence.WaitForHint}
		return NewLoop(NameSelftest, opts, Effects(func(int) []effect.Effect {
			return []effect.Effect{calib.New(calib.IndexSweep, 0.05), calib.New(calib.RGBTest, 1)}
		}))
	}}
}

// Builtins lists the bundled variants by name.
func Builtins(opts sequence.Options) map[string]Variant {
	out := map[string]Variant{}
	for _, v := range []Variant{Default(opts), XMas(opts), Halloween(opts), Selftest()} {
		out[v.Name] = v
	}
	return out
}

// DefaultSchedule runs XMas, then Halloween, then the default program from
// begin until end.
func DefaultSchedule(begin, end Clock, opts sequence.Options) Schedule {
	def := Default(opts)
	return Schedule{
		Begin: begin,
		End:   end,
		Entries: []Entry{
			{Variant: XMas(opts), When: XMasDays.Contains},
			{Variant: Halloween(opts), When: HalloweenDays.Contains},
		},
		Default: &def,
	}
}

// Package scenes wires the bundled effects into an effect.Registry.
package scenes

import (
	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes/breath"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes/calib"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes/firework"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes/grad"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes/rotate"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes/solid"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes/train"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes/twinkle"
	"github.com/coreman2200/funtimes-holidaylights/internal/effect/scenes/wave"
)

func RegisterDefaults(r *effect.Registry) {
	r.Register("breath", breath.Build)
	r.Register("color_train", train.BuildColors)
	r.Register("train", train.BuildChase)
	r.Register("rotate", rotate.Build)
	r.Register("wave", wave.Build)
	r.Register("twinkle", twinkle.Build)
	r.Register("firework", firework.Build)
	r.Register("firework_rocket", firework.BuildRocket)
	r.Register("firework_explosion", firework.BuildExplosion)
	r.Register("solid", solid.Build)
	r.Register("grad", grad.Build)
	r.Register("calib", calib.Build)
}

// Default returns a registry holding every bundled effect.
func Default() *effect.Registry {
	r := effect.NewRegistry()
	RegisterDefaults(r)
	return r
}

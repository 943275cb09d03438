package scenes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

// Every bundled effect must write every pixel from its defaults.
func TestDefaultsBuildAndCoverStrip(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{
		"breath", "calib", "color_train", "firework", "firework_explosion", "firework_rocket",
		"grad", "rotate", "solid", "train", "twinkle", "wave",
	}, r.List())

	const poison = model.Color(0xABCDEF)
	for _, name := range r.List() {
		t.Run(name, func(t *testing.T) {
			fx, err := r.Build(name, 12, effect.Params{"seed": 1})
			require.NoError(t, err)
			strip := model.NewFrame(12)
			strip.Fill(poison)
			effect.Reset(fx, strip)
			fx.Apply(strip, 0.05)
			for i := 0; i < strip.Len(); i++ {
				assert.NotEqual(t, poison, strip.At(i), "pixel %d left unwritten", i)
			}
		})
	}
}

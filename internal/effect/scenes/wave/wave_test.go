package wave

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

func TestWaveStaysInBounds(t *testing.T) {
	w := New(8, 0.25, 0.75, 0.5, []model.Color{model.White})
	strip := model.NewFrame(16)
	for f := 0; f < 40; f++ {
		w.Apply(strip, 0.1)
		for i := 0; i < strip.Len(); i++ {
			v := w.Intensity(i)
			assert.GreaterOrEqual(t, v, 0.25-1e-12)
			assert.LessOrEqual(t, v, 0.75+1e-12)
		}
	}
}

func TestWaveTravels(t *testing.T) {
	w := New(4, 0, 1, 0.25, []model.Color{model.White})
	strip := model.NewFrame(8)

	w.Apply(strip, 0)
	// sin peaks a quarter wavelength in
	assert.Equal(t, model.White, strip.At(1))
	assert.Equal(t, model.Black, strip.At(3))

	w.Apply(strip, 1) // a quarter turn moves the crest one pixel on
	assert.InDelta(t, 0.25, w.Phase(), 1e-12)
	assert.Equal(t, model.White, strip.At(2))
	assert.Equal(t, model.Black, strip.At(0))
}

func TestWaveNextColorEachTurn(t *testing.T) {
	red, green := model.NewColor(255, 0, 0), model.NewColor(0, 255, 0)
	w := New(4, 0, 1, 1, []model.Color{red, green})
	strip := model.NewFrame(4)
	w.Apply(strip, 0.5)
	assert.Equal(t, red, w.Color())
	w.Apply(strip, 0.5)
	assert.Equal(t, green, w.Color())
	assert.InDelta(t, 0, w.Phase(), 1e-12)
}

func TestWaveBuild(t *testing.T) {
	fx, err := Build(10, effect.Params{"period": 1.2, "lo": 0.5, "hi": 1.0, "speed": 0.7})
	require.NoError(t, err)
	assert.NotNil(t, fx)

	_, err = Build(10, effect.Params{"lo": 0.9, "hi": 0.1})
	assert.Error(t, err)
}

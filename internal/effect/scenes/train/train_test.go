package train

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

var (
	red   = model.NewColor(255, 0, 0)
	green = model.NewColor(0, 255, 0)
	blue  = model.NewColor(0, 0, 255)
)

func lit(s model.Strip) []model.Color {
	out := make([]model.Color, s.Len())
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}

func TestColorTrainMoves(t *testing.T) {
	c := NewColors(2, 1, 2, model.Cycle(red, blue), 0)
	strip := model.NewFrame(6)
	assert.True(t, c.CanTransition())

	c.Apply(strip, 0.05)
	assert.Equal(t, []model.Color{0, 0, 0, 0, 0, 0}, lit(strip))

	c.Apply(strip, 0.05)
	assert.Equal(t, []model.Color{red, 0, 0, 0, 0, 0}, lit(strip))
	assert.False(t, c.CanTransition())

	c.Apply(strip, 0.05)
	c.Apply(strip, 0.05)
	c.Apply(strip, 0.05)
	assert.Equal(t, []model.Color{blue, 0, red, red, 0, 0}, lit(strip))
}

func TestColorTrainRelaunches(t *testing.T) {
	c := NewColors(1, 0, 1, model.Cycle(red, green), 0)
	strip := model.NewFrame(3)

	c.Apply(strip, 0.05)
	c.Apply(strip, 0.05)
	assert.Equal(t, red, strip.At(0))

	for i := 0; i < 4; i++ {
		c.Apply(strip, 0.05)
	}
	c.Apply(strip, 0.05)
	assert.Equal(t, green, strip.At(0), "relaunched carts draw a new color")
	assert.Equal(t, model.Black, strip.At(1))
}

func TestColorTrainStepTimer(t *testing.T) {
	c := NewColors(1, 0, 1, model.Cycle(red), 0.5)
	strip := model.NewFrame(3)
	for i := 0; i < 3; i++ {
		c.Apply(strip, 0.25)
	}
	assert.Equal(t, red, strip.At(0))
	assert.Equal(t, model.Black, strip.At(1))

	c.Reset(strip)
	c.Apply(strip, 0.25)
	assert.Equal(t, model.Black, strip.At(0))
}

func TestChase(t *testing.T) {
	c, err := NewChase(1, 3, []model.Color{red}, model.Black, 0)
	require.NoError(t, err)
	strip := model.NewFrame(6)

	c.Apply(strip, 0.05)
	assert.Equal(t, []model.Color{red, 0, 0, red, 0, 0}, lit(strip))
	c.Apply(strip, 0.05)
	assert.Equal(t, []model.Color{0, red, 0, 0, red, 0}, lit(strip))
	c.Apply(strip, 0.05)
	c.Apply(strip, 0.05)
	assert.Equal(t, []model.Color{red, 0, 0, red, 0, 0}, lit(strip))
}

func TestChaseBuild(t *testing.T) {
	fx, err := BuildChase(4, effect.Params{"lit": 2, "repeat": 4, "colors": "#00ff00", "off": "#000010", "step_s": 1.0})
	require.NoError(t, err)
	strip := model.NewFrame(4)
	fx.Apply(strip, 0.5)
	fx.Apply(strip, 0.5)
	assert.Equal(t, []model.Color{green, green, 0x10, 0x10}, lit(strip))
	fx.Apply(strip, 0.5)
	assert.Equal(t, []model.Color{0x10, green, green, 0x10}, lit(strip))

	_, err = BuildChase(4, effect.Params{"repeat": 0})
	assert.Error(t, err)
}

func TestColorTrainBuildDefaultsToRainbow(t *testing.T) {
	fx, err := BuildColors(30, effect.Params{"length": 1, "gap": 0, "count": 3})
	require.NoError(t, err)
	strip := model.NewFrame(30)
	fx.Apply(strip, 0.05)
	fx.Apply(strip, 0.05)
	assert.Equal(t, model.Wheel(0), strip.At(0))
}

package twinkle

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

var bg = model.NewColor(0x10, 0x10, 0x10)

func TestTwinkleRespectsOccupancyCap(t *testing.T) {
	tw := New(bg, nil, rand.New(rand.NewSource(1)))
	tw.Rate, tw.MaxRatio, tw.Life = 1, 1, 10
	strip := model.NewFrame(4)

	for i := 0; i < 4; i++ {
		tw.Apply(strip, 0.5)
	}
	assert.Equal(t, 4, tw.Active(), "each spark lands on a free pixel")
	tw.Apply(strip, 0.5)
	assert.Equal(t, 4, tw.Active())

	tw.MaxRatio = 0.5
	tw.Apply(strip, 10)
	assert.Equal(t, 1, tw.Active(), "expired sparks are removed before spawning")
}

func TestTwinkleBackground(t *testing.T) {
	tw := New(bg, nil, rand.New(rand.NewSource(2)))
	tw.Rate = 0
	strip := model.NewFrame(5)
	tw.Apply(strip, 0.1)
	for i := 0; i < strip.Len(); i++ {
		assert.Equal(t, bg, strip.At(i))
	}
	assert.True(t, tw.CanTransition())
}

func TestTwinkleSparkPeaksMidLife(t *testing.T) {
	tw := New(bg, []model.Color{model.White}, rand.New(rand.NewSource(3)))
	tw.Rate, tw.MaxRatio, tw.Life = 1, 0.5, 2
	strip := model.NewFrame(1)

	tw.Apply(strip, 0) // spawned, age 0
	require.Equal(t, 1, tw.Active())
	assert.Equal(t, bg, strip.At(0))

	tw.Apply(strip, 1)
	assert.Equal(t, model.White, strip.At(0))
	assert.False(t, tw.CanTransition(), "a spark at its peak holds the handover")

	tw.Apply(strip, 1)
	assert.Equal(t, 1, tw.Active(), "the expired spark made room for a new one")
	assert.Equal(t, bg, strip.At(0), "a fresh spark starts dark")
	assert.True(t, tw.CanTransition())
}

func TestTwinkleReadyWhileSparksOverlap(t *testing.T) {
	tw := New(bg, nil, rand.New(rand.NewSource(11)))
	strip := model.NewFrame(50)
	const dt = 1.0 / 30

	// let the spark population settle first
	for i := 0; i < 90; i++ {
		tw.Apply(strip, dt)
	}

	ready, streak, longest := 0, 0, 0
	const frames = 60 * 30
	for i := 0; i < frames; i++ {
		tw.Apply(strip, dt)
		if tw.CanTransition() {
			ready++
			streak = 0
			continue
		}
		streak++
		longest = max(longest, streak)
	}
	assert.Greater(t, ready, frames/5, "ready on a good share of frames")
	assert.Less(t, longest, 5*30, "never busy for 5s straight")
}

func TestTwinkleBuild(t *testing.T) {
	_, err := Build(5, effect.Params{"background": "#909090", "colors": []any{"#ffffff"}, "seed": 7})
	require.NoError(t, err)
	_, err = Build(5, effect.Params{"life_s": 0.0})
	assert.Error(t, err)
}

package rotate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

var (
	a = model.NewColor(0x30, 0xaa, 0x00)
	b = model.NewColor(0xbf, 0x15, 0x00)
)

func TestRotateShiftsEveryStopFrames(t *testing.T) {
	r := New([]model.Color{a, b}, 2, 2)
	strip := model.NewFrame(5)

	r.Apply(strip, 0.05)
	assert.Equal(t, model.Frame{a, a, b, b, a}, strip)
	r.Apply(strip, 0.05)
	assert.Equal(t, model.Frame{a, a, b, b, a}, strip, "held for stop_frames frames")
	r.Apply(strip, 0.05)
	assert.Equal(t, model.Frame{b, a, a, b, b}, strip)
	assert.Equal(t, 1, r.Offset())
}

func TestRotateWrapsAround(t *testing.T) {
	r := New([]model.Color{a, b}, 1, 1)
	strip := model.NewFrame(2)
	for i := 0; i < 2; i++ {
		r.Apply(strip, 0.05)
	}
	assert.Equal(t, 0, r.Offset())
	r.Apply(strip, 0.05)
	assert.Equal(t, model.Frame{a, b}, strip)

	r.Reset(strip)
	assert.Equal(t, 0, r.Offset())
}

func TestRotateBuild(t *testing.T) {
	fx, err := Build(3, effect.Params{"colors": []any{0x30aa00, 0xbf1500}, "width": 1, "stop_frames": 1})
	require.NoError(t, err)
	strip := model.NewFrame(3)
	fx.Apply(strip, 0.05)
	assert.Equal(t, model.Frame{a, b, a}, strip)

	_, err = Build(3, effect.Params{"width": 0})
	assert.Error(t, err)
}

package effect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/coreman2200/funtimes-holidaylights/model"
)

type plain struct{ frames int }

func (p *plain) Apply(s model.Strip, dt float64) { p.frames++ }

type hinted struct {
	plain
	ready  bool
	resets int
}

func (h *hinted) Reset(model.Strip)   { h.resets++ }
func (h *hinted) CanTransition() bool { return h.ready }

func TestOptionalCapabilities(t *testing.T) {
	f := model.NewFrame(3)

	p := &plain{}
	Reset(p, f)
	assert.True(t, CanTransition(p), "effects without a hint are always ready")

	h := &hinted{}
	Reset(h, f)
	assert.Equal(t, 1, h.resets)
	assert.False(t, CanTransition(h))
	h.ready = true
	assert.True(t, CanTransition(h))
}

func TestRegistryBuild(t *testing.T) {
	reg := NewRegistry()
	reg.Register("plain", func(n int, p Params) (Effect, error) { return &plain{}, nil })
	reg.Register("broken", func(n int, p Params) (Effect, error) { return nil, errors.New("nope") })
	reg.Register("", nil)

	assert.Equal(t, []string{"broken", "plain"}, reg.List())

	fx, err := reg.Build("plain", 10, nil)
	require.NoError(t, err)
	assert.IsType(t, &plain{}, fx)

	_, err = reg.Build("missing", 10, nil)
	assert.ErrorIs(t, err, ErrUnknownEffect)

	_, err = reg.Build("broken", 10, nil)
	assert.EqualError(t, err, "effect broken: nope")
}

func TestParamsFromYAML(t *testing.T) {
	src := `
period: 2.5
count: 3
strict: true
color: "#ff8000"
colors: ["#ff0000", 0x00ff00]
`
	var p Params
	require.NoError(t, yaml.Unmarshal([]byte(src), &p))

	assert.Equal(t, 2.5, p.Float("period", 0))
	assert.Equal(t, 3.0, p.Float("count", 0))
	assert.Equal(t, 3, p.Int("count", 0))
	assert.Equal(t, 7, p.Int("missing", 7))
	assert.True(t, p.Bool("strict", false))

	c, err := p.Color("color", model.Black)
	require.NoError(t, err)
	assert.Equal(t, model.NewColor(0xff, 0x80, 0x00), c)

	cs, err := p.Colors("colors", nil)
	require.NoError(t, err)
	assert.Equal(t, []model.Color{0xff0000, 0x00ff00}, cs)

	single, err := p.Colors("color", nil)
	require.NoError(t, err)
	assert.Len(t, single, 1)

	_, err = Params{"color": "not-a-colour"}.Color("color", model.Black)
	assert.Error(t, err)
}

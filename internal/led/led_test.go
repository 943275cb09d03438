package led

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/conntest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi/spitest"

	"github.com/coreman2200/funtimes-holidaylights/internal/layout"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

func TestPowerBudgetClamp(t *testing.T) {
	// 10 LEDs all white: 600 mA before limiting
	rgb := bytes.Repeat([]byte{255}, 30)
	p := Power{ChanMA: 20, BudgetMA: 300, Knee: 0.9}
	p.Limit(rgb)
	assert.LessOrEqual(t, p.Current(rgb), 300.0)
	assert.Greater(t, p.Current(rgb), 290.0)
}

func TestPowerUnderKneeUntouched(t *testing.T) {
	rgb := bytes.Repeat([]byte{255, 0, 0}, 10) // 200 mA
	want := append([]byte(nil), rgb...)
	Power{BudgetMA: 300}.Limit(rgb)
	assert.Equal(t, want, rgb)
}

func TestPowerSoftKnee(t *testing.T) {
	rgb := bytes.Repeat([]byte{255, 255, 0}, 7) // 280 mA, ratio 0.93
	p := Power{BudgetMA: 300}
	p.Limit(rgb)
	cur := p.Current(rgb)
	assert.Less(t, cur, 280.0)
	assert.Greater(t, cur, 250.0)
}

func TestWhiteCap(t *testing.T) {
	rgb := []byte{255, 255, 255, 10, 20, 30}
	Power{WhiteCap: 0.5}.Limit(rgb)
	assert.LessOrEqual(t, int(rgb[0])+int(rgb[1])+int(rgb[2]), 382)
	assert.Equal(t, []byte{10, 20, 30}, rgb[3:], "dim pixels pass")
}

func TestStripEncodesWithoutTouchingBuffer(t *testing.T) {
	sim := NewSim()
	s := NewStrip(sim, Options{
		Layout:     layout.Layout{Segments: []layout.Segment{{Count: 1}, {Count: 2, Reverse: true}}},
		Brightness: 0.5,
	})
	require.Equal(t, 3, s.Len())
	s.Set(0, model.NewColor(200, 0, 0))
	s.Set(1, model.NewColor(0, 200, 0))
	s.Set(2, model.NewColor(0, 0, 200))

	require.NoError(t, s.Show())
	assert.Equal(t, []byte{100, 0, 0, 0, 0, 100, 0, 100, 0}, sim.Last())
	assert.Equal(t, model.NewColor(200, 0, 0), s.At(0))
	assert.Equal(t, uint64(1), s.Frames())
	assert.Equal(t, 1, sim.Frames())
}

type failing struct{ err error }

func (f failing) Write([]byte) error { return f.err }
func (f failing) Close() error        { return nil }

func TestStripReturnsDriverError(t *testing.T) {
	boom := errors.New("bus gone")
	s := NewStrip(failing{boom}, Options{Layout: layout.Linear(2)})
	assert.ErrorIs(t, s.Show(), boom)
	assert.Equal(t, uint64(0), s.Frames())
}

func TestFanoutReachesEveryDriver(t *testing.T) {
	a, b := NewSim(), NewSim()
	boom := errors.New("boom")
	f := Fanout{a, failing{boom}, b}
	assert.ErrorIs(t, f.Write([]byte{1, 2, 3}), boom)
	assert.Equal(t, []byte{1, 2, 3}, a.Last())
	assert.Equal(t, []byte{1, 2, 3}, b.Last())
	assert.NoError(t, f.Close())
}

func TestNRZ(t *testing.T) {
	buf := bytes.Buffer{}
	d, err := newNRZ(spitest.NewRecordRaw(&buf), 2, DefaultSPIFreq)
	require.NoError(t, err)

	require.NoError(t, d.Write([]byte{255, 0, 0, 0, 0, 255}))
	// every data bit becomes three bits on the wire
	assert.GreaterOrEqual(t, buf.Len(), 2*3*3)

	assert.ErrorIs(t, d.Write([]byte{1, 2, 3}), ErrFrameSize)
	require.NoError(t, d.Close())
	assert.Error(t, d.Write(make([]byte, 6)))
	assert.NoError(t, d.Close())
}

func TestNRZRejectsEmptyStrip(t *testing.T) {
	s := spitest.Playback{
		Playback: conntest.Playback{
			Count: 1,
			Ops:   []conntest.IO{{W: []byte{0x00, 0x00, 0x00}}},
		},
	}
	_, err := newNRZ(&s, 0, 800*physic.KiloHertz)
	assert.Error(t, err)
}

// drawer records the last image drawn.
type drawer struct {
	img    image.Image
	halted bool
}

func (d *drawer) String() string          { return "drawer" }
func (d *drawer) ColorModel() color.Model { return color.NRGBAModel }
func (d *drawer) Bounds() image.Rectangle { return image.Rect(0, 0, 2, 1) }

func (d *drawer) Halt() error {
	d.halted = true
	return nil
}

func (d *drawer) Draw(_ image.Rectangle, src image.Image, _ image.Point) error {
	d.img = src
	return nil
}

func TestConsole(t *testing.T) {
	d := &drawer{}
	c := newConsole(d, 2)
	require.NoError(t, c.Write([]byte{1, 2, 3, 4, 5, 6}))
	assert.Equal(t, color.NRGBA{R: 4, G: 5, B: 6, A: 255}, d.img.At(1, 0))
	assert.ErrorIs(t, c.Write([]byte{1}), ErrFrameSize)
	require.NoError(t, c.Close())
	assert.True(t, d.halted)
}

func TestTerm(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	term, err := newTerm(screen, 3)
	require.NoError(t, err)
	screen.SetSize(2, 4)

	require.NoError(t, term.Write([]byte{0, 0, 0, 0, 0, 0, 10, 20, 30}))
	mainc, _, style, _ := screen.GetContent(0, 1)
	assert.Equal(t, '█', mainc)
	fg, _, _ := style.Decompose()
	r, g, b := fg.RGB()
	assert.Equal(t, [3]int32{10, 20, 30}, [3]int32{r, g, b})

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case <-term.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("q did not close Done")
	}
	require.NoError(t, term.Close())
	assert.Error(t, term.Write(make([]byte, 9)))
}

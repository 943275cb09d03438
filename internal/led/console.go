package led

import (
	"image"
	"image/color"

	"periph.io/x/conn/v3/display"
	"periph.io/x/extra/devices/screen"
)

// Console prints each frame as a row of ANSI colour blocks. It stands in for
// the strip when no SPI port is available.
type Console struct {
	d     display.Drawer
	img   *image.NRGBA
	count int
}

func NewConsole(count int) *Console {
	return newConsole(screen.New(count), count)
}

func newConsole(d display.Drawer, count int) *Console {
	return &Console{d: d, img: image.NewNRGBA(image.Rect(0, 0, count, 1)), count: count}
}

func (c *Console) Write(rgb []byte) error {
	if err := checkLen(rgb, c.count); err != nil {
		return err
	}
	for x := 0; x < c.count; x++ {
		c.img.SetNRGBA(x, 0, color.NRGBA{R: rgb[x*3], G: rgb[x*3+1], B: rgb[x*3+2], A: 255})
	}
	return c.d.Draw(c.d.Bounds(), c.img, image.Point{})
}

func (c *Console) Close() error { return c.d.Halt() }

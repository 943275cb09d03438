package model

import (
	"errors"
	"math"
)

// Packed layout: red is always the most significant byte. A 3-channel colour is
// 0xRRGGBB; a 4-channel colour is 0xRRGGBBAA.
const (
	RED_OFFSET   uint8 = 0x10
	GREEN_OFFSET uint8 = 0x08
	BLUE_OFFSET  uint8 = 0x0
)

const (
	Black Color = 0x000000
	White Color = 0xFFFFFF
)

// ErrWidth is returned for channel counts other than the supported ones.
var ErrWidth = errors.New("unsupported colour width")

// Color is a packed 0xRRGGBB value.
type Color uint32

// RGB is the unpacked form of a Color.
type RGB struct{ R, G, B uint8 }

func setcolor(c uint32, n uint8, off uint8) uint32 {
	var val uint32 = uint32(n) << off
	var mask uint32 = 0xFF << off
	return (c & (^mask)) | val
}

func getcolor(c uint32, off uint8) uint8 {
	var mask uint32 = 0xFF << off
	return uint8((c & (mask)) >> off)
}

func NewColor(r, g, b uint8) Color {
	var v uint32
	v = setcolor(v, r, RED_OFFSET)
	v = setcolor(v, g, GREEN_OFFSET)
	v = setcolor(v, b, BLUE_OFFSET)
	return Color(v)
}

func (c Color) R() uint8 { return getcolor(uint32(c), RED_OFFSET) }
func (c Color) G() uint8 { return getcolor(uint32(c), GREEN_OFFSET) }
func (c Color) B() uint8 { return getcolor(uint32(c), BLUE_OFFSET) }

func (c Color) RGB() RGB { return RGB{c.R(), c.G(), c.B()} }

func (c RGB) Color() Color { return NewColor(c.R, c.G, c.B) }

// Split unpacks c into width byte channels, most significant first.
func Split(c uint32, width int) ([]uint8, error) {
	switch width {
	case 3:
		return []uint8{uint8(c >> 16), uint8(c >> 8), uint8(c)}, nil
	case 4:
		return []uint8{uint8(c >> 24), uint8(c >> 16), uint8(c >> 8), uint8(c)}, nil
	default:
		return nil, ErrWidth
	}
}

// Recombine packs channels back into an integer. A single argument is taken to
// be already packed and is returned unchanged.
func Recombine(parts ...uint32) (uint32, error) {
	switch len(parts) {
	case 1:
		return parts[0], nil
	case 3:
		return (parts[0]&0xff)<<16 | (parts[1]&0xff)<<8 | parts[2]&0xff, nil
	case 4:
		return (parts[0]&0xff)<<24 | (parts[1]&0xff)<<16 | (parts[2]&0xff)<<8 | parts[3]&0xff, nil
	default:
		return 0, ErrWidth
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func channel(a, b uint8, t float64) uint8 {
	v := math.Round(float64(a)*(1-t) + float64(b)*t)
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Blend interpolates each channel from a to b. t is clamped to [0,1] before the
// ease is applied; a nil ease is linear.
func Blend(a, b Color, t float64, ease Ease) Color {
	t = clamp01(t)
	if ease != nil {
		t = clamp01(ease(t))
	}
	if t == 0 {
		return a
	}
	if t == 1 {
		return b
	}
	return NewColor(channel(a.R(), b.R(), t), channel(a.G(), b.G(), t), channel(a.B(), b.B(), t))
}

// BlendMax takes the per-channel maximum, for additive-looking overlays.
func BlendMax(a, b Color) Color {
	return NewColor(max(a.R(), b.R()), max(a.G(), b.G()), max(a.B(), b.B()))
}

// Fade blends along the fixed S-curve.
func Fade(a, b Color, t float64) Color {
	return Blend(a, b, t, SCurve)
}

// Scale dims c by s in [0,1].
func (c Color) Scale(s float64) Color {
	return Blend(Black, c, s, nil)
}

// Luma is a rough perceptual brightness in [0,255].
func (c Color) Luma() float64 {
	return 0.2126*float64(c.R()) + 0.7152*float64(c.G()) + 0.0722*float64(c.B())
}

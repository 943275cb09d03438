package model

import (
	"image"
	"image/color"
)

// Strip is an indexed pixel buffer. Indices outside [0, Len()) panic.
type Strip interface {
	Len() int
	At(i int) Color
	Set(i int, c Color)
	Fill(c Color)
	// Show pushes the buffer to its display, if it has one.
	Show() error
}

// Frame is an in-memory Strip with no display behind it. Programs use frames as
// scratch buffers to pre-render effects before blending.
type Frame []Color

func NewFrame(n int) Frame { return make(Frame, n) }

func (f Frame) Len() int           { return len(f) }
func (f Frame) At(i int) Color     { return f[i] }
func (f Frame) Set(i int, c Color) { f[i] = c }
func (f Frame) Show() error        { return nil }

func (f Frame) Fill(c Color) {
	for i := range f {
		f[i] = c
	}
}

// CopyFrom copies min(len(f), s.Len()) pixels out of s.
func (f Frame) CopyFrom(s Strip) {
	n := min(len(f), s.Len())
	for i := 0; i < n; i++ {
		f[i] = s.At(i)
	}
}

// Snapshot copies the current contents of s into a new Frame.
func Snapshot(s Strip) Frame {
	f := NewFrame(s.Len())
	f.CopyFrom(s)
	return f
}

// Image renders the strip as a one-row NRGBA image.
func Image(s Strip) *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, s.Len(), 1))
	for x := 0; x < im.Rect.Max.X; x++ {
		c := s.At(x)
		im.SetNRGBA(x, 0, color.NRGBA{R: c.R(), G: c.G(), B: c.B(), A: 255})
	}
	return im
}

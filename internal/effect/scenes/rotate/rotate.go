package rotate

import (
	"errors"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

// Rotate repeats a palette along the strip, width pixels per color, and
// shifts it one pixel further every stopFrames frames.
type Rotate struct {
	palette    []model.Color
	width      int
	stopFrames int

	frame  int
	offset int
}

func New(palette []model.Color, width, stopFrames int) *Rotate {
	if len(palette) == 0 {
		palette = []model.Color{model.White, model.Black}
	}
	return &Rotate{
		palette:    append([]model.Color(nil), palette...),
		width:      max(width, 1),
		stopFrames: max(stopFrames, 1),
	}
}

// Offset is how many pixels the palette has moved.
func (r *Rotate) Offset() int { return r.offset }

func (r *Rotate) Reset(model.Strip) { r.frame, r.offset = 0, 0 }

func (r *Rotate) Apply(s model.Strip, _ float64) {
	span := r.width * len(r.palette)
	for i := 0; i < s.Len(); i++ {
		p := ((i-r.offset)%span + span) % span
		s.Set(i, r.palette[p/r.width])
	}
	r.frame++
	if r.frame >= r.stopFrames {
		r.frame = 0
		r.offset = (r.offset + 1) % span
	}
}

// Build reads "colors", "width" and "stop_frames".
func Build(_ int, p effect.Params) (effect.Effect, error) {
	colors, err := p.Colors("colors", nil)
	if err != nil {
		return nil, err
	}
	width, stop := p.Int("width", 3), p.Int("stop_frames", 3)
	if width <= 0 || stop <= 0 {
		return nil, errors.New("width and stop_frames must be positive")
	}
	return New(colors, width, stop), nil
}

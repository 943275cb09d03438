package model

// Palette hands out colours one at a time.
type Palette interface {
	Next() Color
}

type cycle struct {
	colors []Color
	i      int
}

// Cycle repeats colors forever. An empty list yields black.
func Cycle(colors ...Color) Palette {
	return &cycle{colors: append([]Color(nil), colors...)}
}

func (c *cycle) Next() Color {
	if len(c.colors) == 0 {
		return Black
	}
	v := c.colors[c.i]
	c.i = (c.i + 1) % len(c.colors)
	return v
}

// Rainbow walks the colour wheel in count steps, each mod-th of a full turn.
type Rainbow struct {
	count, mod int
	i          int
}

func NewRainbow(count, mod int) *Rainbow {
	if count <= 0 {
		count = 1
	}
	if mod <= 0 {
		mod = count
	}
	return &Rainbow{count: count, mod: mod}
}

func (r *Rainbow) Next() Color {
	i := r.i
	r.i = (r.i + 1) % r.count
	return Wheel(uint8((i * (256 / r.mod)) & 255))
}

// Wheel maps 0..255 around red -> green -> blue -> red.
func Wheel(pos uint8) Color {
	p := int(pos)
	switch {
	case p < 85:
		return NewColor(uint8(255-p*3), uint8(p*3), 0)
	case p < 170:
		p -= 85
		return NewColor(0, uint8(255-p*3), uint8(p*3))
	default:
		p -= 170
		return NewColor(uint8(p*3), 0, uint8(255-p*3))
	}
}

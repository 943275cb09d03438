package effect

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/coreman2200/funtimes-holidaylights/model"
)

// Params are the loosely typed knobs an effect factory reads, as decoded from
// YAML. Missing keys fall back to the factory's defaults.
type Params map[string]any

func (p Params) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case uint64:
		return float64(v)
	default:
		return def
	}
}

func (p Params) Int(key string, def int) int {
	switch v := p[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}

func (p Params) String(key string, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

// Color reads a single colour given as "#rrggbb" or as an integer.
func (p Params) Color(key string, def model.Color) (model.Color, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	c, err := ParseColor(v)
	if err != nil {
		return def, fmt.Errorf("param %s: %w", key, err)
	}
	return c, nil
}

// Colors reads a list of colours. A scalar is treated as a one-element list.
func (p Params) Colors(key string, def []model.Color) ([]model.Color, error) {
	v, ok := p[key]
	if !ok {
		return def, nil
	}
	list, isList := v.([]any)
	if !isList {
		list = []any{v}
	}
	out := make([]model.Color, 0, len(list))
	for _, item := range list {
		c, err := ParseColor(item)
		if err != nil {
			return def, fmt.Errorf("param %s: %w", key, err)
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return def, nil
	}
	return out, nil
}

// ParseColor accepts "#rrggbb" strings and packed integers.
func ParseColor(v any) (model.Color, error) {
	switch c := v.(type) {
	case string:
		col, err := colorful.Hex(c)
		if err != nil {
			return model.Black, err
		}
		r, g, b := col.RGB255()
		return model.NewColor(r, g, b), nil
	case int:
		return model.Color(uint32(c) & 0xFFFFFF), nil
	case int64:
		return model.Color(uint32(c) & 0xFFFFFF), nil
	case uint64:
		return model.Color(uint32(c) & 0xFFFFFF), nil
	case model.Color:
		return c, nil
	default:
		return model.Black, fmt.Errorf("cannot use %T as a colour", v)
	}
}

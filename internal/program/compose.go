package program

import (
	"errors"
	"fmt"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/internal/sequence"
)

var ErrEmptyProgram = errors.New("program has no effects")

// EffectSpec names a registered effect and its params.
type EffectSpec struct {
	Name   string
	Params effect.Params
}

// Spec describes a program assembled from registered effects.
type Spec struct {
	Name    string
	Options sequence.Options
	Effects []EffectSpec
}

// Compose turns spec into a Variant. Every effect is built once against a
// strip of n pixels so that bad names and params fail here, not at showtime.
func Compose(spec Spec, reg *effect.Registry, n int) (Variant, error) {
	if len(spec.Effects) == 0 {
		return Variant{}, fmt.Errorf("%s: %w", spec.Name, ErrEmptyProgram)
	}
	build := func(n int) ([]effect.Effect, error) {
		out := make([]effect.Effect, 0, len(spec.Effects))
		for _, es := range spec.Effects {
			fx, err := reg.Build(es.Name, n, es.Params)
			if err != nil {
				return nil, err
			}
			out = append(out, fx)
		}
		return out, nil
	}
	if _, err := build(n); err != nil {
		return Variant{}, fmt.Errorf("program %s: %w", spec.Name, err)
	}
	return Variant{Name: spec.Name, New: func() Program {
		return NewLoop(spec.Name, spec.Options, build)
	}}, nil
}

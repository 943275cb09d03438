package effect

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownEffect = errors.New("unknown effect")

// Factory builds a fresh effect instance from params. n is the length of the
// strip the effect will be rendered onto.
type Factory func(n int, p Params) (Effect, error)

// Registry maps effect names to factories so programs can be assembled from
// configuration.
type Registry struct{ m map[string]Factory }

func NewRegistry() *Registry { return &Registry{m: map[string]Factory{}} }

func (r *Registry) Register(name string, f Factory) {
	if f == nil || name == "" {
		return
	}
	r.m[name] = f
}

func (r *Registry) Get(name string) (Factory, bool) { f, ok := r.m[name]; return f, ok }

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	out := make([]string, 0, len(r.m))
	for k := range r.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Build creates an instance of the named effect.
func (r *Registry) Build(name string, n int, p Params) (Effect, error) {
	f, ok := r.m[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEffect, name)
	}
	fx, err := f(n, p)
	if err != nil {
		return nil, fmt.Errorf("effect %s: %w", name, err)
	}
	return fx, nil
}

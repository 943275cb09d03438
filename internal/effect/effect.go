// Package effect defines the contract every animation satisfies so that
// programs can drive them without knowing their internals.
package effect

import "github.com/coreman2200/funtimes-holidaylights/model"

// Effect renders one animation frame into s, advanced by dt seconds.
type Effect interface {
	Apply(s model.Strip, dt float64)
}

// Resetter is implemented by effects that can reinitialise their animation
// state. s is the buffer the effect is about to render into.
type Resetter interface {
	Reset(s model.Strip)
}

// Transitioner is implemented by effects that know when cutting away would
// look bad, e.g. mid-sparkle.
type Transitioner interface {
	CanTransition() bool
}

// Reset calls fx.Reset when fx supports it.
func Reset(fx Effect, s model.Strip) {
	if r, ok := fx.(Resetter); ok {
		r.Reset(s)
	}
}

// CanTransition reports the effect's hint, or true when it has none.
func CanTransition(fx Effect) bool {
	if t, ok := fx.(Transitioner); ok {
		return t.CanTransition()
	}
	return true
}

// Func adapts a plain function into a stateless Effect.
type Func func(s model.Strip, dt float64)

func (f Func) Apply(s model.Strip, dt float64) { f(s, dt) }

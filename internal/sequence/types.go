package sequence

import (
	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

// PlayerState enumerates the effect-cycling states.
type PlayerState string

const (
	Idle          PlayerState = "idle"          // no effect
	Single        PlayerState = "single"        // one effect, never transitions
	Cycling       PlayerState = "cycling"       // current effect renders straight to the strip
	Transitioning PlayerState = "transitioning" // current and next blend through scratch frames
)

// Policy decides whether an effect's CanTransition hint is honoured.
type Policy int

const (
	// IgnoreHint arms the crossfade as soon as the dwell time is up.
	IgnoreHint Policy = iota
	// WaitForHint defers the crossfade until the current effect reports ready,
	// for at most Dwell+Fade seconds past the dwell. After that the cut is
	// forced.
	WaitForHint
)

// Options configure a Player. Dwell and Fade are seconds and are taken as
// given: a zero Dwell arms the next effect on the first tick and a zero or
// negative Fade is a hard cut. A nil Ease falls back to DefaultOptions.Ease.
type Options struct {
	Dwell  float64
	Fade   float64
	Ease   model.Ease
	Policy Policy
}

// DefaultOptions are the stock crossfade settings.
var DefaultOptions = Options{Dwell: 20, Fade: 2, Ease: model.Cubic, Policy: IgnoreHint}

// Player owns an ordered, cyclic list of effects and crossfades between them.
type Player struct {
	State PlayerState

	opts    Options
	effects []effect.Effect
	idx     int // index of the current effect

	cur, next effect.Effect

	dwell *Timer
	fade  *Timer

	// scratch frames, only allocated while Transitioning
	bufA, bufB model.Frame

	// OnChange is called with the index of the effect that became current.
	OnChange func(idx int)
}

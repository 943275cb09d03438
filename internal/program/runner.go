package program

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-holidaylights/model"
)

// Runner owns the live strip and the active program.
type Runner struct {
	strip  model.Strip
	p      Program
	pinned bool
	log    zerolog.Logger

	// OnSwitch, when set, is called after every Start with the new program's
	// name ("" when cleared).
	OnSwitch func(name string, pinned bool)
}

func NewRunner(strip model.Strip) *Runner {
	return &Runner{
		strip: strip,
		log:   log.With().Str("component", "runner").Logger(),
	}
}

func (r *Runner) Strip() model.Strip { return r.strip }

// Program is the active program, nil when none.
func (r *Runner) Program() Program { return r.p }

// Name of the active program, "" when none.
func (r *Runner) Name() string {
	if r.p == nil {
		return ""
	}
	return r.p.Name()
}

// Pinned reports whether the active program was started with keepAlive and
// should not be replaced by the schedule.
func (r *Runner) Pinned() bool { return r.pinned }

// Release lets the schedule replace the active program again.
func (r *Runner) Release() { r.pinned = false }

// Start ends the active program and starts p. Any crossfade in progress is
// dropped. A nil p clears the strip.
func (r *Runner) Start(p Program, keepAlive bool) {
	if r.p != nil {
		r.p.End(r)
	}
	r.p = p
	r.pinned = keepAlive && p != nil
	if p == nil {
		r.strip.Fill(model.Black)
		if err := r.strip.Show(); err != nil {
			r.log.Warn().Err(err).Msg("clearing strip")
		}
		r.log.Info().Msg("no program")
	} else {
		p.Start(r)
		r.log.Info().Str("program", p.Name()).Bool("pinned", r.pinned).Msg("program started")
	}
	if r.OnSwitch != nil {
		r.OnSwitch(r.Name(), r.pinned)
	}
}

// Update advances the active program by dt seconds and shows the result.
func (r *Runner) Update(dt float64) error {
	if r.p == nil {
		return nil
	}
	r.p.Update(r, dt)
	return r.strip.Show()
}

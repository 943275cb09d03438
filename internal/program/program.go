// Package program composes effects into schedulable programs and decides which
// program runs at a given moment.
package program

import (
	"github.com/rs/zerolog/log"

	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/internal/sequence"
)

// Program is a schedulable composition of one or more effects. The Runner
// calls Start once, Update every frame, and End when it switches away.
type Program interface {
	Name() string
	Start(r *Runner)
	Update(r *Runner, dt float64)
	End(r *Runner)
}

// Builder creates the effect list of a program for a strip of n pixels.
type Builder func(n int) ([]effect.Effect, error)

// Loop cycles its effects with crossfades between them.
type Loop struct {
	name   string
	build  Builder
	player *sequence.Player
}

func NewLoop(name string, opts sequence.Options, build Builder) *Loop {
	return &Loop{name: name, build: build, player: sequence.NewPlayer(opts)}
}

// Effects wraps a fixed list constructor as a Builder.
func Effects(f func(n int) []effect.Effect) Builder {
	return func(n int) ([]effect.Effect, error) { return f(n), nil }
}

func (l *Loop) Name() string { return l.name }

// Player exposes the state machine, mostly for diagnostics.
func (l *Loop) Player() *sequence.Player { return l.player }

func (l *Loop) Start(r *Runner) {
	fx, err := l.build(r.Strip().Len())
	if err != nil {
		log.Error().Err(err).Str("program", l.name).Msg("building effects failed; program stays idle")
		fx = nil
	}
	l.player.OnChange = func(idx int) {
		log.Debug().Str("program", l.name).Int("effect", idx).Msg("effect active")
	}
	l.player.Load(fx...)
	l.player.Start(r.Strip())
}

func (l *Loop) Update(r *Runner, dt float64) {
	l.player.Tick(r.Strip(), dt)
}

func (l *Loop) End(*Runner) {
	l.player.Stop()
}

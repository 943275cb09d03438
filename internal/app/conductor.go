package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	diag "github.com/coreman2200/funtimes-holidaylights/internal/diagnostics"
	"github.com/coreman2200/funtimes-holidaylights/internal/program"
)

const (
	defaultFPS = 30
	// maxStep bounds dt after a stall so animations do not jump.
	maxStep = 0.25
)

// Conductor drives the runner from a frame ticker and swaps programs as the
// schedule dictates.
type Conductor struct {
	Runner   *program.Runner
	Schedule program.Schedule
	FPS      int
	// PollEvery bounds the time between schedule checks, so a clock that is
	// set backwards is noticed.
	PollEvery time.Duration
	Now       func() time.Time
	Diag      diag.Sink
	// OnDecision, when set, sees every schedule check.
	OnDecision func(slot program.Slot)

	next    time.Time
	last    time.Time
	failing bool
	log     zerolog.Logger
}

func NewConductor(r *program.Runner, s program.Schedule, fps int) *Conductor {
	c := &Conductor{
		Runner:    r,
		Schedule:  s,
		FPS:       fps,
		PollEvery: time.Minute,
		Now:       time.Now,
		Diag:      diag.Discard,
		log:       log.With().Str("component", "conductor").Logger(),
	}
	r.OnSwitch = c.switched
	return c
}

func (c *Conductor) switched(name string, pinned bool) {
	if name == "" {
		c.Diag.Push(diag.New(diag.Info, diag.ProgramCleared, "strip cleared"))
		return
	}
	c.Diag.Push(diag.New(diag.Info, diag.ProgramStarted, "program started").
		With("program", name).With("pinned", pinned))
}

// Override starts v and keeps it running until Resume.
func (c *Conductor) Override(v program.Variant) {
	c.Runner.Start(v.New(), true)
	c.Diag.Push(diag.New(diag.Info, diag.SchedulePinned, "schedule paused by override").With("program", v.Name))
}

// Resume hands the strip back to the schedule at the next Step.
func (c *Conductor) Resume() {
	c.Runner.Release()
	c.next = time.Time{}
}

// Step consults the schedule if a check is due and starts a fresh instance of
// the scheduled variant when it differs from what is running. Nothing is
// swapped while the runner is pinned.
func (c *Conductor) Step(now time.Time) {
	if c.Runner.Pinned() {
		return
	}
	if now.Before(c.last) {
		c.log.Warn().Time("now", now).Time("last", c.last).Msg("clock went backwards")
		c.next = time.Time{}
	}
	c.last = now
	if now.Before(c.next) {
		return
	}

	slot := c.Schedule.Check(now)
	c.next = slot.Next
	if poll := now.Add(c.PollEvery); c.PollEvery > 0 && poll.Before(c.next) {
		c.next = poll
	}
	if c.OnDecision != nil {
		c.OnDecision(slot)
	}

	want := ""
	if slot.Variant != nil {
		want = slot.Variant.Name
	}
	if want == c.Runner.Name() {
		return
	}
	ev := c.log.Info().Bool("on_duty", slot.OnDuty).Time("next", slot.Next)
	if slot.Variant == nil {
		ev.Msg("schedule: off duty")
		c.Diag.Push(diag.New(diag.Info, diag.ScheduleOffDuty, "off duty").With("until", slot.Next))
		c.Runner.Start(nil, false)
		return
	}
	ev.Str("program", want).Time("date", slot.Date).Msg("schedule: on duty")
	c.Diag.Push(diag.New(diag.Info, diag.ScheduleOnDuty, "on duty").With("program", want).With("until", slot.Next))
	c.Runner.Start(slot.Variant.New(), false)
}

// Frame advances the running program by dt seconds and shows it. Driver
// errors are logged and reported once per failure streak; the loop goes on.
func (c *Conductor) Frame(dt float64) {
	err := c.Runner.Update(dt)
	switch {
	case err != nil && !c.failing:
		c.failing = true
		c.log.Error().Err(err).Msg("frame output failed")
		c.Diag.Push(diag.New(diag.Err, diag.DriverWrite, "frame output failed").With("error", err.Error()))
	case err != nil:
		c.log.Trace().Err(err).Msg("frame output failed")
	case c.failing:
		c.failing = false
		c.log.Info().Msg("frame output recovered")
	}
}

// Run ticks at FPS until ctx is done, then clears the strip.
func (c *Conductor) Run(ctx context.Context) error {
	fps := c.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	c.Step(c.Now())
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			c.Runner.Start(nil, false)
			return nil
		case t := <-ticker.C:
			dt := min(t.Sub(last).Seconds(), maxStep)
			last = t
			c.Step(c.Now())
			c.Frame(dt)
		}
	}
}

package sequence

import (
	"github.com/coreman2200/funtimes-holidaylights/internal/effect"
	"github.com/coreman2200/funtimes-holidaylights/model"
)

// NewPlayer constructs a Player. Negative durations are treated as zero.
func NewPlayer(opts Options) *Player {
	if opts.Dwell < 0 {
		opts.Dwell = 0
	}
	if opts.Fade < 0 {
		opts.Fade = 0
	}
	if opts.Ease == nil {
		opts.Ease = DefaultOptions.Ease
	}
	return &Player{
		State: Idle,
		opts:  opts,
		dwell: NewTimer(opts.Dwell),
		fade:  NewTimer(opts.Fade),
	}
}

// Load replaces the effect list and returns the player to Idle.
func (p *Player) Load(fx ...effect.Effect) {
	p.effects = append([]effect.Effect(nil), fx...)
	p.Stop()
}

// Start selects the first effect. With more than one effect the player cycles.
func (p *Player) Start(s model.Strip) {
	p.Stop()
	switch len(p.effects) {
	case 0:
		return
	case 1:
		p.State = Single
	default:
		p.State = Cycling
	}
	p.cur = p.effects[0]
	effect.Reset(p.cur, s)
	p.dwell.Reset()
	if p.OnChange != nil {
		p.OnChange(p.idx)
	}
}

// Stop abandons any crossfade and returns to Idle.
func (p *Player) Stop() {
	p.State = Idle
	p.idx = 0
	p.cur, p.next = nil, nil
	p.bufA, p.bufB = nil, nil
	p.dwell.Reset()
	p.fade.Reset()
}

// Current is the effect rendering (or fading out), nil when Idle.
func (p *Player) Current() effect.Effect { return p.cur }

// Next is the queued effect; non-nil only while Transitioning.
func (p *Player) Next() effect.Effect { return p.next }

// Index is the position of the current effect in the list.
func (p *Player) Index() int { return p.idx }

// Ratio is the crossfade progress in [0,1], 0 outside a transition.
func (p *Player) Ratio() float64 {
	if p.State != Transitioning {
		return 0
	}
	return p.fade.Progress()
}

// Tick advances the player by dt seconds and writes the frame into s.
func (p *Player) Tick(s model.Strip, dt float64) {
	switch p.State {
	case Single:
		p.cur.Apply(s, dt)
	case Cycling:
		p.dwell.Advance(dt)
		p.cur.Apply(s, dt)
		if p.dwell.Expired(false) && p.mayCut() {
			p.arm(s)
		}
	case Transitioning:
		p.fade.Advance(dt)
		p.cur.Apply(p.bufA, dt)
		p.next.Apply(p.bufB, dt)
		Mix(s, p.bufA, p.bufB, p.fade.Progress(), p.opts.Ease)
		if p.fade.Expired(false) {
			p.promote()
		}
	}
}

func (p *Player) mayCut() bool {
	if p.opts.Policy == WaitForHint {
		return effect.CanTransition(p.cur) || p.overdue()
	}
	return true
}

// overdue is true once the dwell has run Dwell+Fade past its expiry.
func (p *Player) overdue() bool {
	return p.dwell.Elapsed() >= 2*p.opts.Dwell+p.opts.Fade
}

// arm queues the next effect and seeds both scratch frames with the strip's
// current contents, so overlay effects keep what is already shown.
func (p *Player) arm(s model.Strip) {
	p.next = p.effects[(p.idx+1)%len(p.effects)]
	p.bufA = model.Snapshot(s)
	p.bufB = model.Snapshot(s)
	effect.Reset(p.next, p.bufB)
	p.fade.Reset()
	p.State = Transitioning
}

// promote makes the queued effect current. It was already reset by arm when it
// was queued and has been rendering into bufB since, so it is not reset again.
func (p *Player) promote() {
	p.idx = (p.idx + 1) % len(p.effects)
	p.cur, p.next = p.next, nil
	p.bufA, p.bufB = nil, nil
	p.dwell.Reset()
	p.State = Cycling
	if p.OnChange != nil {
		p.OnChange(p.idx)
	}
}

package sequence

import "github.com/coreman2200/funtimes-holidaylights/model"

// clamp01 clamps x in [0,1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Keyframe is a value at time T (seconds). Ease names the curve of the segment
// that starts at this keyframe.
type Keyframe struct {
	T    float64 `yaml:"t"`
	V    float64 `yaml:"v"`
	Ease string  `yaml:"ease,omitempty"` // "linear","smooth","smoother","cubic","scurve"
}

// Envelope is a sorted list of keyframes; Eval(t) interpolates a value.
type Envelope struct {
	Keys []Keyframe `yaml:"keys"`
}

// Ramp is the symmetric rise-and-fall envelope 0 -> peak -> 0 over period.
func Ramp(period, peak float64, ease string) Envelope {
	return Envelope{Keys: []Keyframe{
		{T: 0, V: 0, Ease: ease},
		{T: period / 2, V: peak, Ease: ease}, // falling segment eases the same way
		{T: period, V: 0},
	}}
}

// Duration is the time of the last keyframe.
func (e Envelope) Duration() float64 {
	if len(e.Keys) == 0 {
		return 0
	}
	return e.Keys[len(e.Keys)-1].T
}

// Eval returns the value of the envelope at time t (seconds).
// If there are no keys, returns 0; if one key, returns its value.
// Keys must be sorted by T ascending.
func (e Envelope) Eval(t float64) float64 {
	n := len(e.Keys)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return e.Keys[0].V
	}
	// before first
	if t <= e.Keys[0].T {
		return e.Keys[0].V
	}
	// after last
	if t >= e.Keys[n-1].T {
		return e.Keys[n-1].V
	}
	for i := 0; i < n-1; i++ {
		a := e.Keys[i]
		b := e.Keys[i+1]
		if t >= a.T && t <= b.T {
			den := (b.T - a.T)
			if den <= 0 {
				return b.V
			}
			u := clamp01((t - a.T) / den)
			u = model.EaseByName(a.Ease)(u)
			return a.V + (b.V-a.V)*u
		}
	}
	return e.Keys[n-1].V
}

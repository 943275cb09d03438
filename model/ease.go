package model

import "math"

// Ease maps progress in [0,1] to eased progress in [0,1].
type Ease func(t float64) float64

func Linear(t float64) float64 { return t }

// SCurve is t²/(2(t²−t)+1).
func SCurve(t float64) float64 {
	return (t * t) / (2*(t*t-t) + 1)
}

// Smooth is the classic smoothstep 3t² - 2t³.
func Smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}

// Smoother is 6t⁵ - 15t⁴ + 10t³.
func Smoother(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

// Cubic is the cubic ease-in-out.
func Cubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseByName resolves the names used in config files. Unknown names fall back
// to linear.
func EaseByName(name string) Ease {
	switch name {
	case "smooth":
		return Smooth
	case "smoother":
		return Smoother
	case "cubic":
		return Cubic
	case "scurve", "fade":
		return SCurve
	default:
		return Linear
	}
}

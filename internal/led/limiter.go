package led

import "math"

// Power limits what an encoded frame may draw.
//
//   - WhiteCap caps each LED's R+G+B at that fraction of full white. 0 or >= 1
//     disables the cap.
//   - ChanMA is the current of one channel at full scale (WS2812 ≈ 20 mA).
//   - BudgetMA is the global budget. 0 disables it.
//   - Knee is the fraction of the budget where soft limiting begins.
//     Between the knee and the budget, half of the excess is let through.
type Power struct {
	WhiteCap float64 `yaml:"white_cap"`
	ChanMA   float64 `yaml:"chan_ma"`
	BudgetMA float64 `yaml:"budget_ma"`
	Knee     float64 `yaml:"knee"`
}

const (
	defaultChanMA = 20.0
	defaultKnee   = 0.9
)

// Current estimates the draw of rgb in mA.
func (p Power) Current(rgb []byte) float64 {
	chanMA := p.ChanMA
	if chanMA <= 0 {
		chanMA = defaultChanMA
	}
	var sum float64
	for _, v := range rgb {
		sum += float64(v)
	}
	return sum / 255 * chanMA
}

// Limit applies the white cap, then the global budget, in place. Channels are
// rounded down so the result never exceeds either limit.
func (p Power) Limit(rgb []byte) {
	if p.WhiteCap > 0 && p.WhiteCap < 1 {
		limit := p.WhiteCap * 3 * 255
		for i := 0; i+2 < len(rgb); i += 3 {
			s := float64(rgb[i]) + float64(rgb[i+1]) + float64(rgb[i+2])
			if s > limit {
				scaleBytes(rgb[i:i+3], limit/s)
			}
		}
	}

	if p.BudgetMA <= 0 {
		return
	}
	total := p.Current(rgb)
	if total <= 0 {
		return
	}
	knee := p.Knee
	if knee <= 0 || knee >= 1 {
		knee = defaultKnee
	}
	soft := knee * p.BudgetMA
	if total <= soft {
		return
	}
	// past the knee, half of the excess passes until the budget is reached
	target := min(p.BudgetMA, soft+(total-soft)/2)
	scaleBytes(rgb, target/total)
}

func scaleBytes(b []byte, s float64) {
	if s >= 1 {
		return
	}
	for i := range b {
		b[i] = byte(math.Floor(float64(b[i]) * s))
	}
}

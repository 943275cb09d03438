package sequence

import "github.com/coreman2200/funtimes-holidaylights/model"

// Mix blends frames a and b into dst pixel by pixel. ratio is eased by ease;
// channels are linear, no gamma assumed.
func Mix(dst model.Strip, a, b model.Strip, ratio float64, ease model.Ease) {
	n := min(dst.Len(), a.Len(), b.Len())
	for i := 0; i < n; i++ {
		dst.Set(i, model.Blend(a.At(i), b.At(i), ratio, ease))
	}
}

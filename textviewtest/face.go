package textviewtest

import textview "github.com/gogpu/textview"

// FixedFace is a textview.Face in which every rune has the same advance.
// Pixel positions in tests become simple multiples of Adv.
type FixedFace struct {
	Adv float64
	M   textview.Metrics
}

// NewFixedFace creates a face with the given advance, a 8px ascent and a
// 2px descent.
func NewFixedFace(adv float64) *FixedFace {
	return &FixedFace{
		Adv: adv,
		M:   textview.Metrics{Ascent: 8, Descent: 2},
	}
}

// Metrics implements textview.Face.
func (f *FixedFace) Metrics() textview.Metrics {
	return f.M
}

// Advance implements textview.Face.
func (f *FixedFace) Advance(s string) float64 {
	return float64(len([]rune(s))) * f.Adv
}

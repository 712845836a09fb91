package fontface

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	textview "github.com/gogpu/textview"
)

// Face is what Source.Face returns: a textview.Face with its pixel size
// attached.
type Face interface {
	textview.Face

	// Size returns the face's pixel size.
	Size() float64
}

// faceConfig collects face options.
type faceConfig struct {
	shaping bool
}

// FaceOption configures a face created by Source.Face.
type FaceOption func(*faceConfig)

// WithShaping measures text through HarfBuzz shaping instead of summing
// per-glyph advances, picking up kerning and ligatures.
func WithShaping() FaceOption {
	return func(c *faceConfig) {
		c.shaping = true
	}
}

// sourceFace implements Face over a Source at one size.
//
// sfnt.Buffer is not safe for concurrent use; the mutex serializes
// measurement calls so one face can be shared across goroutines.
type sourceFace struct {
	source *Source
	size   float64

	metrics textview.Metrics

	mu  sync.Mutex
	buf sfnt.Buffer

	shaper *hbShaper
}

// initMetrics computes the vertical metrics once at face creation.
func (f *sourceFace) initMetrics() error {
	m, err := f.source.font.Metrics(&f.buf, fixed.Int26_6(f.size*64), font.HintingFull)
	if err != nil {
		return err
	}
	ascent := fixedToFloat64(m.Ascent)
	descent := fixedToFloat64(m.Descent)
	// Hinting can round Height below ascent+descent; the gap stays
	// non-negative per the Metrics contract.
	gap := max(fixedToFloat64(m.Height)-ascent-descent, 0)
	f.metrics = textview.Metrics{
		Ascent:  ascent,
		Descent: descent,
		LineGap: gap,
	}
	return nil
}

// Metrics implements textview.Face.
func (f *sourceFace) Metrics() textview.Metrics {
	return f.metrics
}

// Size implements Face.
func (f *sourceFace) Size() float64 {
	return f.size
}

// Advance implements textview.Face.
func (f *sourceFace) Advance(s string) float64 {
	if s == "" {
		return 0
	}
	if f.shaper != nil {
		return f.shaper.advance(s, f.size)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	ppem := fixed.Int26_6(f.size * 64)
	var total float64
	for _, r := range s {
		gi, err := f.source.font.GlyphIndex(&f.buf, r)
		if err != nil {
			continue
		}
		adv, err := f.source.font.GlyphAdvance(&f.buf, gi, ppem, font.HintingFull)
		if err != nil {
			continue
		}
		total += fixedToFloat64(adv)
	}
	return total
}

// fixedToFloat64 converts fixed.Int26_6 to float64.
func fixedToFloat64(x fixed.Int26_6) float64 {
	return float64(x) / 64.0
}

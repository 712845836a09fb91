package textview

// Metrics holds the vertical metrics of a font face at a given size.
// All values are in pixels and non-negative.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the line.
	Ascent float64
	// Descent is the distance from the baseline to the bottom of the line.
	Descent float64
	// LineGap is the recommended extra spacing between lines.
	LineGap float64
}

// LineHeight returns the total height of a line of text.
func (m Metrics) LineHeight() float64 {
	return m.Ascent + m.Descent + m.LineGap
}

// Face measures text in a single font at a single size. Implementations
// live outside the layout engine; the fontface package provides ones backed
// by golang.org/x/image/font/sfnt and go-text/typesetting shaping, and the
// textviewtest package provides a fixed-advance double.
//
// A Face used as a metrics cache key is compared by interface identity, so
// implementations should hand out one value per (font, size) pair.
type Face interface {
	// Metrics returns the face's vertical metrics.
	Metrics() Metrics

	// Advance returns the horizontal extent of s in pixels. Tab runes have
	// no intrinsic advance and must not be passed here; layout expands
	// them through a TabExpander before measuring.
	Advance(s string) float64
}

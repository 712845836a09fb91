package textview

import "github.com/rivo/uniseg"

// GlyphPainter measures and draws the text of a GlyphView. Separating the
// painter from the view keeps the view a cheap value fragment; the painter
// owns the font-dependent caches.
//
// Offsets passed to painter methods are model offsets within the view's
// range.
type GlyphPainter interface {
	// Span measures [p0, p1) starting at pixel position x, expanding tabs
	// through e. A nil expander measures tabs as a single space.
	Span(ctx *Context, v *GlyphView, p0, p1 int, e TabExpander, x float64) float64

	// Height returns the line height of the view's face.
	Height(ctx *Context, v *GlyphView) float64

	// Ascent returns the baseline distance from the top of the span.
	Ascent(ctx *Context, v *GlyphView) float64

	// Descent returns the distance from the baseline to the bottom.
	Descent(ctx *Context, v *GlyphView) float64

	// Paint draws [p0, p1) into alloc with the surface's current color.
	Paint(ctx *Context, v *GlyphView, s Surface, alloc Rect, p0, p1 int) error

	// BoundedPosition returns the largest offset q such that [p0, q)
	// starting at pixel position x fits within span pixels. Never splits
	// a grapheme cluster.
	BoundedPosition(ctx *Context, v *GlyphView, p0 int, x, span float64) int

	// HitTest returns the offset under pixel position x when [p0, view
	// end) is laid out starting at x0, rounding past glyph midpoints.
	HitTest(ctx *Context, v *GlyphView, p0 int, x0, x float64) int

	// PainterFor returns the painter a fragment over [p0, p1) should use.
	PainterFor(ctx *Context, v *GlyphView, p0, p1 int) GlyphPainter
}

// metricsPainter is the default GlyphPainter. It measures runs through the
// Face interface one tab-delimited chunk at a time and keeps the metrics of
// the most recently used face.
type metricsPainter struct {
	face    Face
	metrics Metrics
}

// sync refreshes the cached face metrics when the view's style changed.
func (p *metricsPainter) sync(ctx *Context, v *GlyphView) Face {
	f := faceOf(ctx, v.elem)
	if f != p.face {
		p.face = f
		p.metrics = f.Metrics()
	}
	return f
}

// Span implements GlyphPainter. Tab expansion can re-enter Span through
// partial-span measurement, so it reads through its own buffer instead of
// the view's.
func (p *metricsPainter) Span(ctx *Context, v *GlyphView, p0, p1 int, e TabExpander, x float64) float64 {
	face := p.sync(ctx, v)
	var buf TextBuffer
	if err := ctx.Document().Text(p0, p1, &buf); err != nil {
		return 0
	}
	return TabbedTextWidth(&buf, face, x, e, p0)
}

// Height implements GlyphPainter.
func (p *metricsPainter) Height(ctx *Context, v *GlyphView) float64 {
	p.sync(ctx, v)
	return p.metrics.LineHeight()
}

// Ascent implements GlyphPainter.
func (p *metricsPainter) Ascent(ctx *Context, v *GlyphView) float64 {
	p.sync(ctx, v)
	return p.metrics.Ascent
}

// Descent implements GlyphPainter.
func (p *metricsPainter) Descent(ctx *Context, v *GlyphView) float64 {
	p.sync(ctx, v)
	return p.metrics.Descent + p.metrics.LineGap
}

// Paint implements GlyphPainter. The leading text is measured before the
// segment is fetched; both reads share the view's buffer.
func (p *metricsPainter) Paint(ctx *Context, v *GlyphView, s Surface, alloc Rect, p0, p1 int) error {
	face := p.sync(ctx, v)
	x := alloc.MinX
	if p0 > v.StartOffset() {
		head, err := v.textRange(ctx, v.StartOffset(), p0)
		if err != nil {
			return err
		}
		x += TabbedTextWidth(head, face, alloc.MinX, v.expander, v.StartOffset())
	}
	buf, err := v.textRange(ctx, p0, p1)
	if err != nil {
		return err
	}
	y := alloc.MinY + p.metrics.Ascent
	DrawTabbedText(s, buf, face, x, y, v.expander, p0)
	return nil
}

// BoundedPosition implements GlyphPainter. It walks grapheme clusters so a
// break never lands inside a combining sequence.
func (p *metricsPainter) BoundedPosition(ctx *Context, v *GlyphView, p0 int, x, span float64) int {
	face := p.sync(ctx, v)
	end := v.EndOffset()
	buf, err := v.textRange(ctx, p0, end)
	if err != nil {
		return p0
	}
	cur := x
	pos := p0
	g := uniseg.NewGraphemes(buf.String())
	for g.Next() {
		cluster := g.Runes()
		var next float64
		if len(cluster) == 1 && cluster[0] == '\t' && v.expander != nil {
			next = v.expander.NextTabStop(cur, pos)
		} else {
			next = cur + face.Advance(string(cluster))
		}
		if next-x > span {
			return pos
		}
		cur = next
		pos += len(cluster)
	}
	return end
}

// HitTest implements GlyphPainter.
func (p *metricsPainter) HitTest(ctx *Context, v *GlyphView, p0 int, x0, x float64) int {
	face := p.sync(ctx, v)
	buf, err := v.textRange(ctx, p0, v.EndOffset())
	if err != nil {
		return p0
	}
	return p0 + TabbedTextOffset(buf, face, x0, x, v.expander, p0, true)
}

// PainterFor implements GlyphPainter. The metrics painter carries no
// per-range state, so fragments share it.
func (p *metricsPainter) PainterFor(ctx *Context, v *GlyphView, p0, p1 int) GlyphPainter {
	return p
}

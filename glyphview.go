package textview

import (
	"image/color"
	"unicode"
)

// GlyphView presents one styled run of text over a leaf element. It is the
// atomic unit of flowed layout: paragraphs break glyph views into fragments
// addressed by (element, offset, length), so fragments stay valid views in
// their own right and together partition the element's range exactly.
//
// The zero offset/length pair means "the whole element", which keeps an
// unfragmented view tracking the element through edits without bookkeeping.
type GlyphView struct {
	elem Element

	// offset and length select a subrange of the element, both relative
	// to the element's start. length == 0 selects everything from offset
	// to the element's end.
	offset, length int

	painter  GlyphPainter
	expander TabExpander
	x        float64 // tab base recorded by TabbedSpan

	// parent is the flow view this fragment was placed under, used to
	// trim trailing whitespace from decorations at paragraph edges.
	parent View

	buf      TextBuffer
	dir      Direction
	dirValid bool
}

// NewGlyphView creates a view over the whole of elem.
func NewGlyphView(elem Element) *GlyphView {
	return &GlyphView{elem: elem}
}

// Element implements View.
func (v *GlyphView) Element() Element {
	return v.elem
}

// StartOffset implements View.
func (v *GlyphView) StartOffset() int {
	return v.elem.StartOffset() + v.offset
}

// EndOffset implements View.
func (v *GlyphView) EndOffset() int {
	if v.length != 0 {
		return v.StartOffset() + v.length
	}
	return v.elem.EndOffset()
}

// Painter returns the glyph painter, installing the default metrics
// painter on first use.
func (v *GlyphView) Painter() GlyphPainter {
	v.checkPainter()
	return v.painter
}

// SetPainter replaces the glyph painter.
func (v *GlyphView) SetPainter(p GlyphPainter) {
	v.painter = p
}

func (v *GlyphView) checkPainter() {
	if v.painter == nil {
		v.painter = &metricsPainter{}
	}
}

// textRange fills the view's buffer with [p0, p1). A document failure
// means the view's range went stale.
func (v *GlyphView) textRange(ctx *Context, p0, p1 int) (*TextBuffer, error) {
	if err := ctx.Document().Text(p0, p1, &v.buf); err != nil {
		return nil, &StaleViewError{Op: "GlyphView.textRange", Err: err}
	}
	return &v.buf, nil
}

// Direction returns the resolved base direction of the view's text.
func (v *GlyphView) Direction(ctx *Context) Direction {
	if !v.dirValid {
		buf, err := v.textRange(ctx, v.StartOffset(), v.EndOffset())
		if err != nil {
			return DirectionLTR
		}
		v.dir = BaseDirection(buf.String())
		v.dirValid = true
	}
	return v.dir
}

// TabbedSpan implements TabSpanner. It records the expander and starting
// position so later measurement and painting expand tabs consistently.
func (v *GlyphView) TabbedSpan(ctx *Context, x float64, e TabExpander) float64 {
	v.checkPainter()
	v.expander = e
	v.x = x
	return v.painter.Span(ctx, v, v.StartOffset(), v.EndOffset(), e, x)
}

// PartialSpan implements TabSpanner. Tabs count as a single space.
func (v *GlyphView) PartialSpan(ctx *Context, p0, p1 int) float64 {
	v.checkPainter()
	return v.painter.Span(ctx, v, p0, p1, nil, 0)
}

// Span implements View. The X span never drops below one pixel so empty
// runs stay hit-testable; superscript runs grow a third of a line so the
// raised text clears its neighbors.
func (v *GlyphView) Span(ctx *Context, axis Axis) float64 {
	v.checkPainter()
	if axis == AxisX {
		w := v.painter.Span(ctx, v, v.StartOffset(), v.EndOffset(), v.expander, v.x)
		return max(w, 1)
	}
	h := v.painter.Height(ctx, v)
	if styleOf(v.elem).Superscript {
		h += h / 3
	}
	return h
}

// Alignment implements View. Along Y the fraction marks the baseline, with
// superscript runs riding the top of the line and subscript runs hanging
// half an ascent lower.
func (v *GlyphView) Alignment(ctx *Context, axis Axis) float64 {
	if axis == AxisX {
		return 0.5
	}
	v.checkPainter()
	h := v.painter.Height(ctx, v)
	if h <= 0 {
		return 0
	}
	d := v.painter.Descent(ctx, v)
	a := v.painter.Ascent(ctx, v)
	style := styleOf(v.elem)
	switch {
	case style.Superscript:
		return 1.0
	case style.Subscript:
		return (h - (d + a/2)) / h
	default:
		return (h - d) / h
	}
}

// SetSize implements View. Glyph runs size to their content.
func (v *GlyphView) SetSize(ctx *Context, width, height float64) {}

// BreakWeight implements View. Along X the weight is Forced when a hard
// line break fits, Excellent when a natural break spot fits, Good when at
// least one cluster fits, and Bad otherwise.
func (v *GlyphView) BreakWeight(ctx *Context, axis Axis, x, span float64) BreakWeight {
	if axis == AxisY {
		if span < v.Span(ctx, axis) {
			return BreakGood
		}
		return BreakBad
	}
	v.checkPainter()
	p0 := v.StartOffset()
	p1 := v.painter.BoundedPosition(ctx, v, p0, x, span)
	if p1 == p0 {
		return BreakBad
	}
	if nl := v.newlineBefore(ctx, p0, p1); nl != -1 {
		return BreakForced
	}
	if breakSpot(ctx, v.elem, p0, p1) != -1 {
		return BreakExcellent
	}
	return BreakGood
}

// newlineBefore returns the offset of the first '\n' in [p0, p1), or -1.
func (v *GlyphView) newlineBefore(ctx *Context, p0, p1 int) int {
	buf, err := v.textRange(ctx, p0, p1)
	if err != nil {
		return -1
	}
	for i := 0; i < buf.Len(); i++ {
		if buf.At(i) == '\n' {
			return p0 + i
		}
	}
	return -1
}

// Break implements View. The fragment covers [pos, q) where q is the best
// break spot not past the bounded position; the caller lays out the
// remainder [q, EndOffset) on the next row.
func (v *GlyphView) Break(ctx *Context, axis Axis, pos int, x, span float64) View {
	if axis == AxisY {
		return v
	}
	v.checkPainter()
	end := v.EndOffset()
	p1 := v.painter.BoundedPosition(ctx, v, pos, x, span)
	if nl := v.newlineBefore(ctx, pos, p1); nl != -1 {
		p1 = nl + 1
	} else if spot := breakSpot(ctx, v.elem, pos, p1); spot != -1 {
		p1 = spot
	}
	if p1 <= pos {
		p1 = min(pos+1, end)
	}
	if pos == v.StartOffset() && p1 == end {
		return v
	}
	return v.Fragment(ctx, pos, p1)
}

// Fragment implements Fragmenter. The result is a fresh value over
// [p0, p1) sharing no mutable layout state with the receiver.
func (v *GlyphView) Fragment(ctx *Context, p0, p1 int) View {
	v.checkPainter()
	return &GlyphView{
		elem:     v.elem,
		offset:   p0 - v.elem.StartOffset(),
		length:   p1 - p0,
		painter:  v.painter.PainterFor(ctx, v, p0, p1),
		expander: v.expander,
		x:        v.x,
		parent:   v.parent,
	}
}

// Paint implements View. Painting layers: style background, layered
// highlights, then glyphs split into at most three color segments around
// the selection.
func (v *GlyphView) Paint(ctx *Context, s Surface, alloc Rect) error {
	v.checkPainter()
	p0, p1 := v.StartOffset(), v.EndOffset()
	style := styleOf(v.elem)
	host := ctx.Host()

	if style.Background != nil {
		s.SetColor(style.Background)
		s.FillRect(alloc)
	}
	if lh, ok := ctx.layeredHighlights(); ok {
		lh.PaintLayered(ctx, s, p0, p1, alloc, v)
	}

	fg := host.Foreground()
	if !host.Enabled() {
		fg = host.DisabledColor()
	} else if style.Foreground != nil {
		fg = style.Foreground
	}

	sel0, sel1 := host.Selection()
	selFG := host.SelectedTextColor()
	if host.Enabled() && host.SelectionVisible() && sel0 != sel1 && selFG != nil {
		pMin := max(sel0, p0)
		pMax := min(sel1, p1)
		if pMin < pMax {
			if pMin > p0 {
				if err := v.paintTextUsingColor(ctx, s, alloc, fg, p0, pMin); err != nil {
					return err
				}
			}
			if err := v.paintTextUsingColor(ctx, s, alloc, selFG, pMin, pMax); err != nil {
				return err
			}
			if pMax < p1 {
				return v.paintTextUsingColor(ctx, s, alloc, fg, pMax, p1)
			}
			return nil
		}
	}
	return v.paintTextUsingColor(ctx, s, alloc, fg, p0, p1)
}

// paintTextUsingColor draws [p0, p1) in the given color, then the
// underline and strike-through decorations when the style asks for them.
func (v *GlyphView) paintTextUsingColor(ctx *Context, s Surface, alloc Rect, c color.Color, p0, p1 int) error {
	s.SetColor(c)
	if err := v.painter.Paint(ctx, v, s, alloc, p0, p1); err != nil {
		return err
	}
	style := styleOf(v.elem)
	if !style.Underline && !style.StrikeThrough {
		return nil
	}

	// Decorations stop before trailing whitespace when the run ends its
	// paragraph, so underlines do not trail into the margin.
	b := p1
	if par := v.elem.Parent(); par != nil && p1 == par.EndOffset() {
		buf, err := v.textRange(ctx, p0, p1)
		if err != nil {
			return err
		}
		for b > p0 && unicode.IsSpace(buf.At(b-p0-1)) {
			b--
		}
	}
	if b <= p0 {
		return nil
	}

	start := v.StartOffset()
	x0 := alloc.MinX + v.painter.Span(ctx, v, start, p0, v.expander, alloc.MinX)
	x1 := x0 + v.painter.Span(ctx, v, p0, b, v.expander, x0)
	baseline := alloc.MinY + v.painter.Ascent(ctx, v)
	if style.Underline {
		y := baseline + 1
		s.DrawLine(x0, y, x1, y)
	}
	if style.StrikeThrough {
		y := baseline - v.painter.Ascent(ctx, v)*0.3
		s.DrawLine(x0, y, x1, y)
	}
	return nil
}

// ModelToView implements View. pos may equal EndOffset to address the
// caret after the last rune.
func (v *GlyphView) ModelToView(ctx *Context, pos int, bias Bias, alloc Rect) (Rect, error) {
	v.checkPainter()
	p0, p1 := v.StartOffset(), v.EndOffset()
	if err := checkRange(pos, p0, p1+1); err != nil {
		return Rect{}, err
	}
	w := v.painter.Span(ctx, v, p0, pos, v.expander, alloc.MinX)
	var x float64
	if v.Direction(ctx) == DirectionRTL {
		x = alloc.MaxX - w
	} else {
		x = alloc.MinX + w
	}
	return Rect{MinX: x, MinY: alloc.MinY, MaxX: x + 1, MaxY: alloc.MaxY}, nil
}

// ViewToModel implements View.
func (v *GlyphView) ViewToModel(ctx *Context, x, y float64, alloc Rect) (int, Bias) {
	v.checkPainter()
	p0, p1 := v.StartOffset(), v.EndOffset()
	if v.Direction(ctx) == DirectionRTL {
		x = alloc.MinX + (alloc.MaxX - x)
	}
	if x <= alloc.MinX {
		return p0, BiasForward
	}
	pos := v.painter.HitTest(ctx, v, p0, alloc.MinX, x)
	if pos >= p1 {
		return p1, BiasBackward
	}
	return pos, BiasForward
}

// InsertUpdate implements View.
func (v *GlyphView) InsertUpdate(ctx *Context, e *EditEvent, alloc Rect) {
	v.dirValid = false
	ctx.Host().PreferenceChanged(v, true, false)
}

// RemoveUpdate implements View.
func (v *GlyphView) RemoveUpdate(ctx *Context, e *EditEvent, alloc Rect) {
	v.dirValid = false
	ctx.Host().PreferenceChanged(v, true, false)
}

// ChangedUpdate implements View.
func (v *GlyphView) ChangedUpdate(ctx *Context, e *EditEvent, alloc Rect) {
	v.dirValid = false
	ctx.Host().PreferenceChanged(v, true, true)
}

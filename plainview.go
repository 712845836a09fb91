package textview

import "image/color"

// PlainView presents a multi-line element in a single font with no
// wrapping: one fixed-height visual line per child element. Geometry is
// O(1) in the line count, and the preferred width is maintained through a
// longest-line cache instead of remeasuring the document on every edit.
//
// PlainView is its own TabExpander: tabs advance to the next multiple of
// the tab size measured in 'm' advances.
type PlainView struct {
	elem Element

	tabChars int // tab size in characters

	face      Face
	metrics   Metrics
	tabSize   float64 // tab size in pixels
	tabBase   float64
	longLine  Element
	longWidth float64

	buf TextBuffer
}

// PlainOption configures a PlainView.
type PlainOption func(*PlainView)

// WithTabChars sets the tab size in character advances. The default is 8.
func WithTabChars(n int) PlainOption {
	return func(p *PlainView) {
		if n > 0 {
			p.tabChars = n
		}
	}
}

// NewPlainView creates a plain line view over elem, whose children are the
// line elements.
func NewPlainView(elem Element, opts ...PlainOption) *PlainView {
	p := &PlainView{elem: elem, tabChars: 8}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Element implements View.
func (p *PlainView) Element() Element {
	return p.elem
}

// StartOffset implements View.
func (p *PlainView) StartOffset() int {
	return p.elem.StartOffset()
}

// EndOffset implements View.
func (p *PlainView) EndOffset() int {
	return p.elem.EndOffset()
}

// lineCount returns the number of visual lines.
func (p *PlainView) lineCount() int {
	return max(p.elem.ChildCount(), 1)
}

// line returns the i'th line element, or the whole element when it has no
// children.
func (p *PlainView) line(i int) Element {
	if p.elem.ChildCount() == 0 {
		return p.elem
	}
	return p.elem.Child(i)
}

// updateMetrics refreshes the font-derived caches when the host face
// changed since the last pass.
func (p *PlainView) updateMetrics(ctx *Context) {
	f := ctx.Host().Face()
	if f == p.face {
		return
	}
	p.face = f
	p.metrics = f.Metrics()
	p.tabSize = float64(p.tabChars) * f.Advance("m")
	p.calculateLongestLine(ctx)
}

// lineText fills the shared buffer with the line's text, excluding the
// trailing newline.
func (p *PlainView) lineText(ctx *Context, line Element, p0, p1 int) (*TextBuffer, error) {
	if err := ctx.Document().Text(p0, p1, &p.buf); err != nil {
		return nil, &StaleViewError{Op: "PlainView.lineText", Err: err}
	}
	if n := p.buf.Len(); p1 == line.EndOffset() && n > 0 && p.buf.At(n-1) == '\n' {
		p.buf.Count--
	}
	return &p.buf, nil
}

// lineWidth measures one line with tabs expanded from the tab base.
func (p *PlainView) lineWidth(ctx *Context, line Element) float64 {
	if line == nil {
		return 0
	}
	buf, err := p.lineText(ctx, line, line.StartOffset(), line.EndOffset())
	if err != nil {
		return 0
	}
	return TabbedTextWidth(buf, p.face, p.tabBase, p, line.StartOffset())
}

// calculateLongestLine rescans every line to rebuild the width cache.
func (p *PlainView) calculateLongestLine(ctx *Context) {
	p.longLine = nil
	p.longWidth = 0
	for i := 0; i < p.lineCount(); i++ {
		line := p.line(i)
		if w := p.lineWidth(ctx, line); w > p.longWidth {
			p.longWidth = w
			p.longLine = line
		}
	}
}

// Span implements View.
func (p *PlainView) Span(ctx *Context, axis Axis) float64 {
	p.updateMetrics(ctx)
	if axis == AxisX {
		return p.longWidth
	}
	return float64(p.lineCount()) * p.metrics.LineHeight()
}

// Alignment implements View.
func (p *PlainView) Alignment(ctx *Context, axis Axis) float64 {
	return 0.5
}

// SetSize implements View. Plain lines ignore the allocation; their
// geometry depends only on the document and font.
func (p *PlainView) SetSize(ctx *Context, width, height float64) {}

// NextTabStop implements TabExpander.
func (p *PlainView) NextTabStop(x float64, tabOffset int) float64 {
	if p.tabSize == 0 {
		return x
	}
	ntabs := int((x - p.tabBase) / p.tabSize)
	return p.tabBase + float64(ntabs+1)*p.tabSize
}

// Paint implements View. Only lines intersecting the host viewport are
// drawn; layered highlights go under each line, excluding the newline
// except on the last line.
func (p *PlainView) Paint(ctx *Context, s Surface, alloc Rect) error {
	p.updateMetrics(ctx)
	p.tabBase = alloc.MinX
	host := ctx.Host()

	clip := host.Viewport()
	if clip.Empty() {
		clip = alloc
	} else {
		clip = clip.Intersect(alloc)
		if clip.Empty() {
			return nil
		}
	}

	h := p.metrics.LineHeight()
	count := p.lineCount()
	first := 0
	last := count - 1
	if h > 0 {
		first = max(0, int((clip.MinY-alloc.MinY)/h))
		last = min(count-1, int((clip.MaxY-alloc.MinY)/h))
	}

	layered, hasLayered := ctx.layeredHighlights()
	for i := first; i <= last; i++ {
		line := p.line(i)
		y := alloc.MinY + float64(i)*h
		if hasLayered {
			p0, p1 := line.StartOffset(), line.EndOffset()
			if i != count-1 {
				p1--
			}
			lineRect := Rect{MinX: alloc.MinX, MinY: y, MaxX: alloc.MaxX, MaxY: y + h}
			layered.PaintLayered(ctx, s, p0, p1, lineRect, p)
		}
		if err := p.drawLine(ctx, s, i, alloc.MinX, y+p.metrics.Ascent); err != nil {
			return err
		}
	}
	return nil
}

// drawLine renders one line at the given baseline, splitting it into
// unselected and selected color segments.
func (p *PlainView) drawLine(ctx *Context, s Surface, i int, x, baseline float64) error {
	host := ctx.Host()
	line := p.line(i)
	p0, p1 := line.StartOffset(), line.EndOffset()

	fg := host.Foreground()
	if !host.Enabled() {
		fg = host.DisabledColor()
	}
	sel0, sel1 := host.Selection()
	selFG := host.SelectedTextColor()
	if host.Enabled() && host.SelectionVisible() && sel0 != sel1 && selFG != nil {
		pMin := max(sel0, p0)
		pMax := min(sel1, p1)
		if pMin < pMax {
			if pMin > p0 {
				var err error
				if x, err = p.drawSegment(ctx, s, line, fg, p0, pMin, x, baseline); err != nil {
					return err
				}
			}
			var err error
			if x, err = p.drawSegment(ctx, s, line, selFG, pMin, pMax, x, baseline); err != nil {
				return err
			}
			if pMax < p1 {
				_, err = p.drawSegment(ctx, s, line, fg, pMax, p1, x, baseline)
			}
			return err
		}
	}
	_, err := p.drawSegment(ctx, s, line, fg, p0, p1, x, baseline)
	return err
}

// drawSegment draws [a, b) of line and returns the pixel position after it.
func (p *PlainView) drawSegment(ctx *Context, s Surface, line Element, c color.Color, a, b int, x, baseline float64) (float64, error) {
	buf, err := p.lineText(ctx, line, a, b)
	if err != nil {
		return x, err
	}
	s.SetColor(c)
	return DrawTabbedText(s, buf, p.face, x, baseline, p, a), nil
}

// ModelToView implements View.
func (p *PlainView) ModelToView(ctx *Context, pos int, bias Bias, alloc Rect) (Rect, error) {
	if err := checkRange(pos, p.StartOffset(), p.EndOffset()+1); err != nil {
		return Rect{}, err
	}
	p.updateMetrics(ctx)
	p.tabBase = alloc.MinX
	i := p.elem.ChildIndex(pos)
	if p.elem.ChildCount() == 0 {
		i = 0
	}
	line := p.line(i)
	buf, err := p.lineText(ctx, line, line.StartOffset(), min(pos, line.EndOffset()))
	if err != nil {
		return Rect{}, err
	}
	x := alloc.MinX + TabbedTextWidth(buf, p.face, alloc.MinX, p, line.StartOffset())
	h := p.metrics.LineHeight()
	y := alloc.MinY + float64(i)*h
	return Rect{MinX: x, MinY: y, MaxX: x + 1, MaxY: y + h}, nil
}

// ViewToModel implements View. The offset is clamped so a hit past the end
// of a line lands before its newline.
func (p *PlainView) ViewToModel(ctx *Context, x, y float64, alloc Rect) (int, Bias) {
	p.updateMetrics(ctx)
	p.tabBase = alloc.MinX
	h := p.metrics.LineHeight()
	count := p.lineCount()
	i := 0
	if h > 0 {
		i = int((y - alloc.MinY) / h)
	}
	if i < 0 {
		return p.StartOffset(), BiasForward
	}
	if i >= count {
		return p.EndOffset() - 1, BiasBackward
	}
	line := p.line(i)
	p0, p1 := line.StartOffset(), line.EndOffset()
	if x <= alloc.MinX {
		return p0, BiasForward
	}
	buf, err := p.lineText(ctx, line, p0, p1)
	if err != nil {
		return p0, BiasForward
	}
	pos := p0 + TabbedTextOffset(buf, p.face, alloc.MinX, x, p, p0, true)
	if pos > p1-1 {
		return p1 - 1, BiasBackward
	}
	return pos, BiasForward
}

// BreakWeight implements View.
func (p *PlainView) BreakWeight(ctx *Context, axis Axis, x, span float64) BreakWeight {
	return BreakBad
}

// Break implements View.
func (p *PlainView) Break(ctx *Context, axis Axis, pos int, x, span float64) View {
	return p
}

// InsertUpdate implements View.
func (p *PlainView) InsertUpdate(ctx *Context, e *EditEvent, alloc Rect) {
	p.updateDamage(ctx, e, alloc)
}

// RemoveUpdate implements View.
func (p *PlainView) RemoveUpdate(ctx *Context, e *EditEvent, alloc Rect) {
	p.updateDamage(ctx, e, alloc)
}

// ChangedUpdate implements View.
func (p *PlainView) ChangedUpdate(ctx *Context, e *EditEvent, alloc Rect) {
	p.updateDamage(ctx, e, alloc)
}

// updateDamage keeps the longest-line cache current and requests the
// smallest repaint that covers the edit:
//
//   - lines added or removed: recompute against the added lines, rescan if
//     the cached line went away, and repaint everything
//   - insert into one line: the line is damaged; the preferred width only
//     changes when the edit grew the cached line or pushed another past it
//   - remove from one line: damaged; a rescan is needed only when the edit
//     hit the cached line, since no other line can have grown
func (p *PlainView) updateDamage(ctx *Context, e *EditEvent, alloc Rect) {
	host := ctx.Host()
	p.updateMetrics(ctx)

	var added, removed []Element
	if ec := e.Change(p.elem); ec != nil {
		added, removed = ec.Added, ec.Removed
	}
	if len(added) > 0 || len(removed) > 0 {
		for _, a := range added {
			if w := p.lineWidth(ctx, a); w > p.longWidth {
				p.longWidth = w
				p.longLine = a
			}
		}
		for _, r := range removed {
			if r == p.longLine {
				p.calculateLongestLine(ctx)
				break
			}
		}
		host.PreferenceChanged(p, true, true)
		host.Repaint()
		return
	}

	i := p.elem.ChildIndex(e.Offset)
	if p.elem.ChildCount() == 0 {
		i = 0
	}
	p.damageLineRange(i, i, alloc, host)
	line := p.line(i)
	switch e.Kind {
	case EditInsert:
		if line == p.longLine {
			p.longWidth = p.lineWidth(ctx, line)
			host.PreferenceChanged(p, true, false)
		} else if w := p.lineWidth(ctx, line); w > p.longWidth {
			p.longWidth = w
			p.longLine = line
			host.PreferenceChanged(p, true, false)
		}
	case EditRemove:
		if line == p.longLine {
			p.calculateLongestLine(ctx)
			host.PreferenceChanged(p, true, false)
		}
	}
}

// damageLineRange damages the pixel band covering lines [i0, i1].
func (p *PlainView) damageLineRange(i0, i1 int, alloc Rect, host Host) {
	if alloc.Empty() {
		host.Repaint()
		return
	}
	h := p.metrics.LineHeight()
	host.Damage(Rect{
		MinX: alloc.MinX,
		MinY: alloc.MinY + float64(i0)*h,
		MaxX: alloc.MaxX,
		MaxY: alloc.MinY + float64(i1+1)*h,
	})
}

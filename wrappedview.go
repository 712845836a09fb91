package textview

import "image/color"

// WrappedView presents a multi-line element in a single font, wrapping
// each line element to the allocated width. Wrapping happens at word
// boundaries by default and between any two clusters with word wrap off.
//
// Each line caches its physical row count; an edit recomputes only the
// touched line and escalates to a height preference change exactly when
// the count moved.
type WrappedView struct {
	elem Element

	wordWrap bool
	tabChars int

	face    Face
	metrics Metrics
	tabSize float64
	tabBase float64
	width   float64

	lines []*wrappedLine
	buf   TextBuffer
}

// wrappedLine tracks one line element's physical row count. rows <= 0
// means the count is stale.
type wrappedLine struct {
	elem Element
	rows int
}

// WrapOption configures a WrappedView.
type WrapOption func(*WrappedView)

// WithWordWrap selects wrapping at whitespace boundaries (true, the
// default) or between arbitrary clusters (false).
func WithWordWrap(enabled bool) WrapOption {
	return func(w *WrappedView) {
		w.wordWrap = enabled
	}
}

// WithWrapTabChars sets the tab size in character advances. The default
// is 8.
func WithWrapTabChars(n int) WrapOption {
	return func(w *WrappedView) {
		if n > 0 {
			w.tabChars = n
		}
	}
}

// NewWrappedView creates a wrapping view over elem, whose children are the
// line elements.
func NewWrappedView(elem Element, opts ...WrapOption) *WrappedView {
	w := &WrappedView{elem: elem, wordWrap: true, tabChars: 8}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Element implements View.
func (w *WrappedView) Element() Element {
	return w.elem
}

// StartOffset implements View.
func (w *WrappedView) StartOffset() int {
	return w.elem.StartOffset()
}

// EndOffset implements View.
func (w *WrappedView) EndOffset() int {
	return w.elem.EndOffset()
}

// updateMetrics refreshes font-derived caches.
func (w *WrappedView) updateMetrics(ctx *Context) {
	f := ctx.Host().Face()
	if f == w.face {
		return
	}
	w.face = f
	w.metrics = f.Metrics()
	w.tabSize = float64(w.tabChars) * f.Advance("m")
	w.invalidateRows()
}

// ensureLines builds the per-line cache slice.
func (w *WrappedView) ensureLines() {
	if w.lines != nil && len(w.lines) == max(w.elem.ChildCount(), 1) {
		return
	}
	n := w.elem.ChildCount()
	w.lines = w.lines[:0]
	if n == 0 {
		w.lines = append(w.lines, &wrappedLine{elem: w.elem})
		return
	}
	for i := 0; i < n; i++ {
		w.lines = append(w.lines, &wrappedLine{elem: w.elem.Child(i)})
	}
}

// invalidateRows marks every cached row count stale.
func (w *WrappedView) invalidateRows() {
	for _, l := range w.lines {
		l.rows = 0
	}
}

// NextTabStop implements TabExpander.
func (w *WrappedView) NextTabStop(x float64, tabOffset int) float64 {
	if w.tabSize == 0 {
		return x
	}
	ntabs := int((x - w.tabBase) / w.tabSize)
	return w.tabBase + float64(ntabs+1)*w.tabSize
}

// breakPosition returns where the physical row starting at p0 ends, given
// the line runs to p1. The result always advances past p0 when any text
// remains.
func (w *WrappedView) breakPosition(ctx *Context, p0, p1 int) int {
	if w.width <= 0 {
		return p1
	}
	if err := ctx.Document().Text(p0, p1, &w.buf); err != nil {
		return p1
	}
	var n int
	if w.wordWrap {
		n = BreakLocation(&w.buf, w.face, w.tabBase, w.tabBase+w.width, w, p0)
	} else {
		n = TabbedTextOffset(&w.buf, w.face, w.tabBase, w.tabBase+w.width, w, p0, false)
	}
	p := p0 + n
	if p == p0 {
		return p1
	}
	return p
}

// rowCount returns l's physical row count, recomputing it when stale.
func (w *WrappedView) rowCount(ctx *Context, l *wrappedLine) int {
	if l.rows > 0 {
		return l.rows
	}
	n := 0
	p1 := l.elem.EndOffset()
	for p0 := l.elem.StartOffset(); p0 < p1; {
		n++
		p := w.breakPosition(ctx, p0, p1)
		if p == p0 {
			p = p1
		}
		p0 = p
	}
	l.rows = max(n, 1)
	return l.rows
}

// totalRows sums the row counts of every line.
func (w *WrappedView) totalRows(ctx *Context) int {
	w.ensureLines()
	total := 0
	for _, l := range w.lines {
		total += w.rowCount(ctx, l)
	}
	return total
}

// Span implements View.
func (w *WrappedView) Span(ctx *Context, axis Axis) float64 {
	w.updateMetrics(ctx)
	if axis == AxisX {
		if w.width > 0 {
			return w.width
		}
		// Unwrapped fallback before the first SetSize.
		w.ensureLines()
		var widest float64
		for _, l := range w.lines {
			p0, p1 := l.elem.StartOffset(), l.elem.EndOffset()
			if err := ctx.Document().Text(p0, p1, &w.buf); err != nil {
				continue
			}
			if n := w.buf.Len(); n > 0 && w.buf.At(n-1) == '\n' {
				w.buf.Count--
			}
			widest = max(widest, TabbedTextWidth(&w.buf, w.face, w.tabBase, w, p0))
		}
		return widest
	}
	return float64(w.totalRows(ctx)) * w.metrics.LineHeight()
}

// Alignment implements View.
func (w *WrappedView) Alignment(ctx *Context, axis Axis) float64 {
	return 0.5
}

// SetSize implements View. A width change invalidates every cached row
// count; heights follow from the counts.
func (w *WrappedView) SetSize(ctx *Context, width, height float64) {
	w.updateMetrics(ctx)
	if width != w.width {
		w.width = width
		w.ensureLines()
		w.invalidateRows()
	}
}

// Paint implements View.
func (w *WrappedView) Paint(ctx *Context, s Surface, alloc Rect) error {
	w.updateMetrics(ctx)
	w.tabBase = alloc.MinX
	if aw := alloc.Width(); aw != w.width {
		w.width = aw
		w.ensureLines()
		w.invalidateRows()
	}
	w.ensureLines()

	h := w.metrics.LineHeight()
	layered, hasLayered := ctx.layeredHighlights()
	y := alloc.MinY
	for _, l := range w.lines {
		p1 := l.elem.EndOffset()
		last := p1 == w.elem.EndOffset()
		for p0 := l.elem.StartOffset(); p0 < p1; {
			p := w.breakPosition(ctx, p0, p1)
			if hasLayered {
				hp1 := p
				if p == p1 && !last {
					hp1 = p - 1
				}
				rowRect := Rect{MinX: alloc.MinX, MinY: y, MaxX: alloc.MaxX, MaxY: y + h}
				layered.PaintLayered(ctx, s, p0, hp1, rowRect, w)
			}
			if err := w.drawRow(ctx, s, p0, p, alloc.MinX, y+w.metrics.Ascent); err != nil {
				return err
			}
			if p == p0 {
				p = p1
			}
			p0 = p
			y += h
		}
	}
	return nil
}

// drawRow renders the physical row [p0, p1) at the given baseline with
// selection color segments.
func (w *WrappedView) drawRow(ctx *Context, s Surface, p0, p1 int, x, baseline float64) error {
	host := ctx.Host()
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
			var err error
			if pMin > p0 {
				if x, err = w.drawSegment(ctx, s, fg, p0, pMin, x, baseline); err != nil {
					return err
				}
			}
			if x, err = w.drawSegment(ctx, s, selFG, pMin, pMax, x, baseline); err != nil {
				return err
			}
			if pMax < p1 {
				_, err = w.drawSegment(ctx, s, fg, pMax, p1, x, baseline)
			}
			return err
		}
	}
	_, err := w.drawSegment(ctx, s, fg, p0, p1, x, baseline)
	return err
}

// drawSegment draws [a, b), stripping a trailing newline, and returns the
// pixel position after it.
func (w *WrappedView) drawSegment(ctx *Context, s Surface, c color.Color, a, b int, x, baseline float64) (float64, error) {
	if err := ctx.Document().Text(a, b, &w.buf); err != nil {
		return x, &StaleViewError{Op: "WrappedView.drawSegment", Err: err}
	}
	if n := w.buf.Len(); n > 0 && w.buf.At(n-1) == '\n' {
		w.buf.Count--
	}
	s.SetColor(c)
	return DrawTabbedText(s, &w.buf, w.face, x, baseline, w, a), nil
}

// ModelToView implements View.
func (w *WrappedView) ModelToView(ctx *Context, pos int, bias Bias, alloc Rect) (Rect, error) {
	if err := checkRange(pos, w.StartOffset(), w.EndOffset()+1); err != nil {
		return Rect{}, err
	}
	w.updateMetrics(ctx)
	w.tabBase = alloc.MinX
	if aw := alloc.Width(); aw != w.width {
		w.width = aw
		w.ensureLines()
		w.invalidateRows()
	}
	w.ensureLines()

	h := w.metrics.LineHeight()
	y := alloc.MinY
	for _, l := range w.lines {
		p1 := l.elem.EndOffset()
		if pos >= p1 && !(pos == p1 && p1 == w.EndOffset()) {
			y += float64(w.rowCount(ctx, l)) * h
			continue
		}
		for p0 := l.elem.StartOffset(); p0 < p1; {
			p := w.breakPosition(ctx, p0, p1)
			// Bias decides the row at a wrap boundary: backward keeps
			// the position on the earlier row.
			onRow := pos < p || (pos == p && bias == BiasBackward) || p >= p1
			if onRow {
				if err := ctx.Document().Text(p0, min(pos, p), &w.buf); err != nil {
					return Rect{}, &StaleViewError{Op: "WrappedView.ModelToView", Err: err}
				}
				x := alloc.MinX + TabbedTextWidth(&w.buf, w.face, alloc.MinX, w, p0)
				return Rect{MinX: x, MinY: y, MaxX: x + 1, MaxY: y + h}, nil
			}
			if p == p0 {
				p = p1
			}
			p0 = p
			y += h
		}
	}
	return Rect{}, &OffsetError{Offset: pos, Start: w.StartOffset(), End: w.EndOffset() + 1}
}

// ViewToModel implements View. Hits are clamped so a position past the end
// of a line lands before its newline.
func (w *WrappedView) ViewToModel(ctx *Context, x, y float64, alloc Rect) (int, Bias) {
	w.updateMetrics(ctx)
	w.tabBase = alloc.MinX
	if aw := alloc.Width(); aw != w.width {
		w.width = aw
		w.ensureLines()
		w.invalidateRows()
	}
	w.ensureLines()

	h := w.metrics.LineHeight()
	if y < alloc.MinY {
		return w.StartOffset(), BiasForward
	}
	rowY := alloc.MinY
	for li, l := range w.lines {
		p1 := l.elem.EndOffset()
		lastLine := li == len(w.lines)-1
		for p0 := l.elem.StartOffset(); p0 < p1; {
			p := w.breakPosition(ctx, p0, p1)
			if y < rowY+h || (lastLine && p >= p1) {
				if x <= alloc.MinX {
					return p0, BiasForward
				}
				if err := ctx.Document().Text(p0, p, &w.buf); err != nil {
					return p0, BiasForward
				}
				n := TabbedTextOffset(&w.buf, w.face, alloc.MinX, x, w, p0, true)
				return min(p0+n, p1-1), BiasForward
			}
			if p == p0 {
				p = p1
			}
			p0 = p
			rowY += h
		}
	}
	return w.EndOffset() - 1, BiasBackward
}

// BreakWeight implements View.
func (w *WrappedView) BreakWeight(ctx *Context, axis Axis, x, span float64) BreakWeight {
	return BreakBad
}

// Break implements View.
func (w *WrappedView) Break(ctx *Context, axis Axis, pos int, x, span float64) View {
	return w
}

// InsertUpdate implements View.
func (w *WrappedView) InsertUpdate(ctx *Context, e *EditEvent, alloc Rect) {
	w.updateLine(ctx, e, alloc)
}

// RemoveUpdate implements View.
func (w *WrappedView) RemoveUpdate(ctx *Context, e *EditEvent, alloc Rect) {
	w.updateLine(ctx, e, alloc)
}

// ChangedUpdate implements View.
func (w *WrappedView) ChangedUpdate(ctx *Context, e *EditEvent, alloc Rect) {
	ctx.Host().Repaint()
}

// updateLine recomputes the edited line's row count. A stable count keeps
// the damage to that line's band; a moved count shifts everything below,
// so the height preference changes and the widget repaints.
func (w *WrappedView) updateLine(ctx *Context, e *EditEvent, alloc Rect) {
	w.updateMetrics(ctx)
	host := ctx.Host()
	if ec := e.Change(w.elem); ec != nil {
		w.lines = nil
		w.ensureLines()
		host.PreferenceChanged(w, false, true)
		host.Repaint()
		return
	}
	w.ensureLines()
	i := w.elem.ChildIndex(e.Offset)
	if w.elem.ChildCount() == 0 {
		i = 0
	}
	if i < 0 || i >= len(w.lines) {
		host.Repaint()
		return
	}
	l := w.lines[i]
	old := l.rows
	l.rows = 0
	if w.rowCount(ctx, l) != old {
		host.PreferenceChanged(w, false, true)
		host.Repaint()
		return
	}
	if alloc.Empty() {
		host.Repaint()
		return
	}
	h := w.metrics.LineHeight()
	rowsAbove := 0
	for j := 0; j < i; j++ {
		rowsAbove += w.rowCount(ctx, w.lines[j])
	}
	host.Damage(Rect{
		MinX: alloc.MinX,
		MinY: alloc.MinY + float64(rowsAbove)*h,
		MaxX: alloc.MaxX,
		MaxY: alloc.MinY + float64(rowsAbove+l.rows)*h,
	})
}

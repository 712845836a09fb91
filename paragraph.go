package textview

import "errors"

// Tab terminator sets for non-left-aligned stops: right and center stops
// measure up to the next tab, decimal stops also stop at a decimal point.
var (
	tabChars        = []rune{'\t'}
	tabDecimalChars = []rune{'\t', '.'}
)

// ParagraphView flows the glyph runs of one branch element into rows. It
// keeps a layout pool of logical child views and re-breaks them into Row
// views whenever the flow width changes, so edits never mutate row state
// in place.
//
// ParagraphView is also the TabExpander for its children.
type ParagraphView struct {
	elem Element

	pool []View
	rows []*Row

	width       float64
	tabBase     float64
	layoutValid bool

	// lctx is the context of the layout pass in flight. NextTabStop is
	// called back through the TabExpander interface, which predates
	// explicit context threading, so the paragraph keeps the current one.
	lctx *Context
}

// NewParagraphView creates a paragraph over elem. The layout pool is built
// lazily from the context's view factory on first layout.
func NewParagraphView(elem Element) *ParagraphView {
	return &ParagraphView{elem: elem}
}

// Element implements View.
func (p *ParagraphView) Element() Element {
	return p.elem
}

// StartOffset implements View.
func (p *ParagraphView) StartOffset() int {
	return p.elem.StartOffset()
}

// EndOffset implements View.
func (p *ParagraphView) EndOffset() int {
	return p.elem.EndOffset()
}

// loadPool builds one logical view per child element.
func (p *ParagraphView) loadPool(ctx *Context) {
	if p.pool != nil {
		return
	}
	n := p.elem.ChildCount()
	p.pool = make([]View, 0, max(n, 1))
	if n == 0 {
		gv := NewGlyphView(p.elem)
		gv.parent = p
		p.pool = append(p.pool, gv)
		return
	}
	for i := 0; i < n; i++ {
		v := ctx.Factory().Create(p.elem.Child(i))
		if gv, ok := v.(*GlyphView); ok {
			gv.parent = p
		}
		p.pool = append(p.pool, v)
	}
}

// invalidatePool drops the pool after a structural change.
func (p *ParagraphView) invalidatePool() {
	p.pool = nil
	p.layoutValid = false
}

// poolViewAt returns the logical view whose range contains pos, fragmented
// to start exactly at pos when it begins earlier.
func (p *ParagraphView) poolViewAt(ctx *Context, pos int) View {
	for _, v := range p.pool {
		if pos >= v.EndOffset() {
			continue
		}
		if pos > v.StartOffset() {
			if f, ok := v.(Fragmenter); ok {
				return f.Fragment(ctx, pos, v.EndOffset())
			}
		}
		return v
	}
	return nil
}

// viewSpan measures v when it starts at pixel position x.
func (p *ParagraphView) viewSpan(ctx *Context, v View, x float64) float64 {
	if ts, ok := v.(TabSpanner); ok {
		return ts.TabbedSpan(ctx, x, p)
	}
	return v.Span(ctx, AxisX)
}

// layout re-flows the pool into rows for the given width. It is a no-op
// while the cached rows are valid for that width.
func (p *ParagraphView) layout(ctx *Context, width float64) {
	p.lctx = ctx
	if p.layoutValid && p.width == width {
		return
	}
	p.width = width
	p.loadPool(ctx)
	p.rows = p.rows[:0]
	style := styleOf(p.elem)

	pos := p.elem.StartOffset()
	end := p.elem.EndOffset()
	rowIdx := 0
	for pos < end {
		row := &Row{par: p}
		next := p.layoutRow(ctx, row, rowIdx, pos)
		if next <= pos {
			break
		}
		row.finish(ctx, style.LineSpacing)
		p.rows = append(p.rows, row)
		pos = next
		rowIdx++
	}
	p.layoutValid = true
}

// layoutRow fills row greedily starting at pos and returns the offset the
// next row starts at. Exactly the range [pos, returned) lands in the row.
func (p *ParagraphView) layoutRow(ctx *Context, row *Row, rowIdx, pos int) int {
	style := styleOf(p.elem)
	if rowIdx == 0 {
		row.indent = style.FirstLineIndent
	}
	x := p.tabBase + row.indent
	avail := p.width - row.indent
	end := p.elem.EndOffset()

	for pos < end {
		v := p.poolViewAt(ctx, pos)
		if v == nil {
			break
		}
		w := p.viewSpan(ctx, v, x)
		full := false

		if w <= avail {
			// Fits, but a hard line break inside still ends the row.
			if v.BreakWeight(ctx, AxisX, x, avail) == BreakForced {
				if frag := v.Break(ctx, AxisX, pos, x, avail); frag != v {
					v = frag
					w = p.viewSpan(ctx, v, x)
				}
				full = true
			}
		} else {
			weight := v.BreakWeight(ctx, AxisX, x, avail)
			if weight <= BreakBad && len(row.views) > 0 {
				break
			}
			frag := v.Break(ctx, AxisX, pos, x, avail)
			if frag == v && len(row.views) > 0 {
				// Unbreakable and the row already has content: push the
				// whole view to the next row.
				break
			}
			v = frag
			w = p.viewSpan(ctx, v, x)
			full = true
		}

		row.append(v, w)
		pos = v.EndOffset()
		x += w
		avail -= w
		if full {
			break
		}
	}
	return pos
}

// Span implements View. The X span is the widest row once laid out, or the
// unwrapped pool width before any layout; the Y span is the stacked row
// height.
func (p *ParagraphView) Span(ctx *Context, axis Axis) float64 {
	p.lctx = ctx
	p.loadPool(ctx)
	if axis == AxisX {
		if p.layoutValid && len(p.rows) > 0 {
			var w float64
			for _, r := range p.rows {
				w = max(w, r.Span(ctx, AxisX))
			}
			return w
		}
		x := p.tabBase
		for _, v := range p.pool {
			x += p.viewSpan(ctx, v, x)
		}
		return x - p.tabBase
	}
	if p.layoutValid {
		var h float64
		for _, r := range p.rows {
			h += r.height
		}
		return h
	}
	var h float64
	for _, v := range p.pool {
		h = max(h, v.Span(ctx, AxisY))
	}
	return h
}

// Alignment implements View.
func (p *ParagraphView) Alignment(ctx *Context, axis Axis) float64 {
	if axis == AxisY && p.layoutValid && len(p.rows) > 0 {
		// Align on the first row's baseline.
		total := p.Span(ctx, AxisY)
		if total > 0 {
			return p.rows[0].ascent / total
		}
	}
	return 0.5
}

// SetSize implements View.
func (p *ParagraphView) SetSize(ctx *Context, width, height float64) {
	if width != p.width {
		p.layoutValid = false
	}
	p.layout(ctx, width)
}

// Paint implements View.
func (p *ParagraphView) Paint(ctx *Context, s Surface, alloc Rect) error {
	if p.tabBase != alloc.MinX {
		p.tabBase = alloc.MinX
		p.layoutValid = false
	}
	p.layout(ctx, alloc.Width())
	y := alloc.MinY
	var stale *StaleViewError
	for _, r := range p.rows {
		ra := Rect{MinX: alloc.MinX, MinY: y, MaxX: alloc.MinX + p.width, MaxY: y + r.height}
		if err := r.Paint(ctx, s, ra); err != nil {
			if errors.As(err, &stale) {
				return err
			}
		}
		y += r.height
	}
	return nil
}

// rowAlloc returns the allocation of row i within alloc.
func (p *ParagraphView) rowAlloc(i int, alloc Rect) Rect {
	y := alloc.MinY
	for j := 0; j < i; j++ {
		y += p.rows[j].height
	}
	return Rect{MinX: alloc.MinX, MinY: y, MaxX: alloc.MinX + p.width, MaxY: y + p.rows[i].height}
}

// rowIndexFor locates the row containing pos.
func (p *ParagraphView) rowIndexFor(pos int, bias Bias) int {
	for i, r := range p.rows {
		if pos < r.EndOffset() || (pos == r.EndOffset() && (bias == BiasBackward || i == len(p.rows)-1)) {
			if pos >= r.StartOffset() {
				return i
			}
			return -1
		}
	}
	return -1
}

// ModelToView implements View.
func (p *ParagraphView) ModelToView(ctx *Context, pos int, bias Bias, alloc Rect) (Rect, error) {
	if p.tabBase != alloc.MinX {
		p.tabBase = alloc.MinX
		p.layoutValid = false
	}
	p.layout(ctx, alloc.Width())
	i := p.rowIndexFor(pos, bias)
	if i < 0 {
		return Rect{}, &OffsetError{Offset: pos, Start: p.StartOffset(), End: p.EndOffset() + 1}
	}
	return p.rows[i].ModelToView(ctx, pos, bias, p.rowAlloc(i, alloc))
}

// ViewToModel implements View.
func (p *ParagraphView) ViewToModel(ctx *Context, x, y float64, alloc Rect) (int, Bias) {
	if p.tabBase != alloc.MinX {
		p.tabBase = alloc.MinX
		p.layoutValid = false
	}
	p.layout(ctx, alloc.Width())
	if len(p.rows) == 0 {
		return p.StartOffset(), BiasForward
	}
	for i, r := range p.rows {
		ra := p.rowAlloc(i, alloc)
		if y < ra.MaxY || i == len(p.rows)-1 {
			return r.ViewToModel(ctx, x, y, ra)
		}
	}
	return p.EndOffset(), BiasBackward
}

// BreakWeight implements View. Paragraphs refuse to break: the enclosing
// box either shows whole paragraphs or scrolls.
func (p *ParagraphView) BreakWeight(ctx *Context, axis Axis, x, span float64) BreakWeight {
	return BreakBad
}

// Break implements View.
func (p *ParagraphView) Break(ctx *Context, axis Axis, pos int, x, span float64) View {
	return p
}

// NextTabStop implements TabExpander with the full stop-alignment
// semantics. x and the result are absolute pixel positions; stop positions
// are relative to the paragraph's tab base.
func (p *ParagraphView) NextTabStop(x float64, tabOffset int) float64 {
	style := styleOf(p.elem)
	if style.Alignment != AlignLeft {
		// Tab stops are unreliable in shifted rows; fall back to a
		// small fixed advance.
		return x + 10
	}
	rel := x - p.tabBase
	tabs := style.Tabs
	if tabs == nil {
		return p.tabBase + float64(int(rel)/72+1)*72
	}
	stop := tabs.StopAfter(rel + 0.01)
	if stop == nil {
		return p.tabBase + rel + 5
	}
	switch stop.Align {
	case TabLeft, TabBar:
		return p.tabBase + stop.Position
	}
	terminators := tabChars
	if stop.Align == TabDecimal {
		terminators = tabDecimalChars
	}
	end := p.findOffsetTo(terminators, tabOffset+1)
	if end == -1 {
		end = p.EndOffset()
	}
	size := p.partialSize(tabOffset+1, end)
	switch stop.Align {
	case TabRight, TabDecimal:
		return p.tabBase + max(rel, stop.Position-size)
	case TabCenter:
		return p.tabBase + max(rel, stop.Position-size/2)
	}
	return x + 5
}

// findOffsetTo scans the paragraph text from start for the first
// occurrence of any rune in chars, returning its offset or -1.
func (p *ParagraphView) findOffsetTo(chars []rune, start int) int {
	end := p.EndOffset()
	if start >= end {
		return -1
	}
	var buf TextBuffer
	if err := p.elem.Document().Text(start, end, &buf); err != nil {
		return -1
	}
	for i := 0; i < buf.Len(); i++ {
		for _, c := range chars {
			if buf.At(i) == c {
				return start + i
			}
		}
	}
	return -1
}

// partialSize measures [p0, p1) across the pool without tab expansion.
func (p *ParagraphView) partialSize(p0, p1 int) float64 {
	var size float64
	for _, v := range p.pool {
		s0 := max(p0, v.StartOffset())
		s1 := min(p1, v.EndOffset())
		if s0 >= s1 {
			continue
		}
		if ts, ok := v.(TabSpanner); ok {
			size += ts.PartialSpan(p.lctx, s0, s1)
		}
	}
	return size
}

// InsertUpdate implements View. A structural change on the paragraph
// rebuilds the pool; a text-only edit is forwarded to the pool view
// owning the offset. Either way the rows are stale.
func (p *ParagraphView) InsertUpdate(ctx *Context, e *EditEvent, alloc Rect) {
	p.handleEdit(ctx, e, alloc, func(v View) { v.InsertUpdate(ctx, e, Rect{}) })
}

// RemoveUpdate implements View.
func (p *ParagraphView) RemoveUpdate(ctx *Context, e *EditEvent, alloc Rect) {
	p.handleEdit(ctx, e, alloc, func(v View) { v.RemoveUpdate(ctx, e, Rect{}) })
}

// ChangedUpdate implements View.
func (p *ParagraphView) ChangedUpdate(ctx *Context, e *EditEvent, alloc Rect) {
	p.handleEdit(ctx, e, alloc, func(v View) { v.ChangedUpdate(ctx, e, Rect{}) })
}

func (p *ParagraphView) handleEdit(ctx *Context, e *EditEvent, alloc Rect, forward func(View)) {
	if e != nil && e.Change(p.elem) != nil {
		p.invalidatePool()
	} else if p.pool != nil && e != nil {
		for _, v := range p.pool {
			if e.Offset >= v.StartOffset() && e.Offset <= v.EndOffset() {
				forward(v)
				break
			}
		}
	}
	p.layoutValid = false
	ctx.Host().PreferenceChanged(p, true, true)
	if !alloc.Empty() {
		ctx.Host().Damage(alloc)
	}
}

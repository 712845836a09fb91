package textview

import "errors"

// Row is one visual line produced by paragraph flow. Rows are transient:
// the paragraph rebuilds them whenever the flow width or the document
// changes, so they hold only placement data, never document state of
// their own.
type Row struct {
	par    *ParagraphView
	views  []View
	widths []float64

	width   float64 // sum of child widths, excluding indent
	indent  float64
	ascent  float64
	descent float64
	height  float64
}

// append places v at the end of the row with the measured width w.
func (r *Row) append(v View, w float64) {
	r.views = append(r.views, v)
	r.widths = append(r.widths, w)
	r.width += w
}

// finish runs the minor-axis (baseline) layout once the row's children are
// fixed: the row baseline sits at the maximum child ascent, where a child's
// ascent is its Y alignment fraction times its height.
func (r *Row) finish(ctx *Context, lineSpacing float64) {
	for _, v := range r.views {
		h := v.Span(ctx, AxisY)
		a := v.Alignment(ctx, AxisY)
		ascent := a * h
		if ascent > r.ascent {
			r.ascent = ascent
		}
		if d := h - ascent; d > r.descent {
			r.descent = d
		}
	}
	r.height = r.ascent + r.descent + lineSpacing
}

// Element implements View, delegating to the paragraph.
func (r *Row) Element() Element {
	return r.par.elem
}

// StartOffset implements View.
func (r *Row) StartOffset() int {
	if len(r.views) == 0 {
		return r.par.elem.StartOffset()
	}
	return r.views[0].StartOffset()
}

// EndOffset implements View.
func (r *Row) EndOffset() int {
	if len(r.views) == 0 {
		return r.par.elem.StartOffset()
	}
	return r.views[len(r.views)-1].EndOffset()
}

// Span implements View.
func (r *Row) Span(ctx *Context, axis Axis) float64 {
	if axis == AxisX {
		return r.indent + r.width
	}
	return r.height
}

// Alignment implements View. Along X the fraction follows the paragraph
// justification; along Y it marks the row baseline.
func (r *Row) Alignment(ctx *Context, axis Axis) float64 {
	if axis == AxisX {
		return r.alignFrac()
	}
	if r.height <= 0 {
		return 0
	}
	return r.ascent / r.height
}

// alignFrac returns the fraction of leftover horizontal space placed
// before the row's content.
func (r *Row) alignFrac() float64 {
	switch styleOf(r.par.elem).Alignment {
	case AlignRight:
		return 1
	case AlignCenter, AlignJustified:
		return 0.5
	default:
		return 0
	}
}

// childAlloc computes the allocation of child i within the row's alloc,
// aligning the child's baseline with the row baseline.
func (r *Row) childAlloc(ctx *Context, i int, alloc Rect) Rect {
	x := alloc.MinX + r.indent + r.alignFrac()*(r.par.width-r.indent-r.width)
	for j := 0; j < i; j++ {
		x += r.widths[j]
	}
	v := r.views[i]
	h := v.Span(ctx, AxisY)
	y := alloc.MinY + r.ascent - v.Alignment(ctx, AxisY)*h
	return RectXYWH(x, y, r.widths[i], h)
}

// SetSize implements View. Row geometry is fixed at flow time.
func (r *Row) SetSize(ctx *Context, width, height float64) {}

// Paint implements View. A stale child aborts the pass; a recoverable
// child failure degrades to skipping that child.
func (r *Row) Paint(ctx *Context, s Surface, alloc Rect) error {
	var stale *StaleViewError
	for i, v := range r.views {
		if err := v.Paint(ctx, s, r.childAlloc(ctx, i, alloc)); err != nil {
			if errors.As(err, &stale) {
				return err
			}
		}
	}
	return nil
}

// ModelToView implements View. The caret spans the full row height so it
// reads the same across runs of different sizes.
func (r *Row) ModelToView(ctx *Context, pos int, bias Bias, alloc Rect) (Rect, error) {
	i := r.childIndex(pos, bias)
	if i < 0 {
		return Rect{}, &OffsetError{Offset: pos, Start: r.StartOffset(), End: r.EndOffset() + 1}
	}
	rect, err := r.views[i].ModelToView(ctx, pos, bias, r.childAlloc(ctx, i, alloc))
	if err != nil {
		return Rect{}, err
	}
	rect.MinY = alloc.MinY
	rect.MaxY = alloc.MaxY
	return rect, nil
}

// childIndex locates the child responsible for pos, honoring bias at
// shared boundaries.
func (r *Row) childIndex(pos int, bias Bias) int {
	for i, v := range r.views {
		p0, p1 := v.StartOffset(), v.EndOffset()
		if pos > p0 && pos < p1 {
			return i
		}
		if pos == p0 && (bias == BiasForward || i == 0) {
			return i
		}
		if pos == p1 && (bias == BiasBackward || i == len(r.views)-1) {
			return i
		}
	}
	return -1
}

// ViewToModel implements View.
func (r *Row) ViewToModel(ctx *Context, x, y float64, alloc Rect) (int, Bias) {
	if len(r.views) == 0 {
		return r.par.elem.StartOffset(), BiasForward
	}
	first := r.childAlloc(ctx, 0, alloc)
	if x < first.MinX {
		return r.StartOffset(), BiasForward
	}
	for i, v := range r.views {
		ca := r.childAlloc(ctx, i, alloc)
		if x < ca.MaxX {
			return v.ViewToModel(ctx, x, y, ca)
		}
	}
	return r.EndOffset(), BiasBackward
}

// BreakWeight implements View. Rows never re-break.
func (r *Row) BreakWeight(ctx *Context, axis Axis, x, span float64) BreakWeight {
	return BreakBad
}

// Break implements View.
func (r *Row) Break(ctx *Context, axis Axis, pos int, x, span float64) View {
	return r
}

// InsertUpdate implements View. Edits are handled by the paragraph, which
// rebuilds its rows.
func (r *Row) InsertUpdate(ctx *Context, e *EditEvent, alloc Rect) {}

// RemoveUpdate implements View.
func (r *Row) RemoveUpdate(ctx *Context, e *EditEvent, alloc Rect) {}

// ChangedUpdate implements View.
func (r *Row) ChangedUpdate(ctx *Context, e *EditEvent, alloc Rect) {}

package textview

// View lays out and paints one element of the document. Views form a tree
// mirroring (part of) the element structure; each view owns the model range
// [StartOffset, EndOffset) and translates between that range and pixel
// geometry.
//
// Views hold no reference to the host or document: every method takes the
// Context, so the same view value can be measured against different hosts
// in tests.
type View interface {
	// Element returns the element this view presents.
	Element() Element

	// StartOffset returns the first model offset the view covers.
	StartOffset() int

	// EndOffset returns the offset just past the view's range.
	EndOffset() int

	// Span returns the preferred extent along the axis, in pixels.
	Span(ctx *Context, axis Axis) float64

	// Alignment returns the alignment fraction along the axis in [0, 1]:
	// the point within the view's span that lines up with siblings. 0.5
	// is centered; for AxisY the fraction marks the baseline.
	Alignment(ctx *Context, axis Axis) float64

	// SetSize tells the view the extent it was allocated, letting flowed
	// views rebuild their rows for a new width.
	SetSize(ctx *Context, width, height float64)

	// Paint draws the view into alloc. A *StaleViewError aborts the pass;
	// other errors degrade (the caller may continue with siblings).
	Paint(ctx *Context, s Surface, alloc Rect) error

	// ModelToView maps a model offset to a caret rectangle in view
	// coordinates, given the view's allocation. Returns *OffsetError when
	// pos is outside the view's range.
	ModelToView(ctx *Context, pos int, bias Bias, alloc Rect) (Rect, error)

	// ViewToModel maps a point to the nearest model offset, clamping
	// coordinates outside the allocation to the nearest edge.
	ViewToModel(ctx *Context, x, y float64, alloc Rect) (pos int, bias Bias)

	// BreakWeight reports how attractive a break is along the axis when
	// the view starts at pixel position x and at most span pixels remain.
	BreakWeight(ctx *Context, axis Axis, x, span float64) BreakWeight

	// Break returns a fragment of the view starting at model offset pos
	// that fits within span pixels starting at x, or the view itself when
	// it cannot be split along the axis. The fragment plus the remainder
	// partition the view's range exactly.
	Break(ctx *Context, axis Axis, pos int, x, span float64) View

	// InsertUpdate reacts to runes inserted within or adjacent to the
	// view's range. alloc is the current allocation, or the zero Rect
	// when unknown.
	InsertUpdate(ctx *Context, e *EditEvent, alloc Rect)

	// RemoveUpdate reacts to runes removed from the view's range.
	RemoveUpdate(ctx *Context, e *EditEvent, alloc Rect)

	// ChangedUpdate reacts to attribute changes on the view's range.
	ChangedUpdate(ctx *Context, e *EditEvent, alloc Rect)
}

// Fragmenter is implemented by views whose Break produces restartable
// fragments addressed by (element, offset, length) rather than sharing
// mutable state with the original.
type Fragmenter interface {
	// Fragment returns a view over [p0, p1), a subrange of the receiver.
	Fragment(ctx *Context, p0, p1 int) View
}

// TabSpanner is the capability of a view whose horizontal extent depends
// on its starting pixel position because it expands tabs.
type TabSpanner interface {
	// TabbedSpan returns the horizontal extent when the view starts at
	// pixel position x and expands tabs through e.
	TabbedSpan(ctx *Context, x float64, e TabExpander) float64

	// PartialSpan measures the subrange [p0, p1) without tab expansion;
	// tabs count a nominal advance. Used to position decimal and
	// right-aligned tab stops.
	PartialSpan(ctx *Context, p0, p1 int) float64
}

// styleOf returns the element's style, never nil.
func styleOf(elem Element) *Style {
	if elem == nil {
		return &Style{}
	}
	if s := elem.Style(); s != nil {
		return s
	}
	return &Style{}
}

// faceOf resolves the font face for an element: its style's face, or the
// host default.
func faceOf(ctx *Context, elem Element) Face {
	if elem != nil {
		if s := elem.Style(); s != nil && s.Face != nil {
			return s.Face
		}
	}
	return ctx.Host().Face()
}

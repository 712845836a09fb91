package textview

import "image/color"

// Surface receives the drawing operations a paint pass emits. Coordinates
// are pixels; text is positioned by its baseline.
type Surface interface {
	// SetColor sets the color for subsequent fill, line and text calls.
	SetColor(c color.Color)

	// FillRect fills the rectangle with the current color.
	FillRect(r Rect)

	// DrawLine draws a one-pixel line from (x0, y0) to (x1, y1).
	DrawLine(x0, y0, x1, y1 float64)

	// DrawText draws s in the given face with the current color. y is the
	// baseline position.
	DrawText(face Face, s string, x, y float64)
}

// Host is the widget embedding a view tree. It supplies ambient rendering
// state (fonts, colors, selection) and receives damage and preference
// notifications back from the views.
type Host interface {
	// Document returns the document the view tree presents.
	Document() Document

	// Face returns the default font face, used when an element style does
	// not override it.
	Face() Face

	// Enabled reports whether the widget accepts input; disabled widgets
	// draw text in DisabledColor.
	Enabled() bool

	// Foreground returns the default text color.
	Foreground() color.Color

	// DisabledColor returns the text color for disabled widgets.
	DisabledColor() color.Color

	// Selection returns the current selection range [p0, p1). p0 == p1
	// means no selection.
	Selection() (p0, p1 int)

	// SelectionVisible reports whether selection should be rendered.
	SelectionVisible() bool

	// SelectionColor returns the selection background fill, used by
	// highlight painters constructed without an explicit color.
	SelectionColor() color.Color

	// SelectedTextColor returns the glyph color inside the selection, or
	// nil to keep the normal foreground.
	SelectedTextColor() color.Color

	// Highlights returns the installed highlight compositor, or nil.
	Highlights() Highlights

	// Viewport returns the visible region in view coordinates, used to
	// clip line painting. An empty Rect means everything is visible.
	Viewport() Rect

	// ModelToView maps a document offset to widget coordinates through
	// the full view tree. Highlight painters use this during the
	// widget-level pass.
	ModelToView(pos int) (Rect, error)

	// Damage marks a pixel region as needing repaint.
	Damage(r Rect)

	// DamageRange marks the pixel region spanning the model range [p0, p1)
	// as needing repaint.
	DamageRange(p0, p1 int)

	// Repaint marks the whole widget as needing repaint.
	Repaint()

	// PreferenceChanged tells the host that v's preferred span along the
	// flagged axes changed and layout caches upstream must be discarded.
	PreferenceChanged(v View, width, height bool)
}

// Highlights paints highlight regions during the widget-level pass, before
// any view paints text.
type Highlights interface {
	// Paint draws every highlight that is not layered. bounds is the view
	// tree's full allocation.
	Paint(ctx *Context, s Surface, bounds Rect)
}

// LayeredHighlights is the optional capability of a Highlights
// implementation to paint per-leaf underlays. Leaf views query it (through
// the Context, resolved once per paint pass) and call PaintLayered with
// their own bounds immediately before drawing glyphs.
type LayeredHighlights interface {
	Highlights

	// PaintLayered draws the layered highlights overlapping [p0, p1)
	// clipped to bounds, using v to map offsets to pixels.
	PaintLayered(ctx *Context, s Surface, p0, p1 int, bounds Rect, v View)
}

// AsLayered resolves the layered-painting capability of h. It returns
// (nil, false) when h is nil or supports only whole-widget painting.
func AsLayered(h Highlights) (LayeredHighlights, bool) {
	if h == nil {
		return nil, false
	}
	lh, ok := h.(LayeredHighlights)
	return lh, ok
}

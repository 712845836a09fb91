package highlight

import (
	"image/color"

	textview "github.com/gogpu/textview"
)

// RectPainter fills highlight regions with a solid color. It implements
// LayerPainter, so a layering highlighter paints it under each leaf view.
type RectPainter struct {
	color color.Color
}

// NewRectPainter creates a painter filling with c. A nil color falls back
// to the host's selection color at paint time.
func NewRectPainter(c color.Color) *RectPainter {
	return &RectPainter{color: c}
}

// Color returns the configured color, or nil when the host selection color
// is used.
func (p *RectPainter) Color() color.Color {
	return p.color
}

func (p *RectPainter) fill(ctx *textview.Context) color.Color {
	if p.color != nil {
		return p.color
	}
	return ctx.Host().SelectionColor()
}

// Paint implements Painter. A range within one visual line fills a single
// rectangle; a multi-line range fills the tail of the first line, the full
// band of the middle lines and the head of the last.
func (p *RectPainter) Paint(ctx *textview.Context, s textview.Surface, p0, p1 int, bounds textview.Rect) {
	host := ctx.Host()
	r0, err0 := host.ModelToView(p0)
	r1, err1 := host.ModelToView(p1)
	if err0 != nil || err1 != nil {
		return
	}
	s.SetColor(p.fill(ctx))
	if r0.MinY == r1.MinY {
		s.FillRect(textview.Rect{MinX: r0.MinX, MinY: r0.MinY, MaxX: r1.MinX, MaxY: r0.MaxY})
		return
	}
	s.FillRect(textview.Rect{MinX: r0.MinX, MinY: r0.MinY, MaxX: bounds.MaxX, MaxY: r0.MaxY})
	if r0.MaxY < r1.MinY {
		s.FillRect(textview.Rect{MinX: bounds.MinX, MinY: r0.MaxY, MaxX: bounds.MaxX, MaxY: r1.MinY})
	}
	s.FillRect(textview.Rect{MinX: bounds.MinX, MinY: r1.MinY, MaxX: r1.MinX, MaxY: r1.MaxY})
}

// PaintLayer implements LayerPainter. When the range covers the whole view
// the bounds are filled outright; otherwise the fill runs between the two
// mapped offsets. The covered rectangle is returned for damage tracking.
func (p *RectPainter) PaintLayer(ctx *textview.Context, s textview.Surface, p0, p1 int, bounds textview.Rect, v textview.View) textview.Rect {
	s.SetColor(p.fill(ctx))
	if p0 == v.StartOffset() && p1 == v.EndOffset() {
		s.FillRect(bounds)
		return bounds
	}
	r0, err0 := v.ModelToView(ctx, p0, textview.BiasForward, bounds)
	if err0 != nil {
		return textview.Rect{}
	}
	r1, err1 := v.ModelToView(ctx, p1, textview.BiasBackward, bounds)
	if err1 != nil {
		return textview.Rect{}
	}
	r := textview.Rect{
		MinX: min(r0.MinX, r1.MinX),
		MinY: bounds.MinY,
		MaxX: max(r0.MinX, r1.MinX),
		MaxY: bounds.MaxY,
	}
	r = r.Intersect(bounds)
	if r.Empty() {
		return textview.Rect{}
	}
	s.FillRect(r)
	return r
}

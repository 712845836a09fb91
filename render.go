package textview

// Render runs one full paint pass over a view tree: the layered-highlight
// capability is resolved for the pass, plain highlights paint across the
// widget, then the tree paints its text (with layered highlights slipped
// under each leaf as it goes).
func Render(ctx *Context, s Surface, root View, alloc Rect) error {
	ctx.BeginPaint()
	if hl := ctx.Host().Highlights(); hl != nil {
		hl.Paint(ctx, s, alloc)
	}
	root.SetSize(ctx, alloc.Width(), alloc.Height())
	return root.Paint(ctx, s, alloc)
}

// Package highlight composites colored regions beneath the text of a
// textview widget.
//
// A Highlighter keeps two kinds of entries. Plain entries are painted in
// one widget-level pass before any view draws. Layered entries are painted
// again and again by each leaf view immediately before its glyphs, so the
// fill sits under the text of exactly the fragments it overlaps; the
// highlighter remembers the union of the pixels each layered entry touched
// and uses it for precise damage when the entry is removed or moved.
package highlight

import (
	"errors"

	textview "github.com/gogpu/textview"
)

// Errors returned by highlighter operations.
var (
	// ErrNotInstalled is returned when the highlighter has no host.
	ErrNotInstalled = errors.New("highlight: highlighter not installed on a host")
	// ErrUnknownHighlight is returned when a handle does not belong to
	// this highlighter.
	ErrUnknownHighlight = errors.New("highlight: unknown highlight")
)

// Painter fills the region of one highlight during the widget-level pass.
type Painter interface {
	// Paint fills [p0, p1) using the host's offset-to-pixel mapping.
	// bounds is the view tree's full allocation.
	Paint(ctx *textview.Context, s textview.Surface, p0, p1 int, bounds textview.Rect)
}

// LayerPainter is a Painter that can additionally fill per-leaf fragments
// during view painting.
type LayerPainter interface {
	Painter

	// PaintLayer fills the part of [p0, p1) presented by v, clipped to
	// bounds, and returns the rectangle actually covered.
	PaintLayer(ctx *textview.Context, s textview.Surface, p0, p1 int, bounds textview.Rect, v textview.View) textview.Rect
}

// Highlight is the handle returned by Add, usable to move or remove the
// entry later.
type Highlight interface {
	// Start returns the current start offset.
	Start() int
	// End returns the current end offset.
	End() int
	// Painter returns the entry's painter.
	Painter() Painter
}

// entry is one plain highlight. Offsets live in Positions so they track
// the text across edits.
type entry struct {
	p0, p1  textview.Position
	painter Painter
}

func (e *entry) Start() int       { return e.p0.Offset() }
func (e *entry) End() int         { return e.p1.Offset() }
func (e *entry) Painter() Painter { return e.painter }

// layeredEntry additionally accumulates the union of pixels its painter
// covered since the last reset, for exact removal damage.
type layeredEntry struct {
	entry
	rect textview.Rect
}

// Highlighter manages highlight entries for one host widget. It implements
// textview.Highlights and textview.LayeredHighlights.
type Highlighter struct {
	host         textview.Host
	entries      []Highlight
	drawsLayered bool
}

// Option configures a Highlighter.
type Option func(*Highlighter)

// WithoutLayering forces every entry onto the widget-level pass even when
// its painter supports layering.
func WithoutLayering() Option {
	return func(h *Highlighter) {
		h.drawsLayered = false
	}
}

// New creates an empty highlighter. Layering is enabled by default.
func New(opts ...Option) *Highlighter {
	h := &Highlighter{drawsLayered: true}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Install attaches the highlighter to a host. Existing entries are kept;
// their positions already belong to the host's document.
func (h *Highlighter) Install(host textview.Host) {
	h.host = host
}

// Deinstall detaches the highlighter from its host.
func (h *Highlighter) Deinstall() {
	h.host = nil
}

// DrawsLayered reports whether layer-capable painters are deferred to the
// per-leaf pass.
func (h *Highlighter) DrawsLayered() bool {
	return h.drawsLayered
}

// Add registers a highlight over [p0, p1) and damages that range. The
// entry becomes layered when the painter supports it and layering is on.
func (h *Highlighter) Add(p0, p1 int, p Painter) (Highlight, error) {
	if h.host == nil {
		return nil, ErrNotInstalled
	}
	doc := h.host.Document()
	pos0, err := doc.CreatePosition(p0)
	if err != nil {
		return nil, err
	}
	pos1, err := doc.CreatePosition(p1)
	if err != nil {
		return nil, err
	}
	var hl Highlight
	if lp, ok := p.(LayerPainter); ok && h.drawsLayered {
		hl = &layeredEntry{entry: entry{p0: pos0, p1: pos1, painter: lp}}
	} else {
		hl = &entry{p0: pos0, p1: pos1, painter: p}
	}
	h.entries = append(h.entries, hl)
	h.host.DamageRange(p0, p1)
	return hl, nil
}

// Remove deletes a highlight. A layered entry with a recorded footprint
// damages exactly those pixels; everything else damages its model range.
func (h *Highlighter) Remove(hl Highlight) {
	i := h.indexOf(hl)
	if i < 0 {
		return
	}
	if h.host != nil {
		if le, ok := hl.(*layeredEntry); ok && !le.rect.Empty() {
			h.host.Damage(le.rect)
		} else {
			h.host.DamageRange(hl.Start(), hl.End())
		}
	}
	h.entries = append(h.entries[:i], h.entries[i+1:]...)
}

// RemoveAll deletes every highlight, damaging the union of the layered
// footprints in one rectangle and the plain entries' combined model range.
func (h *Highlighter) RemoveAll() {
	if len(h.entries) == 0 {
		return
	}
	if h.host != nil {
		var rect textview.Rect
		r0, r1 := -1, -1
		for _, hl := range h.entries {
			if le, ok := hl.(*layeredEntry); ok {
				rect = rect.Union(le.rect)
				continue
			}
			if r0 == -1 {
				r0, r1 = hl.Start(), hl.End()
			} else {
				r0 = min(r0, hl.Start())
				r1 = max(r1, hl.End())
			}
		}
		if !rect.Empty() {
			h.host.Damage(rect)
		}
		if r0 != -1 {
			h.host.DamageRange(r0, r1)
		}
	}
	h.entries = h.entries[:0]
}

// Change moves a highlight to [p0, p1). A layered entry damages its old
// footprint plus the new range. A plain entry damages only the delta: the
// changed end when one end is shared, or both ranges when neither is.
func (h *Highlighter) Change(hl Highlight, p0, p1 int) error {
	if h.host == nil {
		return ErrNotInstalled
	}
	i := h.indexOf(hl)
	if i < 0 {
		return ErrUnknownHighlight
	}
	doc := h.host.Document()
	pos0, err := doc.CreatePosition(p0)
	if err != nil {
		return err
	}
	pos1, err := doc.CreatePosition(p1)
	if err != nil {
		return err
	}
	switch e := hl.(type) {
	case *layeredEntry:
		if !e.rect.Empty() {
			h.host.Damage(e.rect)
		}
		e.rect = textview.Rect{}
		e.p0, e.p1 = pos0, pos1
		h.host.DamageRange(p0, p1)
	case *entry:
		old0, old1 := e.p0.Offset(), e.p1.Offset()
		switch {
		case p0 == old0:
			h.host.DamageRange(min(p1, old1), max(p1, old1))
		case p1 == old1:
			h.host.DamageRange(min(p0, old0), max(p0, old0))
		default:
			h.host.DamageRange(old0, old1)
			h.host.DamageRange(p0, p1)
		}
		e.p0, e.p1 = pos0, pos1
	default:
		return ErrUnknownHighlight
	}
	return nil
}

// Highlights returns the current entries in insertion order.
func (h *Highlighter) Highlights() []Highlight {
	out := make([]Highlight, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *Highlighter) indexOf(hl Highlight) int {
	for i, e := range h.entries {
		if e == hl {
			return i
		}
	}
	return -1
}

// Paint implements textview.Highlights: the widget-level pass over every
// plain entry.
func (h *Highlighter) Paint(ctx *textview.Context, s textview.Surface, bounds textview.Rect) {
	for _, hl := range h.entries {
		if _, ok := hl.(*layeredEntry); ok {
			continue
		}
		p0, p1 := hl.Start(), hl.End()
		if p0 >= p1 {
			continue
		}
		hl.Painter().Paint(ctx, s, p0, p1, bounds)
	}
}

// PaintLayered implements textview.LayeredHighlights. Entries paint in
// reverse insertion order so the earliest-added highlight ends up on top,
// and each entry accumulates the pixels it covered.
func (h *Highlighter) PaintLayered(ctx *textview.Context, s textview.Surface, p0, p1 int, bounds textview.Rect, v textview.View) {
	for i := len(h.entries) - 1; i >= 0; i-- {
		le, ok := h.entries[i].(*layeredEntry)
		if !ok {
			continue
		}
		start, end := le.Start(), le.End()
		overlaps := (start < p0 && end > p0) || (start >= p0 && start < p1)
		if !overlaps {
			continue
		}
		lp := le.painter.(LayerPainter)
		painted := lp.PaintLayer(ctx, s, max(start, p0), min(end, p1), bounds, v)
		le.rect = le.rect.Union(painted)
	}
}

package textview

import (
	"unicode"

	"github.com/go-text/typesetting/segmenter"
)

// breakSpot finds the most attractive break offset in (p0, p1], or -1 when
// the range contains none. Documents flagged MultiByte are analyzed with
// the UAX#14 segmenter seeded with the whole parent element's text so
// boundaries near the fragment edges resolve correctly; otherwise a simple
// backward whitespace scan is used.
func breakSpot(ctx *Context, elem Element, p0, p1 int) int {
	if p1 <= p0 {
		return -1
	}
	if ctx.Document().MultiByte() {
		return breakSpotSegmented(ctx, elem, p0, p1)
	}
	return breakSpotWhitespace(ctx, p0, p1)
}

// breakSpotWhitespace scans [p0, p1) backward for whitespace and returns
// the offset just after it.
func breakSpotWhitespace(ctx *Context, p0, p1 int) int {
	var buf TextBuffer
	if err := ctx.Document().Text(p0, p1, &buf); err != nil {
		return -1
	}
	for i := buf.Len() - 1; i >= 0; i-- {
		if unicode.IsSpace(buf.At(i)) {
			return p0 + i + 1
		}
	}
	return -1
}

// breakSpotSegmented runs line segmentation over the parent element's text
// and returns the last boundary in (p0, p1]. The trivial end-of-text
// boundary does not count.
func breakSpotSegmented(ctx *Context, elem Element, p0, p1 int) int {
	pStart, pEnd := p0, p1
	if parent := elem.Parent(); parent != nil {
		pStart = parent.StartOffset()
		pEnd = parent.EndOffset()
	}
	var buf TextBuffer
	if err := ctx.Document().Text(pStart, pEnd, &buf); err != nil {
		return -1
	}
	runes := make([]rune, buf.Len())
	copy(runes, buf.Slice(0, buf.Len()))

	var seg segmenter.Segmenter
	seg.Init(runes)
	best := -1
	iter := seg.LineIterator()
	for iter.Next() {
		line := iter.Line()
		b := pStart + line.Offset + len(line.Text)
		if b == pEnd {
			continue
		}
		if b > p0 && b <= p1 && b > best {
			best = b
		}
	}
	return best
}

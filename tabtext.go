package textview

import "unicode"

// TabbedTextWidth measures the text in buf starting at pixel position x0,
// expanding tabs through e. startOffset is the model offset of the first
// rune, passed through to the expander. A nil expander measures tabs as a
// single space.
func TabbedTextWidth(buf *TextBuffer, face Face, x0 float64, e TabExpander, startOffset int) float64 {
	x := x0
	n := buf.Len()
	seg := 0
	for i := 0; i < n; i++ {
		if buf.At(i) != '\t' {
			continue
		}
		if seg < i {
			x += face.Advance(string(buf.Slice(seg, i)))
		}
		if e != nil {
			x = e.NextTabStop(x, startOffset+i)
		} else {
			x += face.Advance(" ")
		}
		seg = i + 1
	}
	if seg < n {
		x += face.Advance(string(buf.Slice(seg, n)))
	}
	return x - x0
}

// DrawTabbedText draws the text in buf with the surface's current color,
// expanding tabs through e. (x, y) is the baseline origin; the pixel
// position after the last glyph is returned. startOffset is the model
// offset of the first rune.
func DrawTabbedText(s Surface, buf *TextBuffer, face Face, x, y float64, e TabExpander, startOffset int) float64 {
	n := buf.Len()
	seg := 0
	for i := 0; i < n; i++ {
		if buf.At(i) != '\t' {
			continue
		}
		if seg < i {
			chunk := string(buf.Slice(seg, i))
			s.DrawText(face, chunk, x, y)
			x += face.Advance(chunk)
		}
		if e != nil {
			x = e.NextTabStop(x, startOffset+i)
		} else {
			x += face.Advance(" ")
		}
		seg = i + 1
	}
	if seg < n {
		chunk := string(buf.Slice(seg, n))
		s.DrawText(face, chunk, x, y)
		x += face.Advance(chunk)
	}
	return x
}

// TabbedTextOffset locates the rune in buf under pixel position x, where
// the text begins at x0. The result is an index into buf's span. With
// round set, a position past a glyph's midpoint selects the next index;
// otherwise the glyph containing x is selected. Positions past the end
// return buf.Len().
func TabbedTextOffset(buf *TextBuffer, face Face, x0, x float64, e TabExpander, startOffset int, round bool) int {
	if x <= x0 {
		return 0
	}
	cur := x0
	n := buf.Len()
	for i := 0; i < n; i++ {
		var next float64
		if buf.At(i) == '\t' && e != nil {
			next = e.NextTabStop(cur, startOffset+i)
		} else {
			next = cur + face.Advance(string(buf.Slice(i, i+1)))
		}
		if x < next {
			if round && x-cur > next-x {
				return i + 1
			}
			return i
		}
		cur = next
	}
	return n
}

// BreakLocation finds where to break the text in buf for word wrapping
// within the horizontal space [x0, x). It first finds the last rune that
// fits, then scans backward for whitespace; if some is found the break goes
// after it, otherwise the rune boundary itself is returned (a mid-word
// break). The result is an index into buf's span and may be 0 when nothing
// fits; callers must guarantee forward progress themselves.
func BreakLocation(buf *TextBuffer, face Face, x0, x float64, e TabExpander, startOffset int) int {
	n := buf.Len()
	fits := TabbedTextOffset(buf, face, x0, x, e, startOffset, false)
	if fits >= n {
		return n
	}
	// Scanning from fits itself lets a trailing space or newline ride the
	// end of the row.
	for i := fits; i >= 0; i-- {
		if unicode.IsSpace(buf.At(i)) {
			return i + 1
		}
	}
	return fits
}

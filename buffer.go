package textview

// TextBuffer is a reusable window onto document text. Document.Text fills a
// buffer with a shared or copied rune slice instead of allocating a string
// per fetch; layout code holds one buffer per view and refills it on each
// measurement pass.
//
// Runes[Offset : Offset+Count] is the active span. Callers must treat the
// backing slice as read-only when the buffer was filled without copying.
type TextBuffer struct {
	// Runes is the backing storage, possibly shared with the document.
	Runes []rune
	// Offset is the index of the first rune of the active span.
	Offset int
	// Count is the number of runes in the active span.
	Count int
}

// String materializes the active span as a string.
func (b *TextBuffer) String() string {
	if b.Count <= 0 {
		return ""
	}
	return string(b.Runes[b.Offset : b.Offset+b.Count])
}

// Len returns the number of runes in the active span.
func (b *TextBuffer) Len() int {
	return b.Count
}

// At returns the i'th rune of the active span. i is relative to the span,
// not to the backing slice.
func (b *TextBuffer) At(i int) rune {
	return b.Runes[b.Offset+i]
}

// Slice returns the active span [i, j) as a rune slice sharing the backing
// storage. Indices are relative to the span.
func (b *TextBuffer) Slice(i, j int) []rune {
	return b.Runes[b.Offset+i : b.Offset+j]
}

// Set replaces the buffer contents with the given storage and span.
func (b *TextBuffer) Set(runes []rune, offset, count int) {
	b.Runes = runes
	b.Offset = offset
	b.Count = count
}

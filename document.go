package textview

import "image/color"

// Document is the character and element model a view tree lays out.
// Offsets are rune positions in [0, Length()]. Implementations are supplied
// by the caller; see the textviewtest package for an in-memory version.
type Document interface {
	// Length returns the number of runes in the document.
	Length() int

	// Text fills buf with the runes in [p0, p1). Implementations may share
	// backing storage with the document; callers must not mutate it.
	// Returns an error if the range is outside the document.
	Text(p0, p1 int, buf *TextBuffer) error

	// Root returns the root element of the document structure.
	Root() Element

	// CreatePosition returns a position that tracks the given offset
	// across subsequent edits.
	CreatePosition(offset int) (Position, error)

	// MultiByte reports whether the document contains text that needs
	// locale-aware break analysis rather than simple whitespace scanning.
	MultiByte() bool
}

// Position is a document offset that survives edits: text inserted or
// removed before it shifts the reported offset accordingly.
type Position interface {
	// Offset returns the current offset of the position.
	Offset() int
}

// Element is a node in the document's structural tree. Branch elements
// partition their range among children; leaf elements carry the styled runs
// views are built over. Elements must be comparable (pointer identity) so
// edit events can key change records by element.
type Element interface {
	// Document returns the owning document.
	Document() Document

	// Parent returns the enclosing element, or nil for the root.
	Parent() Element

	// StartOffset returns the first offset covered by the element.
	StartOffset() int

	// EndOffset returns the offset just past the element's range.
	EndOffset() int

	// IsLeaf reports whether the element has no children.
	IsLeaf() bool

	// ChildCount returns the number of child elements.
	ChildCount() int

	// Child returns the i'th child element.
	Child(i int) Element

	// ChildIndex returns the index of the child containing offset, or the
	// nearest child if the offset is outside the element's range.
	ChildIndex(offset int) int

	// Style returns the element's resolved attributes. May be nil, in
	// which case views fall back to host defaults.
	Style() *Style
}

// Style is a resolved attribute set attached to an element. The zero value
// means "inherit everything from the host".
type Style struct {
	// Face is the font face for glyph runs, nil to use the host face.
	Face Face

	// Foreground is the text color, nil to use the host foreground.
	Foreground color.Color
	// Background fills the run's allocation before glyphs are drawn.
	// Nil means transparent.
	Background color.Color

	// Underline draws a line one pixel below the baseline.
	Underline bool
	// StrikeThrough draws a line through the glyphs above the baseline.
	StrikeThrough bool
	// Superscript raises the run to align with the top of the line.
	Superscript bool
	// Subscript lowers the run below the baseline.
	Subscript bool

	// Tabs is the paragraph tab set, nil for default 72px tab stops.
	Tabs *TabSet

	// Alignment is the paragraph row justification.
	Alignment Alignment
	// LineSpacing is extra height added below each row, in pixels.
	LineSpacing float64
	// FirstLineIndent shifts the first row of a paragraph, in pixels.
	FirstLineIndent float64
}

// EditKind distinguishes the three document mutation notifications.
type EditKind int

const (
	// EditInsert reports runes inserted at Offset.
	EditInsert EditKind = iota
	// EditRemove reports runes removed at Offset.
	EditRemove
	// EditChange reports attribute changes without text mutation.
	EditChange
)

// String returns a human-readable name for the edit kind.
func (k EditKind) String() string {
	switch k {
	case EditInsert:
		return "Insert"
	case EditRemove:
		return "Remove"
	case EditChange:
		return "Change"
	default:
		return unknownStr
	}
}

// ElementChange records how one branch element's children were rearranged
// by an edit.
type ElementChange struct {
	// Index is the child index where the change occurred.
	Index int
	// Added holds the child elements inserted at Index.
	Added []Element
	// Removed holds the child elements removed at Index.
	Removed []Element
}

// EditEvent describes one document mutation. Views receive it through
// InsertUpdate, RemoveUpdate and ChangedUpdate.
type EditEvent struct {
	// Kind is the mutation type.
	Kind EditKind
	// Offset is the first affected rune position.
	Offset int
	// Length is the number of runes inserted or removed.
	Length int

	changes map[Element]*ElementChange
}

// Change returns the structural change recorded against el, or nil if the
// edit left el's children untouched.
func (e *EditEvent) Change(el Element) *ElementChange {
	if e == nil || e.changes == nil {
		return nil
	}
	return e.changes[el]
}

// RecordChange attaches a structural change record for el. Document
// implementations call this while applying an edit.
func (e *EditEvent) RecordChange(el Element, ch *ElementChange) {
	if e.changes == nil {
		e.changes = make(map[Element]*ElementChange)
	}
	e.changes[el] = ch
}

// End returns the offset just past the affected range.
func (e *EditEvent) End() int {
	return e.Offset + e.Length
}

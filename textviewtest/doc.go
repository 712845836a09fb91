// Package textviewtest provides in-memory implementations of the textview
// host-side interfaces (Document, Host, Surface, Face) for tests.
package textviewtest

import (
	"fmt"
	"slices"

	textview "github.com/gogpu/textview"
)

// Doc is an in-memory document. NewDoc builds a line-mapped structure (one
// leaf child per line, split after '\n') suitable for PlainView and
// WrappedView; NewRunDoc builds one leaf per styled run for paragraph
// layout.
//
// Insert and Remove mutate the text, keep positions and the element map
// current, and return the EditEvent a widget would forward to its views.
type Doc struct {
	runes     []rune
	root      *element
	positions []*position
	multiByte bool
	lineMode  bool
}

// Run describes one styled leaf for NewRunDoc.
type Run struct {
	// Len is the run length in runes.
	Len int
	// Style is the run's attribute set, may be nil.
	Style *textview.Style
}

// NewDoc creates a line-mapped document.
func NewDoc(text string) *Doc {
	d := &Doc{runes: []rune(text), lineMode: true}
	d.root = &element{doc: d}
	for _, b := range lineBounds(d.runes) {
		d.root.children = append(d.root.children, &element{doc: d, parent: d.root, start: b[0], end: b[1]})
	}
	return d
}

// NewRunDoc creates a document whose root is a single paragraph with one
// leaf child per run. The runs must cover the text exactly.
func NewRunDoc(text string, runs ...Run) *Doc {
	d := &Doc{runes: []rune(text)}
	d.root = &element{doc: d}
	off := 0
	for _, r := range runs {
		d.root.children = append(d.root.children, &element{
			doc: d, parent: d.root, start: off, end: off + r.Len, style: r.Style,
		})
		off += r.Len
	}
	if off != len(d.runes) {
		panic(fmt.Sprintf("textviewtest: runs cover %d runes, text has %d", off, len(d.runes)))
	}
	return d
}

// SetMultiByte sets the flag views use to pick a break-spot strategy.
func (d *Doc) SetMultiByte(v bool) {
	d.multiByte = v
}

// SetRootStyle sets the root element's style: the paragraph attributes
// (tabs, alignment, indent, spacing) for paragraph layout.
func (d *Doc) SetRootStyle(s *textview.Style) {
	d.root.style = s
}

// Length implements textview.Document.
func (d *Doc) Length() int {
	return len(d.runes)
}

// Text implements textview.Document. The buffer shares the document's
// backing storage.
func (d *Doc) Text(p0, p1 int, buf *textview.TextBuffer) error {
	if p0 < 0 || p1 < p0 || p1 > len(d.runes) {
		return fmt.Errorf("textviewtest: text range [%d, %d) outside document of length %d", p0, p1, len(d.runes))
	}
	buf.Set(d.runes, p0, p1-p0)
	return nil
}

// Root implements textview.Document.
func (d *Doc) Root() textview.Element {
	return d.root
}

// MultiByte implements textview.Document.
func (d *Doc) MultiByte() bool {
	return d.multiByte
}

// CreatePosition implements textview.Document.
func (d *Doc) CreatePosition(offset int) (textview.Position, error) {
	if offset < 0 || offset > len(d.runes) {
		return nil, fmt.Errorf("textviewtest: position %d outside document of length %d", offset, len(d.runes))
	}
	p := &position{offset: offset}
	d.positions = append(d.positions, p)
	return p, nil
}

// String returns the document text.
func (d *Doc) String() string {
	return string(d.runes)
}

// Insert inserts s at offset and returns the edit event.
func (d *Doc) Insert(offset int, s string) *textview.EditEvent {
	rs := []rune(s)
	e := &textview.EditEvent{Kind: textview.EditInsert, Offset: offset, Length: len(rs)}
	if len(rs) == 0 {
		return e
	}
	affected := d.affectedLines(offset, offset)
	d.runes = slices.Insert(d.runes, offset, rs...)
	for _, p := range d.positions {
		if p.offset >= offset {
			p.offset += len(rs)
		}
	}
	d.relabel(e, affected)
	return e
}

// Remove deletes n runes at offset and returns the edit event.
func (d *Doc) Remove(offset, n int) *textview.EditEvent {
	e := &textview.EditEvent{Kind: textview.EditRemove, Offset: offset, Length: n}
	if n <= 0 {
		return e
	}
	affected := d.affectedLines(offset, offset+n)
	d.runes = slices.Delete(d.runes, offset, offset+n)
	for _, p := range d.positions {
		switch {
		case p.offset >= offset+n:
			p.offset -= n
		case p.offset > offset:
			p.offset = offset
		}
	}
	d.relabel(e, affected)
	return e
}

// Change returns an attribute-change event for [offset, offset+n).
func (d *Doc) Change(offset, n int) *textview.EditEvent {
	return &textview.EditEvent{Kind: textview.EditChange, Offset: offset, Length: n}
}

// affectedLines returns the index range [i0, i1] of root children touching
// the pre-edit range [q0, q1].
func (d *Doc) affectedLines(q0, q1 int) [2]int {
	i0 := d.root.ChildIndex(q0)
	i1 := d.root.ChildIndex(q1)
	return [2]int{i0, i1}
}

// relabel rebuilds the element map after a mutation. When the line count
// is unchanged the existing elements keep their identity and only their
// ranges move; otherwise the affected window is replaced and the change is
// recorded on the root for the views' structural-damage paths.
func (d *Doc) relabel(e *textview.EditEvent, affected [2]int) {
	d.root.end = len(d.runes)
	if !d.lineMode {
		d.relabelRuns(e)
		return
	}
	bounds := lineBounds(d.runes)
	old := d.root.children
	if len(bounds) == len(old) {
		for i, b := range bounds {
			old[i].start, old[i].end = b[0], b[1]
		}
		return
	}

	i0, i1 := affected[0], affected[1]
	suffix := len(old) - i1 - 1
	newAffected := len(bounds) - i0 - suffix

	removed := make([]textview.Element, 0, i1-i0+1)
	for _, el := range old[i0 : i1+1] {
		removed = append(removed, el)
	}
	added := make([]textview.Element, 0, newAffected)
	children := make([]*element, 0, len(bounds))
	children = append(children, old[:i0]...)
	for i := 0; i < newAffected; i++ {
		el := &element{doc: d, parent: d.root}
		children = append(children, el)
		added = append(added, el)
	}
	children = append(children, old[len(old)-suffix:]...)
	for i, b := range bounds {
		children[i].start, children[i].end = b[0], b[1]
	}
	d.root.children = children
	e.RecordChange(d.root, &textview.ElementChange{Index: i0, Added: added, Removed: removed})
}

// relabelRuns grows or shrinks the run containing the edit and shifts the
// runs after it. Run documents never change structure.
func (d *Doc) relabelRuns(e *textview.EditEvent) {
	delta := e.Length
	if e.Kind == textview.EditRemove {
		delta = -delta
	}
	for _, el := range d.root.children {
		if el.end > e.Offset {
			el.end += delta
		}
		if el.start > e.Offset {
			el.start += delta
		}
		el.end = max(el.end, el.start)
	}
}

// lineBounds splits runes into line ranges, each ending just after its
// newline. The final range is the tail without a newline, or an empty line
// when the text ends in one (or is empty).
func lineBounds(runes []rune) [][2]int {
	var bounds [][2]int
	start := 0
	for i, r := range runes {
		if r == '\n' {
			bounds = append(bounds, [2]int{start, i + 1})
			start = i + 1
		}
	}
	bounds = append(bounds, [2]int{start, len(runes)})
	return bounds
}

// position implements textview.Position.
type position struct {
	offset int
}

func (p *position) Offset() int {
	return p.offset
}

// element implements textview.Element.
type element struct {
	doc      *Doc
	parent   *element
	start    int
	end      int
	children []*element
	style    *textview.Style
}

func (e *element) Document() textview.Document { return e.doc }

func (e *element) Parent() textview.Element {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

func (e *element) StartOffset() int { return e.start }

func (e *element) EndOffset() int {
	if len(e.children) > 0 {
		return e.children[len(e.children)-1].end
	}
	return e.end
}

func (e *element) IsLeaf() bool { return len(e.children) == 0 }

func (e *element) ChildCount() int { return len(e.children) }

func (e *element) Child(i int) textview.Element { return e.children[i] }

func (e *element) ChildIndex(offset int) int {
	for i, c := range e.children {
		if offset < c.end {
			return i
		}
	}
	return max(len(e.children)-1, 0)
}

func (e *element) Style() *textview.Style { return e.style }

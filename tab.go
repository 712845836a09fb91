package textview

import "sort"

// TabExpander converts a tab character into a pixel position. Views that
// measure tabbed text are handed the expander by their paragraph (or act as
// their own for plain line layouts).
type TabExpander interface {
	// NextTabStop returns the pixel position following a tab encountered
	// at pixel position x and model offset tabOffset.
	NextTabStop(x float64, tabOffset int) float64
}

// TabAlignment selects how text after a tab relates to the stop position.
type TabAlignment int

const (
	// TabLeft places following text starting at the stop.
	TabLeft TabAlignment = iota
	// TabRight places following text ending at the stop.
	TabRight
	// TabCenter centers following text on the stop.
	TabCenter
	// TabDecimal aligns the decimal point of following text on the stop.
	TabDecimal
	// TabBar behaves like TabLeft; the bar rule itself is a rendering
	// concern outside the layout engine.
	TabBar
)

// String returns a human-readable name for the alignment.
func (a TabAlignment) String() string {
	switch a {
	case TabLeft:
		return "Left"
	case TabRight:
		return "Right"
	case TabCenter:
		return "Center"
	case TabDecimal:
		return "Decimal"
	case TabBar:
		return "Bar"
	default:
		return unknownStr
	}
}

// TabStop is one paragraph tab position.
type TabStop struct {
	// Position is the stop's offset from the paragraph's tab base, in
	// pixels.
	Position float64
	// Align is how text following the tab is placed around Position.
	Align TabAlignment
}

// TabSet is an immutable, position-sorted collection of tab stops.
type TabSet struct {
	stops []TabStop
}

// NewTabSet creates a TabSet from the given stops. The stops are copied
// and sorted by position.
func NewTabSet(stops ...TabStop) *TabSet {
	s := make([]TabStop, len(stops))
	copy(s, stops)
	sort.Slice(s, func(i, j int) bool { return s[i].Position < s[j].Position })
	return &TabSet{stops: s}
}

// Count returns the number of stops.
func (t *TabSet) Count() int {
	if t == nil {
		return 0
	}
	return len(t.stops)
}

// Stop returns the i'th stop in position order.
func (t *TabSet) Stop(i int) TabStop {
	return t.stops[i]
}

// StopAfter returns the first stop strictly beyond position x, or nil when
// x is past every stop.
func (t *TabSet) StopAfter(x float64) *TabStop {
	if t == nil {
		return nil
	}
	for i := range t.stops {
		if t.stops[i].Position > x {
			return &t.stops[i]
		}
	}
	return nil
}

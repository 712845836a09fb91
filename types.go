package textview

// unknownStr is returned by String() methods for out-of-range enum values.
const unknownStr = "Unknown"

// Axis identifies a layout axis.
type Axis int

const (
	// AxisX is the horizontal (inline) axis.
	AxisX Axis = iota
	// AxisY is the vertical (block) axis.
	AxisY
)

// String returns a human-readable name for the axis.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	default:
		return unknownStr
	}
}

// Alignment controls horizontal placement of flowed rows within a paragraph.
type Alignment int

const (
	// AlignLeft aligns rows to the left edge.
	AlignLeft Alignment = iota
	// AlignCenter centers rows.
	AlignCenter
	// AlignRight aligns rows to the right edge.
	AlignRight
	// AlignJustified distributes rows as left-aligned text; the fraction
	// of leftover space placed before a row matches AlignCenter.
	AlignJustified
)

// String returns a human-readable name for the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "Left"
	case AlignCenter:
		return "Center"
	case AlignRight:
		return "Right"
	case AlignJustified:
		return "Justified"
	default:
		return unknownStr
	}
}

// BreakWeight describes how attractive a break inside a view is along an
// axis. Higher values are better break opportunities.
type BreakWeight int

const (
	// BreakBad means the view cannot be usefully broken.
	BreakBad BreakWeight = iota
	// BreakGood means the view can be broken, but not at a natural
	// boundary (mid-word).
	BreakGood
	// BreakExcellent means a natural boundary (whitespace or a
	// locale-determined break spot) exists in range.
	BreakExcellent
	// BreakForced means the view must be broken here (hard line break).
	BreakForced
)

// String returns a human-readable name for the break weight.
func (w BreakWeight) String() string {
	switch w {
	case BreakBad:
		return "Bad"
	case BreakGood:
		return "Good"
	case BreakExcellent:
		return "Excellent"
	case BreakForced:
		return "Forced"
	default:
		return unknownStr
	}
}

// Direction is the resolved base direction of a span of text.
type Direction int

const (
	// DirectionLTR is left-to-right text.
	DirectionLTR Direction = iota
	// DirectionRTL is right-to-left text.
	DirectionRTL
)

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLTR:
		return "LeftToRight"
	case DirectionRTL:
		return "RightToLeft"
	default:
		return unknownStr
	}
}

// Bias disambiguates a caret position at a view boundary: the offset n can
// refer to the trailing edge of character n-1 or the leading edge of
// character n.
type Bias int

const (
	// BiasForward associates the position with the following character.
	BiasForward Bias = iota
	// BiasBackward associates the position with the preceding character.
	BiasBackward
)

// String returns a human-readable name for the bias.
func (b Bias) String() string {
	switch b {
	case BiasForward:
		return "Forward"
	case BiasBackward:
		return "Backward"
	default:
		return unknownStr
	}
}

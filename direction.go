package textview

import "golang.org/x/text/unicode/bidi"

// BaseDirection resolves the base direction of s per the Unicode
// bidirectional algorithm. Text with no strong characters is LTR.
func BaseDirection(s string) Direction {
	if s == "" {
		return DirectionLTR
	}
	p := bidi.Paragraph{}
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return DirectionLTR
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return DirectionLTR
	}
	run := ordering.Run(0)
	if run.Direction() == bidi.RightToLeft {
		return DirectionRTL
	}
	return DirectionLTR
}

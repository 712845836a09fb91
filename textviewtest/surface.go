package textviewtest

import (
	"image/color"

	textview "github.com/gogpu/textview"
)

// OpKind tags one recorded drawing operation.
type OpKind int

const (
	// OpSetColor is a SetColor call.
	OpSetColor OpKind = iota
	// OpFillRect is a FillRect call.
	OpFillRect
	// OpDrawLine is a DrawLine call.
	OpDrawLine
	// OpDrawText is a DrawText call.
	OpDrawText
)

// Op is one recorded drawing operation. Color is the current color at the
// time of the call.
type Op struct {
	Kind  OpKind
	Color color.Color
	Rect  textview.Rect
	Text  string
	Face  textview.Face
	X, Y  float64
	X1    float64
	Y1    float64
}

// Surface is a recording textview.Surface.
type Surface struct {
	Ops []Op

	current color.Color
}

func (s *Surface) SetColor(c color.Color) {
	s.current = c
	s.Ops = append(s.Ops, Op{Kind: OpSetColor, Color: c})
}

func (s *Surface) FillRect(r textview.Rect) {
	s.Ops = append(s.Ops, Op{Kind: OpFillRect, Color: s.current, Rect: r})
}

func (s *Surface) DrawLine(x0, y0, x1, y1 float64) {
	s.Ops = append(s.Ops, Op{Kind: OpDrawLine, Color: s.current, X: x0, Y: y0, X1: x1, Y1: y1})
}

func (s *Surface) DrawText(face textview.Face, text string, x, y float64) {
	s.Ops = append(s.Ops, Op{Kind: OpDrawText, Color: s.current, Face: face, Text: text, X: x, Y: y})
}

// FillRects returns the rectangles of every FillRect op in order.
func (s *Surface) FillRects() []textview.Rect {
	var out []textview.Rect
	for _, op := range s.Ops {
		if op.Kind == OpFillRect {
			out = append(out, op.Rect)
		}
	}
	return out
}

// Texts returns the strings of every DrawText op in order.
func (s *Surface) Texts() []string {
	var out []string
	for _, op := range s.Ops {
		if op.Kind == OpDrawText {
			out = append(out, op.Text)
		}
	}
	return out
}

// Reset discards the recorded operations.
func (s *Surface) Reset() {
	s.Ops = nil
}

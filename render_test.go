package textview_test

import (
	"image/color"
	"testing"

	textview "github.com/gogpu/textview"
	"github.com/gogpu/textview/highlight"
	"github.com/gogpu/textview/textviewtest"
)

func TestRenderPaintsHighlightsBeforeText(t *testing.T) {
	doc := textviewtest.NewDoc("abc\nde")
	host := textviewtest.NewHost(doc, textviewtest.NewFixedFace(10))
	host.MapFn = func(pos int) (textview.Rect, error) {
		x := float64(pos) * 10
		return textview.Rect{MinX: x, MinY: 0, MaxX: x + 1, MaxY: 10}, nil
	}
	hl := highlight.New(highlight.WithoutLayering())
	hl.Install(host)
	host.HL = hl
	if _, err := hl.Add(1, 3, highlight.NewRectPainter(color.RGBA{G: 0xff, A: 0xff})); err != nil {
		t.Fatalf("Add: %v", err)
	}

	ctx := textview.NewContext(host)
	root := textview.NewPlainView(doc.Root())
	s := &textviewtest.Surface{}
	if err := textview.Render(ctx, s, root, textview.RectXYWH(0, 0, 100, 20)); err != nil {
		t.Fatalf("Render: %v", err)
	}

	fillAt, textAt := -1, -1
	for i, op := range s.Ops {
		if op.Kind == textviewtest.OpFillRect && fillAt == -1 {
			fillAt = i
		}
		if op.Kind == textviewtest.OpDrawText && textAt == -1 {
			textAt = i
		}
	}
	if fillAt == -1 {
		t.Fatal("highlight fill never painted")
	}
	if textAt == -1 {
		t.Fatal("text never painted")
	}
	if fillAt > textAt {
		t.Error("widget-level highlights must paint before the view tree")
	}
	if got := s.Texts(); len(got) != 2 || got[0] != "abc" || got[1] != "de" {
		t.Errorf("painted lines = %v, want [abc de]", got)
	}
}

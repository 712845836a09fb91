package textview_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	textview "github.com/gogpu/textview"
	"github.com/gogpu/textview/textviewtest"
)

// plainFixture builds a line-mapped document with a 10px fixed face.
func plainFixture(t *testing.T, text string) (*textview.Context, *textviewtest.Doc, *textviewtest.Host, *textview.PlainView) {
	t.Helper()
	doc := textviewtest.NewDoc(text)
	host := textviewtest.NewHost(doc, textviewtest.NewFixedFace(10))
	ctx := textview.NewContext(host)
	return ctx, doc, host, textview.NewPlainView(doc.Root())
}

func TestPlainViewPreferredSpans(t *testing.T) {
	ctx, _, _, pv := plainFixture(t, "abc\nde\nfghij")
	if got := pv.Span(ctx, textview.AxisX); got != 50 {
		t.Errorf("Span(X) = %v, want 50 (longest line)", got)
	}
	if got := pv.Span(ctx, textview.AxisY); got != 30 {
		t.Errorf("Span(Y) = %v, want 30 (3 lines x 10px)", got)
	}
}

func TestPlainViewLongestLineInsert(t *testing.T) {
	ctx, doc, host, pv := plainFixture(t, "abc\nde\nfghij")
	pv.Span(ctx, textview.AxisX) // prime the cache

	// Grow line 1 ("de") past the cached longest line.
	host.Reset()
	e := doc.Insert(5, "XXXXXX") // line 1 becomes "dXXXXXXe", 8 chars
	pv.InsertUpdate(ctx, e, textview.RectXYWH(0, 0, 100, 30))
	if got := pv.Span(ctx, textview.AxisX); got != 80 {
		t.Errorf("Span(X) after growth = %v, want 80", got)
	}
	if len(host.PrefChanges) == 0 || !host.PrefChanges[0].Width {
		t.Error("growing past the longest line must signal a width preference change")
	}

	// Insert into a short line that stays short: damage only, no
	// preference change.
	host.Reset()
	e = doc.Insert(1, "z")
	pv.InsertUpdate(ctx, e, textview.RectXYWH(0, 0, 100, 30))
	if len(host.PrefChanges) != 0 {
		t.Errorf("short-line insert signalled %v, want none", host.PrefChanges)
	}
	if len(host.Damages) != 1 {
		t.Fatalf("short-line insert damaged %v, want one line band", host.Damages)
	}
	if host.Damages[0].MinY != 0 || host.Damages[0].MaxY != 10 {
		t.Errorf("damage band = %+v, want line 0 (y 0..10)", host.Damages[0])
	}
}

func TestPlainViewLongestLineRemove(t *testing.T) {
	ctx, doc, host, pv := plainFixture(t, "abc\nde\nfghij")
	pv.Span(ctx, textview.AxisX)

	// Shrink the longest line: the cache must be rescanned.
	host.Reset()
	e := doc.Remove(9, 3) // "fghij" -> "fg"
	pv.RemoveUpdate(ctx, e, textview.RectXYWH(0, 0, 100, 30))
	if got := pv.Span(ctx, textview.AxisX); got != 30 {
		t.Errorf("Span(X) after shrink = %v, want 30 (now \"abc\")", got)
	}
	if len(host.PrefChanges) == 0 {
		t.Error("shrinking the longest line must signal a preference change")
	}
}

func TestPlainViewLineAddRemove(t *testing.T) {
	ctx, doc, host, pv := plainFixture(t, "abc\nde")
	pv.Span(ctx, textview.AxisX)

	host.Reset()
	e := doc.Insert(6, "\nwxyzuv")
	pv.InsertUpdate(ctx, e, textview.RectXYWH(0, 0, 100, 30))
	if host.Repaints == 0 {
		t.Error("adding a line must repaint the widget")
	}
	if len(host.PrefChanges) == 0 || !host.PrefChanges[0].Width || !host.PrefChanges[0].Height {
		t.Errorf("adding a line signalled %v, want width+height", host.PrefChanges)
	}
	if got := pv.Span(ctx, textview.AxisX); got != 60 {
		t.Errorf("Span(X) after line add = %v, want 60", got)
	}
	if got := pv.Span(ctx, textview.AxisY); got != 30 {
		t.Errorf("Span(Y) after line add = %v, want 30", got)
	}
}

// TestPlainViewLongestLineProperty drives random edits through the view
// and checks the cached preferred width against a brute-force recount
// after every step.
func TestPlainViewLongestLineProperty(t *testing.T) {
	ctx, doc, _, pv := plainFixture(t, "alpha\nbeta\ngamma delta\nx")
	pv.Span(ctx, textview.AxisX)

	rng := rand.New(rand.NewSource(7))
	alloc := textview.RectXYWH(0, 0, 400, 400)
	for step := 0; step < 200; step++ {
		n := doc.Length()
		var e *textview.EditEvent
		if n == 0 || rng.Intn(2) == 0 {
			texts := []string{"q", "longinsertion", "\n", "ab\ncd", " "}
			e = doc.Insert(rng.Intn(n+1), texts[rng.Intn(len(texts))])
			pv.InsertUpdate(ctx, e, alloc)
		} else {
			off := rng.Intn(n)
			cnt := min(1+rng.Intn(4), n-off)
			e = doc.Remove(off, cnt)
			pv.RemoveUpdate(ctx, e, alloc)
		}

		want := bruteForceWidest(doc.String())
		if got := pv.Span(ctx, textview.AxisX); got != want {
			t.Fatalf("step %d: Span(X) = %v, want %v (text %q)", step, got, want, doc.String())
		}
	}
}

// bruteForceWidest recomputes the widest line at 10px per rune.
func bruteForceWidest(text string) float64 {
	var widest float64
	for _, line := range strings.Split(text, "\n") {
		if w := float64(len([]rune(line))) * 10; w > widest {
			widest = w
		}
	}
	return widest
}

func TestPlainViewModelToView(t *testing.T) {
	ctx, _, _, pv := plainFixture(t, "abc\nde\nfghij")
	alloc := textview.RectXYWH(0, 0, 100, 30)

	tests := []struct {
		pos          int
		wantX, wantY float64
	}{
		{0, 0, 0},
		{2, 20, 0},
		{4, 0, 10},  // start of "de"
		{9, 20, 20}, // "fghij" offset 2
	}
	for _, tt := range tests {
		r, err := pv.ModelToView(ctx, tt.pos, textview.BiasForward, alloc)
		if err != nil {
			t.Fatalf("ModelToView(%d): %v", tt.pos, err)
		}
		if r.MinX != tt.wantX || r.MinY != tt.wantY {
			t.Errorf("ModelToView(%d) = (%v, %v), want (%v, %v)", tt.pos, r.MinX, r.MinY, tt.wantX, tt.wantY)
		}
	}
}

func TestPlainViewViewToModel(t *testing.T) {
	ctx, _, _, pv := plainFixture(t, "abc\nde\nfghij")
	alloc := textview.RectXYWH(0, 0, 100, 30)

	tests := []struct {
		name    string
		x, y    float64
		wantPos int
	}{
		{"origin", 0, 0, 0},
		{"line 1 glyph", 12, 15, 5},
		{"past line end clamps before newline", 90, 5, 3},
		{"below last line", 0, 500, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, _ := pv.ViewToModel(ctx, tt.x, tt.y, alloc)
			if pos != tt.wantPos {
				t.Errorf("ViewToModel(%v, %v) = %d, want %d", tt.x, tt.y, pos, tt.wantPos)
			}
		})
	}
}

func TestPlainViewTabStops(t *testing.T) {
	ctx, _, _, pv := plainFixture(t, "a\tb")
	pv.Span(ctx, textview.AxisX) // sync metrics
	// Tab size is 8 'm' advances = 80px; stops at multiples of 80.
	if got := pv.NextTabStop(10, 1); got != 80 {
		t.Errorf("NextTabStop(10) = %v, want 80", got)
	}
	if got := pv.NextTabStop(80, 1); got != 160 {
		t.Errorf("NextTabStop(80) = %v, want 160", got)
	}
}

func TestPlainViewPaintClipsToViewport(t *testing.T) {
	ctx, _, host, pv := plainFixture(t, "aa\nbb\ncc\ndd\nee")
	host.ViewportVal = textview.RectXYWH(0, 10, 100, 20) // lines 1..2
	s := &textviewtest.Surface{}
	if err := pv.Paint(ctx, s, textview.RectXYWH(0, 0, 100, 50)); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	want := []string{"bb", "cc", "dd"}
	if diff := cmp.Diff(want, s.Texts()); diff != "" {
		t.Errorf("painted lines mismatch (-want +got):\n%s", diff)
	}
}

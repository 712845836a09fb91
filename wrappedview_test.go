package textview_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	textview "github.com/gogpu/textview"
	"github.com/gogpu/textview/textviewtest"
)

// wrapFixture builds a line-mapped document with a 10px fixed face and a
// wrapping view sized to width.
func wrapFixture(t *testing.T, text string, width float64, opts ...textview.WrapOption) (*textview.Context, *textviewtest.Doc, *textviewtest.Host, *textview.WrappedView) {
	t.Helper()
	doc := textviewtest.NewDoc(text)
	host := textviewtest.NewHost(doc, textviewtest.NewFixedFace(10))
	ctx := textview.NewContext(host)
	wv := textview.NewWrappedView(doc.Root(), opts...)
	if width > 0 {
		wv.SetSize(ctx, width, 0)
	}
	return ctx, doc, host, wv
}

func TestWrappedViewRowCounts(t *testing.T) {
	tests := []struct {
		name     string
		wordWrap bool
		wantRows int
	}{
		// "hello world foo\n" wraps to "hello " / "world " / "foo",
		// plus one row for "bar".
		{"word wrap", true, 4},
		// Character wrap packs 8 glyphs per 80px row: 2 rows + "bar".
		{"char wrap", false, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _, _, wv := wrapFixture(t, "hello world foo\nbar", 80, textview.WithWordWrap(tt.wordWrap))
			want := float64(tt.wantRows) * 10
			if got := wv.Span(ctx, textview.AxisY); got != want {
				t.Errorf("Span(Y) = %v, want %v (%d rows)", got, want, tt.wantRows)
			}
			if got := wv.Span(ctx, textview.AxisX); got != 80 {
				t.Errorf("Span(X) = %v, want the allocated width 80", got)
			}
		})
	}
}

func TestWrappedViewUnwrappedSpan(t *testing.T) {
	// Before the first SetSize the preferred width is the widest line,
	// without its newline.
	ctx, _, _, wv := wrapFixture(t, "hello world foo\nbar", 0)
	if got := wv.Span(ctx, textview.AxisX); got != 150 {
		t.Errorf("unwrapped Span(X) = %v, want 150", got)
	}
}

func TestWrappedViewPaintRows(t *testing.T) {
	ctx, _, _, wv := wrapFixture(t, "hello world foo", 80)
	s := &textviewtest.Surface{}
	if err := wv.Paint(ctx, s, textview.RectXYWH(0, 0, 80, 100)); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	want := []string{"hello ", "world ", "foo"}
	if diff := cmp.Diff(want, s.Texts()); diff != "" {
		t.Errorf("painted rows mismatch (-want +got):\n%s", diff)
	}
	// Rows stack down the allocation at one line height each.
	var ys []float64
	for _, op := range s.Ops {
		if op.Kind == textviewtest.OpDrawText {
			ys = append(ys, op.Y)
		}
	}
	for i, y := range ys {
		if want := float64(i)*10 + 8; y != want {
			t.Errorf("row %d baseline = %v, want %v", i, y, want)
		}
	}
}

func TestWrappedViewModelToViewBias(t *testing.T) {
	// "hello world foo\nbar" at 80px: rows are [0,6) [6,12) [12,16) [16,19).
	ctx, _, _, wv := wrapFixture(t, "hello world foo\nbar", 80)
	alloc := textview.RectXYWH(0, 0, 80, 100)

	// Offset 12 sits on the wrap boundary between rows 1 and 2.
	r, err := wv.ModelToView(ctx, 12, textview.BiasForward, alloc)
	if err != nil {
		t.Fatalf("ModelToView(12, forward): %v", err)
	}
	if r.MinX != 0 || r.MinY != 20 {
		t.Errorf("forward bias = (%v, %v), want (0, 20): start of the later row", r.MinX, r.MinY)
	}

	r, err = wv.ModelToView(ctx, 12, textview.BiasBackward, alloc)
	if err != nil {
		t.Fatalf("ModelToView(12, backward): %v", err)
	}
	if r.MinX != 60 || r.MinY != 10 {
		t.Errorf("backward bias = (%v, %v), want (60, 10): end of the earlier row", r.MinX, r.MinY)
	}

	// A position on the second line lands below line 0's three rows.
	r, err = wv.ModelToView(ctx, 17, textview.BiasForward, alloc)
	if err != nil {
		t.Fatalf("ModelToView(17): %v", err)
	}
	if r.MinX != 10 || r.MinY != 30 {
		t.Errorf("ModelToView(17) = (%v, %v), want (10, 30)", r.MinX, r.MinY)
	}
}

func TestWrappedViewViewToModel(t *testing.T) {
	ctx, _, _, wv := wrapFixture(t, "hello world foo\nbar", 80)
	alloc := textview.RectXYWH(0, 0, 80, 100)

	tests := []struct {
		name    string
		x, y    float64
		wantPos int
	}{
		{"first row", 5, 5, 0},
		{"third row", 5, 25, 12},
		{"past row end clamps to line", 1000, 5, 6},
		{"below left lands on last row start", 0, 1000, 16},
		{"below right clamps before end", 1000, 1000, 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, _ := wv.ViewToModel(ctx, tt.x, tt.y, alloc)
			if pos != tt.wantPos {
				t.Errorf("ViewToModel(%v, %v) = %d, want %d", tt.x, tt.y, pos, tt.wantPos)
			}
		})
	}
}

func TestWrappedViewEditStableRowCount(t *testing.T) {
	ctx, doc, host, wv := wrapFixture(t, "hello world foo\nbar", 80)
	wv.Span(ctx, textview.AxisY) // prime the row-count cache
	alloc := textview.RectXYWH(0, 0, 80, 100)

	// "bar" -> "bzar" still fits one row: damage only its band, which
	// sits below line 0's three rows.
	host.Reset()
	e := doc.Insert(17, "z")
	wv.InsertUpdate(ctx, e, alloc)
	if len(host.PrefChanges) != 0 || host.Repaints != 0 {
		t.Errorf("stable row count signalled pref=%v repaints=%d, want damage only", host.PrefChanges, host.Repaints)
	}
	if len(host.Damages) != 1 {
		t.Fatalf("damages = %v, want one row band", host.Damages)
	}
	want := textview.Rect{MinX: 0, MinY: 30, MaxX: 80, MaxY: 40}
	if host.Damages[0] != want {
		t.Errorf("damage = %+v, want %+v", host.Damages[0], want)
	}
}

func TestWrappedViewEditRowCountChange(t *testing.T) {
	ctx, doc, host, wv := wrapFixture(t, "hello world foo\nbar", 80)
	wv.Span(ctx, textview.AxisY)
	alloc := textview.RectXYWH(0, 0, 80, 100)

	// Line 0 grows from three wrapped rows to four: everything below
	// shifts, so the height preference changes and the widget repaints.
	host.Reset()
	e := doc.Insert(0, "aaaaaa ")
	wv.InsertUpdate(ctx, e, alloc)
	if len(host.PrefChanges) != 1 || host.PrefChanges[0].Width || !host.PrefChanges[0].Height {
		t.Errorf("prefs = %v, want one height-only change", host.PrefChanges)
	}
	if host.Repaints != 1 {
		t.Errorf("repaints = %d, want 1", host.Repaints)
	}
	if len(host.Damages) != 0 {
		t.Errorf("damages = %v, want none (full repaint)", host.Damages)
	}
	if got := wv.Span(ctx, textview.AxisY); got != 50 {
		t.Errorf("Span(Y) after growth = %v, want 50", got)
	}
}

func TestWrappedViewEditStructural(t *testing.T) {
	ctx, doc, host, wv := wrapFixture(t, "hello world foo\nbar", 80)
	wv.Span(ctx, textview.AxisY)
	alloc := textview.RectXYWH(0, 0, 80, 100)

	host.Reset()
	e := doc.Insert(19, "\nqq")
	wv.InsertUpdate(ctx, e, alloc)
	if len(host.PrefChanges) != 1 || !host.PrefChanges[0].Height {
		t.Errorf("prefs = %v, want a height change", host.PrefChanges)
	}
	if host.Repaints != 1 {
		t.Errorf("repaints = %d, want 1", host.Repaints)
	}
	if got := wv.Span(ctx, textview.AxisY); got != 50 {
		t.Errorf("Span(Y) after line add = %v, want 50 (5 rows)", got)
	}
}

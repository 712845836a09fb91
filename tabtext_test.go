package textview_test

import (
	"testing"

	textview "github.com/gogpu/textview"
	"github.com/gogpu/textview/textviewtest"
)

// intervalExpander advances tabs to the next multiple of its interval.
type intervalExpander float64

func (e intervalExpander) NextTabStop(x float64, tabOffset int) float64 {
	n := int(x / float64(e))
	return float64(n+1) * float64(e)
}

func bufferOf(s string) *textview.TextBuffer {
	runes := []rune(s)
	b := &textview.TextBuffer{}
	b.Set(runes, 0, len(runes))
	return b
}

func TestTabbedTextWidth(t *testing.T) {
	face := textviewtest.NewFixedFace(10)
	tests := []struct {
		name string
		text string
		x0   float64
		e    textview.TabExpander
		want float64
	}{
		{"no tabs", "abcd", 0, intervalExpander(40), 40},
		{"tab expands to stop", "ab\tc", 0, intervalExpander(40), 50},
		{"tab at stop boundary", "abcd\tx", 0, intervalExpander(40), 90},
		{"stops are absolute positions", "a\tb", 35, intervalExpander(40), 55},
		{"nil expander measures a space", "a\tb", 0, nil, 30},
		{"empty", "", 0, intervalExpander(40), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textview.TabbedTextWidth(bufferOf(tt.text), face, tt.x0, tt.e, 0)
			if got != tt.want {
				t.Errorf("TabbedTextWidth(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestDrawTabbedText(t *testing.T) {
	face := textviewtest.NewFixedFace(10)
	s := &textviewtest.Surface{}
	end := textview.DrawTabbedText(s, bufferOf("ab\tcd"), face, 0, 20, intervalExpander(40), 0)
	if end != 60 {
		t.Errorf("end x = %v, want 60", end)
	}
	texts := s.Texts()
	want := []string{"ab", "cd"}
	if len(texts) != len(want) {
		t.Fatalf("drew %d chunks %v, want %v", len(texts), texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, texts[i], want[i])
		}
	}
	// Second chunk starts at the expanded stop.
	var xs []float64
	for _, op := range s.Ops {
		if op.Kind == textviewtest.OpDrawText {
			xs = append(xs, op.X)
		}
	}
	if xs[0] != 0 || xs[1] != 40 {
		t.Errorf("chunk positions = %v, want [0 40]", xs)
	}
}

func TestTabbedTextOffset(t *testing.T) {
	face := textviewtest.NewFixedFace(10)
	buf := bufferOf("abcde")
	tests := []struct {
		name  string
		x     float64
		round bool
		want  int
	}{
		{"before start", -5, true, 0},
		{"inside first glyph no round", 9, false, 0},
		{"past midpoint rounds up", 16, true, 2},
		{"before midpoint rounds down", 13, true, 1},
		{"past end", 500, true, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textview.TabbedTextOffset(buf, face, 0, tt.x, nil, 0, tt.round)
			if got != tt.want {
				t.Errorf("TabbedTextOffset(x=%v, round=%v) = %d, want %d", tt.x, tt.round, got, tt.want)
			}
		})
	}
}

func TestBreakLocation(t *testing.T) {
	face := textviewtest.NewFixedFace(10)
	tests := []struct {
		name string
		text string
		x    float64
		want int
	}{
		{"breaks after whitespace", "hello world", 80, 6},
		{"everything fits", "hi there", 200, 8},
		{"no whitespace breaks mid-word", "abcdefghij", 45, 4},
		{"whitespace at fit boundary", "ab cdefgh", 55, 3},
		// One glyph short of fitting still wraps at the space: the last
		// rune must not ride the row.
		{"almost fits", "world foo", 80, 6},
		{"newline at fit boundary", "world foo\n", 90, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := textview.BreakLocation(bufferOf(tt.text), face, 0, tt.x, nil, 0)
			if got != tt.want {
				t.Errorf("BreakLocation(%q, x=%v) = %d, want %d", tt.text, tt.x, got, tt.want)
			}
		})
	}
}

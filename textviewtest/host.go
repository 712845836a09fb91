package textviewtest

import (
	"image/color"

	textview "github.com/gogpu/textview"
)

// PrefChange records one PreferenceChanged notification.
type PrefChange struct {
	View   textview.View
	Width  bool
	Height bool
}

// Host is a recording textview.Host. Configure the exported fields, run
// the operation under test, then assert on the recorded damage.
type Host struct {
	Doc        *Doc
	FaceVal    textview.Face
	EnabledVal bool

	Fg          color.Color
	Disabled    color.Color
	SelColor    color.Color
	SelTextFg   color.Color
	Sel0, Sel1  int
	SelVisible  bool
	HL          textview.Highlights
	ViewportVal textview.Rect

	// MapFn backs ModelToView for the widget-level highlight pass.
	MapFn func(pos int) (textview.Rect, error)

	Damages       []textview.Rect
	DamagedRanges [][2]int
	Repaints      int
	PrefChanges   []PrefChange
}

// NewHost creates a host over doc rendering with face.
func NewHost(doc *Doc, face textview.Face) *Host {
	return &Host{
		Doc:        doc,
		FaceVal:    face,
		EnabledVal: true,
		Fg:         color.Black,
		Disabled:   color.Gray16{Y: 0x8000},
		SelColor:   color.RGBA{R: 0xb0, G: 0xd0, B: 0xff, A: 0xff},
	}
}

// Reset clears the recorded notifications.
func (h *Host) Reset() {
	h.Damages = nil
	h.DamagedRanges = nil
	h.Repaints = 0
	h.PrefChanges = nil
}

func (h *Host) Document() textview.Document     { return h.Doc }
func (h *Host) Face() textview.Face             { return h.FaceVal }
func (h *Host) Enabled() bool                   { return h.EnabledVal }
func (h *Host) Foreground() color.Color         { return h.Fg }
func (h *Host) DisabledColor() color.Color      { return h.Disabled }
func (h *Host) Selection() (int, int)           { return h.Sel0, h.Sel1 }
func (h *Host) SelectionVisible() bool          { return h.SelVisible }
func (h *Host) SelectionColor() color.Color     { return h.SelColor }
func (h *Host) SelectedTextColor() color.Color  { return h.SelTextFg }
func (h *Host) Highlights() textview.Highlights { return h.HL }
func (h *Host) Viewport() textview.Rect         { return h.ViewportVal }

func (h *Host) ModelToView(pos int) (textview.Rect, error) {
	if h.MapFn != nil {
		return h.MapFn(pos)
	}
	return textview.Rect{}, nil
}

func (h *Host) Damage(r textview.Rect) {
	h.Damages = append(h.Damages, r)
}

func (h *Host) DamageRange(p0, p1 int) {
	h.DamagedRanges = append(h.DamagedRanges, [2]int{p0, p1})
}

func (h *Host) Repaint() {
	h.Repaints++
}

func (h *Host) PreferenceChanged(v textview.View, width, height bool) {
	h.PrefChanges = append(h.PrefChanges, PrefChange{View: v, Width: width, Height: height})
}

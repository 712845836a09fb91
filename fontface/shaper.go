package fontface

import (
	"bytes"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// hbShaper measures text through go-text/typesetting's HarfBuzz
// implementation.
//
// font.Font is read-only and safe for concurrent use; font.Face and
// HarfbuzzShaper are not, so faces are created per call and shapers are
// pooled.
type hbShaper struct {
	font *font.Font
	pool sync.Pool
}

// newHBShaper parses the font data with go-text/typesetting.
func newHBShaper(data []byte) (*hbShaper, error) {
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &hbShaper{
		font: face.Font,
		pool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}, nil
}

// advance shapes s at the given pixel size and sums the glyph advances.
func (h *hbShaper) advance(s string, size float64) float64 {
	runes := []rune(s)
	if len(runes) == 0 {
		return 0
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(h.font),
		Size:      fixed.Int26_6(size * 64),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}
	hb := h.pool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	h.pool.Put(hb)

	var total fixed.Int26_6
	for _, g := range output.Glyphs {
		total += g.Advance
	}
	return float64(total) / 64.0
}

// detectScript returns the script of the first non-space rune. Mixed-
// script text should be split into runs before measurement.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

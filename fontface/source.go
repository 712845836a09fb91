// Package fontface loads font files and produces textview.Face values for
// layout measurement.
//
// A Source wraps one parsed font file and hands out faces at arbitrary
// sizes. The default face measures through golang.org/x/image/font/sfnt
// glyph advances; WithShaping upgrades measurement to HarfBuzz shaping via
// go-text/typesetting, which accounts for kerning and ligatures.
package fontface

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Errors returned by font loading.
var (
	// ErrEmptyFontData is returned when no font bytes are supplied.
	ErrEmptyFontData = errors.New("fontface: empty font data")
)

// Source is a loaded font file. One Source creates any number of faces at
// different sizes; it is heavyweight and meant to be shared.
//
// Source is safe for concurrent use and must not be copied after creation.
type Source struct {
	// addr points to the Source itself for copy detection.
	addr *Source

	data []byte
	font *opentype.Font
	name string

	mu     sync.Mutex
	shaper *hbShaper // lazily built when a shaping face is requested
}

// NewSource parses font data (TTF or OTF). The data slice is copied and
// can be reused after the call.
func NewSource(data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fontface: failed to parse font: %w", err)
	}
	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	s := &Source{data: dataCopy, font: f}
	s.addr = s
	if name, err := f.Name(nil, sfnt.NameIDFamily); err == nil {
		s.name = name
	}
	return s, nil
}

// NewSourceFromFile loads a Source from a font file path.
func NewSourceFromFile(path string) (*Source, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fontface: failed to read font file: %w", err)
	}
	return NewSource(data)
}

// Name returns the font family name, or "" when the font does not carry
// one.
func (s *Source) Name() string {
	s.copyCheck()
	return s.name
}

// Face creates a textview.Face at the given pixel size.
// Panics if s is nil (e.g. when the NewSourceFromFile error was ignored).
func (s *Source) Face(size float64, opts ...FaceOption) (Face, error) {
	if s == nil {
		panic("fontface: Source is nil — did you check the error from NewSourceFromFile?")
	}
	s.copyCheck()

	config := faceConfig{}
	for _, opt := range opts {
		opt(&config)
	}

	f := &sourceFace{source: s, size: size}
	if err := f.initMetrics(); err != nil {
		return nil, err
	}
	if config.shaping {
		sh, err := s.harfbuzz()
		if err != nil {
			return nil, err
		}
		f.shaper = sh
	}
	return f, nil
}

// Close releases the font data. Faces created from the source become
// invalid.
func (s *Source) Close() error {
	s.copyCheck()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = nil
	s.shaper = nil
	return nil
}

// harfbuzz returns the shared shaping backend, building it on first use.
func (s *Source) harfbuzz() (*hbShaper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shaper != nil {
		return s.shaper, nil
	}
	sh, err := newHBShaper(s.data)
	if err != nil {
		return nil, err
	}
	s.shaper = sh
	return sh, nil
}

// copyCheck panics if Source was copied by value.
func (s *Source) copyCheck() {
	if s.addr != s {
		panic("fontface: Source must not be copied by value")
	}
}

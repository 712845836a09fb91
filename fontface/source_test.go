package fontface

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

// loadTestFont loads the embedded Go Regular font.
func loadTestFont(t *testing.T) *Source {
	t.Helper()
	source, err := NewSource(goregular.TTF)
	if err != nil {
		t.Fatalf("failed to load test font: %v", err)
	}
	t.Cleanup(func() {
		if err := source.Close(); err != nil {
			t.Errorf("failed to close font source: %v", err)
		}
	})
	return source
}

func TestNewSourceErrors(t *testing.T) {
	if _, err := NewSource(nil); !errors.Is(err, ErrEmptyFontData) {
		t.Errorf("NewSource(nil) = %v, want ErrEmptyFontData", err)
	}
	if _, err := NewSource([]byte("not a font")); err == nil {
		t.Error("NewSource(garbage) succeeded, want parse error")
	}
}

func TestSourceName(t *testing.T) {
	source := loadTestFont(t)
	if source.Name() == "" {
		t.Error("Name() is empty, want the font family name")
	}
}

func TestNewSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatalf("failed to write font file: %v", err)
	}
	source, err := NewSourceFromFile(path)
	if err != nil {
		t.Fatalf("NewSourceFromFile: %v", err)
	}
	defer func() {
		if err := source.Close(); err != nil {
			t.Errorf("failed to close font source: %v", err)
		}
	}()
	if got, want := source.Name(), loadTestFont(t).Name(); got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}

	if _, err := NewSourceFromFile(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Error("NewSourceFromFile(missing) succeeded, want error")
	}
}

func TestFaceMetrics(t *testing.T) {
	source := loadTestFont(t)

	tests := []struct {
		name string
		size float64
	}{
		{"size 12", 12.0},
		{"size 16", 16.0},
		{"size 24", 24.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			face, err := source.Face(tt.size)
			if err != nil {
				t.Fatalf("Face(%v): %v", tt.size, err)
			}
			if face.Size() != tt.size {
				t.Errorf("Size() = %v, want %v", face.Size(), tt.size)
			}

			m := face.Metrics()
			if m.Ascent <= 0 {
				t.Errorf("Ascent should be positive, got %f", m.Ascent)
			}
			if m.Descent <= 0 {
				t.Errorf("Descent should be positive, got %f", m.Descent)
			}
			if m.LineGap < 0 {
				t.Errorf("LineGap should be non-negative, got %f", m.LineGap)
			}
			if want := m.Ascent + m.Descent + m.LineGap; m.LineHeight() != want {
				t.Errorf("LineHeight() = %f, want %f", m.LineHeight(), want)
			}
		})
	}

	// Metrics scale roughly linearly with size.
	face12, err := source.Face(12)
	if err != nil {
		t.Fatalf("Face(12): %v", err)
	}
	face24, err := source.Face(24)
	if err != nil {
		t.Fatalf("Face(24): %v", err)
	}
	ratio := face24.Metrics().Ascent / face12.Metrics().Ascent
	if ratio < 1.8 || ratio > 2.2 {
		t.Errorf("metrics scaling ratio = %f, want ~2.0", ratio)
	}
}

func TestFaceAdvance(t *testing.T) {
	source := loadTestFont(t)
	face, err := source.Face(16)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}

	if got := face.Advance(""); got != 0 {
		t.Errorf("Advance(\"\") = %v, want 0", got)
	}
	one := face.Advance("a")
	if one <= 0 {
		t.Fatalf("Advance(\"a\") = %v, want positive", one)
	}
	if two := face.Advance("ab"); two <= one {
		t.Errorf("Advance(\"ab\") = %v, want greater than Advance(\"a\") = %v", two, one)
	}
	if wide := face.Advance("mmm"); wide <= face.Advance("iii") {
		t.Errorf("Advance(\"mmm\") = %v should exceed Advance(\"iii\") = %v", wide, face.Advance("iii"))
	}

	big, err := source.Face(32)
	if err != nil {
		t.Fatalf("Face(32): %v", err)
	}
	if big.Advance("hello") <= face.Advance("hello") {
		t.Error("larger face should measure wider")
	}
}

func TestFaceAdvanceShaped(t *testing.T) {
	source := loadTestFont(t)
	plain, err := source.Face(16)
	if err != nil {
		t.Fatalf("Face: %v", err)
	}
	shaped, err := source.Face(16, WithShaping())
	if err != nil {
		t.Fatalf("Face(WithShaping): %v", err)
	}

	got := shaped.Advance("hello world")
	if got <= 0 {
		t.Fatalf("shaped Advance = %v, want positive", got)
	}
	// Shaping may kern but stays in the same ballpark as summed advances.
	ref := plain.Advance("hello world")
	if got < ref*0.8 || got > ref*1.2 {
		t.Errorf("shaped Advance = %v, out of range of unshaped %v", got, ref)
	}
}

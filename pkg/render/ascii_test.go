package render

import (
	"image"
	"image/color"
	"testing"
)

func TestASCIIMapsLuminance(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.SetRGBA(0, 0, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{128, 128, 128, 255})
	img.SetRGBA(2, 0, color.RGBA{255, 255, 255, 255})

	lines := ASCII(img)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0] != " +@" {
		t.Errorf("line = %q, want %q", lines[0], " +@")
	}
}

func TestASCIIOneLinePerRow(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	lines := ASCII(img)
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	for i, line := range lines {
		if len(line) != 4 {
			t.Errorf("line %d has %d glyphs, want 4", i, len(line))
		}
	}
}

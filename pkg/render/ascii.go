package render

import (
	"image"
	"strings"
)

// asciiRamp orders glyphs from dark to bright
const asciiRamp = " .:-=+*#%@"

// ASCII converts a rendered frame into terminal text, one glyph per pixel
// chosen by luminance
func ASCII(img *image.RGBA) []string {
	b := img.Bounds()
	lines := make([]string, 0, b.Dy())

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y++ {
		sb.Reset()
		for x := b.Min.X; x < b.Max.X; x++ {
			c := img.RGBAAt(x, y)
			lum := (299*int(c.R) + 587*int(c.G) + 114*int(c.B)) / 1000
			idx := lum * len(asciiRamp) / 256
			if idx >= len(asciiRamp) {
				idx = len(asciiRamp) - 1
			}
			sb.WriteByte(asciiRamp[idx])
		}
		lines = append(lines, sb.String())
	}
	return lines
}

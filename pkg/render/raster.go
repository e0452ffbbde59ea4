package render

import (
	"image"
	"image/color"
	"math"
)

// fillTriangleDepth fills a projected triangle scanline by scanline, depth
// testing every pixel against the z-buffer
func fillTriangleDepth(img *image.RGBA, zbuffer []float64, p1, p2, p3 point3, col color.RGBA) {
	// Sort by screen Y, top to bottom
	if p1.y > p2.y {
		p1, p2 = p2, p1
	}
	if p2.y > p3.y {
		p2, p3 = p3, p2
	}
	if p1.y > p2.y {
		p1, p2 = p2, p1
	}

	bounds := img.Bounds()
	width := bounds.Max.X

	for y := int(math.Max(0, p1.y)); y <= int(math.Min(float64(bounds.Max.Y-1), p3.y)); y++ {
		fy := float64(y)

		var xs, xe, zs, ze float64
		found := 0

		// Collect the scanline's crossings with the triangle edges. Two
		// survive for a line inside the triangle; a shared vertex hit on a
		// third edge just overwrites the second crossing.
		edge := func(a, b point3) {
			if a.y == b.y || fy < a.y || fy > b.y {
				return
			}
			t := (fy - a.y) / (b.y - a.y)
			if found == 0 {
				xs = a.x + t*(b.x-a.x)
				zs = a.z + t*(b.z-a.z)
			} else {
				xe = a.x + t*(b.x-a.x)
				ze = a.z + t*(b.z-a.z)
			}
			found++
		}
		edge(p1, p2)
		edge(p2, p3)
		edge(p1, p3)

		if found < 2 {
			continue
		}

		if xs > xe {
			xs, xe = xe, xs
			zs, ze = ze, zs
		}

		x0 := int(math.Max(0, xs))
		x1 := int(math.Min(float64(bounds.Max.X-1), xe))

		for x := x0; x <= x1; x++ {
			t := 0.0
			if xe != xs {
				t = (float64(x) - xs) / (xe - xs)
			}
			z := zs + t*(ze-zs)

			idx := y*width + x
			if idx >= 0 && idx < len(zbuffer) && z < zbuffer[idx] {
				zbuffer[idx] = z
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// drawLine draws a line with Bresenham stepping, skipping pixels outside
// the image
func drawLine(img *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	bounds := img.Bounds()

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	sx := 1
	if x1 >= x2 {
		sx = -1
	}
	sy := 1
	if y1 >= y2 {
		sy = -1
	}

	err := dx - dy

	for {
		if x1 >= 0 && x1 < bounds.Max.X && y1 >= 0 && y1 < bounds.Max.Y {
			img.SetRGBA(x1, y1, col)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

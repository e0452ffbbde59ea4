// Package render draws a scene into an RGBA frame with a software
// rasterizer: flat shaded triangles over a z-buffer, the clip plane cutting
// the mesh away and the nearest slice layer outlining the cut face.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/Kp61dude/PrusaSlicer/pkg/geometry"
	"github.com/Kp61dude/PrusaSlicer/pkg/scene"
)

// Light directions for flat shading. The key light dominates, the fill
// light keeps back faces from going black and the rim light separates
// edges from the background.
var (
	keyLight  = geometry.NewVector3(-0.5, -0.8, -0.3).Normalize()
	fillLight = geometry.NewVector3(0.3, -0.2, 0.7).Normalize()
	rimLight  = geometry.NewVector3(0.0, 0.5, -0.8).Normalize()
)

// Renderer rasterizes scenes at a fixed palette
type Renderer struct {
	Background   color.RGBA
	SectionColor color.RGBA
}

// New returns a renderer with the default palette
func New() *Renderer {
	return &Renderer{
		Background:   color.RGBA{R: 24, G: 24, B: 28, A: 255},
		SectionColor: color.RGBA{R: 255, G: 128, B: 0, A: 255},
	}
}

// Render draws the scene's print through its camera into a fresh frame.
// A nil scene or a scene without a print yields a background-only frame.
// The clip plane takes effect only while CSG rendering is enabled; the
// chosen CSG algorithm does not change the software output.
func (r *Renderer) Render(s *scene.Scene, settings scene.CSGSettings, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.Background), image.Point{}, draw.Src)

	if s == nil {
		return img
	}
	p := s.Print()
	if p == nil || p.Model == nil {
		return img
	}

	zbuffer := make([]float64, width*height)
	for i := range zbuffer {
		zbuffer[i] = math.MaxFloat64
	}

	clipZ, ok := s.ClipZ()
	clip := ok && settings.Enabled() && s.ClipPercent() > 0

	cam := s.Camera()
	w, h := float64(width), float64(height)

	for _, tri := range p.Model.Triangles {
		faces := []geometry.Triangle{tri}
		if clip {
			faces = geometry.ClipBelowZ(tri, clipZ)
		}
		for _, face := range faces {
			col := shade(face.CalculateNormal())
			fillTriangleDepth(img, zbuffer,
				project(cam, face.V1, w, h),
				project(cam, face.V2, w, h),
				project(cam, face.V3, w, h),
				col)
		}
	}

	if clip {
		r.drawSection(img, s, clipZ, w, h)
	}
	return img
}

// drawSection outlines the cut face with the slice layer nearest to the
// clip plane
func (r *Renderer) drawSection(img *image.RGBA, s *scene.Scene, clipZ, width, height float64) {
	layer := s.Print().LayerAt(clipZ)
	if layer == nil {
		return
	}
	cam := s.Camera()
	for _, seg := range layer.Segments {
		a := project(cam, seg.A, width, height)
		b := project(cam, seg.B, width, height)
		drawLine(img, int(a.x), int(a.y), int(b.x), int(b.y), r.SectionColor)
	}
}

// shade computes the flat shading color of a face from its normal
func shade(normal geometry.Vector3) color.RGBA {
	key := math.Max(0, -normal.Dot(keyLight))
	fill := math.Max(0, -normal.Dot(fillLight)) * 0.4
	rim := math.Max(0, -normal.Dot(rimLight)) * 0.3

	intensity := math.Min(1.0, 0.15+key*0.7+fill+rim)

	base := 220.0
	return color.RGBA{
		R: uint8(base * intensity * 0.5),
		G: uint8(base * intensity * 0.6),
		B: uint8(base * intensity),
		A: 255,
	}
}

type point3 struct {
	x, y, z float64
}

func project(cam *scene.Camera, v geometry.Vector3, width, height float64) point3 {
	x, y, z := cam.Project(v, width, height)
	return point3{x, y, z}
}

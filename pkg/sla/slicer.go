package sla

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Kp61dude/PrusaSlicer/pkg/geometry"
	"github.com/Kp61dude/PrusaSlicer/pkg/openscad"
	"github.com/Kp61dude/PrusaSlicer/pkg/stl"
)

// Options control slicing
type Options struct {
	// LayerHeight is the slice thickness; DefaultLayerHeight when zero
	LayerHeight float64
}

// ProgressFunc receives percent and status text updates while slicing.
// Percentages are non-decreasing and reach 100 on success.
type ProgressFunc func(percent int, text string)

// Slice cuts the model into horizontal layers. Each layer plane sits at
// the middle of its slice, matching where the cured resin cross-section
// would be sampled.
func Slice(model *stl.Model, opts Options, progress ProgressFunc) (*Print, error) {
	if model == nil || model.TriangleCount() == 0 {
		return nil, errors.New("model has no triangles")
	}

	height := opts.LayerHeight
	if height <= 0 {
		height = DefaultLayerHeight
	}

	report := func(pct int, text string) {
		if progress != nil {
			progress(pct, text)
		}
	}

	bounds := model.BoundingBox()
	minZ, maxZ := bounds.Min.Z, bounds.Max.Z
	count := int((maxZ-minZ)/height) + 1

	report(0, fmt.Sprintf("Slicing %d triangles into %d layers", model.TriangleCount(), count))

	p := &Print{
		Model:       model,
		Bounds:      bounds,
		LayerHeight: height,
		Layers:      make([]Layer, 0, count),
	}

	for i := 0; i < count; i++ {
		z := minZ + (float64(i)+0.5)*height
		if z > maxZ {
			break
		}

		layer := Layer{Z: z}
		for _, tri := range model.Triangles {
			if tri.MaxZ() < z || tri.MinZ() > z {
				continue
			}
			if seg, ok := geometry.SectionAtZ(tri, z); ok {
				layer.Segments = append(layer.Segments, seg)
			}
		}
		p.Layers = append(p.Layers, layer)

		report((i+1)*100/count, fmt.Sprintf("Sliced layer %d of %d", i+1, count))
	}

	report(100, "Slicing complete")
	return p, nil
}

// Load reads a model file and slices it. OpenSCAD sources are rendered to
// a temporary STL first. The print remembers the path it was loaded from;
// recorded event logs reference it in their header.
func Load(fname string, opts Options, progress ProgressFunc) (*Print, error) {
	report := func(pct int, text string) {
		if progress != nil {
			progress(pct, text)
		}
	}

	source := fname
	if strings.EqualFold(filepath.Ext(fname), ".scad") {
		report(0, fmt.Sprintf("Rendering %s", fname))
		rendered, cleanup, err := renderSCAD(fname)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		source = rendered
	}

	report(0, fmt.Sprintf("Reading %s", fname))
	model, err := stl.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	p, err := Slice(model, opts, progress)
	if err != nil {
		return nil, err
	}
	p.ModelFile = fname
	return p, nil
}

// renderSCAD renders an OpenSCAD source into a temporary STL file. The
// returned cleanup removes the temporary directory.
func renderSCAD(fname string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "slascad-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(fname), filepath.Ext(fname))
	out := filepath.Join(dir, base+".stl")
	if err := openscad.Render(fname, out); err != nil {
		_ = os.RemoveAll(dir)
		return "", nil, err
	}
	return out, func() { _ = os.RemoveAll(dir) }, nil
}

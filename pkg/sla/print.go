// Package sla slices a triangle mesh into the horizontal cross-section
// layers a resin printer exposes one at a time. The resulting print is what
// the viewer displays and clips.
package sla

import (
	"github.com/Kp61dude/PrusaSlicer/pkg/geometry"
	"github.com/Kp61dude/PrusaSlicer/pkg/stl"
)

// DefaultLayerHeight is the slice thickness used when none is configured
const DefaultLayerHeight = 0.3

// Layer is one horizontal cross-section of the model
type Layer struct {
	Z        float64
	Segments []geometry.Segment
}

// Print is a sliced model ready for display: the source mesh, its bounds
// and the layer stack from bottom to top.
type Print struct {
	ModelFile   string
	Model       *stl.Model
	Bounds      geometry.BoundingBox
	LayerHeight float64
	Layers      []Layer
}

// LayerAt returns the layer whose slicing plane is nearest to z, or nil
// when the print has no layers
func (p *Print) LayerAt(z float64) *Layer {
	if len(p.Layers) == 0 {
		return nil
	}

	idx := int((z-p.Layers[0].Z)/p.LayerHeight + 0.5)
	if idx < 0 {
		idx = 0
	}
	if idx >= len(p.Layers) {
		idx = len(p.Layers) - 1
	}
	return &p.Layers[idx]
}

// SegmentCount returns the total number of cross-section segments
func (p *Print) SegmentCount() int {
	count := 0
	for _, layer := range p.Layers {
		count += len(layer.Segments)
	}
	return count
}

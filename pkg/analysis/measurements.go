package analysis

import (
	"fmt"

	"github.com/Kp61dude/PrusaSlicer/pkg/geometry"
	"github.com/Kp61dude/PrusaSlicer/pkg/stl"
)

// MeasurementResult contains various measurements of a model
type MeasurementResult struct {
	BoundingBox   geometry.BoundingBox
	Dimensions    geometry.Vector3
	SurfaceArea   float64
	TriangleCount int
	EdgeCount     int
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
}

// AnalyzeModel performs comprehensive analysis on a model
func AnalyzeModel(model *stl.Model) *MeasurementResult {
	result := &MeasurementResult{
		BoundingBox:   model.BoundingBox(),
		SurfaceArea:   model.SurfaceArea(),
		TriangleCount: model.TriangleCount(),
	}
	result.Dimensions = result.BoundingBox.Size()

	totalLength := 0.0
	for _, triangle := range model.Triangles {
		for _, length := range triangle.EdgeLengths() {
			totalLength += length
			if result.EdgeCount == 0 || length < result.MinEdgeLength {
				result.MinEdgeLength = length
			}
			if length > result.MaxEdgeLength {
				result.MaxEdgeLength = length
			}
			result.EdgeCount++
		}
	}
	if result.EdgeCount > 0 {
		result.AvgEdgeLength = totalLength / float64(result.EdgeCount)
	}

	return result
}

// FormatVector formats a 3D vector
func FormatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}

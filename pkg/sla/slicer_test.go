package sla

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/Kp61dude/PrusaSlicer/pkg/geometry"
	"github.com/Kp61dude/PrusaSlicer/pkg/stl"
)

// cubeModel builds a closed unit cube spanning [0,1] on every axis
func cubeModel() *stl.Model {
	model := stl.NewModel("cube")

	p := func(x, y, z float64) geometry.Vector3 {
		return geometry.NewVector3(x, y, z)
	}
	quad := func(a, b, c, d geometry.Vector3) {
		n := geometry.NewTriangle(geometry.Vector3{}, a, b, c).CalculateNormal()
		model.AddTriangle(geometry.NewTriangle(n, a, b, c))
		model.AddTriangle(geometry.NewTriangle(n, a, c, d))
	}

	// bottom, top, front, back, left, right
	quad(p(0, 0, 0), p(1, 0, 0), p(1, 1, 0), p(0, 1, 0))
	quad(p(0, 0, 1), p(1, 0, 1), p(1, 1, 1), p(0, 1, 1))
	quad(p(0, 0, 0), p(1, 0, 0), p(1, 0, 1), p(0, 0, 1))
	quad(p(0, 1, 0), p(1, 1, 0), p(1, 1, 1), p(0, 1, 1))
	quad(p(0, 0, 0), p(0, 1, 0), p(0, 1, 1), p(0, 0, 1))
	quad(p(1, 0, 0), p(1, 1, 0), p(1, 1, 1), p(1, 0, 1))

	return model
}

func TestSliceCube(t *testing.T) {
	p, err := Slice(cubeModel(), Options{LayerHeight: 0.25}, nil)
	if err != nil {
		t.Fatalf("slicing failed: %v", err)
	}

	// Mid-layer planes at 0.125, 0.375, 0.625, 0.875
	if len(p.Layers) != 4 {
		t.Fatalf("expected 4 layers, got %d", len(p.Layers))
	}

	for _, layer := range p.Layers {
		total := 0.0
		for _, seg := range layer.Segments {
			if math.Abs(seg.A.Z-layer.Z) > 1e-9 || math.Abs(seg.B.Z-layer.Z) > 1e-9 {
				t.Errorf("segment endpoints off the layer plane %v: %v %v", layer.Z, seg.A, seg.B)
			}
			total += seg.Length()
		}
		// Each of the 4 side faces contributes its full edge of length 1
		if math.Abs(total-4.0) > 1e-9 {
			t.Errorf("layer %v cross-section length failed: expected 4.0, got %v", layer.Z, total)
		}
	}
}

func TestSliceProgress(t *testing.T) {
	var percents []int
	_, err := Slice(cubeModel(), Options{LayerHeight: 0.25}, func(pct int, text string) {
		if text == "" {
			t.Error("progress report with empty text")
		}
		percents = append(percents, pct)
	})
	if err != nil {
		t.Fatalf("slicing failed: %v", err)
	}

	if len(percents) == 0 {
		t.Fatal("expected progress reports")
	}
	for i := 1; i < len(percents); i++ {
		if percents[i] < percents[i-1] {
			t.Errorf("progress went backwards: %v", percents)
		}
	}
	if last := percents[len(percents)-1]; last != 100 {
		t.Errorf("expected final progress 100, got %d", last)
	}
}

func TestSliceEmptyModel(t *testing.T) {
	if _, err := Slice(stl.NewModel("empty"), Options{}, nil); err == nil {
		t.Error("expected an error for a model without triangles")
	}
	if _, err := Slice(nil, Options{}, nil); err == nil {
		t.Error("expected an error for a nil model")
	}
}

func TestLayerAt(t *testing.T) {
	p, err := Slice(cubeModel(), Options{LayerHeight: 0.25}, nil)
	if err != nil {
		t.Fatalf("slicing failed: %v", err)
	}

	tests := []struct {
		z    float64
		want float64
	}{
		{-1.0, 0.125},
		{0.125, 0.125},
		{0.4, 0.375},
		{0.9, 0.875},
		{5.0, 0.875},
	}
	for _, tt := range tests {
		layer := p.LayerAt(tt.z)
		if layer == nil {
			t.Fatalf("LayerAt(%v) returned nil", tt.z)
		}
		if math.Abs(layer.Z-tt.want) > 1e-9 {
			t.Errorf("LayerAt(%v) failed: expected layer %v, got %v", tt.z, tt.want, layer.Z)
		}
	}
}

func TestLoadASCIIModel(t *testing.T) {
	// A single pyramid-ish facet is enough to exercise the read path
	content := `solid wedge
facet normal 0 0 1
  outer loop
    vertex 0 0 0
    vertex 2 0 1
    vertex 0 2 2
  endloop
endfacet
endsolid wedge
`
	path := filepath.Join(t.TempDir(), "wedge.stl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	p, err := Load(path, Options{LayerHeight: 0.5}, nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if p.ModelFile != path {
		t.Errorf("expected ModelFile %q, got %q", path, p.ModelFile)
	}
	if p.Model.TriangleCount() != 1 {
		t.Errorf("expected 1 triangle, got %d", p.Model.TriangleCount())
	}
	if p.Bounds.IsEmpty() {
		t.Error("expected non-empty bounds")
	}
	if len(p.Layers) == 0 {
		t.Error("expected at least one layer")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.stl"), Options{}, nil); err == nil {
		t.Error("expected an error for a missing model file")
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Kp61dude/PrusaSlicer/pkg/analysis"
	"github.com/Kp61dude/PrusaSlicer/pkg/sla"
)

var infoLayerHeight float64

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Show model and slicing statistics",
	Long:  "Show model statistics including dimensions, surface area, edge lengths and the layer stack the slicer would produce.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().Float64Var(&infoLayerHeight, "layer-height", sla.DefaultLayerHeight, "slice thickness")
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	p, err := sla.Load(filename, sla.Options{LayerHeight: infoLayerHeight}, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}
	model := p.Model

	result := analysis.AnalyzeModel(model)

	fmt.Println("Model Information")
	fmt.Println("=================")
	if model.Name != "" {
		fmt.Printf("Name: %s\n", model.Name)
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Model Statistics:")
	fmt.Printf("  Triangles: %d\n", result.TriangleCount)
	fmt.Printf("  Edges: %d\n", result.EdgeCount)
	fmt.Printf("  Surface Area: %.6f square units\n\n", result.SurfaceArea)

	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: %s\n", analysis.FormatVector(result.BoundingBox.Min))
	fmt.Printf("  Max: %s\n", analysis.FormatVector(result.BoundingBox.Max))
	fmt.Printf("  Center: %s\n\n", analysis.FormatVector(result.BoundingBox.Center()))

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", result.Dimensions.X)
	fmt.Printf("  Depth (Y): %.6f units\n", result.Dimensions.Y)
	fmt.Printf("  Height (Z): %.6f units\n\n", result.Dimensions.Z)

	fmt.Println("Edge Lengths:")
	fmt.Printf("  Minimum: %.6f units\n", result.MinEdgeLength)
	fmt.Printf("  Maximum: %.6f units\n", result.MaxEdgeLength)
	fmt.Printf("  Average: %.6f units\n\n", result.AvgEdgeLength)

	fmt.Println("Slicing:")
	fmt.Printf("  Layer Height: %.3f units\n", p.LayerHeight)
	fmt.Printf("  Layers: %d\n", len(p.Layers))
	fmt.Printf("  Cross-Section Segments: %d\n", p.SegmentCount())
}

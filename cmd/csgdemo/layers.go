package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/Kp61dude/PrusaSlicer/pkg/sla"
)

var (
	layersLayerHeight float64
	layersCount       int
	layersDensest     bool
	layersSparsest    bool
)

type layerInfo struct {
	Index    int
	Z        float64
	Segments int
}

var layersCmd = &cobra.Command{
	Use:   "layers [file]",
	Short: "List the cross-section layers of a sliced model",
	Long:  "Slice the model and list its layers with their heights and cross-section segment counts.",
	Args:  cobra.ExactArgs(1),
	Run:   runLayers,
}

func init() {
	rootCmd.AddCommand(layersCmd)

	layersCmd.Flags().Float64Var(&layersLayerHeight, "layer-height", sla.DefaultLayerHeight, "slice thickness")
	layersCmd.Flags().IntVarP(&layersCount, "count", "n", 10, "Number of layers to display")
	layersCmd.Flags().BoolVarP(&layersDensest, "densest", "d", false, "Show layers with the most segments")
	layersCmd.Flags().BoolVarP(&layersSparsest, "sparsest", "s", false, "Show layers with the fewest segments")
}

func runLayers(cmd *cobra.Command, args []string) {
	filename := args[0]

	p, err := sla.Load(filename, sla.Options{LayerHeight: layersLayerHeight}, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading model: %v\n", err)
		os.Exit(1)
	}

	layers := make([]layerInfo, 0, len(p.Layers))
	for i, layer := range p.Layers {
		layers = append(layers, layerInfo{
			Index:    i,
			Z:        layer.Z,
			Segments: len(layer.Segments),
		})
	}

	if layersDensest {
		sort.Slice(layers, func(i, j int) bool {
			return layers[i].Segments > layers[j].Segments
		})
	} else if layersSparsest {
		sort.Slice(layers, func(i, j int) bool {
			return layers[i].Segments < layers[j].Segments
		})
	}

	var title string
	if layersDensest {
		title = fmt.Sprintf("Top %d Densest Layers", layersCount)
	} else if layersSparsest {
		title = fmt.Sprintf("Top %d Sparsest Layers", layersCount)
	} else {
		title = fmt.Sprintf("First %d Layers", layersCount)
	}

	fmt.Println(title)
	fmt.Println("====================")
	fmt.Printf("Total layers: %d\n", len(p.Layers))
	fmt.Printf("Layer height: %.3f units\n", p.LayerHeight)
	fmt.Printf("Total segments: %d\n", p.SegmentCount())
	if len(p.Layers) > 0 {
		fmt.Printf("Avg segments per layer: %.1f\n\n", float64(p.SegmentCount())/float64(len(p.Layers)))
	}

	for i := 0; i < layersCount && i < len(layers); i++ {
		layer := layers[i]
		fmt.Printf("Layer #%d:\n", layer.Index)
		fmt.Printf("  Z: %.6f units\n", layer.Z)
		fmt.Printf("  Segments: %d\n\n", layer.Segments)
	}
}

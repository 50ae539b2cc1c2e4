package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sketchcad/pkg/analysis"
	"sketchcad/pkg/sketch"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a sketch file",
	Long:  "Show geometry counts, constraint statistics, bounding box, curve length, and a local degree-of-freedom estimate.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	s, err := sketch.Read(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading sketch file: %v\n", err)
		os.Exit(1)
	}

	report := analysis.Analyze(s)

	fmt.Println("Sketch File Information")
	fmt.Println("=======================")
	fmt.Printf("File: %s\n\n", filename)

	fmt.Println("Geometry:")
	fmt.Printf("  Entities: %d\n", report.EntityCount)
	fmt.Printf("  Construction: %d\n", report.ConstructionCount)
	for _, kc := range report.KindCounts() {
		fmt.Printf("    %s: %d\n", kc.Kind, kc.Count)
	}
	fmt.Printf("  Total curve length: %.6f units\n\n", report.TotalCurveLength)

	if report.EntityCount > 0 {
		size := report.BoundingBox.Size()
		fmt.Println("Bounding Box:")
		fmt.Printf("  Min: (%.6f, %.6f)\n", report.BoundingBox.Min.X, report.BoundingBox.Min.Y)
		fmt.Printf("  Max: (%.6f, %.6f)\n", report.BoundingBox.Max.X, report.BoundingBox.Max.Y)
		fmt.Printf("  Size: %.6f x %.6f units\n\n", size.X, size.Y)
	}

	fmt.Println("Constraints:")
	fmt.Printf("  Active: %d\n", report.ConstraintCount)
	fmt.Printf("  Suppressed: %d\n", report.SuppressedCount)
	for _, kc := range report.ConstraintCounts() {
		fmt.Printf("    %s: %d\n", kc.Kind, kc.Count)
	}
	fmt.Printf("\nEstimated degrees of freedom: %d\n", report.DegreesOfFreedom)
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sketchcad/version"
)

var rootCmd = &cobra.Command{
	Use:   "sketchcad",
	Short: "A CLI tool for inspecting and solving parametric 2D sketches",
	Long: `sketchcad is a command-line tool for working with parametric sketch files.
It reports geometry and constraint statistics, measures distances between
sketch points, and submits sketches to a constraint solver service.`,
	Version: version.GetFullVersion(),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

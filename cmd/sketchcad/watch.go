package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"sketchcad/pkg/analysis"
	"sketchcad/pkg/sketch"
	"sketchcad/pkg/watcher"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Watch a sketch file and report statistics on every change",
	Long: `Watch a sketch file for changes and print updated geometry and constraint
statistics after each save. Useful alongside an external editor.`,
	Args: cobra.ExactArgs(1),
	Run:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 200*time.Millisecond, "settle time after a change before reloading")
}

func runWatch(cmd *cobra.Command, args []string) {
	filename := args[0]

	// Validate once up front so a bad path fails immediately.
	if _, err := sketch.Read(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading sketch file: %v\n", err)
		os.Exit(1)
	}

	sw, err := watcher.New(watchDebounce)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating watcher: %v\n", err)
		os.Exit(1)
	}
	defer sw.Close()

	sw.OnError(func(err error) {
		fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
	})

	reload := func(path string) {
		s, err := sketch.Read(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reloading sketch file: %v\n", err)
			return
		}
		report := analysis.Analyze(s)
		fmt.Printf("[%s] %s: %d entities, %d constraints, %d DOF\n",
			time.Now().Format("15:04:05"), path,
			report.EntityCount, report.ConstraintCount, report.DegreesOfFreedom)
	}

	if err := sw.Watch(filename, reload); err != nil {
		fmt.Fprintf(os.Stderr, "Error watching file: %v\n", err)
		os.Exit(1)
	}
	sw.Start()

	fmt.Printf("Watching %s (Ctrl+C to stop)\n", filename)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}

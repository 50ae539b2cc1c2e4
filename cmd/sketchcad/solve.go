package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sketchcad/internal/config"
	"sketchcad/internal/solver"
	"sketchcad/pkg/sketch"
)

var (
	solveOutput  string
	solveURL     string
	solveTimeout time.Duration
)

var solveCmd = &cobra.Command{
	Use:   "solve [file]",
	Short: "Submit a sketch to the constraint solver",
	Long: `Send a sketch to the constraint solver service and write back the solved
geometry. The solver URL defaults to the SKETCHCAD_SOLVER_URL environment
variable.`,
	Args: cobra.ExactArgs(1),
	Run:  runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().StringVarP(&solveOutput, "output", "o", "", "write the solved sketch to this file (default: overwrite input)")
	solveCmd.Flags().StringVar(&solveURL, "url", "", "solver websocket URL (overrides configuration)")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 30*time.Second, "how long to wait for the solver")
}

func runSolve(cmd *cobra.Command, args []string) {
	filename := args[0]
	if solveOutput == "" {
		solveOutput = filename
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	url := cfg.SolverURL
	if solveURL != "" {
		url = solveURL
	}
	if url == "" {
		fmt.Fprintln(os.Stderr, "Error: no solver URL configured (set SKETCHCAD_SOLVER_URL or pass --url)")
		os.Exit(1)
	}

	s, err := sketch.Read(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading sketch file: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), solveTimeout)
	defer cancel()

	type result struct {
		sketch *sketch.Sketch
		report solver.Report
	}
	solved := make(chan result, 1)

	client, err := solver.Dial(ctx, url, func(s *sketch.Sketch, report solver.Report) {
		select {
		case solved <- result{sketch: s, report: report}:
		default:
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting to solver: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	if err := client.Request(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error sending solve request: %v\n", err)
		os.Exit(1)
	}

	select {
	case res := <-solved:
		printReport(res.report)
		if err := sketch.Write(solveOutput, res.sketch); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing sketch file: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nSolved sketch written to %s\n", solveOutput)

	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "Error: timed out waiting for the solver")
		os.Exit(1)
	}
}

func printReport(report solver.Report) {
	fmt.Println("Solver Report")
	fmt.Println("=============")
	fmt.Printf("Converged: %v\n", report.Converged)
	fmt.Printf("Iterations: %d\n", report.Iterations)
	fmt.Printf("Max error: %.9f\n", report.MaxError)
	fmt.Printf("Degrees of freedom: %d\n", report.DegreesOfFreedom)

	over := 0
	for _, st := range report.EntityStatus {
		if st == solver.SaturationOver {
			over++
		}
	}
	if over > 0 {
		fmt.Printf("Over-constrained entities: %d\n", over)
	}
}

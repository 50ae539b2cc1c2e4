package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config carries the tunables of the editing engine. Distances are in
// plane units, angles in degrees.
type Config struct {
	SolverURL string
	Snap      SnapConfig
	Inference InferenceConfig
}

// SnapConfig mirrors the settings handed to the external snap query
type SnapConfig struct {
	Radius      float64
	GridSpacing float64
}

// InferenceConfig controls the constraint inference preview
type InferenceConfig struct {
	AngleTolerance        float64
	ParallelTolerance     float64
	MaxParallelCandidates int
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		SolverURL: "ws://localhost:9280/solve",
		Snap: SnapConfig{
			Radius:      0.5,
			GridSpacing: 1.0,
		},
		Inference: InferenceConfig{
			AngleTolerance:        5.0,
			ParallelTolerance:     3.0,
			MaxParallelCandidates: 10,
		},
	}
}

// Load reads configuration from the environment, with a best-effort
// .env file load first
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if v := strings.TrimSpace(os.Getenv("SKETCHCAD_SOLVER_URL")); v != "" {
		cfg.SolverURL = v
	}

	var err error
	if cfg.Snap.Radius, err = floatEnv("SKETCHCAD_SNAP_RADIUS", cfg.Snap.Radius); err != nil {
		return cfg, err
	}
	if cfg.Snap.GridSpacing, err = floatEnv("SKETCHCAD_GRID_SPACING", cfg.Snap.GridSpacing); err != nil {
		return cfg, err
	}
	if cfg.Inference.AngleTolerance, err = floatEnv("SKETCHCAD_ANGLE_TOLERANCE", cfg.Inference.AngleTolerance); err != nil {
		return cfg, err
	}
	if cfg.Inference.ParallelTolerance, err = floatEnv("SKETCHCAD_PARALLEL_TOLERANCE", cfg.Inference.ParallelTolerance); err != nil {
		return cfg, err
	}
	if cfg.Inference.MaxParallelCandidates, err = intEnv("SKETCHCAD_MAX_PARALLEL_CANDIDATES", cfg.Inference.MaxParallelCandidates); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

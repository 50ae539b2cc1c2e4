// Package solver talks to the external numeric constraint solver: it
// dispatches sketch snapshots and delivers solved snapshots plus a
// solve-quality report back to the editing session.
package solver

import "sketchcad/pkg/sketch"

// Report is the solve-quality summary returned with a solved sketch.
// It is consumed for UI feedback only; the engine does not interpret
// degrees of freedom beyond display.
type Report struct {
	Converged        bool                           `json:"converged"`
	Iterations       int                            `json:"iterations"`
	MaxError         float64                        `json:"maxError"`
	DegreesOfFreedom int                            `json:"degreesOfFreedom"`
	EntityStatus     map[sketch.EntityID]Saturation `json:"entityStatus,omitempty"`
}

// Saturation describes how constrained one entity ended up
type Saturation string

const (
	SaturationUnder Saturation = "under"
	SaturationFull  Saturation = "full"
	SaturationOver  Saturation = "over"
)

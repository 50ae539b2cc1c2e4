package editor

import (
	"math"

	"sketchcad/internal/config"
	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

// InferenceKind identifies a predicted constraint
type InferenceKind string

const (
	InferCoincident    InferenceKind = "coincident"
	InferHorizontal    InferenceKind = "horizontal"
	InferVertical      InferenceKind = "vertical"
	InferParallel      InferenceKind = "parallel"
	InferPerpendicular InferenceKind = "perpendicular"
)

// Inference is one predicted constraint, reported for UI feedback while
// a primitive is being drawn. Confidence is in [0,1].
type Inference struct {
	Kind       InferenceKind
	Entities   []sketch.EntityID
	Position   geometry.Vector2
	Confidence float64
}

// drawingTools are the tools the inference preview is active for
var drawingTools = map[ToolName]bool{
	ToolLine:      true,
	ToolRectangle: true,
	ToolPolygon:   true,
	ToolArc:       true,
}

// InferConstraints predicts which constraints would be created for the
// current cursor position. Pure: no side effects, safe to call on every
// pointer move.
//
// A hard geometric snap (anything but grid) already expresses the
// strongest possible inference, so it suppresses the angle-based
// inferences and is surfaced as a single coincident hint.
func InferConstraints(cursor geometry.Vector2, start *geometry.Vector2, s *sketch.Sketch,
	tool ToolName, snap *sketch.SnapPoint, cfg config.Config) []Inference {

	if !drawingTools[tool] {
		return nil
	}

	if snap != nil && snap.Hard() {
		confidence := 1.0
		if cfg.Snap.Radius > 0 {
			confidence = 1 - snap.Distance/cfg.Snap.Radius
			confidence = math.Max(0, math.Min(1, confidence))
		}
		hint := Inference{
			Kind:       InferCoincident,
			Position:   snap.Position,
			Confidence: confidence,
		}
		if snap.Entity != "" {
			hint.Entities = []sketch.EntityID{snap.Entity}
		}
		return []Inference{hint}
	}

	if start == nil {
		return nil
	}

	dir := cursor.Sub(*start)
	if dir.Length() == 0 {
		return nil
	}

	var hints []Inference
	angleDeg := dir.Angle() * 180 / math.Pi

	if diff := angularDistance(angleDeg, 0); diff <= cfg.Inference.AngleTolerance {
		hints = append(hints, Inference{
			Kind:       InferHorizontal,
			Position:   cursor,
			Confidence: 1 - diff/cfg.Inference.AngleTolerance,
		})
	}
	if diff := angularDistance(angleDeg, 90); diff <= cfg.Inference.AngleTolerance {
		hints = append(hints, Inference{
			Kind:       InferVertical,
			Position:   cursor,
			Confidence: 1 - diff/cfg.Inference.AngleTolerance,
		})
	}

	hints = append(hints, inferAgainstLines(dir, cursor, s, cfg)...)
	return hints
}

// inferAgainstLines finds parallel/perpendicular matches against up to
// MaxParallelCandidates existing lines. The first match of each kind in
// iteration order wins, not the globally best one.
func inferAgainstLines(dir, cursor geometry.Vector2, s *sketch.Sketch, cfg config.Config) []Inference {
	var hints []Inference
	var foundParallel, foundPerpendicular bool

	checked := 0
	for _, e := range s.Entities {
		if foundParallel && foundPerpendicular {
			break
		}
		if checked >= cfg.Inference.MaxParallelCandidates {
			break
		}
		line, ok := e.Line()
		if !ok || e.Preview {
			continue
		}
		checked++

		other := line.Direction()
		if other.Length() == 0 {
			continue
		}
		diff := undirectedAngleBetween(dir, other)

		if !foundParallel && diff <= cfg.Inference.ParallelTolerance {
			foundParallel = true
			hints = append(hints, Inference{
				Kind:       InferParallel,
				Entities:   []sketch.EntityID{e.ID},
				Position:   cursor,
				Confidence: 1 - diff/cfg.Inference.ParallelTolerance,
			})
		}
		if !foundPerpendicular && math.Abs(90-diff) <= cfg.Inference.ParallelTolerance {
			foundPerpendicular = true
			hints = append(hints, Inference{
				Kind:       InferPerpendicular,
				Entities:   []sketch.EntityID{e.ID},
				Position:   cursor,
				Confidence: 1 - math.Abs(90-diff)/cfg.Inference.ParallelTolerance,
			})
		}
	}
	return hints
}

// angularDistance returns the distance in degrees from angle to the
// nearest instance of target modulo 180 (lines are undirected)
func angularDistance(angle, target float64) float64 {
	d := math.Mod(math.Abs(angle-target), 180)
	if d > 90 {
		d = 180 - d
	}
	return d
}

// undirectedAngleBetween returns the angle between two directions
// normalized into [0, 90] degrees
func undirectedAngleBetween(a, b geometry.Vector2) float64 {
	diff := (a.Angle() - b.Angle()) * 180 / math.Pi
	diff = math.Mod(math.Abs(diff), 180)
	if diff > 90 {
		diff = 180 - diff
	}
	return diff
}

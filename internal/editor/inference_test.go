package editor

import (
	"math"
	"testing"

	"sketchcad/internal/config"
	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

func TestInferHorizontal(t *testing.T) {
	s := sketch.NewSketch(sketch.XYPlane())
	cfg := config.Default()
	start := geometry.NewVector2(2, 2)

	hints := InferConstraints(geometry.NewVector2(7, 2.1), &start, s, ToolLine, nil, cfg)
	if len(hints) != 1 || hints[0].Kind != InferHorizontal {
		t.Fatalf("expected a single horizontal hint, got %+v", hints)
	}
	if hints[0].Confidence <= 0 || hints[0].Confidence > 1 {
		t.Errorf("confidence out of range: %v", hints[0].Confidence)
	}
}

func TestInferConfidenceEndpoints(t *testing.T) {
	s := sketch.NewSketch(sketch.XYPlane())
	cfg := config.Default()
	start := geometry.NewVector2(0, 0)

	// exactly horizontal: full confidence
	hints := InferConstraints(geometry.NewVector2(5, 0), &start, s, ToolLine, nil, cfg)
	if len(hints) != 1 || math.Abs(hints[0].Confidence-1) > 1e-10 {
		t.Fatalf("expected confidence 1 for an exact match, got %+v", hints)
	}

	// exactly at the tolerance edge: zero confidence, still reported
	rad := cfg.Inference.AngleTolerance * math.Pi / 180
	edge := geometry.NewVector2(math.Cos(rad), math.Sin(rad)).Mul(5)
	hints = InferConstraints(edge, &start, s, ToolLine, nil, cfg)
	if len(hints) != 1 || math.Abs(hints[0].Confidence) > 1e-9 {
		t.Fatalf("expected confidence 0 at the tolerance edge, got %+v", hints)
	}
}

func TestInferVerticalOppositeDirection(t *testing.T) {
	s := sketch.NewSketch(sketch.XYPlane())
	cfg := config.Default()
	start := geometry.NewVector2(3, 8)

	// drawing downward still reads as vertical
	hints := InferConstraints(geometry.NewVector2(3, 2), &start, s, ToolLine, nil, cfg)
	if len(hints) != 1 || hints[0].Kind != InferVertical {
		t.Fatalf("expected a vertical hint, got %+v", hints)
	}
}

func TestInferParallelAgainstExisting(t *testing.T) {
	s := sketch.NewSketch(sketch.XYPlane())
	existing := testLine(s, 10, 10, 13, 14) // well off any axis

	cfg := config.Default()
	start := geometry.NewVector2(0, 0)
	cursor := geometry.NewVector2(3, 4.05)

	hints := InferConstraints(cursor, &start, s, ToolLine, nil, cfg)
	var parallel *Inference
	for i := range hints {
		if hints[i].Kind == InferParallel {
			parallel = &hints[i]
		}
	}
	if parallel == nil {
		t.Fatalf("expected a parallel hint, got %+v", hints)
	}
	if len(parallel.Entities) != 1 || parallel.Entities[0] != existing.ID {
		t.Errorf("expected the existing line referenced, got %+v", parallel.Entities)
	}
}

func TestInferPerpendicularAgainstExisting(t *testing.T) {
	s := sketch.NewSketch(sketch.XYPlane())
	existing := testLine(s, 10, 10, 13, 14)

	cfg := config.Default()
	start := geometry.NewVector2(0, 0)
	// perpendicular to a (3,4) direction is a (-4,3) direction
	cursor := geometry.NewVector2(-4, 3.05)

	hints := InferConstraints(cursor, &start, s, ToolLine, nil, cfg)
	var perp *Inference
	for i := range hints {
		if hints[i].Kind == InferPerpendicular {
			perp = &hints[i]
		}
	}
	if perp == nil {
		t.Fatalf("expected a perpendicular hint, got %+v", hints)
	}
	if len(perp.Entities) != 1 || perp.Entities[0] != existing.ID {
		t.Errorf("expected the existing line referenced, got %+v", perp.Entities)
	}
}

func TestInferHardSnapSuppressesAngles(t *testing.T) {
	s := sketch.NewSketch(sketch.XYPlane())
	existing := testLine(s, 2, 2, 6, 2)

	cfg := config.Default()
	start := geometry.NewVector2(0, 2)
	snap := &sketch.SnapPoint{
		Position: geometry.NewVector2(6, 2),
		Kind:     sketch.SnapEndpoint,
		Entity:   existing.ID,
		Distance: 0.25,
	}

	// the cursor direction is perfectly horizontal, but the hard snap
	// collapses everything into one coincident hint
	hints := InferConstraints(geometry.NewVector2(6, 2), &start, s, ToolLine, snap, cfg)
	if len(hints) != 1 || hints[0].Kind != InferCoincident {
		t.Fatalf("expected a single coincident hint, got %+v", hints)
	}
	expected := 1 - 0.25/cfg.Snap.Radius
	if math.Abs(hints[0].Confidence-expected) > 1e-10 {
		t.Errorf("expected confidence %v, got %v", expected, hints[0].Confidence)
	}
}

func TestInferGridSnapDoesNotSuppress(t *testing.T) {
	s := sketch.NewSketch(sketch.XYPlane())
	cfg := config.Default()
	start := geometry.NewVector2(0, 0)
	snap := &sketch.SnapPoint{
		Position: geometry.NewVector2(5, 0),
		Kind:     sketch.SnapGrid,
		Distance: 0.1,
	}

	hints := InferConstraints(geometry.NewVector2(5, 0), &start, s, ToolLine, snap, cfg)
	if len(hints) != 1 || hints[0].Kind != InferHorizontal {
		t.Fatalf("expected the horizontal hint to survive a grid snap, got %+v", hints)
	}
}

func TestInferInactiveForNonDrawingTools(t *testing.T) {
	s := sketch.NewSketch(sketch.XYPlane())
	cfg := config.Default()
	start := geometry.NewVector2(0, 0)

	hints := InferConstraints(geometry.NewVector2(5, 0), &start, s, ToolSelect, nil, cfg)
	if hints != nil {
		t.Errorf("expected no hints for the select tool, got %+v", hints)
	}
}

func TestInferCandidateLimit(t *testing.T) {
	s := sketch.NewSketch(sketch.XYPlane())
	cfg := config.Default()

	// fill the candidate budget with lines that match nothing
	for i := 0; i < cfg.Inference.MaxParallelCandidates; i++ {
		testLine(s, float64(i), 0, float64(i)+1, 2)
	}
	// a matching line beyond the budget is never examined
	match := testLine(s, 20, 20, 25, 20)

	start := geometry.NewVector2(0, 10)
	hints := InferConstraints(geometry.NewVector2(5, 10), &start, s, ToolLine, nil, cfg)
	for _, h := range hints {
		if h.Kind == InferParallel && len(h.Entities) > 0 && h.Entities[0] == match.ID {
			t.Errorf("expected the over-budget line to be skipped, got %+v", h)
		}
	}
}

func TestInferZeroLengthDirection(t *testing.T) {
	s := sketch.NewSketch(sketch.XYPlane())
	cfg := config.Default()
	start := geometry.NewVector2(3, 3)

	if hints := InferConstraints(start, &start, s, ToolLine, nil, cfg); hints != nil {
		t.Errorf("expected no hints for a zero-length direction, got %+v", hints)
	}
}

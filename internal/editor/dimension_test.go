package editor

import (
	"math"
	"testing"

	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

func TestClassifyDistance(t *testing.T) {
	p1 := geometry.NewVector2(0, 0)
	p2 := geometry.NewVector2(4, 3)

	tests := []struct {
		name     string
		cursor   geometry.Vector2
		expected DimensionKind
	}{
		{"above the points", geometry.NewVector2(2, 6), DimVertical},
		{"beside the points", geometry.NewVector2(7, 1), DimHorizontal},
		{"diagonal corner", geometry.NewVector2(7, 6), DimDistance},
		{"between the points", geometry.NewVector2(2, 2), DimDistance},
		{"just inside the buffer", geometry.NewVector2(4.4, 6), DimVertical},
		{"just outside the buffer", geometry.NewVector2(4.6, 6), DimDistance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyDistance(p1, p2, tt.cursor)
			if got != tt.expected {
				t.Errorf("ClassifyDistance failed: expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDistanceValues(t *testing.T) {
	p1 := geometry.NewVector2(0, 0)
	p2 := geometry.NewVector2(4, 3)

	if v := distanceValue(DimDistance, p1, p2); math.Abs(v-5) > 1e-10 {
		t.Errorf("true distance failed: expected 5, got %v", v)
	}
	if v := distanceValue(DimHorizontal, p1, p2); math.Abs(v-4) > 1e-10 {
		t.Errorf("horizontal distance failed: expected 4, got %v", v)
	}
	if v := distanceValue(DimVertical, p1, p2); math.Abs(v-3) > 1e-10 {
		t.Errorf("vertical distance failed: expected 3, got %v", v)
	}
}

func TestPlacementOffsetsRoundTrip(t *testing.T) {
	p1 := geometry.NewVector2(1, 1)
	p2 := geometry.NewVector2(7, 4)
	click := geometry.NewVector2(3, 6)

	para, perp := PlacementOffsets(p1, p2, click)
	style := sketch.DimensionStyle{ParallelOffset: para, PerpendicularOffset: perp}

	back := AnnotationPosition(p1, p2, style)
	if back.Distance(click) > 1e-10 {
		t.Errorf("placement round trip failed: expected %v, got %v", click, back)
	}
}

func TestPlacementOffsetsAtDefaultLeader(t *testing.T) {
	p1 := geometry.NewVector2(0, 0)
	p2 := geometry.NewVector2(10, 0)

	// a click at the midpoint, one leader length above the line, stores
	// zero offsets
	para, perp := PlacementOffsets(p1, p2, geometry.NewVector2(5, 1))
	if math.Abs(para) > 1e-10 || math.Abs(perp) > 1e-10 {
		t.Errorf("expected zero offsets, got para=%v perp=%v", para, perp)
	}
}

func TestDimensionToolTwoPoints(t *testing.T) {
	ed, rec := newTestEditor()
	a := testLine(ed.Sketch(), 2, 2, 6, 2)

	ed.ActivateTool(ToolDimension)
	ed.MouseDown(geometry.NewVector2(2, 2), nil) // start point
	ed.MouseDown(geometry.NewVector2(6, 2), nil) // end point
	ed.MouseDown(geometry.NewVector2(4, 8), nil) // placement, above: vertical band miss

	s := ed.Sketch()
	if len(s.Constraints) != 1 {
		t.Fatalf("expected 1 constraint, got %d", len(s.Constraints))
	}
	// both points inside the X band, cursor outside the Y band
	c, ok := s.Constraints[0].Constraint.(sketch.VerticalDistance)
	if !ok {
		t.Fatalf("expected a vertical distance, got %T", s.Constraints[0].Constraint)
	}
	if c.Value != 0 {
		t.Errorf("expected value 0 for points at equal Y, got %v", c.Value)
	}
	if c.A != sketch.PointOn(a.ID, 0) || c.B != sketch.PointOn(a.ID, 1) {
		t.Errorf("expected the line endpoints, got %+v", c)
	}
	if rec.requests != 1 {
		t.Errorf("expected 1 solve request, got %d", rec.requests)
	}
}

func TestDimensionToolLineShorthand(t *testing.T) {
	ed, _ := newTestEditor()
	testLine(ed.Sketch(), 2, 2, 6, 2)

	ed.ActivateTool(ToolDimension)
	ed.MouseDown(geometry.NewVector2(4, 2), nil)  // line body: implicit two points
	ed.MouseDown(geometry.NewVector2(10, 2), nil) // placement, inside the Y band

	s := ed.Sketch()
	if len(s.Constraints) != 1 {
		t.Fatalf("expected 1 constraint, got %d", len(s.Constraints))
	}
	c, ok := s.Constraints[0].Constraint.(sketch.HorizontalDistance)
	if !ok {
		t.Fatalf("expected a horizontal distance, got %T", s.Constraints[0].Constraint)
	}
	if math.Abs(c.Value-4) > 1e-10 {
		t.Errorf("expected value 4, got %v", c.Value)
	}
}

func TestDimensionToolRadius(t *testing.T) {
	ed, _ := newTestEditor()
	circle := sketch.NewEntity(&sketch.CircleGeometry{
		Center: geometry.NewVector2(5, 5),
		Radius: 2,
	})
	ed.Sketch().AddEntity(circle)

	ed.ActivateTool(ToolDimension)
	ed.MouseDown(geometry.NewVector2(7.1, 5), nil) // rim
	ed.MouseDown(geometry.NewVector2(10, 5), nil)  // placement

	s := ed.Sketch()
	if len(s.Constraints) != 1 {
		t.Fatalf("expected 1 constraint, got %d", len(s.Constraints))
	}
	c, ok := s.Constraints[0].Constraint.(sketch.Radius)
	if !ok {
		t.Fatalf("expected a radius constraint, got %T", s.Constraints[0].Constraint)
	}
	if c.Entity != circle.ID || math.Abs(c.Value-2) > 1e-10 {
		t.Errorf("expected radius 2 on the circle, got %+v", c)
	}
	// leader length stored relative to the rim
	if math.Abs(c.Style.ParallelOffset-3) > 1e-10 {
		t.Errorf("expected parallel offset 3, got %v", c.Style.ParallelOffset)
	}
}

func TestDimensionOriginToPoint(t *testing.T) {
	ed, _ := newTestEditor()
	testLine(ed.Sketch(), 2, 2, 6, 2)

	ed.ActivateTool(ToolDimension)
	ed.MouseDown(geometry.NewVector2(0.1, 0.1), nil) // origin
	ed.MouseDown(geometry.NewVector2(2, 2), nil)     // line start
	ed.MouseDown(geometry.NewVector2(5, -2), nil)    // placement: true distance

	s := ed.Sketch()
	if len(s.Constraints) != 1 {
		t.Fatalf("expected 1 constraint, got %d", len(s.Constraints))
	}
	c, ok := s.Constraints[0].Constraint.(sketch.Distance)
	if !ok {
		t.Fatalf("expected a distance, got %T", s.Constraints[0].Constraint)
	}
	if !c.A.Origin {
		t.Error("expected the first reference to be the origin")
	}
	if math.Abs(c.Value-math.Sqrt(8)) > 1e-10 {
		t.Errorf("expected value sqrt(8), got %v", c.Value)
	}
}

func TestMeasureToolRecordsWithoutConstraint(t *testing.T) {
	ed, rec := newTestEditor()
	testLine(ed.Sketch(), 2, 2, 6, 2)

	ed.ActivateTool(ToolMeasure)
	ed.MouseDown(geometry.NewVector2(4, 2), nil)  // line body
	ed.MouseDown(geometry.NewVector2(10, 2), nil) // placement

	if len(ed.Sketch().Constraints) != 0 {
		t.Errorf("expected no constraints from measuring, got %d", len(ed.Sketch().Constraints))
	}
	ms := ed.Measurements()
	if len(ms) != 1 {
		t.Fatalf("expected 1 measurement, got %d", len(ms))
	}
	if math.Abs(ms[0].Value-4) > 1e-10 {
		t.Errorf("expected measured value 4, got %v", ms[0].Value)
	}
	if rec.requests != 0 {
		t.Errorf("expected no solve requests from measuring, got %d", rec.requests)
	}

	ed.ClearMeasurements()
	if len(ed.Measurements()) != 0 {
		t.Error("expected measurements cleared")
	}
}

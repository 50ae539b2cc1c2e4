package sketch

import (
	"testing"

	"sketchcad/pkg/geometry"
)

func lineEntity(x1, y1, x2, y2 float64) *Entity {
	return NewEntity(&LineGeometry{
		Start: geometry.NewVector2(x1, y1),
		End:   geometry.NewVector2(x2, y2),
	})
}

func TestEntityLookup(t *testing.T) {
	s := NewSketch(XYPlane())
	e := lineEntity(0, 0, 1, 0)
	s.AddEntity(e)

	if got := s.Entity(e.ID); got != e {
		t.Errorf("Entity lookup failed: expected %v, got %v", e, got)
	}
	if got := s.Entity("missing"); got != nil {
		t.Errorf("Entity lookup failed: expected nil for unknown id, got %v", got)
	}
}

func TestRemoveEntity(t *testing.T) {
	s := NewSketch(XYPlane())
	e := lineEntity(0, 0, 1, 0)
	s.AddEntity(e)

	if !s.RemoveEntity(e.ID) {
		t.Error("RemoveEntity failed: expected true")
	}
	if s.RemoveEntity(e.ID) {
		t.Error("RemoveEntity failed: expected false on second removal")
	}
	if len(s.Entities) != 0 {
		t.Errorf("RemoveEntity failed: expected empty sketch, got %d entities", len(s.Entities))
	}
}

func TestRemovePreviews(t *testing.T) {
	s := NewSketch(XYPlane())
	kept := lineEntity(0, 0, 1, 0)
	s.AddEntity(kept)

	preview := lineEntity(0, 0, 2, 2)
	preview.Preview = true
	s.AddEntity(preview)

	removed := s.RemovePreviews()
	if removed != 1 {
		t.Errorf("RemovePreviews failed: expected 1 removed, got %d", removed)
	}
	if len(s.Entities) != 1 || s.Entities[0] != kept {
		t.Errorf("RemovePreviews failed: expected only the committed entity to remain")
	}
}

func TestRemoveConstraintsReferencing(t *testing.T) {
	s := NewSketch(XYPlane())
	a := lineEntity(0, 0, 1, 0)
	b := lineEntity(0, 0, 0, 1)
	s.AddEntity(a)
	s.AddEntity(b)

	s.AddConstraint(Horizontal{Line: a.ID})
	s.AddConstraint(Vertical{Line: b.ID})
	s.AddConstraint(Coincident{A: PointOn(a.ID, 0), B: PointOn(b.ID, 0)})

	removed := s.RemoveConstraintsReferencing(a.ID)
	if removed != 2 {
		t.Errorf("RemoveConstraintsReferencing failed: expected 2 removed, got %d", removed)
	}
	if len(s.Constraints) != 1 {
		t.Fatalf("RemoveConstraintsReferencing failed: expected 1 remaining, got %d", len(s.Constraints))
	}
	if s.Constraints[0].Constraint.Kind() != KindVertical {
		t.Errorf("RemoveConstraintsReferencing failed: wrong constraint survived: %v", s.Constraints[0].Constraint.Kind())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewSketch(XYPlane())
	e := lineEntity(0, 0, 1, 0)
	s.AddEntity(e)
	s.AddConstraint(Horizontal{Line: e.ID})

	clone := s.Clone()
	line, _ := clone.Entities[0].Line()
	line.End = geometry.NewVector2(5, 5)

	original, _ := s.Entities[0].Line()
	if original.End != geometry.NewVector2(1, 0) {
		t.Errorf("Clone failed: mutation leaked into the original, got %v", original.End)
	}
}

func TestValidateDuplicateID(t *testing.T) {
	s := NewSketch(XYPlane())
	a := lineEntity(0, 0, 1, 0)
	b := lineEntity(0, 0, 0, 1)
	b.ID = a.ID
	s.AddEntity(a)
	s.AddEntity(b)

	if err := s.Validate(); err == nil {
		t.Error("Validate failed: expected error for duplicate entity id")
	}
}

func TestValidateDanglingConstraint(t *testing.T) {
	s := NewSketch(XYPlane())
	a := lineEntity(0, 0, 1, 0)
	s.AddEntity(a)
	s.AddConstraint(Coincident{A: PointOn(a.ID, 0), B: PointOn("missing", 0)})

	if err := s.Validate(); err == nil {
		t.Error("Validate failed: expected error for constraint referencing an unknown entity")
	}
}

func TestValidateOriginReference(t *testing.T) {
	s := NewSketch(XYPlane())
	a := lineEntity(0, 0, 1, 0)
	s.AddEntity(a)
	s.AddConstraint(Coincident{A: PointOn(a.ID, 0), B: OriginPoint()})

	if err := s.Validate(); err != nil {
		t.Errorf("Validate failed: origin reference should be legal, got %v", err)
	}
}

func TestArcDefiningPoints(t *testing.T) {
	// Quarter arc from angle 0 to pi/2 around (1, 1).
	arc := &ArcGeometry{
		Center:     geometry.NewVector2(1, 1),
		Radius:     2,
		StartAngle: 0,
		EndAngle:   1.5707963267948966,
	}

	center, ok := arc.DefiningPoint(0)
	if !ok || center != geometry.NewVector2(1, 1) {
		t.Errorf("arc center failed: got %v", center)
	}
	start, ok := arc.DefiningPoint(1)
	if !ok || start.Distance(geometry.NewVector2(3, 1)) > 1e-10 {
		t.Errorf("arc start failed: got %v", start)
	}
	end, ok := arc.DefiningPoint(2)
	if !ok || end.Distance(geometry.NewVector2(1, 3)) > 1e-10 {
		t.Errorf("arc end failed: got %v", end)
	}
}

func TestPlaneRoundTrip(t *testing.T) {
	p := XYPlane()
	p.Origin = geometry.NewVector3(1, 2, 3)

	uv := geometry.NewVector2(4, 5)
	back := p.ToPlane(p.ToWorld(uv))
	if back.Distance(uv) > 1e-10 {
		t.Errorf("plane round trip failed: expected %v, got %v", uv, back)
	}
}

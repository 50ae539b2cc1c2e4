package editor

import (
	"math"
	"testing"

	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

func TestMirrorLine(t *testing.T) {
	s := sketch.NewSketch(sketch.XYPlane())
	axis := testLine(s, 0, -5, 0, 5) // the Y axis
	original := testLine(s, 1, 1, 3, 2)

	created := MirrorEntities(s, []sketch.EntityID{original.ID}, axis.ID)
	if len(created) != 1 {
		t.Fatalf("expected 1 mirrored entity, got %d", len(created))
	}

	mirrored, _ := s.Entity(created[0]).Line()
	if mirrored.Start.Distance(geometry.NewVector2(-1, 1)) > 1e-10 {
		t.Errorf("mirrored start wrong: %v", mirrored.Start)
	}
	if mirrored.End.Distance(geometry.NewVector2(-3, 2)) > 1e-10 {
		t.Errorf("mirrored end wrong: %v", mirrored.End)
	}

	counts := countConstraints(s)
	if counts[sketch.KindSymmetric] != 2 {
		t.Errorf("expected 2 symmetric constraints, got %d", counts[sketch.KindSymmetric])
	}
}

func TestMirrorCircleAddsEqual(t *testing.T) {
	s := sketch.NewSketch(sketch.XYPlane())
	axis := testLine(s, 0, -5, 0, 5)
	circle := sketch.NewEntity(&sketch.CircleGeometry{
		Center: geometry.NewVector2(2, 3),
		Radius: 1.5,
	})
	s.AddEntity(circle)

	created := MirrorEntities(s, []sketch.EntityID{circle.ID}, axis.ID)
	if len(created) != 1 {
		t.Fatalf("expected 1 mirrored entity, got %d", len(created))
	}

	mc, _ := s.Entity(created[0]).Circle()
	if mc.Center.Distance(geometry.NewVector2(-2, 3)) > 1e-10 || mc.Radius != 1.5 {
		t.Errorf("mirrored circle wrong: %+v", mc)
	}

	counts := countConstraints(s)
	if counts[sketch.KindSymmetric] != 1 || counts[sketch.KindEqual] != 1 {
		t.Errorf("expected symmetric + equal, got %+v", counts)
	}
}

func TestMirrorArcSwapsEndpoints(t *testing.T) {
	s := sketch.NewSketch(sketch.XYPlane())
	axis := testLine(s, 0, -5, 0, 5)
	arc := sketch.NewEntity(&sketch.ArcGeometry{
		Center:     geometry.NewVector2(3, 0),
		Radius:     1,
		StartAngle: 0,
		EndAngle:   math.Pi / 2,
	})
	s.AddEntity(arc)
	arcGeom, _ := arc.Arc()

	created := MirrorEntities(s, []sketch.EntityID{arc.ID}, axis.ID)
	mirrored, _ := s.Entity(created[0]).Arc()

	// the mirrored start is the reflection of the original end and
	// vice versa
	reflectedEnd := geometry.ReflectAcrossLine(arcGeom.EndPoint(),
		geometry.NewVector2(0, -5), geometry.NewVector2(0, 5))
	if mirrored.StartPoint().Distance(reflectedEnd) > 1e-10 {
		t.Errorf("mirrored start %v, expected %v", mirrored.StartPoint(), reflectedEnd)
	}

	// symmetric constraints pair start with end across the swap
	for _, entry := range s.Constraints {
		sym, ok := entry.Constraint.(sketch.Symmetric)
		if !ok {
			continue
		}
		if sym.A.Index == 1 && sym.B.Index != 2 {
			t.Errorf("expected start to pair with mirrored end, got %+v", sym)
		}
		if sym.A.Index == 2 && sym.B.Index != 1 {
			t.Errorf("expected end to pair with mirrored start, got %+v", sym)
		}
	}
}

func TestMirrorSkipsAxisInSelection(t *testing.T) {
	s := sketch.NewSketch(sketch.XYPlane())
	axis := testLine(s, 0, -5, 0, 5)
	original := testLine(s, 1, 1, 3, 2)

	created := MirrorEntities(s, []sketch.EntityID{axis.ID, original.ID}, axis.ID)
	if len(created) != 1 {
		t.Errorf("expected the axis itself not to be mirrored, got %d entities", len(created))
	}
}

func TestMirrorTwiceRestoresGeometry(t *testing.T) {
	s := sketch.NewSketch(sketch.XYPlane())
	axis := testLine(s, -2, -7, 3, 4) // arbitrary oblique axis
	original := testLine(s, 5, 1, 6, 3)

	first := MirrorEntities(s, []sketch.EntityID{original.ID}, axis.ID)
	second := MirrorEntities(s, first, axis.ID)

	back, _ := s.Entity(second[0]).Line()
	orig, _ := original.Line()
	if back.Start.Distance(orig.Start) > 1e-9 || back.End.Distance(orig.End) > 1e-9 {
		t.Errorf("double mirror drifted: %v to %v, expected %v to %v",
			back.Start, back.End, orig.Start, orig.End)
	}
}

func TestMirrorToolFlow(t *testing.T) {
	ed, rec := newTestEditor()
	s := ed.Sketch()
	testLine(s, 2, 2, 6, 2)
	axis := testLine(s, 10, -5, 10, 5)

	// select the source line, then click the axis with the mirror tool
	ed.MouseDown(geometry.NewVector2(4, 2), nil)
	ed.ActivateTool(ToolMirror)
	ed.MouseDown(geometry.NewVector2(10, 0), nil)

	if len(s.Entities) != 3 {
		t.Fatalf("expected 3 entities after mirroring, got %d", len(s.Entities))
	}
	mirrored, _ := s.Entities[2].Line()
	if mirrored.Start.Distance(geometry.NewVector2(18, 2)) > 1e-10 {
		t.Errorf("mirrored start wrong: %v", mirrored.Start)
	}
	if rec.requests != 1 {
		t.Errorf("expected 1 solve request, got %d", rec.requests)
	}
	_ = axis
}

package sketch

import (
	"encoding/json"
	"path/filepath"
	"reflect"
	"testing"

	"sketchcad/pkg/geometry"
)

func sampleSketch() *Sketch {
	s := NewSketch(XYPlane())

	line := NewEntity(&LineGeometry{
		Start: geometry.NewVector2(0, 0),
		End:   geometry.NewVector2(4, 0),
	})
	circle := NewEntity(&CircleGeometry{
		Center: geometry.NewVector2(2, 2),
		Radius: 1.5,
	})
	arc := NewEntity(&ArcGeometry{
		Center:     geometry.NewVector2(-1, 0),
		Radius:     1,
		StartAngle: 0,
		EndAngle:   2,
	})
	ellipse := NewEntity(&EllipseGeometry{
		Center:    geometry.NewVector2(5, 5),
		SemiMajor: 3,
		SemiMinor: 1,
		Rotation:  0.4,
	})
	ellipse.Construction = true
	point := NewEntity(&PointGeometry{Position: geometry.NewVector2(9, 9)})

	s.AddEntity(line)
	s.AddEntity(circle)
	s.AddEntity(arc)
	s.AddEntity(ellipse)
	s.AddEntity(point)

	s.AddConstraint(Horizontal{Line: line.ID})
	s.AddConstraint(Coincident{A: PointOn(line.ID, 0), B: OriginPoint()})
	s.AddConstraint(Distance{
		A:     PointOn(line.ID, 0),
		B:     PointOn(line.ID, 1),
		Value: 4,
		Style: DimensionStyle{ParallelOffset: 0.5, PerpendicularOffset: 1},
	})
	s.AddConstraint(Radius{Entity: circle.ID, Value: 1.5})
	s.AddConstraint(Tangent{A: line.ID, B: circle.ID})
	s.AddConstraint(Symmetric{A: PointOn(arc.ID, 1), B: PointOn(arc.ID, 2), Axis: line.ID})

	return s
}

func TestSketchJSONRoundTrip(t *testing.T) {
	s := sampleSketch()

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	decoded := &Sketch{}
	if err := json.Unmarshal(data, decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(s.Entities, decoded.Entities) {
		t.Errorf("entities round trip failed:\nbefore %+v\nafter  %+v", s.Entities, decoded.Entities)
	}
	if !reflect.DeepEqual(s.Constraints, decoded.Constraints) {
		t.Errorf("constraints round trip failed:\nbefore %+v\nafter  %+v", s.Constraints, decoded.Constraints)
	}
}

func TestConstraintKindTags(t *testing.T) {
	s := sampleSketch()
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var env struct {
		Constraints []struct {
			Kind string `json:"kind"`
		} `json:"constraints"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	expected := []string{"horizontal", "coincident", "distance", "radius", "tangent", "symmetric"}
	if len(env.Constraints) != len(expected) {
		t.Fatalf("expected %d constraints, got %d", len(expected), len(env.Constraints))
	}
	for i, kind := range expected {
		if env.Constraints[i].Kind != kind {
			t.Errorf("constraint %d: expected kind %q, got %q", i, kind, env.Constraints[i].Kind)
		}
	}
}

func TestUnknownGeometryKind(t *testing.T) {
	data := []byte(`{"id":"x","kind":"helix","geometry":{}}`)

	e := &Entity{}
	if err := json.Unmarshal(data, e); err == nil {
		t.Error("Unmarshal failed: expected error for unknown geometry kind")
	}
}

func TestUnknownConstraintKind(t *testing.T) {
	data := []byte(`{"id":"x","kind":"telepathic","constraint":{}}`)

	entry := &ConstraintEntry{}
	if err := json.Unmarshal(data, entry); err == nil {
		t.Error("Unmarshal failed: expected error for unknown constraint kind")
	}
}

func TestReadWriteFile(t *testing.T) {
	s := sampleSketch()
	path := filepath.Join(t.TempDir(), "sample.sketch.json")

	if err := Write(path, s); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	loaded, err := Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if !reflect.DeepEqual(s.Entities, loaded.Entities) {
		t.Error("file round trip failed: entities differ")
	}
}

func TestReadRejectsInvalidSketch(t *testing.T) {
	s := NewSketch(XYPlane())
	a := NewEntity(&PointGeometry{})
	s.AddEntity(a)
	s.AddConstraint(Coincident{A: PointOn(a.ID, 0), B: PointOn("missing", 0)})

	path := filepath.Join(t.TempDir(), "bad.sketch.json")
	if err := Write(path, s); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if _, err := Read(path); err == nil {
		t.Error("Read failed: expected validation error")
	}
}

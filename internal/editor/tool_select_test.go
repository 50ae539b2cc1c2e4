package editor

import (
	"testing"

	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

func TestClickOnAnnotationOpensEditor(t *testing.T) {
	ed, _ := newTestEditor()
	a := testLine(ed.Sketch(), 2, 2, 8, 2)
	entryID := ed.Sketch().AddConstraint(sketch.Distance{
		A:     sketch.PointOn(a.ID, 0),
		B:     sketch.PointOn(a.ID, 1),
		Value: 6,
	})

	// zero offsets put the annotation at the midpoint, one leader
	// length above the line
	ed.MouseDown(geometry.NewVector2(5, 3), nil)

	got, ok := ed.PendingDimensionEdit()
	if !ok || got != entryID {
		t.Errorf("expected pending edit for %q, got %q (ok=%v)", entryID, got, ok)
	}
	if len(ed.Selection()) != 0 {
		t.Error("expected an annotation click not to select anything")
	}

	// the pending edit is consumed on read
	if _, ok := ed.PendingDimensionEdit(); ok {
		t.Error("expected the pending edit consumed")
	}
}

func TestAnnotationMissFallsThroughToSelection(t *testing.T) {
	ed, _ := newTestEditor()
	a := testLine(ed.Sketch(), 2, 2, 8, 2)
	ed.Sketch().AddConstraint(sketch.Distance{
		A:     sketch.PointOn(a.ID, 0),
		B:     sketch.PointOn(a.ID, 1),
		Value: 6,
	})

	// on the line body, outside the annotation box
	ed.MouseDown(geometry.NewVector2(7.8, 2), nil)

	if _, ok := ed.PendingDimensionEdit(); ok {
		t.Error("expected no pending edit for a body click")
	}
	if len(ed.Selection()) != 1 {
		t.Errorf("expected the line selected, got %d candidates", len(ed.Selection()))
	}
}

func TestAnnotationFollowsStoredOffsets(t *testing.T) {
	ed, _ := newTestEditor()
	a := testLine(ed.Sketch(), 2, 2, 8, 2)
	entryID := ed.Sketch().AddConstraint(sketch.Distance{
		A:     sketch.PointOn(a.ID, 0),
		B:     sketch.PointOn(a.ID, 1),
		Value: 6,
		Style: sketch.DimensionStyle{ParallelOffset: 2, PerpendicularOffset: 1.5},
	})

	// annotation sits at midpoint + 2 along the line, 1 + 1.5 above it
	ed.MouseDown(geometry.NewVector2(7, 4.5), nil)

	got, ok := ed.PendingDimensionEdit()
	if !ok || got != entryID {
		t.Errorf("expected pending edit for the offset annotation, got %q (ok=%v)", got, ok)
	}
}

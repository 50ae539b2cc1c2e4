package editor

import (
	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

// Measurement is one non-driving readout in the session-local list. It
// captures the same geometric relationship a dimension would, without
// entering the constraint model.
type Measurement struct {
	Kind   DimensionKind
	Value  float64
	A, B   geometry.Vector2
	Entity sketch.EntityID // set for length/radius measurements
}

// MeasureTool computes distances, lengths, and radii like the dimension
// tool, but records them as transient measurements instead of
// constraints
type MeasureTool struct {
	target dimensionTarget
}

func (t *MeasureTool) Name() ToolName { return ToolMeasure }

func (t *MeasureTool) MouseDown(ctx *Context, pos geometry.Vector2) {
	if t.target.complete() {
		t.commit(ctx, pos)
		t.target.reset()
		return
	}
	hit := ResolveCandidate(ctx.Sketch, pos, ctx.Snap, ctx.Config.Snap.Radius)
	t.target.accumulate(ctx.Sketch, hit)
}

func (t *MeasureTool) MouseMove(*Context, geometry.Vector2) {}
func (t *MeasureTool) MouseUp(*Context, geometry.Vector2)   {}

func (t *MeasureTool) Cancel(*Context) {
	t.target.reset()
}

func (t *MeasureTool) commit(ctx *Context, click geometry.Vector2) {
	if t.target.radius != "" {
		e := ctx.Sketch.Entity(t.target.radius)
		if e == nil {
			return
		}
		ctx.RecordMeasurement(Measurement{
			Kind:   DimRadius,
			Value:  radiusOf(e),
			Entity: e.ID,
		})
		return
	}

	p1, ok1 := t.target.points[0].Resolve(ctx.Sketch)
	p2, ok2 := t.target.points[1].Resolve(ctx.Sketch)
	if !ok1 || !ok2 {
		return
	}

	kind := ClassifyDistance(p1, p2, click)
	m := Measurement{Kind: kind, Value: distanceValue(kind, p1, p2), A: p1, B: p2}
	if t.target.lineEntity != "" && kind == DimDistance {
		m.Kind = DimLength
		m.Entity = t.target.lineEntity
	}
	ctx.RecordMeasurement(m)
}

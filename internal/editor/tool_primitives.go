package editor

import (
	"math"

	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

// swapPreview replaces a tool's preview entities: the previous ones are
// removed by id and the new ones are added with the preview flag set.
// Returns the new preview ids.
func swapPreview(s *sketch.Sketch, old []sketch.EntityID, entities ...*sketch.Entity) []sketch.EntityID {
	for _, id := range old {
		s.RemoveEntity(id)
	}
	ids := make([]sketch.EntityID, 0, len(entities))
	for _, e := range entities {
		e.Preview = true
		s.AddEntity(e)
		ids = append(ids, e.ID)
	}
	return ids
}

// clearPreview removes a tool's preview entities by id
func clearPreview(s *sketch.Sketch, ids []sketch.EntityID) {
	for _, id := range ids {
		s.RemoveEntity(id)
	}
}

// addSnapCoincident constrains a newly created point to the geometry the
// click snapped onto. Only hard snaps with a defining-point form qualify.
func addSnapCoincident(ctx *Context, cp sketch.ConstraintPoint, snap *sketch.SnapPoint) {
	if snap == nil || !snap.Hard() {
		return
	}
	target, ok := snapConstraintPoint(ctx.Sketch, snap)
	if !ok {
		return
	}
	if !target.Origin && target.Entity == cp.Entity {
		return
	}
	ctx.Sketch.AddConstraint(sketch.Coincident{A: cp, B: target})
}

// addLineAngleConstraints materializes the angle-based inferences for a
// freshly drawn line: horizontal/vertical within the angle tolerance,
// parallel/perpendicular against existing lines within the parallel
// tolerance (first match of each kind wins).
func addLineAngleConstraints(ctx *Context, lineID sketch.EntityID, start, end geometry.Vector2) {
	dir := end.Sub(start)
	if dir.Length() == 0 {
		return
	}
	angleDeg := dir.Angle() * 180 / math.Pi

	switch {
	case angularDistance(angleDeg, 0) <= ctx.Config.Inference.AngleTolerance:
		ctx.Sketch.AddConstraint(sketch.Horizontal{Line: lineID})
		return
	case angularDistance(angleDeg, 90) <= ctx.Config.Inference.AngleTolerance:
		ctx.Sketch.AddConstraint(sketch.Vertical{Line: lineID})
		return
	}

	for _, hint := range inferAgainstLines(dir, end, ctx.Sketch, ctx.Config) {
		if len(hint.Entities) == 0 || hint.Entities[0] == lineID {
			continue
		}
		switch hint.Kind {
		case InferParallel:
			ctx.Sketch.AddConstraint(sketch.Parallel{A: hint.Entities[0], B: lineID})
			return
		case InferPerpendicular:
			ctx.Sketch.AddConstraint(sketch.Perpendicular{A: hint.Entities[0], B: lineID})
			return
		}
	}
}

// PointTool places a free-standing point per click
type PointTool struct{}

func (t *PointTool) Name() ToolName { return ToolPoint }

func (t *PointTool) MouseDown(ctx *Context, pos geometry.Vector2) {
	e := sketch.NewEntity(&sketch.PointGeometry{Position: pos})
	ctx.Sketch.AddEntity(e)
	addSnapCoincident(ctx, sketch.PointOn(e.ID, 0), ctx.Snap)
	ctx.Sketch.Record("point", e.ID)
	ctx.RequestSolve()
}

func (t *PointTool) MouseMove(*Context, geometry.Vector2) {}
func (t *PointTool) MouseUp(*Context, geometry.Vector2)   {}
func (t *PointTool) Cancel(*Context)                      {}

// LineTool draws a segment from two anchor clicks with a live preview
type LineTool struct {
	hasStart  bool
	start     geometry.Vector2
	startSnap *sketch.SnapPoint
	preview   []sketch.EntityID
}

func (t *LineTool) Name() ToolName { return ToolLine }

func (t *LineTool) MouseDown(ctx *Context, pos geometry.Vector2) {
	if !t.hasStart {
		t.hasStart = true
		t.start = pos
		t.startSnap = ctx.Snap
		return
	}

	clearPreview(ctx.Sketch, t.preview)
	t.preview = nil

	if pos.Distance(t.start) == 0 {
		return
	}
	e := sketch.NewEntity(&sketch.LineGeometry{Start: t.start, End: pos})
	ctx.Sketch.AddEntity(e)
	addSnapCoincident(ctx, sketch.PointOn(e.ID, 0), t.startSnap)
	addSnapCoincident(ctx, sketch.PointOn(e.ID, 1), ctx.Snap)
	addLineAngleConstraints(ctx, e.ID, t.start, pos)
	ctx.Sketch.Record("line", e.ID)

	t.hasStart = false
	t.startSnap = nil
	ctx.RequestSolve()
}

func (t *LineTool) MouseMove(ctx *Context, pos geometry.Vector2) {
	if !t.hasStart {
		return
	}
	t.preview = swapPreview(ctx.Sketch, t.preview,
		sketch.NewEntity(&sketch.LineGeometry{Start: t.start, End: pos}))
}

func (t *LineTool) MouseUp(*Context, geometry.Vector2) {}

func (t *LineTool) Cancel(ctx *Context) {
	clearPreview(ctx.Sketch, t.preview)
	t.preview = nil
	t.hasStart = false
	t.startSnap = nil
}

// CircleTool draws a circle from a center click and a radius click
type CircleTool struct {
	hasCenter  bool
	center     geometry.Vector2
	centerSnap *sketch.SnapPoint
	preview    []sketch.EntityID
}

func (t *CircleTool) Name() ToolName { return ToolCircle }

func (t *CircleTool) MouseDown(ctx *Context, pos geometry.Vector2) {
	if !t.hasCenter {
		t.hasCenter = true
		t.center = pos
		t.centerSnap = ctx.Snap
		return
	}

	clearPreview(ctx.Sketch, t.preview)
	t.preview = nil

	radius := t.center.Distance(pos)
	if radius == 0 {
		return
	}
	e := sketch.NewEntity(&sketch.CircleGeometry{Center: t.center, Radius: radius})
	ctx.Sketch.AddEntity(e)
	addSnapCoincident(ctx, sketch.PointOn(e.ID, 0), t.centerSnap)
	ctx.Sketch.Record("circle", e.ID)

	t.hasCenter = false
	t.centerSnap = nil
	ctx.RequestSolve()
}

func (t *CircleTool) MouseMove(ctx *Context, pos geometry.Vector2) {
	if !t.hasCenter {
		return
	}
	t.preview = swapPreview(ctx.Sketch, t.preview,
		sketch.NewEntity(&sketch.CircleGeometry{Center: t.center, Radius: t.center.Distance(pos)}))
}

func (t *CircleTool) MouseUp(*Context, geometry.Vector2) {}

func (t *CircleTool) Cancel(ctx *Context) {
	clearPreview(ctx.Sketch, t.preview)
	t.preview = nil
	t.hasCenter = false
	t.centerSnap = nil
}

// ArcTool draws a three-point arc: start, end, then a point the arc
// passes through
type ArcTool struct {
	anchors []geometry.Vector2
	preview []sketch.EntityID
}

func (t *ArcTool) Name() ToolName { return ToolArc }

func (t *ArcTool) MouseDown(ctx *Context, pos geometry.Vector2) {
	t.anchors = append(t.anchors, pos)
	if len(t.anchors) < 3 {
		return
	}

	clearPreview(ctx.Sketch, t.preview)
	t.preview = nil

	arc, ok := arcThroughPoints(t.anchors[0], t.anchors[1], t.anchors[2])
	t.anchors = nil
	if !ok {
		return
	}
	e := sketch.NewEntity(arc)
	ctx.Sketch.AddEntity(e)
	ctx.Sketch.Record("arc", e.ID)
	ctx.RequestSolve()
}

func (t *ArcTool) MouseMove(ctx *Context, pos geometry.Vector2) {
	switch len(t.anchors) {
	case 1:
		t.preview = swapPreview(ctx.Sketch, t.preview,
			sketch.NewEntity(&sketch.LineGeometry{Start: t.anchors[0], End: pos}))
	case 2:
		if arc, ok := arcThroughPoints(t.anchors[0], t.anchors[1], pos); ok {
			t.preview = swapPreview(ctx.Sketch, t.preview, sketch.NewEntity(arc))
		}
	}
}

func (t *ArcTool) MouseUp(*Context, geometry.Vector2) {}

func (t *ArcTool) Cancel(ctx *Context) {
	clearPreview(ctx.Sketch, t.preview)
	t.preview = nil
	t.anchors = nil
}

// arcThroughPoints builds the arc from start through mid to end. The
// sweep direction is chosen so the arc actually passes through mid.
func arcThroughPoints(start, end, mid geometry.Vector2) (*sketch.ArcGeometry, bool) {
	center, radius, err := geometry.CircleThroughPoints(start, end, mid)
	if err != nil {
		return nil, false
	}

	startAngle := start.Sub(center).Angle()
	endAngle := end.Sub(center).Angle()
	midAngle := mid.Sub(center).Angle()

	if !angleOnCCWSweep(startAngle, endAngle, midAngle) {
		startAngle, endAngle = endAngle, startAngle
	}
	return &sketch.ArcGeometry{
		Center:     center,
		Radius:     radius,
		StartAngle: startAngle,
		EndAngle:   endAngle,
	}, true
}

// angleOnCCWSweep reports whether mid lies on the counter-clockwise
// sweep from start to end
func angleOnCCWSweep(start, end, mid float64) bool {
	sweep := normalizeAngle(end - start)
	toMid := normalizeAngle(mid - start)
	return toMid <= sweep
}

// normalizeAngle maps an angle into [0, 2π)
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

// EllipseTool draws an ellipse from center, major-axis, and minor-axis
// clicks
type EllipseTool struct {
	anchors []geometry.Vector2
	preview []sketch.EntityID
}

func (t *EllipseTool) Name() ToolName { return ToolEllipse }

func (t *EllipseTool) MouseDown(ctx *Context, pos geometry.Vector2) {
	t.anchors = append(t.anchors, pos)
	if len(t.anchors) < 3 {
		return
	}

	clearPreview(ctx.Sketch, t.preview)
	t.preview = nil

	ellipse, ok := ellipseFromAnchors(t.anchors[0], t.anchors[1], t.anchors[2])
	t.anchors = nil
	if !ok {
		return
	}
	e := sketch.NewEntity(ellipse)
	ctx.Sketch.AddEntity(e)
	ctx.Sketch.Record("ellipse", e.ID)
	ctx.RequestSolve()
}

func (t *EllipseTool) MouseMove(ctx *Context, pos geometry.Vector2) {
	switch len(t.anchors) {
	case 1:
		t.preview = swapPreview(ctx.Sketch, t.preview,
			sketch.NewEntity(&sketch.LineGeometry{Start: t.anchors[0], End: pos}))
	case 2:
		if ellipse, ok := ellipseFromAnchors(t.anchors[0], t.anchors[1], pos); ok {
			t.preview = swapPreview(ctx.Sketch, t.preview, sketch.NewEntity(ellipse))
		}
	}
}

func (t *EllipseTool) MouseUp(*Context, geometry.Vector2) {}

func (t *EllipseTool) Cancel(ctx *Context) {
	clearPreview(ctx.Sketch, t.preview)
	t.preview = nil
	t.anchors = nil
}

// ellipseFromAnchors builds an ellipse from its center, a major-axis
// endpoint, and a point fixing the minor radius
func ellipseFromAnchors(center, major, minor geometry.Vector2) (*sketch.EllipseGeometry, bool) {
	axis := major.Sub(center)
	semiMajor := axis.Length()
	if semiMajor == 0 {
		return nil, false
	}
	semiMinor := geometry.DistanceToLine(center, major, minor)
	if semiMinor == 0 {
		return nil, false
	}
	rotation := axis.Angle()
	if semiMinor > semiMajor {
		semiMajor, semiMinor = semiMinor, semiMajor
		rotation += math.Pi / 2
	}
	return &sketch.EllipseGeometry{
		Center:    center,
		SemiMajor: semiMajor,
		SemiMinor: semiMinor,
		Rotation:  rotation,
	}, true
}

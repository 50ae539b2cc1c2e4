package editor

import (
	"math"

	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

// degenerateAxis is the squared-ish length floor below which a two-click
// axis is considered degenerate and the construction silently no-ops
const degenerateAxis = 1e-9

// RectangleTool draws an axis-aligned rectangle from two opposite
// corners, constrained to stay rectangular
type RectangleTool struct {
	hasCorner  bool
	corner     geometry.Vector2
	cornerSnap *sketch.SnapPoint
	preview    []sketch.EntityID
}

func (t *RectangleTool) Name() ToolName { return ToolRectangle }

func (t *RectangleTool) MouseDown(ctx *Context, pos geometry.Vector2) {
	if !t.hasCorner {
		t.hasCorner = true
		t.corner = pos
		t.cornerSnap = ctx.Snap
		return
	}

	clearPreview(ctx.Sketch, t.preview)
	t.preview = nil
	firstSnap := t.cornerSnap
	corner := t.corner
	t.hasCorner = false
	t.cornerSnap = nil

	if corner.X == pos.X || corner.Y == pos.Y {
		return
	}

	lines := rectangleLines(corner, pos)
	ids := make([]sketch.EntityID, len(lines))
	for i, g := range lines {
		e := sketch.NewEntity(g)
		ctx.Sketch.AddEntity(e)
		ids[i] = e.ID
	}

	// bottom / top horizontal, right / left vertical
	ctx.Sketch.AddConstraint(sketch.Horizontal{Line: ids[0]})
	ctx.Sketch.AddConstraint(sketch.Vertical{Line: ids[1]})
	ctx.Sketch.AddConstraint(sketch.Horizontal{Line: ids[2]})
	ctx.Sketch.AddConstraint(sketch.Vertical{Line: ids[3]})

	// close the loop at all four corners
	for i := range ids {
		next := ids[(i+1)%len(ids)]
		ctx.Sketch.AddConstraint(sketch.Coincident{
			A: sketch.PointOn(ids[i], 1),
			B: sketch.PointOn(next, 0),
		})
	}

	// auto-constraints from the snaps captured at the picked corners
	addSnapCoincident(ctx, sketch.PointOn(ids[0], 0), firstSnap)
	addSnapCoincident(ctx, sketch.PointOn(ids[1], 1), ctx.Snap)

	ctx.Sketch.Record("rectangle", ids...)
	ctx.RequestSolve()
}

func (t *RectangleTool) MouseMove(ctx *Context, pos geometry.Vector2) {
	if !t.hasCorner {
		return
	}
	lines := rectangleLines(t.corner, pos)
	entities := make([]*sketch.Entity, len(lines))
	for i, g := range lines {
		entities[i] = sketch.NewEntity(g)
	}
	t.preview = swapPreview(ctx.Sketch, t.preview, entities...)
}

func (t *RectangleTool) MouseUp(*Context, geometry.Vector2) {}

func (t *RectangleTool) Cancel(ctx *Context) {
	clearPreview(ctx.Sketch, t.preview)
	t.preview = nil
	t.hasCorner = false
	t.cornerSnap = nil
}

// rectangleLines returns the four lines of the rectangle spanned by two
// opposite corners, chained end-to-start
func rectangleLines(c1, c3 geometry.Vector2) []sketch.Geometry {
	c2 := geometry.NewVector2(c3.X, c1.Y)
	c4 := geometry.NewVector2(c1.X, c3.Y)
	return []sketch.Geometry{
		&sketch.LineGeometry{Start: c1, End: c2},
		&sketch.LineGeometry{Start: c2, End: c3},
		&sketch.LineGeometry{Start: c3, End: c4},
		&sketch.LineGeometry{Start: c4, End: c1},
	}
}

// SlotTool draws a slot from two center clicks and a radius click: two
// equal arcs, two side lines parallel to the construction axis
type SlotTool struct {
	anchors []geometry.Vector2
	preview []sketch.EntityID
}

func (t *SlotTool) Name() ToolName { return ToolSlot }

func (t *SlotTool) MouseDown(ctx *Context, pos geometry.Vector2) {
	t.anchors = append(t.anchors, pos)
	if len(t.anchors) < 3 {
		return
	}

	clearPreview(ctx.Sketch, t.preview)
	t.preview = nil
	c1, c2 := t.anchors[0], t.anchors[1]
	t.anchors = nil

	radius := geometry.DistanceToLine(c1, c2, pos)
	entities, ok := slotEntities(c1, c2, radius)
	if !ok {
		return
	}

	ids := make([]sketch.EntityID, len(entities))
	for i, e := range entities {
		ctx.Sketch.AddEntity(e)
		ids[i] = e.ID
	}
	axis, arc1, arc2, sideA, sideB := ids[0], ids[1], ids[2], ids[3], ids[4]

	ctx.Sketch.AddConstraint(sketch.Coincident{A: sketch.PointOn(axis, 0), B: sketch.PointOn(arc1, 0)})
	ctx.Sketch.AddConstraint(sketch.Coincident{A: sketch.PointOn(axis, 1), B: sketch.PointOn(arc2, 0)})
	ctx.Sketch.AddConstraint(sketch.Parallel{A: sideA, B: axis})
	ctx.Sketch.AddConstraint(sketch.Parallel{A: sideB, B: axis})
	ctx.Sketch.AddConstraint(sketch.Equal{A: arc1, B: arc2})

	ctx.Sketch.Record("slot", ids...)
	ctx.RequestSolve()
}

func (t *SlotTool) MouseMove(ctx *Context, pos geometry.Vector2) {
	switch len(t.anchors) {
	case 1:
		t.preview = swapPreview(ctx.Sketch, t.preview,
			sketch.NewEntity(&sketch.LineGeometry{Start: t.anchors[0], End: pos}))
	case 2:
		radius := geometry.DistanceToLine(t.anchors[0], t.anchors[1], pos)
		if entities, ok := slotEntities(t.anchors[0], t.anchors[1], radius); ok {
			t.preview = swapPreview(ctx.Sketch, t.preview, entities...)
		}
	}
}

func (t *SlotTool) MouseUp(*Context, geometry.Vector2) {}

func (t *SlotTool) Cancel(ctx *Context) {
	clearPreview(ctx.Sketch, t.preview)
	t.preview = nil
	t.anchors = nil
}

// slotEntities builds the slot geometry: construction axis, two end
// arcs, two tangent-aligned side lines. Order: axis, arc1, arc2, sideA,
// sideB.
func slotEntities(c1, c2 geometry.Vector2, radius float64) ([]*sketch.Entity, bool) {
	dir := c2.Sub(c1)
	if dir.Length() < degenerateAxis || radius <= 0 {
		return nil, false
	}
	n := dir.Perp().Normalize()

	axis := sketch.NewEntity(&sketch.LineGeometry{Start: c1, End: c2})
	axis.Construction = true

	// each cap sweeps half a turn away from the other center
	arc1 := sketch.NewEntity(&sketch.ArcGeometry{
		Center:     c1,
		Radius:     radius,
		StartAngle: n.Angle(),
		EndAngle:   n.Mul(-1).Angle(),
	})
	arc2 := sketch.NewEntity(&sketch.ArcGeometry{
		Center:     c2,
		Radius:     radius,
		StartAngle: n.Mul(-1).Angle(),
		EndAngle:   n.Angle(),
	})

	sideA := sketch.NewEntity(&sketch.LineGeometry{
		Start: c1.Add(n.Mul(radius)),
		End:   c2.Add(n.Mul(radius)),
	})
	sideB := sketch.NewEntity(&sketch.LineGeometry{
		Start: c1.Sub(n.Mul(radius)),
		End:   c2.Sub(n.Mul(radius)),
	})

	return []*sketch.Entity{axis, arc1, arc2, sideA, sideB}, true
}

// polygonSides is fixed for the polygon tool
const polygonSides = 6

// PolygonTool draws a regular hexagon from a center click and a vertex
// click: construction spokes plus the perimeter, fully constrained
type PolygonTool struct {
	hasCenter bool
	center    geometry.Vector2
	preview   []sketch.EntityID
}

func (t *PolygonTool) Name() ToolName { return ToolPolygon }

func (t *PolygonTool) MouseDown(ctx *Context, pos geometry.Vector2) {
	if !t.hasCenter {
		t.hasCenter = true
		t.center = pos
		return
	}

	clearPreview(ctx.Sketch, t.preview)
	t.preview = nil
	center := t.center
	t.hasCenter = false

	spokes, perimeter, ok := polygonEntities(center, pos)
	if !ok {
		return
	}

	spokeIDs := make([]sketch.EntityID, len(spokes))
	for i, e := range spokes {
		ctx.Sketch.AddEntity(e)
		spokeIDs[i] = e.ID
	}
	perimIDs := make([]sketch.EntityID, len(perimeter))
	for i, e := range perimeter {
		ctx.Sketch.AddEntity(e)
		perimIDs[i] = e.ID
	}

	for i := 0; i < polygonSides; i++ {
		next := (i + 1) % polygonSides

		// spoke tip meets its perimeter line, corners chain around
		ctx.Sketch.AddConstraint(sketch.Coincident{
			A: sketch.PointOn(spokeIDs[i], 1),
			B: sketch.PointOn(perimIDs[i], 0),
		})
		ctx.Sketch.AddConstraint(sketch.Coincident{
			A: sketch.PointOn(perimIDs[i], 1),
			B: sketch.PointOn(perimIDs[next], 0),
		})

		if i < polygonSides-1 {
			ctx.Sketch.AddConstraint(sketch.Equal{A: spokeIDs[i], B: spokeIDs[next]})
			ctx.Sketch.AddConstraint(sketch.Equal{A: perimIDs[i], B: perimIDs[next]})
		}
		if i > 0 {
			// all spokes share the center
			ctx.Sketch.AddConstraint(sketch.Coincident{
				A: sketch.PointOn(spokeIDs[0], 0),
				B: sketch.PointOn(spokeIDs[i], 0),
			})
		}
	}

	ids := append(append([]sketch.EntityID{}, spokeIDs...), perimIDs...)
	ctx.Sketch.Record("polygon", ids...)
	ctx.RequestSolve()
}

func (t *PolygonTool) MouseMove(ctx *Context, pos geometry.Vector2) {
	if !t.hasCenter {
		return
	}
	spokes, perimeter, ok := polygonEntities(t.center, pos)
	if !ok {
		return
	}
	t.preview = swapPreview(ctx.Sketch, t.preview, append(spokes, perimeter...)...)
}

func (t *PolygonTool) MouseUp(*Context, geometry.Vector2) {}

func (t *PolygonTool) Cancel(ctx *Context) {
	clearPreview(ctx.Sketch, t.preview)
	t.preview = nil
	t.hasCenter = false
}

// polygonEntities places the hexagon vertices on the circle through the
// vertex click and builds construction spokes plus perimeter lines
func polygonEntities(center, vertex geometry.Vector2) (spokes, perimeter []*sketch.Entity, ok bool) {
	radial := vertex.Sub(center)
	if radial.Length() < degenerateAxis {
		return nil, nil, false
	}

	vertices := make([]geometry.Vector2, polygonSides)
	for i := range vertices {
		vertices[i] = center.Add(radial.Rotate(float64(i) * 2 * math.Pi / polygonSides))
	}

	spokes = make([]*sketch.Entity, polygonSides)
	perimeter = make([]*sketch.Entity, polygonSides)
	for i := range vertices {
		spoke := sketch.NewEntity(&sketch.LineGeometry{Start: center, End: vertices[i]})
		spoke.Construction = true
		spokes[i] = spoke

		perimeter[i] = sketch.NewEntity(&sketch.LineGeometry{
			Start: vertices[i],
			End:   vertices[(i+1)%polygonSides],
		})
	}
	return spokes, perimeter, true
}

package editor

import (
	"math"

	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

// DimensionKind classifies what a dimension or measurement captures
type DimensionKind string

const (
	DimDistance   DimensionKind = "distance"
	DimHorizontal DimensionKind = "horizontal"
	DimVertical   DimensionKind = "vertical"
	DimLength     DimensionKind = "length"
	DimRadius     DimensionKind = "radius"
)

const (
	// classifyBuffer expands the two-point bounding box used to decide
	// between horizontal/vertical/true distance
	classifyBuffer = 0.5
	// defaultLeader is the default annotation leader length
	defaultLeader = 1.0
)

// ClassifyDistance decides which distance kind a 2-point dimension takes
// from the cursor position: inside the expanded X-band but outside the
// Y-band reads as a vertical measurement, inside Y but outside X as
// horizontal, anything else as true distance.
func ClassifyDistance(p1, p2, cursor geometry.Vector2) DimensionKind {
	minX := math.Min(p1.X, p2.X) - classifyBuffer
	maxX := math.Max(p1.X, p2.X) + classifyBuffer
	minY := math.Min(p1.Y, p2.Y) - classifyBuffer
	maxY := math.Max(p1.Y, p2.Y) + classifyBuffer

	inX := cursor.X >= minX && cursor.X <= maxX
	inY := cursor.Y >= minY && cursor.Y <= maxY

	switch {
	case inX && !inY:
		return DimVertical
	case inY && !inX:
		return DimHorizontal
	}
	return DimDistance
}

// distanceValue returns the dimension value for a classification
func distanceValue(kind DimensionKind, p1, p2 geometry.Vector2) float64 {
	switch kind {
	case DimHorizontal:
		return math.Abs(p2.X - p1.X)
	case DimVertical:
		return math.Abs(p2.Y - p1.Y)
	}
	return p1.Distance(p2)
}

// PlacementOffsets computes the annotation placement stored on a
// dimension's display style: the click projected onto the p1-p2 line
// gives a parallel component relative to the midpoint and a
// perpendicular component relative to the default leader length.
func PlacementOffsets(p1, p2, click geometry.Vector2) (para, perp float64) {
	dir := p2.Sub(p1)
	length := dir.Length()
	if length == 0 {
		return 0, 0
	}
	unit := dir.Mul(1 / length)
	v := click.Sub(p1)
	return v.Dot(unit) - length/2, v.Dot(unit.Perp()) - defaultLeader
}

// AnnotationPosition reproduces the rendered text position of a
// distance-style annotation from its stored offsets; it is the inverse
// of PlacementOffsets
func AnnotationPosition(p1, p2 geometry.Vector2, style sketch.DimensionStyle) geometry.Vector2 {
	dir := p2.Sub(p1)
	length := dir.Length()
	if length == 0 {
		return p1
	}
	unit := dir.Mul(1 / length)
	return p1.
		Add(unit.Mul(length/2 + style.ParallelOffset)).
		Add(unit.Perp().Mul(defaultLeader + style.PerpendicularOffset))
}

// dimensionTarget is the accumulated selection of a dimension or
// measurement interaction: up to two points, or one circle/arc for a
// radius, with a single line treated as an implicit two-point selection
type dimensionTarget struct {
	points     []sketch.SelectionCandidate
	lineEntity sketch.EntityID // set when the points came from one line
	radius     sketch.EntityID // set for a circle/arc target
}

func (d *dimensionTarget) reset() {
	*d = dimensionTarget{}
}

// complete reports whether the next click is a placement click
func (d *dimensionTarget) complete() bool {
	return len(d.points) == 2 || d.radius != ""
}

// accumulate folds a hit-test result into the target. Returns false
// when the hit contributes nothing.
func (d *dimensionTarget) accumulate(s *sketch.Sketch, hit *sketch.SelectionCandidate) bool {
	if hit == nil {
		return false
	}
	switch hit.Kind {
	case sketch.CandidateOrigin, sketch.CandidateEntityPoint:
		d.points = append(d.points, *hit)
		return true
	case sketch.CandidateEntity:
		e := s.Entity(hit.Entity)
		if e == nil {
			return false
		}
		switch e.Geometry.Kind() {
		case sketch.KindLine:
			if len(d.points) > 0 {
				return false
			}
			d.points = append(d.points,
				sketch.PointCandidate(e.ID, 0),
				sketch.PointCandidate(e.ID, 1))
			d.lineEntity = e.ID
			return true
		case sketch.KindCircle, sketch.KindArc:
			if len(d.points) > 0 {
				return false
			}
			d.radius = e.ID
			return true
		}
	}
	return false
}

// DimensionTool creates driving dimensional constraints from up to two
// selection clicks followed by a placement click
type DimensionTool struct {
	target dimensionTarget
}

func (t *DimensionTool) Name() ToolName { return ToolDimension }

func (t *DimensionTool) MouseDown(ctx *Context, pos geometry.Vector2) {
	if t.target.complete() {
		t.commit(ctx, pos)
		t.target.reset()
		return
	}
	hit := ResolveCandidate(ctx.Sketch, pos, ctx.Snap, ctx.Config.Snap.Radius)
	t.target.accumulate(ctx.Sketch, hit)
}

func (t *DimensionTool) MouseMove(*Context, geometry.Vector2) {}
func (t *DimensionTool) MouseUp(*Context, geometry.Vector2)   {}

func (t *DimensionTool) Cancel(*Context) {
	t.target.reset()
}

func (t *DimensionTool) commit(ctx *Context, click geometry.Vector2) {
	if t.target.radius != "" {
		t.commitRadius(ctx, click)
		return
	}

	a, okA := t.target.points[0].ConstraintPoint()
	b, okB := t.target.points[1].ConstraintPoint()
	if !okA || !okB {
		return
	}
	p1, ok1 := a.Resolve(ctx.Sketch)
	p2, ok2 := b.Resolve(ctx.Sketch)
	if !ok1 || !ok2 {
		return
	}

	kind := ClassifyDistance(p1, p2, click)
	para, perp := PlacementOffsets(p1, p2, click)
	style := sketch.DimensionStyle{ParallelOffset: para, PerpendicularOffset: perp}
	value := distanceValue(kind, p1, p2)

	switch kind {
	case DimHorizontal:
		ctx.Sketch.AddConstraint(sketch.HorizontalDistance{A: a, B: b, Value: value, Style: style})
	case DimVertical:
		ctx.Sketch.AddConstraint(sketch.VerticalDistance{A: a, B: b, Value: value, Style: style})
	default:
		ctx.Sketch.AddConstraint(sketch.Distance{A: a, B: b, Value: value, Style: style})
	}
	ctx.RequestSolve()
}

func (t *DimensionTool) commitRadius(ctx *Context, click geometry.Vector2) {
	e := ctx.Sketch.Entity(t.target.radius)
	if e == nil {
		return
	}
	center, ok := e.Geometry.DefiningPoint(0)
	if !ok {
		return
	}
	value := radiusOf(e)
	ctx.Sketch.AddConstraint(sketch.Radius{
		Entity: e.ID,
		Value:  value,
		Style:  sketch.DimensionStyle{ParallelOffset: click.Distance(center) - value},
	})
	ctx.RequestSolve()
}

func radiusOf(e *sketch.Entity) float64 {
	switch g := e.Geometry.(type) {
	case *sketch.CircleGeometry:
		return g.Radius
	case *sketch.ArcGeometry:
		return g.Radius
	}
	return 0
}

package editor

import (
	"math"

	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

// degenerateDirection is the length floor for pattern direction vectors
const degenerateDirection = 1e-3

// LinearPatternTool duplicates the selected entities along a clicked
// direction line. Copies are one-shot translated geometry, not
// solver-maintained positionally; only size equality is constrained.
type LinearPatternTool struct {
	Count   int
	Spacing float64
	Flip    bool
}

func (t *LinearPatternTool) Name() ToolName { return ToolLinearPattern }

func (t *LinearPatternTool) MouseDown(ctx *Context, pos geometry.Vector2) {
	hit := ResolveCandidate(ctx.Sketch, pos, ctx.Snap, ctx.Config.Snap.Radius)
	if hit == nil || hit.Kind != sketch.CandidateEntity {
		return
	}
	created := LinearPattern(ctx.Sketch, selectedEntityIDs(ctx.Selection), hit.Entity,
		t.Count, t.Spacing, t.Flip)
	if len(created) == 0 {
		return
	}
	ctx.Sketch.Record("linear_pattern", created...)
	ctx.RequestSolve()
}

func (t *LinearPatternTool) MouseMove(*Context, geometry.Vector2) {}
func (t *LinearPatternTool) MouseUp(*Context, geometry.Vector2)   {}
func (t *LinearPatternTool) Cancel(*Context)                      {}

// LinearPattern creates count-1 copies of each listed entity, translated
// along the direction line's unit vector at the given spacing. A missing
// or near-zero direction line is a silent no-op.
func LinearPattern(s *sketch.Sketch, ids []sketch.EntityID, directionID sketch.EntityID,
	count int, spacing float64, flip bool) []sketch.EntityID {

	dirEntity := s.Entity(directionID)
	if dirEntity == nil || count < 2 {
		return nil
	}
	line, ok := dirEntity.Line()
	if !ok || line.Direction().Length() < degenerateDirection {
		return nil
	}

	unit := line.Direction().Normalize()
	if flip {
		unit = unit.Mul(-1)
	}

	var created []sketch.EntityID
	for _, id := range ids {
		original := s.Entity(id)
		if original == nil {
			continue
		}
		for k := 1; k < count; k++ {
			offset := unit.Mul(spacing * float64(k))
			dup := sketch.NewEntity(translateGeometry(original.Geometry, offset))
			dup.Construction = original.Construction
			s.AddEntity(dup)
			created = append(created, dup.ID)
			addSizeEqual(s, original, dup)
		}
	}
	return created
}

// CircularPatternTool duplicates the selected entities rotated about a
// clicked center: the origin, a point, or a circle/arc center
type CircularPatternTool struct {
	Count      int
	TotalAngle float64 // degrees
	Reverse    bool
}

func (t *CircularPatternTool) Name() ToolName { return ToolCircularPattern }

func (t *CircularPatternTool) MouseDown(ctx *Context, pos geometry.Vector2) {
	hit := ResolveCandidate(ctx.Sketch, pos, ctx.Snap, ctx.Config.Snap.Radius)
	if hit == nil {
		return
	}
	center, ok := patternCenter(ctx.Sketch, hit)
	if !ok {
		return
	}
	created := CircularPattern(ctx.Sketch, selectedEntityIDs(ctx.Selection), center,
		t.Count, t.TotalAngle, t.Reverse)
	if len(created) == 0 {
		return
	}
	ctx.Sketch.Record("circular_pattern", created...)
	ctx.RequestSolve()
}

func (t *CircularPatternTool) MouseMove(*Context, geometry.Vector2) {}
func (t *CircularPatternTool) MouseUp(*Context, geometry.Vector2)   {}
func (t *CircularPatternTool) Cancel(*Context)                      {}

// patternCenter resolves a selection candidate into a rotation center
func patternCenter(s *sketch.Sketch, hit *sketch.SelectionCandidate) (geometry.Vector2, bool) {
	switch hit.Kind {
	case sketch.CandidateOrigin:
		return geometry.Vector2{}, true
	case sketch.CandidateEntityPoint:
		return hit.Resolve(s)
	case sketch.CandidateEntity:
		e := s.Entity(hit.Entity)
		if e == nil {
			return geometry.Vector2{}, false
		}
		switch g := e.Geometry.(type) {
		case *sketch.PointGeometry:
			return g.Position, true
		case *sketch.CircleGeometry:
			return g.Center, true
		case *sketch.ArcGeometry:
			return g.Center, true
		}
	}
	return geometry.Vector2{}, false
}

// CircularPattern creates count-1 copies of each listed entity, rotated
// about center in increments of totalAngle/count degrees
func CircularPattern(s *sketch.Sketch, ids []sketch.EntityID, center geometry.Vector2,
	count int, totalAngle float64, reverse bool) []sketch.EntityID {

	if count < 2 || totalAngle == 0 {
		return nil
	}
	step := totalAngle / float64(count) * math.Pi / 180
	if reverse {
		step = -step
	}

	var created []sketch.EntityID
	for _, id := range ids {
		original := s.Entity(id)
		if original == nil {
			continue
		}
		for k := 1; k < count; k++ {
			dup := sketch.NewEntity(rotateGeometry(original.Geometry, center, step*float64(k)))
			dup.Construction = original.Construction
			s.AddEntity(dup)
			created = append(created, dup.ID)
			addSizeEqual(s, original, dup)
		}
	}
	return created
}

// addSizeEqual emits the Equal constraint that preserves length/radius
// between an original and its pattern copy. Points and ellipses have no
// single size to equate.
func addSizeEqual(s *sketch.Sketch, original, dup *sketch.Entity) {
	switch original.Geometry.Kind() {
	case sketch.KindLine, sketch.KindCircle, sketch.KindArc:
		s.AddConstraint(sketch.Equal{A: original.ID, B: dup.ID})
	}
}

// translateGeometry returns a copy of g shifted by offset
func translateGeometry(g sketch.Geometry, offset geometry.Vector2) sketch.Geometry {
	switch v := g.(type) {
	case *sketch.PointGeometry:
		return &sketch.PointGeometry{Position: v.Position.Add(offset)}
	case *sketch.LineGeometry:
		return &sketch.LineGeometry{Start: v.Start.Add(offset), End: v.End.Add(offset)}
	case *sketch.CircleGeometry:
		return &sketch.CircleGeometry{Center: v.Center.Add(offset), Radius: v.Radius}
	case *sketch.ArcGeometry:
		c := *v
		c.Center = v.Center.Add(offset)
		return &c
	case *sketch.EllipseGeometry:
		c := *v
		c.Center = v.Center.Add(offset)
		return &c
	}
	return g.Clone()
}

// rotateGeometry returns a copy of g rotated by angle radians about center
func rotateGeometry(g sketch.Geometry, center geometry.Vector2, angle float64) sketch.Geometry {
	switch v := g.(type) {
	case *sketch.PointGeometry:
		return &sketch.PointGeometry{Position: v.Position.RotateAround(center, angle)}
	case *sketch.LineGeometry:
		return &sketch.LineGeometry{
			Start: v.Start.RotateAround(center, angle),
			End:   v.End.RotateAround(center, angle),
		}
	case *sketch.CircleGeometry:
		return &sketch.CircleGeometry{Center: v.Center.RotateAround(center, angle), Radius: v.Radius}
	case *sketch.ArcGeometry:
		return &sketch.ArcGeometry{
			Center:     v.Center.RotateAround(center, angle),
			Radius:     v.Radius,
			StartAngle: v.StartAngle + angle,
			EndAngle:   v.EndAngle + angle,
		}
	case *sketch.EllipseGeometry:
		c := *v
		c.Center = v.Center.RotateAround(center, angle)
		c.Rotation += angle
		return &c
	}
	return g.Clone()
}

package editor

import (
	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

// MirrorTool reflects the selected entities across a clicked axis line.
// Selection happens beforehand with the select tool; the click picks the
// axis.
type MirrorTool struct{}

func (t *MirrorTool) Name() ToolName { return ToolMirror }

func (t *MirrorTool) MouseDown(ctx *Context, pos geometry.Vector2) {
	hit := ResolveCandidate(ctx.Sketch, pos, ctx.Snap, ctx.Config.Snap.Radius)
	if hit == nil || hit.Kind != sketch.CandidateEntity {
		return
	}
	ids := selectedEntityIDs(ctx.Selection)
	created := MirrorEntities(ctx.Sketch, ids, hit.Entity)
	if len(created) == 0 {
		return
	}
	ctx.Sketch.Record("mirror", created...)
	ctx.RequestSolve()
}

func (t *MirrorTool) MouseMove(*Context, geometry.Vector2) {}
func (t *MirrorTool) MouseUp(*Context, geometry.Vector2)   {}
func (t *MirrorTool) Cancel(*Context)                      {}

func selectedEntityIDs(selection []sketch.SelectionCandidate) []sketch.EntityID {
	var ids []sketch.EntityID
	for _, c := range selection {
		if c.Kind == sketch.CandidateEntity && c.Entity != "" {
			ids = append(ids, c.Entity)
		}
	}
	return ids
}

// MirrorEntities reflects each listed entity across the axis line and
// emits the symmetry constraints that preserve the relationship under
// solver perturbation: Symmetric for every defining point, plus Equal
// for circles. Returns the ids of the mirrored entities; a missing or
// degenerate axis is a silent no-op.
func MirrorEntities(s *sketch.Sketch, ids []sketch.EntityID, axisID sketch.EntityID) []sketch.EntityID {
	axisEntity := s.Entity(axisID)
	if axisEntity == nil {
		return nil
	}
	axis, ok := axisEntity.Line()
	if !ok || axis.Direction().Length() < degenerateAxis {
		return nil
	}

	var created []sketch.EntityID
	for _, id := range ids {
		if id == axisID {
			continue
		}
		original := s.Entity(id)
		if original == nil {
			continue
		}

		mirrored := sketch.NewEntity(mirrorGeometry(original.Geometry, axis.Start, axis.End))
		mirrored.Construction = original.Construction
		s.AddEntity(mirrored)
		created = append(created, mirrored.ID)

		for i := 0; i < original.Geometry.PointCount(); i++ {
			s.AddConstraint(sketch.Symmetric{
				A:    sketch.PointOn(original.ID, i),
				B:    sketch.PointOn(mirrored.ID, mirrorPointIndex(original.Geometry, i)),
				Axis: axisID,
			})
		}
		if original.Geometry.Kind() == sketch.KindCircle {
			s.AddConstraint(sketch.Equal{A: original.ID, B: mirrored.ID})
		}
	}
	return created
}

// mirrorGeometry reflects a geometry variant across the line l1-l2
func mirrorGeometry(g sketch.Geometry, l1, l2 geometry.Vector2) sketch.Geometry {
	reflect := func(p geometry.Vector2) geometry.Vector2 {
		return geometry.ReflectAcrossLine(p, l1, l2)
	}

	switch v := g.(type) {
	case *sketch.PointGeometry:
		return &sketch.PointGeometry{Position: reflect(v.Position)}
	case *sketch.LineGeometry:
		return &sketch.LineGeometry{Start: reflect(v.Start), End: reflect(v.End)}
	case *sketch.CircleGeometry:
		return &sketch.CircleGeometry{Center: reflect(v.Center), Radius: v.Radius}
	case *sketch.ArcGeometry:
		// reflection flips orientation: the mirrored arc runs from the
		// reflected end point to the reflected start point
		center := reflect(v.Center)
		return &sketch.ArcGeometry{
			Center:     center,
			Radius:     v.Radius,
			StartAngle: reflect(v.EndPoint()).Sub(center).Angle(),
			EndAngle:   reflect(v.StartPoint()).Sub(center).Angle(),
		}
	case *sketch.EllipseGeometry:
		axisAngle := l2.Sub(l1).Angle()
		return &sketch.EllipseGeometry{
			Center:    reflect(v.Center),
			SemiMajor: v.SemiMajor,
			SemiMinor: v.SemiMinor,
			Rotation:  2*axisAngle - v.Rotation,
		}
	}
	return g.Clone()
}

// mirrorPointIndex maps a defining-point index of the original onto the
// corresponding index of the mirrored entity. Arc endpoints swap because
// reflection reverses the sweep.
func mirrorPointIndex(g sketch.Geometry, index int) int {
	if g.Kind() == sketch.KindArc {
		switch index {
		case 1:
			return 2
		case 2:
			return 1
		}
	}
	return index
}

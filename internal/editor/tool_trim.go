package editor

import (
	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

// extremityTolerance is how close a trim bound must be to t=0 or t=1 to
// count as the line's extremity
const extremityTolerance = 0.001

// TrimTool removes the clicked span of a line between its neighboring
// intersections
type TrimTool struct{}

func (t *TrimTool) Name() ToolName { return ToolTrim }

func (t *TrimTool) MouseDown(ctx *Context, pos geometry.Vector2) {
	hit := HitTest(ctx.Sketch, pos)
	if hit == nil || hit.Kind != sketch.CandidateEntity {
		return
	}
	if TrimLine(ctx.Sketch, hit.Entity, pos) {
		ctx.RequestSolve()
	}
}

func (t *TrimTool) MouseMove(*Context, geometry.Vector2) {}
func (t *TrimTool) MouseUp(*Context, geometry.Vector2)   {}
func (t *TrimTool) Cancel(*Context)                      {}

// TrimLine removes the span of the target line around the click point,
// bounded by the nearest intersections with other lines. Construction
// and preview lines do not cut. With no intersections at all the tool
// takes no action. Returns whether the sketch was modified.
func TrimLine(s *sketch.Sketch, lineID sketch.EntityID, click geometry.Vector2) bool {
	target := s.Entity(lineID)
	if target == nil {
		return false
	}
	line, ok := target.Line()
	if !ok {
		return false
	}

	var cuts []float64
	for _, other := range s.Entities {
		if other.ID == lineID || other.Construction || other.Preview {
			continue
		}
		og, ok := other.Line()
		if !ok {
			continue
		}
		if t, _, ok := geometry.SegmentIntersection(line.Start, line.End, og.Start, og.End); ok {
			cuts = append(cuts, t)
		}
	}
	if len(cuts) == 0 {
		return false
	}

	clickT := geometry.ProjectParam(line.Start, line.End, click)

	leftT, rightT := 0.0, 1.0
	for _, t := range cuts {
		if t < clickT && t > leftT {
			leftT = t
		}
		if t > clickT && t < rightT {
			rightT = t
		}
	}

	leftInterior := leftT > extremityTolerance
	rightInterior := rightT < 1-extremityTolerance

	start, end := line.Start, line.End
	switch {
	case leftInterior && rightInterior:
		// split: shorten the original, create a fresh line for the rest
		line.End = start.Lerp(end, leftT)
		rest := sketch.NewEntity(&sketch.LineGeometry{
			Start: start.Lerp(end, rightT),
			End:   end,
		})
		rest.Construction = target.Construction
		s.AddEntity(rest)
		s.Record("trim_split", lineID, rest.ID)
	case leftInterior:
		line.End = start.Lerp(end, leftT)
		s.Record("trim", lineID)
	case rightInterior:
		line.Start = start.Lerp(end, rightT)
		s.Record("trim", lineID)
	default:
		// the clicked span runs the whole line
		s.RemoveEntity(lineID)
		s.RemoveConstraintsReferencing(lineID)
		s.Record("trim_delete", lineID)
	}
	return true
}

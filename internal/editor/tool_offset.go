package editor

import (
	"math"

	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

// chainTolerance is the distance below which two original endpoints are
// considered shared, chaining their offsets together
const chainTolerance = 1e-6

// OffsetTool creates parallel copies of the selected lines at a signed
// distance. The click commits the operation; Flip negates the side.
type OffsetTool struct {
	Distance float64
	Flip     bool
}

func (t *OffsetTool) Name() ToolName { return ToolOffset }

func (t *OffsetTool) MouseDown(ctx *Context, _ geometry.Vector2) {
	created := OffsetLines(ctx.Sketch, selectedEntityIDs(ctx.Selection), t.Distance, t.Flip)
	if len(created) == 0 {
		return
	}
	ctx.Sketch.Record("offset", created...)
	ctx.RequestSolve()
}

func (t *OffsetTool) MouseMove(*Context, geometry.Vector2) {}
func (t *OffsetTool) MouseUp(*Context, geometry.Vector2)   {}
func (t *OffsetTool) Cancel(*Context)                      {}

// OffsetLines creates one parallel line per selected line at the signed
// distance (flip negates the sign), constrained to stay parallel at that
// distance. Offsets of lines whose originals shared an endpoint are
// chained with coincident constraints. Degenerate lines are skipped.
func OffsetLines(s *sketch.Sketch, ids []sketch.EntityID, distance float64, flip bool) []sketch.EntityID {
	if distance == 0 {
		return nil
	}
	d := distance
	if flip {
		d = -d
	}

	type offsetPair struct {
		original *sketch.LineGeometry
		offset   sketch.EntityID
	}
	var pairs []offsetPair
	var created []sketch.EntityID

	for _, id := range ids {
		e := s.Entity(id)
		if e == nil {
			continue
		}
		line, ok := e.Line()
		if !ok || line.Direction().Length() < degenerateAxis {
			continue
		}

		n := line.Direction().Perp().Normalize()
		off := sketch.NewEntity(&sketch.LineGeometry{
			Start: line.Start.Add(n.Mul(d)),
			End:   line.End.Add(n.Mul(d)),
		})
		off.Construction = e.Construction
		s.AddEntity(off)
		created = append(created, off.ID)
		pairs = append(pairs, offsetPair{original: line, offset: off.ID})

		s.AddConstraint(sketch.Parallel{A: id, B: off.ID})
		s.AddConstraint(sketch.DistancePointLine{
			Point: sketch.PointOn(off.ID, 0),
			Line:  id,
			Value: math.Abs(distance),
		})
	}

	// chain offsets whose originals met at a shared endpoint
	for i := 0; i < len(pairs); i++ {
		for j := i + 1; j < len(pairs); j++ {
			for ei := 0; ei < 2; ei++ {
				for ej := 0; ej < 2; ej++ {
					pi, _ := pairs[i].original.DefiningPoint(ei)
					pj, _ := pairs[j].original.DefiningPoint(ej)
					if pi.Distance(pj) < chainTolerance {
						s.AddConstraint(sketch.Coincident{
							A: sketch.PointOn(pairs[i].offset, ei),
							B: sketch.PointOn(pairs[j].offset, ej),
						})
					}
				}
			}
		}
	}
	return created
}

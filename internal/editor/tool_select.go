package editor

import (
	"math"

	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

// Annotation text bounding box half-extents, matching what the renderer
// draws
const (
	annotationHalfWidth  = 0.6
	annotationHalfHeight = 0.3
)

// SelectTool resolves clicks into selection candidates. Clicks on a
// dimension annotation open its value editor instead of selecting.
type SelectTool struct{}

func (t *SelectTool) Name() ToolName { return ToolSelect }

func (t *SelectTool) MouseDown(ctx *Context, pos geometry.Vector2) {
	if entryID, ok := annotationAt(ctx.Sketch, pos); ok {
		ctx.OpenDimensionEdit(entryID)
		return
	}

	hit := ResolveCandidate(ctx.Sketch, pos, ctx.Snap, ctx.Config.Snap.Radius)
	if hit == nil {
		ctx.ClearSelection()
		return
	}
	ctx.ToggleSelect(*hit)
}

func (t *SelectTool) MouseMove(*Context, geometry.Vector2) {}
func (t *SelectTool) MouseUp(*Context, geometry.Vector2)   {}
func (t *SelectTool) Cancel(*Context)                      {}

// annotationAt finds the distance-style dimension whose rendered text
// box contains the click, reconstructing the text position with the same
// midpoint/perpendicular-offset formula the renderer uses
func annotationAt(s *sketch.Sketch, click geometry.Vector2) (string, bool) {
	for _, entry := range s.Constraints {
		a, b, style, ok := distanceConstraintPoints(entry.Constraint)
		if !ok {
			continue
		}
		p1, ok1 := a.Resolve(s)
		p2, ok2 := b.Resolve(s)
		if !ok1 || !ok2 {
			continue
		}
		text := AnnotationPosition(p1, p2, style)
		if math.Abs(click.X-text.X) <= annotationHalfWidth &&
			math.Abs(click.Y-text.Y) <= annotationHalfHeight {
			return entry.ID, true
		}
	}
	return "", false
}

func distanceConstraintPoints(c sketch.Constraint) (a, b sketch.ConstraintPoint, style sketch.DimensionStyle, ok bool) {
	switch v := c.(type) {
	case sketch.Distance:
		return v.A, v.B, v.Style, true
	case sketch.HorizontalDistance:
		return v.A, v.B, v.Style, true
	case sketch.VerticalDistance:
		return v.A, v.B, v.Style, true
	}
	return a, b, style, false
}

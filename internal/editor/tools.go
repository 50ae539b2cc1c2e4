package editor

import (
	"sketchcad/internal/config"
	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

// ToolName identifies an interaction mode
type ToolName string

const (
	ToolSelect          ToolName = "select"
	ToolPoint           ToolName = "point"
	ToolLine            ToolName = "line"
	ToolCircle          ToolName = "circle"
	ToolArc             ToolName = "arc"
	ToolEllipse         ToolName = "ellipse"
	ToolRectangle       ToolName = "rectangle"
	ToolSlot            ToolName = "slot"
	ToolPolygon         ToolName = "polygon"
	ToolMirror          ToolName = "mirror"
	ToolLinearPattern   ToolName = "linear_pattern"
	ToolCircularPattern ToolName = "circular_pattern"
	ToolOffset          ToolName = "offset"
	ToolTrim            ToolName = "trim"
	ToolDimension       ToolName = "dimension"
	ToolMeasure         ToolName = "measure"
)

// Tool is a stateful handler for one interaction mode. All positions are
// plane-local coordinates that have already passed through snapping.
// Exactly one tool is active at a time; Cancel must discard any
// in-progress preview entities and reset tool-local state.
type Tool interface {
	Name() ToolName
	MouseDown(ctx *Context, pos geometry.Vector2)
	MouseMove(ctx *Context, pos geometry.Vector2)
	MouseUp(ctx *Context, pos geometry.Vector2)
	Cancel(ctx *Context)
}

// Context is the per-event view a tool operates on
type Context struct {
	Sketch    *sketch.Sketch
	Snap      *sketch.SnapPoint // snap backing the current pointer position, nil when none
	Config    config.Config
	Selection []sketch.SelectionCandidate

	solve        func()
	measure      func(Measurement)
	dimEdit      func(entryID string)
	toggleSelect func(sketch.SelectionCandidate)
	clearSelect  func()
}

// RequestSolve asks the session to dispatch the sketch to the external
// solver. Fire-and-forget; the solved snapshot arrives asynchronously.
func (ctx *Context) RequestSolve() {
	if ctx.solve != nil {
		ctx.solve()
	}
}

// RecordMeasurement appends a measurement to the session-local list
func (ctx *Context) RecordMeasurement(m Measurement) {
	if ctx.measure != nil {
		ctx.measure(m)
	}
}

// OpenDimensionEdit asks the session to open the value editor for a
// dimensional constraint entry
func (ctx *Context) OpenDimensionEdit(entryID string) {
	if ctx.dimEdit != nil {
		ctx.dimEdit(entryID)
	}
}

// ToggleSelect adds the candidate to the session selection, or removes
// it when already selected
func (ctx *Context) ToggleSelect(c sketch.SelectionCandidate) {
	if ctx.toggleSelect != nil {
		ctx.toggleSelect(c)
	}
}

// ClearSelection empties the session selection
func (ctx *Context) ClearSelection() {
	if ctx.clearSelect != nil {
		ctx.clearSelect()
	}
}

// defaultTools builds the standard tool registry
func defaultTools() map[ToolName]Tool {
	tools := []Tool{
		&SelectTool{},
		&PointTool{},
		&LineTool{},
		&CircleTool{},
		&ArcTool{},
		&EllipseTool{},
		&RectangleTool{},
		&SlotTool{},
		&PolygonTool{},
		&MirrorTool{},
		&LinearPatternTool{Count: 2, Spacing: 1},
		&CircularPatternTool{Count: 2, TotalAngle: 360},
		&OffsetTool{Distance: 1},
		&TrimTool{},
		&DimensionTool{},
		&MeasureTool{},
	}

	registry := make(map[ToolName]Tool, len(tools))
	for _, t := range tools {
		registry[t.Name()] = t
	}
	return registry
}

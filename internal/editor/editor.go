package editor

import (
	"sketchcad/internal/config"
	"sketchcad/internal/solver"
	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

// SolveRequester dispatches a sketch snapshot to the external solver.
// Requests are fire-and-forget; solved snapshots come back through
// Editor.ApplySolved.
type SolveRequester interface {
	Request(s *sketch.Sketch) error
}

// Editor owns one editing session: the working sketch, the last
// committed snapshot, the tool registry, and the session-local
// measurement list. All event handling is synchronous; the sketch is
// never observed partially updated.
type Editor struct {
	cfg config.Config

	sketch    *sketch.Sketch
	committed *sketch.Sketch

	tools  map[ToolName]Tool
	active ToolName

	selection    []sketch.SelectionCandidate
	measurements []Measurement

	solver     SolveRequester
	lastReport *solver.Report

	// entry id of a dimension whose value editor should open, set by
	// the select tool and consumed by the surrounding application
	pendingDimensionEdit string
}

// New creates an editor for the given sketch
func New(s *sketch.Sketch, cfg config.Config) *Editor {
	return &Editor{
		cfg:       cfg,
		sketch:    s,
		committed: s.Clone(),
		tools:     defaultTools(),
		active:    ToolSelect,
	}
}

// SetSolver attaches the external solver transport
func (e *Editor) SetSolver(s SolveRequester) {
	e.solver = s
}

// Sketch returns the working sketch
func (e *Editor) Sketch() *sketch.Sketch {
	return e.sketch
}

// ActiveTool returns the name of the active tool
func (e *Editor) ActiveTool() ToolName {
	return e.active
}

// Tool returns the registered tool with the given name, or nil
func (e *Editor) Tool(name ToolName) Tool {
	return e.tools[name]
}

// ActivateTool switches the active tool. The outgoing tool is cancelled
// first, and any preview entities it may have leaked are swept.
func (e *Editor) ActivateTool(name ToolName) {
	if _, ok := e.tools[name]; !ok {
		return
	}
	if t := e.tools[e.active]; t != nil {
		t.Cancel(e.context(nil))
	}
	e.sketch.RemovePreviews()
	e.active = name
}

// CancelActive cancels the in-progress interaction of the active tool
// (Escape). Synchronous: the sketch holds no preview entities afterward.
func (e *Editor) CancelActive() {
	if t := e.tools[e.active]; t != nil {
		t.Cancel(e.context(nil))
	}
	e.sketch.RemovePreviews()
}

// MouseDown routes a pointer press to the active tool
func (e *Editor) MouseDown(pos geometry.Vector2, snap *sketch.SnapPoint) {
	pos = applySnap(pos, snap)
	if t := e.tools[e.active]; t != nil {
		t.MouseDown(e.context(snap), pos)
	}
}

// MouseMove routes a pointer move to the active tool
func (e *Editor) MouseMove(pos geometry.Vector2, snap *sketch.SnapPoint) {
	pos = applySnap(pos, snap)
	if t := e.tools[e.active]; t != nil {
		t.MouseMove(e.context(snap), pos)
	}
}

// MouseUp routes a pointer release to the active tool
func (e *Editor) MouseUp(pos geometry.Vector2, snap *sketch.SnapPoint) {
	pos = applySnap(pos, snap)
	if t := e.tools[e.active]; t != nil {
		t.MouseUp(e.context(snap), pos)
	}
}

func applySnap(pos geometry.Vector2, snap *sketch.SnapPoint) geometry.Vector2 {
	if snap != nil {
		return snap.Position
	}
	return pos
}

func (e *Editor) context(snap *sketch.SnapPoint) *Context {
	return &Context{
		Sketch:       e.sketch,
		Snap:         snap,
		Config:       e.cfg,
		Selection:    e.selection,
		solve:        e.requestSolve,
		measure:      func(m Measurement) { e.measurements = append(e.measurements, m) },
		dimEdit:      func(entryID string) { e.pendingDimensionEdit = entryID },
		toggleSelect: e.toggleSelect,
		clearSelect:  func() { e.selection = nil },
	}
}

func (e *Editor) toggleSelect(c sketch.SelectionCandidate) {
	for i, existing := range e.selection {
		if sameCandidate(existing, c) {
			e.selection = append(e.selection[:i], e.selection[i+1:]...)
			return
		}
	}
	e.selection = append(e.selection, c)
}

// sameCandidate compares selection identity. Floating candidates such as
// intersection snaps carry no entity, so the cached position is part of
// their identity.
func sameCandidate(a, b sketch.SelectionCandidate) bool {
	if a.Kind != b.Kind || a.Entity != b.Entity || a.PointIndex != b.PointIndex {
		return false
	}
	if a.Position == nil || b.Position == nil {
		return (a.Position == nil) == (b.Position == nil)
	}
	return *a.Position == *b.Position
}

// requestSolve dispatches the current sketch, minus preview entities, to
// the solver. Solver failure is display-only and never blocks editing.
func (e *Editor) requestSolve() {
	if e.solver == nil {
		return
	}
	snapshot := e.sketch.Clone()
	snapshot.RemovePreviews()
	if err := e.solver.Request(snapshot); err != nil {
		logger().Warn("solver dispatch failed", "error", err)
	}
}

// ApplySolved replaces the working sketch with a solved snapshot in one
// assignment. Only the latest snapshot is authoritative; there is no
// merge or queueing.
func (e *Editor) ApplySolved(s *sketch.Sketch, report solver.Report) {
	e.sketch = s
	e.lastReport = &report
}

// LastReport returns the most recent solve report, or nil
func (e *Editor) LastReport() *solver.Report {
	return e.lastReport
}

// Commit promotes the working sketch to the committed snapshot
func (e *Editor) Commit() {
	e.CancelActive()
	e.committed = e.sketch.Clone()
}

// CancelSession discards all edits since the last commit
func (e *Editor) CancelSession() {
	e.CancelActive()
	e.sketch = e.committed.Clone()
}

// Selection returns the current selection candidates
func (e *Editor) Selection() []sketch.SelectionCandidate {
	return e.selection
}

// ClearSelection empties the selection
func (e *Editor) ClearSelection() {
	e.selection = nil
}

// SelectedEntities returns the ids of whole-entity selection candidates
func (e *Editor) SelectedEntities() []sketch.EntityID {
	var ids []sketch.EntityID
	for _, c := range e.selection {
		if c.Kind == sketch.CandidateEntity {
			ids = append(ids, c.Entity)
		}
	}
	return ids
}

// Measurements returns the session-local measurement list
func (e *Editor) Measurements() []Measurement {
	return e.measurements
}

// ClearMeasurements empties the measurement list. Measurements live
// outside the constraint model and are cleared independently of it.
func (e *Editor) ClearMeasurements() {
	e.measurements = nil
}

// PendingDimensionEdit returns and clears the entry id of a dimension
// the user clicked for editing, if any
func (e *Editor) PendingDimensionEdit() (string, bool) {
	id := e.pendingDimensionEdit
	e.pendingDimensionEdit = ""
	return id, id != ""
}

// SetDimensionValue updates the value of a dimensional constraint entry
// and requests a re-solve. Unknown entries or non-dimensional
// constraints are ignored.
func (e *Editor) SetDimensionValue(entryID string, value float64) {
	for i, entry := range e.sketch.Constraints {
		if entry.ID != entryID {
			continue
		}
		switch c := entry.Constraint.(type) {
		case sketch.Distance:
			c.Value = value
			e.sketch.Constraints[i].Constraint = c
		case sketch.HorizontalDistance:
			c.Value = value
			e.sketch.Constraints[i].Constraint = c
		case sketch.VerticalDistance:
			c.Value = value
			e.sketch.Constraints[i].Constraint = c
		case sketch.Angle:
			c.Value = value
			e.sketch.Constraints[i].Constraint = c
		case sketch.Radius:
			c.Value = value
			e.sketch.Constraints[i].Constraint = c
		case sketch.DistancePointLine:
			c.Value = value
			e.sketch.Constraints[i].Constraint = c
		default:
			return
		}
		e.requestSolve()
		return
	}
}

// DeleteSelected removes the selected whole entities and every
// constraint referencing them
func (e *Editor) DeleteSelected() {
	ids := e.SelectedEntities()
	if len(ids) == 0 {
		return
	}
	for _, id := range ids {
		if e.sketch.RemoveEntity(id) {
			e.sketch.RemoveConstraintsReferencing(id)
		}
	}
	e.sketch.Record("delete", ids...)
	e.selection = nil
	e.requestSolve()
}

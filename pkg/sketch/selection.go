package sketch

import "sketchcad/pkg/geometry"

// CandidateKind identifies what a selection candidate refers to
type CandidateKind string

const (
	CandidateOrigin      CandidateKind = "origin"
	CandidateEntityPoint CandidateKind = "entity_point"
	CandidateEntity      CandidateKind = "entity"
)

// SelectionCandidate is the resolved semantic target of a click: the
// sketch origin, a specific defining point of an entity, or a whole
// entity. Position caches a 2D location for candidates that cannot be
// cheaply re-resolved, such as floating snap points.
type SelectionCandidate struct {
	Kind       CandidateKind
	Entity     EntityID
	PointIndex int
	Position   *geometry.Vector2
}

// OriginCandidate returns a candidate for the sketch origin
func OriginCandidate() SelectionCandidate {
	return SelectionCandidate{Kind: CandidateOrigin}
}

// PointCandidate returns a candidate for a defining point of an entity
func PointCandidate(id EntityID, index int) SelectionCandidate {
	return SelectionCandidate{Kind: CandidateEntityPoint, Entity: id, PointIndex: index}
}

// EntityCandidate returns a candidate for a whole entity
func EntityCandidate(id EntityID) SelectionCandidate {
	return SelectionCandidate{Kind: CandidateEntity, Entity: id}
}

// Resolve returns the candidate's current position. Whole-entity
// candidates resolve only through a cached position.
func (c SelectionCandidate) Resolve(s *Sketch) (geometry.Vector2, bool) {
	switch c.Kind {
	case CandidateOrigin:
		return geometry.Vector2{}, true
	case CandidateEntityPoint:
		return ConstraintPoint{Entity: c.Entity, Index: c.PointIndex}.Resolve(s)
	}
	if c.Position != nil {
		return *c.Position, true
	}
	return geometry.Vector2{}, false
}

// ConstraintPoint converts the candidate into a constraint point
// reference. Whole-entity candidates have no point form.
func (c SelectionCandidate) ConstraintPoint() (ConstraintPoint, bool) {
	switch c.Kind {
	case CandidateOrigin:
		return OriginPoint(), true
	case CandidateEntityPoint:
		return PointOn(c.Entity, c.PointIndex), true
	}
	return ConstraintPoint{}, false
}

// SnapKind identifies what geometric feature a snap point resolved to
type SnapKind string

const (
	SnapEndpoint     SnapKind = "endpoint"
	SnapMidpoint     SnapKind = "midpoint"
	SnapCenter       SnapKind = "center"
	SnapIntersection SnapKind = "intersection"
	SnapOrigin       SnapKind = "origin"
	SnapGrid         SnapKind = "grid"
)

// SnapPoint is an externally resolved snap result: a position, the kind
// of feature it snapped to, the owning entity when applicable, and the
// distance from the raw cursor. This engine consumes snap points, it
// never produces them.
type SnapPoint struct {
	Position geometry.Vector2 `json:"position"`
	Kind     SnapKind         `json:"kind"`
	Entity   EntityID         `json:"entity,omitempty"`
	Distance float64          `json:"distance"`
}

// Hard reports whether the snap locks onto actual geometry; grid snaps
// do not
func (sp SnapPoint) Hard() bool {
	return sp.Kind != SnapGrid
}

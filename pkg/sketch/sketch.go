package sketch

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"sketchcad/pkg/geometry"
)

// Plane is the reference frame a sketch is drawn on: an origin plus an
// orthonormal X/Y/normal triple in world space
type Plane struct {
	Origin geometry.Vector3 `json:"origin"`
	XAxis  geometry.Vector3 `json:"xAxis"`
	YAxis  geometry.Vector3 `json:"yAxis"`
	Normal geometry.Vector3 `json:"normal"`
}

// XYPlane returns the default world XY plane
func XYPlane() Plane {
	return Plane{
		XAxis:  geometry.NewVector3(1, 0, 0),
		YAxis:  geometry.NewVector3(0, 1, 0),
		Normal: geometry.NewVector3(0, 0, 1),
	}
}

// ToWorld maps plane-local (u,v) coordinates to world space
func (p Plane) ToWorld(uv geometry.Vector2) geometry.Vector3 {
	return p.Origin.Add(p.XAxis.Mul(uv.X)).Add(p.YAxis.Mul(uv.Y))
}

// ToPlane projects a world-space point into plane-local (u,v) coordinates
func (p Plane) ToPlane(w geometry.Vector3) geometry.Vector2 {
	d := w.Sub(p.Origin)
	return geometry.NewVector2(d.Dot(p.XAxis), d.Dot(p.YAxis))
}

// Operation is one entry of the append-only sketch history, kept for
// traceability and replay, not undo
type Operation struct {
	Kind     string     `json:"kind"`
	Entities []EntityID `json:"entities,omitempty"`
	At       time.Time  `json:"at"`
}

// Sketch is the aggregate root: a reference plane, ordered entities,
// ordered constraint entries, and the operation history
type Sketch struct {
	Plane       Plane
	Entities    []*Entity
	Constraints []ConstraintEntry
	History     []Operation
}

// NewSketch creates an empty sketch on the given plane
func NewSketch(plane Plane) *Sketch {
	return &Sketch{Plane: plane}
}

// Entity returns the entity with the given id, or nil
func (s *Sketch) Entity(id EntityID) *Entity {
	for _, e := range s.Entities {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// AddEntity appends an entity to the sketch
func (s *Sketch) AddEntity(e *Entity) {
	s.Entities = append(s.Entities, e)
}

// RemoveEntity deletes the entity with the given id.
// Returns false when no such entity exists.
func (s *Sketch) RemoveEntity(id EntityID) bool {
	for i, e := range s.Entities {
		if e.ID == id {
			s.Entities = append(s.Entities[:i], s.Entities[i+1:]...)
			return true
		}
	}
	return false
}

// RemovePreviews deletes every preview entity and returns how many were
// removed. Tool cancellation relies on this sweep even when a tool lost
// its own references.
func (s *Sketch) RemovePreviews() int {
	kept := s.Entities[:0]
	removed := 0
	for _, e := range s.Entities {
		if e.Preview {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.Entities = kept
	return removed
}

// AddConstraint wraps a constraint in a new entry and appends it,
// returning the entry id
func (s *Sketch) AddConstraint(c Constraint) string {
	id := uuid.NewString()
	s.Constraints = append(s.Constraints, ConstraintEntry{ID: id, Constraint: c})
	return id
}

// RemoveConstraint deletes the entry with the given id
func (s *Sketch) RemoveConstraint(id string) bool {
	for i, entry := range s.Constraints {
		if entry.ID == id {
			s.Constraints = append(s.Constraints[:i], s.Constraints[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveConstraintsReferencing deletes every constraint that references
// the given entity, returning how many were removed
func (s *Sketch) RemoveConstraintsReferencing(id EntityID) int {
	kept := s.Constraints[:0]
	removed := 0
	for _, entry := range s.Constraints {
		if constraintReferences(entry.Constraint, id) {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	s.Constraints = kept
	return removed
}

func constraintReferences(c Constraint, id EntityID) bool {
	for _, cp := range constraintPoints(c) {
		if !cp.Origin && cp.Entity == id {
			return true
		}
	}
	for _, e := range constraintEntities(c) {
		if e == id {
			return true
		}
	}
	return false
}

// Record appends an operation to the history
func (s *Sketch) Record(kind string, ids ...EntityID) {
	s.History = append(s.History, Operation{Kind: kind, Entities: ids, At: time.Now()})
}

// Clone returns a deep copy of the sketch
func (s *Sketch) Clone() *Sketch {
	c := &Sketch{Plane: s.Plane}
	c.Entities = make([]*Entity, len(s.Entities))
	for i, e := range s.Entities {
		c.Entities[i] = e.Clone()
	}
	c.Constraints = append([]ConstraintEntry(nil), s.Constraints...)
	c.History = append([]Operation(nil), s.History...)
	return c
}

// Validate checks the sketch invariants: entity and constraint ids are
// unique, and every constraint reference resolves to an existing entity
// and a valid point index
func (s *Sketch) Validate() error {
	seen := make(map[EntityID]bool, len(s.Entities))
	for _, e := range s.Entities {
		if seen[e.ID] {
			return fmt.Errorf("duplicate entity id %s", e.ID)
		}
		seen[e.ID] = true
	}

	entries := make(map[string]bool, len(s.Constraints))
	for _, entry := range s.Constraints {
		if entries[entry.ID] {
			return fmt.Errorf("duplicate constraint id %s", entry.ID)
		}
		entries[entry.ID] = true

		for _, cp := range constraintPoints(entry.Constraint) {
			if cp.Origin {
				continue
			}
			e := s.Entity(cp.Entity)
			if e == nil {
				return fmt.Errorf("constraint %s references missing entity %s", entry.ID, cp.Entity)
			}
			if cp.Index < 0 || cp.Index >= e.Geometry.PointCount() {
				return fmt.Errorf("constraint %s references invalid point %d of %s entity %s",
					entry.ID, cp.Index, e.Geometry.Kind(), cp.Entity)
			}
		}
		for _, id := range constraintEntities(entry.Constraint) {
			if s.Entity(id) == nil {
				return fmt.Errorf("constraint %s references missing entity %s", entry.ID, id)
			}
		}
	}
	return nil
}

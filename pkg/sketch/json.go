package sketch

import (
	"encoding/json"
	"fmt"
	"os"

	"sketchcad/pkg/geometry"
)

// Wire format: geometry and constraints are encoded as envelopes tagged
// with a "kind" field, so the solver transport and sketch files stay
// self-describing.

type geometryEnvelope struct {
	Kind       GeometryKind      `json:"kind"`
	Position   *geometry.Vector2 `json:"position,omitempty"`
	Start      *geometry.Vector2 `json:"start,omitempty"`
	End        *geometry.Vector2 `json:"end,omitempty"`
	Center     *geometry.Vector2 `json:"center,omitempty"`
	Radius     *float64          `json:"radius,omitempty"`
	StartAngle *float64          `json:"startAngle,omitempty"`
	EndAngle   *float64          `json:"endAngle,omitempty"`
	SemiMajor  *float64          `json:"semiMajor,omitempty"`
	SemiMinor  *float64          `json:"semiMinor,omitempty"`
	Rotation   *float64          `json:"rotation,omitempty"`
}

type entityEnvelope struct {
	ID           EntityID         `json:"id"`
	Construction bool             `json:"construction,omitempty"`
	Preview      bool             `json:"preview,omitempty"`
	Geometry     geometryEnvelope `json:"geometry"`
}

// MarshalJSON encodes the entity with a kind-tagged geometry envelope
func (e *Entity) MarshalJSON() ([]byte, error) {
	env := entityEnvelope{
		ID:           e.ID,
		Construction: e.Construction,
		Preview:      e.Preview,
		Geometry:     geometryEnvelope{Kind: e.Geometry.Kind()},
	}

	switch g := e.Geometry.(type) {
	case *PointGeometry:
		env.Geometry.Position = &g.Position
	case *LineGeometry:
		env.Geometry.Start = &g.Start
		env.Geometry.End = &g.End
	case *CircleGeometry:
		env.Geometry.Center = &g.Center
		env.Geometry.Radius = &g.Radius
	case *ArcGeometry:
		env.Geometry.Center = &g.Center
		env.Geometry.Radius = &g.Radius
		env.Geometry.StartAngle = &g.StartAngle
		env.Geometry.EndAngle = &g.EndAngle
	case *EllipseGeometry:
		env.Geometry.Center = &g.Center
		env.Geometry.SemiMajor = &g.SemiMajor
		env.Geometry.SemiMinor = &g.SemiMinor
		env.Geometry.Rotation = &g.Rotation
	default:
		return nil, fmt.Errorf("unknown geometry kind %T", e.Geometry)
	}

	return json.Marshal(env)
}

// UnmarshalJSON decodes a kind-tagged entity envelope
func (e *Entity) UnmarshalJSON(data []byte) error {
	var env entityEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	e.ID = env.ID
	e.Construction = env.Construction
	e.Preview = env.Preview

	g := env.Geometry
	switch g.Kind {
	case KindPoint:
		e.Geometry = &PointGeometry{Position: deref(g.Position)}
	case KindLine:
		e.Geometry = &LineGeometry{Start: deref(g.Start), End: deref(g.End)}
	case KindCircle:
		e.Geometry = &CircleGeometry{Center: deref(g.Center), Radius: derefF(g.Radius)}
	case KindArc:
		e.Geometry = &ArcGeometry{
			Center:     deref(g.Center),
			Radius:     derefF(g.Radius),
			StartAngle: derefF(g.StartAngle),
			EndAngle:   derefF(g.EndAngle),
		}
	case KindEllipse:
		e.Geometry = &EllipseGeometry{
			Center:    deref(g.Center),
			SemiMajor: derefF(g.SemiMajor),
			SemiMinor: derefF(g.SemiMinor),
			Rotation:  derefF(g.Rotation),
		}
	default:
		return fmt.Errorf("unknown geometry kind %q", g.Kind)
	}
	return nil
}

func deref(p *geometry.Vector2) geometry.Vector2 {
	if p == nil {
		return geometry.Vector2{}
	}
	return *p
}

func derefF(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

type entryEnvelope struct {
	ID         string          `json:"id"`
	Suppressed bool            `json:"suppressed,omitempty"`
	Kind       ConstraintKind  `json:"kind"`
	Constraint json.RawMessage `json:"constraint"`
}

// MarshalJSON encodes the entry with a kind tag next to the constraint
// payload
func (entry ConstraintEntry) MarshalJSON() ([]byte, error) {
	raw, err := json.Marshal(entry.Constraint)
	if err != nil {
		return nil, err
	}
	return json.Marshal(entryEnvelope{
		ID:         entry.ID,
		Suppressed: entry.Suppressed,
		Kind:       entry.Constraint.Kind(),
		Constraint: raw,
	})
}

// UnmarshalJSON decodes a kind-tagged constraint entry
func (entry *ConstraintEntry) UnmarshalJSON(data []byte) error {
	var env entryEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	entry.ID = env.ID
	entry.Suppressed = env.Suppressed

	c, err := decodeConstraint(env.Kind, env.Constraint)
	if err != nil {
		return err
	}
	entry.Constraint = c
	return nil
}

func decodeConstraint(kind ConstraintKind, raw json.RawMessage) (Constraint, error) {
	var target Constraint
	switch kind {
	case KindCoincident:
		target = &Coincident{}
	case KindHorizontal:
		target = &Horizontal{}
	case KindVertical:
		target = &Vertical{}
	case KindDistance:
		target = &Distance{}
	case KindHorizontalDistance:
		target = &HorizontalDistance{}
	case KindVerticalDistance:
		target = &VerticalDistance{}
	case KindAngle:
		target = &Angle{}
	case KindRadius:
		target = &Radius{}
	case KindParallel:
		target = &Parallel{}
	case KindPerpendicular:
		target = &Perpendicular{}
	case KindTangent:
		target = &Tangent{}
	case KindEqual:
		target = &Equal{}
	case KindSymmetric:
		target = &Symmetric{}
	case KindFix:
		target = &Fix{}
	case KindDistancePointLine:
		target = &DistancePointLine{}
	default:
		return nil, fmt.Errorf("unknown constraint kind %q", kind)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, target); err != nil {
			return nil, err
		}
	}

	// Stored by value so entries compare and copy cleanly
	switch v := target.(type) {
	case *Coincident:
		return *v, nil
	case *Horizontal:
		return *v, nil
	case *Vertical:
		return *v, nil
	case *Distance:
		return *v, nil
	case *HorizontalDistance:
		return *v, nil
	case *VerticalDistance:
		return *v, nil
	case *Angle:
		return *v, nil
	case *Radius:
		return *v, nil
	case *Parallel:
		return *v, nil
	case *Perpendicular:
		return *v, nil
	case *Tangent:
		return *v, nil
	case *Equal:
		return *v, nil
	case *Symmetric:
		return *v, nil
	case *Fix:
		return *v, nil
	case *DistancePointLine:
		return *v, nil
	}
	return nil, fmt.Errorf("unknown constraint kind %q", kind)
}

type sketchEnvelope struct {
	Plane       Plane             `json:"plane"`
	Entities    []*Entity         `json:"entities"`
	Constraints []ConstraintEntry `json:"constraints"`
	History     []Operation       `json:"history,omitempty"`
}

// MarshalJSON encodes the full sketch snapshot
func (s *Sketch) MarshalJSON() ([]byte, error) {
	return json.Marshal(sketchEnvelope{
		Plane:       s.Plane,
		Entities:    s.Entities,
		Constraints: s.Constraints,
		History:     s.History,
	})
}

// UnmarshalJSON decodes a full sketch snapshot
func (s *Sketch) UnmarshalJSON(data []byte) error {
	var env sketchEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	s.Plane = env.Plane
	s.Entities = env.Entities
	s.Constraints = env.Constraints
	s.History = env.History
	return nil
}

// Read loads a sketch from a JSON file
func Read(filename string) (*Sketch, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read sketch file: %w", err)
	}

	s := &Sketch{}
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse sketch file %s: %w", filename, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sketch file %s: %w", filename, err)
	}
	return s, nil
}

// Write saves a sketch to a JSON file
func Write(filename string, s *Sketch) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sketch: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write sketch file: %w", err)
	}
	return nil
}

package sketch

import "sketchcad/pkg/geometry"

// ConstraintKind identifies the constraint variant
type ConstraintKind string

const (
	KindCoincident         ConstraintKind = "coincident"
	KindHorizontal         ConstraintKind = "horizontal"
	KindVertical           ConstraintKind = "vertical"
	KindDistance           ConstraintKind = "distance"
	KindHorizontalDistance ConstraintKind = "horizontal_distance"
	KindVerticalDistance   ConstraintKind = "vertical_distance"
	KindAngle              ConstraintKind = "angle"
	KindRadius             ConstraintKind = "radius"
	KindParallel           ConstraintKind = "parallel"
	KindPerpendicular      ConstraintKind = "perpendicular"
	KindTangent            ConstraintKind = "tangent"
	KindEqual              ConstraintKind = "equal"
	KindSymmetric          ConstraintKind = "symmetric"
	KindFix                ConstraintKind = "fix"
	KindDistancePointLine  ConstraintKind = "distance_point_line"
)

// ConstraintPoint references a defining point of an entity, or the
// sketch origin. The origin is a literal (0,0) sentinel resolved without
// an entity lookup.
type ConstraintPoint struct {
	Entity EntityID `json:"entity,omitempty"`
	Index  int      `json:"index,omitempty"`
	Origin bool     `json:"origin,omitempty"`
}

// OriginPoint returns the origin sentinel
func OriginPoint() ConstraintPoint {
	return ConstraintPoint{Origin: true}
}

// PointOn references point index of an entity
func PointOn(id EntityID, index int) ConstraintPoint {
	return ConstraintPoint{Entity: id, Index: index}
}

// Resolve returns the current position of the referenced point
func (cp ConstraintPoint) Resolve(s *Sketch) (geometry.Vector2, bool) {
	if cp.Origin {
		return geometry.Vector2{}, true
	}
	e := s.Entity(cp.Entity)
	if e == nil {
		return geometry.Vector2{}, false
	}
	return e.Geometry.DefiningPoint(cp.Index)
}

// DimensionStyle controls how a dimensional constraint is displayed.
// ParallelOffset and PerpendicularOffset position the annotation text
// relative to the dimensioned geometry; Driven marks a reference
// dimension whose value is measured, not enforced.
type DimensionStyle struct {
	Driven              bool    `json:"driven,omitempty"`
	ParallelOffset      float64 `json:"parallelOffset,omitempty"`
	PerpendicularOffset float64 `json:"perpendicularOffset,omitempty"`
}

// Constraint is the sum type over all constraint variants
type Constraint interface {
	Kind() ConstraintKind
}

// Coincident forces two points to share a position
type Coincident struct {
	A ConstraintPoint `json:"a"`
	B ConstraintPoint `json:"b"`
}

func (Coincident) Kind() ConstraintKind { return KindCoincident }

// Horizontal forces a line parallel to the sketch X axis
type Horizontal struct {
	Line EntityID `json:"line"`
}

func (Horizontal) Kind() ConstraintKind { return KindHorizontal }

// Vertical forces a line parallel to the sketch Y axis
type Vertical struct {
	Line EntityID `json:"line"`
}

func (Vertical) Kind() ConstraintKind { return KindVertical }

// Distance dimensions the straight-line distance between two points
type Distance struct {
	A     ConstraintPoint `json:"a"`
	B     ConstraintPoint `json:"b"`
	Value float64         `json:"value"`
	Style DimensionStyle  `json:"style"`
}

func (Distance) Kind() ConstraintKind { return KindDistance }

// HorizontalDistance dimensions the X separation of two points
type HorizontalDistance struct {
	A     ConstraintPoint `json:"a"`
	B     ConstraintPoint `json:"b"`
	Value float64         `json:"value"`
	Style DimensionStyle  `json:"style"`
}

func (HorizontalDistance) Kind() ConstraintKind { return KindHorizontalDistance }

// VerticalDistance dimensions the Y separation of two points
type VerticalDistance struct {
	A     ConstraintPoint `json:"a"`
	B     ConstraintPoint `json:"b"`
	Value float64         `json:"value"`
	Style DimensionStyle  `json:"style"`
}

func (VerticalDistance) Kind() ConstraintKind { return KindVerticalDistance }

// Angle dimensions the angle between two lines (degrees)
type Angle struct {
	A     EntityID       `json:"a"`
	B     EntityID       `json:"b"`
	Value float64        `json:"value"`
	Style DimensionStyle `json:"style"`
}

func (Angle) Kind() ConstraintKind { return KindAngle }

// Radius dimensions the radius of a circle or arc
type Radius struct {
	Entity EntityID       `json:"entity"`
	Value  float64        `json:"value"`
	Style  DimensionStyle `json:"style"`
}

func (Radius) Kind() ConstraintKind { return KindRadius }

// Parallel forces two lines parallel
type Parallel struct {
	A EntityID `json:"a"`
	B EntityID `json:"b"`
}

func (Parallel) Kind() ConstraintKind { return KindParallel }

// Perpendicular forces two lines perpendicular
type Perpendicular struct {
	A EntityID `json:"a"`
	B EntityID `json:"b"`
}

func (Perpendicular) Kind() ConstraintKind { return KindPerpendicular }

// Tangent forces two entities tangent
type Tangent struct {
	A EntityID `json:"a"`
	B EntityID `json:"b"`
}

func (Tangent) Kind() ConstraintKind { return KindTangent }

// Equal forces two entities to share a size (length or radius)
type Equal struct {
	A EntityID `json:"a"`
	B EntityID `json:"b"`
}

func (Equal) Kind() ConstraintKind { return KindEqual }

// Symmetric forces two points symmetric about an axis line
type Symmetric struct {
	A    ConstraintPoint `json:"a"`
	B    ConstraintPoint `json:"b"`
	Axis EntityID        `json:"axis"`
}

func (Symmetric) Kind() ConstraintKind { return KindSymmetric }

// Fix pins a point to an absolute position
type Fix struct {
	Point    ConstraintPoint  `json:"point"`
	Position geometry.Vector2 `json:"position"`
}

func (Fix) Kind() ConstraintKind { return KindFix }

// DistancePointLine dimensions the perpendicular distance from a point
// to a line
type DistancePointLine struct {
	Point ConstraintPoint `json:"point"`
	Line  EntityID        `json:"line"`
	Value float64         `json:"value"`
	Style DimensionStyle  `json:"style"`
}

func (DistancePointLine) Kind() ConstraintKind { return KindDistancePointLine }

// ConstraintEntry wraps a constraint with identity and a suppression flag
type ConstraintEntry struct {
	ID         string
	Constraint Constraint
	Suppressed bool
}

// constraintPoints returns the point references of a constraint, used
// for validation
func constraintPoints(c Constraint) []ConstraintPoint {
	switch v := c.(type) {
	case Coincident:
		return []ConstraintPoint{v.A, v.B}
	case Distance:
		return []ConstraintPoint{v.A, v.B}
	case HorizontalDistance:
		return []ConstraintPoint{v.A, v.B}
	case VerticalDistance:
		return []ConstraintPoint{v.A, v.B}
	case Symmetric:
		return []ConstraintPoint{v.A, v.B}
	case Fix:
		return []ConstraintPoint{v.Point}
	case DistancePointLine:
		return []ConstraintPoint{v.Point}
	}
	return nil
}

// constraintEntities returns the whole-entity references of a constraint
func constraintEntities(c Constraint) []EntityID {
	switch v := c.(type) {
	case Horizontal:
		return []EntityID{v.Line}
	case Vertical:
		return []EntityID{v.Line}
	case Angle:
		return []EntityID{v.A, v.B}
	case Radius:
		return []EntityID{v.Entity}
	case Parallel:
		return []EntityID{v.A, v.B}
	case Perpendicular:
		return []EntityID{v.A, v.B}
	case Tangent:
		return []EntityID{v.A, v.B}
	case Equal:
		return []EntityID{v.A, v.B}
	case Symmetric:
		return []EntityID{v.Axis}
	case DistancePointLine:
		return []EntityID{v.Line}
	}
	return nil
}

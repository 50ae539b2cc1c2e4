package sketch

import (
	"math"

	"github.com/google/uuid"

	"sketchcad/pkg/geometry"
)

// EntityID uniquely identifies an entity within a sketch
type EntityID string

// NewEntityID generates a fresh entity identifier
func NewEntityID() EntityID {
	return EntityID(uuid.NewString())
}

// GeometryKind identifies the geometry variant of an entity
type GeometryKind string

const (
	KindPoint   GeometryKind = "point"
	KindLine    GeometryKind = "line"
	KindCircle  GeometryKind = "circle"
	KindArc     GeometryKind = "arc"
	KindEllipse GeometryKind = "ellipse"
)

// Geometry is the sum type over all entity geometry variants. Defining
// points are addressed by index: lines expose start=0 and end=1, arcs
// expose center=0 and the start/end endpoints as 1 and 2, all other
// kinds expose a single point at index 0.
type Geometry interface {
	Kind() GeometryKind
	PointCount() int
	DefiningPoint(index int) (geometry.Vector2, bool)
	SetDefiningPoint(index int, p geometry.Vector2) bool
	Clone() Geometry
}

// PointGeometry is a free-standing sketch point
type PointGeometry struct {
	Position geometry.Vector2
}

func (g *PointGeometry) Kind() GeometryKind { return KindPoint }
func (g *PointGeometry) PointCount() int    { return 1 }

func (g *PointGeometry) DefiningPoint(index int) (geometry.Vector2, bool) {
	if index != 0 {
		return geometry.Vector2{}, false
	}
	return g.Position, true
}

func (g *PointGeometry) SetDefiningPoint(index int, p geometry.Vector2) bool {
	if index != 0 {
		return false
	}
	g.Position = p
	return true
}

func (g *PointGeometry) Clone() Geometry {
	c := *g
	return &c
}

// LineGeometry is a straight segment between two endpoints
type LineGeometry struct {
	Start geometry.Vector2
	End   geometry.Vector2
}

func (g *LineGeometry) Kind() GeometryKind { return KindLine }
func (g *LineGeometry) PointCount() int    { return 2 }

func (g *LineGeometry) DefiningPoint(index int) (geometry.Vector2, bool) {
	switch index {
	case 0:
		return g.Start, true
	case 1:
		return g.End, true
	}
	return geometry.Vector2{}, false
}

func (g *LineGeometry) SetDefiningPoint(index int, p geometry.Vector2) bool {
	switch index {
	case 0:
		g.Start = p
	case 1:
		g.End = p
	default:
		return false
	}
	return true
}

func (g *LineGeometry) Clone() Geometry {
	c := *g
	return &c
}

// Direction returns the unnormalized start-to-end vector
func (g *LineGeometry) Direction() geometry.Vector2 {
	return g.End.Sub(g.Start)
}

// Length returns the segment length
func (g *LineGeometry) Length() float64 {
	return g.Start.Distance(g.End)
}

// Midpoint returns the segment midpoint
func (g *LineGeometry) Midpoint() geometry.Vector2 {
	return g.Start.Midpoint(g.End)
}

// PointAt returns the point at parameter t along the segment
func (g *LineGeometry) PointAt(t float64) geometry.Vector2 {
	return g.Start.Lerp(g.End, t)
}

// CircleGeometry is a full circle
type CircleGeometry struct {
	Center geometry.Vector2
	Radius float64
}

func (g *CircleGeometry) Kind() GeometryKind { return KindCircle }
func (g *CircleGeometry) PointCount() int    { return 1 }

func (g *CircleGeometry) DefiningPoint(index int) (geometry.Vector2, bool) {
	if index != 0 {
		return geometry.Vector2{}, false
	}
	return g.Center, true
}

func (g *CircleGeometry) SetDefiningPoint(index int, p geometry.Vector2) bool {
	if index != 0 {
		return false
	}
	g.Center = p
	return true
}

func (g *CircleGeometry) Clone() Geometry {
	c := *g
	return &c
}

// ArcGeometry is a circular arc swept counter-clockwise from StartAngle
// to EndAngle (radians)
type ArcGeometry struct {
	Center     geometry.Vector2
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

func (g *ArcGeometry) Kind() GeometryKind { return KindArc }
func (g *ArcGeometry) PointCount() int    { return 3 }

func (g *ArcGeometry) DefiningPoint(index int) (geometry.Vector2, bool) {
	switch index {
	case 0:
		return g.Center, true
	case 1:
		return g.endpoint(g.StartAngle), true
	case 2:
		return g.endpoint(g.EndAngle), true
	}
	return geometry.Vector2{}, false
}

func (g *ArcGeometry) SetDefiningPoint(index int, p geometry.Vector2) bool {
	switch index {
	case 0:
		g.Center = p
	case 1:
		g.StartAngle = p.Sub(g.Center).Angle()
		g.Radius = p.Distance(g.Center)
	case 2:
		g.EndAngle = p.Sub(g.Center).Angle()
		g.Radius = p.Distance(g.Center)
	default:
		return false
	}
	return true
}

func (g *ArcGeometry) Clone() Geometry {
	c := *g
	return &c
}

func (g *ArcGeometry) endpoint(angle float64) geometry.Vector2 {
	return g.Center.Add(geometry.NewVector2(math.Cos(angle), math.Sin(angle)).Mul(g.Radius))
}

// StartPoint returns the endpoint at StartAngle
func (g *ArcGeometry) StartPoint() geometry.Vector2 { return g.endpoint(g.StartAngle) }

// EndPoint returns the endpoint at EndAngle
func (g *ArcGeometry) EndPoint() geometry.Vector2 { return g.endpoint(g.EndAngle) }

// EllipseGeometry is an axis-aligned ellipse rotated by Rotation radians
type EllipseGeometry struct {
	Center    geometry.Vector2
	SemiMajor float64
	SemiMinor float64
	Rotation  float64
}

func (g *EllipseGeometry) Kind() GeometryKind { return KindEllipse }
func (g *EllipseGeometry) PointCount() int    { return 1 }

func (g *EllipseGeometry) DefiningPoint(index int) (geometry.Vector2, bool) {
	if index != 0 {
		return geometry.Vector2{}, false
	}
	return g.Center, true
}

func (g *EllipseGeometry) SetDefiningPoint(index int, p geometry.Vector2) bool {
	if index != 0 {
		return false
	}
	g.Center = p
	return true
}

func (g *EllipseGeometry) Clone() Geometry {
	c := *g
	return &c
}

// Entity pairs an identifier with one geometry variant. Construction
// entities are reference geometry excluded from solid boundaries.
// Preview entities are transient tool feedback, never persisted to the
// solver as final state.
type Entity struct {
	ID           EntityID
	Geometry     Geometry
	Construction bool
	Preview      bool
}

// NewEntity creates an entity with a fresh identifier
func NewEntity(g Geometry) *Entity {
	return &Entity{ID: NewEntityID(), Geometry: g}
}

// Clone returns a deep copy of the entity
func (e *Entity) Clone() *Entity {
	return &Entity{
		ID:           e.ID,
		Geometry:     e.Geometry.Clone(),
		Construction: e.Construction,
		Preview:      e.Preview,
	}
}

// Line returns the line geometry when the entity is a line
func (e *Entity) Line() (*LineGeometry, bool) {
	g, ok := e.Geometry.(*LineGeometry)
	return g, ok
}

// Circle returns the circle geometry when the entity is a circle
func (e *Entity) Circle() (*CircleGeometry, bool) {
	g, ok := e.Geometry.(*CircleGeometry)
	return g, ok
}

// Arc returns the arc geometry when the entity is an arc
func (e *Entity) Arc() (*ArcGeometry, bool) {
	g, ok := e.Geometry.(*ArcGeometry)
	return g, ok
}

// Point returns the point geometry when the entity is a point
func (e *Entity) Point() (*PointGeometry, bool) {
	g, ok := e.Geometry.(*PointGeometry)
	return g, ok
}

// Ellipse returns the ellipse geometry when the entity is an ellipse
func (e *Entity) Ellipse() (*EllipseGeometry, bool) {
	g, ok := e.Geometry.(*EllipseGeometry)
	return g, ok
}

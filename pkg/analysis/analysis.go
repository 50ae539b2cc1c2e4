package analysis

import (
	"math"
	"sort"

	"sketchcad/pkg/geometry"
	"sketchcad/pkg/sketch"
)

// BoundingBox is the axis-aligned extent of a sketch in plane coordinates.
type BoundingBox struct {
	Min geometry.Vector2
	Max geometry.Vector2
}

// Size returns the width and height of the box.
func (b BoundingBox) Size() geometry.Vector2 {
	return b.Max.Sub(b.Min)
}

// SketchReport contains summary measurements of a sketch.
type SketchReport struct {
	EntityCount       int
	ConstructionCount int
	ConstraintCount   int
	SuppressedCount   int
	BoundingBox       BoundingBox
	TotalCurveLength  float64
	// DegreesOfFreedom is a local estimate: two per defining point minus
	// one per active constraint equation. The solver owns the real number.
	DegreesOfFreedom  int
	EntitiesByKind    map[sketch.GeometryKind]int
	ConstraintsByKind map[sketch.ConstraintKind]int
}

// Analyze computes summary measurements for a sketch. Preview entities
// are skipped so in-flight tool state never shows up in reports.
func Analyze(s *sketch.Sketch) *SketchReport {
	report := &SketchReport{
		EntitiesByKind:    make(map[sketch.GeometryKind]int),
		ConstraintsByKind: make(map[sketch.ConstraintKind]int),
	}

	minX, minY := math.MaxFloat64, math.MaxFloat64
	maxX, maxY := -math.MaxFloat64, -math.MaxFloat64
	points := 0

	for _, entity := range s.Entities {
		if entity.Preview {
			continue
		}

		report.EntityCount++
		if entity.Construction {
			report.ConstructionCount++
		}
		report.EntitiesByKind[entity.Geometry.Kind()]++
		report.TotalCurveLength += curveLength(entity.Geometry)

		points += entity.Geometry.PointCount()
		for i := 0; i < entity.Geometry.PointCount(); i++ {
			p, ok := entity.Geometry.DefiningPoint(i)
			if !ok {
				continue
			}
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}

	if report.EntityCount > 0 {
		report.BoundingBox = BoundingBox{
			Min: geometry.Vector2{X: minX, Y: minY},
			Max: geometry.Vector2{X: maxX, Y: maxY},
		}
	}

	equations := 0
	for _, entry := range s.Constraints {
		if entry.Suppressed {
			report.SuppressedCount++
			continue
		}
		report.ConstraintCount++
		report.ConstraintsByKind[entry.Constraint.Kind()]++
		equations += equationCount(entry.Constraint)
	}

	dof := 2*points - equations
	if dof < 0 {
		dof = 0
	}
	report.DegreesOfFreedom = dof

	return report
}

// curveLength returns the arc length of a geometry. Points contribute
// zero, ellipses use the Ramanujan approximation.
func curveLength(g sketch.Geometry) float64 {
	switch v := g.(type) {
	case *sketch.LineGeometry:
		return v.Start.Distance(v.End)
	case *sketch.CircleGeometry:
		return 2 * math.Pi * v.Radius
	case *sketch.ArcGeometry:
		sweep := v.EndAngle - v.StartAngle
		for sweep < 0 {
			sweep += 2 * math.Pi
		}
		return v.Radius * sweep
	case *sketch.EllipseGeometry:
		a, b := v.SemiMajor, v.SemiMinor
		h := (a - b) * (a - b) / ((a + b) * (a + b))
		return math.Pi * (a + b) * (1 + 3*h/(10+math.Sqrt(4-3*h)))
	default:
		return 0
	}
}

// equationCount maps a constraint to the number of scalar equations it
// contributes to the solver system.
func equationCount(c sketch.Constraint) int {
	switch c.(type) {
	case sketch.Coincident:
		return 2
	case sketch.Symmetric:
		return 2
	case sketch.Fix:
		return 2
	default:
		return 1
	}
}

// KindCounts returns the entity kind histogram as sorted pairs for
// stable report output.
func (r *SketchReport) KindCounts() []KindCount {
	counts := make([]KindCount, 0, len(r.EntitiesByKind))
	for kind, n := range r.EntitiesByKind {
		counts = append(counts, KindCount{Kind: string(kind), Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Kind < counts[j].Kind })
	return counts
}

// ConstraintCounts returns the constraint kind histogram as sorted pairs.
func (r *SketchReport) ConstraintCounts() []KindCount {
	counts := make([]KindCount, 0, len(r.ConstraintsByKind))
	for kind, n := range r.ConstraintsByKind {
		counts = append(counts, KindCount{Kind: string(kind), Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Kind < counts[j].Kind })
	return counts
}

// KindCount is a histogram entry.
type KindCount struct {
	Kind  string
	Count int
}

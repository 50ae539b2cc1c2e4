package geometry

import "math"

// parallelEpsilon is the cross-product magnitude below which two segment
// directions are treated as parallel
const parallelEpsilon = 1e-10

// ProjectParam returns the parameter t of point p projected onto the infinite
// line through a and b, where t=0 maps to a and t=1 maps to b.
// A degenerate (zero-length) line yields t=0.
func ProjectParam(a, b, p Vector2) float64 {
	dir := b.Sub(a)
	lenSq := dir.Dot(dir)
	if lenSq == 0 {
		return 0
	}
	return p.Sub(a).Dot(dir) / lenSq
}

// ClosestPointOnSegment returns the point on segment a-b nearest to p
// (the projection clamped to the segment)
func ClosestPointOnSegment(a, b, p Vector2) Vector2 {
	t := ProjectParam(a, b, p)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return a.Lerp(b, t)
}

// DistanceToSegment returns the distance from p to segment a-b
func DistanceToSegment(a, b, p Vector2) float64 {
	return ClosestPointOnSegment(a, b, p).Distance(p)
}

// DistanceToLine returns the perpendicular distance from p to the infinite
// line through a and b. A degenerate line falls back to point distance.
func DistanceToLine(a, b, p Vector2) float64 {
	dir := b.Sub(a)
	length := dir.Length()
	if length == 0 {
		return p.Distance(a)
	}
	return math.Abs(dir.Cross(p.Sub(a))) / length
}

// SegmentIntersection computes the intersection of segments a1-a2 and b1-b2
// using the cross-product determinant test. It returns the parameters t (on
// a1-a2) and u (on b1-b2) of the intersection point. ok is false when the
// segments are parallel or do not intersect within both segments.
func SegmentIntersection(a1, a2, b1, b2 Vector2) (t, u float64, ok bool) {
	da := a2.Sub(a1)
	db := b2.Sub(b1)

	denom := da.Cross(db)
	if math.Abs(denom) < parallelEpsilon {
		return 0, 0, false
	}

	diff := b1.Sub(a1)
	t = diff.Cross(db) / denom
	u = diff.Cross(da) / denom

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return t, u, false
	}
	return t, u, true
}

// ReflectAcrossLine mirrors point p across the infinite line through l1 and
// l2 using the standard 2D reflection formula:
//
//	a = (dx²−dy²)/(dx²+dy²)
//	b = 2·dx·dy/(dx²+dy²)
//	x' = a(x−x1) + b(y−y1) + x1
//	y' = b(x−x1) − a(y−y1) + y1
//
// A degenerate axis returns p unchanged.
func ReflectAcrossLine(p, l1, l2 Vector2) Vector2 {
	dx := l2.X - l1.X
	dy := l2.Y - l1.Y
	d := dx*dx + dy*dy
	if d == 0 {
		return p
	}

	a := (dx*dx - dy*dy) / d
	b := 2 * dx * dy / d

	x := p.X - l1.X
	y := p.Y - l1.Y
	return Vector2{
		X: a*x + b*y + l1.X,
		Y: b*x - a*y + l1.Y,
	}
}

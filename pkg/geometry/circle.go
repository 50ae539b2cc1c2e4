package geometry

import (
	"fmt"
	"math"
)

// CircleThroughPoints computes the circle passing through three 2D points.
//
// Uses the 3-point determinant formula:
//
//	D = 2(x₁(y₂-y₃) + x₂(y₃-y₁) + x₃(y₁-y₂))
//	cx = ((x₁²+y₁²)(y₂-y₃) + (x₂²+y₂²)(y₃-y₁) + (x₃²+y₃²)(y₁-y₂)) / D
//	cy = ((x₁²+y₁²)(x₃-x₂) + (x₂²+y₂²)(x₁-x₃) + (x₃²+y₃²)(x₂-x₁)) / D
//
// Returns an error when the points are collinear.
func CircleThroughPoints(p1, p2, p3 Vector2) (center Vector2, radius float64, err error) {
	x1, y1 := p1.X, p1.Y
	x2, y2 := p2.X, p2.Y
	x3, y3 := p3.X, p3.Y

	d := 2.0 * (x1*(y2-y3) + x2*(y3-y1) + x3*(y1-y2))
	if math.Abs(d) < 1e-10 {
		return Vector2{}, 0, fmt.Errorf("points are collinear")
	}

	sq1 := x1*x1 + y1*y1
	sq2 := x2*x2 + y2*y2
	sq3 := x3*x3 + y3*y3

	cx := (sq1*(y2-y3) + sq2*(y3-y1) + sq3*(y1-y2)) / d
	cy := (sq1*(x3-x2) + sq2*(x1-x3) + sq3*(x2-x1)) / d

	center = NewVector2(cx, cy)
	return center, center.Distance(p1), nil
}

package geometry

import (
	"math"
	"testing"
)

func TestVector2Add(t *testing.T) {
	v1 := NewVector2(1, 2)
	v2 := NewVector2(3, 4)
	result := v1.Add(v2)

	expected := NewVector2(4, 6)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector2Sub(t *testing.T) {
	v1 := NewVector2(4, 6)
	v2 := NewVector2(1, 2)
	result := v1.Sub(v2)

	expected := NewVector2(3, 4)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector2Length(t *testing.T) {
	v := NewVector2(3, 4)
	length := v.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector2Distance(t *testing.T) {
	v1 := NewVector2(1, 1)
	v2 := NewVector2(4, 5)
	distance := v1.Distance(v2)

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestVector2Normalize(t *testing.T) {
	v := NewVector2(3, 4)
	normalized := v.Normalize()

	if math.Abs(normalized.Length()-1.0) > 1e-10 {
		t.Errorf("Normalize failed: expected unit length, got %v", normalized.Length())
	}
}

func TestVector2NormalizeZero(t *testing.T) {
	v := NewVector2(0, 0)
	normalized := v.Normalize()

	if normalized != (Vector2{}) {
		t.Errorf("Normalize of zero vector failed: expected zero, got %v", normalized)
	}
}

func TestVector2Cross(t *testing.T) {
	v1 := NewVector2(1, 0)
	v2 := NewVector2(0, 1)
	cross := v1.Cross(v2)

	expected := 1.0
	if math.Abs(cross-expected) > 1e-10 {
		t.Errorf("Cross failed: expected %v, got %v", expected, cross)
	}
}

func TestVector2Perp(t *testing.T) {
	v := NewVector2(1, 0)
	perp := v.Perp()

	expected := NewVector2(0, 1)
	if perp.Distance(expected) > 1e-10 {
		t.Errorf("Perp failed: expected %v, got %v", expected, perp)
	}
	if math.Abs(v.Dot(perp)) > 1e-10 {
		t.Errorf("Perp failed: expected orthogonal vector, got dot %v", v.Dot(perp))
	}
}

func TestVector2Rotate(t *testing.T) {
	v := NewVector2(1, 0)
	rotated := v.Rotate(math.Pi / 2)

	expected := NewVector2(0, 1)
	if rotated.Distance(expected) > 1e-10 {
		t.Errorf("Rotate failed: expected %v, got %v", expected, rotated)
	}
}

func TestVector2RotateAround(t *testing.T) {
	v := NewVector2(2, 1)
	rotated := v.RotateAround(NewVector2(1, 1), math.Pi)

	expected := NewVector2(0, 1)
	if rotated.Distance(expected) > 1e-10 {
		t.Errorf("RotateAround failed: expected %v, got %v", expected, rotated)
	}
}

func TestVector2Angle(t *testing.T) {
	v := NewVector2(1, 1)
	angle := v.Angle()

	expected := math.Pi / 4
	if math.Abs(angle-expected) > 1e-10 {
		t.Errorf("Angle failed: expected %v, got %v", expected, angle)
	}
}

func TestVector2Midpoint(t *testing.T) {
	v1 := NewVector2(0, 0)
	v2 := NewVector2(4, 6)
	mid := v1.Midpoint(v2)

	expected := NewVector2(2, 3)
	if mid != expected {
		t.Errorf("Midpoint failed: expected %v, got %v", expected, mid)
	}
}

func TestVector2Lerp(t *testing.T) {
	v1 := NewVector2(0, 0)
	v2 := NewVector2(10, 20)
	result := v1.Lerp(v2, 0.25)

	expected := NewVector2(2.5, 5)
	if result.Distance(expected) > 1e-10 {
		t.Errorf("Lerp failed: expected %v, got %v", expected, result)
	}
}

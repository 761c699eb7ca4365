// Package intersect implements the segment-triangle test used for cloth self-collision.
//
// A point P on the segment [start, end] is written as
//
//	P = start + t (end - start), 0 <= t <= 1
//
// and a point of the triangle (p1, p2, p3) as
//
//	P = p1 + u (p2 - p1) + v (p3 - p1), 0 <= u, v and u + v <= 1
//
// Equating both gives the 3x3 linear system
//
//	u (p2 - p1) + v (p3 - p1) + t (start - end) = start - p1
//
// solved with Cramer's rule. All bounds are inclusive, so a segment touching an
// edge or a vertex, or ending exactly on the triangle, is a hit.
package intersect

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the smallest determinant treated as a regular system.
// Below it the segment is parallel to the triangle plane, or the triangle is degenerate.
const Epsilon = 1e-12

// Hit describes where a segment crosses a triangle
type Hit struct {
	U, V float64 // barycentric coordinates along (p2 - p1) and (p3 - p1)
	T    float64 // segment parameter, 0 at start and 1 at end
	// Point is the intersection position in world space
	Point mgl64.Vec3
}

// SolveCramer solves x a + y b + z c = d for (x, y, z).
// It returns false when the system is singular, without dividing.
func SolveCramer(a, b, c, d mgl64.Vec3) (mgl64.Vec3, bool) {
	denominator := mgl64.Mat3FromCols(a, b, c).Det()
	if denominator > -Epsilon && denominator < Epsilon {
		return mgl64.Vec3{}, false
	}

	x := mgl64.Mat3FromCols(d, b, c).Det() / denominator
	y := mgl64.Mat3FromCols(a, d, c).Det() / denominator
	z := mgl64.Mat3FromCols(a, b, d).Det() / denominator

	return mgl64.Vec3{x, y, z}, true
}

// SegmentTriangleHit returns the barycentric solution of the segment against the triangle.
// ok is false if the system is singular or if the solution lies outside the segment or the triangle.
func SegmentTriangleHit(start, end, p1, p2, p3 mgl64.Vec3) (hit Hit, ok bool) {
	res, ok := SolveCramer(p2.Sub(p1), p3.Sub(p1), start.Sub(end), start.Sub(p1))
	if !ok {
		return Hit{}, false
	}

	hit = Hit{U: res.X(), V: res.Y(), T: res.Z()}
	if !within(hit.T) || !within(hit.U) || !within(hit.V) || !within(hit.U+hit.V) {
		return Hit{}, false
	}
	hit.Point = start.Add(end.Sub(start).Mul(hit.T))

	return hit, true
}

// SegmentTriangle reports whether the segment [start, end] crosses the triangle (p1, p2, p3),
// and where.
func SegmentTriangle(start, end, p1, p2, p3 mgl64.Vec3) (mgl64.Vec3, bool) {
	hit, ok := SegmentTriangleHit(start, end, p1, p2, p3)

	return hit.Point, ok
}

func within(x float64) bool {
	return 0.0 <= x && x <= 1.0
}

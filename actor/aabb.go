package actor

import "github.com/go-gl/mathgl/mgl64"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// NewAABB returns the smallest box enclosing all the given points
func NewAABB(first mgl64.Vec3, others ...mgl64.Vec3) AABB {
	box := AABB{Min: first, Max: first}
	for _, p := range others {
		for axis := range 3 {
			box.Min[axis] = min(box.Min[axis], p[axis])
			box.Max[axis] = max(box.Max[axis], p[axis])
		}
	}

	return box
}

// SegmentAABB bounds the motion segment of a mass point
func SegmentAABB(start, end mgl64.Vec3) AABB {
	return NewAABB(start, end)
}

// ContainsPoint checks if a point is inside the AABB
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap
func (a AABB) Overlaps(other AABB) bool {
	// AABBs overlap if they overlap on all three axes, touching counts
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

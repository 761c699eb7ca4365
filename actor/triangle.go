package actor

import "github.com/go-gl/mathgl/mgl64"

// Triangle holds three mass point indices, it never changes once the topology is built
type Triangle [3]int

// Vertices returns the current positions of the triangle corners
func (t Triangle) Vertices(points []MassPoint) (mgl64.Vec3, mgl64.Vec3, mgl64.Vec3) {
	return points[t[0]].Position, points[t[1]].Position, points[t[2]].Position
}

// Has reports whether the point index is one of the triangle corners
func (t Triangle) Has(index int) bool {
	return t[0] == index || t[1] == index || t[2] == index
}

// AABB returns the bounding box of the triangle for the given positions
func (t Triangle) AABB(points []MassPoint) AABB {
	p1, p2, p3 := t.Vertices(points)

	return NewAABB(p1, p2, p3)
}

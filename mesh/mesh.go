// Package mesh holds the vertex buffer a renderer draws the cloth from.
//
// The physics owns the positions; a renderer calls Sync once per frame to copy them
// into the float32 buffer it uploads, instead of sharing memory with the solver.
package mesh

import (
	"github.com/akmonengine/cloth/actor"
	"github.com/akmonengine/cloth/constraint"
	"github.com/go-gl/mathgl/mgl32"
)

type Mesh struct {
	Vertices []mgl32.Vec3
	// LineIndices draws every stretch constraint as a segment
	LineIndices []uint32
	// TriangleIndices draws the collision triangles
	TriangleIndices []uint32
	// Highlighted holds the points to emphasize, typically the colliding ones
	Highlighted []uint32
}

// New builds the render buffers of a cloth topology
func New(points []actor.MassPoint, triangles []actor.Triangle, stretches []constraint.Stretch) *Mesh {
	m := &Mesh{
		Vertices:        make([]mgl32.Vec3, len(points)),
		LineIndices:     make([]uint32, 0, 2*len(stretches)),
		TriangleIndices: make([]uint32, 0, 3*len(triangles)),
	}
	for _, s := range stretches {
		m.LineIndices = append(m.LineIndices, uint32(s.A), uint32(s.B))
	}
	for _, t := range triangles {
		m.TriangleIndices = append(m.TriangleIndices, uint32(t[0]), uint32(t[1]), uint32(t[2]))
	}
	m.Sync(points)

	return m
}

// Sync copies the positions of the points into the vertex buffer
func (m *Mesh) Sync(points []actor.MassPoint) {
	if len(m.Vertices) != len(points) {
		m.Vertices = make([]mgl32.Vec3, len(points))
	}
	for i, p := range points {
		m.Vertices[i] = mgl32.Vec3{float32(p.Position.X()), float32(p.Position.Y()), float32(p.Position.Z())}
	}
}

// SetHighlighted replaces the highlighted point indices
func (m *Mesh) SetHighlighted(indices []int) {
	m.Highlighted = m.Highlighted[:0]
	for _, i := range indices {
		m.Highlighted = append(m.Highlighted, uint32(i))
	}
}

package constraint

import (
	"fmt"

	"github.com/akmonengine/cloth/actor"
)

// Stretch keeps two mass points at their initial distance
type Stretch struct {
	A            int
	B            int
	RestDistance float64
	Stiffness    float64 // 0.0 - 1.0
}

// NewStretch creates a stretch constraint between points a and b,
// its rest distance is measured from their current positions.
func NewStretch(points []actor.MassPoint, a, b int, stiffness float64) Stretch {
	if a < 0 || a >= len(points) || b < 0 || b >= len(points) {
		panic(fmt.Sprintf("constraint: stretch indices (%d, %d) out of range [0, %d)", a, b, len(points)))
	}

	return Stretch{
		A:            a,
		B:            b,
		RestDistance: points[a].Position.Sub(points[b].Position).Len(),
		Stiffness:    stiffness,
	}
}

// Solve moves both points along their separation, each by the share of the other's inertia.
// Pinned points get a zero share, two pinned points make the constraint a no-op.
func (c Stretch) Solve(predicted []actor.MassPoint, _ []actor.MassPoint) {
	p1 := &predicted[c.A]
	p2 := &predicted[c.B]

	totalWeight := p1.Weight + p2.Weight
	if totalWeight == 0.0 {
		return
	}

	diff := p1.Position.Sub(p2.Position)
	distance := diff.Len()
	if distance == 0.0 {
		return
	}
	dir := diff.Mul(1.0 / distance)

	correction := dir.Mul(c.Stiffness * (distance - c.RestDistance) / totalWeight)
	p1.Position = p1.Position.Sub(correction.Mul(p1.Weight))
	p2.Position = p2.Position.Add(correction.Mul(p2.Weight))
}

// Error returns the signed distance error of the constraint for the given points
func (c Stretch) Error(points []actor.MassPoint) float64 {
	return points[c.A].Position.Sub(points[c.B].Position).Len() - c.RestDistance
}

package actor

import (
	"github.com/go-gl/mathgl/mgl64"
)

// MassPoint is a single particle of the cloth
type MassPoint struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3 // m/s
	// Weight is the inverse mass, 0 pins the point in place
	Weight float64
}

// NewMassPoint creates a free mass point at rest with a unit weight
func NewMassPoint(position mgl64.Vec3) MassPoint {
	return MassPoint{
		Position: position,
		Velocity: mgl64.Vec3{0, 0, 0},
		Weight:   1.0,
	}
}

func (p MassPoint) IsPinned() bool {
	return p.Weight == 0.0
}

// Integrate applies gravity, a velocity-proportional damping force and an external force
// to the point with a semi-implicit Euler step. Pinned points are left untouched.
func (p *MassPoint) Integrate(dt float64, gravity mgl64.Vec3, damping float64, force mgl64.Vec3) {
	if p.IsPinned() {
		return
	}

	// forces are scaled by the inverse mass, gravity is already an acceleration
	force = force.Sub(p.Velocity.Mul(damping))
	acceleration := gravity.Add(force.Mul(p.Weight))

	p.Velocity = p.Velocity.Add(acceleration.Mul(dt))
	p.Position = p.Position.Add(p.Velocity.Mul(dt))
}

// Commit takes the relaxed predicted position, the velocity is rebuilt from the position delta
func (p *MassPoint) Commit(predicted mgl64.Vec3, dt float64) {
	p.Velocity = predicted.Sub(p.Position).Mul(1.0 / dt)
	p.Position = predicted
}

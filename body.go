// Package cloth simulates a deformable cloth as a mass-spring network solved with position based dynamics.
//
// Each frame goes through the same pipeline:
//  1. Predict: external forces are integrated into a copy of the mass points
//  2. Detect: every motion segment is tested against every triangle of the cloth,
//     each hit creates a collision constraint for the current frame
//  3. Relax: stretch then collision constraints are projected a fixed number of times
//  4. Commit: velocities are rebuilt from the position change, then positions are committed
//  5. Clear: the collision constraints are dropped
package cloth

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/akmonengine/cloth/actor"
	"github.com/akmonengine/cloth/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrIndexOutOfRange   = errors.New("cloth: index out of range")
	ErrInvalidConstraint = errors.New("cloth: invalid constraint")
)

// RigidBody owns the mass points of a cloth and the constraints linking them.
// The topology is fixed once the body is created.
type RigidBody struct {
	Config Config
	Events Events

	points    []actor.MassPoint
	predicted []actor.MassPoint

	triangles  []actor.Triangle
	stretches  []constraint.Stretch
	collisions []constraint.Collision
	// constraints holds the stretches, followed by the collisions of the current frame
	constraints []constraint.Constraint

	detector    CollisionDetector
	highlighted []int
	rng         *rand.Rand
}

// NewRigidBody creates a body from an existing topology.
// Every constraint and triangle index must point to one of the mass points,
// every stretch needs a positive rest distance and a stiffness in [0, 1].
func NewRigidBody(points []actor.MassPoint, triangles []actor.Triangle, stretches []constraint.Stretch, config Config) (*RigidBody, error) {
	n := len(points)
	for i, tri := range triangles {
		for _, idx := range tri {
			if idx < 0 || idx >= n {
				return nil, fmt.Errorf("triangle %d references point %d of %d: %w", i, idx, n, ErrIndexOutOfRange)
			}
		}
	}
	for i, s := range stretches {
		if s.A < 0 || s.A >= n || s.B < 0 || s.B >= n {
			return nil, fmt.Errorf("stretch %d references points (%d, %d) of %d: %w", i, s.A, s.B, n, ErrIndexOutOfRange)
		}
		if !(s.RestDistance > 0) {
			return nil, fmt.Errorf("stretch %d has a rest distance of %v: %w", i, s.RestDistance, ErrInvalidConstraint)
		}
		if !(s.Stiffness >= 0 && s.Stiffness <= 1) {
			return nil, fmt.Errorf("stretch %d has a stiffness of %v outside of [0, 1]: %w", i, s.Stiffness, ErrInvalidConstraint)
		}
	}

	rb := &RigidBody{
		Config:    config,
		Events:    NewEvents(),
		points:    points,
		predicted: make([]actor.MassPoint, n),
		triangles: triangles,
		stretches: stretches,
		rng:       config.newRand(),
	}
	rb.constraints = make([]constraint.Constraint, 0, len(stretches))
	for _, s := range stretches {
		rb.constraints = append(rb.constraints, s)
	}
	rb.Events.body = rb
	return rb, nil
}

// MustNewRigidBody is like NewRigidBody but panics on an invalid topology
func MustNewRigidBody(points []actor.MassPoint, triangles []actor.Triangle, stretches []constraint.Stretch, config Config) *RigidBody {
	rb, err := NewRigidBody(points, triangles, stretches, config)
	if err != nil {
		panic(err)
	}

	return rb
}

// Update advances the simulation by dt. A non positive dt leaves the body untouched.
func (rb *RigidBody) Update(dt float64) {
	if dt <= 0 {
		return
	}

	rb.predict(dt)
	rb.detectCollisions()
	rb.relax()
	rb.commit(dt)

	rb.collisions = rb.collisions[:0]
	rb.constraints = rb.constraints[:len(rb.stretches)]

	rb.Events.recordCollisions(rb.highlighted)
	rb.Events.flush()
}

func (rb *RigidBody) predict(dt float64) {
	copy(rb.predicted, rb.points)

	for i := range rb.predicted {
		p := &rb.predicted[i]
		if p.IsPinned() {
			continue
		}
		p.Integrate(dt, rb.Config.Gravity, rb.Config.Damping, rb.Config.noise(rb.rng))
	}
}

// detectCollisions compares the motion of each point against the triangles at the start of the frame
func (rb *RigidBody) detectCollisions() {
	rb.detector.Workers = rb.Config.Workers
	rb.detector.SkipIncident = rb.Config.SkipIncident
	if !rb.Config.BroadPhase {
		rb.detector.Grid = nil
	} else if rb.detector.Grid == nil {
		rb.detector.Grid = NewSpatialGrid(rb.Config.CellSize, len(rb.triangles))
	}
	contacts := rb.detector.Detect(rb.points, rb.predicted, rb.triangles)

	rb.collisions = rb.collisions[:0]
	rb.highlighted = rb.highlighted[:0]
	rb.constraints = rb.constraints[:len(rb.stretches)]
	for _, contact := range contacts {
		c := constraint.Collision{Point: contact.Point}
		rb.collisions = append(rb.collisions, c)
		rb.constraints = append(rb.constraints, c)
		rb.highlighted = append(rb.highlighted, contact.Point)
	}
}

// relax sweeps the stretch constraints then the collision constraints, Iterations times
func (rb *RigidBody) relax() {
	for range rb.Config.Iterations {
		for _, c := range rb.constraints {
			c.Solve(rb.predicted, rb.points)
		}
	}
}

func (rb *RigidBody) commit(dt float64) {
	for i := range rb.points {
		rb.points[i].Commit(rb.predicted[i].Position, dt)
	}
}

// MassPoints returns the authoritative state of the points.
// The slice is owned by the body and must not be modified while Update runs.
func (rb *RigidBody) MassPoints() []actor.MassPoint {
	return rb.points
}

func (rb *RigidBody) Triangles() []actor.Triangle {
	return rb.triangles
}

func (rb *RigidBody) Stretches() []constraint.Stretch {
	return rb.stretches
}

// Collisions returns the collision constraints of the frame being solved, it is empty between two updates
func (rb *RigidBody) Collisions() []constraint.Collision {
	return rb.collisions
}

// Highlighted returns the index of every point that collided during the last Update,
// once per colliding triangle. Update clears and refills it, callers only read it.
func (rb *RigidBody) Highlighted() []int {
	return rb.highlighted
}

// Pin fixes a point in place, or frees it again with a unit weight
func (rb *RigidBody) Pin(index int, pinned bool) {
	if pinned {
		rb.points[index].Weight = 0.0
		rb.points[index].Velocity = mgl64.Vec3{}
	} else {
		rb.points[index].Weight = 1.0
	}
}

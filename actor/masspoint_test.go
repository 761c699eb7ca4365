package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewMassPoint(t *testing.T) {
	p := NewMassPoint(mgl64.Vec3{1, 2, 3})

	if p.Weight != 1.0 {
		t.Errorf("Weight = %v, want 1", p.Weight)
	}
	if p.Velocity != (mgl64.Vec3{}) {
		t.Errorf("Velocity = %v, want zero", p.Velocity)
	}
	if p.IsPinned() {
		t.Errorf("a new point should not be pinned")
	}
}

func TestIntegrate(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		velocity mgl64.Vec3
		gravity  mgl64.Vec3
		damping  float64
		force    mgl64.Vec3
		dt       float64
		wantVel  mgl64.Vec3
		wantPos  mgl64.Vec3
	}{
		{
			name:    "gravity only",
			weight:  1,
			gravity: mgl64.Vec3{0, -10, 0},
			dt:      0.1,
			wantVel: mgl64.Vec3{0, -1, 0},
			wantPos: mgl64.Vec3{0, -0.1, 0},
		},
		{
			name:    "gravity ignores the weight",
			weight:  0.25,
			gravity: mgl64.Vec3{0, -10, 0},
			dt:      0.1,
			wantVel: mgl64.Vec3{0, -1, 0},
			wantPos: mgl64.Vec3{0, -0.1, 0},
		},
		{
			name:    "force scaled by the weight",
			weight:  0.5,
			force:   mgl64.Vec3{4, 0, 0},
			dt:      0.5,
			wantVel: mgl64.Vec3{1, 0, 0},
			wantPos: mgl64.Vec3{0.5, 0, 0},
		},
		{
			name:     "damping opposes the velocity",
			weight:   1,
			velocity: mgl64.Vec3{2, 0, 0},
			damping:  0.5,
			dt:       0.1,
			wantVel:  mgl64.Vec3{1.9, 0, 0},
			wantPos:  mgl64.Vec3{0.19, 0, 0},
		},
		{
			name:     "pinned point ignores everything",
			weight:   0,
			velocity: mgl64.Vec3{2, 0, 0},
			gravity:  mgl64.Vec3{0, -10, 0},
			force:    mgl64.Vec3{1, 1, 1},
			dt:       0.1,
			wantVel:  mgl64.Vec3{2, 0, 0},
			wantPos:  mgl64.Vec3{0, 0, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewMassPoint(mgl64.Vec3{})
			p.Weight = tt.weight
			p.Velocity = tt.velocity

			p.Integrate(tt.dt, tt.gravity, tt.damping, tt.force)

			if !p.Velocity.ApproxEqualThreshold(tt.wantVel, 1e-12) {
				t.Errorf("Velocity = %v, want %v", p.Velocity, tt.wantVel)
			}
			if !p.Position.ApproxEqualThreshold(tt.wantPos, 1e-12) {
				t.Errorf("Position = %v, want %v", p.Position, tt.wantPos)
			}
		})
	}
}

func TestCommit(t *testing.T) {
	p := NewMassPoint(mgl64.Vec3{0, 0, 0})
	p.Velocity = mgl64.Vec3{100, 100, 100}

	p.Commit(mgl64.Vec3{0.5, 0, -0.25}, 0.5)

	if p.Position != (mgl64.Vec3{0.5, 0, -0.25}) {
		t.Errorf("Position = %v", p.Position)
	}
	// the previous velocity is discarded
	if math.Abs(p.Velocity.X()-1) > 1e-12 || p.Velocity.Y() != 0 || math.Abs(p.Velocity.Z()+0.5) > 1e-12 {
		t.Errorf("Velocity = %v, want (1, 0, -0.5)", p.Velocity)
	}
}

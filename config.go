package cloth

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	DEFAULT_ITERATIONS = 100
	DEFAULT_DAMPING    = 0.1
	// DEFAULT_NOISE bounds the per-axis random force, it breaks perfectly symmetric configurations
	DEFAULT_NOISE     = 30.0 / 900.0
	DEFAULT_CELL_SIZE = 0.25
)

// Config holds the tunable parameters of the solver
type Config struct {
	// Gravity acceleration (m/s²)
	Gravity mgl64.Vec3
	// Damping scales the force opposing the velocity of each point
	Damping float64
	// Noise is the upper bound of the random force added on each axis, 0 disables it
	Noise float64
	// Iterations is the number of relaxation sweeps per frame.
	// More iterations give a stiffer cloth at a linear cost.
	Iterations int
	// Workers splits the collision scan by point index
	Workers int
	// SkipIncident ignores the triangles a point belongs to during collision detection.
	// false is the reference behaviour: every triangle of the topology is scanned, so a
	// moving point always hits its own triangles at t = 0 and the cloth freezes.
	SkipIncident bool
	// BroadPhase culls triangles with a spatial grid before the exact segment test
	BroadPhase bool
	CellSize   float64
	// Seed makes the random force reproducible. Each body seeds its own source from it,
	// two bodies built with the same Seed receive the same sequence.
	// 0 draws from the global source.
	Seed uint64
}

// DefaultConfig returns the reference tuning of the cloth
func DefaultConfig() Config {
	return Config{
		Gravity:      mgl64.Vec3{0, -0.98, 0},
		Damping:      DEFAULT_DAMPING,
		Noise:        DEFAULT_NOISE,
		Iterations:   DEFAULT_ITERATIONS,
		Workers:      DEFAULT_WORKERS,
		SkipIncident: true,
		CellSize:     DEFAULT_CELL_SIZE,
	}
}

// newRand returns the private random source of a body, nil when Seed is 0
func (c Config) newRand() *rand.Rand {
	if c.Seed == 0 {
		return nil
	}

	return rand.New(rand.NewPCG(c.Seed, c.Seed))
}

// noise draws the random force, r may be nil
func (c Config) noise(r *rand.Rand) mgl64.Vec3 {
	if c.Noise == 0 {
		return mgl64.Vec3{}
	}

	random := rand.Float64
	if r != nil {
		random = r.Float64
	}

	return mgl64.Vec3{random() * c.Noise, random() * c.Noise, random() * c.Noise}
}

package cloth

import (
	"errors"
	"fmt"

	"github.com/akmonengine/cloth/actor"
	"github.com/akmonengine/cloth/constraint"
	"github.com/akmonengine/cloth/mesh"
	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidGrid = errors.New("cloth: invalid grid")

// GridCoord addresses a point of the grid, I along x and J along y
type GridCoord struct {
	I, J int
}

// GridConfig describes a square cloth of Size x Size cells
type GridConfig struct {
	Size int
	// Extent is the side length of the cloth, centred on the origin in the z=0 plane
	Extent float64
	// Pin is the only point with a zero weight, it anchors the cloth
	Pin       GridCoord
	Stiffness float64
}

// DefaultGridConfig returns a cloth spanning [-1, 1]² pinned at its top-left corner
func DefaultGridConfig(size int) GridConfig {
	return GridConfig{
		Size:      size,
		Extent:    2.0,
		Pin:       GridCoord{I: 0, J: size},
		Stiffness: constraint.DefaultStiffness,
	}
}

// Index returns the mass point index of a grid coordinate
func (g GridConfig) Index(c GridCoord) int {
	return c.J*(g.Size+1) + c.I
}

func (g GridConfig) validate() error {
	if g.Size < 1 {
		return fmt.Errorf("size %d, must be at least 1: %w", g.Size, ErrInvalidGrid)
	}
	if g.Pin.I < 0 || g.Pin.I > g.Size || g.Pin.J < 0 || g.Pin.J > g.Size {
		return fmt.Errorf("pin %v outside of a %dx%d grid: %w", g.Pin, g.Size, g.Size, ErrInvalidGrid)
	}
	if g.Stiffness < 0 || g.Stiffness > 1 {
		return fmt.Errorf("stiffness %v outside of [0, 1]: %w", g.Stiffness, ErrInvalidGrid)
	}

	return nil
}

// BuildGrid creates the (Size+1)² mass points of the cloth, with
//   - a stretch constraint for each horizontal and vertical pair of neighbours
//   - a stretch constraint on the top-left to bottom-right diagonal of each cell
//   - two triangles per cell, split along that same diagonal
func BuildGrid(g GridConfig) ([]actor.MassPoint, []actor.Triangle, []constraint.Stretch, error) {
	if err := g.validate(); err != nil {
		return nil, nil, nil, err
	}

	n := g.Size
	points := make([]actor.MassPoint, 0, (n+1)*(n+1))
	for j := 0; j <= n; j++ {
		for i := 0; i <= n; i++ {
			u := float64(i) / float64(n)
			v := float64(j) / float64(n)
			points = append(points, actor.NewMassPoint(mgl64.Vec3{g.Extent * (u - 0.5), g.Extent * (v - 0.5), 0}))
		}
	}
	points[g.Index(g.Pin)].Weight = 0.0

	idx := func(i, j int) int {
		return g.Index(GridCoord{I: i, J: j})
	}

	stretches := make([]constraint.Stretch, 0, 2*n*(n+1)+n*n)
	// horizontal
	for j := 0; j <= n; j++ {
		for i := 0; i < n; i++ {
			stretches = append(stretches, constraint.NewStretch(points, idx(i, j), idx(i+1, j), g.Stiffness))
		}
	}
	// vertical
	for i := 0; i <= n; i++ {
		for j := 0; j < n; j++ {
			stretches = append(stretches, constraint.NewStretch(points, idx(i, j), idx(i, j+1), g.Stiffness))
		}
	}

	triangles := make([]actor.Triangle, 0, 2*n*n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			topLeft, topRight := idx(i, j+1), idx(i+1, j+1)
			bottomLeft, bottomRight := idx(i, j), idx(i+1, j)

			stretches = append(stretches, constraint.NewStretch(points, topLeft, bottomRight, g.Stiffness))
			triangles = append(triangles,
				actor.Triangle{topLeft, bottomLeft, bottomRight},
				actor.Triangle{topLeft, bottomRight, topRight},
			)
		}
	}

	return points, triangles, stretches, nil
}

// NewCloth builds a cloth body and the render buffer displaying it
func NewCloth(g GridConfig, config Config) (*RigidBody, *mesh.Mesh, error) {
	points, triangles, stretches, err := BuildGrid(g)
	if err != nil {
		return nil, nil, err
	}

	body, err := NewRigidBody(points, triangles, stretches, config)
	if err != nil {
		return nil, nil, err
	}

	return body, mesh.New(body.MassPoints(), body.Triangles(), body.Stretches()), nil
}

package cloth

import (
	"slices"
	"testing"

	"github.com/akmonengine/cloth/actor"
	"github.com/go-gl/mathgl/mgl64"
)

func TestWorldToCell(t *testing.T) {
	grid := NewSpatialGrid(0.5, 16)

	tests := []struct {
		name     string
		position mgl64.Vec3
		expected CellKey
	}{
		{"origin", mgl64.Vec3{0, 0, 0}, CellKey{0, 0, 0}},
		{"positive", mgl64.Vec3{0.75, 1.1, 1.9}, CellKey{1, 2, 3}},
		{"negative", mgl64.Vec3{-0.75, -1.1, -1.9}, CellKey{-2, -3, -4}},
		{"on a boundary", mgl64.Vec3{0.5, -0.5, 1}, CellKey{1, -1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := grid.worldToCell(tt.position); result != tt.expected {
				t.Errorf("worldToCell(%v) = %v, want %v", tt.position, result, tt.expected)
			}
		})
	}
}

func TestHashCell_InRange(t *testing.T) {
	grid := NewSpatialGrid(1.0, 16)

	for _, key := range []CellKey{{0, 0, 0}, {1, 2, 3}, {-1, -2, -3}, {100, -200, 300}} {
		if result := grid.hashCell(key); result < 0 || result >= len(grid.cells) {
			t.Errorf("hashCell(%v) = %d, out of range [0, %d)", key, result, len(grid.cells))
		}
	}
}

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-3, 1}, {0, 1}, {1, 1}, {2, 2}, {3, 4}, {16, 16}, {17, 32}, {200, 256},
	}

	for _, tt := range tests {
		if got := nextPowerOfTwo(tt.in); got != tt.want {
			t.Errorf("nextPowerOfTwo(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestNewSpatialGrid_NonPositiveCellSize(t *testing.T) {
	grid := NewSpatialGrid(0, 10)
	if grid.cellSize != DEFAULT_CELL_SIZE {
		t.Errorf("cellSize = %v, want %v", grid.cellSize, DEFAULT_CELL_SIZE)
	}
	if len(grid.cells) != 16 {
		t.Errorf("len(cells) = %d, want 16", len(grid.cells))
	}
}

func TestCellCount_Saturates(t *testing.T) {
	grid := NewSpatialGrid(1.0, 8)

	if got := grid.cellCount(CellKey{0, 0, 0}, CellKey{1, 0, 0}); got != 2 {
		t.Errorf("cellCount() = %d, want 2", got)
	}
	if got := grid.cellCount(CellKey{-1000, -1000, -1000}, CellKey{1000, 1000, 1000}); got != len(grid.cells)+1 {
		t.Errorf("cellCount() = %d, want %d", got, len(grid.cells)+1)
	}
}

func TestCandidates(t *testing.T) {
	points := []actor.MassPoint{
		actor.NewMassPoint(mgl64.Vec3{0, 0, 0}),
		actor.NewMassPoint(mgl64.Vec3{1, 0, 0}),
		actor.NewMassPoint(mgl64.Vec3{0, 1, 0}),
		actor.NewMassPoint(mgl64.Vec3{10, 10, 0}),
		actor.NewMassPoint(mgl64.Vec3{11, 10, 0}),
		actor.NewMassPoint(mgl64.Vec3{10, 11, 0}),
	}
	triangles := []actor.Triangle{{3, 4, 5}, {0, 1, 2}, {0, 1, 5}}

	grid := NewSpatialGrid(0.5, 64)
	for i, tri := range triangles {
		grid.Insert(i, tri.AABB(points))
	}
	grid.SortCells()
	query := NewGridQuery(len(triangles))

	tests := []struct {
		name string
		aabb actor.AABB
		want []int
	}{
		{"near the origin", actor.SegmentAABB(mgl64.Vec3{0.2, 0.2, -1}, mgl64.Vec3{0.2, 0.2, 1}), []int{1, 2}},
		{"far corner", actor.SegmentAABB(mgl64.Vec3{10, 10.5, -1}, mgl64.Vec3{10, 10.5, 1}), []int{0, 2}},
		{"empty space", actor.SegmentAABB(mgl64.Vec3{-5, -5, -1}, mgl64.Vec3{-5, -5, 1}), nil},
		{"everything", actor.SegmentAABB(mgl64.Vec3{-20, -20, -20}, mgl64.Vec3{20, 20, 20}), []int{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := grid.Candidates(tt.aabb, triangles, points, query, nil)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Candidates() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("appends after existing entries", func(t *testing.T) {
		got := grid.Candidates(actor.SegmentAABB(mgl64.Vec3{0.2, 0.2, -1}, mgl64.Vec3{0.2, 0.2, 1}), triangles, points, query, []int{99})
		if !slices.Equal(got, []int{99, 1, 2}) {
			t.Errorf("Candidates() = %v, want [99 1 2]", got)
		}
	})

	t.Run("cleared grid", func(t *testing.T) {
		grid.Clear()
		got := grid.Candidates(actor.SegmentAABB(mgl64.Vec3{-20, -20, -20}, mgl64.Vec3{20, 20, 20}), triangles, points, query, nil)
		if len(got) != 0 {
			t.Errorf("Candidates() = %v, want none", got)
		}
	})
}

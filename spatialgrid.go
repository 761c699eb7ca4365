package cloth

import (
	"math"
	"sort"

	"github.com/akmonengine/cloth/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// CellKey is the integer coordinate of a cell in 3D space
type CellKey struct {
	X, Y, Z int
}

// Cell holds the indices of the triangles whose bounding box touches it
type Cell struct {
	triangleIndices []int
}

// SpatialGrid is a uniform hashed grid of triangle bounding boxes.
// Different cells may share a bucket, queries only ever return too many candidates, never too few.
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// NewSpatialGrid creates a grid with numCells buckets, rounded up to a power of two
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	if cellSize <= 0 {
		cellSize = DEFAULT_CELL_SIZE
	}
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].triangleIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert adds the triangle to every cell its bounding box covers
func (sg *SpatialGrid) Insert(triangleIndex int, aabb actor.AABB) {
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)
	if sg.cellCount(minCell, maxCell) > len(sg.cells) {
		// wider than the table, it ends up in every bucket anyway
		for i := range sg.cells {
			sg.cells[i].triangleIndices = append(sg.cells[i].triangleIndices, triangleIndex)
		}
		return
	}

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			for z := minCell.Z; z <= maxCell.Z; z++ {
				cellIdx := sg.hashCell(CellKey{x, y, z})
				sg.cells[cellIdx].triangleIndices = append(sg.cells[cellIdx].triangleIndices, triangleIndex)
			}
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].triangleIndices = sg.cells[i].triangleIndices[:0]
	}
}

func (sg *SpatialGrid) SortCells() {
	for i := range sg.cells {
		if len(sg.cells[i].triangleIndices) > 1 {
			sort.Ints(sg.cells[i].triangleIndices)
		}
	}
}

// GridQuery deduplicates the triangles met in several cells during a query.
// The grid is only read by queries, concurrent queries are safe with one GridQuery each.
type GridQuery struct {
	stamps []uint32
	epoch  uint32
}

func NewGridQuery(trianglesCount int) *GridQuery {
	return &GridQuery{stamps: make([]uint32, trianglesCount)}
}

func (q *GridQuery) next() {
	q.epoch++
	if q.epoch == 0 {
		clear(q.stamps)
		q.epoch = 1
	}
}

// Candidates appends to out, in ascending order, the triangles whose bounding box overlaps aabb
func (sg *SpatialGrid) Candidates(aabb actor.AABB, triangles []actor.Triangle, points []actor.MassPoint, query *GridQuery, out []int) []int {
	first := len(out)
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)
	query.next()

	visit := func(cellIdx int) {
		for _, triIdx := range sg.cells[cellIdx].triangleIndices {
			if query.stamps[triIdx] == query.epoch {
				continue
			}
			query.stamps[triIdx] = query.epoch
			if triangles[triIdx].AABB(points).Overlaps(aabb) {
				out = append(out, triIdx)
			}
		}
	}

	if sg.cellCount(minCell, maxCell) > len(sg.cells) {
		for i := range sg.cells {
			visit(i)
		}
	} else {
		for x := minCell.X; x <= maxCell.X; x++ {
			for y := minCell.Y; y <= maxCell.Y; y++ {
				for z := minCell.Z; z <= maxCell.Z; z++ {
					visit(sg.hashCell(CellKey{x, y, z}))
				}
			}
		}
	}

	sort.Ints(out[first:])

	return out
}

// cellCount returns the number of cells in the box, saturating instead of overflowing
func (sg *SpatialGrid) cellCount(minCell, maxCell CellKey) int {
	count := 1
	for _, span := range [3]int{maxCell.X - minCell.X + 1, maxCell.Y - minCell.Y + 1, maxCell.Z - minCell.Z + 1} {
		if span > len(sg.cells) || count > len(sg.cells) {
			return len(sg.cells) + 1
		}
		count *= span
	}

	return count
}

// worldToCell converts a world position to the coordinates of its cell
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
		Z: int(math.Floor(pos.Z() / sg.cellSize)),
	}
}

// hashCell maps a cell to a bucket of the table
func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663) ^ (key.Z * 83492791)
	return h & sg.cellMask
}

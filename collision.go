package cloth

import (
	"github.com/akmonengine/cloth/actor"
	"github.com/akmonengine/cloth/intersect"
	"github.com/go-gl/mathgl/mgl64"
)

// Contact is a mass point whose motion segment crossed a triangle during the frame
type Contact struct {
	Point    int
	Triangle int
}

// CollisionDetector tests the motion segment of every point against the triangles of the cloth.
// Without a grid this is an O(points × triangles) scan per frame, fine for small meshes only.
type CollisionDetector struct {
	Workers int
	// SkipIncident ignores the triangles a point is a corner of.
	// A moving corner always touches its own triangles at t=0.
	SkipIncident bool
	// Grid is an optional broad phase, it never changes the reported contacts
	Grid *SpatialGrid
}

// Detect returns the contacts ordered by point index then triangle index, whatever the worker count.
// Segments go from the current to the predicted positions, triangles are taken at the current positions.
func (d *CollisionDetector) Detect(current, predicted []actor.MassPoint, triangles []actor.Triangle) []Contact {
	if len(triangles) == 0 {
		return nil
	}

	if d.Grid != nil {
		d.Grid.Clear()
		for i, tri := range triangles {
			d.Grid.Insert(i, tri.AABB(current))
		}
		d.Grid.SortCells()
	}

	workers := max(DEFAULT_WORKERS, d.Workers)
	results := make([][]Contact, workers)

	chunks(workers, len(current), func(worker, start, end int) {
		var contacts []Contact
		var query *GridQuery
		var candidates []int
		if d.Grid != nil {
			query = NewGridQuery(len(triangles))
		}

		for pIdx := start; pIdx < end; pIdx++ {
			startPoint := current[pIdx].Position
			endPoint := predicted[pIdx].Position

			if d.Grid != nil {
				candidates = d.Grid.Candidates(actor.SegmentAABB(startPoint, endPoint), triangles, current, query, candidates[:0])
				for _, triIdx := range candidates {
					contacts = d.test(contacts, pIdx, triIdx, triangles[triIdx], startPoint, endPoint, current)
				}
				continue
			}

			for triIdx, tri := range triangles {
				contacts = d.test(contacts, pIdx, triIdx, tri, startPoint, endPoint, current)
			}
		}
		results[worker] = contacts
	})

	var contacts []Contact
	for _, r := range results {
		contacts = append(contacts, r...)
	}

	return contacts
}

func (d *CollisionDetector) test(contacts []Contact, pIdx, triIdx int, tri actor.Triangle, start, end mgl64.Vec3, current []actor.MassPoint) []Contact {
	if d.SkipIncident && tri.Has(pIdx) {
		return contacts
	}

	p1, p2, p3 := tri.Vertices(current)
	if _, ok := intersect.SegmentTriangle(start, end, p1, p2, p3); ok {
		contacts = append(contacts, Contact{Point: pIdx, Triangle: triIdx})
	}

	return contacts
}

package main

import (
	"fmt"
	"math"

	"github.com/akmonengine/cloth"
	"github.com/akmonengine/cloth/actor"
	"github.com/akmonengine/cloth/intersect"
	"github.com/go-gl/mathgl/mgl64"
)

// CollisionDebugger instruments the frames of a cloth
type CollisionDebugger interface {
	DebugPoint(body *cloth.RigidBody, index int)
	DebugContact(body *cloth.RigidBody, point int)
	DebugStretch(body *cloth.RigidBody)
}

// SimpleDebugger prints everything to stdout
type SimpleDebugger struct{}

func (d *SimpleDebugger) DebugPoint(body *cloth.RigidBody, index int) {
	p := body.MassPoints()[index]
	fmt.Printf("  Point %d: position=%v velocity=%v (len=%.4f) pinned=%v\n",
		index, p.Position, p.Velocity, p.Velocity.Len(), p.IsPinned())
}

func (d *SimpleDebugger) DebugContact(body *cloth.RigidBody, point int) {
	p := body.MassPoints()[point]
	fmt.Printf("  💥 Point %d collides, position=%v\n", point, p.Position)
}

func (d *SimpleDebugger) DebugStretch(body *cloth.RigidBody) {
	worst, worstIdx := 0.0, -1
	for i, s := range body.Stretches() {
		if e := math.Abs(s.Error(body.MassPoints())); e > worst {
			worst, worstIdx = e, i
		}
	}
	if worstIdx < 0 {
		fmt.Printf("  Stretch: every spring at rest\n")
		return
	}
	s := body.Stretches()[worstIdx]
	fmt.Printf("  Stretch: worst spring %d (%d-%d), error=%.6f rest=%.4f\n", worstIdx, s.A, s.B, worst, s.RestDistance)
}

// SetupScene creates a small cloth hanging from its top-left corner
func SetupScene(size int) (*cloth.RigidBody, cloth.GridConfig, CollisionDebugger) {
	debugger := &SimpleDebugger{}

	config := cloth.DefaultConfig()
	config.Iterations = 20
	config.Seed = 1

	grid := cloth.DefaultGridConfig(size)
	body, _, err := cloth.NewCloth(grid, config)
	if err != nil {
		panic(err)
	}

	return body, grid, debugger
}

// TestSegmentTriangle shows the narrow phase on a segment crossing the unit triangle
func TestSegmentTriangle() {
	fmt.Println("🔍 Segment / triangle")
	start := mgl64.Vec3{0.25, 0.25, 1}
	end := mgl64.Vec3{0.25, 0.25, -1}
	hit, ok := intersect.SegmentTriangleHit(start, end, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0})
	fmt.Printf("  segment %v -> %v\n", start, end)
	fmt.Printf("  hit=%v u=%.3f v=%.3f t=%.3f point=%v\n", ok, hit.U, hit.V, hit.T, hit.Point)
	fmt.Println()
}

// TestHangingCloth steps the cloth and prints the free corner frame by frame
func TestHangingCloth() {
	fmt.Println("🧪 Hanging cloth")
	fmt.Println("================")

	body, grid, debugger := SetupScene(4)
	corner := grid.Index(cloth.GridCoord{I: grid.Size, J: 0})

	body.Events.Subscribe(cloth.COLLISION_ENTER, func(event cloth.Event) {
		debugger.DebugContact(body, event.(cloth.CollisionEnterEvent).Point)
	})

	fmt.Printf("Initial configuration:\n")
	fmt.Printf("  Points: %d, stretches: %d, triangles: %d\n",
		len(body.MassPoints()), len(body.Stretches()), len(body.Triangles()))
	fmt.Printf("  Gravity: %v\n", body.Config.Gravity)
	debugger.DebugPoint(body, grid.Index(grid.Pin))
	fmt.Println()

	const dt float64 = 1.0 / 60.0
	const maxSteps int = 120

	for step := range maxSteps {
		before := body.MassPoints()[corner].Position

		body.Update(dt)

		if step%20 != 0 && len(body.Highlighted()) == 0 {
			continue
		}
		fmt.Printf("--- STEP %d ---\n", step+1)
		debugger.DebugPoint(body, corner)
		fmt.Printf("  Corner moved by %.6f\n", body.MassPoints()[corner].Position.Sub(before).Len())
		debugger.DebugStretch(body)
		fmt.Printf("  Colliding points: %v\n", body.Highlighted())
		fmt.Println()
	}

	fmt.Println("Done!")
}

func pinnedCount(points []actor.MassPoint) int {
	n := 0
	for _, p := range points {
		if p.IsPinned() {
			n++
		}
	}
	return n
}

func main() {
	TestSegmentTriangle()
	TestHangingCloth()

	body, _, _ := SetupScene(10)
	fmt.Printf("A 10x10 cloth has %d pinned point\n", pinnedCount(body.MassPoints()))
}

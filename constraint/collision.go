package constraint

import "github.com/akmonengine/cloth/actor"

// Collision undoes the motion of a point for the current frame.
// It lives for a single frame and is discarded once the frame is committed.
type Collision struct {
	Point int
}

func (c Collision) Solve(predicted []actor.MassPoint, current []actor.MassPoint) {
	predicted[c.Point].Position = current[c.Point].Position
}

package constraint

import (
	"github.com/akmonengine/cloth/actor"
)

// DefaultStiffness applies the full correction on every relaxation pass
const DefaultStiffness = 1.0

// Constraint projects the predicted mass points so that they satisfy it.
// current is the authoritative state at the start of the frame, it is never modified.
type Constraint interface {
	Solve(predicted []actor.MassPoint, current []actor.MassPoint)
}

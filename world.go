package cloth

// World steps several independent cloths
type World struct {
	// List of all cloths in the world
	Bodies  []*RigidBody
	Workers int
}

// AddBody adds a cloth to the world
func (w *World) AddBody(body *RigidBody) {
	w.Bodies = append(w.Bodies, body)
}

// RemoveBody removes a cloth from the world
func (w *World) RemoveBody(body *RigidBody) {
	k := -1
	for i, b := range w.Bodies {
		if b == body {
			k = i
			break
		}
	}

	if k != -1 {
		w.Bodies = append(w.Bodies[:k], w.Bodies[k+1:]...)
	}
}

// Step advances every cloth by dt. Bodies share no state, so they are updated in parallel
// when Workers > 1; event listeners may then run concurrently.
func (w *World) Step(dt float64) {
	task(w.Workers, w.Bodies, func(body *RigidBody) {
		body.Update(dt)
	})
}

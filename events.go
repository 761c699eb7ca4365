package cloth

import (
	"maps"
	"slices"
)

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// CollisionEnterEvent is sent when a point starts colliding
type CollisionEnterEvent struct {
	Body  *RigidBody
	Point int
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

// CollisionStayEvent is sent when a point already colliding on the previous frame still collides
type CollisionStayEvent struct {
	Body  *RigidBody
	Point int
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

// CollisionExitEvent is sent when a point stops colliding
type CollisionExitEvent struct {
	Body  *RigidBody
	Point int
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events dispatches the collision events of a body at the end of each Update
type Events struct {
	body *RigidBody

	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Collision tracking for Enter/Stay/Exit detection
	previousActivePoints map[int]bool
	currentActivePoints  map[int]bool
}

func NewEvents() Events {
	return Events{
		listeners:            make(map[EventType][]EventListener),
		buffer:               make([]Event, 0, 64),
		previousActivePoints: make(map[int]bool),
		currentActivePoints:  make(map[int]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		body := e.body
		*e = NewEvents()
		e.body = body
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordCollisions marks the colliding points of the frame, duplicates are allowed
func (e *Events) recordCollisions(points []int) {
	if e.listeners == nil {
		return
	}
	for _, p := range points {
		e.currentActivePoints[p] = true
	}
}

// processCollisionEvents compares current and previous points to detect Enter/Stay/Exit.
// Events are buffered by increasing point index.
func (e *Events) processCollisionEvents() {
	current := slices.Sorted(maps.Keys(e.currentActivePoints))
	for _, p := range current {
		if e.previousActivePoints[p] {
			e.buffer = append(e.buffer, CollisionStayEvent{Body: e.body, Point: p})
		} else {
			e.buffer = append(e.buffer, CollisionEnterEvent{Body: e.body, Point: p})
		}
	}

	previous := slices.Sorted(maps.Keys(e.previousActivePoints))
	for _, p := range previous {
		if !e.currentActivePoints[p] {
			e.buffer = append(e.buffer, CollisionExitEvent{Body: e.body, Point: p})
		}
	}

	// Swap for next frame and clear current
	e.previousActivePoints, e.currentActivePoints = e.currentActivePoints, e.previousActivePoints
	clear(e.currentActivePoints)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	if e.listeners == nil {
		return
	}
	e.processCollisionEvents()

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}
	e.buffer = e.buffer[:0]
}

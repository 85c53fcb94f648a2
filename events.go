package sparks

import "github.com/go-gl/mathgl/mgl32"

// EventType identifies a particle lifecycle transition.
type EventType uint8

const (
	EventEmitted  EventType = iota // a slot was claimed by Emit
	EventCollided                  // velocity was reflected off the collision plane
	EventExpired                   // life ran out and the slot went inactive
)

// String returns the lowercase name of the event type.
func (e EventType) String() string {
	switch e {
	case EventEmitted:
		return "emitted"
	case EventCollided:
		return "collided"
	case EventExpired:
		return "expired"
	default:
		return "unknown"
	}
}

// LifecycleEvent describes one transition of one slot.
type LifecycleEvent struct {
	Type     EventType
	Slot     int
	Position mgl32.Vec2
	Velocity mgl32.Vec2
}

// EventSink receives lifecycle events from a System. Sinks observe only;
// they are called synchronously from Emit and Update and must not call
// back into the System.
type EventSink interface {
	EmitEvent(event LifecycleEvent)
}

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(event LifecycleEvent)

// EmitEvent calls f(event).
func (f EventSinkFunc) EmitEvent(event LifecycleEvent) {
	f(event)
}

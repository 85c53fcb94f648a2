package ecs

import (
	"github.com/phanxgames/sparks"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type for particle lifecycle events.
// Subscribe to this in your ECS systems to react to emissions, bounces and
// expiries.
var LifecycleEventType = events.NewEventType[sparks.LifecycleEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Lifecycle events are published to LifecycleEventType and can be
// consumed with events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) sparks.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event sparks.LifecycleEvent) {
	LifecycleEventType.Publish(s.world, event)
}

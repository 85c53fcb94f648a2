// Package ecs provides ECS adapters for sparks' particle lifecycle events.
//
// The primary adapter is [NewDonburiSink], which bridges particle events
// (emitted, collided, expired) into a [Donburi] world as typed events.
// Subscribe to [LifecycleEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	system.SetEventSink(sink)
//
// Events are queued by Donburi; nothing is delivered until
// LifecycleEventType.ProcessEvents (or events.ProcessAllEvents) runs.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

// Package ecs provides ECS adapters for evergreen's shell events.
//
// The primary adapter is [NewDonburiSink], which bridges evergreen scene
// events (mode changes, greeting shown and hidden) into a [Donburi] world as
// typed events, and keeps a [State] singleton entity current. Subscribe to
// [SceneEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs

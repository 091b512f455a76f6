// Package ecs provides ECS adapters for evergreen.
package ecs

import (
	"github.com/phanxgames/evergreen"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// SceneEventType is the Donburi event type for evergreen shell events.
// Subscribe to this in your ECS systems to receive mode and greeting changes.
var SceneEventType = events.NewEventType[evergreen.SceneEvent]()

// SceneState mirrors the latest shell state on a singleton entity.
type SceneState struct {
	Mode     evergreen.Mode
	ShowText bool
	// Changes counts the events applied so far.
	Changes int
}

// State is the component holding SceneState.
var State = donburi.NewComponentType[SceneState]()

var stateQuery = donburi.NewQuery(filter.Contains(State))

type donburiSink struct {
	world donburi.World
	entry *donburi.Entry
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// published to SceneEventType and can be consumed with events.Subscribe and
// ProcessEvents. The sink also keeps a State singleton entity in step with
// the shell, creating it if the world has none.
func NewDonburiSink(world donburi.World) evergreen.EventSink {
	entry, ok := stateQuery.First(world)
	if !ok {
		entry = world.Entry(world.Create(State))
	}
	return &donburiSink{world: world, entry: entry}
}

func (s *donburiSink) EmitEvent(event evergreen.SceneEvent) {
	st := State.Get(s.entry)
	st.Mode = event.Mode
	st.ShowText = event.ShowText
	st.Changes++
	SceneEventType.Publish(s.world, event)
}

// CurrentState returns the SceneState singleton of world, if a sink has
// created one.
func CurrentState(world donburi.World) (SceneState, bool) {
	entry, ok := stateQuery.First(world)
	if !ok {
		return SceneState{}, false
	}
	return *State.Get(entry), true
}

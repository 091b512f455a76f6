package ecs

import (
	"testing"

	"github.com/phanxgames/evergreen"

	"github.com/yohamta/donburi"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
	st, ok := CurrentState(world)
	if !ok {
		t.Fatal("sink should create a State entity")
	}
	if st.Mode != evergreen.ModeScattered || st.ShowText || st.Changes != 0 {
		t.Errorf("initial state = %+v", st)
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []evergreen.SceneEvent
	SceneEventType.Subscribe(world, func(w donburi.World, e evergreen.SceneEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(evergreen.SceneEvent{
		Kind: evergreen.EventModeChanged,
		Mode: evergreen.ModeAssembled,
		Time: 0.5,
	})
	sink.EmitEvent(evergreen.SceneEvent{
		Kind:     evergreen.EventTextShown,
		Mode:     evergreen.ModeAssembled,
		ShowText: true,
		Time:     1.7,
	})

	// Events are queued; process them.
	SceneEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Kind != evergreen.EventModeChanged || e.Mode != evergreen.ModeAssembled {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Kind != evergreen.EventTextShown || !e.ShowText || e.Time != 1.7 {
		t.Errorf("event 1: %+v", e)
	}

	st, _ := CurrentState(world)
	if st.Mode != evergreen.ModeAssembled || !st.ShowText || st.Changes != 2 {
		t.Errorf("state = %+v", st)
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink evergreen.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_SharesStateEntity(t *testing.T) {
	world := donburi.NewWorld()
	a := NewDonburiSink(world)
	b := NewDonburiSink(world)

	a.EmitEvent(evergreen.SceneEvent{Kind: evergreen.EventModeChanged, Mode: evergreen.ModeAssembled})
	b.EmitEvent(evergreen.SceneEvent{Kind: evergreen.EventTextShown, Mode: evergreen.ModeAssembled, ShowText: true})

	if n := stateQuery.Count(world); n != 1 {
		t.Fatalf("State entities = %d, want 1", n)
	}
	st, _ := CurrentState(world)
	if st.Changes != 2 {
		t.Errorf("Changes = %d, want 2", st.Changes)
	}
}

func TestDonburiSink_WithShell(t *testing.T) {
	world := donburi.NewWorld()
	var timers evergreen.Timers
	shell := evergreen.NewShell(1.2, &timers)
	shell.SetEventSink(NewDonburiSink(world))

	var kinds []evergreen.EventKind
	SceneEventType.Subscribe(world, func(w donburi.World, e evergreen.SceneEvent) {
		kinds = append(kinds, e.Kind)
	})

	shell.Toggle()
	shell.Advance(1.0)
	shell.Advance(1.3)
	SceneEventType.ProcessEvents(world)

	want := []evergreen.EventKind{evergreen.EventModeChanged, evergreen.EventTextShown}
	if len(kinds) != len(want) {
		t.Fatalf("events = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, kinds[i], want[i])
		}
	}
}

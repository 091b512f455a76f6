package evergreen

// EventKind identifies what a SceneEvent reports.
type EventKind uint8

const (
	// EventModeChanged is emitted when the shell flips between scattered and
	// assembled.
	EventModeChanged EventKind = iota
	// EventTextShown is emitted when the greeting becomes visible.
	EventTextShown
	// EventTextHidden is emitted when the greeting is hidden.
	EventTextHidden
)

func (k EventKind) String() string {
	switch k {
	case EventModeChanged:
		return "mode-changed"
	case EventTextShown:
		return "text-shown"
	case EventTextHidden:
		return "text-hidden"
	default:
		return "unknown"
	}
}

// SceneEvent describes a change of the shell state.
type SceneEvent struct {
	Kind     EventKind
	Mode     Mode
	ShowText bool
	// Time is the scene clock, in seconds, at which the change happened.
	Time float64
}

// EventSink receives scene events. The ecs package provides a Donburi-backed
// implementation.
type EventSink interface {
	EmitEvent(event SceneEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(SceneEvent)

// EmitEvent calls f(event).
func (f EventSinkFunc) EmitEvent(event SceneEvent) { f(event) }

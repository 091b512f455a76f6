package evergreen

import "github.com/charmbracelet/log"

// Shell owns the binary mode and the greeting visibility. Its handlers only
// flip flags and schedule or cancel the reveal timer; all animation happens in
// the frame loop.
type Shell struct {
	mode        Mode
	showText    bool
	revealDelay float64
	reveal      TimerHandle
	timers      *Timers

	sink   EventSink
	logger *log.Logger
}

// NewShell returns a shell in scattered mode with the text hidden. Timers
// must be advanced by the frame loop for the reveal to fire.
func NewShell(revealDelay float64, timers *Timers) *Shell {
	if timers == nil {
		timers = &Timers{}
	}
	return &Shell{revealDelay: revealDelay, timers: timers, logger: discardLogger()}
}

// SetEventSink installs sink to receive mode and text changes. Nil disables
// event delivery.
func (s *Shell) SetEventSink(sink EventSink) { s.sink = sink }

// SetLogger sets the logger used for state changes.
func (s *Shell) SetLogger(l *log.Logger) {
	if l == nil {
		l = discardLogger()
	}
	s.logger = l
}

// Mode returns the current mode.
func (s *Shell) Mode() Mode { return s.mode }

// ShowText reports whether the greeting is visible.
func (s *Shell) ShowText() bool { return s.showText }

// RevealPending reports whether a reveal is scheduled.
func (s *Shell) RevealPending() bool { return s.timers.Scheduled(s.reveal) }

// Toggle flips the mode. Going to assembled schedules the greeting reveal;
// going to scattered cancels any pending reveal and hides the greeting.
func (s *Shell) Toggle() {
	if s.mode == ModeScattered {
		s.setMode(ModeAssembled)
		s.timers.Cancel(s.reveal)
		s.reveal = s.timers.After(s.revealDelay, s.fireReveal)
		return
	}
	s.setMode(ModeScattered)
	s.timers.Cancel(s.reveal)
	s.reveal = TimerHandle{}
	s.setText(false)
}

// SurfaceTap handles a tap on the scene itself. While scattered it behaves
// like Toggle; while assembled it only flips the greeting visibility.
func (s *Shell) SurfaceTap() {
	if s.mode == ModeScattered {
		s.Toggle()
		return
	}
	s.setText(!s.showText)
}

// Advance moves the shell's timers to the scene clock now, firing a due
// reveal.
func (s *Shell) Advance(now float64) {
	s.timers.Advance(now)
}

func (s *Shell) fireReveal() {
	s.reveal = TimerHandle{}
	if s.mode != ModeAssembled {
		return
	}
	s.logger.Debug("reveal fired", "t", s.timers.Now())
	s.setText(true)
}

func (s *Shell) setMode(m Mode) {
	if s.mode == m {
		return
	}
	s.mode = m
	s.logger.Info("mode changed", "mode", m)
	s.emit(SceneEvent{Kind: EventModeChanged, Mode: m, ShowText: s.showText, Time: s.timers.Now()})
}

func (s *Shell) setText(show bool) {
	if s.showText == show {
		return
	}
	s.showText = show
	kind := EventTextHidden
	if show {
		kind = EventTextShown
	}
	s.emit(SceneEvent{Kind: kind, Mode: s.mode, ShowText: show, Time: s.timers.Now()})
}

func (s *Shell) emit(ev SceneEvent) {
	if s.sink != nil {
		s.sink.EmitEvent(ev)
	}
}

package evergreen

import (
	"fmt"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	defaultWidth  = 1280
	defaultHeight = 800

	// maxFrameDelta clamps the frame delta after a stall so the blend and the
	// tweens do not jump.
	maxFrameDelta = 0.1
)

// Clock supplies frame timestamps. Scenes without a clock advance by a fixed
// 1/TPS step per Update.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Scene is the frame driver. It owns every piece of per-scene state: the
// particle field, the blend, the shell and its timers, the secondary systems,
// the camera, the overlay and the render resources. Step is the only writer
// of animation state; input handlers only flip shell flags or move the
// camera.
type Scene struct {
	cfg    Config
	logger *log.Logger
	debug  bool
	stats  debugStats

	clock    Clock
	lastTick time.Time
	t        float64
	frame    uint64
	disposed bool

	timers   Timers
	shell    *Shell
	blend    *BlendController
	field    *Field
	arena    *TransformArena
	star     *Star
	snow     *Snow
	sparkles *Sparkles
	camera   *Camera
	overlay  *Overlay
	button   *Button

	background Color
	width      int
	height     int

	// Render state, built on the first Draw.
	renderer      *renderer
	surfaceFailed bool

	// Input state
	pointers     [maxPointers]pointerState
	dragDeadZone float64
	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID
	pinch        pinchState

	inject     sampleQueue
	testRunner *TestRunner

	// ScreenshotDir is the directory queued screenshots are written to.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewScene validates cfg and builds the whole population synchronously, so
// the field is complete before any handler can run. GPU resources are not
// touched until the first Draw.
func NewScene(cfg Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bg, err := ParseColor(cfg.Background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	if _, err := ParseColor(cfg.Snow.Color); err != nil {
		return nil, fmt.Errorf("snow: %w", err)
	}
	rng := newRand(cfg.Seed)

	field, err := GenerateField(cfg.Field, rng)
	if err != nil {
		return nil, err
	}
	star, err := NewStar(cfg.Star)
	if err != nil {
		return nil, fmt.Errorf("star: %w", err)
	}
	sparkles, err := NewSparkles(cfg.Sparkles, rng)
	if err != nil {
		return nil, fmt.Errorf("sparkles: %w", err)
	}
	overlay, err := NewOverlay(cfg.Overlay)
	if err != nil {
		return nil, err
	}

	s := &Scene{
		cfg:           cfg,
		logger:        discardLogger(),
		background:    bg,
		blend:         NewBlendController(cfg.Blend.Rate),
		field:         field,
		arena:         NewTransformArena(field.Len()),
		star:          star,
		snow:          NewSnow(cfg.Snow, rng),
		sparkles:      sparkles,
		overlay:       overlay,
		button:        NewButton(overlay.fonts.button),
		dragDeadZone:  defaultDragDeadZone,
		ScreenshotDir: "screenshots",
	}
	s.shell = NewShell(cfg.Overlay.RevealDelay, &s.timers)
	s.camera = NewCamera(cfg.Camera, Rect{Width: defaultWidth, Height: defaultHeight})
	s.resize(defaultWidth, defaultHeight)
	Evaluate(s.field, 0, 0, s.arena)
	return s, nil
}

// SetLogger sets the logger for the scene and its shell. Nil discards.
func (s *Scene) SetLogger(l *log.Logger) {
	if l == nil {
		l = discardLogger()
	}
	s.logger = l
	s.shell.SetLogger(l)
}

// SetEventSink forwards shell events to sink.
func (s *Scene) SetEventSink(sink EventSink) {
	s.shell.SetEventSink(sink)
}

// SetClock makes Update measure frame deltas from c. Nil restores the fixed
// 1/TPS step.
func (s *Scene) SetClock(c Clock) {
	s.clock = c
	s.lastTick = time.Time{}
}

// SetDebugMode enables or disables debug mode. When enabled, arena sizes are
// checked and per-frame timing stats are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	if enabled {
		debugCheckArena(s.logger, "field", s.field.Len(), s.arena.Len())
	}
}

// Config returns the configuration the scene was built with.
func (s *Scene) Config() Config { return s.cfg }

// Shell returns the mode state machine.
func (s *Scene) Shell() *Shell { return s.shell }

// Camera returns the orbit camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Field returns the particle population.
func (s *Scene) Field() *Field { return s.field }

// Arena returns the transforms written by the last Step.
func (s *Scene) Arena() *TransformArena { return s.arena }

// Star returns the star.
func (s *Scene) Star() *Star { return s.star }

// Snow returns the snow population.
func (s *Scene) Snow() *Snow { return s.snow }

// Sparkles returns the sparkle population.
func (s *Scene) Sparkles() *Sparkles { return s.sparkles }

// Background returns the clear color.
func (s *Scene) Background() Color { return s.background }

// Blend returns the current blend factor.
func (s *Scene) Blend() float64 { return s.blend.Value }

// Time returns the elapsed scene time in seconds.
func (s *Scene) Time() float64 { return s.t }

// Frame returns the number of steps taken.
func (s *Scene) Frame() uint64 { return s.frame }

// Disposed reports whether Dispose has been called.
func (s *Scene) Disposed() bool { return s.disposed }

// Toggle flips the scene mode, as the button does.
func (s *Scene) Toggle() {
	if !s.disposed {
		s.shell.Toggle()
	}
}

// SurfaceTap forwards a tap on the scene to the shell.
func (s *Scene) SurfaceTap() {
	if !s.disposed {
		s.shell.SurfaceTap()
	}
}

// Update measures the frame delta, runs the test script and input, and steps
// the scene. After Dispose it does nothing and returns ErrDisposed.
func (s *Scene) Update() error {
	if s.disposed {
		return ErrDisposed
	}
	dt := 1.0 / float64(ebiten.TPS())
	if s.clock != nil {
		now := s.clock.Now()
		if !s.lastTick.IsZero() {
			dt = now.Sub(s.lastTick).Seconds()
		}
		s.lastTick = now
	}

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	s.Step(dt)
	return nil
}

// Step advances the scene by dt seconds: timers, blend, particle transforms,
// star, snow, sparkles, overlay and camera, in that order. Negative or NaN
// deltas count as zero; large ones are clamped.
func (s *Scene) Step(dt float64) {
	if s.disposed {
		return
	}
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	dt = min(dt, maxFrameDelta)

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.frame++
	s.t += dt
	s.shell.Advance(s.t)

	mode := s.shell.Mode()
	b := s.blend.Step(dt, mode.Target())

	var te time.Time
	if s.debug {
		te = time.Now()
	}
	Evaluate(s.field, float32(b), float32(s.t), s.arena)
	if s.debug {
		s.stats.evaluateTime = time.Since(te)
	}

	s.star.Update(dt, s.t, mode)
	s.snow.Update(dt)
	s.sparkles.Update(s.t)

	s.button.SetMode(mode)
	s.overlay.SetVisible(s.shell.ShowText())
	s.button.Update(float32(dt))
	s.overlay.Update(float32(dt))
	s.camera.update(float32(dt), s.t)

	if s.debug {
		s.stats.stepTime = time.Since(t0)
	}
}

// Layout records the outside size and returns it as the logical screen size.
func (s *Scene) Layout(outsideWidth, outsideHeight int) (int, int) {
	w, h := max(outsideWidth, 1), max(outsideHeight, 1)
	if w != s.width || h != s.height {
		s.resize(w, h)
	}
	return w, h
}

func (s *Scene) resize(w, h int) {
	s.width, s.height = w, h
	s.camera.SetViewport(Rect{Width: float64(w), Height: float64(h)})
	s.overlay.Layout(w, h)
	s.button.Layout(w, h)
	if s.renderer != nil {
		s.renderer.pool.Retain(w, h)
	}
}

// Draw renders the scene onto screen. A nil or empty screen, a disposed
// scene or an unavailable surface draws nothing.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.disposed || screen == nil {
		return
	}
	b := screen.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	if b.Dx() != s.width || b.Dy() != s.height {
		s.resize(b.Dx(), b.Dy())
	}
	r := s.ensureRenderer()
	if r == nil {
		return
	}

	r.draw(s, screen)
	s.overlay.Draw(screen)
	s.button.Draw(screen)

	if s.debug {
		s.debugLog(s.stats)
	}
	s.flushScreenshots(screen)
}

// ensureRenderer builds the render resources on first use. A failure is
// logged once and leaves the scene drawing nothing.
func (s *Scene) ensureRenderer() *renderer {
	if s.renderer != nil || s.surfaceFailed {
		return s.renderer
	}
	r, err := newRenderer(s)
	if err != nil {
		s.surfaceFailed = true
		s.logger.Warn("render surface unavailable", "err", err)
		return nil
	}
	s.renderer = r
	return r
}

// Dispose releases the render resources and cancels pending timers. Update
// and Draw do nothing afterwards.
func (s *Scene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.timers.Reset()
	if s.renderer != nil {
		s.renderer.dispose()
		s.renderer = nil
	}
	s.logger.Info("scene disposed", "frames", s.frame)
}

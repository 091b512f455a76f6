// Package termsink renders an evergreen scene into a terminal with tcell.
// Each cell shows the nearest projected particle, star, sparkle or snowflake,
// colored by its palette color, faded toward the background with depth.
package termsink

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/phanxgames/evergreen"
)

const (
	// cellAspect is the height of a terminal cell relative to its width.
	cellAspect = 2
	// fogNear and fogFar bound the depth range over which colors fade.
	fogNear = 10.0
	fogFar  = 40.0
	// maxFog is the strongest fade toward the background.
	maxFog = 0.85

	orbitStep = 0.08
	zoomStep  = 0.9

	glyphFoliage  = '▲'
	glyphOrnament = '●'
	glyphStar     = '★'
	glyphSparkle  = '+'
	glyphSnow     = '·'
)

// Renderer draws a scene onto a tcell screen. It keeps a per-cell depth
// buffer so nearer objects win, and reuses it across frames.
type Renderer struct {
	screen   tcell.Screen
	scene    *evergreen.Scene
	logger   *log.Logger
	exposure float64

	bg        colorful.Color
	snowColor evergreen.Color
	depth     []float64
	w, h      int

	// Left button tracking: a release in the pressed cell taps, moving
	// between cells while held orbits the camera instead.
	held     bool
	dragging bool
	pressX   int
	pressY   int
	lastX    int
	lastY    int
}

// New returns a renderer for scene on screen. The screen must already be
// initialized.
func New(screen tcell.Screen, scene *evergreen.Scene) *Renderer {
	bg := scene.Background()
	r := &Renderer{
		screen:   screen,
		scene:    scene,
		logger:   log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel}),
		exposure: scene.Config().Post.Exposure,
		bg:       colorful.Color{R: float64(bg.R), G: float64(bg.G), B: float64(bg.B)},
	}
	// NewScene has already validated the snow color.
	r.snowColor, _ = evergreen.ParseColor(scene.Config().Snow.Color)
	r.resize()
	return r
}

// SetLogger sets the logger used for lifecycle messages.
func (r *Renderer) SetLogger(l *log.Logger) {
	if l != nil {
		r.logger = l
	}
}

// resize matches the camera viewport and the depth buffer to the screen.
// The viewport is cellAspect times taller than the cell grid so projected
// shapes keep their proportions.
func (r *Renderer) resize() {
	w, h := r.screen.Size()
	if w == r.w && h == r.h && r.depth != nil {
		return
	}
	r.w, r.h = w, h
	r.depth = make([]float64, max(w*h, 0))
	r.scene.Camera().SetViewport(evergreen.Rect{Width: float64(w), Height: float64(h * cellAspect)})
}

// Draw renders the current scene state and shows it.
func (r *Renderer) Draw() {
	r.resize()
	bgStyle := tcell.StyleDefault.Background(r.tcellColor(r.bg))
	r.screen.Fill(' ', bgStyle)
	for i := range r.depth {
		r.depth[i] = math.Inf(1)
	}

	s := r.scene
	for _, p := range s.Snow().Arena().Positions {
		r.plot(p, glyphSnow, r.snowColor, 1)
	}

	field := s.Field()
	arena := s.Arena()
	for i := range field.Particles {
		g := glyphFoliage
		if field.Particles[i].Ornament {
			g = glyphOrnament
		}
		r.plot(arena.Positions[i], g, field.Particles[i].Color, 1)
	}

	sp := s.Sparkles()
	for i, p := range sp.Positions {
		r.plot(p, glyphSparkle, sp.Color, float64(sp.Alpha[i])*2)
	}

	if st := s.Star(); st.Visible() {
		r.plot(st.Position(), glyphStar, st.Color, st.Intensity)
	}

	r.drawText()
	r.screen.Show()
}

// plot draws glyph for the group-space point p if it is the nearest thing in
// its cell. gain scales the color before tone mapping.
func (r *Renderer) plot(p mgl32.Vec3, glyph rune, c evergreen.Color, gain float64) {
	sx, sy, depth, ok := r.scene.Camera().Project(p)
	if !ok {
		return
	}
	x, y := int(sx), int(sy/cellAspect)
	if x < 0 || y < 0 || x >= r.w || y >= r.h {
		return
	}
	idx := y*r.w + x
	if depth >= r.depth[idx] {
		return
	}
	r.depth[idx] = depth

	m := evergreen.ToneMapColor(c.Scale(float32(gain * r.exposure)))
	lit := colorful.Color{R: float64(m.R), G: float64(m.G), B: float64(m.B)}
	fog := min(max((depth-fogNear)/(fogFar-fogNear), 0), 1) * maxFog
	col := lit.BlendLab(r.bg, fog).Clamped()
	style := tcell.StyleDefault.Foreground(r.tcellColor(col)).Background(r.tcellColor(r.bg))
	r.screen.SetContent(x, y, glyph, nil, style)
}

func (r *Renderer) tcellColor(c colorful.Color) tcell.Color {
	cr, cg, cb := c.RGB255()
	return tcell.NewRGBColor(int32(cr), int32(cg), int32(cb))
}

// drawText writes the header, the greeting and the toggle hint.
func (r *Renderer) drawText() {
	cfg := r.scene.Config().Overlay
	shell := r.scene.Shell()
	header := tcell.StyleDefault.Foreground(tcell.NewRGBColor(212, 175, 55)).Background(r.tcellColor(r.bg))
	r.putString(1, 0, cfg.Header, header)

	if shell.ShowText() {
		title := header.Foreground(tcell.NewRGBColor(255, 215, 0)).Bold(true)
		row := r.h / 6
		for i, line := range splitLines(cfg.Title) {
			r.putCentered(row+i, line, title)
		}
		r.putCentered(row+len(splitLines(cfg.Title))+1, cfg.Subtitle, header.Foreground(tcell.NewRGBColor(230, 255, 255)))
	}

	label := "[space] ASSEMBLE TREE"
	accent := tcell.NewRGBColor(80, 200, 120)
	if shell.Mode() == evergreen.ModeAssembled {
		label = "[space] SCATTER MAGIC"
		accent = tcell.NewRGBColor(251, 191, 36)
	}
	r.putCentered(r.h-2, label, header.Foreground(accent))
}

func (r *Renderer) putCentered(y int, s string, style tcell.Style) {
	r.putString((r.w-len([]rune(s)))/2, y, s, style)
}

func (r *Renderer) putString(x, y int, s string, style tcell.Style) {
	if y < 0 || y >= r.h {
		return
	}
	for _, ch := range s {
		if x >= 0 && x < r.w {
			r.screen.SetContent(x, y, ch, nil, style)
		}
		x++
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}

// HandleEvent applies a terminal event to the scene and reports whether the
// user asked to quit. Keys: space toggles, t taps the surface, arrows orbit,
// +/- zoom, r resets the camera, q or Esc quits. A left click on a particle
// taps the surface; dragging with the left button orbits.
func (r *Renderer) HandleEvent(ev tcell.Event) (quit bool) {
	s := r.scene
	cam := s.Camera()
	switch ev := ev.(type) {
	case *tcell.EventResize:
		r.screen.Sync()
		r.resize()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyLeft:
			cam.Orbit(-orbitStep, 0)
		case tcell.KeyRight:
			cam.Orbit(orbitStep, 0)
		case tcell.KeyUp:
			cam.Orbit(0, -orbitStep)
		case tcell.KeyDown:
			cam.Orbit(0, orbitStep)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true
			case ' ':
				s.Toggle()
			case 't':
				s.SurfaceTap()
			case '+', '=':
				cam.Zoom(zoomStep)
			case '-':
				cam.Zoom(1 / zoomStep)
			case 'r':
				cam.Reset(1)
			}
		}
	case *tcell.EventMouse:
		r.handleMouse(ev)
	}
	return false
}

// handleMouse runs the left-button state machine. tcell reports motion while
// a button is held as repeated events carrying the same button mask, so only
// the press and release edges are acted on.
func (r *Renderer) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !r.held:
		r.held, r.dragging = true, false
		r.pressX, r.pressY = x, y
		r.lastX, r.lastY = x, y

	case down:
		if x == r.lastX && y == r.lastY {
			return
		}
		r.dragging = true
		dx, dy := float64(x-r.lastX), float64(y-r.lastY)*cellAspect
		r.scene.Camera().Orbit(-dx*orbitStep, -dy*orbitStep)
		r.lastX, r.lastY = x, y

	case r.held:
		r.held = false
		if r.dragging || x != r.pressX || y != r.pressY {
			return
		}
		if r.scene.PickParticle(float64(x)+0.5, (float64(y)+0.5)*cellAspect) >= 0 {
			r.scene.SurfaceTap()
		}
	}
}

// Run drives the scene at fps frames per second until ctx is done or the
// user quits. A quit returns nil; a done context returns its error.
// Terminal events are read on a separate goroutine and forwarded over a
// channel; this loop is the only writer of scene state.
func (r *Renderer) Run(ctx context.Context, fps int) error {
	if fps <= 0 {
		fps = 30
	}
	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()
	last := time.Now()
	r.logger.Info("terminal sink running", "fps", fps, "cols", r.w, "rows", r.h)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || r.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			r.scene.Step(now.Sub(last).Seconds())
			last = now
			r.Draw()
		}
	}
}

package evergreen

import (
	"context"
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig controls the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// Fullscreen starts the window in fullscreen mode.
	Fullscreen bool
	// ExitWhenScriptDone ends the game loop once an attached TestRunner has
	// executed every step.
	ExitWhenScriptDone bool
	// Context ends the game loop when it is done. Run then returns its error.
	Context context.Context
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
	cfg   RunConfig
}

func (g *game) Update() error {
	if ctx := g.cfg.Context; ctx != nil && ctx.Err() != nil {
		return ebiten.Termination
	}
	if err := g.scene.Update(); err != nil {
		if errors.Is(err, ErrDisposed) {
			return ebiten.Termination
		}
		return err
	}
	if g.cfg.ExitWhenScriptDone && g.scene.testRunner != nil && g.scene.testRunner.Done() &&
		len(g.scene.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.scene.Layout(outsideWidth, outsideHeight)
}

// Run opens a window and drives scene until the window is closed, then
// disposes the scene. A zero window size reports ErrSurfaceUnavailable
// without opening anything. When cfg.Context is cancelled the window closes
// and Run returns the context's error.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return ErrSurfaceUnavailable
	}
	if cfg.Title == "" {
		cfg.Title = "Evergreen"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Fullscreen)

	scene.Layout(cfg.Width, cfg.Height)
	scene.logger.Info("window open", "width", cfg.Width, "height", cfg.Height, "particles", scene.field.Len())
	defer scene.Dispose()
	if err := ebiten.RunGame(&game{scene: scene, cfg: cfg}); err != nil {
		return err
	}
	if cfg.Context != nil {
		return cfg.Context.Err()
	}
	return nil
}

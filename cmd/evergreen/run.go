package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/evergreen"
	"github.com/spf13/cobra"
)

const (
	defaultWidth  = 1280
	defaultHeight = 800
)

// runOpts holds the flags of the run command.
type runOpts struct {
	scene       sceneOpts
	width       int
	height      int
	fullscreen  bool
	script      string // JSON test script driving synthetic input
	screenshots string // directory for script screenshots
	fps         bool
	debug       bool
}

func newRunCmd() *cobra.Command {
	opts := runOpts{width: defaultWidth, height: defaultHeight, screenshots: "screenshots"}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the scene in a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg, err := opts.scene.load(cmd)
			if err != nil {
				return err
			}
			if opts.fps {
				cfg.Overlay.ShowFPS = true
			}

			scene, err := evergreen.NewScene(cfg)
			if err != nil {
				return err
			}
			scene.SetLogger(logger)
			scene.SetDebugMode(opts.debug)
			scene.ScreenshotDir = opts.screenshots
			attachEventLog(scene, logger)

			rc := evergreen.RunConfig{
				Title:      "Evergreen",
				Width:      opts.width,
				Height:     opts.height,
				Fullscreen: opts.fullscreen,
				Context:    cmd.Context(),
			}
			if opts.script != "" {
				data, err := os.ReadFile(opts.script)
				if err != nil {
					return fmt.Errorf("read script: %w", err)
				}
				runner, err := evergreen.LoadTestScript(data)
				if err != nil {
					return err
				}
				scene.SetTestRunner(runner)
				rc.ExitWhenScriptDone = true
				logger.Info("running script", "path", opts.script)
			} else {
				scene.SetClock(evergreen.SystemClock{})
			}
			return evergreen.Run(scene, rc)
		},
	}

	opts.scene.register(cmd)
	f := cmd.Flags()
	f.IntVar(&opts.width, "width", opts.width, "window width in pixels")
	f.IntVar(&opts.height, "height", opts.height, "window height in pixels")
	f.BoolVar(&opts.fullscreen, "fullscreen", false, "start fullscreen")
	f.StringVar(&opts.script, "script", "", "JSON test script to run, exiting when it completes")
	f.StringVar(&opts.screenshots, "screenshots", opts.screenshots, "directory for script screenshots")
	f.BoolVar(&opts.fps, "fps", false, "show the FPS counter")
	f.BoolVar(&opts.debug, "debug", false, "log per-frame timing stats (with -v)")
	return cmd
}

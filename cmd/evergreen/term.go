package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/evergreen"
	"github.com/phanxgames/evergreen/termsink"
	"github.com/spf13/cobra"
)

// termOpts holds the flags of the term command.
type termOpts struct {
	scene   sceneOpts
	fps     int
	logFile string // the terminal is the display, so logs go to a file
}

func newTermCmd() *cobra.Command {
	opts := termOpts{fps: 30}

	cmd := &cobra.Command{
		Use:   "term",
		Short: "Render the scene in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.scene.load(cmd)
			if err != nil {
				return err
			}

			var w io.Writer = io.Discard
			if opts.logFile != "" {
				f, err := os.Create(opts.logFile)
				if err != nil {
					return fmt.Errorf("open log: %w", err)
				}
				defer f.Close()
				w = f
			}
			logger := newLogger(w, loggerFromContext(cmd.Context()).GetLevel())
			if opts.logFile == "" {
				logger.SetLevel(log.FatalLevel)
			}

			scene, err := evergreen.NewScene(cfg)
			if err != nil {
				return err
			}
			defer scene.Dispose()
			scene.SetLogger(logger)
			attachEventLog(scene, logger)

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init terminal: %w", err)
			}
			defer screen.Fini()
			screen.EnableMouse()
			screen.HideCursor()

			r := termsink.New(screen, scene)
			r.SetLogger(logger)
			return r.Run(cmd.Context(), opts.fps)
		},
	}

	opts.scene.register(cmd)
	f := cmd.Flags()
	f.IntVar(&opts.fps, "fps", opts.fps, "frames per second")
	f.StringVar(&opts.logFile, "log", "", "write logs to this file")
	return cmd
}

package main

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/phanxgames/evergreen"
	"github.com/phanxgames/evergreen/ecs"
	"github.com/yohamta/donburi"
)

// newLogger creates a logger writing to w at the given level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return evergreen.NewLogger(w, level)
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// attachEventLog routes the scene's shell events through a Donburi world and
// logs each one from a subscriber. Events are processed as soon as they are
// published, inside the frame that raised them.
func attachEventLog(scene *evergreen.Scene, l *log.Logger) donburi.World {
	world := donburi.NewWorld()
	ecs.SceneEventType.Subscribe(world, func(w donburi.World, e evergreen.SceneEvent) {
		l.Info("scene event", "kind", e.Kind, "mode", e.Mode, "text", e.ShowText, "t", e.Time)
	})
	sink := ecs.NewDonburiSink(world)
	scene.SetEventSink(evergreen.EventSinkFunc(func(e evergreen.SceneEvent) {
		sink.EmitEvent(e)
		ecs.SceneEventType.ProcessEvents(world)
	}))
	return world
}

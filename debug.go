package evergreen

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates a logger writing to w at the given level, with
// "HH:MM:SS.ms" timestamps.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "evergreen",
	})
	return l
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	stepTime      time.Duration
	evaluateTime  time.Duration
	drawTime      time.Duration
	filterTime    time.Duration
	instanceCount int
	vertexCount   int
	drawCallCount int
}

// debugLogInterval is the number of frames between debug stat lines.
const debugLogInterval = 60

// debugLog writes timing and draw-call stats at debug level, once every
// debugLogInterval frames.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug || s.frame%debugLogInterval != 0 {
		return
	}
	total := stats.stepTime + stats.drawTime + stats.filterTime
	s.logger.Debug("frame",
		"step", stats.stepTime,
		"evaluate", stats.evaluateTime,
		"draw", stats.drawTime,
		"filter", stats.filterTime,
		"total", total)
	s.logger.Debug("draw",
		"instances", stats.instanceCount,
		"vertices", stats.vertexCount,
		"calls", stats.drawCallCount)
}

// debugCheckArena warns when an arena does not match the population it is
// evaluated against. Evaluate silently truncates to the shorter of the two.
func debugCheckArena(l *log.Logger, name string, population, slots int) {
	if population != slots {
		l.Warn("arena size mismatch", "population", name, "particles", population, "slots", slots)
	}
}

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/phanxgames/evergreen"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	logger.Info("test message")

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestWithLogger(t *testing.T) {
	ctx := context.Background()
	logger := log.Default()

	retrieved := loggerFromContext(withLogger(ctx, logger))
	if retrieved != logger {
		t.Error("loggerFromContext should return the same logger")
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Error("loggerFromContext should return default logger when none set")
	}
}

func TestAttachEventLog(t *testing.T) {
	cfg := evergreen.DefaultConfig()
	cfg.Field.Count = 50
	cfg.Snow.Count = 0
	cfg.Sparkles.Count = 0
	scene, err := evergreen.NewScene(cfg)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}

	var buf bytes.Buffer
	attachEventLog(scene, newLogger(&buf, log.InfoLevel))

	scene.Toggle()
	if !bytes.Contains(buf.Bytes(), []byte("scene event")) {
		t.Errorf("toggle should log a scene event, got %q", buf.String())
	}
	if !bytes.Contains(buf.Bytes(), []byte("mode-changed")) {
		t.Errorf("log should name the event kind, got %q", buf.String())
	}
}

package common

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{name: "info at info level", level: log.InfoLevel, logFunc: func(l *log.Logger) { l.Info("test") }, wantLog: true},
		{name: "debug at info level", level: log.InfoLevel, logFunc: func(l *log.Logger) { l.Debug("test") }, wantLog: false},
		{name: "debug at debug level", level: log.DebugLevel, logFunc: func(l *log.Logger) { l.Debug("test") }, wantLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(NewLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestSessionLoggerTagsLines(t *testing.T) {
	var buf bytes.Buffer
	l := SessionLogger(NewLogger(&buf, log.InfoLevel))
	l.Info("hello")
	if !strings.Contains(buf.String(), "session=") {
		t.Fatalf("missing session key: %q", buf.String())
	}
}

func TestLoggerFromContext(t *testing.T) {
	if LoggerFromContext(context.Background()) == nil {
		t.Fatal("expected default logger")
	}
	var buf bytes.Buffer
	l := NewLogger(&buf, log.InfoLevel)
	if got := LoggerFromContext(WithLogger(context.Background(), l)); got != l {
		t.Fatal("expected attached logger")
	}
}

func TestStopwatchDone(t *testing.T) {
	var buf bytes.Buffer
	sw := StartStopwatch(NewLogger(&buf, log.DebugLevel))
	sw.Done("recomputed", "cells", 3)
	out := buf.String()
	if !strings.Contains(out, "recomputed") || !strings.Contains(out, "took=") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 0, 3) != 3 || Clamp(-1, 0, 3) != 0 || Clamp(2, 0, 3) != 2 {
		t.Fatal("Clamp out of range")
	}
	if Clamp(0.5, 1.0, 2.0) != 1.0 {
		t.Fatal("Clamp float")
	}
}

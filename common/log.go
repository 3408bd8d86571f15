// Package common holds helpers shared by the app and the command-line tools.
package common

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// NewLogger creates a leveled logger writing to w, with timestamps formatted
// as "HH:MM:SS.ms".
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// SessionLogger tags every line of l with a fresh session id.
func SessionLogger(l *log.Logger) *log.Logger {
	return l.With("session", uuid.NewString())
}

type ctxKey int

const loggerKey ctxKey = 0

func WithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// LoggerFromContext returns the logger attached to ctx, or log.Default().
func LoggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// Stopwatch logs how long an operation took.
type Stopwatch struct {
	logger *log.Logger
	start  time.Time
}

func StartStopwatch(l *log.Logger) *Stopwatch {
	return &Stopwatch{logger: l, start: time.Now()}
}

func (s *Stopwatch) Elapsed() time.Duration {
	return time.Since(s.start)
}

// Done logs msg at debug level with the elapsed time and any extra key/values.
func (s *Stopwatch) Done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "took", s.Elapsed().Round(time.Microsecond))
	s.logger.Debug(msg, keyvals...)
}

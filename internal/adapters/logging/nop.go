// Package logging provides ports.Logger implementations: a text
// ConsoleLogger, a JSON ZapLogger and a NopLogger that discards everything.
package logging

import (
	"context"
	"sync/atomic"

	"github.com/felixgeelhaar/buildlayout/internal/ports"
)

// NopLogger drops every entry but remembers its level, so --verbose and
// log.level still round-trip when logging is off. Safe for concurrent use
// by watch passes.
type NopLogger struct {
	ports.Logger
	level atomic.Int32
}

// NewNopLogger returns a NopLogger at info level.
func NewNopLogger() *NopLogger {
	l := &NopLogger{Logger: ports.Discard}
	l.SetLevel(ports.LevelInfo)
	return l
}

func (l *NopLogger) With(...ports.Field) ports.Logger { return l }

func (l *NopLogger) Level() ports.Level { return ports.Level(l.level.Load()) }

func (l *NopLogger) SetLevel(level ports.Level) { l.level.Store(int32(level)) }

// FromContext returns the logger carried by ctx. Without one, entries go
// nowhere.
func FromContext(ctx context.Context) ports.Logger {
	if logger := ports.LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return NewNopLogger()
}

var _ ports.Logger = (*NopLogger)(nil)

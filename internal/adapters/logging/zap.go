package logging

import (
	"context"
	"io"

	"github.com/felixgeelhaar/buildlayout/internal/ports"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger emits JSON log entries through zap.
type ZapLogger struct {
	zap   *zap.Logger
	level zap.AtomicLevel
}

// NewZapLogger creates a JSON logger writing to w.
func NewZapLogger(w io.Writer, level ports.Level) *ZapLogger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	atom := zap.NewAtomicLevelAt(toZapLevel(level))
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(w), atom)

	return &ZapLogger{zap: zap.New(core), level: atom}
}

// Debug logs at debug level.
func (l *ZapLogger) Debug(_ context.Context, msg string, fields ...ports.Field) {
	l.zap.Debug(msg, toZapFields(fields)...)
}

// Info logs at info level.
func (l *ZapLogger) Info(_ context.Context, msg string, fields ...ports.Field) {
	l.zap.Info(msg, toZapFields(fields)...)
}

// Warn logs at warn level.
func (l *ZapLogger) Warn(_ context.Context, msg string, fields ...ports.Field) {
	l.zap.Warn(msg, toZapFields(fields)...)
}

// Error logs at error level.
func (l *ZapLogger) Error(_ context.Context, msg string, fields ...ports.Field) {
	l.zap.Error(msg, toZapFields(fields)...)
}

// With returns a derived logger. The level stays shared with the parent.
func (l *ZapLogger) With(fields ...ports.Field) ports.Logger {
	return &ZapLogger{zap: l.zap.With(toZapFields(fields)...), level: l.level}
}

// Level returns the minimum level.
func (l *ZapLogger) Level() ports.Level {
	switch l.level.Level() {
	case zapcore.DebugLevel:
		return ports.LevelDebug
	case zapcore.InfoLevel:
		return ports.LevelInfo
	case zapcore.WarnLevel:
		return ports.LevelWarn
	default:
		return ports.LevelError
	}
}

// SetLevel sets the minimum level.
func (l *ZapLogger) SetLevel(level ports.Level) {
	l.level.SetLevel(toZapLevel(level))
}

// Sync flushes buffered entries.
func (l *ZapLogger) Sync() error {
	return l.zap.Sync()
}

func toZapLevel(level ports.Level) zapcore.Level {
	switch level {
	case ports.LevelDebug:
		return zapcore.DebugLevel
	case ports.LevelWarn:
		return zapcore.WarnLevel
	case ports.LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func toZapFields(fields []ports.Field) []zap.Field {
	out := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		out = append(out, zap.Any(f.Key, f.Value))
	}
	return out
}

var _ ports.Logger = (*ZapLogger)(nil)

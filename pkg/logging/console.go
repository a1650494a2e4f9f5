package logging

import (
	"context"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ConsoleLogger writes human-oriented log lines through zap, typically to stderr
type ConsoleLogger struct {
	z *zap.Logger
}

// NewConsoleLogger creates a console logger writing to w at the given level
func NewConsoleLogger(w io.Writer, level Level) *ConsoleLogger {
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(enc),
		zapcore.AddSync(w),
		zapLevel(level),
	)
	return &ConsoleLogger{z: zap.New(core)}
}

func (l *ConsoleLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.z.Debug(msg, zapFields(fields)...)
}

func (l *ConsoleLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.z.Info(msg, zapFields(fields)...)
}

func (l *ConsoleLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.z.Warn(msg, zapFields(fields)...)
}

func (l *ConsoleLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	zf := zapFields(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	l.z.Error(msg, zf...)
}

func (l *ConsoleLogger) WithFields(fields Fields) Logger {
	return &ConsoleLogger{z: l.z.With(zapFields(fields)...)}
}

// Close flushes buffered entries
func (l *ConsoleLogger) Close() error {
	// Sync on a terminal fd returns EINVAL on some platforms; nothing to report
	_ = l.z.Sync()
	return nil
}

func zapLevel(level Level) zapcore.Level {
	switch level {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

func zapFields(fields Fields) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for _, k := range sortedKeys(fields) {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

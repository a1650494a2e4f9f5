package logging

import (
	"context"
	"errors"
)

// NullLogger is a logger that discards all output.
// Used when logging is disabled.
type NullLogger struct{}

// NewNullLogger creates a new null logger
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Debug(ctx context.Context, msg string, fields Fields)            {}
func (l *NullLogger) Info(ctx context.Context, msg string, fields Fields)             {}
func (l *NullLogger) Warn(ctx context.Context, msg string, fields Fields)             {}
func (l *NullLogger) Error(ctx context.Context, msg string, err error, fields Fields) {}
func (l *NullLogger) WithFields(fields Fields) Logger                                 { return l }
func (l *NullLogger) Close() error                                                    { return nil }

// Multi fans every entry out to several loggers
type Multi []Logger

// NewMulti drops nil and null loggers; with nothing left it returns a NullLogger
func NewMulti(loggers ...Logger) Logger {
	var m Multi
	for _, l := range loggers {
		if l == nil {
			continue
		}
		if _, null := l.(*NullLogger); null {
			continue
		}
		m = append(m, l)
	}
	switch len(m) {
	case 0:
		return NewNullLogger()
	case 1:
		return m[0]
	}
	return m
}

func (m Multi) Debug(ctx context.Context, msg string, fields Fields) {
	for _, l := range m {
		l.Debug(ctx, msg, fields)
	}
}

func (m Multi) Info(ctx context.Context, msg string, fields Fields) {
	for _, l := range m {
		l.Info(ctx, msg, fields)
	}
}

func (m Multi) Warn(ctx context.Context, msg string, fields Fields) {
	for _, l := range m {
		l.Warn(ctx, msg, fields)
	}
}

func (m Multi) Error(ctx context.Context, msg string, err error, fields Fields) {
	for _, l := range m {
		l.Error(ctx, msg, err, fields)
	}
}

func (m Multi) WithFields(fields Fields) Logger {
	out := make(Multi, len(m))
	for i, l := range m {
		out[i] = l.WithFields(fields)
	}
	return out
}

func (m Multi) Close() error {
	var errs []error
	for _, l := range m {
		if err := l.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

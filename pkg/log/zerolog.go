package log

import (
	"context"
	stderrors "errors"
	"io"

	pkgerrors "github.com/YuminosukeSato/lsq/pkg/errors"
	"github.com/rs/zerolog"
)

// zerologLogger adapts zerolog.Logger to Logger.
type zerologLogger struct {
	z zerolog.Logger
}

// NewZerologLogger returns a Logger writing JSON lines to w at the given minimum level.
func NewZerologLogger(w io.Writer, level Level) Logger {
	z := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &zerologLogger{z: z}
}

// FromZerolog wraps an already configured zerolog.Logger.
func FromZerolog(z zerolog.Logger) Logger {
	return &zerologLogger{z: z}
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	l.z.Debug().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	l.z.Info().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	l.z.Warn().Fields(fields).Msg(msg)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	e := l.z.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			e = e.Err(err)
			if obj := errorObject(err); obj != nil {
				e = e.Object("error_detail", obj)
			}
			fields = fields[1:]
		}
	}
	e.Fields(fields).Msg(msg)
}

func (l *zerologLogger) With(fields ...any) Logger {
	return &zerologLogger{z: l.z.With().Fields(fields).Logger()}
}

func (l *zerologLogger) Enabled(ctx context.Context, level Level) bool {
	return toZerologLevel(level) >= l.z.GetLevel()
}

// errorObject finds the first error in the chain that knows how to marshal
// itself into a zerolog event.
func errorObject(err error) zerolog.LogObjectMarshaler {
	for e := err; e != nil; e = stderrors.Unwrap(e) {
		if obj, ok := e.(zerolog.LogObjectMarshaler); ok {
			return obj
		}
	}
	return nil
}

// EnableZerologWarnings routes pkg/errors.Warn through z.
func EnableZerologWarnings(z zerolog.Logger) {
	pkgerrors.SetZerologWarnFunc(func(w error) {
		e := z.Warn()
		if obj := errorObject(w); obj != nil {
			e = e.EmbedObject(obj)
		}
		e.Msg(w.Error())
	})
}

package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type ctxKey struct{}

var log = zerolog.New(os.Stdout).With().Timestamp().Logger()

// InitLogging configures the global logger. Output goes to stdout and, when
// filePath is set, is also appended to that file.
func InitLogging(filePath string, level ...string) {
	zerolog.TimeFieldFormat = time.RFC3339

	var w io.Writer = os.Stdout
	if filePath != "" {
		f, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Error().Err(err).Str("path", filePath).Msg("cannot open log file, logging to stdout only")
		} else {
			w = zerolog.MultiLevelWriter(os.Stdout, f)
		}
	}
	SetOutput(w)

	if len(level) > 0 {
		SetLevel(level[0])
	}
}

// SetOutput redirects the global logger.
func SetOutput(w io.Writer) {
	log = zerolog.New(w).With().Timestamp().Logger()
}

// SetLevel sets the global level; unknown names leave it unchanged.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return
	}
	zerolog.SetGlobalLevel(lvl)
}

// WithRequestID returns a context whose log lines carry id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

func event(ctx context.Context, e *zerolog.Event) *zerolog.Event {
	if id := RequestID(ctx); id != "" {
		e = e.Str("request_id", id)
	}
	return e
}

func DebugLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, log.Debug()).Msgf(format, args...)
}

func InfoLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, log.Info()).Msgf(format, args...)
}

func WarnLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, log.Warn()).Msgf(format, args...)
}

func ErrorLog(ctx context.Context, format string, args ...interface{}) {
	event(ctx, log.Error()).Msgf(format, args...)
}

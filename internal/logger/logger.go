// Package logger provides the configured zerolog logger for the vocab backend.
package logger

import (
	"os"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog"
	zpkgerrors "github.com/rs/zerolog/pkgerrors"
)

// New returns a zerolog.Logger for the given service. Call sites should use
// .Stack() on error events to include stacks. Level comes from
// VOCAB_BACKEND_LOG_LEVEL (default info); VOCAB_BACKEND_LOG_PRETTY=true
// switches to the human-readable console writer for local runs.
func New(serviceName string) zerolog.Logger {
	// Wire zerolog to github.com/pkg/errors so .Stack() renders a real
	// stack trace even for std errors.
	zerolog.ErrorStackMarshaler = func(err error) interface{} {
		type stackTracer interface{ StackTrace() pkgerrors.StackTrace }
		if _, ok := err.(stackTracer); !ok {
			err = pkgerrors.WithStack(err)
		}
		return zpkgerrors.MarshalStack(err)
	}
	zerolog.ErrorMarshalFunc = func(err error) interface{} {
		type stackTracer interface{ StackTrace() pkgerrors.StackTrace }
		if _, ok := err.(stackTracer); ok {
			return err
		}
		return pkgerrors.WithStack(err)
	}

	var w zerolog.LevelWriter = zerolog.MultiLevelWriter(os.Stdout)
	if strings.EqualFold(os.Getenv("VOCAB_BACKEND_LOG_PRETTY"), "true") {
		w = zerolog.MultiLevelWriter(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	lvl := zerolog.InfoLevel
	if s := os.Getenv("VOCAB_BACKEND_LOG_LEVEL"); s != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(s)); err == nil {
			lvl = parsed
		}
	}

	return zerolog.New(w).Level(lvl).With().
		Str("service", serviceName).
		Timestamp().
		Logger()
}

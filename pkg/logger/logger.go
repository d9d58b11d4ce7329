/*
logger configures structured logging and logs HTTP requests.
*/
package logger

import (
	"io"
	"net/http"
	"strings"
	"time"

	// Packages
	mia "github.com/mutablelogic/go-mia"
	zerolog "github.com/rs/zerolog"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Logger is a zerolog logger which can also wrap HTTP handlers
type Logger struct {
	zerolog.Logger
}

// recorder captures the status code written by a handler
type recorder struct {
	http.ResponseWriter
	status int
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	DefaultLevel = "info"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New returns a logger writing to w at the named level. A console logger
// writes human readable lines with the caller, otherwise lines are JSON.
func New(w io.Writer, level string, console bool) (*Logger, error) {
	if level == "" {
		level = DefaultLevel
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, mia.ErrBadParameter.Withf("invalid log level %q", level)
	}

	if console {
		log := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
			With().Timestamp().Caller().Logger().Level(lvl)
		return &Logger{log}, nil
	}
	return &Logger{zerolog.New(w).With().Timestamp().Logger().Level(lvl)}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// WrapFunc logs the method, path, status and latency of each request
func (l *Logger) WrapFunc(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)

		var event *zerolog.Event
		switch {
		case rec.status >= http.StatusInternalServerError:
			event = l.Error()
		case rec.status >= http.StatusBadRequest:
			event = l.Warn()
		default:
			event = l.Info()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (r *recorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *recorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

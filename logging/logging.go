// Package logging builds the zerolog.Logger the rest of this module logs
// through. It plays the role the reference pack's smplog package plays for
// its own repo: a small, dependency-light wrapper that picks a console or
// JSON writer depending on whether output is a terminal, so the same call
// sites produce readable output in a shell and structured output in a
// pipeline or log collector.
package logging

import (
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Options configures the logger New builds. The zero value is valid and
// produces an info-level logger writing to stderr. Level is a pointer so
// the zero value can distinguish "not set" from an explicit DebugLevel,
// which is itself the zerolog.Level zero value.
type Options struct {
	Level  *zerolog.Level
	Writer io.Writer
}

// New builds a zerolog.Logger. When Writer is nil, it writes to stderr,
// using a colorized console writer when stderr is a terminal and plain
// JSON otherwise -- the same fork the reference pack's logging wrapper
// makes based on go-isatty.
func New(opts Options) zerolog.Logger {
	w := opts.Writer
	if w == nil {
		w = defaultWriter()
	}

	level := zerolog.InfoLevel
	if opts.Level != nil {
		level = *opts.Level
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func defaultWriter() io.Writer {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return zerolog.ConsoleWriter{Out: colorable.NewColorableStderr()}
	}
	return os.Stderr
}

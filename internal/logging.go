package internal

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide logger. It writes JSON lines to stdout at info
// level until InitLogging reconfigures it.
var Logger = zerolog.New(os.Stdout).With().Timestamp().Logger().Level(zerolog.InfoLevel)

// InitLogging configures Logger. The level is a zerolog level name such as
// "debug" or "warn"; an unknown name falls back to info. With console set the
// output is human-readable instead of JSON.
func InitLogging(level string, console bool) {
	Logger = NewLogger(os.Stdout, level, console)
}

// NewLogger builds a logger writing to out.
func NewLogger(out io.Writer, level string, console bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if console {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).With().Timestamp().Logger().Level(lvl)
}

package xrayproj

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetLogLevel routes logs to stderr, keeping stdout clean for progress
// output, and applies the given level. Unknown names fall back to
// error so embedded use stays quiet by default.
func SetLogLevel(levelStr string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var level zerolog.Level
	switch levelStr {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	case "fatal":
		level = zerolog.FatalLevel
	case "panic":
		level = zerolog.PanicLevel
	case "disabled":
		level = zerolog.Disabled
	default:
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)
}

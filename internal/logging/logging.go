// Package logging sets up the process-wide zerolog logger shared by all
// consilium commands.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var debugEnabled bool

// Init configures console logging on stderr. Debate progress is logged at
// info; --debug lowers the threshold for per-attempt provider diagnostics.
func Init(debug bool) {
	debugEnabled = debug
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}

// DebugEnabled reports whether Init was called with debug logging on.
func DebugEnabled() bool {
	return debugEnabled
}

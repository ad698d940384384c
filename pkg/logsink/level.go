package logsink

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
)

// TraceLevel sits below log.DebugLevel, at the same distance debug sits below
// info.
const TraceLevel = log.DebugLevel - 4

// ParseLevel parses a level name case-insensitively. It accepts trace, debug,
// info, warn (or warning), error and fatal.
func ParseLevel(s string) (log.Level, error) {
	switch name := strings.ToLower(strings.TrimSpace(s)); name {
	case "trace":
		return TraceLevel, nil
	case "warning":
		return log.WarnLevel, nil
	default:
		lvl, err := log.ParseLevel(name)
		if err != nil {
			return log.InfoLevel, fmt.Errorf("unknown log level %q: %w", s, err)
		}
		return lvl, nil
	}
}

// LevelName returns the canonical name for lvl.
func LevelName(lvl log.Level) string {
	if lvl == TraceLevel {
		return "trace"
	}
	return lvl.String()
}

// IsVerbose reports whether lvl is in the verbose band (debug or trace).
func IsVerbose(lvl log.Level) bool {
	return lvl <= log.DebugLevel
}

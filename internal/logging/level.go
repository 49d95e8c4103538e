package logging

import (
	"log/slog"
	"strings"
)

// DefaultLevel is the file log level used when log_level is unset or invalid.
const DefaultLevel = slog.LevelInfo

// levels maps the accepted log_level values to slog levels, most verbose first.
var levels = []struct {
	name  string
	level slog.Level
}{
	{"debug", slog.LevelDebug},
	{"info", slog.LevelInfo},
	{"warn", slog.LevelWarn},
	{"error", slog.LevelError},
}

// LevelNames returns the accepted log_level values, most verbose first.
func LevelNames() []string {
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.name
	}
	return names
}

// ParseLevel converts a log_level value to a slog.Level, case-insensitively.
// Returns (DefaultLevel, false) if the value is not recognized.
func ParseLevel(s string) (level slog.Level, ok bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range levels {
		if l.name == s {
			return l.level, true
		}
	}
	return DefaultLevel, false
}

// ResolveLevel picks the file log level for a run. verbose forces debug;
// otherwise the configured value applies. ok is false when configured was
// consulted and not recognized, in which case DefaultLevel is returned.
func ResolveLevel(configured string, verbose bool) (level slog.Level, ok bool) {
	if verbose {
		return slog.LevelDebug, true
	}
	return ParseLevel(configured)
}

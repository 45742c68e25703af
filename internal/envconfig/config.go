// Package envconfig reads aiogguf settings from the environment.
package envconfig

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Var returns an environment variable stripped of leading and trailing
// quotes and whitespace.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

// LogLevel returns the log level for the CLI. AIOGGUF_DEBUG=1 (or any true
// boolean) enables debug logging; a negative or positive integer n selects
// slog.Level(-4n) the same way; a level name is also accepted.
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("AIOGGUF_DEBUG"); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			if b {
				level = slog.LevelDebug
			}
		} else if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			level = slog.Level(i * -4)
		} else {
			var l slog.Level
			if err := l.UnmarshalText([]byte(s)); err == nil {
				level = l
			}
		}
	}

	return level
}

// Uint64 returns a getter for a uint64 with a default. Unparsable values
// log a warning and fall back to the default.
func Uint64(key string, defaultValue uint64) func() uint64 {
	return func() uint64 {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 64); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return n
			}
		}
		return defaultValue
	}
}

// Uint returns a getter for a uint with a default. Unparsable values log a
// warning and fall back to the default.
func Uint(key string, defaultValue uint) func() uint {
	return func() uint {
		if s := Var(key); s != "" {
			if n, err := strconv.ParseUint(s, 10, 0); err != nil {
				slog.Warn("invalid environment variable, using default", "key", key, "value", s, "default", defaultValue)
			} else {
				return uint(n)
			}
		}
		return defaultValue
	}
}

var (
	// MaxStringLength caps decoded metadata strings. 0 disables the check.
	MaxStringLength = Uint64("AIOGGUF_MAX_STRING", 16<<20)
	// MaxArrayLength caps decoded metadata arrays. 0 disables the check.
	MaxArrayLength = Uint64("AIOGGUF_MAX_ARRAY", 100_000_000)
	// MaxArrayDepth caps array nesting. 0 selects the default.
	MaxArrayDepth = Uint("AIOGGUF_MAX_DEPTH", 64)
)

// EnvVar describes one supported variable.
type EnvVar struct {
	Name        string
	Value       any
	Description string
}

// AsMap returns every supported variable with its current value.
func AsMap() map[string]EnvVar {
	return map[string]EnvVar{
		"AIOGGUF_DEBUG":      {"AIOGGUF_DEBUG", LogLevel(), "Show additional debug information (e.g. AIOGGUF_DEBUG=1)"},
		"AIOGGUF_MAX_STRING": {"AIOGGUF_MAX_STRING", MaxStringLength(), "Maximum metadata string length in bytes, 0 for no limit (default 16777216)"},
		"AIOGGUF_MAX_ARRAY":  {"AIOGGUF_MAX_ARRAY", MaxArrayLength(), "Maximum metadata array element count, 0 for no limit (default 100000000)"},
		"AIOGGUF_MAX_DEPTH":  {"AIOGGUF_MAX_DEPTH", MaxArrayDepth(), "Maximum metadata array nesting depth (default 64)"},
	}
}

// Values returns the current value of every variable as a string.
func Values() map[string]string {
	vals := make(map[string]string)
	for k, v := range AsMap() {
		vals[k] = fmt.Sprintf("%v", v.Value)
	}
	return vals
}

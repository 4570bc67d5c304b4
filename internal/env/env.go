// Package env reads runtime settings from the process environment, or from
// the Worker bindings when compiled for js/wasm.
package env

import "strings"

const (
	// KeyEnv selects the logger mode: development (default) or production.
	KeyEnv = "ENV"
	// KeyLogLevel is a zerolog level name.
	KeyLogLevel = "LOG_LEVEL"
)

// GetOrDefault retrieves an environment variable with a default value
func GetOrDefault(key, defaultValue string) string {
	if value, ok := Get(key); ok {
		return value
	}
	return defaultValue
}

// IsDevelopment reports whether ENV is unset or names a development mode.
func IsDevelopment() bool {
	switch strings.ToLower(GetOrDefault(KeyEnv, "development")) {
	case "development", "dev", "local":
		return true
	}
	return false
}

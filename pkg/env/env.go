// Package env reads raw environment variables with fallbacks. It covers the
// few knobs, like LOG_FORMAT, that must work before the envconfig-managed
// Config has been loaded.
package env

import "os"

// Get returns the variable's value, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

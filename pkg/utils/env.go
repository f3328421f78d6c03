package utils

import "os"

// Getenv reads an environment variable, falling back when it is unset or
// empty. All server configuration flows through this so a blank value in a
// deployment env file behaves the same as an absent one.
func Getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

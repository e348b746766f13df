package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// stringOr returns the value of the environment variable key, or fallback
// when it is unset or empty.
func stringOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// intOr parses the environment variable key as an integer. Unset or empty
// returns fallback; a malformed value is a startup error.
func intOr(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: expected integer, got %q", key, v)
	}
	return n, nil
}

// secondsOr parses the environment variable key as a whole number of seconds.
func secondsOr(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: expected seconds as integer, got %q", key, v)
	}
	return time.Duration(n) * time.Second, nil
}

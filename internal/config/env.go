// Package config provides environment helpers for go-moodcam commands.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DotEnvSwitch disables .env loading when set to 0/false/off/no.
const DotEnvSwitch = "MOODCAM_DOTENV"

// DotEnvFiles are tried in order. Earlier files win because godotenv
// never overrides a variable that is already set.
var DotEnvFiles = []string{".env.local", ".env"}

// LoadDotEnv loads DotEnvFiles from the working directory.
// Missing files are skipped; a malformed file is returned as an error.
func LoadDotEnv(logger *slog.Logger) error {
	if DotEnvDisabled() {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	for _, p := range DotEnvFiles {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		logger.Info("loaded env file", "path", p)
	}
	return nil
}

// DotEnvDisabled reports whether DotEnvSwitch turns .env loading off.
func DotEnvDisabled() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(DotEnvSwitch))) {
	case "0", "false", "off", "no":
		return true
	default:
		return false
	}
}

// String returns the env var or def when unset or blank.
func String(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// Int returns the env var parsed as an int, or def.
func Int(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// Bool returns the env var parsed as a bool, or def.
func Bool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// Duration returns the env var parsed with time.ParseDuration, or def.
// A bare number is read as seconds.
func Duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(secs * float64(time.Second))
	}
	return def
}

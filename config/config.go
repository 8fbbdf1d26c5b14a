// Package config loads and validates the daemon configuration from a
// plain "key = value" file. Unknown keys are ignored so older binaries
// tolerate newer config files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configurable values.
type Config struct {
	// DataDir is where the bolt databases live.
	DataDir string

	// ListenAddr is the JSON-RPC listen address.
	ListenAddr string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// DefaultGenerations, DefaultPercent and DefaultRatio seed the
	// market's default FR parameters at startup. A zero DefaultGenerations
	// leaves the default unset, so default-parameter mints fail until
	// configured at runtime.
	DefaultGenerations uint32
	DefaultPercent     string
	DefaultRatio       string
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:    filepath.Join(home, ".libnfr"),
		ListenAddr: ":8080",
		LogLevel:   "info",
	}
}

// LoadConfig reads the config file at path, applying defaults for unset
// keys. Blank lines and lines starting with '#' are ignored.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, i+1, line)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "datadir":
			cfg.DataDir = value
		case "listenaddr":
			cfg.ListenAddr = value
		case "loglevel":
			cfg.LogLevel = value
		case "defaultgenerations":
			n, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, i+1, line)
			}
			cfg.DefaultGenerations = uint32(n)
		case "defaultpercent":
			cfg.DefaultPercent = value
		case "defaultratio":
			cfg.DefaultRatio = value
		default:
			// Unknown keys are ignored for forward compatibility.
		}
	}

	return cfg, nil
}

// SaveConfig writes the config file at path, creating parent directories
// as needed.
func SaveConfig(path string, cfg Config) error {
	var b strings.Builder
	b.WriteString("# libnfr configuration\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "listenaddr = %s\n", cfg.ListenAddr)
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)
	if cfg.DefaultGenerations > 0 {
		fmt.Fprintf(&b, "defaultgenerations = %d\n", cfg.DefaultGenerations)
		fmt.Fprintf(&b, "defaultpercent = %s\n", cfg.DefaultPercent)
		fmt.Fprintf(&b, "defaultratio = %s\n", cfg.DefaultRatio)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	return os.WriteFile(path, []byte(b.String()), 0600)
}

// config_keys.go provides key-value access to configuration settings.
//
// Separated from config.go to isolate the key enumeration and string-based
// get/set logic. This separation allows config.go to focus on YAML structure
// and loading, while this file handles the MCP and CLI interface where config
// is accessed by string keys (e.g., "backup.max_version").
//
// Design: Pointers are used for optional fields so we can distinguish between
// "not set" (nil) and "explicitly set to zero/empty". This matters most for
// backup.suffix, where an explicit empty string disables the engine while an
// unset value falls back to the default.

package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// ValidKeys returns all valid configuration keys.
func ValidKeys() []string {
	return []string{
		"backup.suffix", "backup.max_version", "backup.patterns",
		"purge.cutoff", "purge.scan_floor",
		"diff.resize_windows",
	}
}

// IsValidKey returns true if the key is a valid configuration key.
func IsValidKey(key string) bool {
	return slices.Contains(ValidKeys(), key)
}

// Get returns the value of a configuration key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "backup.suffix":
		return c.Suffix(), nil
	case "backup.max_version":
		return strconv.Itoa(c.MaxVersion()), nil
	case "backup.patterns":
		return c.Patterns(), nil
	case "purge.cutoff":
		return strconv.Itoa(c.Cutoff()), nil
	case "purge.scan_floor":
		return strconv.Itoa(c.ScanFloor()), nil
	case "diff.resize_windows":
		return strconv.FormatBool(c.ResizeWindows()), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set sets the value of a configuration key.
func (c *Config) Set(key, value string) error {
	switch key {
	case "backup.suffix":
		// Empty is legal and disables the engine.
		c.Backup.Suffix = &value
	case "backup.max_version":
		n, err := strconv.Atoi(value)
		if err != nil || n < MinMaxVersion || n > MaxMaxVersion {
			return fmt.Errorf("%w: backup.max_version must be an integer between %d and %d",
				ErrInvalidValue, MinMaxVersion, MaxMaxVersion)
		}
		c.Backup.MaxVersion = &n
	case "backup.patterns":
		for _, pat := range strings.Split(value, ",") {
			pat = strings.TrimSpace(pat)
			if pat == "" {
				continue
			}
			if _, err := filepath.Match(pat, "probe"); err != nil {
				return fmt.Errorf("%w: %q", ErrBadPattern, pat)
			}
		}
		c.Backup.Patterns = &value
	case "purge.cutoff":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: purge.cutoff must be a non-negative integer", ErrInvalidValue)
		}
		c.Purge.Cutoff = &n
	case "purge.scan_floor":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: purge.scan_floor must be a positive integer", ErrInvalidValue)
		}
		c.Purge.ScanFloor = &n
	case "diff.resize_windows":
		v := strings.ToLower(value)
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: diff.resize_windows must be true or false", ErrInvalidValue)
		}
		b := v == "true"
		c.Diff.ResizeWindows = &b
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

// All returns all configuration values as a map.
func (c *Config) All() map[string]string {
	return map[string]string{
		"backup.suffix":       c.Suffix(),
		"backup.max_version":  strconv.Itoa(c.MaxVersion()),
		"backup.patterns":     c.Patterns(),
		"purge.cutoff":        strconv.Itoa(c.Cutoff()),
		"purge.scan_floor":    strconv.Itoa(c.ScanFloor()),
		"diff.resize_windows": strconv.FormatBool(c.ResizeWindows()),
	}
}

// IsSet returns true if the key has an explicit value (not just defaults).
func (c *Config) IsSet(key string) bool {
	switch key {
	case "backup.suffix":
		return c.Backup.Suffix != nil
	case "backup.max_version":
		return c.Backup.MaxVersion != nil
	case "backup.patterns":
		return c.Backup.Patterns != nil
	case "purge.cutoff":
		return c.Purge.Cutoff != nil
	case "purge.scan_floor":
		return c.Purge.ScanFloor != nil
	case "diff.resize_windows":
		return c.Diff.ResizeWindows != nil
	default:
		return false
	}
}

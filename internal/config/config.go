// Package config provides reading and writing of vers configuration.
// Supports both global (~/.vers/config.yaml) and local (.vers/config.yaml).
// Reading: uses local if it exists, otherwise global.
// Writing: defaults to the scope the config was read from.
//
// The backup suffix doubles as the engine switch: an explicitly empty
// suffix disables save interception and purging entirely. Glob patterns are
// validated at load time; a malformed pattern fails the load so the engine
// never runs half-configured.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	// ErrNoConfigPath is returned when the config path cannot be determined.
	ErrNoConfigPath = errors.New("cannot determine config path")
	// ErrUnknownKey is returned when getting/setting an unknown config key.
	ErrUnknownKey = errors.New("unknown config key")
	// ErrInvalidValue is returned when a config value is invalid.
	ErrInvalidValue = errors.New("invalid config value")
	// ErrBadPattern is returned when a backup glob pattern is malformed.
	ErrBadPattern = errors.New("malformed backup pattern")
)

// Scope represents the configuration scope (global or local).
type Scope int

const (
	// ScopeGlobal is user-wide config in ~/.vers/config.yaml (default)
	ScopeGlobal Scope = iota
	// ScopeLocal is directory-specific config in .vers/config.yaml
	ScopeLocal
)

// Backup holds revision-naming configuration.
type Backup struct {
	Suffix     *string `yaml:"suffix,omitempty"`
	MaxVersion *int    `yaml:"max_version,omitempty"`
	Patterns   *string `yaml:"patterns,omitempty"`
}

// Purge holds retention configuration.
type Purge struct {
	Cutoff    *int `yaml:"cutoff,omitempty"`
	ScanFloor *int `yaml:"scan_floor,omitempty"`
}

// Diff holds diff-view configuration.
type Diff struct {
	ResizeWindows *bool `yaml:"resize_windows,omitempty"`
}

// Defaults applied when not configured.
const (
	DefaultSuffix     = ".clean"
	DefaultMaxVersion = 9999
	DefaultPatterns   = "*"
	DefaultCutoff     = 1
	DefaultScanFloor  = 9999
)

// Validation bounds for configuration values.
const (
	MinMaxVersion = 1
	MaxMaxVersion = 99999999 // 8 digits of padding is already absurd
)

// Config contains configuration for vers.
type Config struct {
	Backup Backup `yaml:"backup,omitempty"`
	Purge  Purge  `yaml:"purge,omitempty"`
	Diff   Diff   `yaml:"diff,omitempty"`

	// path is the file this config was loaded from (for Save)
	path  string
	scope Scope
}

// Validate checks that all configured values are within acceptable bounds
// and that every backup pattern parses. Returns nil if all values are valid
// or not set (defaults will be used).
func (c *Config) Validate() error {
	if c.Backup.MaxVersion != nil {
		v := *c.Backup.MaxVersion
		if v < MinMaxVersion || v > MaxMaxVersion {
			return fmt.Errorf("%w: backup.max_version must be between %d and %d, got %d",
				ErrInvalidValue, MinMaxVersion, MaxMaxVersion, v)
		}
	}
	if c.Purge.Cutoff != nil && *c.Purge.Cutoff < 0 {
		return fmt.Errorf("%w: purge.cutoff must be non-negative, got %d",
			ErrInvalidValue, *c.Purge.Cutoff)
	}
	if c.Purge.ScanFloor != nil && *c.Purge.ScanFloor < 1 {
		return fmt.Errorf("%w: purge.scan_floor must be positive, got %d",
			ErrInvalidValue, *c.Purge.ScanFloor)
	}
	for _, pat := range c.PatternList() {
		if _, err := filepath.Match(pat, "probe"); err != nil {
			return fmt.Errorf("%w: %q", ErrBadPattern, pat)
		}
	}
	return nil
}

// Suffix returns the revision filename suffix (defaults to ".clean").
// An explicitly configured empty string disables the engine.
func (c *Config) Suffix() string {
	if c.Backup.Suffix == nil {
		return DefaultSuffix
	}
	return *c.Backup.Suffix
}

// Enabled reports whether the versioning engine is active.
func (c *Config) Enabled() bool {
	return c.Suffix() != ""
}

// MaxVersion returns the slot ceiling (defaults to 9999). Its digit count
// fixes the zero-padding width of revision extensions.
func (c *Config) MaxVersion() int {
	if c.Backup.MaxVersion == nil {
		return DefaultMaxVersion
	}
	return *c.Backup.MaxVersion
}

// Patterns returns the comma-separated glob list controlling which files a
// batch purge covers (defaults to "*").
func (c *Config) Patterns() string {
	if c.Backup.Patterns == nil {
		return DefaultPatterns
	}
	return *c.Backup.Patterns
}

// PatternList splits Patterns into individual globs, dropping empties.
func (c *Config) PatternList() []string {
	var pats []string
	for _, p := range strings.Split(c.Patterns(), ",") {
		if p = strings.TrimSpace(p); p != "" {
			pats = append(pats, p)
		}
	}
	return pats
}

// Cutoff returns the default purge cutoff (defaults to 1).
func (c *Config) Cutoff() int {
	if c.Purge.Cutoff == nil {
		return DefaultCutoff
	}
	return *c.Purge.Cutoff
}

// ScanFloor returns the hard floor on the retention scan's upper bound
// (defaults to 9999). The scan walks to max(MaxVersion, ScanFloor) so that
// lowering max_version after revisions exist beyond it still finds them.
func (c *Config) ScanFloor() int {
	if c.Purge.ScanFloor == nil {
		return DefaultScanFloor
	}
	return *c.Purge.ScanFloor
}

// ResizeWindows reports whether the diff view may alter host window
// geometry (defaults to true). Only consulted by host embeddings.
func (c *Config) ResizeWindows() bool {
	if c.Diff.ResizeWindows == nil {
		return true
	}
	return *c.Diff.ResizeWindows
}

// LocalPath returns the path to the local (directory) config file.
func LocalPath() string {
	return filepath.Join(".vers", "config.yaml")
}

// GlobalPath returns the path to the global (user) config file: ~/.vers/config.yaml
func GlobalPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".vers", "config.yaml")
}

// Load reads configuration: uses local if it exists, otherwise global.
func Load() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScope(ScopeLocal)
	}
	return LoadScope(ScopeGlobal)
}

// LoadScope reads configuration from a specific scope.
func LoadScope(scope Scope) (*Config, error) {
	cfg, err := LoadScopeRaw(scope)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", cfg.path, err)
	}
	return cfg, nil
}

// LoadRaw is LoadScopeRaw with the local-over-global cascade of Load.
func LoadRaw() (*Config, error) {
	if _, err := os.Stat(LocalPath()); err == nil {
		return LoadScopeRaw(ScopeLocal)
	}
	return LoadScopeRaw(ScopeGlobal)
}

// LoadScopeRaw reads a scope's configuration without validating it. The
// config command uses it so an invalid file can still be inspected and
// repaired; everything else goes through LoadScope.
func LoadScopeRaw(scope Scope) (*Config, error) {
	path := pathForScope(scope)
	if path == "" {
		return &Config{scope: scope}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{path: path, scope: scope}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("malformed config file %s: %w\n\nTo fix: edit the file to correct the YAML syntax, or delete it to use defaults", path, err)
	}
	cfg.path = path
	cfg.scope = scope
	return &cfg, nil
}

// Scope returns which scope this config was loaded from.
func (c *Config) Scope() Scope {
	return c.scope
}

// Save writes the configuration to its original location.
func (c *Config) Save() error {
	if c.path == "" {
		c.path = pathForScope(c.scope)
	}
	if c.path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(c.path)
}

// SaveScope writes the configuration to the specified scope.
func (c *Config) SaveScope(scope Scope) error {
	path := pathForScope(scope)
	if path == "" {
		return ErrNoConfigPath
	}
	return c.saveToPath(path)
}

// saveToPath writes configuration to a specific filesystem path.
// Creates parent directories as needed with mode 0755.
func (c *Config) saveToPath(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// pathForScope returns the filesystem path for a given scope.
func pathForScope(scope Scope) string {
	switch scope {
	case ScopeLocal:
		return LocalPath()
	case ScopeGlobal:
		return GlobalPath()
	default:
		return ""
	}
}

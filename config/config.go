package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/treekv/treekv/internal/util"
	"gopkg.in/yaml.v3"
)

// Default configuration constants. See [Config] for field descriptions.
const (
	// DefaultVisibility is the classification assigned to nodes created
	// without an explicit one. RED is the most restrictive tag
	DefaultVisibility = "RED"

	// DefaultTouchOnWrite keeps automatic lastModified maintenance off;
	// the timestamp only changes when written explicitly
	DefaultTouchOnWrite = false

	// DefaultResolverTimeout is the per-request budget in seconds for
	// resolvers that go over the network
	DefaultResolverTimeout = 30.0
)

// CLI verbosity bounds. Verbosity maps onto util log levels where
// 1 = error and 5 = trace.
const (
	ErrorVerbose = 1
	TraceVerbose = 5
)

// Config contains runtime configuration values for a treekv store.
type Config struct {
	LogLvl            util.LogLevel // Internal log level derived from CLI verbosity (Default info)
	DefaultVisibility string        // Visibility tag for nodes created without one (Default "RED")
	TouchOnWrite      bool          // Whether ordinal writes refresh lastModified (Default false)
	ResolverTimeout   float64       // Per-request resolver budget in seconds (Default 30.0)
	Resolver          string        // Raw JSON resolver source with a "type" discriminator; empty runs without one
}

// ConfigOverride uses pointer fields to distinguish between unset and zero values
// when loading partial configuration. See [Config] for field descriptions.
// LogLvl is expressed as CLI verbosity (1-5), not an internal log level.
type ConfigOverride struct {
	LogLvl            *int     `yaml:"verbose,omitempty" json:"verbose,omitempty"`
	DefaultVisibility *string  `yaml:"default_visibility,omitempty" json:"default_visibility,omitempty"`
	TouchOnWrite      *bool    `yaml:"touch_on_write,omitempty" json:"touch_on_write,omitempty"`
	ResolverTimeout   *float64 `yaml:"resolver_timeout,omitempty" json:"resolver_timeout,omitempty"`
	Resolver          *string  `yaml:"resolver,omitempty" json:"resolver,omitempty"`
}

// NewDefaultConfig creates a new Config with all default values.
func NewDefaultConfig() *Config {
	return &Config{
		LogLvl:            util.InfoLevel,
		DefaultVisibility: DefaultVisibility,
		TouchOnWrite:      DefaultTouchOnWrite,
		ResolverTimeout:   DefaultResolverTimeout,
	}
}

// NewConfig creates a new Config from defaults with any non-nil override
// fields applied on top.
func NewConfig(override *ConfigOverride) *Config {
	cfg := NewDefaultConfig()
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
// This allows partial configuration updates while preserving existing values.
func (c *Config) Merge(override *ConfigOverride) {
	if override.LogLvl != nil {
		c.LogLvl = verboseToLevel(*override.LogLvl)
	}
	if override.DefaultVisibility != nil {
		c.DefaultVisibility = *override.DefaultVisibility
	}
	if override.TouchOnWrite != nil {
		c.TouchOnWrite = *override.TouchOnWrite
	}
	if override.ResolverTimeout != nil {
		c.ResolverTimeout = *override.ResolverTimeout
	}
	if override.Resolver != nil {
		c.Resolver = *override.Resolver
	}
}

// verboseToLevel clamps a CLI verbosity value into [ErrorVerbose,
// TraceVerbose] and maps it onto the matching util log level.
func verboseToLevel(verbose int) util.LogLevel {
	if verbose < ErrorVerbose {
		verbose = ErrorVerbose
	}
	if verbose > TraceVerbose {
		verbose = TraceVerbose
	}
	levels := [5]util.LogLevel{util.ErrorLevel, util.WarnLevel, util.InfoLevel, util.DebugLevel, util.TraceLevel}
	return levels[verbose-1]
}

// LoadConfigOverrideFile loads configuration overrides from a file without merging.
// Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	// Determine format by file extension
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with defaults.
// This is a convenience function that combines NewDefaultConfig, LoadConfigOverrideFile, and Merge.
func NewConfigFromFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	cfg.Merge(override)
	return cfg, nil
}

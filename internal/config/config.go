// Package config provides configuration management for fabricfwd.
//
// Config file locations (priority order):
//  1. $FABRICFWD_CONFIG
//  2. ./fabricfwd.yaml
//  3. $XDG_CONFIG_HOME/fabricfwd/config.yaml
//  4. ~/.config/fabricfwd/config.yaml
//  5. /etc/fabricfwd/config.yaml
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"fabricfwd/internal/log"
	"fabricfwd/internal/pathsel"
	"fabricfwd/internal/rules"
)

const (
	// DefaultAppID tags every rule the controller installs.
	DefaultAppID = "org.fabricfwd.app"
	// DefaultListen is the operator API address.
	DefaultListen = ":8181"
	// DefaultDatabasePath is where the fabric description is persisted.
	DefaultDatabasePath = "./fabricfwd.db"
	// DefaultRulePriority is the priority of installed rules.
	DefaultRulePriority = 10
	// DefaultRuleLifetime is the hard timeout of installed rules.
	DefaultRuleLifetime = 10 * time.Second
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		// No config found - return defaults
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.AppID == "" {
		c.AppID = DefaultAppID
	}
	if c.Database.Path == "" {
		c.Database.Path = DefaultDatabasePath
	}
	if c.Rules.Priority == 0 {
		c.Rules.Priority = DefaultRulePriority
	}
	if c.Rules.Lifetime == 0 {
		c.Rules.Lifetime = Duration(DefaultRuleLifetime)
	}
	if c.PathPolicy == "" {
		c.PathPolicy = "any"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = log.FormatConsole
	}
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if _, err := pathsel.PolicyByName(c.PathPolicy); err != nil {
		return fmt.Errorf("path_policy: %w", err)
	}
	if c.Rules.Lifetime.Duration() < 0 {
		return fmt.Errorf("rules.lifetime: must not be negative")
	}
	if c.Rules.Priority < 0 || c.Rules.Priority > 0xffff {
		return fmt.Errorf("rules.priority: %d out of range", c.Rules.Priority)
	}
	if c.WatchFabric && c.Fabric == "" {
		return fmt.Errorf("watch_fabric: no fabric file configured")
	}
	return nil
}

// RuleOptions returns the attributes applied to every installed rule
func (c *Config) RuleOptions() rules.Options {
	return rules.Options{
		AppID:    c.AppID,
		Priority: uint16(c.Rules.Priority),
		Lifetime: c.Rules.Lifetime.Duration(),
	}
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "App: %s, Listen: %s", c.AppID, c.Listen)
	if c.MetricsListen != "" {
		fmt.Fprintf(&b, ", Metrics: %s", c.MetricsListen)
	}
	fmt.Fprintf(&b, "\nRules: priority %d, lifetime %s, policy %s\n",
		c.Rules.Priority, c.Rules.Lifetime.Duration(), c.PathPolicy)
	if c.Fabric != "" {
		fmt.Fprintf(&b, "Fabric: %s (watch: %t)", c.Fabric, c.WatchFabric)
	} else {
		fmt.Fprintf(&b, "Fabric: from database %s", c.Database.Path)
	}
	return b.String()
}

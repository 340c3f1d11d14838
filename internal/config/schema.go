package config

import (
	"time"

	"fabricfwd/internal/log"
)

// Config is the root configuration structure
type Config struct {
	Version       int            `yaml:"version"`
	Listen        string         `yaml:"listen"`
	MetricsListen string         `yaml:"metrics_listen,omitempty"` // empty = serve /metrics on Listen
	AppID         string         `yaml:"app_id"`
	Fabric        string         `yaml:"fabric,omitempty"` // fabric description file
	WatchFabric   bool           `yaml:"watch_fabric"`
	PathPolicy    string         `yaml:"path_policy"` // any | fewest-hops
	Database      DatabaseConfig `yaml:"database"`
	Rules         RulesConfig    `yaml:"rules"`
	Log           log.Config     `yaml:"log"`
}

// DatabaseConfig holds database settings
type DatabaseConfig struct {
	Path string `yaml:"path"` // ":memory:" keeps the fabric in process only
}

// RulesConfig holds the attributes of installed flow rules
type RulesConfig struct {
	Priority int      `yaml:"priority"`
	Lifetime Duration `yaml:"lifetime"`
}

// Duration wraps time.Duration for YAML unmarshaling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

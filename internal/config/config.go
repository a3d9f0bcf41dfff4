// Package config provides configuration management for mooring.
//
// Config file locations (priority order):
//  1. $MOORING_CONFIG
//  2. ./mooring.yaml
//  3. $XDG_CONFIG_HOME/mooring/config.yaml
//  4. ~/.config/mooring/config.yaml
//  5. /etc/mooring/config.yaml
//
// Any key can be overridden from the environment with the MOORING_ prefix,
// dots replaced by underscores (receiver.addr is MOORING_RECEIVER_ADDR).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"mooring/internal/sim"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Load reads configuration through v: defaults, then the config file at path
// (or the first one FindConfigPath finds), then MOORING_* environment
// variables and any flags already bound to v. Returns the file used, if any.
func Load(v *viper.Viper, path string) (*Config, string, error) {
	// Defaults first so AutomaticEnv knows every key
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// No file is fine: defaults plus environment
	if path == "" {
		path = FindConfigPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, path, fmt.Errorf("read config: %w", err)
		}
	}

	// Flags, environment, file and defaults merged by viper
	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeDuration)); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// LoadFromPath loads config from a specific path without environment overrides
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
	return &Config{
		Version: 1,
		Log:     LogConfig{Level: "info"},
		Simulation: SimulationConfig{
			Interval: Duration(2 * time.Second),
		},
		Publisher: PublisherConfig{
			Format:  "json",
			Timeout: Duration(10 * time.Second),
		},
		Receiver: ReceiverConfig{
			Addr:               "127.0.0.1:8000",
			MaxTension:         10,
			AttentionThreshold: 80,
			CriticalThreshold:  90,
			HistoryLimit:       100,
		},
		Echo: EchoConfig{Addr: "0.0.0.0:8000"},
		Serve: ServeConfig{
			Addr:    "0.0.0.0:8000",
			Root:    ".",
			Dir:     ".",
			Pattern: "output_*.json",
		},
		Dashboard: DashboardConfig{
			URL:      "http://127.0.0.1:8000",
			Interval: Duration(2 * time.Second),
		},
	}
}

// setDefaults registers every default with v so that environment variables
// are picked up for each key
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("simulation.seed1", d.Simulation.Seed1)
	v.SetDefault("simulation.seed2", d.Simulation.Seed2)
	v.SetDefault("simulation.interval", d.Simulation.Interval.Duration().String())
	v.SetDefault("publisher.url", d.Publisher.URL)
	v.SetDefault("publisher.file", d.Publisher.File)
	v.SetDefault("publisher.format", d.Publisher.Format)
	v.SetDefault("publisher.timeout", d.Publisher.Timeout.Duration().String())
	v.SetDefault("receiver.addr", d.Receiver.Addr)
	v.SetDefault("receiver.database.path", d.Receiver.Database.Path)
	v.SetDefault("receiver.max_tension", d.Receiver.MaxTension)
	v.SetDefault("receiver.attention_threshold", d.Receiver.AttentionThreshold)
	v.SetDefault("receiver.critical_threshold", d.Receiver.CriticalThreshold)
	v.SetDefault("receiver.history_limit", d.Receiver.HistoryLimit)
	v.SetDefault("echo.addr", d.Echo.Addr)
	v.SetDefault("echo.full", d.Echo.Full)
	v.SetDefault("echo.format", d.Echo.Format)
	v.SetDefault("serve.addr", d.Serve.Addr)
	v.SetDefault("serve.root", d.Serve.Root)
	v.SetDefault("serve.dir", d.Serve.Dir)
	v.SetDefault("serve.pattern", d.Serve.Pattern)
	v.SetDefault("dashboard.url", d.Dashboard.URL)
	v.SetDefault("dashboard.interval", d.Dashboard.Interval.Duration().String())
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	if c.Version == 0 {
		c.Version = d.Version
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Simulation.Interval <= 0 {
		c.Simulation.Interval = d.Simulation.Interval
	}
	if c.Publisher.Format == "" {
		c.Publisher.Format = d.Publisher.Format
	}
	if c.Publisher.Timeout <= 0 {
		c.Publisher.Timeout = d.Publisher.Timeout
	}
	if c.Receiver.Addr == "" {
		c.Receiver.Addr = d.Receiver.Addr
	}
	if c.Receiver.MaxTension <= 0 {
		c.Receiver.MaxTension = d.Receiver.MaxTension
	}
	if c.Receiver.AttentionThreshold <= 0 {
		c.Receiver.AttentionThreshold = d.Receiver.AttentionThreshold
	}
	if c.Receiver.CriticalThreshold <= 0 {
		c.Receiver.CriticalThreshold = d.Receiver.CriticalThreshold
	}
	if c.Receiver.HistoryLimit <= 0 {
		c.Receiver.HistoryLimit = d.Receiver.HistoryLimit
	}
	if c.Echo.Addr == "" {
		c.Echo.Addr = d.Echo.Addr
	}
	if c.Serve.Addr == "" {
		c.Serve.Addr = d.Serve.Addr
	}
	if c.Serve.Root == "" {
		c.Serve.Root = d.Serve.Root
	}
	if c.Serve.Dir == "" {
		c.Serve.Dir = d.Serve.Dir
	}
	if c.Serve.Pattern == "" {
		c.Serve.Pattern = d.Serve.Pattern
	}
	if c.Dashboard.URL == "" {
		c.Dashboard.URL = d.Dashboard.URL
	}
	if c.Dashboard.Interval <= 0 {
		c.Dashboard.Interval = d.Dashboard.Interval
	}
}

// Validate reports settings that cannot work together
func (c *Config) Validate() error {
	var errs []error
	if c.Publisher.URL != "" && c.Publisher.File != "" {
		errs = append(errs, errors.New("publisher.url and publisher.file are mutually exclusive"))
	}
	if c.Receiver.CriticalThreshold < c.Receiver.AttentionThreshold {
		errs = append(errs, fmt.Errorf("receiver.critical_threshold %.0f is below attention_threshold %.0f",
			c.Receiver.CriticalThreshold, c.Receiver.AttentionThreshold))
	}
	switch c.Publisher.Format {
	case "json", "yaml":
	default:
		errs = append(errs, fmt.Errorf("publisher.format %q is not json or yaml", c.Publisher.Format))
	}
	return errors.Join(errs...)
}

// Distributions returns the reference distributions with any configured
// overrides applied
func (c *Config) Distributions() sim.Distributions {
	d := sim.DefaultDistributions()
	if g := c.Simulation.HookTension; g != nil {
		d.HookTension = *g
	}
	if g := c.Simulation.RadarDistance; g != nil {
		d.RadarDistance = *g
	}
	if g := c.Simulation.BollardCount; g != nil {
		d.BollardCount = *g
	}
	return d
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Log level: %s, interval: %s\n", c.Log.Level, c.Simulation.Interval.Duration())
	summary += fmt.Sprintf("Receiver: %s, thresholds %.0f%%/%.0f%% of %d\n",
		c.Receiver.Addr, c.Receiver.AttentionThreshold, c.Receiver.CriticalThreshold, c.Receiver.MaxTension)
	if c.Receiver.Database.Path != "" {
		summary += fmt.Sprintf("History database: %s", c.Receiver.Database.Path)
	} else {
		summary += "History database: disabled"
	}
	return summary
}

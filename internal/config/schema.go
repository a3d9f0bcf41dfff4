package config

import (
	"reflect"
	"time"

	"mooring/internal/sim"
)

// Config is the on-disk configuration shared by every mooring command
type Config struct {
	Version    int              `yaml:"version" mapstructure:"version"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Simulation SimulationConfig `yaml:"simulation" mapstructure:"simulation"`
	Publisher  PublisherConfig  `yaml:"publisher" mapstructure:"publisher"`
	Receiver   ReceiverConfig   `yaml:"receiver" mapstructure:"receiver"`
	Echo       EchoConfig       `yaml:"echo" mapstructure:"echo"`
	Serve      ServeConfig      `yaml:"serve" mapstructure:"serve"`
	Dashboard  DashboardConfig  `yaml:"dashboard" mapstructure:"dashboard"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn, error
}

// SimulationConfig holds generator settings. Zero seeds pick a random seed.
type SimulationConfig struct {
	Seed1    uint64   `yaml:"seed1,omitempty" mapstructure:"seed1"`
	Seed2    uint64   `yaml:"seed2,omitempty" mapstructure:"seed2"`
	Interval Duration `yaml:"interval" mapstructure:"interval"`

	// Optional overrides of the reference distributions
	HookTension   *sim.Gaussian `yaml:"hook_tension,omitempty" mapstructure:"hook_tension"`
	RadarDistance *sim.Gaussian `yaml:"radar_distance,omitempty" mapstructure:"radar_distance"`
	BollardCount  *sim.Gaussian `yaml:"bollard_count,omitempty" mapstructure:"bollard_count"`
}

// PublisherConfig holds delivery settings for the generate command
type PublisherConfig struct {
	URL     string   `yaml:"url,omitempty" mapstructure:"url"`
	File    string   `yaml:"file,omitempty" mapstructure:"file"`
	Format  string   `yaml:"format" mapstructure:"format"` // json or yaml, files only
	Timeout Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ReceiverConfig holds settings of the aggregating receiver
type ReceiverConfig struct {
	Addr               string         `yaml:"addr" mapstructure:"addr"`
	Database           DatabaseConfig `yaml:"database" mapstructure:"database"`
	MaxTension         int            `yaml:"max_tension" mapstructure:"max_tension"`
	AttentionThreshold float64        `yaml:"attention_threshold" mapstructure:"attention_threshold"`
	CriticalThreshold  float64        `yaml:"critical_threshold" mapstructure:"critical_threshold"`
	HistoryLimit       int            `yaml:"history_limit" mapstructure:"history_limit"`
}

// DatabaseConfig holds database settings. An empty path disables persistence.
type DatabaseConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// EchoConfig holds settings of the printing receiver
type EchoConfig struct {
	Addr   string `yaml:"addr" mapstructure:"addr"`
	Full   bool   `yaml:"full" mapstructure:"full"`
	Format bool   `yaml:"format" mapstructure:"format"`
}

// ServeConfig holds settings of the dev snapshot server
type ServeConfig struct {
	Addr    string `yaml:"addr" mapstructure:"addr"`
	Root    string `yaml:"root" mapstructure:"root"`
	Dir     string `yaml:"dir" mapstructure:"dir"`
	Pattern string `yaml:"pattern" mapstructure:"pattern"`
}

// DashboardConfig holds settings of the terminal dashboard
type DashboardConfig struct {
	URL      string   `yaml:"url" mapstructure:"url"`
	Interval Duration `yaml:"interval" mapstructure:"interval"`
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

var (
	durationType    = reflect.TypeOf(Duration(0))
	timeDurationTyp = reflect.TypeOf(time.Duration(0))
)

// decodeDuration lets viper fill Duration fields from strings like "2s"
func decodeDuration(from, to reflect.Type, data interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || (to != durationType && to != timeDurationTyp) {
		return data, nil
	}
	parsed, err := time.ParseDuration(data.(string))
	if err != nil {
		return nil, err
	}
	if to == durationType {
		return Duration(parsed), nil
	}
	return parsed, nil
}

package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"mooring/internal/sim"

	"github.com/spf13/viper"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Simulation.Interval.Duration() != 2*time.Second {
		t.Errorf("Interval = %s, want 2s", cfg.Simulation.Interval.Duration())
	}
	if cfg.Publisher.Timeout.Duration() != 10*time.Second {
		t.Errorf("Timeout = %s, want 10s", cfg.Publisher.Timeout.Duration())
	}
	if cfg.Receiver.MaxTension != 10 {
		t.Errorf("MaxTension = %d, want 10", cfg.Receiver.MaxTension)
	}
	if cfg.Receiver.AttentionThreshold != 80 || cfg.Receiver.CriticalThreshold != 90 {
		t.Errorf("thresholds = %.0f/%.0f, want 80/90",
			cfg.Receiver.AttentionThreshold, cfg.Receiver.CriticalThreshold)
	}
	if cfg.Receiver.Database.Path != "" {
		t.Error("persistence should be disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Simulation.Seed1 = 42
	cfg.Simulation.Interval = Duration(500 * time.Millisecond)
	cfg.Simulation.HookTension = &sim.Gaussian{Mean: 3, StdDev: 1}
	cfg.Receiver.Database.Path = filepath.Join(tmpDir, "history.db")

	if err := cfg.Save(configPath); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, path, err := LoadFromPath(configPath)
	if err != nil {
		t.Fatalf("LoadFromPath() error: %v", err)
	}
	if path != configPath {
		t.Errorf("path = %s, want %s", path, configPath)
	}
	if loaded.Simulation.Seed1 != 42 {
		t.Errorf("Seed1 = %d, want 42", loaded.Simulation.Seed1)
	}
	if loaded.Simulation.Interval.Duration() != 500*time.Millisecond {
		t.Errorf("Interval = %s, want 500ms", loaded.Simulation.Interval.Duration())
	}
	if loaded.Simulation.HookTension == nil || loaded.Simulation.HookTension.Mean != 3 {
		t.Errorf("HookTension = %+v, want mean 3", loaded.Simulation.HookTension)
	}
	if loaded.Receiver.Database.Path != cfg.Receiver.Database.Path {
		t.Errorf("Database.Path = %s, want %s", loaded.Receiver.Database.Path, cfg.Receiver.Database.Path)
	}
}

func TestLoadWithViper(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		t.Setenv("XDG_CONFIG_HOME", t.TempDir())
		t.Setenv("HOME", t.TempDir())
		t.Chdir(t.TempDir())

		cfg, path, err := Load(viper.New(), "")
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if path != "" && path != "/etc/mooring/config.yaml" {
			t.Errorf("unexpected config path %s", path)
		}
		if cfg.Receiver.Addr == "" {
			t.Error("Receiver.Addr should have a default")
		}
	})

	t.Run("file and environment", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "mooring.yaml")
		content := "simulation:\n  interval: 5s\n  seed1: 7\nreceiver:\n  addr: 0.0.0.0:9000\n  max_tension: 20\n"
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv("MOORING_RECEIVER_ADDR", "127.0.0.1:9100")
		t.Setenv("MOORING_LOG_LEVEL", "debug")

		cfg, path, err := Load(viper.New(), configPath)
		if err != nil {
			t.Fatalf("Load() error: %v", err)
		}
		if path != configPath {
			t.Errorf("path = %s, want %s", path, configPath)
		}
		if cfg.Simulation.Interval.Duration() != 5*time.Second {
			t.Errorf("Interval = %s, want 5s", cfg.Simulation.Interval.Duration())
		}
		if cfg.Simulation.Seed1 != 7 {
			t.Errorf("Seed1 = %d, want 7", cfg.Simulation.Seed1)
		}
		if cfg.Receiver.MaxTension != 20 {
			t.Errorf("MaxTension = %d, want 20", cfg.Receiver.MaxTension)
		}
		if cfg.Receiver.Addr != "127.0.0.1:9100" {
			t.Errorf("Addr = %s, want env override 127.0.0.1:9100", cfg.Receiver.Addr)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("Log.Level = %s, want debug", cfg.Log.Level)
		}
		if cfg.Publisher.Timeout.Duration() != 10*time.Second {
			t.Errorf("Timeout = %s, want default 10s", cfg.Publisher.Timeout.Duration())
		}
	})

	t.Run("invalid combination", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "mooring.yaml")
		content := "publisher:\n  url: http://localhost:8000\n  file: out/output.json\n"
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		if _, _, err := Load(viper.New(), configPath); err == nil {
			t.Error("expected error for url and file together")
		}
	})
}

func TestFindConfigPath(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "explicit.yaml")
	if err := os.WriteFile(explicit, []byte("version: 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Run("environment variable wins", func(t *testing.T) {
		t.Setenv(EnvConfigPath, explicit)
		if got := FindConfigPath(); got != explicit {
			t.Errorf("FindConfigPath() = %s, want %s", got, explicit)
		}
	})

	t.Run("xdg config home", func(t *testing.T) {
		xdg := t.TempDir()
		path := filepath.Join(xdg, ConfigDirName, "config.yaml")
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("version: 1\n"), 0644); err != nil {
			t.Fatal(err)
		}
		t.Setenv(EnvConfigPath, "")
		t.Setenv("XDG_CONFIG_HOME", xdg)
		t.Chdir(t.TempDir())

		if got := FindConfigPath(); got != path {
			t.Errorf("FindConfigPath() = %s, want %s", got, path)
		}
	})
}

func TestDefaultConfigPath(t *testing.T) {
	tests := []struct {
		name string
		xdg  string
		home string
		want string
	}{
		{"xdg config home", "/tmp/xdg", "/home/op", filepath.Join("/tmp/xdg", ConfigDirName, "config.yaml")},
		{"home fallback", "", "/home/op", filepath.Join("/home/op", ".config", ConfigDirName, "config.yaml")},
		{"working directory", "", "", ConfigFileName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tt.xdg)
			t.Setenv("HOME", tt.home)
			if got := DefaultConfigPath(); got != tt.want {
				t.Errorf("DefaultConfigPath() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDistributionsOverrides(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Distributions(); got.HookTension != sim.DefaultDistributions().HookTension {
		t.Errorf("expected reference hook tension, got %+v", got.HookTension)
	}

	cfg.Simulation.BollardCount = &sim.Gaussian{Mean: 4, StdDev: 0}
	if got := cfg.Distributions(); got.BollardCount.Mean != 4 {
		t.Errorf("expected bollard count mean 4, got %f", got.BollardCount.Mean)
	}
}

func TestDecodeDuration(t *testing.T) {
	got, err := decodeDuration(reflectString, durationType, "1m30s")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(Duration).Duration() != 90*time.Second {
		t.Errorf("expected 1m30s, got %v", got)
	}

	if _, err := decodeDuration(reflectString, durationType, "soon"); err == nil {
		t.Error("expected error for invalid duration")
	}

	passthrough, err := decodeDuration(reflectString, reflectString, "soon")
	if err != nil || passthrough != "soon" {
		t.Errorf("expected passthrough, got %v, %v", passthrough, err)
	}
}

var reflectString = reflect.TypeOf("")

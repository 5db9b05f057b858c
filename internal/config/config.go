package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "audiobook"

type Config struct {
	DefaultFolder string        `koanf:"default_folder"`
	SkipInterval  time.Duration `koanf:"skip_interval" validate:"min=1s,max=10m"`
	PollInterval  time.Duration `koanf:"poll_interval" validate:"min=50ms,max=10s"`
	SleepMinutes  int           `koanf:"sleep_minutes" validate:"min=1,max=1440"` // prefilled sleep timer input
	Volume        float64       `koanf:"volume" validate:"min=0,max=1"`
	Icons         string        `koanf:"icons" validate:"oneof=nerd unicode none"`

	Log LogConfig `koanf:"log"`
}

// LogConfig controls the log file. The terminal belongs to the UI, so logs
// never go to stderr while it runs.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text logfmt json"`
	File   string `koanf:"file"` // empty: $XDG_STATE_HOME/audiobook/audiobook.log
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		SkipInterval: 15 * time.Second,
		PollInterval: 500 * time.Millisecond,
		SleepMinutes: 30,
		Volume:       1,
		Icons:        "unicode",
		Log: LogConfig{
			Level:  "info",
			Format: "logfmt",
		},
	}
}

// Load reads the default config files. Missing files are skipped.
func Load() (*Config, error) {
	return load(getConfigPaths(), false)
}

// LoadFrom reads a single config file, which must exist.
func LoadFrom(path string) (*Config, error) {
	return load([]string{expandPath(path)}, true)
}

func load(paths []string, required bool) (*Config, error) {
	k := koanf.New(".")

	// Later files override earlier ones.
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if required {
				return nil, fmt.Errorf("config %s: %w", path, err)
			}
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.DefaultFolder != "" {
		cfg.DefaultFolder = expandPath(cfg.DefaultFolder)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/audiobook/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

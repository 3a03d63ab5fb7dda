package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	NotifierDesktop = "desktop"
	NotifierLog     = "log"
)

type Config struct {
	DBPath       string
	TickInterval time.Duration
	Notifier     string
}

// rawConfig is the on-disk shape; durations are strings like "30s".
type rawConfig struct {
	DBPath       string `yaml:"db_path"`
	TickInterval string `yaml:"tick_interval"`
	Notifier     string `yaml:"notifier"`
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yml"
	}
	return filepath.Join(home, ".anote", "config.yml")
}

func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "notes.db"
	}
	return filepath.Join(home, ".anote", "notes.db")
}

func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		DBPath:       DefaultDBPath(),
		TickInterval: time.Minute,
		Notifier:     NotifierDesktop,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if raw.DBPath != "" {
		cfg.DBPath = raw.DBPath
	}
	if raw.TickInterval != "" {
		d, err := time.ParseDuration(raw.TickInterval)
		if err != nil {
			return nil, fmt.Errorf("failed to parse tick_interval: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("tick_interval must be positive, got %s", d)
		}
		cfg.TickInterval = d
	}
	if raw.Notifier != "" {
		cfg.Notifier = raw.Notifier
	}

	if cfg.DBPath[0] == '~' {
		home, _ := os.UserHomeDir()
		cfg.DBPath = filepath.Join(home, cfg.DBPath[1:])
	}

	return cfg, nil
}

func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	raw := rawConfig{
		DBPath:       c.DBPath,
		TickInterval: c.TickInterval.String(),
		Notifier:     c.Notifier,
	}
	data, err := yaml.Marshal(&raw)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Package config loads weekplan settings from an optional YAML file
// with WEEKPLAN_* environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	// DBPath is where the SQLite store lives. Empty means the default
	// under the user config dir.
	DBPath string `yaml:"db_path"`
	// LogPath is the log file; the TUI owns stdout. Empty means a file
	// beside the database.
	LogPath string `yaml:"log_path"`
	// DesktopNotifications enables the deferred notification path.
	DesktopNotifications bool `yaml:"desktop_notifications"`
	// TickInterval is how often the in-app alarm check runs.
	TickInterval time.Duration `yaml:"tick_interval"`
	// SchedulerBuffer sizes the reminder event channel.
	SchedulerBuffer int `yaml:"scheduler_buffer"`
}

func Default() Config {
	return Config{
		DesktopNotifications: true,
		TickInterval:         20 * time.Second,
		SchedulerBuffer:      64,
	}
}

func (c Config) Validate() error {
	if c.TickInterval <= 0 {
		return fmt.Errorf("config: tick_interval must be positive, got %s", c.TickInterval)
	}
	if c.SchedulerBuffer <= 0 {
		return fmt.Errorf("config: scheduler_buffer must be positive, got %d", c.SchedulerBuffer)
	}
	return nil
}

// LoadFromFile reads a YAML config over the defaults. A missing file
// is not an error.
func LoadFromFile(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv applies WEEKPLAN_* overrides on top of base.
func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnv("WEEKPLAN_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnv("WEEKPLAN_LOG_PATH"); ok {
		cfg.LogPath = v
	}
	if v, ok := getEnvBool("WEEKPLAN_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvDuration("WEEKPLAN_TICK_INTERVAL"); ok && v > 0 {
		cfg.TickInterval = v
	}
	if v, ok := getEnvInt("WEEKPLAN_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

// Resolve fills in defaulted paths and makes sure the data dir exists.
func (c *Config) Resolve() error {
	if c.DBPath == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			base = "."
		}
		c.DBPath = filepath.Join(base, "weekplan", "weekplan.db")
	}
	if c.LogPath == "" {
		c.LogPath = filepath.Join(filepath.Dir(c.DBPath), "weekplan.log")
	}
	if dir := filepath.Dir(c.DBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	return nil
}

// DefaultPath is the conventional config file location.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "weekplan", "config.yaml")
}

func getEnv(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func getEnvInt(name string) (int, bool) {
	raw, ok := getEnv(name)
	if !ok {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvDuration(name string) (time.Duration, bool) {
	raw, ok := getEnv(name)
	if !ok {
		return 0, false
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw, ok := getEnv(name)
	if !ok {
		return false, false
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}

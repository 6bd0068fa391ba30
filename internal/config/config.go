package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	// Items is the path to the YAML item file.
	Items string `yaml:"items" json:"items"`

	// Timezone is the IANA timezone used as canonical display zone.
	Timezone string `yaml:"timezone" json:"timezone"`

	// ClockStyle controls time rendering in views. Supported values:
	//   - "24" (default)
	//   - "12"
	ClockStyle string `yaml:"clock_style" json:"clock_style"`

	// HorizonDays is the number of future days an agenda covers by default.
	HorizonDays int `yaml:"horizon_days" json:"horizon_days"`

	// WatchCron is a cron-style schedule string (e.g. "*/15 * * * *") used by
	// watch mode to re-render the agenda. If empty, watch mode is disabled.
	WatchCron string `yaml:"watch" json:"watch"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		Items:       "items.yaml",
		Timezone:    "Local",
		ClockStyle:  "24",
		HorizonDays: 7,
		WatchCron:   "",
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	if c.Items == "" {
		c.Items = "items.yaml"
	}
	if c.Timezone == "" {
		c.Timezone = "Local"
	}
	switch c.ClockStyle {
	case "12", "24":
	default:
		c.ClockStyle = "24"
	}
	if c.HorizonDays <= 0 {
		c.HorizonDays = 7
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, write a default config with 0600 perms and
//     return the defaults.
//   - If the file exists, read YAML, unmarshal and normalize.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the given configuration to the specified path atomically with
// 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".planner-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

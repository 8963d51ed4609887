package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// TipConfig holds settings for the study-tip fetcher.
type TipConfig struct {
	// Enabled controls whether tips are fetched at all.
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`

	// URL is the tip API endpoint.
	URL string `mapstructure:"url" yaml:"url"`

	// TimeoutSec bounds a single fetch attempt.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// AppConfig is the top-level application configuration. It controls how
// the app runs; user preferences (Settings) live in the state tree.
type AppConfig struct {
	// DataDir is where the database and log file live.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// LogFile overrides the default log file path. Empty means
	// <data_dir>/studytrack.log.
	LogFile string `mapstructure:"log_file" yaml:"log_file"`

	// ReminderChoicesSec are the reminder-interval options offered when
	// cycling a session's reminder, in seconds. Zero ("none") is always
	// offered first.
	ReminderChoicesSec []int `mapstructure:"reminder_choices_sec" yaml:"reminder_choices_sec"`

	Tip TipConfig `mapstructure:"tip" yaml:"tip"`
}

// DefaultConfigPath returns the default path for the configuration
// file, located at ~/.config/studytrack/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "studytrack", "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	home, err := os.UserHomeDir()
	dataDir := "."
	if err == nil {
		dataDir = filepath.Join(home, ".config", "studytrack")
	}
	return &AppConfig{
		DataDir:            dataDir,
		ReminderChoicesSec: []int{25 * 60, 45 * 60, 60 * 60},
		Tip: TipConfig{
			Enabled:    true,
			URL:        "https://zenquotes.io/api/random",
			TimeoutSec: 10,
		},
	}
}

// DatabasePath returns the SQLite database path under the data dir.
func (c *AppConfig) DatabasePath() string {
	return filepath.Join(c.DataDir, "studytrack.db")
}

// LogPath returns the log file path, honoring the LogFile override.
func (c *AppConfig) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, "studytrack.log")
}

// LoadConfig reads configuration from the given YAML file path using
// Viper. If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	defaults := defaultAppConfig()
	v.SetDefault("data_dir", defaults.DataDir)
	v.SetDefault("reminder_choices_sec", defaults.ReminderChoicesSec)
	v.SetDefault("tip.enabled", defaults.Tip.Enabled)
	v.SetDefault("tip.url", defaults.Tip.URL)
	v.SetDefault("tip.timeout_sec", defaults.Tip.TimeoutSec)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaults, nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("data_dir", cfg.DataDir)
	v.Set("log_file", cfg.LogFile)
	v.Set("reminder_choices_sec", cfg.ReminderChoicesSec)
	v.Set("tip", cfg.Tip)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

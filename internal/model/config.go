package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// StorageConfig holds persistence settings.
type StorageConfig struct {
	// Path is the location of the SQLite-backed key-value store.
	Path string `mapstructure:"path" yaml:"path"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`

	// NotificationTTLSec is how long (in seconds) a toast notification
	// stays visible before it is removed automatically.
	NotificationTTLSec int `mapstructure:"notification_ttl_sec" yaml:"notification_ttl_sec"`
}

// AuthConfig holds authentication behavior settings.
type AuthConfig struct {
	// RememberMe controls whether the logged-in session survives process
	// restarts. When true, the session pointer is kept in the OS keyring
	// and restored at startup.
	RememberMe bool `mapstructure:"remember_me" yaml:"remember_me"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Auth    AuthConfig    `mapstructure:"auth" yaml:"auth"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/taskdeck/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "taskdeck", "config.yaml")
}

// DefaultDataPath returns the default location of the task database,
// under the XDG data directory.
func DefaultDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(".", "taskdeck.db")
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "taskdeck", "taskdeck.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{
			Path: DefaultDataPath(),
		},
		Display: DisplayConfig{
			Theme:              ThemeLight,
			NotificationTTLSec: 5,
		},
		Auth: AuthConfig{
			RememberMe: true,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage.path", DefaultDataPath())
	v.SetDefault("display.theme", ThemeLight)
	v.SetDefault("display.notification_ttl_sec", 5)
	v.SetDefault("auth.remember_me", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Display.NotificationTTLSec <= 0 {
		cfg.Display.NotificationTTLSec = 5
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

	v.Set("storage", cfg.Storage)
	v.Set("display", cfg.Display)
	v.Set("auth", cfg.Auth)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

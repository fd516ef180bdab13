package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds backend API configuration
type ServerConfig struct {
	URL              string        `mapstructure:"url"`               // API base, e.g. http://localhost:3000/api
	Timeout          time.Duration `mapstructure:"timeout"`           // Per-request timeout
	BreakerThreshold uint32        `mapstructure:"breaker_threshold"` // Consecutive failures before short-circuiting
	PageSize         int           `mapstructure:"page_size"`         // Games fetched per catalog page
}

// StoreConfig holds external catalog search configuration
type StoreConfig struct {
	SearchLimit int `mapstructure:"search_limit"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultView     string        `mapstructure:"default_view"`
	GridColumns     int           `mapstructure:"grid_columns"`
	NotificationTTL time.Duration `mapstructure:"notification_ttl"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:              "http://localhost:3000/api",
			Timeout:          30 * time.Second,
			BreakerThreshold: 5,
			PageSize:         100,
		},
		Store: StoreConfig{
			SearchLimit: 12,
		},
		UI: UIConfig{
			DefaultView:     "grid",
			GridColumns:     4,
			NotificationTTL: 5 * time.Second,
		},
		Logging: LoggingConfig{
			File:       defaultLogPath(),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "gamehub", "gamehub.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "gamehub", "gamehub.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "gamehub")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "gamehub")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gamehub")
	}
}

// LoadConfig loads configuration from file and environment.
// An explicit cfgFile must exist; the default search paths may be empty.
func LoadConfig(v *viper.Viper, cfgFile string) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides: GAMEHUB_SERVER_URL etc.
	v.SetEnvPrefix("GAMEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so env overrides apply even without a file
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.timeout", cfg.Server.Timeout)
	v.SetDefault("server.breaker_threshold", cfg.Server.BreakerThreshold)
	v.SetDefault("server.page_size", cfg.Server.PageSize)
	v.SetDefault("store.search_limit", cfg.Store.SearchLimit)
	v.SetDefault("ui.default_view", cfg.UI.DefaultView)
	v.SetDefault("ui.grid_columns", cfg.UI.GridColumns)
	v.SetDefault("ui.notification_ttl", cfg.UI.NotificationTTL)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
}

// Validate checks loaded values
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid server url %q", c.Server.URL)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.PageSize <= 0 {
		return fmt.Errorf("server page size must be positive, got %d", c.Server.PageSize)
	}
	if c.Store.SearchLimit <= 0 {
		return fmt.Errorf("store search limit must be positive, got %d", c.Store.SearchLimit)
	}
	if c.UI.GridColumns <= 0 {
		return fmt.Errorf("grid columns must be positive, got %d", c.UI.GridColumns)
	}
	switch c.UI.DefaultView {
	case "grid", "list":
	default:
		return fmt.Errorf("unknown default view %q", c.UI.DefaultView)
	}
	return nil
}

// BaseURL returns the server URL without a trailing slash
func (c *Config) BaseURL() string {
	return strings.TrimRight(c.Server.URL, "/")
}

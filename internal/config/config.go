package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Cache   CacheConfig   `mapstructure:"cache"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds the photos backend location
type ServerConfig struct {
	URL        string `mapstructure:"url"`         // Base URL, e.g. http://localhost:9090
	AlbumsPath string `mapstructure:"albums_path"` // Album list endpoint
	AlbumPath  string `mapstructure:"album_path"`  // Single album endpoint prefix, id is appended
}

// CacheConfig holds snapshot store configuration
type CacheConfig struct {
	Dir string `mapstructure:"dir"` // Empty keeps snapshots in memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	AltScreen bool `mapstructure:"alt_screen"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			URL:        "http://localhost:9090",
			AlbumsPath: "/photos/albumsList",
			AlbumPath:  "/photos/album/",
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
		UI: UIConfig{
			AltScreen: true,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "albumview", "albumview.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "albumview", "albumview.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "albumview")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "albumview")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "albumview", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "albumview", "cache")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return load(viper.New(), defaultConfigPath(), ".")
}

// load reads config.yaml from the first matching search path and applies
// ALBUMVIEW_* environment overrides on top of the defaults.
func load(v *viper.Viper, searchPaths ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	// Environment variable overrides, e.g. ALBUMVIEW_SERVER_URL
	v.SetEnvPrefix("ALBUMVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
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

// bindDefaults registers every key so AutomaticEnv can see it during Unmarshal
func bindDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("server.url", cfg.Server.URL)
	v.SetDefault("server.albums_path", cfg.Server.AlbumsPath)
	v.SetDefault("server.album_path", cfg.Server.AlbumPath)
	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("ui.alt_screen", cfg.UI.AltScreen)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate checks that the server endpoints are usable
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server URL is required")
	}
	if !strings.HasPrefix(c.Server.URL, "http://") && !strings.HasPrefix(c.Server.URL, "https://") {
		return fmt.Errorf("server URL must start with http:// or https://: %s", c.Server.URL)
	}
	if c.Server.AlbumsPath == "" {
		return fmt.Errorf("server albums_path is required")
	}
	return nil
}

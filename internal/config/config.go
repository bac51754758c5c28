package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/spf13/viper"
)

const (
	appName        = "marquee"
	envPrefix      = "MARQUEE"
	defaultBaseURL = "https://www.omdbapi.com/"
)

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Storage StorageConfig `mapstructure:"storage"`
	Search  SearchConfig  `mapstructure:"search"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds metadata provider settings
type APIConfig struct {
	Key               string        `mapstructure:"key"`
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"` // 0 disables pacing
	Burst             int           `mapstructure:"burst"`
}

// StorageConfig holds the persistent store location
type StorageConfig struct {
	Dir string `mapstructure:"dir"` // empty = memory only
}

// SearchConfig holds input timing
type SearchConfig struct {
	Debounce    time.Duration `mapstructure:"debounce"`
	TypingDelay time.Duration `mapstructure:"typing_delay"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme string `mapstructure:"theme"` // light, dark or system
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"` // 0 keeps backups forever
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:           defaultBaseURL,
			Timeout:           15 * time.Second,
			RequestsPerSecond: 5,
			Burst:             5,
		},
		Storage: StorageConfig{
			Dir: defaultDataPath(),
		},
		Search: SearchConfig{
			Debounce:    500 * time.Millisecond,
			TypingDelay: 500 * time.Millisecond,
		},
		UI: UIConfig{
			Theme: "system",
		},
		Logging: LoggingConfig{
			File:       filepath.Join(defaultDataPath(), appName+".log"),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// LoadConfig loads configuration from the default locations and environment
func LoadConfig() (*Config, error) {
	return Load(defaultConfigPath(), ".")
}

// Load reads config.yaml from the first matching search path, then applies
// MARQUEE_* environment overrides. A missing file is not an error.
func Load(searchPaths ...string) (*Config, error) {
	v := newViper(DefaultConfig())
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Storage.Dir = expandHome(cfg.Storage.Dir)
	cfg.Logging.File = expandHome(cfg.Logging.File)
	return cfg, nil
}

func newViper(defaults *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// The provider's conventional variable name is accepted as well
	_ = v.BindEnv("api.key", envPrefix+"_API_KEY", "OMDB_API_KEY")

	setAll(v, defaults)
	return v
}

// setAll registers every key so AutomaticEnv can override it during Unmarshal
func setAll(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.key", cfg.API.Key)
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("api.requests_per_second", cfg.API.RequestsPerSecond)
	v.SetDefault("api.burst", cfg.API.Burst)

	v.SetDefault("storage.dir", cfg.Storage.Dir)

	v.SetDefault("search.debounce", cfg.Search.Debounce)
	v.SetDefault("search.typing_delay", cfg.Search.TypingDelay)

	v.SetDefault("ui.theme", cfg.UI.Theme)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", cfg.Logging.MaxAgeDays)
}

// SaveConfig saves cfg to config.yaml in the default config directory
func SaveConfig(cfg *Config) error {
	return SaveTo(defaultConfigPath(), cfg)
}

// SaveTo writes cfg as config.yaml inside dir
func SaveTo(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// Set fields individually to keep snake_case key names
	v.Set("api.key", cfg.API.Key)
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("api.requests_per_second", cfg.API.RequestsPerSecond)
	v.Set("api.burst", cfg.API.Burst)
	v.Set("storage.dir", cfg.Storage.Dir)
	v.Set("search.debounce", cfg.Search.Debounce.String())
	v.Set("search.typing_delay", cfg.Search.TypingDelay.String())
	v.Set("ui.theme", cfg.UI.Theme)
	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.Set("logging.max_backups", cfg.Logging.MaxBackups)
	v.Set("logging.max_age_days", cfg.Logging.MaxAgeDays)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// RequireAPIKey returns domain.ErrMissingAPIKey when no key is configured
func (c *Config) RequireAPIKey() error {
	if strings.TrimSpace(c.API.Key) == "" {
		return domain.ErrMissingAPIKey
	}
	return nil
}

// ClearCache removes the storage directory
func (c *Config) ClearCache() error {
	if c.Storage.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(c.Storage.Dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

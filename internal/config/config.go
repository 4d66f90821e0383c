// Package config loads and persists application configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// DefaultEndpoint is the public Lens API GraphQL endpoint
const DefaultEndpoint = "https://api.lens.xyz/graphql"

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Account AccountConfig `mapstructure:"account"`
	Feed    FeedConfig    `mapstructure:"feed"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds Lens API configuration
type APIConfig struct {
	Endpoint   string `mapstructure:"endpoint"`    // GraphQL endpoint URL
	AppAddress string `mapstructure:"app_address"` // registered app address, optional
}

// AccountConfig holds the signed-in account configuration
type AccountConfig struct {
	Address string `mapstructure:"address"` // session account address
	Handle  string `mapstructure:"handle"`  // local name used at sign-in (display)
}

// FeedConfig holds default list query configuration
type FeedConfig struct {
	PageSize string   `mapstructure:"page_size"` // "ten" or "fifty"
	Authors  []string `mapstructure:"authors"`   // default home feed authors
	PostsOf  string   `mapstructure:"posts_of"`  // default home feed handle
	Tags     []string `mapstructure:"tags"`      // default tag filter
}

// UIConfig holds UI configuration
type UIConfig struct {
	Theme          string   `mapstructure:"theme"`
	VisibleStats   []string `mapstructure:"visible_stats"`   // post stat row, in order
	VisibleButtons []string `mapstructure:"visible_buttons"` // post action row, in order
	ShowHeader     bool     `mapstructure:"show_header"`
	AllowUnfollow  bool     `mapstructure:"allow_unfollow"` // follow buttons can also unfollow
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			Endpoint: DefaultEndpoint,
		},
		Feed: FeedConfig{
			PageSize: "ten",
		},
		UI: UIConfig{
			Theme:          "default",
			VisibleStats:   []string{"upvotes", "comments", "reposts"},
			VisibleButtons: []string{"like", "repost"},
			ShowHeader:     true,
			AllowUnfollow:  true,
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
		return filepath.Join(os.Getenv("APPDATA"), "lenscope", "lenscope.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "lenscope", "lenscope.log")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "lenscope")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "lenscope")
	}
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("LENSCOPE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Save saves the current configuration to file
func Save(cfg *Config) error {
	configPath := defaultConfigPath()

	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.Set("api.endpoint", cfg.API.Endpoint)
	viper.Set("api.app_address", cfg.API.AppAddress)

	viper.Set("account.address", cfg.Account.Address)
	viper.Set("account.handle", cfg.Account.Handle)

	viper.Set("feed.page_size", cfg.Feed.PageSize)
	viper.Set("feed.authors", cfg.Feed.Authors)
	viper.Set("feed.posts_of", cfg.Feed.PostsOf)
	viper.Set("feed.tags", cfg.Feed.Tags)

	viper.Set("ui.theme", cfg.UI.Theme)
	viper.Set("ui.visible_stats", cfg.UI.VisibleStats)
	viper.Set("ui.visible_buttons", cfg.UI.VisibleButtons)
	viper.Set("ui.show_header", cfg.UI.ShowHeader)
	viper.Set("ui.allow_unfollow", cfg.UI.AllowUnfollow)

	viper.Set("logging.file", cfg.Logging.File)
	viper.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// SaveAccount updates just the signed-in account in the configuration
func SaveAccount(address, handle string) error {
	viper.Set("account.address", address)
	viper.Set("account.handle", handle)

	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configFile := filepath.Join(configPath, "config.yaml")
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DataPath returns the data directory for session and cache storage
func DataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "lenscope")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "lenscope")
	}
}

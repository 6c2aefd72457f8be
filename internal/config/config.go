package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete todo configuration
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	TUI     TUIConfig     `mapstructure:"tui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// DataConfig controls where tasks are stored
type DataConfig struct {
	// Path is the SQLite database file. Empty means $XDG_DATA_HOME/todo/todo.db.
	Path string `mapstructure:"path"`
}

// TUIConfig controls the terminal UI behavior
type TUIConfig struct {
	// Theme is the color theme. Options: "tokyo-night", "ignite"
	Theme string `mapstructure:"theme"`
	// CharLimit caps the length of a task title while editing
	CharLimit int `mapstructure:"char_limit"`
	// Mouse enables click support on task rows
	Mouse bool `mapstructure:"mouse"`
}

// LoggingConfig controls the debug log file
type LoggingConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Level is one of DEBUG, INFO, WARN, ERROR
	Level string `mapstructure:"level"`
}

// Default returns a Config with all default values
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Path: "",
		},
		TUI: TUIConfig{
			Theme:     "tokyo-night",
			CharLimit: 200,
			Mouse:     true,
		},
		Logging: LoggingConfig{
			Enabled: false,
			Level:   "INFO",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("data.path", defaults.Data.Path)

	viper.SetDefault("tui.theme", defaults.TUI.Theme)
	viper.SetDefault("tui.char_limit", defaults.TUI.CharLimit)
	viper.SetDefault("tui.mouse", defaults.TUI.Mouse)

	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "todo")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".todo"
	}
	return filepath.Join(home, ".config", "todo")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// ValidThemes returns the list of valid theme names
func ValidThemes() []string {
	return []string{"tokyo-night", "ignite"}
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"DEBUG", "INFO", "WARN", "ERROR"}
}

// ValidationError describes a single invalid configuration value
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "invalid configuration: " + strings.Join(msgs, "; ")
}

// Validate checks the configuration and returns every problem found
func (c *Config) Validate() []ValidationError {
	var errs []ValidationError

	if !contains(ValidThemes(), c.TUI.Theme) {
		errs = append(errs, ValidationError{
			Field:   "tui.theme",
			Value:   c.TUI.Theme,
			Message: "must be one of " + strings.Join(ValidThemes(), ", "),
		})
	}

	if c.TUI.CharLimit < 1 || c.TUI.CharLimit > 1000 {
		errs = append(errs, ValidationError{
			Field:   "tui.char_limit",
			Value:   c.TUI.CharLimit,
			Message: "must be between 1 and 1000",
		})
	}

	if !contains(ValidLogLevels(), strings.ToUpper(c.Logging.Level)) {
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: "must be one of " + strings.Join(ValidLogLevels(), ", "),
		})
	}

	return errs
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/keisukeshimizu/wt/internal/hook"
)

// EnvPrefix prefixes environment overrides, e.g. WT_THEME or WT_LOG_FILE
const EnvPrefix = "WT"

// Config represents the complete wt configuration
type Config struct {
	Theme   string       `mapstructure:"theme" yaml:"theme"`
	Verbose bool         `mapstructure:"verbose" yaml:"verbose"`
	Log     LogConfig    `mapstructure:"log" yaml:"log"`
	Remove  RemoveConfig `mapstructure:"remove" yaml:"remove"`
	Hooks   HooksConfig  `mapstructure:"hooks" yaml:"hooks"`
}

// LogConfig configures the structured debug log
type LogConfig struct {
	File       string `mapstructure:"file" yaml:"file"`
	Level      string `mapstructure:"level" yaml:"level"`
	MaxSizeMB  int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age" yaml:"max_age"`
}

// RemoveConfig tunes background deletion of removed worktrees
type RemoveConfig struct {
	SweepWorkers int           `mapstructure:"sweep_workers" yaml:"sweep_workers"`
	SweepGrace   time.Duration `mapstructure:"sweep_grace" yaml:"sweep_grace"`
}

// HooksConfig holds the hook commands by hook
type HooksConfig struct {
	PostWorktreeChange []hook.Entry `mapstructure:"post_worktree_change" yaml:"post_worktree_change"`
}

// Lookup returns the entries of the named hook
func (h HooksConfig) Lookup(name string) ([]hook.Entry, bool) {
	switch name {
	case hook.PostWorktreeChange:
		return h.PostWorktreeChange, true
	default:
		return nil, false
	}
}

var (
	validThemes    = []string{"latte", "frappe", "macchiato", "mocha"}
	validLogLevels = []string{"debug", "info", "warn", "error"}
)

// Manager handles configuration loading and validation on top of viper
type Manager struct {
	v *viper.Viper
}

// NewManager creates a configuration manager with defaults registered
func NewManager(v *viper.Viper) *Manager {
	SetDefaults(v)
	return &Manager{v: v}
}

// SetDefaults registers every key so environment overrides apply to it
func SetDefaults(v *viper.Viper) {
	v.SetDefault("theme", "mocha")
	v.SetDefault("verbose", false)
	v.SetDefault("log.file", "")
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 7)
	v.SetDefault("remove.sweep_workers", 4)
	v.SetDefault("remove.sweep_grace", 30*time.Second)
	v.SetDefault("hooks.post_worktree_change", []hook.Entry{})
}

// DefaultDir returns the directory searched for config files,
// $XDG_CONFIG_HOME/wt or ~/.config/wt
func DefaultDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wt"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", "wt"), nil
}

// Read locates and reads the config file. cfgFile overrides the search;
// a missing file in the default location is not an error.
func (m *Manager) Read(cfgFile string) error {
	if cfgFile != "" {
		m.v.SetConfigFile(cfgFile)
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return err
		}
		m.v.AddConfigPath(dir)
		m.v.SetConfigName("config")
	}

	m.v.SetEnvPrefix(EnvPrefix)
	m.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.v.AutomaticEnv()

	if err := m.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Path returns the config file in use, or the default location when none
// was read
func (m *Manager) Path() string {
	if used := m.v.ConfigFileUsed(); used != "" {
		return used
	}
	dir, err := DefaultDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Decode resolves the configuration from defaults, file, environment and
// bound flags without validating it
func (m *Manager) Decode() (*Config, error) {
	var config Config
	if err := m.v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return &config, nil
}

// Load decodes and validates the configuration
func (m *Manager) Load() (*Config, error) {
	config, err := m.Decode()
	if err != nil {
		return nil, err
	}

	if problems := ValidateConfig(config); len(problems) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return config, nil
}

// ValidateConfig validates the configuration and returns any errors
func ValidateConfig(config *Config) []string {
	problems := ValidateSettings(config)
	for _, problem := range hook.Validate(config.Hooks.PostWorktreeChange) {
		problems = append(problems, "hooks.post_worktree_change: "+problem)
	}
	return problems
}

// ValidateSettings validates everything but the hooks
func ValidateSettings(config *Config) []string {
	var problems []string

	if !contains(validThemes, config.Theme) {
		problems = append(problems, fmt.Sprintf("unsupported theme: %s", config.Theme))
	}

	if config.Log.File != "" && !contains(validLogLevels, config.Log.Level) {
		problems = append(problems, fmt.Sprintf("unsupported log level: %s", config.Log.Level))
	}

	if config.Remove.SweepWorkers < 1 {
		problems = append(problems, fmt.Sprintf("remove.sweep_workers must be at least 1, got %d", config.Remove.SweepWorkers))
	}
	if config.Remove.SweepGrace < 0 {
		problems = append(problems, "remove.sweep_grace must not be negative")
	}

	return problems
}

// YAML renders the configuration for `wt config show`
func (c *Config) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return data, nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete cohort configuration
type Config struct {
	Paths     PathsConfig     `mapstructure:"paths"`
	Session   SessionConfig   `mapstructure:"session"`
	Goal      GoalConfig      `mapstructure:"goal"`
	Rules     RulesConfig     `mapstructure:"rules"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// PathsConfig controls where cohort stores data
type PathsConfig struct {
	// DataDir is the directory where session, task, and goal records live.
	// If empty, defaults to ".cohort" relative to the project root.
	// Can be an absolute path. Supports ~ for home directory expansion.
	DataDir string `mapstructure:"data_dir"`
}

// SessionConfig controls session registry behavior
type SessionConfig struct {
	// NameMaxLength caps session names after sanitization (default: 50)
	NameMaxLength int `mapstructure:"name_max_length"`
	// DefaultFocusTags are assigned when a session is created without tags
	DefaultFocusTags []string `mapstructure:"default_focus_tags"`
	// DefaultDirectories are claimed when a session omits them (default: ["."])
	DefaultDirectories []string `mapstructure:"default_directories"`
	// DefaultFilePatterns are matched when a session omits them (default: ["*"])
	DefaultFilePatterns []string `mapstructure:"default_file_patterns"`
}

// GoalConfig controls goal validation and history retention
type GoalConfig struct {
	// MinLength is the minimum goal length in characters (default: 10)
	MinLength int `mapstructure:"min_length"`
	// MaxLength is the maximum goal length in characters (default: 2000)
	MaxLength int `mapstructure:"max_length"`
	// HistoryRetention is how many history entries to keep; oldest entries
	// are pruned first (default: 50)
	HistoryRetention int `mapstructure:"history_retention"`
	// WordSampleSize bounds how many added/removed words are stored per
	// history entry (default: 10)
	WordSampleSize int `mapstructure:"word_sample_size"`
}

// RulesConfig controls the instruction document generator
type RulesConfig struct {
	// OutputFile is where generated instructions are written (default: "COHORT.md")
	OutputFile string `mapstructure:"output_file"`
	// Template is a custom document template using Go text/template syntax.
	// Empty means use the built-in template.
	Template string `mapstructure:"template"`
}

// DashboardConfig controls the terminal dashboard
type DashboardConfig struct {
	// PollIntervalMs is how often the dashboard re-reads records (default: 2000)
	PollIntervalMs int `mapstructure:"poll_interval_ms"`
	// Watch enables filesystem watching for refreshes between polls (default: true)
	Watch bool `mapstructure:"watch"`
}

// LoggingConfig controls debug logging behavior
type LoggingConfig struct {
	// Enabled controls whether debug logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
}

// PollInterval returns the dashboard poll interval as a time.Duration
func (d *DashboardConfig) PollInterval() time.Duration {
	return time.Duration(d.PollIntervalMs) * time.Millisecond
}

// ResolveDataDir returns the resolved data directory path.
// If DataDir is empty, it returns the default path relative to baseDir.
// If DataDir starts with ~, it expands to the user's home directory.
// If DataDir is a relative path, it's resolved relative to baseDir.
func (p *PathsConfig) ResolveDataDir(baseDir string) string {
	if p.DataDir == "" {
		return filepath.Join(baseDir, ".cohort")
	}

	path := p.DataDir

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}

	return path
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			DataDir: "", // Empty means use default: .cohort
		},
		Session: SessionConfig{
			NameMaxLength:       50,
			DefaultFocusTags:    []string{"general"},
			DefaultDirectories:  []string{"."},
			DefaultFilePatterns: []string{"*"},
		},
		Goal: GoalConfig{
			MinLength:        10,
			MaxLength:        2000,
			HistoryRetention: 50,
			WordSampleSize:   10,
		},
		Rules: RulesConfig{
			OutputFile: "COHORT.md",
			Template:   "",
		},
		Dashboard: DashboardConfig{
			PollIntervalMs: 2000,
			Watch:          true,
		},
		Logging: LoggingConfig{
			Enabled: true,
			Level:   "info",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Paths defaults
	viper.SetDefault("paths.data_dir", defaults.Paths.DataDir)

	// Session defaults
	viper.SetDefault("session.name_max_length", defaults.Session.NameMaxLength)
	viper.SetDefault("session.default_focus_tags", defaults.Session.DefaultFocusTags)
	viper.SetDefault("session.default_directories", defaults.Session.DefaultDirectories)
	viper.SetDefault("session.default_file_patterns", defaults.Session.DefaultFilePatterns)

	// Goal defaults
	viper.SetDefault("goal.min_length", defaults.Goal.MinLength)
	viper.SetDefault("goal.max_length", defaults.Goal.MaxLength)
	viper.SetDefault("goal.history_retention", defaults.Goal.HistoryRetention)
	viper.SetDefault("goal.word_sample_size", defaults.Goal.WordSampleSize)

	// Rules defaults
	viper.SetDefault("rules.output_file", defaults.Rules.OutputFile)
	viper.SetDefault("rules.template", defaults.Rules.Template)

	// Dashboard defaults
	viper.SetDefault("dashboard.poll_interval_ms", defaults.Dashboard.PollIntervalMs)
	viper.SetDefault("dashboard.watch", defaults.Dashboard.Watch)

	// Logging defaults
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

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "cohort")
	}
	// Fall back to ~/.config/cohort
	home, err := os.UserHomeDir()
	if err != nil {
		return ".cohort"
	}
	return filepath.Join(home, ".config", "cohort")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

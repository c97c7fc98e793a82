// Package config loads the sun CLI settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar names the environment variable consulted when no --config flag is given.
const EnvVar = "SUN_CONFIG"

// Config holds the CLI settings.
type Config struct {
	LogLevel string     `yaml:"log_level"`
	REPL     REPLConfig `yaml:"repl"`

	// Path is the file the config was read from, empty for defaults.
	Path string `yaml:"-"`
}

// REPLConfig configures the interactive prompt.
type REPLConfig struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	Color       bool   `yaml:"color"`
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		LogLevel: "warn",
		REPL: REPLConfig{
			Prompt:      "sun> ",
			HistoryFile: "~/.sun_history",
			Color:       true,
		},
	}
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// Load reads and validates the config at path. Keys missing from the file
// keep their default values; unknown keys are rejected.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}
	cfg.Path = absPath

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve finds the config to use. An explicit path wins, then $SUN_CONFIG,
// then $HOME/.config/sun/config.yml. Only the last may be absent, in which
// case the defaults are returned.
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	if env := os.Getenv(EnvVar); env != "" {
		return Load(env)
	}

	path := DefaultPath()
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// DefaultPath returns $HOME/.config/sun/config.yml, or "" without a home dir.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "sun", "config.yml")
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs ValidationError
	if _, ok := logLevels[strings.ToLower(c.LogLevel)]; !ok {
		errs.Issues = append(errs.Issues,
			fmt.Sprintf("log_level %q must be one of debug, info, warn, error", c.LogLevel))
	}
	if c.REPL.Prompt == "" {
		errs.Issues = append(errs.Issues, "repl.prompt must not be empty")
	}
	if strings.ContainsAny(c.REPL.Prompt, "\n\r") {
		errs.Issues = append(errs.Issues, "repl.prompt must be a single line")
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// Level returns the slog level named by LogLevel, or warn if it is unknown.
func (c *Config) Level() slog.Level {
	if lvl, ok := logLevels[strings.ToLower(c.LogLevel)]; ok {
		return lvl
	}
	return slog.LevelWarn
}

// ParseLevel converts a --log-level flag value.
func ParseLevel(s string) (slog.Level, error) {
	lvl, ok := logLevels[strings.ToLower(s)]
	if !ok {
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// HistoryPath returns the REPL history file with a leading ~ expanded.
// An empty setting disables history.
func (c *Config) HistoryPath() string {
	return ExpandHome(c.REPL.HistoryFile)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

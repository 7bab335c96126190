package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vango-dev/didact/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "didact.json"

	// DefaultSlice is the default length of one idle slice.
	DefaultSlice = 16 * time.Millisecond

	// DefaultYieldThreshold is the default remaining slice time below which
	// the work loop yields.
	DefaultYieldThreshold = time.Millisecond

	// DefaultLogLevel is the default log level.
	DefaultLogLevel = "info"

	// DefaultNamespace is the default metrics namespace.
	DefaultNamespace = "didact"

	// DefaultLiveAddr is the default live preview listen address.
	DefaultLiveAddr = ":7331"
)

// Config represents the complete didact.json configuration.
type Config struct {
	// Slice is the idle slice length (e.g., "16ms").
	Slice string `json:"slice,omitempty"`

	// YieldThreshold is the remaining slice time below which the work loop
	// yields (e.g., "1ms").
	YieldThreshold string `json:"yieldThreshold,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"logLevel,omitempty"`

	// Metrics contains Prometheus metric settings.
	Metrics MetricsConfig `json:"metrics,omitempty"`

	// Live contains live preview server settings.
	Live LiveConfig `json:"live,omitempty"`

	// Render contains HTML output settings.
	Render RenderConfig `json:"render,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// MetricsConfig contains metric settings.
type MetricsConfig struct {
	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty"`
}

// LiveConfig contains live preview server settings.
type LiveConfig struct {
	// Addr is the address the server listens on.
	Addr string `json:"addr,omitempty"`
}

// RenderConfig contains HTML output settings.
type RenderConfig struct {
	// Pretty indents nested block elements.
	Pretty bool `json:"pretty,omitempty"`

	// Indent is the indentation unit used when Pretty is set.
	Indent string `json:"indent,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Slice:          DefaultSlice.String(),
		YieldThreshold: DefaultYieldThreshold.String(),
		LogLevel:       DefaultLogLevel,
		Metrics:        MetricsConfig{Namespace: DefaultNamespace},
		Live:           LiveConfig{Addr: DefaultLiveAddr},
		Render:         RenderConfig{Indent: "  "},
	}
}

// Default returns the configuration used when no didact.json exists.
func Default() *Config {
	return New()
}

// Load loads didact.json from dir. A missing file yields the defaults.
func Load(dir string) (*Config, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads and validates configuration from a specific file path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E041").
			WithDetail("Could not read " + path).
			Wrap(err)
	}

	cfg := New()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E041").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration back to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.New("E041").Wrap(err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E041").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path the config was loaded from, or "".
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) applyDefaults() {
	if c.Slice == "" {
		c.Slice = DefaultSlice.String()
	}
	if c.YieldThreshold == "" {
		c.YieldThreshold = DefaultYieldThreshold.String()
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Live.Addr == "" {
		c.Live.Addr = DefaultLiveAddr
	}
	if c.Render.Indent == "" {
		c.Render.Indent = "  "
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	slice, err := time.ParseDuration(c.Slice)
	if err != nil || slice <= 0 {
		return invalid("slice", c.Slice, "a positive duration such as \"16ms\"")
	}
	threshold, err := time.ParseDuration(c.YieldThreshold)
	if err != nil || threshold < 0 {
		return invalid("yieldThreshold", c.YieldThreshold, "a duration such as \"1ms\"")
	}
	if threshold >= slice {
		return errors.New("E040").
			WithDetailf("yieldThreshold (%s) must be shorter than slice (%s).", threshold, slice).
			WithSuggestion("Lower yieldThreshold or lengthen slice")
	}
	if _, ok := parseLevel(c.LogLevel); !ok {
		return invalid("logLevel", c.LogLevel, "one of debug, info, warn, error")
	}
	return nil
}

func invalid(field, value, want string) *errors.DidactError {
	return errors.New("E040").
		WithDetailf("%s is %q.", field, value).
		WithSuggestion("Set " + field + " to " + want)
}

// SliceDuration returns the parsed idle slice length.
func (c *Config) SliceDuration() time.Duration {
	d, err := time.ParseDuration(c.Slice)
	if err != nil || d <= 0 {
		return DefaultSlice
	}
	return d
}

// YieldThresholdDuration returns the parsed yield threshold.
func (c *Config) YieldThresholdDuration() time.Duration {
	d, err := time.ParseDuration(c.YieldThreshold)
	if err != nil || d < 0 {
		return DefaultYieldThreshold
	}
	return d
}

// Level returns the slog level for LogLevel.
func (c *Config) Level() slog.Level {
	level, _ := parseLevel(c.LogLevel)
	return level
}

func parseLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

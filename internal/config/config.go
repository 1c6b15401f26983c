// Package config loads rpage settings from an optional YAML file, RPAGE_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kk-code-lab/rpage/internal/textutil"
	"gopkg.in/yaml.v3"
	"pkt.systems/pslog"
)

// EnvPrefix prefixes environment overrides, e.g. RPAGE_TAB_WIDTH.
const EnvPrefix = "RPAGE"

const maxTabWidth = 32

// Config is the effective rpage configuration.
type Config struct {
	TabWidth        int    `mapstructure:"tab_width" yaml:"tab_width"`
	RawControlChars bool   `mapstructure:"raw_control_chars" yaml:"raw_control_chars"`
	LogFile         string `mapstructure:"log_file" yaml:"log_file"`
	LogLevel        string `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		TabWidth: textutil.DefaultTabWidth,
		LogLevel: "info",
	}
}

// DefaultPath returns the standard config path under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rpage", "config.yaml"), nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.TabWidth < 0 || c.TabWidth > maxTabWidth {
		return fmt.Errorf("tab_width must be between 0 and %d, got %d", maxTabWidth, c.TabWidth)
	}
	if _, err := c.LoggerOptions(); err != nil {
		return err
	}
	return nil
}

// LoggerOptions maps the configured level onto structured pslog options.
func (c Config) LoggerOptions() (pslog.Options, error) {
	opts := pslog.Options{Mode: pslog.ModeStructured, NoColor: true}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "", "info":
		opts.MinLevel = pslog.InfoLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	default:
		return pslog.Options{}, fmt.Errorf("unsupported log_level %q (want trace, debug, info or error)", c.LogLevel)
	}
	return opts, nil
}

// YAML renders the configuration as a config file would hold it.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

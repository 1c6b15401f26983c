package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys binds flag names to config keys.
var flagKeys = map[string]string{
	"tab-width":         "tab_width",
	"raw-control-chars": "raw_control_chars",
	"log-file":          "log_file",
	"log-level":         "log_level",
}

// Load reads configuration from path, or DefaultPath when path is empty. A
// missing file is not an error. Flags that were set on the command line
// override the file and the environment; flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	explicit := path != ""
	if !explicit {
		defaultPath, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("tab_width", cfg.TabWidth)
	v.SetDefault("raw_control_chars", cfg.RawControlChars)
	v.SetDefault("log_file", cfg.LogFile)
	v.SetDefault("log_level", cfg.LogLevel)

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, err
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil && !isNotFound(err, explicit) {
		return Config{}, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.LogFile = os.ExpandEnv(cfg.LogFile)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// isNotFound treats an absent default file as empty config. An explicitly
// requested file must exist.
func isNotFound(err error, explicit bool) bool {
	if explicit {
		return false
	}
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

// Package config loads assembler settings from a YAML file and the
// environment. Command line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"mcasm/pkg/isa"
	"mcasm/pkg/logging"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "mcasm.yaml"

const (
	EnvGPRCount     = "MCASM_GPR_COUNT"
	EnvStrictLabels = "MCASM_STRICT_LABELS"
	EnvAllErrors    = "MCASM_ALL_ERRORS"
	EnvTrim         = "MCASM_TRIM"
	EnvListing      = "MCASM_LISTING"
	EnvLogLevel     = "MCASM_LOG_LEVEL"
	EnvLogFormat    = "MCASM_LOG_FORMAT"
)

type Config struct {
	GPRCount     int    `yaml:"gpr_count"`
	StrictLabels bool   `yaml:"strict_labels"`
	CollectAll   bool   `yaml:"all_errors"`
	TrimTrailing bool   `yaml:"trim_trailing_space"`
	Listing      bool   `yaml:"listing"`
	LogLevel     string `yaml:"log_level"`
	LogFormat    string `yaml:"log_format"`
}

func Default() Config {
	return Config{
		GPRCount:  isa.DefaultGPRCount,
		LogLevel:  "warn",
		LogFormat: logging.FormatAuto,
	}
}

// Load starts from the defaults, applies the YAML file, then the
// environment. An empty path reads DefaultFile if it exists.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	cfg.applyEnv()

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() {
	// env caches the process environment on first read.
	env.Load()
	c.GPRCount = env.Int(EnvGPRCount, c.GPRCount)
	if env.Has(EnvStrictLabels) {
		c.StrictLabels = env.Bool(EnvStrictLabels)
	}
	if env.Has(EnvAllErrors) {
		c.CollectAll = env.Bool(EnvAllErrors)
	}
	if env.Has(EnvTrim) {
		c.TrimTrailing = env.Bool(EnvTrim)
	}
	if env.Has(EnvListing) {
		c.Listing = env.Bool(EnvListing)
	}
	c.LogLevel = env.Str(EnvLogLevel, c.LogLevel)
	c.LogFormat = env.Str(EnvLogFormat, c.LogFormat)
}

func (c Config) Validate() error {
	if c.GPRCount < 1 || c.GPRCount > isa.MaxGPRCount {
		return fmt.Errorf("gpr_count %d out of range 1-%d", c.GPRCount, isa.MaxGPRCount)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if !logging.ValidFormat(c.LogFormat) {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

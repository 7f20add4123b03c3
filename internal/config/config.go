// =============================================================================
// dzcb - Configuration Module
// =============================================================================
//
// This module loads the settings of a conversion run. Settings come from
// three layers, each overriding the one before:
//
//   1. The YAML config file (dzcb.yaml), if present
//   2. DZCB_* environment variables, including those set in a .env file
//   3. Command line flags (applied by the cmd package)
//
// A missing config file is not an error: the defaults are complete.
//
// EXAMPLE dzcb.yaml:
//
//   input_dir: ./k7abd
//   output_dir: ./out
//   radios: [878]
//   sort: repeaters-first
//   log_level: debug
//   write_summary: true
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/mycodeplug/dzcb/internal/anytone"
	"github.com/mycodeplug/dzcb/internal/models"
)

// DefaultConfigFile is read when no config file is named explicitly.
const DefaultConfigFile = "dzcb.yaml"

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "DZCB_"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the settings of a conversion run.
type Config struct {
	// InputDir is the directory holding the K7ABD input files.
	InputDir string `yaml:"input_dir"`

	// OutputDir receives one subdirectory per radio.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// Radios lists the radio ids to generate, or "both".
	// Default: ["both"]
	Radios []string `yaml:"radios"`

	// Sort is the zone ordering: alpha, repeaters-first or analog-first.
	// Default: "alpha"
	Sort string `yaml:"sort"`

	// LogLevel is one of debug, info, warn, error.
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// WriteSummary writes manifest.yaml to the output directory.
	WriteSummary bool `yaml:"write_summary"`

	// WriteWorkbook writes a review workbook per radio.
	WriteWorkbook bool `yaml:"write_workbook"`

	// Strict aborts the run when validation reports warnings.
	Strict bool `yaml:"strict"`
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration.
//
// PARAMETERS:
//   - configPath: The YAML file to read. When empty, DefaultConfigFile is
//     read if it exists. A file named explicitly must exist.
//
// RETURNS:
//   - The configuration with defaults and environment overrides applied.
//   - An error if the file cannot be parsed or a value is invalid.
func Load(configPath string) (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	cfg := &Config{}
	path, explicit := configPath, configPath != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyEnv overrides settings from DZCB_* environment variables.
func applyEnv(cfg *Config) error {
	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	boolean := func(name string, dst *bool) error {
		v, ok := os.LookupEnv(EnvPrefix + name)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("INPUT_DIR", &cfg.InputDir)
	str("OUTPUT_DIR", &cfg.OutputDir)
	str("SORT", &cfg.Sort)
	str("LOG_LEVEL", &cfg.LogLevel)

	var radios string
	str("RADIOS", &radios)
	if radios != "" {
		cfg.Radios = strings.Split(radios, ",")
	}

	for name, dst := range map[string]*bool{
		"WRITE_SUMMARY":  &cfg.WriteSummary,
		"WRITE_WORKBOOK": &cfg.WriteWorkbook,
		"STRICT":         &cfg.Strict,
	} {
		if err := boolean(name, dst); err != nil {
			return err
		}
	}
	return nil
}

// applyDefaults sets default values for any unset options.
func applyDefaults(cfg *Config) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if len(cfg.Radios) == 0 {
		cfg.Radios = []string{"both"}
	}
	if cfg.Sort == "" {
		cfg.Sort = string(models.SortAlpha)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the option values. The input directory is checked when it
// is read, not here.
func (c *Config) Validate() error {
	if _, err := models.ParseSortMode(c.Sort); err != nil {
		return err
	}
	if _, err := anytone.ParseRadioIDs(c.Radios...); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// SortMode returns the parsed sort mode.
func (c *Config) SortMode() models.SortMode {
	mode, err := models.ParseSortMode(c.Sort)
	if err != nil {
		return models.SortAlpha
	}
	return mode
}

// RadioIDs returns the expanded radio selection.
func (c *Config) RadioIDs() []string {
	ids, err := anytone.ParseRadioIDs(c.Radios...)
	if err != nil {
		return anytone.RadioIDs()
	}
	return ids
}

// Level returns the parsed log level.
func (c *Config) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

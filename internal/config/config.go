// Package config loads the settings of the symdiff command-line tool.
//
// Priority: environment > file > defaults. Command-line flags are applied
// on top by the caller, which then calls Validate once on the merged result.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Field names accepted in Config.Field.
const (
	FieldReal   = "real"
	FieldDual   = "dual"
	FieldVector = "vector"
)

// Environment variables read by Load.
const (
	EnvField    = "SYMDIFF_FIELD"
	EnvStrict   = "SYMDIFF_STRICT"
	EnvLogLevel = "SYMDIFF_LOG_LEVEL"
)

// Common errors.
var (
	ErrUnknownField    = errors.New("unknown field")
	ErrUnknownLogLevel = errors.New("unknown log level")
	ErrInvalidSettings = errors.New("invalid gradient check settings")
	ErrVectorLength    = errors.New("vector variables need the vector field")
)

// Config holds the tool settings.
type Config struct {
	// Field selects the value field: real, dual or vector.
	Field string `yaml:"field"`

	// Strict enables the strict chain rule.
	Strict bool `yaml:"strict"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Variables assigns initial values by name. A scalar or a list.
	Variables map[string]Values `yaml:"variables"`

	// Epsilon is the finite-difference step of the check command.
	Epsilon float64 `yaml:"epsilon"`

	// Tolerance is the accepted relative error of the check command.
	Tolerance float64 `yaml:"tolerance"`
}

// Values is a variable assignment: one number or a list of numbers.
type Values []float64

// UnmarshalYAML accepts both "x: 1.5" and "x: [1, 2]".
func (v *Values) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var f float64
		if err := node.Decode(&f); err != nil {
			return err
		}
		*v = Values{f}
		return nil
	case yaml.SequenceNode:
		var fs []float64
		if err := node.Decode(&fs); err != nil {
			return err
		}
		*v = fs
		return nil
	default:
		return fmt.Errorf("line %d: variable must be a number or a list of numbers", node.Line)
	}
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Field:     FieldReal,
		LogLevel:  "warn",
		Variables: map[string]Values{},
		Epsilon:   1e-6,
		Tolerance: 1e-5,
	}
}

// Load reads the configuration at path, which may be empty, then applies
// environment overrides. A missing file is not an error. Load reports only
// read and parse failures; the result is not validated, so that later
// overrides can still change the field a vector variable requires.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := loadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("load config from environment: %w", err)
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Variables == nil {
		cfg.Variables = map[string]Values{}
	}
	return nil
}

func loadEnv(cfg *Config) error {
	if v := os.Getenv(EnvField); v != "" {
		cfg.Field = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvStrict); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvStrict, err)
		}
		cfg.Strict = b
	}
	return nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	switch strings.ToLower(c.Field) {
	case FieldReal, FieldDual, FieldVector:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, c.Field)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLogLevel, c.LogLevel)
	}

	if c.Epsilon <= 0 || c.Tolerance <= 0 {
		return fmt.Errorf("%w: epsilon=%g tolerance=%g", ErrInvalidSettings, c.Epsilon, c.Tolerance)
	}

	if !strings.EqualFold(c.Field, FieldVector) {
		for name, vals := range c.Variables {
			if len(vals) != 1 {
				return fmt.Errorf("variable %q has %d values: %w", name, len(vals), ErrVectorLength)
			}
		}
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"poisson-lab/internal/rate"
)

// Process kinds
const (
	ProcessHomogeneous   = "homogeneous"
	ProcessInhomogeneous = "inhomogeneous"
)

// ErrInvalid is wrapped by every error Validate returns.
var ErrInvalid = errors.New("invalid configuration")

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. POISSONLAB_PROCESS_RATE.
const EnvPrefix = "POISSONLAB"

// Config represents the complete configuration for a simulation experiment
type Config struct {
	Random     RandomConfig     `mapstructure:"random" yaml:"random"`
	Process    ProcessConfig    `mapstructure:"process" yaml:"process"`
	Validation ValidationConfig `mapstructure:"validation" yaml:"validation"`
	Service    ServiceConfig    `mapstructure:"service" yaml:"service"`
	Experiment ExperimentConfig `mapstructure:"experiment" yaml:"experiment"`
	Output     OutputConfig     `mapstructure:"output" yaml:"output"`
	Log        LogConfig        `mapstructure:"log" yaml:"log"`
}

// RandomConfig controls seeding of the uniform source.
// A zero seed derives seeds from the clock.
type RandomConfig struct {
	Seed int64 `mapstructure:"seed" yaml:"seed"`
}

// ProcessConfig describes the arrival process
type ProcessConfig struct {
	Kind    string  `mapstructure:"kind" yaml:"kind"`
	Rate    float64 `mapstructure:"rate" yaml:"rate"`   // homogeneous rate
	Bound   float64 `mapstructure:"bound" yaml:"bound"` // dominating rate for thinning
	Horizon float64 `mapstructure:"horizon" yaml:"horizon"`

	RateFunction rate.Spec `mapstructure:"rate_function" yaml:"rate_function"`

	// Safety limits, 0 disables
	MaxCandidates int `mapstructure:"max_candidates" yaml:"max_candidates"`
	MaxArrivals   int `mapstructure:"max_arrivals" yaml:"max_arrivals"`
}

// ValidationConfig contains goodness-of-fit parameters
type ValidationConfig struct {
	Alpha float64 `mapstructure:"alpha" yaml:"alpha"`
}

// ServiceConfig contains the service-time distribution
type ServiceConfig struct {
	Rate float64 `mapstructure:"rate" yaml:"rate"`
}

// ExperimentConfig defines how many independent runs to make
type ExperimentConfig struct {
	Replications int `mapstructure:"replications" yaml:"replications"`
}

// OutputConfig defines output settings
type OutputConfig struct {
	ReportFile string `mapstructure:"report_file" yaml:"report_file"`
	DataFile   string `mapstructure:"data_file" yaml:"data_file"`
}

// LogConfig defines the log level (debug, info, warn, error)
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// New returns a viper instance with defaults and environment overrides
// registered. Flags may be bound to it before Load is called.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("random.seed", 0)
	v.SetDefault("process.kind", ProcessHomogeneous)
	v.SetDefault("process.rate", 2.0)
	v.SetDefault("process.bound", 0.0)
	v.SetDefault("process.horizon", 100.0)
	v.SetDefault("process.rate_function.kind", rate.KindConstant)
	v.SetDefault("process.rate_function.base", 1.0)
	v.SetDefault("process.max_candidates", 0)
	v.SetDefault("process.max_arrivals", 0)
	v.SetDefault("validation.alpha", 0.05)
	v.SetDefault("service.rate", 2.5)
	v.SetDefault("experiment.replications", 1)
	v.SetDefault("output.report_file", "")
	v.SetDefault("output.data_file", "")
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Default returns the built-in configuration
func Default() *Config {
	cfg, err := decode(New())
	if err != nil {
		panic(fmt.Sprintf("config defaults do not decode: %v", err))
	}
	return cfg
}

// LoadConfig reads the configuration file at path (YAML or JSON) into v,
// decodes and validates it. An empty path uses defaults, environment and
// bound flags only.
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid and reports the first
// violation wrapped in ErrInvalid.
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Process.Kind {
	case ProcessHomogeneous:
		if c.Process.Rate <= 0 {
			return errors.New("process.rate must be positive")
		}
	case ProcessInhomogeneous:
		if c.Process.Bound <= 0 {
			return errors.New("process.bound must be positive for an inhomogeneous process")
		}
		if _, err := rate.Build(c.Process.RateFunction); err != nil {
			return fmt.Errorf("process.rate_function: %w", err)
		}
	default:
		return fmt.Errorf("process.kind must be %q or %q, got %q",
			ProcessHomogeneous, ProcessInhomogeneous, c.Process.Kind)
	}
	if c.Process.Horizon <= 0 {
		return errors.New("process.horizon must be positive")
	}
	if c.Process.MaxCandidates < 0 {
		return errors.New("process.max_candidates must not be negative")
	}
	if c.Process.MaxArrivals < 0 {
		return errors.New("process.max_arrivals must not be negative")
	}
	if c.Validation.Alpha <= 0 || c.Validation.Alpha >= 1 {
		return errors.New("validation.alpha must be in (0,1)")
	}
	if c.Service.Rate <= 0 {
		return errors.New("service.rate must be positive")
	}
	if c.Experiment.Replications <= 0 {
		return errors.New("experiment.replications must be positive")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}

	return nil
}

// Save writes the configuration to path as YAML
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Encode writes the configuration to w as YAML
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

// Package config loads smellscope configuration from a YAML file and
// SMELLSCOPE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Sumatoshi-tech/smellscope/pkg/export"
)

// Sentinel validation errors.
var (
	ErrInvalidWorkers     = errors.New("workers must not be negative")
	ErrInvalidPercentile  = errors.New("percentile must be within [0, 100]")
	ErrInvalidFormat      = errors.New("unsupported output format")
	ErrInvalidPrecision   = errors.New("precision must be -1 or more")
	ErrInvalidLogLevel    = errors.New("unknown log level")
	ErrInvalidLogFormat   = errors.New("log format must be text or json")
	ErrInvalidSampleRatio = errors.New("sample ratio must be within [0, 1]")
)

const (
	envPrefix      = "SMELLSCOPE"
	configName     = ".smellscope"
	maxPercentile  = 100
	minPrecision   = -1
	logFormatText  = "text"
	logFormatJSON  = "json"
	maxSampleRatio = 1
)

// Config holds all configuration for smellscope.
type Config struct {
	Analysis  AnalysisConfig  `mapstructure:"analysis"`
	Rules     RulesConfig     `mapstructure:"rules"`
	Output    OutputConfig    `mapstructure:"output"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// AnalysisConfig controls input discovery and the measurement pipeline.
type AnalysisConfig struct {
	Include          []string `mapstructure:"include"`
	Exclude          []string `mapstructure:"exclude"`
	Workers          int      `mapstructure:"workers"`
	RespectGitignore bool     `mapstructure:"respect_gitignore"`
	SkipVendor       bool     `mapstructure:"skip_vendor"`
	// Validate checks every input document against the UAST schema.
	Validate bool `mapstructure:"validate"`
}

// RulesConfig controls smell detection.
type RulesConfig struct {
	// File is an optional YAML rule set replacing the default rules.
	File string `mapstructure:"file"`
	// Corpus is an optional stored snapshot used for dynamic thresholds.
	Corpus         string  `mapstructure:"corpus"`
	ATFDPercentile float64 `mapstructure:"atfd_percentile"`
	WMCPercentile  float64 `mapstructure:"wmc_percentile"`
	Dynamic        bool    `mapstructure:"dynamic"`
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Format        string `mapstructure:"format"`
	Precision     int    `mapstructure:"precision"`
	Members       bool   `mapstructure:"members"`
	ExcludeStatic bool   `mapstructure:"exclude_static"`
	ExcludeInner  bool   `mapstructure:"exclude_inner"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds OpenTelemetry and metrics export settings.
type TelemetryConfig struct {
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPHeaders  string  `mapstructure:"otlp_headers"`
	Environment  string  `mapstructure:"environment"`
	MetricsFile  string  `mapstructure:"metrics_file"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
}

// LoadConfig loads configuration from file and environment variables.
// With an empty path, .smellscope.yaml is searched in ., ./config and
// /etc/smellscope; a missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("./config")
		viperCfg.AddConfigPath("/etc/smellscope")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// Default returns the configuration used when no file or environment is set.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Include:          []string{DefaultInclude},
			Workers:          DefaultWorkers,
			RespectGitignore: DefaultRespectGitignore,
			SkipVendor:       DefaultSkipVendor,
			Validate:         DefaultValidate,
		},
		Rules: RulesConfig{
			ATFDPercentile: DefaultATFDPercentile,
			WMCPercentile:  DefaultWMCPercentile,
			Dynamic:        DefaultDynamicRules,
		},
		Output:    OutputConfig{Format: DefaultFormat, Precision: DefaultPrecision},
		Logging:   LoggingConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Telemetry: TelemetryConfig{SampleRatio: DefaultSampleRatio},
	}
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	defaults := Default()

	viperCfg.SetDefault("analysis.include", defaults.Analysis.Include)
	viperCfg.SetDefault("analysis.exclude", []string{})
	viperCfg.SetDefault("analysis.workers", defaults.Analysis.Workers)
	viperCfg.SetDefault("analysis.respect_gitignore", defaults.Analysis.RespectGitignore)
	viperCfg.SetDefault("analysis.skip_vendor", defaults.Analysis.SkipVendor)
	viperCfg.SetDefault("analysis.validate", defaults.Analysis.Validate)

	viperCfg.SetDefault("rules.file", "")
	viperCfg.SetDefault("rules.corpus", "")
	viperCfg.SetDefault("rules.dynamic", defaults.Rules.Dynamic)
	viperCfg.SetDefault("rules.atfd_percentile", defaults.Rules.ATFDPercentile)
	viperCfg.SetDefault("rules.wmc_percentile", defaults.Rules.WMCPercentile)

	viperCfg.SetDefault("output.format", defaults.Output.Format)
	viperCfg.SetDefault("output.precision", defaults.Output.Precision)
	viperCfg.SetDefault("output.members", false)
	viperCfg.SetDefault("output.exclude_static", false)
	viperCfg.SetDefault("output.exclude_inner", false)

	viperCfg.SetDefault("logging.level", defaults.Logging.Level)
	viperCfg.SetDefault("logging.format", defaults.Logging.Format)

	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_headers", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.environment", "")
	viperCfg.SetDefault("telemetry.metrics_file", "")
	viperCfg.SetDefault("telemetry.sample_ratio", defaults.Telemetry.SampleRatio)
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Analysis.Workers)
	}

	for name, p := range map[string]float64{
		"rules.atfd_percentile": c.Rules.ATFDPercentile,
		"rules.wmc_percentile":  c.Rules.WMCPercentile,
	} {
		if p < 0 || p > maxPercentile {
			return fmt.Errorf("%w: %s = %v", ErrInvalidPercentile, name, p)
		}
	}

	if _, err := export.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Output.Format)
	}

	if c.Output.Precision < minPrecision {
		return fmt.Errorf("%w: %d", ErrInvalidPrecision, c.Output.Precision)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case logFormatText, logFormatJSON:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > maxSampleRatio {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRatio, c.Telemetry.SampleRatio)
	}

	return nil
}

// LogJSON reports whether logs are written as JSON.
func (c *Config) LogJSON() bool {
	return strings.EqualFold(c.Logging.Format, logFormatJSON)
}

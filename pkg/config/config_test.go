package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/smellscope/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".smellscope.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfig_EmptyFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	defaults := config.Default()
	assert.Equal(t, defaults.Analysis.Include, cfg.Analysis.Include)
	assert.Equal(t, config.DefaultWorkers, cfg.Analysis.Workers)
	assert.Equal(t, config.DefaultRespectGitignore, cfg.Analysis.RespectGitignore)
	assert.InDelta(t, config.DefaultATFDPercentile, cfg.Rules.ATFDPercentile, 0)
	assert.InDelta(t, config.DefaultWMCPercentile, cfg.Rules.WMCPercentile, 0)
	assert.Equal(t, config.DefaultFormat, cfg.Output.Format)
	assert.Equal(t, config.DefaultPrecision, cfg.Output.Precision)
	assert.Equal(t, config.DefaultLogLevel, cfg.Logging.Level)
	assert.False(t, cfg.LogJSON())
}

func TestLoadConfig_ValidFileUnmarshals(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `analysis:
  workers: 4
  include: ["**/*.uast.json"]
  exclude: ["generated/**"]
  validate: true
rules:
  dynamic: true
  atfd_percentile: 25
  file: rules.yaml
output:
  format: csv
  precision: -1
  exclude_static: true
logging:
  level: debug
  format: json
telemetry:
  otlp_endpoint: localhost:4317
  sample_ratio: 0.5
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.Equal(t, []string{"**/*.uast.json"}, cfg.Analysis.Include)
	assert.Equal(t, []string{"generated/**"}, cfg.Analysis.Exclude)
	assert.True(t, cfg.Analysis.Validate)
	assert.True(t, cfg.Rules.Dynamic)
	assert.InDelta(t, 25.0, cfg.Rules.ATFDPercentile, 0)
	assert.InDelta(t, config.DefaultWMCPercentile, cfg.Rules.WMCPercentile, 0)
	assert.Equal(t, "rules.yaml", cfg.Rules.File)
	assert.Equal(t, "csv", cfg.Output.Format)
	assert.Equal(t, -1, cfg.Output.Precision)
	assert.True(t, cfg.Output.ExcludeStatic)
	assert.True(t, cfg.LogJSON())
	assert.Equal(t, "localhost:4317", cfg.Telemetry.OTLPEndpoint)
	assert.InDelta(t, 0.5, cfg.Telemetry.SampleRatio, 0)
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"negative workers", "analysis: {workers: -1}", config.ErrInvalidWorkers},
		{"percentile", "rules: {wmc_percentile: 120}", config.ErrInvalidPercentile},
		{"format", "output: {format: xml}", config.ErrInvalidFormat},
		{"precision", "output: {precision: -3}", config.ErrInvalidPrecision},
		{"log level", "logging: {level: loud}", config.ErrInvalidLogLevel},
		{"log format", "logging: {format: xml}", config.ErrInvalidLogFormat},
		{"sample ratio", "telemetry: {sample_ratio: 2}", config.ErrInvalidSampleRatio},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

//nolint:paralleltest // t.Setenv forbids t.Parallel.
func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SMELLSCOPE_ANALYSIS_WORKERS", "6")
	t.Setenv("SMELLSCOPE_OUTPUT_FORMAT", "json")

	cfg, err := config.LoadConfig(writeConfig(t, "analysis: {workers: 2}"))
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Analysis.Workers)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, config.Default().Validate())
}

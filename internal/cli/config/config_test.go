package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sparkfmt/sparkfmt/pkg/format"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfigFile writes a sparkfmt.yaml into a temp dir and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "sparkfmt.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0600))
	return cfgPath
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()

	// Point at an empty directory so no project config is picked up.
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "sparkfmt.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(""), 0600))

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultIndent, cfg.Style.Indent)
	assert.Equal(t, DefaultKeywordCase, cfg.Style.KeywordCase)
	assert.Equal(t, DefaultCommaPosition, cfg.Style.CommaPosition)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultExtensions, cfg.Extensions)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, tmpDir, cfg.ProjectRoot)
}

func TestLoadConfig_FromFile(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, `style:
  indent: 4
  keyword_case: lower
  comma_position: leading
extensions:
  - .sql
  - .hql
`)

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Style.Indent)
	assert.Equal(t, "lower", cfg.Style.KeywordCase)
	assert.Equal(t, "leading", cfg.Style.CommaPosition)
	assert.Equal(t, []string{".sql", ".hql"}, cfg.Extensions)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	ResetConfig()

	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadConfig_InvalidKeywordCase(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, `style:
  keyword_case: shouty
`)

	_, err := LoadConfig(cfgPath, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid keyword case")
	assert.Contains(t, err.Error(), "upper, lower, preserve", "error should list valid values")
}

func TestLoadConfig_InvalidCommaPosition(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, `style:
  comma_position: middle
`)

	_, err := LoadConfig(cfgPath, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid comma position")
	assert.Contains(t, err.Error(), "trailing, leading")
}

func TestLoadConfig_InvalidIndent(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, `style:
  indent: -1
`)

	_, err := LoadConfig(cfgPath, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid indent")
}

// TestLoadConfig_EnvPrecedenceOverFile tests that env vars override the config file.
func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, `style:
  keyword_case: lower
`)

	require.NoError(t, os.Setenv("SPARKFMT_KEYWORD_CASE", "preserve"))
	defer func() { _ = os.Unsetenv("SPARKFMT_KEYWORD_CASE") }()

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "preserve", cfg.Style.KeywordCase, "env var should override config file")
}

// TestLoadConfig_FlagPrecedence tests that flags override env vars and config file.
func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, `style:
  keyword_case: lower
`)

	require.NoError(t, os.Setenv("SPARKFMT_KEYWORD_CASE", "preserve"))
	defer func() { _ = os.Unsetenv("SPARKFMT_KEYWORD_CASE") }()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("keyword-case", "", "keyword case")
	require.NoError(t, flags.Set("keyword-case", "upper"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "upper", cfg.Style.KeywordCase, "flag value should override config file and env var")
}

// TestLoadConfig_FlagNotSetUsesEnv tests that unset flags fall back to env vars.
func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, `style:
  keyword_case: lower
`)

	require.NoError(t, os.Setenv("SPARKFMT_KEYWORD_CASE", "preserve"))
	defer func() { _ = os.Unsetenv("SPARKFMT_KEYWORD_CASE") }()

	// Create flag set but don't set the flag (Changed will be false)
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("keyword-case", "", "keyword case")

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "preserve", cfg.Style.KeywordCase, "env var should be used when flag is not set")
}

func TestLoadConfig_IndentFlag(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, "")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("indent", 2, "indent width")
	require.NoError(t, flags.Set("indent", "4"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Style.Indent)
}

func TestFormatOptions(t *testing.T) {
	cfg := &Config{
		Style: StyleConfig{
			Indent:        4,
			KeywordCase:   "lower",
			CommaPosition: "leading",
		},
	}

	opts := cfg.FormatOptions()
	assert.Equal(t, 4, opts.IndentSize)
	assert.Equal(t, format.KeywordCaseLower, opts.KeywordCase)
	assert.Equal(t, format.CommaLeading, opts.CommaPosition)
}

func TestGetConfigFileUsed(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, "")

	_, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, cfgPath, GetConfigFileUsed())
}

func TestGetCurrentConfig(t *testing.T) {
	ResetConfig()
	assert.Nil(t, GetCurrentConfig())

	cfgPath := writeConfigFile(t, "")
	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg, GetCurrentConfig())
}

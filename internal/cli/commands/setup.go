package commands

import (
	"log/slog"
	"os"

	"github.com/sparkfmt/sparkfmt/internal/cli/config"
	"github.com/sparkfmt/sparkfmt/internal/cli/output"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the command's environment.
func NewCommandContext(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}
}

// Helper functions shared across commands

// getConfig returns the current configuration.
// It uses config.GetCurrentConfig() if available, otherwise falls back to
// environment variables. The fallback matters for commands invoked without
// the root command's config loading, mostly in tests.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	indent := config.DefaultIndent
	keywordCase := getEnvOrDefault("SPARKFMT_KEYWORD_CASE", config.DefaultKeywordCase)
	commaPosition := getEnvOrDefault("SPARKFMT_COMMA_POSITION", config.DefaultCommaPosition)
	outputFormat := getEnvOrDefault("SPARKFMT_OUTPUT", config.DefaultOutput)
	verbose := os.Getenv("SPARKFMT_VERBOSE") == "true"

	return &config.Config{
		Style: config.StyleConfig{
			Indent:        indent,
			KeywordCase:   keywordCase,
			CommaPosition: commaPosition,
		},
		Serve:        config.ServeConfig{Port: config.DefaultServePort},
		Extensions:   config.DefaultExtensions,
		Verbose:      verbose,
		OutputFormat: outputFormat,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

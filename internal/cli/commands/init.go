package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sparkfmt/sparkfmt/internal/cli/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// configHeader introduces the generated config file.
const configHeader = `# sparkfmt configuration.
# Settings here are overridden by SPARKFMT_* environment variables and
# command-line flags.
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default sparkfmt.yaml",
		Long: `Write a sparkfmt.yaml with the default formatting style into the given
directory (or the current directory). The file documents every setting the
formatter reads; edit it to change the project's canonical style.`,
		Example: `  # Initialize in the current directory
  sparkfmt init

  # Initialize in a new directory
  sparkfmt init my-project

  # Overwrite an existing config
  sparkfmt init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			cmdCtx := NewCommandContext(cmd)
			return runInit(cmdCtx, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(cmdCtx *CommandContext, dir string, force bool) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, "sparkfmt.yaml")
	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", cfgPath)
	}

	defaults := struct {
		Style      config.StyleConfig `yaml:"style"`
		Extensions []string           `yaml:"extensions"`
		Output     string             `yaml:"output"`
	}{
		Style: config.StyleConfig{
			Indent:        config.DefaultIndent,
			KeywordCase:   config.DefaultKeywordCase,
			CommaPosition: config.DefaultCommaPosition,
		},
		Extensions: config.DefaultExtensions,
		Output:     config.DefaultOutput,
	}

	body, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("failed to render config: %w", err)
	}

	if err := os.WriteFile(cfgPath, append([]byte(configHeader), body...), 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfgPath, err)
	}

	cmdCtx.Renderer.Success(fmt.Sprintf("Wrote %s", cfgPath))
	return nil
}

package commands

import (
	"fmt"

	"github.com/sparkfmt/sparkfmt/internal/cli/config"
	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display the sparkfmt version and the default formatting style.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "sparkfmt v%s\n", version)
			_, _ = fmt.Fprintf(out, "defaults: indent=%d keyword-case=%s comma-position=%s\n",
				config.DefaultIndent, config.DefaultKeywordCase, config.DefaultCommaPosition)
		},
	}
}

package commands

import (
	"fmt"
	"os"
	"runtime"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sparkfmt/sparkfmt/internal/cli/output"
	"github.com/sparkfmt/sparkfmt/pkg/format"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Check that SQL files are formatted",
		Long: `Verify SQL files are in canonical form without modifying them.

Exits with a non-zero status when any file differs from its formatted
form, making it suitable for CI pipelines. With no arguments the current
directory is checked.`,
		Example: `  # Check the current directory
  sparkfmt check

  # Check specific paths
  sparkfmt check queries/ reports/daily.sql

  # Machine-readable result
  sparkfmt check -o json queries/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args)
		},
	}
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	formatOpts := cmdCtx.Cfg.FormatOptions()

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	files, err := collectFiles(paths, cmdCtx.Cfg.Extensions)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		cmdCtx.Renderer.Warning("no SQL files found")
		return nil
	}

	results := make([]output.CheckFile, len(files))

	eg := &errgroup.Group{}
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		eg.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}
			results[i] = output.CheckFile{
				Path:      path,
				Formatted: format.IsFormatted(string(src), formatOpts),
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	unformatted := 0
	for _, res := range results {
		if !res.Formatted {
			unformatted++
		}
	}

	r := cmdCtx.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		if err := r.JSON(output.CheckOutput{
			Files:   results,
			Summary: output.CheckSummary{Total: len(results), Unformatted: unformatted},
		}); err != nil {
			return err
		}
		if unformatted > 0 {
			return fmt.Errorf("%d files are not formatted", unformatted)
		}
		return nil
	}

	if unformatted == 0 {
		r.Success(fmt.Sprintf("All %d files formatted", len(results)))
		return nil
	}

	renderCheckTable(r, results)
	r.Println("")
	r.Printf("Summary: %d of %d files need formatting\n", unformatted, len(results))

	return fmt.Errorf("%d files are not formatted", unformatted)
}

// renderCheckTable lists the files that need formatting.
func renderCheckTable(r *output.Renderer, results []output.CheckFile) {
	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Status"})

	for _, res := range results {
		if res.Formatted {
			continue
		}
		t.AppendRow(table.Row{
			r.Styles().FilePath.Render(res.Path),
			r.Styles().Warning.Render("needs formatting"),
		})
	}

	if r.EffectiveMode() == output.ModeMarkdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
}

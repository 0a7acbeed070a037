package commands

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/sparkfmt/sparkfmt/internal/cli/output"
	"github.com/sparkfmt/sparkfmt/pkg/format"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// FmtOptions holds options for the fmt command.
type FmtOptions struct {
	Write bool // Rewrite files in place
	List  bool // Only list files whose formatting differs
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand() *cobra.Command {
	opts := &FmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt [path...]",
		Short: "Format SQL files",
		Long: `Re-format Spark SQL into a canonical layout.

Formatting normalizes clause line breaks, indentation, keyword casing,
and comma placement. String literals, comments, and quoted identifiers
are preserved byte for byte, and any input produces output: text the
formatter does not understand passes through unchanged.

With no arguments (or "-"), input is read from stdin and the result
written to stdout.`,
		Example: `  # Format a file to stdout
  sparkfmt fmt query.sql

  # Rewrite files in place
  sparkfmt fmt -w queries/

  # List files that would change
  sparkfmt fmt -l queries/

  # Format from stdin
  cat query.sql | sparkfmt fmt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Write, "write", "w", false, "Write result to source files instead of stdout")
	cmd.Flags().BoolVarP(&opts.List, "list", "l", false, "List files whose formatting differs")

	return cmd
}

func runFmt(cmd *cobra.Command, args []string, opts *FmtOptions) error {
	cmdCtx := NewCommandContext(cmd)
	formatOpts := cmdCtx.Cfg.FormatOptions()

	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		if opts.Write {
			return fmt.Errorf("cannot use --write with standard input")
		}
		if opts.List {
			return fmt.Errorf("cannot use --list with standard input")
		}
		return formatStdin(cmd, cmdCtx, formatOpts)
	}

	files, err := collectFiles(args, cmdCtx.Cfg.Extensions)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		cmdCtx.Renderer.Warning("no SQL files found")
		return nil
	}

	if opts.Write || opts.List {
		return formatFiles(cmdCtx, files, formatOpts, opts)
	}

	// Print formatted output sequentially so files are not interleaved.
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if _, err := io.WriteString(cmd.OutOrStdout(), format.Format(string(src), formatOpts)); err != nil {
			return err
		}
	}
	return nil
}

func formatStdin(cmd *cobra.Command, cmdCtx *CommandContext, formatOpts format.Options) error {
	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	formatted := format.Format(string(src), formatOpts)
	if cmdCtx.Renderer.EffectiveMode() == output.ModeJSON {
		return cmdCtx.Renderer.JSON(output.FormatResult{
			Formatted: formatted,
			Changed:   formatted != string(src),
		})
	}
	_, err = io.WriteString(cmd.OutOrStdout(), formatted)
	return err
}

// formatFiles processes files concurrently for the write and list modes.
func formatFiles(cmdCtx *CommandContext, files []string, formatOpts format.Options, opts *FmtOptions) error {
	r := cmdCtx.Renderer
	logger := cmdCtx.Logger

	results := make([]output.FmtFile, len(files))

	eg := &errgroup.Group{}
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		eg.Go(func() error {
			src, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", path, err)
			}

			formatted := format.Format(string(src), formatOpts)
			changed := formatted != string(src)
			results[i] = output.FmtFile{Path: path, Changed: changed}

			if opts.Write && changed {
				info, err := os.Stat(path)
				if err != nil {
					return fmt.Errorf("failed to stat %s: %w", path, err)
				}
				if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				logger.Debug("rewrote file", "path", path)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	changed := 0
	for _, res := range results {
		if res.Changed {
			changed++
		}
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(output.FmtOutput{
			Files:   results,
			Summary: output.FmtSummary{Total: len(results), Changed: changed},
		})
	}

	if opts.List {
		for _, res := range results {
			if res.Changed {
				r.Println(res.Path)
			}
		}
		return nil
	}

	for _, res := range results {
		if res.Changed {
			r.StatusLine(res.Path, "success", "")
		}
	}
	if changed > 0 {
		r.Println("")
	}
	r.Success(fmt.Sprintf("Formatted %d files (%d changed)", len(results), changed))
	return nil
}

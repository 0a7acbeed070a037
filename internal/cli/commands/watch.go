package commands

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sparkfmt/sparkfmt/internal/cli/output"
	"github.com/sparkfmt/sparkfmt/pkg/format"
	"github.com/spf13/cobra"
)

// debounceDelay is how long to wait after the last change event before
// formatting, so editors that write in bursts trigger a single pass.
const debounceDelay = 100 * time.Millisecond

// NewWatchCommand creates the watch command.
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [path...]",
		Short: "Watch SQL files and format them on save",
		Long: `Watch directories for changes and rewrite modified SQL files in
canonical form as they are saved. With no arguments the current
directory is watched.`,
		Example: `  # Watch the current directory
  sparkfmt watch

  # Watch specific directories
  sparkfmt watch queries/ reports/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args)
		},
	}
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer
	logger := cmdCtx.Logger
	formatOpts := cmdCtx.Cfg.FormatOptions()

	paths := args
	if len(paths) == 0 {
		paths = []string{"."}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("cannot watch %s: %w", path, err)
		}
		if info.IsDir() {
			err = watchDirRecursive(watcher, path)
		} else {
			err = watcher.Add(path)
		}
		if err != nil {
			return fmt.Errorf("cannot watch %s: %w", path, err)
		}
	}

	extSet := make(map[string]bool, len(cmdCtx.Cfg.Extensions))
	for _, ext := range cmdCtx.Cfg.Extensions {
		extSet[strings.ToLower(ext)] = true
	}

	r.Println("Watching for changes. Press Ctrl+C to stop.")

	ctx := cmd.Context()

	// Per-file debounce timers
	timers := make(map[string]*time.Timer)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			// New directories join the watch.
			if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
				if err := watchDirRecursive(watcher, event.Name); err != nil {
					logger.Error("failed to watch new directory", "path", event.Name, "error", err)
				}
				continue
			}

			if !extSet[strings.ToLower(filepath.Ext(event.Name))] {
				continue
			}

			path := event.Name
			if t, ok := timers[path]; ok {
				t.Stop()
			}
			timers[path] = time.AfterFunc(debounceDelay, func() {
				formatOnChange(r, logger, path, formatOpts)
			})

		case err := <-watcher.Errors:
			logger.Error("watcher error", "error", err)
		}
	}
}

// formatOnChange rewrites a single file when its formatting differs.
// The rewrite triggers another watch event; the second pass sees an
// already-formatted file and skips the write, so the loop settles.
func formatOnChange(r *output.Renderer, logger *slog.Logger, path string, formatOpts format.Options) {
	src, err := os.ReadFile(path)
	if err != nil {
		logger.Error("failed to read file", "path", path, "error", err)
		return
	}

	formatted := format.Format(string(src), formatOpts)
	if formatted == string(src) {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		logger.Error("failed to stat file", "path", path, "error", err)
		return
	}
	if err := os.WriteFile(path, []byte(formatted), info.Mode().Perm()); err != nil {
		logger.Error("failed to write file", "path", path, "error", err)
		return
	}

	r.StatusLine(path, "success", "formatted")
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
// Hidden directories are skipped.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

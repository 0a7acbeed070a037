package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/sparkfmt/sparkfmt/internal/cli/output"
	"github.com/sparkfmt/sparkfmt/internal/testutil"
	"github.com/sparkfmt/sparkfmt/pkg/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchDirRecursive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub", "deep"), 0750))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0750))

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	require.NoError(t, watchDirRecursive(watcher, dir))

	watched := watcher.WatchList()
	assert.Contains(t, watched, dir)
	assert.Contains(t, watched, filepath.Join(dir, "sub"))
	assert.Contains(t, watched, filepath.Join(dir, "sub", "deep"))
	assert.NotContains(t, watched, filepath.Join(dir, ".git"))
}

func TestFormatOnChange(t *testing.T) {
	dir := t.TempDir()
	path := writeSQLFile(t, dir, "q.sql", "select a from t")

	out := &bytes.Buffer{}
	r := output.NewRendererWithTTY(out, &bytes.Buffer{}, false, output.ModeText)
	logger := testutil.NewTestLogger(t)

	formatOnChange(r, logger, path, format.DefaultOptions)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "SELECT a\nFROM t\n", string(got))
	assert.Contains(t, out.String(), "q.sql")

	// A second pass sees canonical content and leaves the file alone.
	out.Reset()
	formatOnChange(r, logger, path, format.DefaultOptions)
	assert.Empty(t, out.String())
}

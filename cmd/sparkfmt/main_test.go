package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sparkfmt/sparkfmt/internal/cli"
	"github.com/sparkfmt/sparkfmt/internal/cli/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(out, "sparkfmt") {
		t.Errorf("version output should contain 'sparkfmt', got: %s", out)
	}
}

func TestHelpCommand(t *testing.T) {
	out, err := execute(t, "--help")
	if err != nil {
		t.Errorf("help command error = %v", err)
	}
	for _, expected := range []string{"fmt", "check", "watch", "serve", "init", "version"} {
		if !strings.Contains(out, expected) {
			t.Errorf("help output should contain %q, got: %s", expected, out)
		}
	}
}

func TestFmtStdin(t *testing.T) {
	config.ResetConfig()
	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetIn(strings.NewReader("select a from t"))
	cmd.SetArgs([]string{"fmt"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("fmt command error = %v", err)
	}
	want := "SELECT a\nFROM t\n"
	if buf.String() != want {
		t.Errorf("fmt output = %q, want %q", buf.String(), want)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := execute(t, "frobnicate")
	if err == nil {
		t.Error("expected error for unknown command")
	}
}

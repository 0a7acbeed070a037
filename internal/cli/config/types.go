// Package config provides configuration management for the sparkfmt CLI.
//
// Configuration is loaded with koanf from four sources, lowest to highest
// precedence: built-in defaults, a sparkfmt.yaml project file, SPARKFMT_*
// environment variables, and command-line flags.
package config

import (
	"fmt"

	"github.com/sparkfmt/sparkfmt/pkg/format"
)

// Config holds all CLI configuration options.
type Config struct {
	Style        StyleConfig `koanf:"style"`
	Serve        ServeConfig `koanf:"serve"`
	Extensions   []string    `koanf:"extensions"`
	Verbose      bool        `koanf:"verbose"`
	OutputFormat string      `koanf:"output"`

	// ProjectRoot is the directory the config file was found in, or the
	// working directory when no config file exists. Set by the loader.
	ProjectRoot string `koanf:"-"`
}

// StyleConfig holds the formatting style settings. The yaml tags keep the
// file written by init aligned with the keys the loader reads.
type StyleConfig struct {
	Indent        int    `koanf:"indent" yaml:"indent"`
	KeywordCase   string `koanf:"keyword_case" yaml:"keyword_case"`
	CommaPosition string `koanf:"comma_position" yaml:"comma_position"`
}

// ServeConfig holds the HTTP API settings.
type ServeConfig struct {
	Port int `koanf:"port"`
}

// Default configuration values.
const (
	DefaultIndent        = 2
	DefaultKeywordCase   = "upper"
	DefaultCommaPosition = "trailing"
	DefaultOutput        = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultServePort     = 8815
)

// DefaultExtensions are the file extensions the formatter processes when
// walking directories.
var DefaultExtensions = []string{".sql"}

// Validate checks that the style settings name known values.
func (c *Config) Validate() error {
	if c.Style.Indent <= 0 {
		return fmt.Errorf("invalid indent: %d, must be a positive number of spaces", c.Style.Indent)
	}
	if _, err := format.ParseKeywordCase(c.Style.KeywordCase); err != nil {
		return err
	}
	if _, err := format.ParseCommaPosition(c.Style.CommaPosition); err != nil {
		return err
	}
	return nil
}

// FormatOptions converts the style settings into formatter options.
// Unknown values fall back to the formatter defaults; Validate reports
// them as errors before this point.
func (c *Config) FormatOptions() format.Options {
	return format.Options{
		IndentSize:    c.Style.Indent,
		KeywordCase:   format.KeywordCase(c.Style.KeywordCase),
		CommaPosition: format.CommaPosition(c.Style.CommaPosition),
	}
}

// Package config loads the fileio command line configuration file.
//
// The file is YAML:
//
//	output_dir: ./out
//	csv:
//	  comma: ";"
//	xml:
//	  indent: 2
//	pdf:
//	  compress: false
//	log:
//	  level: debug
//	  format: json
//
// Every key is optional; missing keys keep their defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/fileio/internal/logging"
	"github.com/tsawler/fileio/xmldoc"
)

var (
	ErrFileNotFound = errors.New("configuration file not found")
	ErrInvalidYAML  = errors.New("invalid YAML syntax")
	ErrInvalidValue = errors.New("invalid configuration value")
)

// Config is the command line configuration.
type Config struct {
	OutputDir string    `yaml:"output_dir"`
	CSV       CSVConfig `yaml:"csv"`
	XML       XMLConfig `yaml:"xml"`
	PDF       PDFConfig `yaml:"pdf"`
	Log       LogConfig `yaml:"log"`
}

type CSVConfig struct {
	Comma string `yaml:"comma"`
}

type XMLConfig struct {
	Indent int `yaml:"indent"`
}

type PDFConfig struct {
	Compress bool `yaml:"compress"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		CSV: CSVConfig{Comma: ","},
		XML: XMLConfig{Indent: xmldoc.DefaultIndent},
		PDF: PDFConfig{Compress: true},
		Log: LogConfig{Level: "warn", Format: string(logging.FormatText)},
	}
}

// Load reads the file at path over the defaults and validates the result.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if _, err := c.Comma(); err != nil {
		return err
	}
	if _, err := c.LogLevel(); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidValue, err)
	}
	if _, err := c.LogFormat(); err != nil {
		return fmt.Errorf("%w: log.format: %v", ErrInvalidValue, err)
	}
	return nil
}

// Comma returns the CSV delimiter. It must be a single character other
// than a quote or line break.
func (c Config) Comma() (rune, error) {
	r, size := utf8.DecodeRuneInString(c.CSV.Comma)
	if size == 0 || size != len(c.CSV.Comma) || r == utf8.RuneError {
		return 0, fmt.Errorf("%w: csv.comma must be one character, got %q", ErrInvalidValue, c.CSV.Comma)
	}
	switch r {
	case '"', '\r', '\n':
		return 0, fmt.Errorf("%w: csv.comma cannot be %q", ErrInvalidValue, r)
	}
	return r, nil
}

// LogLevel parses Log.Level.
func (c Config) LogLevel() (slog.Level, error) {
	return logging.ParseLevel(c.Log.Level)
}

// LogFormat parses Log.Format.
func (c Config) LogFormat() (logging.Format, error) {
	return logging.ParseFormat(c.Log.Format)
}

// Logger builds the logger described by Log, writing to w.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := c.LogLevel()
	if err != nil {
		return nil, err
	}
	format, err := c.LogFormat()
	if err != nil {
		return nil, err
	}
	return logging.New(logging.Config{Level: level, Format: format, Output: w}), nil
}

// Package config loads interpreter settings from TOML or YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	forth "github.com/jcorbin/goforth"
)

// Config holds every tunable of a goforth session.
type Config struct {
	HeapSize    int  `toml:"heap_size" yaml:"heap_size"`
	Precision   int  `toml:"precision" yaml:"precision"`
	Base        int  `toml:"base" yaml:"base"`
	ForwardRefs bool `toml:"forward_refs" yaml:"forward_refs"`

	Trace   bool     `toml:"trace" yaml:"trace"`
	Timeout Duration `toml:"timeout" yaml:"timeout"`

	// Extensions are Forth source files loaded at startup, after the core
	// word set; relative paths resolve against the config file.
	Extensions []string `toml:"extensions" yaml:"extensions"`

	Prompt             string `toml:"prompt" yaml:"prompt"`
	ContinuationPrompt string `toml:"continuation_prompt" yaml:"continuation_prompt"`
}

// Duration is a time.Duration written as a string like "1.5s".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the settings used when no file says otherwise.
func Default() Config {
	return Config{
		HeapSize:           1024,
		Precision:          5,
		Base:               10,
		ForwardRefs:        true,
		Prompt:             "Forth> ",
		ContinuationPrompt: "... ",
	}
}

// Format names a config file syntax.
type Format int

// Supported formats.
const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// DetectFormat picks a format from a file extension.
func DetectFormat(path string) (Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("unsupported config file extension %q", ext)
	}
}

// Load reads and validates a config file over the defaults.
func Load(path string) (Config, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Config{}, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Parse(content, format)
	if err != nil {
		return Config{}, fmt.Errorf("%v: %w", path, err)
	}
	dir := filepath.Dir(path)
	for i, ext := range cfg.Extensions {
		if !filepath.IsAbs(ext) {
			cfg.Extensions[i] = filepath.Join(dir, ext)
		}
	}
	return cfg, nil
}

// Parse decodes and validates config content over the defaults.
func Parse(content []byte, format Format) (Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(content, &cfg); err != nil {
			return Config{}, fmt.Errorf("toml parse error: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return Config{}, fmt.Errorf("yaml parse error: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported format %v", format)
	}
	return cfg, cfg.Validate()
}

// Validate checks that every setting is in range.
func (cfg Config) Validate() error {
	var errs []error
	if cfg.HeapSize <= 2 {
		errs = append(errs, fmt.Errorf("heap_size %v must exceed the 2 reserved cells", cfg.HeapSize))
	}
	if cfg.Base < 2 || cfg.Base > 36 {
		errs = append(errs, fmt.Errorf("base %v must be within [2, 36]", cfg.Base))
	}
	if cfg.Precision < 0 {
		errs = append(errs, fmt.Errorf("precision %v must not be negative", cfg.Precision))
	}
	if cfg.Timeout.Duration < 0 {
		errs = append(errs, fmt.Errorf("timeout %v must not be negative", cfg.Timeout))
	}
	return errors.Join(errs...)
}

// Options maps the config onto VM options, reading any extension files.
// Tracing is left to the caller, who owns the log stream.
func (cfg Config) Options() ([]forth.Option, error) {
	opts := []forth.Option{
		forth.WithHeapSize(cfg.HeapSize),
		forth.WithPrecision(cfg.Precision),
		forth.WithBase(cfg.Base),
		forth.WithForwardRefs(cfg.ForwardRefs),
		forth.WithPrompt(cfg.Prompt, cfg.ContinuationPrompt),
	}
	for _, path := range cfg.Extensions {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, forth.WithExtensions(forth.Extension{
			Name:   path,
			Source: string(src),
		}))
	}
	return opts, nil
}

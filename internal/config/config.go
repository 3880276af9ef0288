// Package config loads project settings from config.toml or config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/alnah/go-mdpages/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidValue    = errors.New("invalid config value")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Defaults, relative to the project base path.
const (
	DefaultInput    = "pages"
	DefaultTemplate = "templates/page.html"
	DefaultTarget   = "html"
	DefaultLogFile  = "mdpages.log"
)

// MaxWorkers bounds the workers setting.
const MaxWorkers = 64

// MaxPathLength bounds path settings.
const MaxPathLength = 4096

// FileNames lists the project config files looked up by Find, in order.
var FileNames = []string{"config.toml", "config.yaml", "config.yml"}

// Config holds the project settings. Paths are relative to the base path.
type Config struct {
	Input    string `toml:"input" yaml:"input"`       // source directory (default "pages")
	Output   string `toml:"output" yaml:"output"`     // target directory (default: working directory)
	Template string `toml:"template" yaml:"template"` // page template (default "templates/page.html")
	Target   string `toml:"target" yaml:"target"`     // "html" or "latex"
	Draft    bool   `toml:"draft" yaml:"draft"`       // render draft pages in full
	PDF      bool   `toml:"pdf" yaml:"pdf"`           // also export HTML pages to PDF
	Workers  int    `toml:"workers" yaml:"workers"`   // 0 = auto
	Log      string `toml:"log" yaml:"log"`           // report file name when logging to a file

	// Source is the file the config was loaded from, empty for defaults.
	Source string `toml:"-" yaml:"-"`
}

// DefaultConfig returns the settings used without a config file.
func DefaultConfig() *Config {
	return &Config{
		Input:    DefaultInput,
		Template: DefaultTemplate,
		Target:   DefaultTarget,
		Log:      DefaultLogFile,
	}
}

// Validate checks setting values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Target) {
	case "", "html", "latex", "tex":
	default:
		return fmt.Errorf("%w: target %q (must be html or latex)", ErrInvalidValue, c.Target)
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers %d (must be between 0 and %d)", ErrInvalidValue, c.Workers, MaxWorkers)
	}

	for name, value := range map[string]string{
		"input":    c.Input,
		"output":   c.Output,
		"template": c.Template,
		"log":      c.Log,
	} {
		if err := validateFieldLength(name, value, MaxPathLength); err != nil {
			return err
		}
	}

	if strings.ContainsAny(c.Log, `/\`) {
		return fmt.Errorf("%w: log %q must be a file name", ErrInvalidValue, c.Log)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads settings from a file. The decoder is chosen by
// extension: TOML for .toml, YAML for .yaml and .yml. Unset settings keep
// their defaults. Returns error if the file is not found (no silent
// fallback).
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyConfigName
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	cfg.Source = path
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("%w: unknown key %q", ErrConfigParse, undecoded[0].String())
		}
	case ".yaml", ".yml":
		if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrConfigParse, ext)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Find looks for a project config file in base, trying FileNames in order.
// Returns ErrConfigNotFound listing the tried paths when there is none.
func Find(base string) (string, error) {
	tried := make([]string, 0, len(FileNames))
	for _, name := range FileNames {
		path := filepath.Join(base, name)
		if fileExists(path) {
			return path, nil
		}
		tried = append(tried, path)
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// Load returns the project settings of base: the config file found there,
// or the defaults when there is none.
func Load(base string) (*Config, error) {
	path, err := Find(base)
	if errors.Is(err, ErrConfigNotFound) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	return LoadConfig(path)
}

// Resolve joins a config path to base. Absolute paths are kept.
func Resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

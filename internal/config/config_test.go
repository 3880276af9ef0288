package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Input != DefaultInput {
		t.Errorf("Input = %q, want %q", cfg.Input, DefaultInput)
	}
	if cfg.Output != "" {
		t.Errorf("Output = %q, want empty", cfg.Output)
	}
	if cfg.Template != DefaultTemplate {
		t.Errorf("Template = %q, want %q", cfg.Template, DefaultTemplate)
	}
	if cfg.Target != DefaultTarget {
		t.Errorf("Target = %q, want %q", cfg.Target, DefaultTarget)
	}
	if cfg.Draft || cfg.PDF {
		t.Error("Draft and PDF must be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit returns error", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test.field", tt.value, tt.maxLength)
			if tt.wantErr {
				if !errors.Is(err, ErrFieldTooLong) {
					t.Errorf("error = %v, want ErrFieldTooLong", err)
				}
				if err != nil && !strings.Contains(err.Error(), "test.field") {
					t.Errorf("error %q should name the field", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"defaults", func(*Config) {}, nil},
		{"latex target", func(c *Config) { c.Target = "latex" }, nil},
		{"tex alias", func(c *Config) { c.Target = "TEX" }, nil},
		{"unknown target", func(c *Config) { c.Target = "docx" }, ErrInvalidValue},
		{"negative workers", func(c *Config) { c.Workers = -1 }, ErrInvalidValue},
		{"too many workers", func(c *Config) { c.Workers = MaxWorkers + 1 }, ErrInvalidValue},
		{"log with directory", func(c *Config) { c.Log = "logs/build.log" }, ErrInvalidValue},
		{"input too long", func(c *Config) { c.Input = strings.Repeat("a", MaxPathLength+1) }, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("toml file loads config", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.toml", `input = "src"
output = "site"
template = "tpl/main.html"
workers = 2
pdf = true
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input != "src" || cfg.Output != "site" || cfg.Template != "tpl/main.html" {
			t.Errorf("paths = %q %q %q", cfg.Input, cfg.Output, cfg.Template)
		}
		if cfg.Workers != 2 || !cfg.PDF {
			t.Errorf("Workers = %d, PDF = %v", cfg.Workers, cfg.PDF)
		}
		if cfg.Target != DefaultTarget {
			t.Errorf("Target = %q, want default %q", cfg.Target, DefaultTarget)
		}
		if cfg.Source != path {
			t.Errorf("Source = %q, want %q", cfg.Source, path)
		}
	})

	t.Run("yaml file loads config", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.yaml", "input: docs\ntarget: latex\ndraft: true\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input != "docs" || cfg.Target != "latex" || !cfg.Draft {
			t.Errorf("cfg = %+v", cfg)
		}
		if cfg.Template != DefaultTemplate {
			t.Errorf("Template = %q, want default", cfg.Template)
		}
	})

	t.Run("empty file keeps defaults", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.yml", "\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input != DefaultInput {
			t.Errorf("Input = %q, want %q", cfg.Input, DefaultInput)
		}
	})

	t.Run("nonexistent file returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.toml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid TOML returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.toml", "input = [unclosed")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown TOML key returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.toml", "style = \"x\"\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown YAML key returns ErrConfigParse in strict mode", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.yaml", "style: x\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unsupported extension returns ErrConfigParse", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.json", "{}")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.toml", "workers = 1000\n")
		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})
}

func TestFind(t *testing.T) {
	t.Run("prefers toml over yaml", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "config.yaml", "input: a\n")
		want := writeConfig(t, dir, "config.toml", "input = \"b\"\n")

		got, err := Find(dir)
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if got != want {
			t.Errorf("Find() = %q, want %q", got, want)
		}
	})

	t.Run("falls back to yml", func(t *testing.T) {
		dir := t.TempDir()
		want := writeConfig(t, dir, "config.yml", "input: a\n")

		got, err := Find(dir)
		if err != nil {
			t.Fatalf("Find() error = %v", err)
		}
		if got != want {
			t.Errorf("Find() = %q, want %q", got, want)
		}
	})

	t.Run("none found lists tried paths", func(t *testing.T) {
		dir := t.TempDir()
		_, err := Find(dir)
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), filepath.Join(dir, "config.toml")) {
			t.Errorf("error %q should list tried paths", err)
		}
	})

	t.Run("directory named like a config is skipped", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.Mkdir(filepath.Join(dir, "config.toml"), 0o750); err != nil {
			t.Fatalf("setup: %v", err)
		}
		_, err := Find(dir)
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("defaults without config file", func(t *testing.T) {
		cfg, err := Load(t.TempDir())
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Source != "" || cfg.Input != DefaultInput {
			t.Errorf("cfg = %+v, want defaults", cfg)
		}
	})

	t.Run("loads the found file", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "config.toml", "input = \"chapters\"\n")

		cfg, err := Load(dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Input != "chapters" {
			t.Errorf("Input = %q, want chapters", cfg.Input)
		}
	})
}

func TestResolve(t *testing.T) {
	abs, err := filepath.Abs("x")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"relative joined", "pages", filepath.Join("base", "pages")},
		{"absolute kept", abs, abs},
		{"empty kept", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve("base", tt.path); got != tt.want {
				t.Errorf("Resolve() = %q, want %q", got, tt.want)
			}
		})
	}
}

package main

// Notes:
// - runMain: we test dispatch and exit codes on temporary projects. The
//   builder itself is covered by the root package tests.
// - Continuous mode blocks until canceled and is covered by internal/watch.
// - Chrome and pandoc are not required: --pdf and --pandoc are only tested
//   for their failure paths.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Temporary projects
// ---------------------------------------------------------------------------

const testTemplate = "<html><head></head><body>\n{content}</body></html>\n"

// newTestProject creates base/pages with the given documents and
// base/templates/page.html. Returns the base path.
func newTestProject(t *testing.T, docs map[string]string) string {
	t.Helper()
	base := t.TempDir()
	for _, dir := range []string{"pages", "templates"} {
		if err := os.MkdirAll(filepath.Join(base, dir), 0o750); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	writeTestFile(t, filepath.Join(base, "templates", "page.html"), testTemplate)
	for name, content := range docs {
		writeTestFile(t, filepath.Join(base, "pages", name), content)
	}
	// Age the inputs so fresh targets are strictly newer.
	old := time.Now().Add(-time.Hour)
	_ = filepath.Walk(base, func(path string, _ os.FileInfo, _ error) error {
		return os.Chtimes(path, old, old)
	})
	return base
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	return &Environment{
		Now:    time.Now,
		Stdout: &stdout,
		Stderr: &stderr,
	}, &stdout, &stderr
}

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch and exit codes
// ---------------------------------------------------------------------------

func TestRunMain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		args         func(base string) []string
		docs         map[string]string
		wantCode     int
		wantInStdout []string
		wantInStderr []string
	}{
		{
			name:         "version prints version",
			args:         func(string) []string { return []string{"mdpages", "version"} },
			wantCode:     ExitSuccess,
			wantInStdout: []string{"mdpages dev"},
		},
		{
			name:         "help prints usage",
			args:         func(string) []string { return []string{"mdpages", "help"} },
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Commands:", "build"},
		},
		{
			name:         "help build prints build flags",
			args:         func(string) []string { return []string{"mdpages", "help", "build"} },
			wantCode:     ExitSuccess,
			wantInStdout: []string{"--continuous", "--reformat"},
		},
		{
			name:         "help for unknown command exits with ExitUsage",
			args:         func(string) []string { return []string{"mdpages", "help", "nope"} },
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: nope"},
		},
		{
			name:         "unknown command exits with ExitUsage",
			args:         func(string) []string { return []string{"mdpages", "unknown"} },
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown command: unknown"},
		},
		{
			name:         "unknown flag exits with ExitUsage",
			args:         func(string) []string { return []string{"mdpages", "--nope"} },
			wantCode:     ExitUsage,
			wantInStderr: []string{"unknown flag"},
		},
		{
			name: "build without command name",
			args: func(base string) []string {
				return []string{"mdpages", "-p", base, "-o", filepath.Join(base, "out")}
			},
			docs:         map[string]string{"a.md": "# A\n"},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"Built 1 page(s)"},
		},
		{
			name: "page error exits with ExitGeneral",
			args: func(base string) []string {
				return []string{"mdpages", "build", "-p", base, "-o", filepath.Join(base, "out"), "--no-color"}
			},
			docs:         map[string]string{"fig.md": "---\ntype: figure\n---\n"},
			wantCode:     ExitGeneral,
			wantInStdout: []string{"fig.md", "error:"},
			wantInStderr: []string{"build failed", "hint:"},
		},
		{
			name: "missing input directory exits with ExitIO",
			args: func(base string) []string {
				return []string{"mdpages", "build", "-i", filepath.Join(base, "absent")}
			},
			wantCode:     ExitIO,
			wantInStderr: []string{"input directory", "hint:"},
		},
		{
			name: "missing explicit config exits with ExitUsage",
			args: func(base string) []string {
				return []string{"mdpages", "build", "-p", base, "--config", filepath.Join(base, "absent.toml")}
			},
			wantCode:     ExitUsage,
			wantInStderr: []string{"config file not found", "--config"},
		},
		{
			name: "unknown target exits with ExitUsage",
			args: func(base string) []string {
				return []string{"mdpages", "build", "-p", base, "--target", "docx"}
			},
			wantCode:     ExitUsage,
			wantInStderr: []string{"docx"},
		},
		{
			name: "pdf with latex target exits with ExitUsage",
			args: func(base string) []string {
				return []string{"mdpages", "build", "-p", base, "--target", "latex", "--pdf"}
			},
			wantCode:     ExitUsage,
			wantInStderr: []string{"html target", "hint:"},
		},
		{
			name: "quiet and verbose are exclusive",
			args: func(base string) []string {
				return []string{"mdpages", "build", "-q", "-v"}
			},
			wantCode:     ExitUsage,
			wantInStderr: []string{"mutually exclusive"},
		},
		{
			name: "positional argument rejected",
			args: func(base string) []string {
				return []string{"mdpages", "build", "page.md"}
			},
			wantCode:     ExitUsage,
			wantInStderr: []string{"unexpected argument"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			base := newTestProject(t, tt.docs)
			env, stdout, stderr := testEnv()

			code := runMain(tt.args(base), env)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d\nstdout: %s\nstderr: %s", code, tt.wantCode, stdout, stderr)
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got %q", want, stdout.String())
				}
			}
			for _, want := range tt.wantInStderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr should contain %q, got %q", want, stderr.String())
				}
			}
		})
	}
}

package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/alnah/go-mdpages/internal/fileutil"
)

// DefaultPandocBinary is looked up on PATH.
const DefaultPandocBinary = "pandoc"

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// Run executes the command and captures both output streams.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// Pandoc converts text by invoking the Pandoc CLI.
type Pandoc struct {
	Runner CommandRunner
	Binary string
}

// NewPandoc creates a Pandoc converter with a real command runner.
func NewPandoc() *Pandoc {
	return &Pandoc{Runner: &ExecRunner{}, Binary: DefaultPandocBinary}
}

// LookPandoc returns the resolved Pandoc binary path, or "" when absent.
func LookPandoc() string {
	path, err := exec.LookPath(DefaultPandocBinary)
	if err != nil {
		return ""
	}
	return path
}

// Convert implements Converter.
// Markdown input uses -f markdown-fancy_lists to keep letter markers
// (A), B), etc.) as text instead of numbered lists.
func (c *Pandoc) Convert(ctx context.Context, text string, from, to Format) (string, error) {
	if from == to {
		return text, nil
	}
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyContent
	}

	src, err := pandocReader(from)
	if err != nil {
		return "", err
	}
	dst, err := pandocWriter(to)
	if err != nil {
		return "", err
	}

	tmpPath, cleanup, err := fileutil.WriteTempFile(text, strings.TrimPrefix(from.Extension(), "."))
	if err != nil {
		return "", err
	}
	defer cleanup()

	stdout, stderr, err := c.Runner.Run(ctx, c.binary(), tmpPath, "-f", src, "-t", dst)
	if err != nil {
		return "", fmt.Errorf("converting %s to %s: %s: %w", from, to, strings.TrimSpace(stderr), err)
	}
	return strings.TrimRight(stdout, "\n"), nil
}

func (c *Pandoc) binary() string {
	if c.Binary == "" {
		return DefaultPandocBinary
	}
	return c.Binary
}

func pandocReader(f Format) (string, error) {
	switch f {
	case FormatMarkdown:
		return "markdown-fancy_lists", nil
	case FormatHTML:
		return "html", nil
	case FormatLaTeX:
		return "latex", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

func pandocWriter(f Format) (string, error) {
	switch f {
	case FormatHTML:
		return "html5", nil
	case FormatLaTeX:
		return "latex", nil
	case FormatMarkdown:
		return "markdown", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

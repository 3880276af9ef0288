// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-mdpages/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowserConnect returns hints for browser connection errors during PDF
// export. Detects CI/Docker environment and suggests relevant environment
// variables.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	hints = append(hints, "run 'mdpages info' to check the browser")

	return formatHints(hints)
}

// ForConfigNotFound returns hints for an explicit config file that does not
// exist.
func ForConfigNotFound() string {
	return format("use --config /path/to/config.toml, or omit it to use config.toml in the base path")
}

// ForInputDir returns hints for a missing or unreadable input directory.
func ForInputDir() string {
	return format("use --input, set input in config.toml, or create <base>/pages")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTarget returns hints for an unknown target format.
func ForTarget() string {
	return format("supported targets: html, latex; PDF export needs html")
}

// ForFailedBuild returns the hint printed after a build with errors.
func ForFailedBuild(verbose bool) string {
	if verbose {
		return format("fix the errors above; unchanged pages are skipped on the next run")
	}
	return format("fix the errors above; run with --verbose to also see info messages")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}

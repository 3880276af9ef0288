package main

import (
	"errors"
	"os"

	mdpages "github.com/alnah/go-mdpages"
	"github.com/alnah/go-mdpages/internal/config"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/watch"
)

// Exit codes for the mdpages CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Build finished without errors, or nothing to do
	ExitGeneral = 1 // A page reported an error, or an unexpected failure
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Input directory, template, or output not accessible
	ExitBrowser = 4 // Browser/Chrome errors
)

// CLI errors.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrLogFile        = errors.New("failed to open log file")
	ErrMetricsWrite   = errors.New("failed to write metrics")
	ErrPandocNotFound = errors.New("pandoc not found in PATH")
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
// Page diagnostics are not errors; a build with an ERROR entry exits with
// ExitGeneral through the report, even when the entry came from PDF export.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, mdpages.ErrBrowserConnect) ||
		errors.Is(err, mdpages.ErrPageCreate) ||
		errors.Is(err, mdpages.ErrPageLoad) ||
		errors.Is(err, mdpages.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, mdpages.ErrInputDir) ||
		errors.Is(err, mdpages.ErrOutputDir) ||
		errors.Is(err, mdpages.ErrTemplateRead) ||
		errors.Is(err, mdpages.ErrSourceRead) ||
		errors.Is(err, mdpages.ErrTargetWrite) ||
		errors.Is(err, watch.ErrNoInputDir) ||
		errors.Is(err, ErrLogFile) ||
		errors.Is(err, ErrMetricsWrite) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrPandocNotFound) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, mdpages.ErrInvalidTarget) ||
		errors.Is(err, pipeline.ErrUnknownFormat) {
		return ExitUsage
	}

	return ExitGeneral
}

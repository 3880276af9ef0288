package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	mdpages "github.com/alnah/go-mdpages"
	"github.com/alnah/go-mdpages/internal/config"
	"github.com/alnah/go-mdpages/internal/pipeline"
	"github.com/alnah/go-mdpages/internal/watch"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		// Success
		{"nil error", nil, ExitSuccess},

		// Browser errors (exit 4)
		{"ErrBrowserConnect", mdpages.ErrBrowserConnect, ExitBrowser},
		{"ErrPageLoad wrapped", fmt.Errorf("rendering: %w", mdpages.ErrPageLoad), ExitBrowser},
		{"ErrPDFGeneration", mdpages.ErrPDFGeneration, ExitBrowser},

		// I/O errors (exit 3)
		{"os.ErrNotExist", os.ErrNotExist, ExitIO},
		{"os.ErrPermission", os.ErrPermission, ExitIO},
		{"ErrInputDir wrapped", fmt.Errorf("%w: pages", mdpages.ErrInputDir), ExitIO},
		{"ErrOutputDir", mdpages.ErrOutputDir, ExitIO},
		{"ErrTemplateRead", mdpages.ErrTemplateRead, ExitIO},
		{"watch.ErrNoInputDir", watch.ErrNoInputDir, ExitIO},
		{"ErrLogFile", ErrLogFile, ExitIO},
		{"ErrMetricsWrite", ErrMetricsWrite, ExitIO},

		// Usage errors (exit 2)
		{"ErrUsage", ErrUsage, ExitUsage},
		{"ErrPandocNotFound", ErrPandocNotFound, ExitUsage},
		{"config.ErrConfigNotFound wrapped", fmt.Errorf("loading config: %w", config.ErrConfigNotFound), ExitUsage},
		{"config.ErrConfigParse", config.ErrConfigParse, ExitUsage},
		{"config.ErrInvalidValue", config.ErrInvalidValue, ExitUsage},
		{"config.ErrFieldTooLong", config.ErrFieldTooLong, ExitUsage},
		{"ErrInvalidTarget", mdpages.ErrInvalidTarget, ExitUsage},
		{"pipeline.ErrUnknownFormat", pipeline.ErrUnknownFormat, ExitUsage},

		// General errors (exit 1)
		{"unknown error", errors.New("something"), ExitGeneral},
		{"context canceled", context.Canceled, ExitGeneral},
		{"ErrRegistry", mdpages.ErrRegistry, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	t.Parallel()

	codes := map[string]int{
		"ExitSuccess": ExitSuccess,
		"ExitGeneral": ExitGeneral,
		"ExitUsage":   ExitUsage,
		"ExitIO":      ExitIO,
		"ExitBrowser": ExitBrowser,
	}

	seen := make(map[int]string)
	for name, code := range codes {
		if other, dup := seen[code]; dup {
			t.Errorf("%s and %s share code %d", name, other, code)
		}
		seen[code] = name
		// Codes >= 126 are reserved by shells
		if code < 0 || code >= 126 {
			t.Errorf("%s = %d, outside the portable range", name, code)
		}
	}
}

func TestHintFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint bool
	}{
		{"config not found", fmt.Errorf("loading config: %w", config.ErrConfigNotFound), true},
		{"input dir", mdpages.ErrInputDir, true},
		{"output dir", mdpages.ErrOutputDir, true},
		{"invalid target", mdpages.ErrInvalidTarget, true},
		{"unknown format", pipeline.ErrUnknownFormat, true},
		{"other", errors.New("x"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := hintFor(tt.err); (got != "") != tt.wantHint {
				t.Errorf("hintFor(%v) = %q, want hint: %v", tt.err, got, tt.wantHint)
			}
		})
	}
}

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for conversions.
var (
	ErrUnsupportedConversion = errors.New("unsupported conversion")
	ErrUnknownFormat         = errors.New("unknown format")
	ErrEmptyContent          = errors.New("content cannot be empty")
)

// Format names a text format.
type Format string

// Supported formats.
const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatLaTeX    Format = "latex"
)

// Extension returns the file extension used for targets of this format.
func (f Format) Extension() string {
	switch f {
	case FormatHTML:
		return ".html"
	case FormatLaTeX:
		return ".tex"
	case FormatMarkdown:
		return ".md"
	default:
		return ""
	}
}

// ParseFormat accepts "html", "latex" (or "tex") and "markdown" (or "md").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "html", "":
		return FormatHTML, nil
	case "latex", "tex":
		return FormatLaTeX, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Converter converts text between formats. Implementations must be safe for
// concurrent use and free of side effects visible to callers.
type Converter interface {
	Convert(ctx context.Context, text string, from, to Format) (string, error)
}

// Compile-time interface checks.
var (
	_ Converter = (*Goldmark)(nil)
	_ Converter = (*Pandoc)(nil)
)

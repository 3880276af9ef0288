// Package chunker segments the raw lines of one document into typed regions.
//
// A document mixes Markdown prose, YAML blocks fenced by "---", fenced code,
// and raw HTML. Split walks the lines once with a small state machine and
// returns the regions in source order. It never fails: structural problems
// such as an unterminated fence are reported as warnings and the region is
// closed at end of input.
package chunker

import (
	"crypto/sha3"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Kind is the syntactic type of a region.
type Kind int

// Region kinds.
const (
	Markdown Kind = iota
	YAML
	HTML
	Code
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case Markdown:
		return "markdown"
	case YAML:
		return "yaml"
	case HTML:
		return "html"
	case Code:
		return "code"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// hashBytes is the SHAKE-128 output length; 3 bytes give 6 hex characters.
const hashBytes = 3

// tagPattern matches a leading ":label:" class marker.
var tagPattern = regexp.MustCompile(`^:([A-Za-z0-9][A-Za-z0-9_-]*):(?:\s|$)`)

// Region is a contiguous, typed slice of source lines.
// Lines never start with a blank line. Regions are immutable once built;
// always handle them by pointer.
type Region struct {
	Lines     []string
	Kind      Kind
	StartLine int // 1-based line of Lines[0]
	Path      string
	Tag       string   // lower-cased ":label:" marker on the first line, or ""
	PostYAML  []string // prose following a closing YAML fence, YAML regions only

	hashOnce sync.Once
	hash     string
}

// NewRegion builds a region, dropping leading blank lines and shifting
// startLine to compensate. The tag is derived from the first remaining line.
func NewRegion(lines []string, kind Kind, startLine int, path string) *Region {
	start := 0
	for start < len(lines) && IsBlank(lines[start]) {
		start++
	}

	kept := make([]string, len(lines)-start)
	copy(kept, lines[start:])

	r := &Region{
		Lines:     kept,
		Kind:      kind,
		StartLine: startLine + start,
		Path:      path,
	}
	if len(kept) > 0 {
		r.Tag = parseTag(kept[0])
	}
	return r
}

// parseTag extracts the lower-cased label of a ":label:" marker.
func parseTag(line string) string {
	m := tagPattern.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// IsBlank reports whether a line contains only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsEmpty reports whether the region holds no lines.
func (r *Region) IsEmpty() bool {
	return len(r.Lines) == 0
}

// Content joins the lines with newlines.
func (r *Region) Content() string {
	return strings.Join(r.Lines, "\n")
}

// FirstLine returns the first line, or "empty" for an empty region.
func (r *Region) FirstLine() string {
	if len(r.Lines) == 0 {
		return "empty"
	}
	return r.Lines[0]
}

// HasPostYAML reports whether prose followed the closing YAML fence.
func (r *Region) HasPostYAML() bool {
	return len(r.PostYAML) > 0
}

// PostYAMLContent joins the post-YAML lines with newlines.
func (r *Region) PostYAMLContent() string {
	return strings.Join(r.PostYAML, "\n")
}

// Lang returns the lower-cased info string word of a code fence, or "".
func (r *Region) Lang() string {
	if r.Kind != Code || len(r.Lines) == 0 {
		return ""
	}
	info := strings.TrimLeft(strings.TrimSpace(r.Lines[0]), "`")
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(strings.Trim(fields[0], "{}."))
}

// Hash returns a short deterministic identifier derived from the lines.
// Computed once and memoized.
func (r *Region) Hash() string {
	r.hashOnce.Do(func() {
		r.hash = HashString(r.Content() + "\n")
	})
	return r.hash
}

// HashString returns the short content hash used for anchors and seeds.
func HashString(s string) string {
	return hex.EncodeToString(sha3.SumSHAKE128([]byte(s), hashBytes))
}

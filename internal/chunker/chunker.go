package chunker

import (
	"regexp"
	"strings"

	"github.com/alnah/go-mdpages/internal/report"
)

// htmlStart matches a line opening a raw HTML block.
var htmlStart = regexp.MustCompile(`^<(?:!--|/?[A-Za-z][A-Za-z0-9-]*(?:[\s/>]|$))`)

type state int

const (
	inMarkdown state = iota
	inYAML
	inPostYAML
	inCode
	inHTML
)

// splitter holds the state of one Split call.
type splitter struct {
	path string
	rep  *report.Report

	regions []*Region
	buf     []string
	start   int

	// YAML block waiting for post-YAML prose
	lastYAML  *Region
	post      []string
	postStart int

	fence  string
	opened int
}

// SplitText splits a whole document, normalizing CRLF line endings.
func SplitText(text, path string, rep *report.Report) []*Region {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return Split(strings.Split(text, "\n"), path, rep)
}

// Split segments lines into regions in source order.
//
// Markdown regions end at blank lines. A line of exactly "---" opens a YAML
// block closed by the next "---"; lines right after the closing fence up to
// the next blank line are attached to the YAML region as post-YAML prose.
// A backtick fence opens a code block, closed by a fence at least as long.
// A line starting with an HTML tag opens an HTML block ending at a blank line.
// Regions holding only blank lines are discarded. Unterminated YAML and code
// blocks are closed at end of input with a warning at their opening line.
func Split(lines []string, path string, rep *report.Report) []*Region {
	s := &splitter{path: path, rep: rep}
	st := inMarkdown

	for i, line := range lines {
		n := i + 1
		switch st {
		case inMarkdown:
			st = s.markdown(line, n)
		case inYAML:
			if isYAMLFence(line) {
				s.lastYAML = s.flush(YAML)
				s.post, s.postStart = nil, n+1
				st = inPostYAML
				continue
			}
			s.add(line, n)
		case inPostYAML:
			switch {
			case IsBlank(line):
				s.attachPost()
				st = inMarkdown
			case isYAMLFence(line), codeFence(line) != "":
				s.attachPost()
				st = s.markdown(line, n)
			default:
				s.post = append(s.post, line)
			}
		case inCode:
			s.add(line, n)
			if closesFence(line, s.fence) {
				s.flush(Code)
				st = inMarkdown
			}
		case inHTML:
			if IsBlank(line) {
				s.flush(HTML)
				st = inMarkdown
				continue
			}
			s.add(line, n)
		}
	}

	switch st {
	case inMarkdown:
		s.flush(Markdown)
	case inHTML:
		s.flush(HTML)
	case inPostYAML:
		s.attachPost()
	case inYAML:
		s.warn("unterminated YAML block, closed at end of file")
		s.flush(YAML)
	case inCode:
		s.warn("unterminated code fence, closed at end of file")
		s.flush(Code)
	}
	return s.regions
}

// markdown handles one line in the Markdown state and returns the next state.
func (s *splitter) markdown(line string, n int) state {
	switch {
	case isYAMLFence(line):
		s.flush(Markdown)
		s.opened = n
		return inYAML
	case codeFence(line) != "":
		s.flush(Markdown)
		s.fence = codeFence(line)
		s.opened = n
		s.add(line, n)
		return inCode
	case htmlStart.MatchString(line):
		s.flush(Markdown)
		s.add(line, n)
		return inHTML
	case IsBlank(line):
		s.flush(Markdown)
		return inMarkdown
	default:
		s.add(line, n)
		return inMarkdown
	}
}

func (s *splitter) add(line string, n int) {
	if len(s.buf) == 0 {
		s.start = n
	}
	s.buf = append(s.buf, line)
}

// flush closes the buffered region. Returns nil when the buffer held
// nothing but blank lines.
func (s *splitter) flush(kind Kind) *Region {
	defer func() { s.buf = nil }()

	blank := true
	for _, l := range s.buf {
		if !IsBlank(l) {
			blank = false
			break
		}
	}
	if blank {
		return nil
	}

	r := NewRegion(s.buf, kind, s.start, s.path)
	s.regions = append(s.regions, r)
	return r
}

// attachPost hands collected post-YAML prose to the preceding YAML region.
// With no YAML region to receive it, the prose becomes a Markdown region.
func (s *splitter) attachPost() {
	defer func() { s.post, s.lastYAML = nil, nil }()

	if len(s.post) == 0 {
		return
	}
	if s.lastYAML != nil {
		s.lastYAML.PostYAML = append([]string(nil), s.post...)
		return
	}
	s.regions = append(s.regions, NewRegion(s.post, Markdown, s.postStart, s.path))
}

func (s *splitter) warn(msg string) {
	if s.rep == nil {
		return
	}
	s.rep.Tell(msg, report.Warning, s.path, s.opened)
}

func isYAMLFence(line string) bool {
	return strings.TrimRight(line, " \t") == "---"
}

// codeFence returns the opening backtick run of a fence line, or "".
func codeFence(line string) string {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "```") {
		return ""
	}
	end := strings.IndexFunc(trimmed, func(r rune) bool { return r != '`' })
	if end < 0 {
		return trimmed
	}
	return trimmed[:end]
}

// closesFence reports whether line is a bare backtick run at least as long
// as the opening fence.
func closesFence(line, fence string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < len(fence) {
		return false
	}
	return strings.Trim(trimmed, "`") == ""
}

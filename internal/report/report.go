// Package report collects per-document diagnostics.
//
// A Report is an ordered list of entries, each carrying a message, a severity,
// and the source location it refers to. The overall severity of a report is
// the maximum severity of its entries, INFO when it has none.
package report

import (
	"fmt"
	"sort"
	"sync"
)

// Severity ranks diagnostics. Higher values are more severe.
type Severity int

// Severity levels.
const (
	Info    Severity = 1
	Warning Severity = 2
	Error   Severity = 3
)

// String returns the lower-case level name.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Entry is a single diagnostic. Line is 1-based; 0 means no line.
type Entry struct {
	Message  string
	Severity Severity
	Path     string
	Line     int
}

// Location formats the entry position as "path:line", "path", or "".
func (e Entry) Location() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d", e.Path, e.Line)
	default:
		return e.Path
	}
}

// Report accumulates diagnostics for one source document, or for build
// setup when Source is empty. Safe for concurrent use.
type Report struct {
	Source string

	mu      sync.Mutex
	entries []Entry
	max     Severity
}

// New creates an empty report for the given source path.
func New(source string) *Report {
	return &Report{Source: source, max: Info}
}

// Tell appends an entry.
func (r *Report) Tell(message string, severity Severity, path string, line int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if severity > r.max {
		r.max = severity
	}
	r.entries = append(r.entries, Entry{
		Message:  message,
		Severity: severity,
		Path:     path,
		Line:     line,
	})
}

// Info appends an INFO entry attributed to the report source.
func (r *Report) Info(message string) {
	r.Tell(message, Info, r.Source, 0)
}

// Warning appends a WARNING entry attributed to the report source.
func (r *Report) Warning(message string) {
	r.Tell(message, Warning, r.Source, 0)
}

// Error appends an ERROR entry attributed to the report source.
func (r *Report) Error(message string) {
	r.Tell(message, Error, r.Source, 0)
}

// Entries returns a copy of the entries in insertion order.
func (r *Report) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of entries.
func (r *Report) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// MaxSeverity returns the highest severity seen, Info for an empty report.
func (r *Report) MaxSeverity() Severity {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.max == 0 {
		return Info
	}
	return r.max
}

// HasErrors reports whether any ERROR entry was recorded.
func (r *Report) HasErrors() bool {
	return r.MaxSeverity() >= Error
}

// Count returns the number of entries with exactly the given severity.
func (r *Report) Count(severity Severity) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.entries {
		if e.Severity == severity {
			n++
		}
	}
	return n
}

// Sort orders reports by overall severity, most severe first.
// Reports of equal severity keep their relative order.
func Sort(reports []*Report) {
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].MaxSeverity() > reports[j].MaxSeverity()
	})
}

// MaxOf returns the highest severity across reports (Info when empty).
// Nil reports are ignored.
func MaxOf(reports ...*Report) Severity {
	level := Info
	for _, r := range reports {
		if r == nil {
			continue
		}
		if s := r.MaxSeverity(); s > level {
			level = s
		}
	}
	return level
}

package chunk

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/alnah/go-mdpages/internal/report"
)

// Well-known page variables.
const (
	VarStatus   = "status"
	StatusDraft = "draft"
)

// PageVars holds the variables set by untyped YAML blocks of one document.
// A fresh instance is created per document and never shared.
type PageVars struct {
	values map[string]any
	lines  map[string]int
}

// NewPageVars returns an empty store.
func NewPageVars() *PageVars {
	return &PageVars{values: map[string]any{}, lines: map[string]int{}}
}

// Merge copies fields into the store. The last write wins; overwriting an
// existing key with a different value is reported as a warning at line.
func (v *PageVars) Merge(fields Fields, path string, line int, rep *report.Report) {
	for _, key := range fields.Keys() {
		val, _ := fields.Get(key)
		if old, exists := v.values[key]; exists && !reflect.DeepEqual(old, val) && rep != nil {
			rep.Tell(
				fmt.Sprintf("page variable %q redefined: %v replaces %v (set on line %d)", key, val, old, v.lines[key]),
				report.Warning, path, line,
			)
		}
		v.values[key] = val
		v.lines[key] = line
	}
}

// Get returns the value of key.
func (v *PageVars) Get(key string) (any, bool) {
	val, ok := v.values[key]
	return val, ok
}

// String returns the value of key as text, "" when absent.
func (v *PageVars) String(key string) string {
	val, ok := v.values[key]
	if !ok || val == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(val))
}

// Line returns the line where key was last set, 0 when absent.
func (v *PageVars) Line(key string) int {
	return v.lines[key]
}

// Keys returns the variable names, sorted.
func (v *PageVars) Keys() []string {
	keys := make([]string, 0, len(v.values))
	for k := range v.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of variables.
func (v *PageVars) Len() int { return len(v.values) }

// Status returns the lower-cased "status" variable.
func (v *PageVars) Status() string {
	return strings.ToLower(v.String(VarStatus))
}

// IsDraft reports whether the page status is draft.
func (v *PageVars) IsDraft() bool {
	return v.Status() == StatusDraft
}

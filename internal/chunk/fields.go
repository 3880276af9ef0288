package chunk

import (
	"fmt"
	"strings"

	"github.com/alnah/go-mdpages/internal/yamlutil"
)

// Fields is a parsed YAML mapping that remembers key order.
type Fields struct {
	order  []string
	values map[string]any
}

// NewFields builds Fields from parsed mapping items. Later duplicates win.
func NewFields(items []yamlutil.Field) Fields {
	f := Fields{values: make(map[string]any, len(items))}
	for _, it := range items {
		if _, seen := f.values[it.Key]; !seen {
			f.order = append(f.order, it.Key)
		}
		f.values[it.Key] = it.Value
	}
	return f
}

// Keys returns the keys in source order.
func (f Fields) Keys() []string {
	return append([]string(nil), f.order...)
}

// Len returns the number of keys.
func (f Fields) Len() int { return len(f.order) }

// Has reports whether key is present.
func (f Fields) Has(key string) bool {
	_, ok := f.values[key]
	return ok
}

// Get returns the raw value for key.
func (f Fields) Get(key string) (any, bool) {
	v, ok := f.values[key]
	return v, ok
}

// String returns the value for key formatted as text, "" when absent or null.
func (f Fields) String(key string) string {
	v, ok := f.values[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return fmt.Sprint(v)
}

// Strings returns a sequence value as text. A scalar becomes a one-element slice.
func (f Fields) Strings(key string) []string {
	v, ok := f.values[key]
	if !ok || v == nil {
		return nil
	}
	seq, ok := v.([]any)
	if !ok {
		return []string{f.String(key)}
	}
	out := make([]string, 0, len(seq))
	for _, e := range seq {
		out = append(out, fmt.Sprint(e))
	}
	return out
}

// Items returns the fields in source order.
func (f Fields) Items() []yamlutil.Field {
	out := make([]yamlutil.Field, 0, len(f.order))
	for _, k := range f.order {
		out = append(out, yamlutil.Field{Key: k, Value: f.values[k]})
	}
	return out
}

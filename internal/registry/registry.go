// Package registry maps (namespace, key) pairs to chunk factories.
//
// A Registry is populated once at startup, frozen, and then shared read-only
// by every document job. Lookups after Freeze take no lock.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/alnah/go-mdpages/internal/chunk"
	"github.com/alnah/go-mdpages/internal/chunker"
	"github.com/alnah/go-mdpages/internal/report"
)

// Sentinel errors for registration.
var (
	ErrFrozen     = errors.New("registry is frozen")
	ErrEmptyKey   = errors.New("registration key cannot be empty")
	ErrNilFactory = errors.New("factory cannot be nil")
)

// Namespace separates independent key spaces.
type Namespace int

// Namespaces.
const (
	CodeLang Namespace = iota
	YAMLType
	ParagraphClass
)

// Namespaces lists every namespace in display order.
var Namespaces = []Namespace{YAMLType, ParagraphClass, CodeLang}

// String returns the namespace name.
func (n Namespace) String() string {
	switch n {
	case CodeLang:
		return "code"
	case YAMLType:
		return "yaml"
	case ParagraphClass:
		return "paragraph"
	default:
		return fmt.Sprintf("namespace(%d)", int(n))
	}
}

// Factory builds a chunk from a region. fields is empty for namespaces
// other than YAMLType.
type Factory func(region *chunker.Region, fields chunk.Fields, vars *chunk.PageVars, rep *report.Report) chunk.Chunk

// Registry holds plugin factories.
type Registry struct {
	rep    *report.Report
	mu     sync.Mutex
	frozen atomic.Bool
	tables map[Namespace]map[string]Factory
}

// New creates an empty registry. Overwrite warnings go to rep, which may be nil.
func New(rep *report.Report) *Registry {
	return &Registry{
		rep: rep,
		tables: map[Namespace]map[string]Factory{
			CodeLang:       {},
			YAMLType:       {},
			ParagraphClass: {},
		},
	}
}

// Register adds a factory under the lower-cased key. Registering an existing
// key replaces it and reports a warning.
func (r *Registry) Register(ns Namespace, key string, f Factory) error {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return ErrEmptyKey
	}
	if f == nil {
		return fmt.Errorf("%w: %s/%s", ErrNilFactory, ns, key)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		return fmt.Errorf("%w: cannot register %s/%s", ErrFrozen, ns, key)
	}
	table, ok := r.tables[ns]
	if !ok {
		return fmt.Errorf("unknown namespace %s", ns)
	}
	if _, exists := table[key]; exists && r.rep != nil {
		r.rep.Warning(fmt.Sprintf("plugin %s/%s registered twice, last registration wins", ns, key))
	}
	table[key] = f
	return nil
}

// Freeze makes the registry read-only.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen.Store(true)
}

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}

// Lookup returns the factory for the lower-cased key.
func (r *Registry) Lookup(ns Namespace, key string) (Factory, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	if !r.frozen.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	f, ok := r.tables[ns][key]
	return f, ok
}

// Keys returns the registered keys of a namespace, sorted.
func (r *Registry) Keys(ns Namespace) []string {
	if !r.frozen.Load() {
		r.mu.Lock()
		defer r.mu.Unlock()
	}
	keys := make([]string, 0, len(r.tables[ns]))
	for k := range r.tables[ns] {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

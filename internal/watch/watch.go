// Package watch rebuilds documents when they change on disk.
//
// A Watcher observes the input directory and the directory holding the page
// template. Events are collected until the directory has been quiet for the
// debounce interval, then handled one at a time on the watching goroutine:
// a changed template triggers a full rebuild, otherwise each changed
// document is rebuilt in name order.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before changes are handled.
const DefaultDebounce = 300 * time.Millisecond

// ErrNoInputDir is returned when the input directory cannot be watched.
var ErrNoInputDir = errors.New("input directory cannot be watched")

// Watcher calls its handlers for changed documents and templates.
type Watcher struct {
	InputDir     string
	TemplatePath string // optional
	Debounce     time.Duration
	Logger       *slog.Logger

	// OnDocument is called with the path of each changed Markdown document.
	OnDocument func(ctx context.Context, path string)
	// OnTemplate is called once when the template changed.
	OnTemplate func(ctx context.Context)
}

// batch is the set of changes collected during one quiet period.
type batch struct {
	template bool
	docs     map[string]bool
}

func (b *batch) empty() bool {
	return !b.template && len(b.docs) == 0
}

// Run watches until ctx is canceled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(w.InputDir); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrNoInputDir, w.InputDir, err)
	}
	if w.TemplatePath != "" {
		dir := filepath.Dir(w.TemplatePath)
		if filepath.Clean(dir) != filepath.Clean(w.InputDir) {
			if err := fw.Add(dir); err != nil {
				w.logger().Warn("template directory not watched", "dir", dir, "error", err)
			}
		}
	}
	w.logger().Info("watching for changes", "input", w.InputDir, "template", w.TemplatePath)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()

	pending := batch{docs: map[string]bool{}}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.collect(&pending, ev) {
				timer.Reset(debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger().Warn("watcher error", "error", err)
		case <-timer.C:
			w.flush(ctx, pending)
			pending = batch{docs: map[string]bool{}}
		}
	}
}

// collect records a relevant event and reports whether it was recorded.
func (w *Watcher) collect(b *batch, ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	if shouldIgnore(ev.Name) {
		return false
	}

	if w.TemplatePath != "" && sameFile(ev.Name, w.TemplatePath) {
		w.logger().Debug("template changed", "path", ev.Name, "op", ev.Op.String())
		b.template = true
		return true
	}
	if filepath.Ext(ev.Name) != ".md" || !sameFile(filepath.Dir(ev.Name), w.InputDir) {
		return false
	}
	if fi, err := os.Stat(ev.Name); err != nil || fi.IsDir() {
		return false
	}
	w.logger().Debug("document changed", "path", ev.Name, "op", ev.Op.String())
	b.docs[ev.Name] = true
	return true
}

// flush handles a batch sequentially. A template change supersedes the
// individual documents.
func (w *Watcher) flush(ctx context.Context, b batch) {
	if b.empty() || ctx.Err() != nil {
		return
	}
	if b.template {
		if w.OnTemplate != nil {
			w.OnTemplate(ctx)
		}
		return
	}

	docs := make([]string, 0, len(b.docs))
	for d := range b.docs {
		docs = append(docs, d)
	}
	sort.Strings(docs)
	for _, d := range docs {
		if ctx.Err() != nil {
			return
		}
		if w.OnDocument != nil {
			w.OnDocument(ctx, d)
		}
	}
}

func (w *Watcher) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return w.Logger
}

func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}

// shouldIgnore reports editor swap files, backups and hidden files.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	switch {
	case strings.HasPrefix(base, "."):
		return true
	case strings.HasSuffix(base, "~"), strings.HasSuffix(base, ".swp"), strings.HasSuffix(base, ".swx"):
		return true
	case strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	}
	return false
}

package mdpages

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeRenderer records rendered files instead of starting a browser.
type fakeRenderer struct {
	mu       sync.Mutex
	rendered []string
	pages    []string
	err      error
	closeErr error
	closed   atomic.Bool
}

func (f *fakeRenderer) RenderFile(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.rendered = append(f.rendered, path)
	f.pages = append(f.pages, string(data))
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4 fake"), nil
}

func (f *fakeRenderer) Close() error {
	f.closed.Store(true)
	return f.closeErr
}

// fakeProgress counts progress calls.
type fakeProgress struct {
	started    atomic.Int64
	increments atomic.Int64
	done       atomic.Bool
}

func (p *fakeProgress) Start(total int) { p.started.Store(int64(total)) }
func (p *fakeProgress) Increment()      { p.increments.Add(1) }
func (p *fakeProgress) Done()           { p.done.Store(true) }

// writeFile writes content under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// setMTime moves a file's times to base+offset.
func setMTime(t *testing.T, path string, base time.Time, offset time.Duration) {
	t.Helper()
	ts := base.Add(offset)
	if err := os.Chtimes(path, ts, ts); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

// readFile returns the content of path.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

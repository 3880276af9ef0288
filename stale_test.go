package mdpages

// Notes:
// - Modification times are set explicitly with os.Chtimes; tests never rely
//   on the clock advancing between two writes.

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/alnah/go-mdpages/internal/pipeline"
)

// ---------------------------------------------------------------------------
// TestIsStale - Rebuild conditions
// ---------------------------------------------------------------------------

func TestIsStale(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		rebuildAll bool
		target     *time.Duration // nil: target missing
		template   *time.Duration // nil: template missing
		want       bool
	}{
		{
			name:   "target missing",
			target: nil,
			want:   true,
		},
		{
			name:   "target newer than source",
			target: durationPtr(time.Hour),
			want:   false,
		},
		{
			name:   "target as old as source",
			target: durationPtr(0),
			want:   false,
		},
		{
			name:   "target older than source",
			target: durationPtr(-time.Hour),
			want:   true,
		},
		{
			name:       "rebuild all wins over fresh target",
			rebuildAll: true,
			target:     durationPtr(time.Hour),
			want:       true,
		},
		{
			name:     "template newer than target",
			target:   durationPtr(time.Hour),
			template: durationPtr(2 * time.Hour),
			want:     true,
		},
		{
			name:     "template older than target",
			target:   durationPtr(time.Hour),
			template: durationPtr(-time.Hour),
			want:     false,
		},
		{
			name:     "missing template adds no condition",
			target:   durationPtr(time.Hour),
			template: nil,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			source := writeFile(t, dir, "doc.md", "text")
			setMTime(t, source, base, 0)

			target := filepath.Join(dir, "doc.html")
			if tt.target != nil {
				writeFile(t, dir, "doc.html", "<p>text</p>")
				setMTime(t, target, base, *tt.target)
			}

			template := filepath.Join(dir, "page.html")
			if tt.template != nil {
				writeFile(t, dir, "page.html", "{content}")
				setMTime(t, template, base, *tt.template)
			}

			got, err := IsStale(source, target, template, tt.rebuildAll)
			if err != nil {
				t.Fatalf("IsStale() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("IsStale() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsStale_EmptyTemplatePath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	source := writeFile(t, dir, "doc.md", "text")
	target := writeFile(t, dir, "doc.html", "")
	setMTime(t, source, base, 0)
	setMTime(t, target, base, time.Minute)

	got, err := IsStale(source, target, "", false)
	if err != nil {
		t.Fatalf("IsStale() error = %v", err)
	}
	if got {
		t.Error("IsStale() = true, want false")
	}
}

// ---------------------------------------------------------------------------
// TestDiscover - Candidate listing
// ---------------------------------------------------------------------------

func TestDiscover(t *testing.T) {
	t.Parallel()

	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "site")
	writeFile(t, in, "b.md", "")
	writeFile(t, in, "a.md", "")
	writeFile(t, in, "notes.txt", "")
	writeFile(t, in, "nested/c.md", "")

	tests := []struct {
		name   string
		target pipeline.Format
		want   []Job
	}{
		{
			name:   "html targets",
			target: pipeline.FormatHTML,
			want: []Job{
				{Source: filepath.Join(in, "a.md"), Target: filepath.Join(out, "a.html")},
				{Source: filepath.Join(in, "b.md"), Target: filepath.Join(out, "b.html")},
			},
		},
		{
			name:   "latex targets",
			target: pipeline.FormatLaTeX,
			want: []Job{
				{Source: filepath.Join(in, "a.md"), Target: filepath.Join(out, "a.tex")},
				{Source: filepath.Join(in, "b.md"), Target: filepath.Join(out, "b.tex")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Discover(in, out, tt.target)
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Discover() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("job %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestDiscover_MissingDirectory(t *testing.T) {
	t.Parallel()

	_, err := Discover(filepath.Join(t.TempDir(), "absent"), t.TempDir(), pipeline.FormatHTML)
	if err == nil {
		t.Fatal("Discover() error = nil, want error")
	}
}

func TestPDFPath(t *testing.T) {
	t.Parallel()

	if got := PDFPath(filepath.Join("site", "intro.html")); got != filepath.Join("site", "intro.pdf") {
		t.Errorf("PDFPath() = %q", got)
	}
}

func durationPtr(d time.Duration) *time.Duration {
	return &d
}

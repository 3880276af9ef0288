package assets

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadStyle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		styleName   string
		wantErr     error
		wantContain string
	}{
		{
			name:        "loads figure style",
			styleName:   "figure",
			wantContain: "div.figure",
		},
		{
			name:        "loads callout style",
			styleName:   "callout",
			wantContain: "div.warning",
		},
		{
			name:      "returns ErrStyleNotFound for nonexistent",
			styleName: "nonexistent-style-xyz",
			wantErr:   ErrStyleNotFound,
		},
		{
			name:      "returns ErrInvalidAssetName for empty name",
			styleName: "",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "returns ErrInvalidAssetName for path traversal",
			styleName: "../secret",
			wantErr:   ErrInvalidAssetName,
		},
		{
			name:      "returns ErrInvalidAssetName for name with dot",
			styleName: "style.name",
			wantErr:   ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := LoadStyle(tt.styleName)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadStyle(%q) error = %v, want %v", tt.styleName, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadStyle(%q) unexpected error: %v", tt.styleName, err)
			}
			if !strings.Contains(got, tt.wantContain) {
				t.Errorf("LoadStyle(%q) content should contain %q", tt.styleName, tt.wantContain)
			}
		})
	}
}

func TestMustStyle_PanicsOnMissing(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("MustStyle() did not panic for a missing style")
		}
	}()
	MustStyle("missing")
}

func TestLoadTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tmpl    string
		ext     string
		wantErr error
		want    []string
	}{
		{
			name: "html page template",
			tmpl: DefaultTemplate, ext: ".html",
			want: []string{"{content}", "</head>"},
		},
		{
			name: "latex page template",
			tmpl: DefaultTemplate, ext: ".tex",
			want: []string{"{content}", `\begin{document}`, "tcolorbox"},
		},
		{
			name: "unknown extension",
			tmpl: DefaultTemplate, ext: ".txt",
			wantErr: ErrTemplateNotFound,
		},
		{
			name: "unknown template",
			tmpl: "cover", ext: ".html",
			wantErr: ErrTemplateNotFound,
		},
		{
			name: "traversal",
			tmpl: "../page", ext: ".html",
			wantErr: ErrInvalidAssetName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := LoadTemplate(tt.tmpl, tt.ext)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("LoadTemplate(%q, %q) error = %v, want %v", tt.tmpl, tt.ext, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadTemplate(%q, %q) unexpected error: %v", tt.tmpl, tt.ext, err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("LoadTemplate(%q, %q) should contain %q", tt.tmpl, tt.ext, w)
				}
			}
			if n := strings.Count(got, "{content}"); n != 1 {
				t.Errorf("template has %d content placeholders, want 1", n)
			}
		})
	}
}

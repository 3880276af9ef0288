package yamlutil_test

// Notes:
// - Marshal error branch is not tested: yaml.Marshal only fails on
//   unmarshalable types (channels, functions) which never reach it.

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-mdpages/internal/yamlutil"
)

type testConfig struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{"valid", []byte("name: test\ncount: 42"), &testConfig{}, nil},
		{"nil data", nil, &testConfig{}, yamlutil.ErrNilData},
		{"nil destination", []byte("name: x"), nil, yamlutil.ErrNilDestination},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Unmarshal() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUnmarshal_InputTooLarge(t *testing.T) {
	t.Parallel()

	data := []byte("name: " + strings.Repeat("x", yamlutil.MaxInputSize))
	if err := yamlutil.Unmarshal(data, &testConfig{}); !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("Unmarshal() error = %v, want ErrInputTooLarge", err)
	}
}

func TestUnmarshalStrict_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	if err := yamlutil.UnmarshalStrict([]byte("name: a\nbogus: 1"), &cfg); err == nil {
		t.Error("UnmarshalStrict() error = nil, want unknown field error")
	}
	if err := yamlutil.UnmarshalStrict([]byte("name: a\ncount: 2"), &cfg); err != nil {
		t.Errorf("UnmarshalStrict() error = %v", err)
	}
	if cfg.Count != 2 {
		t.Errorf("Count = %d, want 2", cfg.Count)
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalMapping
// ---------------------------------------------------------------------------

func TestUnmarshalMapping_KeepsOrder(t *testing.T) {
	t.Parallel()

	fields, err := yamlutil.UnmarshalMapping([]byte("type: figure\nsource: a.png\ncaption: An image\nnested:\n  z: 1\n  a: 2"))
	if err != nil {
		t.Fatalf("UnmarshalMapping() error = %v", err)
	}

	var keys []string
	for _, f := range fields {
		keys = append(keys, f.Key)
	}
	if got := strings.Join(keys, ","); got != "type,source,caption,nested" {
		t.Errorf("keys = %q, want source order", got)
	}
	if _, ok := fields[3].Value.(map[string]any); !ok {
		t.Errorf("nested value = %T, want map[string]any", fields[3].Value)
	}
}

func TestUnmarshalMapping_RejectsNonMappings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"scalar", "just some text"},
		{"sequence", "- a\n- b"},
		{"blank", "   \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := yamlutil.UnmarshalMapping([]byte(tt.data))
			if !errors.Is(err, yamlutil.ErrNotMapping) {
				t.Errorf("UnmarshalMapping() error = %v, want ErrNotMapping", err)
			}
		})
	}
}

func TestUnmarshalMapping_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := yamlutil.UnmarshalMapping([]byte("a: [unclosed"))
	if err == nil || errors.Is(err, yamlutil.ErrNotMapping) {
		t.Errorf("UnmarshalMapping() error = %v, want syntax error", err)
	}
}

func TestMarshalMapping_RoundTrip(t *testing.T) {
	t.Parallel()

	in := []yamlutil.Field{{Key: "type", Value: "video"}, {Key: "video", Value: "abc"}, {Key: "caption", Value: "Intro"}}
	data, err := yamlutil.MarshalMapping(in)
	if err != nil {
		t.Fatalf("MarshalMapping() error = %v", err)
	}
	if got := string(data); got != "type: video\nvideo: abc\ncaption: Intro\n" {
		t.Errorf("MarshalMapping() = %q", got)
	}

	out, err := yamlutil.UnmarshalMapping(data)
	if err != nil {
		t.Fatalf("UnmarshalMapping() error = %v", err)
	}
	if len(out) != 3 || out[2].Value != "Intro" {
		t.Errorf("round trip = %#v", out)
	}
}

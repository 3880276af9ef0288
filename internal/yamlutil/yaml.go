// Package yamlutil wraps YAML parsing to isolate the external dependency.
// This allows swapping the underlying YAML library without modifying callers.
package yamlutil

import (
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits YAML input to prevent memory exhaustion (default 1MB).
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: nil or empty data")
	ErrNilDestination = errors.New("yamlutil: nil destination pointer")
	ErrInputTooLarge  = errors.New("yamlutil: input exceeds maximum size")
	ErrNotMapping     = errors.New("yamlutil: document is not a mapping")
)

// Field is one key/value pair of an ordered mapping.
// Nested mappings are decoded as map[string]any.
type Field struct {
	Key   string
	Value any
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

func Marshal(v any) ([]byte, error) {
	result, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return result, nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// UnmarshalMapping parses a document whose top level must be a mapping and
// returns its fields in source order. Any other top-level value (scalar,
// sequence, empty document) yields ErrNotMapping.
func UnmarshalMapping(data []byte) ([]Field, error) {
	var v any
	if err := validateInput(data, &v); err != nil {
		return nil, err
	}
	if err := yaml.UnmarshalWithOptions(data, &v, yaml.UseOrderedMap()); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}

	ms, ok := v.(yaml.MapSlice)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotMapping, describe(v))
	}

	fields := make([]Field, 0, len(ms))
	for _, item := range ms {
		fields = append(fields, Field{Key: fmt.Sprint(item.Key), Value: plain(item.Value)})
	}
	return fields, nil
}

// MarshalMapping serializes fields as a mapping, keeping their order.
func MarshalMapping(fields []Field) ([]byte, error) {
	ms := make(yaml.MapSlice, 0, len(fields))
	for _, f := range fields {
		ms = append(ms, yaml.MapItem{Key: f.Key, Value: f.Value})
	}
	return Marshal(ms)
}

// plain converts ordered maps nested below the top level into ordinary maps.
func plain(v any) any {
	switch t := v.(type) {
	case yaml.MapSlice:
		m := make(map[string]any, len(t))
		for _, item := range t {
			m[fmt.Sprint(item.Key)] = plain(item.Value)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	default:
		return v
	}
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "empty document"
	case []any:
		return "sequence"
	default:
		return fmt.Sprintf("scalar %T", v)
	}
}

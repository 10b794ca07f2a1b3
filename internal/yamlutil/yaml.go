// Package yamlutil is the only place that imports the YAML library. Inputs
// are size-capped before decoding.
package yamlutil

import (
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxInputSize caps the bytes accepted by Unmarshal and UnmarshalStrict.
var MaxInputSize = 1 << 20

var (
	ErrNilData        = errors.New("yamlutil: no YAML to decode")
	ErrNilDestination = errors.New("yamlutil: decode target is nil")
	ErrInputTooLarge  = errors.New("yamlutil: YAML input too large")
)

// Unmarshal decodes data into v. Keys without a matching field are skipped.
func Unmarshal(data []byte, v any) error {
	return decode(data, v)
}

// UnmarshalStrict decodes data into v and fails on keys without a matching
// field, so a misspelled option is reported instead of ignored.
func UnmarshalStrict(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	switch size := len(data); {
	case size == 0:
		return ErrNilData
	case size > MaxInputSize:
		return fmt.Errorf("%w: %d bytes, limit %d", ErrInputTooLarge, size, MaxInputSize)
	case v == nil:
		return ErrNilDestination
	}
	if err := yaml.UnmarshalWithOptions(data, v, opts...); err != nil {
		return fmt.Errorf("yamlutil: %w", err)
	}
	return nil
}

// Marshal encodes v with two-space indentation and indented sequences,
// the layout `mdexport config` prints.
func Marshal(v any) ([]byte, error) {
	out, err := yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("yamlutil: %w", err)
	}
	return out, nil
}

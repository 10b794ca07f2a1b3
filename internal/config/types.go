package config

import (
	"fmt"
	"strings"
)

// OutputTypes is the "type" setting. YAML accepts a single kind
// ("type: pdf") or a list ("type: [pdf, png]"); both decode to a list.
type OutputTypes []string

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (t *OutputTypes) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*t = OutputTypes{strings.TrimSpace(single)}
		return nil
	}

	var many []string
	if err := unmarshal(&many); err != nil {
		return fmt.Errorf("type: expected a kind or a list of kinds: %w", err)
	}
	out := make(OutputTypes, 0, len(many))
	for _, kind := range many {
		out = append(out, strings.TrimSpace(kind))
	}
	*t = out
	return nil
}

// MarshalYAML writes a single kind as a scalar.
func (t OutputTypes) MarshalYAML() (any, error) {
	if len(t) == 1 {
		return t[0], nil
	}
	return []string(t), nil
}

// ParseOutputTypes splits a comma-separated list such as "pdf,png".
func ParseOutputTypes(s string) OutputTypes {
	var out OutputTypes
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

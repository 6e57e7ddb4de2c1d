package schema

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Params is a validated parameter set: every key passed required/default/
// coercion checks against the node's declared schema.
type Params map[string]any

// String returns the named parameter as a string, or "" if absent.
func (p Params) String(name string) string {
	s, _ := p[name].(string)
	return s
}

// Int returns the named parameter as an int with a fallback default.
func (p Params) Int(name string, def int) int {
	if v, ok := p[name].(int); ok {
		return v
	}
	return def
}

// List returns the named parameter as a slice, or nil if absent.
func (p Params) List(name string) []any {
	v, _ := p[name].([]any)
	return v
}

// Dict returns the named parameter as a map, or nil if absent.
func (p Params) Dict(name string) map[string]any {
	v, _ := p[name].(map[string]any)
	return v
}

// Decode maps the parameter set onto a typed struct using mapstructure tags.
// Nodes use this to work with named fields instead of map lookups.
func (p Params) Decode(target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("building decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(p)); err != nil {
		return fmt.Errorf("decoding params: %w", err)
	}
	return nil
}

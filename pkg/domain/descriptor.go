package domain

import "strconv"

// ParamType identifies the expected shape of a parameter value.
type ParamType string

const (
	TypeString ParamType = "string"
	TypeInt    ParamType = "int"
	TypeList   ParamType = "list"
	TypeDict   ParamType = "dict"
)

// ParameterSpec declares a single input parameter of a node.
// It drives both validation and CLI help text.
type ParameterSpec struct {
	Name        string    `json:"name" yaml:"name"`
	Type        ParamType `json:"type" yaml:"type"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool      `json:"required,omitempty" yaml:"required,omitempty"`

	// Default is substituted verbatim when an optional parameter is absent.
	// It is never subject to type coercion.
	Default any `json:"default,omitempty" yaml:"default,omitempty"`
}

// Descriptor is the static metadata of a node: its registry name, the
// configuration keys it needs, its parameter schema and the payload fields
// its Success result carries. Immutable once registered.
type Descriptor struct {
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	ConfigKeys  []string        `json:"config_keys,omitempty" yaml:"config_keys,omitempty"`
	Parameters  []ParameterSpec `json:"parameters,omitempty" yaml:"parameters,omitempty"`

	// Outputs lists the field names present in the node's Success payload.
	// Chain compilation uses this to reject references to fields the
	// upstream node will never produce.
	Outputs []string `json:"outputs,omitempty" yaml:"outputs,omitempty"`
}

// Parameter returns the spec for a named parameter, or false if the node
// does not declare it.
func (d Descriptor) Parameter(name string) (ParameterSpec, bool) {
	for _, p := range d.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return ParameterSpec{}, false
}

// HasOutput reports whether the node declares the given payload field.
func (d Descriptor) HasOutput(field string) bool {
	for _, o := range d.Outputs {
		if o == field {
			return true
		}
	}
	return false
}

// Config is the per-node configuration mapping handed to a node at execution
// time. It is owned by the caller and treated as read-only by the core.
type Config map[string]any

// String returns the string value of a config key, or "" if absent or not a
// string-like value.
func (c Config) String(key string) string {
	v, ok := c[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Int returns the integer value of a config key with a fallback default.
// YAML decoding yields int, JSON decoding yields float64, and environment
// overrides yield strings; all three are accepted.
func (c Config) Int(key string, def int) int {
	switch v := c[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		return def
	default:
		return def
	}
}

// Missing returns the config keys from want that are absent or empty.
func (c Config) Missing(want []string) []string {
	var missing []string
	for _, k := range want {
		v, ok := c[k]
		if !ok || v == nil || v == "" {
			missing = append(missing, k)
		}
	}
	return missing
}

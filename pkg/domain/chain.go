package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StepRef points at a payload field of an earlier chain step.
type StepRef struct {
	Step  string `json:"step" yaml:"step"`
	Field string `json:"field" yaml:"field"`
}

func (r StepRef) String() string {
	return "$" + r.Step + "." + r.Field
}

// Input is one entry of a step's input mapping: either a literal value passed
// through unchanged, or a reference to an earlier step's payload field.
type Input struct {
	Literal any
	Ref     *StepRef
}

// UnmarshalYAML decodes either a "$step.field" reference string or any other
// YAML value as a literal.
func (in *Input) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err == nil {
		if ref, ok := ParseRef(s); ok {
			in.Ref = ref
			return nil
		}
		in.Literal = s
		return nil
	}
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	in.Literal = v
	return nil
}

// MarshalJSON writes references back in their "$step.field" form so chain
// definitions round-trip through the API the way users wrote them.
func (in Input) MarshalJSON() ([]byte, error) {
	if in.Ref != nil {
		return json.Marshal(in.Ref.String())
	}
	return json.Marshal(in.Literal)
}

// UnmarshalJSON mirrors the YAML decoding: a "$step.field" string becomes a
// reference, everything else a literal.
func (in *Input) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if ref, ok := ParseRef(s); ok {
			in.Ref = ref
			return nil
		}
		in.Literal = s
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	in.Literal = v
	return nil
}

// ParseRef interprets a "$step.field" string as a StepRef.
// Anything else is not a reference.
func ParseRef(s string) (*StepRef, bool) {
	if !strings.HasPrefix(s, "$") {
		return nil, false
	}
	step, field, ok := strings.Cut(s[1:], ".")
	if !ok || step == "" || field == "" {
		return nil, false
	}
	return &StepRef{Step: step, Field: field}, true
}

// ChainStep names a node to invoke and the mapping that produces its raw
// parameters. Alias defaults to the node name and must be unique within the
// chain so later steps can reference this step's payload.
type ChainStep struct {
	Alias  string           `json:"alias,omitempty" yaml:"alias,omitempty"`
	Node   string           `json:"node" yaml:"node"`
	Inputs map[string]Input `json:"inputs,omitempty" yaml:"inputs,omitempty"`
}

// Name returns the step's alias, falling back to its node name.
func (s ChainStep) Name() string {
	if s.Alias != "" {
		return s.Alias
	}
	return s.Node
}

// ChainSpec is a named ordered sequence of steps. It is plain declared data;
// compilation against a registry happens in the runtime.
type ChainSpec struct {
	Name        string      `json:"name" yaml:"name"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Steps       []ChainStep `json:"steps" yaml:"steps"`
}

// Validate performs registry-independent checks: at least one step, unique
// step names, and references that only point backwards.
func (c ChainSpec) Validate() error {
	if len(c.Steps) == 0 {
		return fmt.Errorf("chain %q has no steps", c.Name)
	}
	seen := make(map[string]int, len(c.Steps))
	for i, step := range c.Steps {
		if step.Node == "" {
			return fmt.Errorf("chain %q step %d: missing node name", c.Name, i)
		}
		name := step.Name()
		if _, dup := seen[name]; dup {
			return fmt.Errorf("chain %q step %d: duplicate step name %q (use an alias)", c.Name, i, name)
		}
		for param, in := range step.Inputs {
			if in.Ref == nil {
				continue
			}
			if _, ok := seen[in.Ref.Step]; !ok {
				return fmt.Errorf("chain %q step %d: input %q references %s which is not an earlier step",
					c.Name, i, param, in.Ref)
			}
		}
		seen[name] = i
	}
	return nil
}

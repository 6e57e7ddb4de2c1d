package schema

import "github.com/orchestron-dev/orchestron/pkg/domain"

// Validate checks raw input against a parameter schema and produces the
// validated parameter set.
//
// Specs are walked in declaration order: a supplied value is coerced to its
// type hint, an absent required parameter is collected as missing, and an
// absent optional parameter gets its declared default verbatim (defaults are
// trusted as declared and never pass through coercion). Raw keys not present
// in the schema are ignored, which keeps chaining tolerant of extra upstream
// payload fields.
func Validate(specs []domain.ParameterSpec, raw map[string]any) (Params, error) {
	out := make(Params, len(specs))
	verr := &ValidationError{}

	for _, spec := range specs {
		value, supplied := raw[spec.Name]
		if !supplied {
			if spec.Required {
				verr.Missing = append(verr.Missing, spec.Name)
				continue
			}
			if spec.Default != nil {
				out[spec.Name] = spec.Default
			}
			continue
		}

		coerced, err := Coerce(spec.Type, value)
		if err != nil {
			verr.Mismatches = append(verr.Mismatches, Mismatch{
				Field:    spec.Name,
				Expected: string(spec.Type),
				Actual:   value,
			})
			continue
		}
		out[spec.Name] = coerced
	}

	if len(verr.Missing) > 0 || len(verr.Mismatches) > 0 {
		return nil, verr
	}
	return out, nil
}

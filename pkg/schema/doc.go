// Package schema bridges raw, untyped input into validated node parameters.
//
// A node declares its inputs as an ordered list of domain.ParameterSpec
// values; Validate walks that list, collecting missing required fields,
// substituting declared defaults, and coercing supplied values to their type
// hints (string, int, list, dict). Unknown keys in the raw input are ignored
// so chained nodes tolerate extra upstream payload fields.
//
//	params, err := schema.Validate(desc.Parameters, raw)
//	if err != nil {
//	    var verr *schema.ValidationError
//	    errors.As(err, &verr) // verr.Missing names exactly the absent fields
//	}
//
// The resulting Params map offers typed getters and a mapstructure-based
// Decode for nodes that prefer typed parameter structs.
package schema

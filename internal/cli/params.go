package cli

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseParams turns repeated --param key=value flags into the raw parameter
// map handed to the validator. Values that parse as JSON keep their decoded
// type, so --param max_emails=3 yields an int and --param emails='["a"]'
// yields a list; anything else stays a plain string.
func ParseParams(pairs []string) (map[string]any, error) {
	raw := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", pair)
		}
		raw[key] = parseValue(value)
	}
	return raw, nil
}

// ParseOverrides turns repeated --set step.param=value flags into per-step
// literal overrides for a chain run.
func ParseOverrides(pairs []string) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any)
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid override %q, expected step.param=value", pair)
		}
		step, param, ok := strings.Cut(key, ".")
		if !ok || step == "" || param == "" {
			return nil, fmt.Errorf("invalid override %q, expected step.param=value", pair)
		}
		if out[step] == nil {
			out[step] = make(map[string]any)
		}
		out[step][param] = parseValue(value)
	}
	return out, nil
}

func parseValue(value string) any {
	var decoded any
	if err := json.Unmarshal([]byte(value), &decoded); err == nil {
		return decoded
	}
	return value
}

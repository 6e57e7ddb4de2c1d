package schema

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"

	"github.com/orchestron-dev/orchestron/pkg/domain"
)

// Coerce converts a raw value to the declared parameter type.
// CLI input arrives as strings, chain input arrives as whatever the upstream
// payload held, so each type hint accepts the natural Go shapes plus a string
// form (strconv for int, JSON text for list/dict).
func Coerce(t domain.ParamType, value any) (any, error) {
	switch t {
	case domain.TypeString:
		return coerceString(value)
	case domain.TypeInt:
		return coerceInt(value)
	case domain.TypeList:
		return coerceList(value)
	case domain.TypeDict:
		return coerceDict(value)
	default:
		return nil, fmt.Errorf("unsupported type hint %q", t)
	}
}

func coerceString(value any) (any, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	return nil, fmt.Errorf("expected string, got %T", value)
}

func coerceInt(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return int(reflect.ValueOf(v).Convert(reflect.TypeOf(int64(0))).Int()), nil
	case float64:
		// JSON numbers decode as float64; accept whole numbers only.
		if v == float64(int64(v)) {
			return int(v), nil
		}
		return nil, fmt.Errorf("expected int, got non-whole float %v", v)
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("expected int, got %q", v.String())
		}
		return int(n), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("expected int, got %q", v)
		}
		return n, nil
	default:
		return nil, fmt.Errorf("expected int, got %T", value)
	}
}

func coerceList(value any) (any, error) {
	if s, ok := value.(string); ok {
		var out []any
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil, fmt.Errorf("expected list, got unparseable string: %v", err)
		}
		return out, nil
	}

	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("expected list, got %T", value)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

func coerceDict(value any) (any, error) {
	switch v := value.(type) {
	case map[string]any:
		return v, nil
	case string:
		var out map[string]any
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			return nil, fmt.Errorf("expected dict, got unparseable string: %v", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected dict, got %T", value)
	}
}

package schema

import (
	"testing"

	"github.com/orchestron-dev/orchestron/pkg/domain"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		typ     domain.ParamType
		in      any
		want    any
		wantErr bool
	}{
		{"string passthrough", domain.TypeString, "hi", "hi", false},
		{"string rejects int", domain.TypeString, 7, nil, true},
		{"int passthrough", domain.TypeInt, 7, 7, false},
		{"int from string", domain.TypeInt, "42", 42, false},
		{"int from whole float", domain.TypeInt, float64(3), 3, false},
		{"int rejects fraction", domain.TypeInt, 3.5, nil, true},
		{"int rejects text", domain.TypeInt, "three", nil, true},
		{"list from json", domain.TypeList, `["a","b"]`, []any{"a", "b"}, false},
		{"list rejects scalar", domain.TypeList, 1, nil, true},
		{"dict passthrough", domain.TypeDict, map[string]any{"k": "v"}, map[string]any{"k": "v"}, false},
		{"dict from json", domain.TypeDict, `{"k":"v"}`, map[string]any{"k": "v"}, false},
		{"dict rejects list", domain.TypeDict, []any{1}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.typ, tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Coerce(%v, %v) = %v, want error", tt.typ, tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Coerce(%v, %v) error = %v", tt.typ, tt.in, err)
			}
			switch want := tt.want.(type) {
			case []any:
				gotList, ok := got.([]any)
				if !ok || len(gotList) != len(want) {
					t.Fatalf("got %v, want %v", got, want)
				}
				for i := range want {
					if gotList[i] != want[i] {
						t.Errorf("element %d = %v, want %v", i, gotList[i], want[i])
					}
				}
			case map[string]any:
				gotMap, ok := got.(map[string]any)
				if !ok || len(gotMap) != len(want) {
					t.Fatalf("got %v, want %v", got, want)
				}
				for k, v := range want {
					if gotMap[k] != v {
						t.Errorf("key %s = %v, want %v", k, gotMap[k], v)
					}
				}
			default:
				if got != tt.want {
					t.Errorf("got %v (%T), want %v (%T)", got, got, tt.want, tt.want)
				}
			}
		})
	}
}

func TestCoerce_SliceNormalization(t *testing.T) {
	got, err := coerceList([]map[string]any{{"from": "a"}, {"from": "b"}})
	if err != nil {
		t.Fatalf("coerceList error = %v", err)
	}
	list, ok := got.([]any)
	if !ok || len(list) != 2 {
		t.Fatalf("typed slices should normalize to []any, got %T", got)
	}
}

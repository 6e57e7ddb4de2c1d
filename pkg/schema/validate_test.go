package schema

import (
	"errors"
	"testing"

	"github.com/orchestron-dev/orchestron/pkg/domain"
)

func specs() []domain.ParameterSpec {
	return []domain.ParameterSpec{
		{Name: "to_email", Type: domain.TypeString, Required: true},
		{Name: "max_emails", Type: domain.TypeInt, Default: 5},
		{Name: "emails", Type: domain.TypeList},
		{Name: "options", Type: domain.TypeDict},
	}
}

func TestValidate_Success(t *testing.T) {
	params, err := Validate(specs(), map[string]any{
		"to_email":   "ops@example.com",
		"max_emails": "3", // CLI string form
		"emails":     []string{"a", "b"},
		"options":    map[string]any{"dry_run": true},
	})
	if err != nil {
		t.Fatalf("Validate() error = %v, want nil", err)
	}

	if got := params.String("to_email"); got != "ops@example.com" {
		t.Errorf("to_email = %q", got)
	}
	if got := params.Int("max_emails", 0); got != 3 {
		t.Errorf("max_emails = %d, want 3 (coerced from string)", got)
	}
	if got := len(params.List("emails")); got != 2 {
		t.Errorf("emails length = %d, want 2", got)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	_, err := Validate(specs(), map[string]any{})
	if err == nil {
		t.Fatal("Validate() should fail when required parameters are absent")
	}

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error should be *ValidationError, got %T", err)
	}
	if len(verr.Missing) != 1 || verr.Missing[0] != "to_email" {
		t.Errorf("Missing = %v, want exactly [to_email]", verr.Missing)
	}
	if !verr.HasMissing("to_email") {
		t.Error("HasMissing(to_email) = false")
	}
}

func TestValidate_DefaultAppliedVerbatim(t *testing.T) {
	params, err := Validate(specs(), map[string]any{"to_email": "x@y.z"})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	// Default is substituted as declared, never coerced.
	if got, ok := params["max_emails"]; !ok || got != 5 {
		t.Errorf("max_emails = %v, want declared default 5", got)
	}
	if _, ok := params["emails"]; ok {
		t.Error("optional parameter without default should stay absent")
	}
}

func TestValidate_TypeMismatch(t *testing.T) {
	_, err := Validate(specs(), map[string]any{
		"to_email":   42,
		"max_emails": "not-a-number",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error should be *ValidationError, got %T", err)
	}
	if len(verr.Mismatches) != 2 {
		t.Fatalf("Mismatches = %v, want 2 entries", verr.Mismatches)
	}
	if verr.Mismatches[0].Field != "to_email" || verr.Mismatches[0].Expected != "string" {
		t.Errorf("first mismatch = %+v", verr.Mismatches[0])
	}
}

func TestValidate_UnknownKeysIgnored(t *testing.T) {
	params, err := Validate(specs(), map[string]any{
		"to_email": "x@y.z",
		"count":    99, // upstream payload extra
	})
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if _, ok := params["count"]; ok {
		t.Error("unknown key should not survive validation")
	}
}

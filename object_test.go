package valdix_test

import (
	"reflect"
	"testing"

	valdix "github.com/denisetiya/Valdix"
)

// TestObject_OptionalAndDefault covers the canonical object behavior:
// optional fields are omitted from the output, defaulted fields are filled.
func TestObject_OptionalAndDefault(t *testing.T) {
	v, err := valdix.Parse(userSchema(), map[string]any{"name": "Deni", "age": 25})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := map[string]any{"name": "Deni", "age": float64(25), "role": "user"}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("unexpected output: %#v", v)
	}
	if _, present := v.(map[string]any)["nickname"]; present {
		t.Fatalf("nickname must be omitted, got %#v", v)
	}
}

// TestObject_RequiredIssue checks a truly mandatory missing key yields
// exactly one required issue at the key's path.
func TestObject_RequiredIssue(t *testing.T) {
	s := valdix.Object().
		Field("name", valdix.String()).
		Field("age", valdix.Number())
	_, err := valdix.Parse(s, map[string]any{"name": "Deni"})
	ve, ok := valdix.AsValidationError(err)
	if !ok || ve.Len() != 1 {
		t.Fatalf("expected exactly one issue, got %v", err)
	}
	iss := ve.Issues()[0]
	if iss.Code != valdix.CodeRequired || !reflect.DeepEqual(iss.Path, []any{"age"}) {
		t.Fatalf("unexpected issue: %+v", iss)
	}
}

// TestObject_UnknownKeyPolicies exercises strip, passthrough and strict.
func TestObject_UnknownKeyPolicies(t *testing.T) {
	base := valdix.Object().Field("a", valdix.String())
	in := map[string]any{"a": "x", "extra": 1}

	v, err := valdix.Parse(base, in)
	if err != nil {
		t.Fatalf("strip: unexpected err: %v", err)
	}
	if _, ok := v.(map[string]any)["extra"]; ok {
		t.Fatalf("strip must drop unknown keys: %#v", v)
	}

	v, err = valdix.Parse(base.Passthrough(), in)
	if err != nil {
		t.Fatalf("passthrough: unexpected err: %v", err)
	}
	if v.(map[string]any)["extra"] != 1 {
		t.Fatalf("passthrough must keep unknown keys: %#v", v)
	}

	_, err = valdix.Parse(base.Strict(), in)
	ve, ok := valdix.AsValidationError(err)
	if !ok || ve.Len() != 1 {
		t.Fatalf("strict: expected exactly one issue, got %v", err)
	}
	iss := ve.Issues()[0]
	if iss.Code != valdix.CodeUnknownKeys || !reflect.DeepEqual(iss.Keys, []string{"extra"}) {
		t.Fatalf("unexpected issue: %+v", iss)
	}
}

// TestObject_NestedPaths verifies path bookkeeping across nested descent.
func TestObject_NestedPaths(t *testing.T) {
	s := valdix.Object().
		Field("profile", valdix.Object().
			Field("emails", valdix.Array(valdix.String().Email())))
	in := map[string]any{
		"profile": map[string]any{"emails": []any{"ok@example.com", "nope"}},
	}
	_, err := valdix.Parse(s, in)
	ve, ok := valdix.AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !ve.Contains("profile.emails.1") {
		t.Fatalf("expected issue at profile.emails.1, got %v", ve.Issues())
	}
	if got := ve.Find([]any{"profile", "emails", 1}); got == nil || got.Code != valdix.CodeInvalidString {
		t.Fatalf("unexpected issue: %+v", got)
	}
}

// TestObject_TypeMismatchIsFatal checks a wrong input kind reports a single
// invalid_type without partial field checking.
func TestObject_TypeMismatchIsFatal(t *testing.T) {
	_, err := valdix.Parse(userSchema(), "not an object")
	ve, ok := valdix.AsValidationError(err)
	if !ok || ve.Len() != 1 {
		t.Fatalf("expected one issue, got %v", err)
	}
	if iss := ve.Issues()[0]; iss.Code != valdix.CodeInvalidType || iss.Expected != "object" {
		t.Fatalf("unexpected issue: %+v", iss)
	}
}

// TestRecord_Validation covers plain and strict records.
func TestRecord_Validation(t *testing.T) {
	rec := valdix.Record(valdix.Number())
	if _, err := valdix.Parse(rec, map[string]any{"a": 1, "b": 2.5}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err := valdix.Parse(rec, map[string]any{"a": "nope"})
	ve, _ := valdix.AsValidationError(err)
	if ve == nil || !ve.Contains("a") {
		t.Fatalf("expected value issue at a, got %v", err)
	}

	strict := valdix.StrictRecord(valdix.String().Min(2), valdix.Number())
	_, err = valdix.Parse(strict, map[string]any{"x": 1})
	ve, _ = valdix.AsValidationError(err)
	if ve == nil || !ve.Contains("x") {
		t.Fatalf("expected key issue at x, got %v", err)
	}
}

// TestSetAndMap covers size bounds, dedupe and key/value validation.
func TestSetAndMap(t *testing.T) {
	set := valdix.Set(valdix.String()).Min(1)
	v, err := valdix.Parse(set, []any{"a", "b", "a"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := v.([]any); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected first-wins dedupe, got %#v", got)
	}
	if _, err := valdix.Parse(set, []any{}); err == nil {
		t.Fatalf("expected too_small for empty set")
	}

	m := valdix.Map(valdix.String().Min(2), valdix.Number())
	if _, err := valdix.Parse(m, map[string]any{"ab": 1}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err = valdix.Parse(m, map[string]any{"a": 1})
	if err == nil {
		t.Fatalf("expected key issue for short key")
	}
}

package valdix_test

import (
	"reflect"
	"testing"

	valdix "github.com/denisetiya/Valdix"
)

// TestPickOmit checks field selection preserves declaration order and leaves
// the receiver untouched.
func TestPickOmit(t *testing.T) {
	base := userSchema()

	picked := base.Pick("name", "role", "ghost")
	if got, want := picked.Shape().Keys(), []string{"name", "role"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected keys: %v", got)
	}
	if _, err := valdix.Parse(picked, map[string]any{"name": "Deni"}); err != nil {
		t.Fatalf("picked schema must not require age: %v", err)
	}

	omitted := base.Omit("age", "nickname")
	if got, want := omitted.Shape().Keys(), []string{"name", "role"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected keys: %v", got)
	}

	// receiver unchanged
	if _, err := valdix.Parse(base, map[string]any{"name": "Deni"}); err == nil {
		t.Fatalf("original schema must still require age")
	}
}

// TestExtendMerge checks collision resolution and policy adoption.
func TestExtendMerge(t *testing.T) {
	left := valdix.Object().
		Field("a", valdix.String()).
		Field("b", valdix.String()).
		Strict()
	right := valdix.Object().
		Field("b", valdix.Number()).
		Field("c", valdix.Number()).
		Passthrough()

	ext := left.Extend(right)
	if got, want := ext.Shape().Keys(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected keys: %v", got)
	}
	// right's field wins on collision
	if _, err := valdix.Parse(ext, map[string]any{"a": "x", "b": 2, "c": 3}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// Extend keeps the receiver's strict policy
	if _, err := valdix.Parse(ext, map[string]any{"a": "x", "b": 2, "c": 3, "z": 0}); err == nil {
		t.Fatalf("extend must keep strict policy")
	}

	// Merge adopts the right side's policy
	mrg := left.Merge(right)
	v, err := valdix.Parse(mrg, map[string]any{"a": "x", "b": 2, "c": 3, "z": 0})
	if err != nil {
		t.Fatalf("merge must adopt passthrough: %v", err)
	}
	if v.(map[string]any)["z"] != 0 {
		t.Fatalf("unexpected output: %#v", v)
	}
}

// TestKeyof derives an enum over field names and panics on an empty shape.
func TestKeyof(t *testing.T) {
	keys := userSchema().Keyof()
	if _, err := valdix.Parse(keys, "age"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := valdix.Parse(keys, "ghost"); err == nil {
		t.Fatalf("expected invalid_enum_value")
	}

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for empty shape")
		}
	}()
	valdix.Object().Keyof()
}

// TestPartialRequired checks one-level optionality toggling.
func TestPartialRequired(t *testing.T) {
	s := valdix.Object().
		Field("name", valdix.String()).
		Field("age", valdix.Number())

	if _, err := valdix.Parse(s.Partial(), map[string]any{}); err != nil {
		t.Fatalf("partial must accept empty object: %v", err)
	}
	// present values are still validated
	if _, err := valdix.Parse(s.Partial(), map[string]any{"age": "x"}); err == nil {
		t.Fatalf("partial must validate present values")
	}
	// Required undoes Partial
	if _, err := valdix.Parse(s.Partial().Required(), map[string]any{}); err == nil {
		t.Fatalf("required must reinstate mandatory fields")
	}
}

// TestDeepPartial makes fields optional at every depth, so an empty object
// passes a deeply nested schema.
func TestDeepPartial(t *testing.T) {
	s := valdix.Object().
		Field("profile", valdix.Object().
			Field("address", valdix.Object().
				Field("city", valdix.String())).
			Field("tags", valdix.Array(valdix.Object().Field("label", valdix.String()))))

	dp := s.DeepPartial()
	if _, err := valdix.Parse(dp, map[string]any{}); err != nil {
		t.Fatalf("deep partial must accept {}: %v", err)
	}
	if _, err := valdix.Parse(dp, map[string]any{"profile": map[string]any{}}); err != nil {
		t.Fatalf("deep partial must accept empty nested object: %v", err)
	}
	// array elements stay mandatory as elements, but their fields are optional
	in := map[string]any{"profile": map[string]any{"tags": []any{map[string]any{}}}}
	if _, err := valdix.Parse(dp, in); err != nil {
		t.Fatalf("deep partial must relax element fields: %v", err)
	}
	// present leaves are still validated
	bad := map[string]any{"profile": map[string]any{"address": map[string]any{"city": 7}}}
	if _, err := valdix.Parse(dp, bad); err == nil {
		t.Fatalf("deep partial must validate present leaves")
	}

	// DeepRequired strips optionality back at every depth
	dr := dp.DeepRequired()
	if _, err := valdix.Parse(dr, map[string]any{"profile": map[string]any{}}); err == nil {
		t.Fatalf("deep required must reinstate nested fields")
	}
}

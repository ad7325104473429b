package valdix_test

import (
	"reflect"
	"testing"

	valdix "github.com/denisetiya/Valdix"
)

// TestJSONSchema_Object exports properties, the required list and the
// unknown-key policy.
func TestJSONSchema_Object(t *testing.T) {
	out := valdix.JSONSchema(userSchema())
	if out.Type != "object" {
		t.Fatalf("unexpected type: %q", out.Type)
	}
	// optional and defaulted fields are not required
	if want := []string{"name", "age"}; !reflect.DeepEqual(out.Required, want) {
		t.Fatalf("unexpected required: %v", out.Required)
	}
	name := out.Properties["name"]
	if name == nil || name.Type != "string" || name.MinLength == nil || *name.MinLength != 2 {
		t.Fatalf("unexpected name schema: %+v", name)
	}
	age := out.Properties["age"]
	if age == nil || age.Type != "integer" || age.Minimum == nil || *age.Minimum != 0 {
		t.Fatalf("unexpected age schema: %+v", age)
	}
	role := out.Properties["role"]
	if role == nil || role.Default != "user" || len(role.Enum) != 2 {
		t.Fatalf("unexpected role schema: %+v", role)
	}

	strict := valdix.JSONSchema(valdix.Object().Field("a", valdix.String()).Strict())
	if strict.AdditionalProperties != false {
		t.Fatalf("strict must forbid additional properties: %v", strict.AdditionalProperties)
	}
}

// TestJSONSchema_StringFormats maps format rules to standard format names.
func TestJSONSchema_StringFormats(t *testing.T) {
	if out := valdix.JSONSchema(valdix.String().Email()); out.Format != "email" {
		t.Fatalf("unexpected format: %q", out.Format)
	}
	if out := valdix.JSONSchema(valdix.String().Datetime()); out.Format != "date-time" {
		t.Fatalf("unexpected format: %q", out.Format)
	}
	out := valdix.JSONSchema(valdix.String().Regex(`^\d+$`))
	if out.Pattern != `^\d+$` {
		t.Fatalf("unexpected pattern: %q", out.Pattern)
	}
}

// TestJSONSchema_Combinators exports unions as oneOf, intersections as allOf
// and exclusive number bounds.
func TestJSONSchema_Combinators(t *testing.T) {
	u := valdix.JSONSchema(valdix.Union(valdix.String(), valdix.Number().Positive()))
	if len(u.OneOf) != 2 || u.OneOf[0].Type != "string" {
		t.Fatalf("unexpected oneOf: %+v", u)
	}
	if num := u.OneOf[1]; num.ExclusiveMinimum == nil || *num.ExclusiveMinimum != 0 {
		t.Fatalf("unexpected number branch: %+v", num)
	}

	i := valdix.JSONSchema(valdix.Intersection(valdix.Object(), valdix.Object()))
	if len(i.AllOf) != 2 {
		t.Fatalf("unexpected allOf: %+v", i)
	}

	n := valdix.JSONSchema(valdix.Nullable(valdix.String()))
	if len(n.OneOf) != 2 || n.OneOf[1].Type != "null" {
		t.Fatalf("unexpected nullable export: %+v", n)
	}
}

// TestJSONSchema_ArraysAndDecorators covers item schemas, bounds, uniqueness
// and pass-through decorators.
func TestJSONSchema_ArraysAndDecorators(t *testing.T) {
	arr := valdix.JSONSchema(valdix.Array(valdix.String()).Min(1).Max(5).Unique())
	if arr.Type != "array" || arr.Items == nil || arr.Items.Type != "string" {
		t.Fatalf("unexpected array export: %+v", arr)
	}
	if arr.MinItems == nil || *arr.MinItems != 1 || arr.MaxItems == nil || *arr.MaxItems != 5 || !arr.UniqueItems {
		t.Fatalf("unexpected bounds: %+v", arr)
	}

	// refinements are transparent to export
	ref := valdix.JSONSchema(valdix.Refine(valdix.String().Min(3), func(v any) valdix.RefineResult {
		return valdix.Pass()
	}))
	if ref.Type != "string" || ref.MinLength == nil || *ref.MinLength != 3 {
		t.Fatalf("refine must export its inner schema: %+v", ref)
	}

	// pipelines export their output stage
	pipe := valdix.JSONSchema(valdix.Pipe(valdix.String(), valdix.Number().Min(3)))
	if pipe.Type != "number" || pipe.Minimum == nil || *pipe.Minimum != 3 {
		t.Fatalf("pipe must export its output stage: %+v", pipe)
	}

	// metadata lands on the exported node
	m := valdix.JSONSchema(valdix.Meta(valdix.String(), valdix.Metadata{Title: "Name", Description: "Display name"}))
	if m.Title != "Name" || m.Description != "Display name" {
		t.Fatalf("unexpected metadata export: %+v", m)
	}
}

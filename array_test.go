package valdix_test

import (
	"reflect"
	"testing"

	valdix "github.com/denisetiya/Valdix"
)

// TestArray_ElementsAndBounds validates length rules then per-index element
// checks.
func TestArray_ElementsAndBounds(t *testing.T) {
	tags := valdix.Array(valdix.String()).Min(1).Max(3)
	v, err := valdix.Parse(tags, []any{"go", "rust"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(v, []any{"go", "rust"}) {
		t.Fatalf("unexpected output: %#v", v)
	}
	if _, err := valdix.Parse(tags, []any{}); err == nil {
		t.Fatalf("expected too_small")
	}
	if _, err := valdix.Parse(tags, []any{"a", "b", "c", "d"}); err == nil {
		t.Fatalf("expected too_big")
	}

	_, err = valdix.Parse(tags, []any{"ok", 7})
	ve, _ := valdix.AsValidationError(err)
	if ve == nil || !ve.Contains([]any{1}) {
		t.Fatalf("expected issue at index 1, got %v", err)
	}
}

// TestArray_Unique flags the second and later occurrences of a duplicate,
// never the first.
func TestArray_Unique(t *testing.T) {
	s := valdix.Array(valdix.String()).Unique()
	if _, err := valdix.Parse(s, []any{"go", "rust"}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	_, err := valdix.Parse(s, []any{"go", "go"})
	ve, _ := valdix.AsValidationError(err)
	if ve == nil || ve.Len() != 1 {
		t.Fatalf("expected exactly one issue, got %v", err)
	}
	iss := ve.Issues()[0]
	if iss.Code != valdix.CodeInvalidArray || !reflect.DeepEqual(iss.Path, []any{1}) {
		t.Fatalf("unexpected issue: %+v", iss)
	}
}

// TestArray_UniqueSelector keys uniqueness on a derived value.
func TestArray_UniqueSelector(t *testing.T) {
	byID := valdix.Array(valdix.Object().Field("id", valdix.String())).
		Unique(func(elem any) any { return elem.(map[string]any)["id"] })
	in := []any{
		map[string]any{"id": "a"},
		map[string]any{"id": "b"},
		map[string]any{"id": "a"},
	}
	_, err := valdix.Parse(byID, in)
	ve, _ := valdix.AsValidationError(err)
	if ve == nil || !ve.Contains([]any{2}) {
		t.Fatalf("expected duplicate flagged at index 2, got %v", err)
	}
}

// TestTuple_Arity reports a tuple-length issue without positional checks.
func TestTuple_Arity(t *testing.T) {
	pair := valdix.Tuple(valdix.String(), valdix.Number())
	v, err := valdix.Parse(pair, []any{"x", 1})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !reflect.DeepEqual(v, []any{"x", float64(1)}) {
		t.Fatalf("unexpected output: %#v", v)
	}

	_, err = valdix.Parse(pair, []any{"x"})
	ve, _ := valdix.AsValidationError(err)
	if ve == nil || ve.Len() != 1 {
		t.Fatalf("expected exactly one issue, got %v", err)
	}
	if iss := ve.Issues()[0]; iss.Code != valdix.CodeInvalidTupleLength {
		t.Fatalf("unexpected issue: %+v", iss)
	}

	_, err = valdix.Parse(pair, []any{1, "x"})
	ve, _ = valdix.AsValidationError(err)
	if ve == nil || ve.Len() != 2 {
		t.Fatalf("expected positional issues, got %v", err)
	}
}

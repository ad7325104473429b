package valdix_test

import (
	"reflect"
	"testing"

	valdix "github.com/denisetiya/Valdix"
)

// TestUnion_FirstMatchWins checks declaration order decides between branches
// that both accept the input.
func TestUnion_FirstMatchWins(t *testing.T) {
	id := valdix.Union(valdix.String().StartsWith("usr_"), valdix.Number().Int())
	v, err := valdix.Parse(id, "usr_42")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v != "usr_42" {
		t.Fatalf("unexpected output: %#v", v)
	}
	if v, err := valdix.Parse(id, 42); err != nil || v != float64(42) {
		t.Fatalf("expected number branch, got v=%v err=%v", v, err)
	}

	// both literal branches accept: first declared wins
	first := valdix.Union(valdix.Any(), valdix.Never())
	if _, err := valdix.Parse(first, "x"); err != nil {
		t.Fatalf("any branch must win: %v", err)
	}
}

// TestUnion_AllBranchesFail checks the aggregate issue carries every branch's
// issue list, followed by the absorbed per-branch issues.
func TestUnion_AllBranchesFail(t *testing.T) {
	id := valdix.Union(valdix.String().StartsWith("usr_"), valdix.Number().Int())
	_, err := valdix.Parse(id, true)
	ve, ok := valdix.AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	iss := ve.Issues()[0]
	if iss.Code != valdix.CodeInvalidUnion || len(iss.UnionIssues) != 2 {
		t.Fatalf("unexpected issue: %+v", iss)
	}
	for i, branch := range iss.UnionIssues {
		if len(branch) == 0 {
			t.Fatalf("branch %d has no issues", i)
		}
	}
	// absorbed branch issues follow the aggregate
	if ve.Len() < 3 {
		t.Fatalf("expected absorbed branch issues, got %v", ve.Issues())
	}

	// abort-early keeps only the aggregate
	_, err = valdix.Parse(id, true, valdix.ParseOpt{AbortEarly: true})
	ve, _ = valdix.AsValidationError(err)
	if ve == nil || ve.Len() != 1 {
		t.Fatalf("expected single aggregate issue, got %v", err)
	}
}

// TestIntersection_ObjectMerge merges plain objects by key union with the
// right side overriding.
func TestIntersection_ObjectMerge(t *testing.T) {
	left := valdix.Object().Field("a", valdix.String()).Passthrough()
	right := valdix.Object().Field("b", valdix.Number()).Passthrough()
	v, err := valdix.Parse(valdix.Intersection(left, right), map[string]any{"a": "x", "b": 2})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := map[string]any{"a": "x", "b": float64(2)}
	if !reflect.DeepEqual(v, want) {
		t.Fatalf("unexpected merge: %#v", v)
	}
}

// TestIntersection_Failure reports both sides' issues plus the aggregate when
// either side rejects.
func TestIntersection_Failure(t *testing.T) {
	s := valdix.Intersection(valdix.String().Min(5), valdix.String().Max(2))
	_, err := valdix.Parse(s, "abc")
	ve, ok := valdix.AsValidationError(err)
	if !ok {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	found := false
	for _, iss := range ve.Issues() {
		if iss.Code == valdix.CodeInvalidIntersection {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected invalid_intersection, got %v", ve.Issues())
	}
}

// TestIntersection_AbortEarly keeps the abort-early issue list a single
// burst and a prefix of the full run.
func TestIntersection_AbortEarly(t *testing.T) {
	s := valdix.Intersection(valdix.String().Min(5).Regex("^z"), valdix.String().Max(2))

	_, fullErr := valdix.Parse(s, "abc")
	full, _ := valdix.AsValidationError(fullErr)
	_, shortErr := valdix.Parse(s, "abc", valdix.ParseOpt{AbortEarly: true})
	short, _ := valdix.AsValidationError(shortErr)

	if full == nil || short == nil {
		t.Fatalf("expected both runs to fail")
	}
	if short.Len() != 1 || short.Issues()[0].Code != valdix.CodeInvalidIntersection {
		t.Fatalf("abort-early must stop at the aggregate, got %v", short.Issues())
	}
	if full.Len() <= short.Len() {
		t.Fatalf("full run must keep both sides' issues: %v", full.Issues())
	}
	fi, si := full.Issues(), short.Issues()
	for i := range si {
		if !reflect.DeepEqual(si[i], fi[i]) {
			t.Fatalf("abort-early issue %d is not a prefix of the full run", i)
		}
	}
}

// TestDiscriminatedUnion_Dispatch selects the branch by tag without trial
// evaluation.
func TestDiscriminatedUnion_Dispatch(t *testing.T) {
	event := valdix.DiscriminatedUnion("type",
		valdix.Object().
			Field("type", valdix.Literal("click")).
			Field("x", valdix.Number()).
			Field("y", valdix.Number()),
		valdix.Object().
			Field("type", valdix.Literal("key")).
			Field("code", valdix.String()),
	)
	v, err := valdix.Parse(event, map[string]any{"type": "key", "code": "Enter"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v.(map[string]any)["code"] != "Enter" {
		t.Fatalf("unexpected output: %#v", v)
	}

	// branch errors surface at their real paths
	_, err = valdix.Parse(event, map[string]any{"type": "click", "x": 1})
	ve, _ := valdix.AsValidationError(err)
	if ve == nil || !ve.Contains("y") {
		t.Fatalf("expected required issue at y, got %v", err)
	}
}

// TestDiscriminatedUnion_TagIssues covers missing, non-string and unknown
// tag values.
func TestDiscriminatedUnion_TagIssues(t *testing.T) {
	event := valdix.DiscriminatedUnion("type",
		valdix.Object().Field("type", valdix.Literal("a")),
		valdix.Object().Field("type", valdix.Enum("b", "c")),
	)
	if got, want := event.Tags(), []string{"a", "b", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected tags: %v", got)
	}
	for _, in := range []map[string]any{
		{},
		{"type": 7},
		{"type": "zzz"},
	} {
		_, err := valdix.Parse(event, in)
		ve, _ := valdix.AsValidationError(err)
		if ve == nil || ve.Len() != 1 {
			t.Fatalf("input %#v: expected one issue, got %v", in, err)
		}
		iss := ve.Issues()[0]
		if iss.Code != valdix.CodeInvalidDiscriminator || !reflect.DeepEqual(iss.Path, []any{"type"}) {
			t.Fatalf("input %#v: unexpected issue: %+v", in, iss)
		}
	}
}

// TestDiscriminatedUnion_MalformedPanics checks construction panics on
// options without a usable tag field.
func TestDiscriminatedUnion_MalformedPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for option without discriminator")
		}
	}()
	valdix.DiscriminatedUnion("type", valdix.Object().Field("x", valdix.Number()))
}

package valdix

import (
	gojson "github.com/goccy/go-json"
)

// UniqueSelector derives the identity key of an element for the uniqueness
// post-pass. The default selector is the element itself.
type UniqueSelector func(elem any) any

// ArraySchema validates []any inputs: length rules first, then elements by
// index, then an optional uniqueness post-pass over the successful outputs.
type ArraySchema struct {
	item     Schema
	minItems *int
	maxItems *int
	unique   bool
	selector UniqueSelector
}

// Array returns an array schema over the given element schema.
func Array(item Schema) *ArraySchema { return &ArraySchema{item: item} }

func (s *ArraySchema) Kind() Kind { return KindArray }

// Item returns the element schema for read-only reflection.
func (s *ArraySchema) Item() Schema { return s.item }

// Bounds returns the configured min/max item counts (nil when unset).
func (s *ArraySchema) Bounds() (lo, hi *int) { return s.minItems, s.maxItems }

// IsUnique reports whether the uniqueness post-pass is configured.
func (s *ArraySchema) IsUnique() bool { return s.unique }

func (s *ArraySchema) clone() *ArraySchema {
	c := *s
	return &c
}

func (s *ArraySchema) Min(n int) *ArraySchema {
	c := s.clone()
	c.minItems = &n
	return c
}

func (s *ArraySchema) Max(n int) *ArraySchema {
	c := s.clone()
	c.maxItems = &n
	return c
}

// Unique enables the uniqueness post-pass. An optional selector derives the
// comparison key per element; elements compare by canonical JSON encoding of
// that key. The second and later occurrences of a duplicate are flagged at
// their index; the first occurrence never is.
func (s *ArraySchema) Unique(selector ...UniqueSelector) *ArraySchema {
	c := s.clone()
	c.unique = true
	if len(selector) > 0 {
		c.selector = selector[len(selector)-1]
	}
	return c
}

// canonicalKey renders a comparison key for uniqueness checks. Encoding via
// JSON keeps map-typed keys order-insensitive (goccy sorts object keys).
func canonicalKey(v any) string {
	b, err := gojson.Marshal(v)
	if err != nil {
		return "!" + typeName(v)
	}
	return string(b)
}

func (s *ArraySchema) eval(v any, p *ParseContext) (any, bool) {
	in, ok := v.([]any)
	if !ok {
		invalidType(p, "array", v)
		return nil, false
	}
	before := len(p.issues)

	if s.minItems != nil && len(in) < *s.minItems {
		p.AddIssue(Issue{Code: CodeTooSmall, Minimum: numPtr(float64(*s.minItems)), Inclusive: true, Validation: "array"})
		if p.abortEarly {
			return nil, false
		}
	}
	if s.maxItems != nil && len(in) > *s.maxItems {
		p.AddIssue(Issue{Code: CodeTooBig, Maximum: numPtr(float64(*s.maxItems)), Inclusive: true, Validation: "array"})
		if p.abortEarly {
			return nil, false
		}
	}

	out := make([]any, 0, len(in))
	valid := make([]bool, len(in))
	for i, elem := range in {
		p.push(i)
		val, ok := s.item.eval(elem, p)
		p.pop()
		if ok {
			valid[i] = true
			out = append(out, val)
		} else {
			out = append(out, nil)
			if p.abortEarly {
				return nil, false
			}
		}
	}

	if s.unique {
		seen := map[string]struct{}{}
		for i := range in {
			if !valid[i] {
				continue
			}
			key := out[i]
			if s.selector != nil {
				key = s.selector(out[i])
			}
			ck := canonicalKey(key)
			if _, dup := seen[ck]; dup {
				p.AddIssue(Issue{Code: CodeInvalidArray, Path: []any{i}, Validation: "unique"})
				if p.abortEarly {
					return nil, false
				}
				continue
			}
			seen[ck] = struct{}{}
		}
	}

	return out, len(p.issues) == before
}

// TupleSchema validates fixed-arity heterogeneous arrays. Arity mismatches
// report invalid_tuple_length without attempting positional validation.
type TupleSchema struct {
	items []Schema
}

// Tuple returns a tuple schema over the given positional schemas.
func Tuple(items ...Schema) *TupleSchema {
	is := make([]Schema, len(items))
	copy(is, items)
	return &TupleSchema{items: is}
}

func (s *TupleSchema) Kind() Kind { return KindTuple }

// Items returns the positional schemas for read-only reflection.
func (s *TupleSchema) Items() []Schema {
	out := make([]Schema, len(s.items))
	copy(out, s.items)
	return out
}

func (s *TupleSchema) eval(v any, p *ParseContext) (any, bool) {
	in, ok := v.([]any)
	if !ok {
		invalidType(p, "tuple", v)
		return nil, false
	}
	if len(in) != len(s.items) {
		want := float64(len(s.items))
		p.AddIssue(Issue{
			Code:     CodeInvalidTupleLength,
			Minimum:  numPtr(want),
			Maximum:  numPtr(want),
			Received: typeName(v),
		})
		return nil, false
	}
	before := len(p.issues)
	out := make([]any, len(in))
	for i, item := range s.items {
		p.push(i)
		val, ok := item.eval(in[i], p)
		p.pop()
		if ok {
			out[i] = val
		} else if p.abortEarly {
			return nil, false
		}
	}
	return out, len(p.issues) == before
}

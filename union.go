package valdix

import (
	"fmt"
	"reflect"
)

// UnionSchema tries each option in declared order against a forked context;
// the first branch that succeeds without recording any issue wins outright.
// Declaration order is the tie-break: a later branch that would also succeed
// is never consulted.
type UnionSchema struct {
	options []Schema
}

// Union returns a union schema over the given options.
func Union(options ...Schema) *UnionSchema {
	os := make([]Schema, len(options))
	copy(os, options)
	return &UnionSchema{options: os}
}

func (s *UnionSchema) Kind() Kind { return KindUnion }

// Options returns the branch schemas for read-only reflection.
func (s *UnionSchema) Options() []Schema {
	out := make([]Schema, len(s.options))
	copy(out, s.options)
	return out
}

func (s *UnionSchema) eval(v any, p *ParseContext) (any, bool) {
	branchIssues := make([][]Issue, 0, len(s.options))
	forks := make([]*ParseContext, 0, len(s.options))
	for _, opt := range s.options {
		f := p.fork()
		val, ok := opt.eval(v, f)
		if ok && len(f.issues) == 0 {
			return val, true
		}
		branchIssues = append(branchIssues, f.issues)
		forks = append(forks, f)
	}
	p.AddIssue(Issue{Code: CodeInvalidUnion, UnionIssues: branchIssues, Received: typeName(v)})
	if !p.abortEarly {
		// Surface every branch's issues for diagnostics.
		for _, f := range forks {
			p.absorb(f)
		}
	}
	return nil, false
}

// IntersectionSchema evaluates both sides against independent forks with no
// short-circuit, then merges the outputs: plain objects merge by shallow key
// union (right overrides left), anything else must be deep-equal.
type IntersectionSchema struct {
	left  Schema
	right Schema
}

// Intersection returns an intersection schema over the two sides.
func Intersection(left, right Schema) *IntersectionSchema {
	return &IntersectionSchema{left: left, right: right}
}

func (s *IntersectionSchema) Kind() Kind { return KindIntersection }

// Sides returns the two branch schemas for read-only reflection.
func (s *IntersectionSchema) Sides() (left, right Schema) { return s.left, s.right }

func (s *IntersectionSchema) eval(v any, p *ParseContext) (any, bool) {
	lf := p.fork()
	lv, lok := s.left.eval(v, lf)
	rf := p.fork()
	rv, rok := s.right.eval(v, rf)

	if !lok || !rok {
		p.AddIssue(Issue{Code: CodeInvalidIntersection})
		if !p.abortEarly {
			// Surface both sides' issues for diagnostics.
			p.absorb(lf)
			p.absorb(rf)
		}
		return nil, false
	}

	lm, lIsMap := lv.(map[string]any)
	rm, rIsMap := rv.(map[string]any)
	if lIsMap && rIsMap {
		merged := make(map[string]any, len(lm)+len(rm))
		for k, val := range lm {
			merged[k] = val
		}
		for k, val := range rm {
			merged[k] = val
		}
		return merged, true
	}
	if !reflect.DeepEqual(lv, rv) {
		p.AddIssue(Issue{Code: CodeInvalidIntersection})
		return nil, false
	}
	return lv, true
}

// DiscriminatedUnionSchema reads a tag field directly instead of trial
// evaluation, then delegates wholesale to the matching branch, which
// re-validates the tag as part of its own shape.
type DiscriminatedUnionSchema struct {
	discriminator string
	options       []*ObjectSchema
	mapping       map[string]*ObjectSchema
	tags          []string
}

// DiscriminatedUnion builds the tag mapping at construction by reading each
// option's discriminator field, which must be a Literal (string) or Enum
// node. It panics on a malformed option set: that is a schema-definition
// bug, not an input error.
func DiscriminatedUnion(discriminator string, options ...*ObjectSchema) *DiscriminatedUnionSchema {
	s := &DiscriminatedUnionSchema{
		discriminator: discriminator,
		options:       make([]*ObjectSchema, len(options)),
		mapping:       make(map[string]*ObjectSchema),
	}
	copy(s.options, options)
	for _, opt := range options {
		tagSchema := opt.Shape().Field(discriminator)
		if tagSchema == nil {
			panic(fmt.Sprintf("valdix: discriminated union option lacks field %q", discriminator))
		}
		for _, tag := range tagValues(tagSchema) {
			if _, dup := s.mapping[tag]; dup {
				panic(fmt.Sprintf("valdix: duplicate discriminator value %q", tag))
			}
			s.mapping[tag] = opt
			s.tags = append(s.tags, tag)
		}
	}
	if len(s.tags) == 0 {
		panic("valdix: discriminated union has no usable tag values")
	}
	return s
}

// tagValues extracts the string values a tag field admits, unwrapping
// decorators around the Literal/Enum node.
func tagValues(s Schema) []string {
	switch t := s.(type) {
	case *LiteralSchema:
		if str, ok := t.Value().(string); ok {
			return []string{str}
		}
	case *EnumSchema:
		return t.Values()
	default:
		if inner := innerOf(s); inner != nil {
			return tagValues(inner)
		}
	}
	return nil
}

func (s *DiscriminatedUnionSchema) Kind() Kind { return KindDiscriminatedUnion }

// Discriminator returns the tag field name.
func (s *DiscriminatedUnionSchema) Discriminator() string { return s.discriminator }

// Options returns the branch schemas for read-only reflection.
func (s *DiscriminatedUnionSchema) Options() []*ObjectSchema {
	out := make([]*ObjectSchema, len(s.options))
	copy(out, s.options)
	return out
}

// Tags returns the recognized discriminator values in declaration order.
func (s *DiscriminatedUnionSchema) Tags() []string {
	out := make([]string, len(s.tags))
	copy(out, s.tags)
	return out
}

func (s *DiscriminatedUnionSchema) eval(v any, p *ParseContext) (any, bool) {
	in, ok := v.(map[string]any)
	if !ok {
		invalidType(p, "object", v)
		return nil, false
	}
	opts := make([]any, len(s.tags))
	for i, t := range s.tags {
		opts[i] = t
	}
	raw, present := in[s.discriminator]
	if !present {
		p.AddIssue(Issue{Code: CodeInvalidDiscriminator, Path: []any{s.discriminator}, Discriminator: s.discriminator, Options: opts})
		return nil, false
	}
	tag, isString := raw.(string)
	if !isString {
		p.AddIssue(Issue{Code: CodeInvalidDiscriminator, Path: []any{s.discriminator}, Discriminator: s.discriminator, Options: opts, Received: typeName(raw)})
		return nil, false
	}
	branch, known := s.mapping[tag]
	if !known {
		p.AddIssue(Issue{Code: CodeInvalidDiscriminator, Path: []any{s.discriminator}, Discriminator: s.discriminator, Options: opts, Received: "string"})
		return nil, false
	}
	return branch.eval(v, p)
}

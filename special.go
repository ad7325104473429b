package valdix

import (
	"fmt"
	"reflect"
)

// ---------------- literal ----------------

// LiteralSchema accepts exactly one value, compared by deep equality.
type LiteralSchema struct {
	value any
}

// Literal returns a schema accepting only v.
func Literal(v any) *LiteralSchema { return &LiteralSchema{value: v} }

func (s *LiteralSchema) Kind() Kind { return KindLiteral }

// Value returns the accepted literal for read-only reflection.
func (s *LiteralSchema) Value() any { return s.value }

func (s *LiteralSchema) eval(v any, p *ParseContext) (any, bool) {
	if !looseEqual(v, s.value) {
		p.AddIssue(Issue{Code: CodeInvalidLiteral, Expected: fmt.Sprintf("%v", s.value), Received: fmt.Sprintf("%v", v)})
		return nil, false
	}
	return s.value, true
}

// looseEqual compares across the numeric widenings the decoders produce, so
// Literal(2) also accepts float64(2) and json.Number("2").
func looseEqual(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	fa, aok := asFloat(a)
	fb, bok := asFloat(b)
	return aok && bok && fa == fb
}

// ---------------- enum ----------------

// EnumSchema accepts one of a fixed set of string values.
type EnumSchema struct {
	values []string
}

// Enum returns a schema accepting exactly the listed values.
func Enum(values ...string) *EnumSchema {
	vs := make([]string, len(values))
	copy(vs, values)
	return &EnumSchema{values: vs}
}

func (s *EnumSchema) Kind() Kind { return KindEnum }

// Values returns a copy of the accepted values for read-only reflection.
func (s *EnumSchema) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

func (s *EnumSchema) eval(v any, p *ParseContext) (any, bool) {
	str, ok := v.(string)
	if ok {
		for _, val := range s.values {
			if str == val {
				return str, true
			}
		}
	}
	opts := make([]any, len(s.values))
	for i, val := range s.values {
		opts[i] = val
	}
	p.AddIssue(Issue{Code: CodeInvalidEnumValue, Options: opts, Received: typeName(v)})
	return nil, false
}

// ---------------- any / unknown / never ----------------

// AnySchema accepts every input unchanged.
type AnySchema struct{ kind Kind }

// Any returns a schema accepting every input.
func Any() *AnySchema { return &AnySchema{kind: KindAny} }

// Unknown is Any under a different tag; it exists so schema trees can state
// "deliberately unvalidated" distinctly from "anything goes".
func Unknown() *AnySchema { return &AnySchema{kind: KindUnknown} }

func (s *AnySchema) Kind() Kind { return s.kind }

func (s *AnySchema) eval(v any, p *ParseContext) (any, bool) { return v, true }

// NeverSchema rejects every input.
type NeverSchema struct{}

// Never returns a schema that rejects every input.
func Never() *NeverSchema { return &NeverSchema{} }

func (s *NeverSchema) Kind() Kind { return KindNever }

func (s *NeverSchema) eval(v any, p *ParseContext) (any, bool) {
	invalidType(p, "never", v)
	return nil, false
}

// ---------------- null / undefined ----------------

// NullSchema accepts only nil.
type NullSchema struct{}

// Null returns a schema accepting only nil.
func Null() *NullSchema { return &NullSchema{} }

func (s *NullSchema) Kind() Kind { return KindNull }

func (s *NullSchema) eval(v any, p *ParseContext) (any, bool) {
	if v != nil {
		invalidType(p, "null", v)
		return nil, false
	}
	return nil, true
}

// UndefinedSchema accepts only the absent-value sentinel, i.e. a missing
// object key.
type UndefinedSchema struct{}

// Undefined returns a schema accepting only absent values.
func Undefined() *UndefinedSchema { return &UndefinedSchema{} }

func (s *UndefinedSchema) Kind() Kind { return KindUndefined }

func (s *UndefinedSchema) eval(v any, p *ParseContext) (any, bool) {
	if !IsMissing(v) {
		invalidType(p, "undefined", v)
		return nil, false
	}
	return missingValue, true
}

// ---------------- instance-of ----------------

// InstanceSchema accepts values assignable to a fixed Go type.
type InstanceSchema struct {
	typ reflect.Type
}

// Instance returns a schema accepting values assignable to T.
func Instance[T any]() *InstanceSchema {
	return &InstanceSchema{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// InstanceOf returns a schema accepting values assignable to t.
func InstanceOf(t reflect.Type) *InstanceSchema { return &InstanceSchema{typ: t} }

func (s *InstanceSchema) Kind() Kind { return KindInstance }

// Type returns the accepted reflect.Type for read-only reflection.
func (s *InstanceSchema) Type() reflect.Type { return s.typ }

func (s *InstanceSchema) eval(v any, p *ParseContext) (any, bool) {
	if v == nil || !reflect.TypeOf(v).AssignableTo(s.typ) {
		p.AddIssue(Issue{Code: CodeInvalidInstance, Expected: s.typ.String(), Received: typeName(v)})
		return nil, false
	}
	return v, true
}

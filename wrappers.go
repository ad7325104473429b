package valdix

// Decorator nodes wrap exactly one inner schema and modify its contract
// without altering its core validation. Decorators compose by nesting.

// OptionalSchema tolerates absent values, resolving them to no value so the
// surrounding object omits the key.
type OptionalSchema struct {
	inner Schema
}

// Optional wraps s so that a missing value is accepted.
func Optional(s Schema) *OptionalSchema { return &OptionalSchema{inner: s} }

func (s *OptionalSchema) Kind() Kind { return KindOptional }

// Inner returns the wrapped schema.
func (s *OptionalSchema) Inner() Schema { return s.inner }

func (s *OptionalSchema) eval(v any, p *ParseContext) (any, bool) {
	if IsMissing(v) {
		return missingValue, true
	}
	return s.inner.eval(v, p)
}

// NullableSchema tolerates nil values, passing them through unchanged.
type NullableSchema struct {
	inner Schema
}

// Nullable wraps s so that nil is accepted.
func Nullable(s Schema) *NullableSchema { return &NullableSchema{inner: s} }

func (s *NullableSchema) Kind() Kind { return KindNullable }

// Inner returns the wrapped schema.
func (s *NullableSchema) Inner() Schema { return s.inner }

func (s *NullableSchema) eval(v any, p *ParseContext) (any, bool) {
	if v == nil {
		return nil, true
	}
	return s.inner.eval(v, p)
}

// DefaultSchema substitutes a fallback when the value is absent. The
// substituted value still runs through the inner schema, so a default that
// violates the inner rules is a schema-definition bug that surfaces as
// issues.
type DefaultSchema struct {
	inner Schema
	value any
	gen   func() any
}

// Default wraps s with a fixed fallback applied on absence.
func Default(s Schema, value any) *DefaultSchema { return &DefaultSchema{inner: s, value: value} }

// DefaultFunc wraps s with a generated fallback, evaluated per application.
// Generators should be pure: the missing-key probe may invoke them
// speculatively (a documented sharp edge of the probe mechanism).
func DefaultFunc(s Schema, gen func() any) *DefaultSchema { return &DefaultSchema{inner: s, gen: gen} }

func (s *DefaultSchema) Kind() Kind { return KindDefault }

// Inner returns the wrapped schema.
func (s *DefaultSchema) Inner() Schema { return s.inner }

// Value returns the fixed fallback (nil when a generator is used).
func (s *DefaultSchema) Value() any { return s.value }

func (s *DefaultSchema) eval(v any, p *ParseContext) (any, bool) {
	if IsMissing(v) {
		if s.gen != nil {
			v = s.gen()
		} else {
			v = s.value
		}
	}
	return s.inner.eval(v, p)
}

// CatchSchema probes the inner schema on a fork and substitutes a fallback
// when the probe fails, leaving the parent context untouched either way.
type CatchSchema struct {
	inner    Schema
	fallback any
}

// Catch wraps s with a fallback adopted whenever s rejects the input.
func Catch(s Schema, fallback any) *CatchSchema { return &CatchSchema{inner: s, fallback: fallback} }

func (s *CatchSchema) Kind() Kind { return KindCatch }

// Inner returns the wrapped schema.
func (s *CatchSchema) Inner() Schema { return s.inner }

// Fallback returns the substituted value.
func (s *CatchSchema) Fallback() any { return s.fallback }

func (s *CatchSchema) eval(v any, p *ParseContext) (any, bool) {
	f := p.fork()
	val, ok := s.inner.eval(v, f)
	if ok && len(f.issues) == 0 {
		return val, true
	}
	return s.fallback, true
}

// MetaSchema attaches an annotation bag without touching validation.
type MetaSchema struct {
	inner Schema
	meta  Metadata
}

// Meta wraps s with metadata consumed by exporters and tooling.
func Meta(s Schema, meta Metadata) *MetaSchema { return &MetaSchema{inner: s, meta: meta} }

func (s *MetaSchema) Kind() Kind { return KindMeta }

// Inner returns the wrapped schema.
func (s *MetaSchema) Inner() Schema { return s.inner }

// Metadata returns the annotation bag.
func (s *MetaSchema) Metadata() Metadata { return s.meta }

func (s *MetaSchema) eval(v any, p *ParseContext) (any, bool) { return s.inner.eval(v, p) }

// BrandSchema tags a schema with a nominal brand. Validation is untouched;
// the brand only distinguishes otherwise-identical schemas to tooling.
type BrandSchema struct {
	inner Schema
	brand string
}

// Brand wraps s with a nominal tag.
func Brand(s Schema, brand string) *BrandSchema { return &BrandSchema{inner: s, brand: brand} }

func (s *BrandSchema) Kind() Kind { return KindBrand }

// Inner returns the wrapped schema.
func (s *BrandSchema) Inner() Schema { return s.inner }

// BrandName returns the nominal tag.
func (s *BrandSchema) BrandName() string { return s.brand }

func (s *BrandSchema) eval(v any, p *ParseContext) (any, bool) { return s.inner.eval(v, p) }

// innerOf returns the wrapped schema of a decorator node (the output stage
// for pipelines), or nil for primitives and composites. The structural
// transforms and the exporter use it to walk decorator chains without
// enumerating every decorator type.
func innerOf(s Schema) Schema {
	switch t := s.(type) {
	case *OptionalSchema:
		return t.inner
	case *NullableSchema:
		return t.inner
	case *DefaultSchema:
		return t.inner
	case *CatchSchema:
		return t.inner
	case *RefineSchema:
		return t.inner
	case *SuperRefineSchema:
		return t.inner
	case *TransformSchema:
		return t.inner
	case *PreprocessSchema:
		return t.inner
	case *MetaSchema:
		return t.inner
	case *BrandSchema:
		return t.inner
	case *PipelineSchema:
		// A pipeline's external contract is its output stage.
		return t.out
	default:
		return nil
	}
}

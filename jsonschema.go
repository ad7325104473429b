package valdix

import (
	js "github.com/denisetiya/Valdix/jsonschema"
)

// JSONSchema projects a schema tree into a JSON Schema document using only
// the read-only node accessors. It is best-effort: refinements, transforms
// and instance-of checks have no JSON Schema equivalent and export as the
// inner (or empty) schema.
func JSONSchema(s Schema) *js.Schema {
	switch t := s.(type) {
	case *StringSchema:
		return exportString(t)
	case *NumberSchema:
		return exportNumber(t)
	case *BigIntSchema:
		return &js.Schema{Type: "integer"}
	case *BoolSchema:
		return &js.Schema{Type: "boolean"}
	case *DateSchema:
		return &js.Schema{Type: "string", Format: "date-time"}
	case *LiteralSchema:
		return &js.Schema{Const: t.Value()}
	case *EnumSchema:
		vals := t.Values()
		enum := make([]any, len(vals))
		for i, v := range vals {
			enum[i] = v
		}
		return &js.Schema{Type: "string", Enum: enum}
	case *AnySchema:
		return &js.Schema{}
	case *NeverSchema:
		return &js.Schema{Not: &js.Schema{}}
	case *NullSchema, *UndefinedSchema:
		return &js.Schema{Type: "null"}
	case *InstanceSchema:
		return &js.Schema{}
	case *ObjectSchema:
		return exportObject(t)
	case *ArraySchema:
		return exportArray(t)
	case *TupleSchema:
		items := t.Items()
		out := &js.Schema{Type: "array"}
		n := len(items)
		out.MinItems = &n
		out.MaxItems = &n
		for _, item := range items {
			out.PrefixItems = append(out.PrefixItems, JSONSchema(item))
		}
		return out
	case *RecordSchema:
		return &js.Schema{Type: "object", AdditionalProperties: JSONSchema(t.ValueSchema())}
	case *SetSchema:
		return &js.Schema{Type: "array", Items: JSONSchema(t.Item()), UniqueItems: true}
	case *MapSchema:
		return &js.Schema{Type: "object", AdditionalProperties: JSONSchema(t.ValueSchema())}
	case *UnionSchema:
		out := &js.Schema{}
		for _, opt := range t.Options() {
			out.OneOf = append(out.OneOf, JSONSchema(opt))
		}
		return out
	case *IntersectionSchema:
		left, right := t.Sides()
		return &js.Schema{AllOf: []*js.Schema{JSONSchema(left), JSONSchema(right)}}
	case *DiscriminatedUnionSchema:
		out := &js.Schema{}
		for _, opt := range t.Options() {
			out.OneOf = append(out.OneOf, JSONSchema(opt))
		}
		return out
	case *DefaultSchema:
		out := JSONSchema(t.Inner())
		out.Default = t.Value()
		return out
	case *NullableSchema:
		return &js.Schema{OneOf: []*js.Schema{JSONSchema(t.Inner()), {Type: "null"}}}
	case *MetaSchema:
		out := JSONSchema(t.Inner())
		out.Title = t.Metadata().Title
		out.Description = t.Metadata().Description
		return out
	default:
		if inner := innerOf(s); inner != nil {
			return JSONSchema(inner)
		}
		return &js.Schema{}
	}
}

func exportString(t *StringSchema) *js.Schema {
	out := &js.Schema{Type: "string"}
	for _, r := range t.Rules() {
		switch r.Kind {
		case StringRuleMin:
			n := r.N
			out.MinLength = &n
		case StringRuleMax:
			n := r.N
			out.MaxLength = &n
		case StringRuleLength:
			n := r.N
			out.MinLength = &n
			out.MaxLength = &n
		case StringRuleRegex:
			out.Pattern = r.Pattern.String()
		case StringRuleEmail:
			out.Format = "email"
		case StringRuleURL:
			out.Format = "uri"
		case StringRuleUUID:
			out.Format = "uuid"
		case StringRuleDatetime:
			out.Format = "date-time"
		}
	}
	return out
}

func exportNumber(t *NumberSchema) *js.Schema {
	out := &js.Schema{Type: "number"}
	for _, r := range t.Rules() {
		switch r.Kind {
		case NumberRuleMin:
			b := r.Bound
			if r.Inclusive {
				out.Minimum = &b
			} else {
				out.ExclusiveMinimum = &b
			}
		case NumberRuleMax:
			b := r.Bound
			if r.Inclusive {
				out.Maximum = &b
			} else {
				out.ExclusiveMaximum = &b
			}
		case NumberRuleInt:
			out.Type = "integer"
		case NumberRuleMultipleOf:
			b := r.Bound
			out.MultipleOf = &b
		}
	}
	return out
}

func exportObject(t *ObjectSchema) *js.Schema {
	out := &js.Schema{Type: "object", Properties: map[string]*js.Schema{}}
	for _, key := range t.Shape().Keys() {
		child := t.Shape().Field(key)
		out.Properties[key] = JSONSchema(child)
		if !toleratesAbsence(child) {
			out.Required = append(out.Required, key)
		}
	}
	switch t.Policy() {
	case UnknownStrict:
		out.AdditionalProperties = false
	case UnknownPassthrough:
		out.AdditionalProperties = true
	}
	return out
}

// toleratesAbsence mirrors the missing-key probe statically: a field is not
// required when some decorator in its chain absorbs the missing sentinel.
func toleratesAbsence(s Schema) bool {
	for s != nil {
		switch s.Kind() {
		case KindOptional, KindDefault, KindCatch, KindAny, KindUnknown, KindUndefined:
			return true
		}
		s = innerOf(s)
	}
	return false
}

func exportArray(t *ArraySchema) *js.Schema {
	out := &js.Schema{Type: "array", Items: JSONSchema(t.Item()), UniqueItems: t.IsUnique()}
	lo, hi := t.Bounds()
	if lo != nil {
		n := *lo
		out.MinItems = &n
	}
	if hi != nil {
		n := *hi
		out.MaxItems = &n
	}
	return out
}

package valdix

// Kind identifies the variant of a schema node. The set is closed: every
// consumer (evaluator, structural transforms, exporter) switches over it
// exhaustively instead of instance-checking.
type Kind int

const (
	// Primitive nodes.
	KindString Kind = iota
	KindNumber
	KindBigInt
	KindBool
	KindDate
	KindLiteral
	KindEnum
	KindAny
	KindUnknown
	KindNever
	KindNull
	KindUndefined
	KindInstance

	// Composite nodes.
	KindObject
	KindArray
	KindTuple
	KindRecord
	KindSet
	KindMap
	KindUnion
	KindIntersection
	KindDiscriminatedUnion

	// Decorator nodes.
	KindOptional
	KindNullable
	KindDefault
	KindCatch
	KindRefine
	KindSuperRefine
	KindTransform
	KindPipeline
	KindPreprocess
	KindMeta
	KindBrand
)

// String returns the lowercase variant name as used in invalid_type issues.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBigInt:
		return "bigint"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	case KindLiteral:
		return "literal"
	case KindEnum:
		return "enum"
	case KindAny:
		return "any"
	case KindUnknown:
		return "unknown"
	case KindNever:
		return "never"
	case KindNull:
		return "null"
	case KindUndefined:
		return "undefined"
	case KindInstance:
		return "instance"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindRecord:
		return "record"
	case KindSet:
		return "set"
	case KindMap:
		return "map"
	case KindUnion:
		return "union"
	case KindIntersection:
		return "intersection"
	case KindDiscriminatedUnion:
		return "discriminated_union"
	case KindOptional:
		return "optional"
	case KindNullable:
		return "nullable"
	case KindDefault:
		return "default"
	case KindCatch:
		return "catch"
	case KindRefine:
		return "refine"
	case KindSuperRefine:
		return "super_refine"
	case KindTransform:
		return "transform"
	case KindPipeline:
		return "pipeline"
	case KindPreprocess:
		return "preprocess"
	case KindMeta:
		return "meta"
	case KindBrand:
		return "brand"
	default:
		return "invalid"
	}
}

// UnknownPolicy controls how object schemas treat input keys absent from the
// declared shape.
type UnknownPolicy int

const (
	UnknownStrip       UnknownPolicy = iota // Drop unknown keys (default).
	UnknownPassthrough                      // Copy unknown keys into the output.
	UnknownStrict                           // Report extras as one unknown_keys issue.
)

// missing is the sentinel standing in for an absent value. Object schemas
// probe children with it to decide whether a missing key is tolerable, and
// decorators that resolve to no value propagate it upward so the surrounding
// object omits the key from its output.
type missing struct{}

var missingValue = missing{}

// IsMissing reports whether v is the absent-value sentinel.
func IsMissing(v any) bool {
	_, ok := v.(missing)
	return ok
}

// Metadata is a free-form annotation bag attached via Meta. The exporter
// surfaces Title and Description; the engine itself never reads it.
type Metadata struct {
	Title       string
	Description string
	Examples    []any
	Extra       map[string]any
}
